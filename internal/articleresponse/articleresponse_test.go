package articleresponse

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergeyParamoshkin/news/internal/model"
)

func keysOf(t *testing.T, v any) map[string]any {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))

	return out
}

func fixture() *model.Article {
	count := int64(11)

	return &model.Article{
		ArticleID:     1,
		Author:        "butter_bridge",
		Title:         "Living in the shadow of a great man",
		Body:          "I find this existence challenging",
		Topic:         "mitch",
		CreatedAt:     time.Date(2020, 7, 9, 20, 11, 0, 0, time.UTC),
		Votes:         100,
		ArticleImgURL: "https://images.pexels.com/photos/158651/news-newsletter-newspaper-information-158651.jpeg?w=700&h=700",
		CommentCount:  &count,
	}
}

func TestSummaryOmitsBody(t *testing.T) {
	got := keysOf(t, NewSummary(fixture()))

	assert.Len(t, got, 8)
	assert.NotContains(t, got, "body")
	assert.Equal(t, float64(11), got["comment_count"])
}

func TestSummaryKeepsNullCommentCount(t *testing.T) {
	a := fixture()
	a.CommentCount = nil

	got := keysOf(t, NewSummary(a))

	require.Contains(t, got, "comment_count")
	assert.Nil(t, got["comment_count"])
}

func TestArticleResponseHasBodyAndCount(t *testing.T) {
	got := keysOf(t, NewArticleResponse(fixture()))

	article, ok := got["article"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, article, 9)
	assert.Contains(t, article, "body")
	assert.Contains(t, article, "comment_count")
}

func TestUpdatedResponseIsPlainRow(t *testing.T) {
	got := keysOf(t, NewUpdatedResponse(fixture()))

	updated, ok := got["updatedArticle"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, updated, 8)
	assert.NotContains(t, updated, "comment_count")
	assert.Equal(t, float64(100), updated["votes"])
}

func TestListResponseIsNeverNull(t *testing.T) {
	got := keysOf(t, NewListResponse(nil))

	assert.Equal(t, []any{}, got["articles"])
}

func TestCreatedAtHasMilliseconds(t *testing.T) {
	summary := keysOf(t, NewSummary(fixture()))
	assert.Equal(t, "2020-07-09T20:11:00.000Z", summary["created_at"])

	updated := keysOf(t, NewUpdatedResponse(fixture()))["updatedArticle"].(map[string]any)
	assert.Equal(t, "2020-07-09T20:11:00.000Z", updated["created_at"])
}
