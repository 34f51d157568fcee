// Package articleresponse holds the article envelopes of the news API.
// Each endpoint exposes a different column set of the same row, so the
// views below copy what they need from model.Article instead of embedding it.
package articleresponse

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/SergeyParamoshkin/news/internal/model"
)

// Summary is an article as listed: no body, comment_count null when the
// article has no comments.
type Summary struct {
	ArticleID     int64     `json:"article_id"`
	Author        string    `json:"author"`
	Title         string    `json:"title"`
	Topic         string    `json:"topic"`
	CreatedAt     time.Time `json:"created_at"`
	Votes         int64     `json:"votes"`
	ArticleImgURL string    `json:"article_img_url"`
	CommentCount  *int64    `json:"comment_count"`
}

func NewSummary(a *model.Article) *Summary {
	return &Summary{
		ArticleID:     a.ArticleID,
		Author:        a.Author,
		Title:         a.Title,
		Topic:         a.Topic,
		CreatedAt:     a.CreatedAt,
		Votes:         a.Votes,
		ArticleImgURL: a.ArticleImgURL,
		CommentCount:  a.CommentCount,
	}
}

func (a Summary) MarshalJSON() ([]byte, error) {
	type plain Summary

	return json.Marshal(struct {
		plain
		CreatedAt model.Timestamp `json:"created_at"`
	}{plain(a), model.Timestamp(a.CreatedAt)})
}

// Row is the stored article row, as returned by an update.
type Row struct {
	ArticleID     int64     `json:"article_id"`
	Author        string    `json:"author"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	Topic         string    `json:"topic"`
	CreatedAt     time.Time `json:"created_at"`
	Votes         int64     `json:"votes"`
	ArticleImgURL string    `json:"article_img_url"`
}

func NewRow(a *model.Article) *Row {
	return &Row{
		ArticleID:     a.ArticleID,
		Author:        a.Author,
		Title:         a.Title,
		Body:          a.Body,
		Topic:         a.Topic,
		CreatedAt:     a.CreatedAt,
		Votes:         a.Votes,
		ArticleImgURL: a.ArticleImgURL,
	}
}

func (a Row) MarshalJSON() ([]byte, error) {
	type plain Row

	return json.Marshal(struct {
		plain
		CreatedAt model.Timestamp `json:"created_at"`
	}{plain(a), model.Timestamp(a.CreatedAt)})
}

// ListResponse renders {"articles": [...]}.
type ListResponse struct {
	Articles []*Summary `json:"articles"`
}

func NewListResponse(articles []*model.Article) *ListResponse {
	list := make([]*Summary, 0, len(articles))
	for _, a := range articles {
		list = append(list, NewSummary(a))
	}

	return &ListResponse{Articles: list}
}

func (rd *ListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// ArticleResponse renders {"article": {...}} with body and comment_count.
type ArticleResponse struct {
	Article *model.Article `json:"article"`
}

func NewArticleResponse(article *model.Article) *ArticleResponse {
	return &ArticleResponse{Article: article}
}

func (rd *ArticleResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// UpdatedResponse renders {"updatedArticle": {...}}.
type UpdatedResponse struct {
	UpdatedArticle *Row `json:"updatedArticle"`
}

func NewUpdatedResponse(article *model.Article) *UpdatedResponse {
	return &UpdatedResponse{UpdatedArticle: NewRow(article)}
}

func (rd *UpdatedResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
