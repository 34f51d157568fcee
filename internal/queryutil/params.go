package queryutil

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/SergeyParamoshkin/news/internal/apierror"
)

// Querier is the slice of the database client the checks here need.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// SortColumn is an allow-listed article column. Its SQL comes from
// sortExprs, never from the client.
type SortColumn string

const (
	SortAuthor        SortColumn = "author"
	SortTitle         SortColumn = "title"
	SortArticleID     SortColumn = "article_id"
	SortTopic         SortColumn = "topic"
	SortCreatedAt     SortColumn = "created_at"
	SortVotes         SortColumn = "votes"
	SortArticleImgURL SortColumn = "article_img_url"
	SortCommentCount  SortColumn = "comment_count"

	DefaultSort = SortCreatedAt
)

var sortExprs = map[SortColumn]string{
	SortAuthor:        "a.author",
	SortTitle:         "a.title",
	SortArticleID:     "a.article_id",
	SortTopic:         "a.topic",
	SortCreatedAt:     "a.created_at",
	SortVotes:         "a.votes",
	SortArticleImgURL: "a.article_img_url",
	SortCommentCount:  "comment_count",
}

// ParseSortColumn looks s up in the allow-list.
func ParseSortColumn(s string) (SortColumn, bool) {
	col := SortColumn(s)
	_, ok := sortExprs[col]

	return col, ok
}

// Expr is the ORDER BY expression for the column.
func (c SortColumn) Expr() string {
	return sortExprs[c]
}

type SortOrder string

const (
	Asc  SortOrder = "ASC"
	Desc SortOrder = "DESC"
)

// ParseSortOrder is lenient: only "asc" in any case gives ASC, anything else
// including garbage gives DESC.
func ParseSortOrder(s string) SortOrder {
	if strings.EqualFold(s, "asc") {
		return Asc
	}

	return Desc
}

// TopicFilter is a topic slug already checked against the topics table.
// The zero value matches every topic.
type TopicFilter struct {
	Slug string
}

func (f TopicFilter) Any() bool {
	return f.Slug == ""
}

// Literal renders the filter as a quoted SQL literal, '%' for any topic.
// Stores bind Slug as a parameter; Literal is for logs and debugging.
func (f TopicFilter) Literal() string {
	if f.Any() {
		return "'%'"
	}

	return "'" + strings.ReplaceAll(f.Slug, "'", "''") + "'"
}

// ListParams is the validated form of the article list query string.
type ListParams struct {
	SortBy SortColumn
	Order  SortOrder
	Topic  TopicFilter
}

// OrderBy renders the ORDER BY clause. NULL comment counts keep the
// PostgreSQL default placement (first on DESC, last on ASC); article_id
// breaks ties.
func (p ListParams) OrderBy() string {
	return fmt.Sprintf("ORDER BY %s %s, a.article_id %s", p.SortBy.Expr(), p.Order, p.Order)
}

// ValidateParameters checks sort_by against the allow-list (400), normalizes
// order and resolves topic against the topics table (404).
func ValidateParameters(ctx context.Context, q Querier, sortBy, order, topic string) (ListParams, error) {
	params := ListParams{SortBy: DefaultSort}

	if sortBy != "" {
		col, ok := ParseSortColumn(sortBy)
		if !ok {
			return ListParams{}, apierror.BadRequest()
		}

		params.SortBy = col
	}

	params.Order = ParseSortOrder(order)

	if topic != "" {
		exists, err := CheckForeignPrimaryKey(ctx, q, TopicKey, topic)
		if err != nil {
			return ListParams{}, err
		}

		if !exists {
			return ListParams{}, apierror.NotFound("Topic")
		}

		params.Topic = TopicFilter{Slug: topic}
	}

	return params, nil
}

// ForeignKey names a table and its key column. Values only come from the
// variables below.
type ForeignKey struct {
	table  string
	column string
}

var (
	ArticleKey = ForeignKey{table: "articles", column: "article_id"}
	CommentKey = ForeignKey{table: "comments", column: "comment_id"}
	TopicKey   = ForeignKey{table: "topics", column: "slug"}
	UserKey    = ForeignKey{table: "users", column: "username"}
)

func (k ForeignKey) String() string {
	return k.table + "." + k.column
}

func (k ForeignKey) existsQuery() string {
	return fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)",
		pgx.Identifier{k.table}.Sanitize(),
		pgx.Identifier{k.column}.Sanitize(),
	)
}

// CheckForeignPrimaryKey reports whether a row with the given id exists.
func CheckForeignPrimaryKey(ctx context.Context, q Querier, key ForeignKey, id any) (bool, error) {
	var exists bool
	if err := q.QueryRow(ctx, key.existsQuery(), id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check %s: %w", key, err)
	}

	return exists, nil
}
