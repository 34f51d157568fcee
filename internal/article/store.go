package article

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/SergeyParamoshkin/news/internal/apierror"
	"github.com/SergeyParamoshkin/news/internal/database"
	"github.com/SergeyParamoshkin/news/internal/model"
	"github.com/SergeyParamoshkin/news/internal/queryutil"
)

// commentCounts is left joined, so an article without comments keeps a
// NULL comment_count.
const commentCounts = `
	LEFT JOIN (
		SELECT article_id, COUNT(*)::bigint AS comment_count
		FROM comments
		GROUP BY article_id
	) c ON c.article_id = a.article_id`

const (
	listArticlesSQL = `
	SELECT a.article_id, a.author, a.title, a.topic, a.created_at, a.votes, a.article_img_url, c.comment_count
	FROM articles a` + commentCounts + `
	WHERE ($1::text = '' OR a.topic = $1)
	`

	getArticleSQL = `
	SELECT a.article_id, a.author, a.title, a.body, a.topic, a.created_at, a.votes, a.article_img_url, c.comment_count
	FROM articles a` + commentCounts + `
	WHERE a.article_id = $1`

	incrementVotesSQL = `
	UPDATE articles SET votes = votes + $1
	WHERE article_id = $2
	RETURNING article_id, author, title, body, topic, created_at, votes, article_img_url`
)

type Store struct {
	db database.DBTX
}

func NewStore(db database.DBTX) *Store {
	return &Store{db: db}
}

// ListParams validates the raw query string values of GET /api/articles.
func (s *Store) ListParams(ctx context.Context, sortBy, order, topic string) (queryutil.ListParams, error) {
	return queryutil.ValidateParameters(ctx, s.db, sortBy, order, topic)
}

// List returns articles without their bodies. The topic slug is bound as a
// parameter; ORDER BY text only ever comes from params.
func (s *Store) List(ctx context.Context, params queryutil.ListParams) ([]*model.Article, error) {
	rows, err := s.db.Query(ctx, listArticlesSQL+params.OrderBy(), params.Topic.Slug)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	articles := []*model.Article{}
	for rows.Next() {
		var a model.Article
		if err := rows.Scan(
			&a.ArticleID, &a.Author, &a.Title, &a.Topic,
			&a.CreatedAt, &a.Votes, &a.ArticleImgURL, &a.CommentCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}

		articles = append(articles, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating articles: %w", err)
	}

	return articles, nil
}

func (s *Store) Get(ctx context.Context, id int64) (*model.Article, error) {
	var a model.Article

	err := s.db.QueryRow(ctx, getArticleSQL, id).Scan(
		&a.ArticleID, &a.Author, &a.Title, &a.Body, &a.Topic,
		&a.CreatedAt, &a.Votes, &a.ArticleImgURL, &a.CommentCount,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apierror.NotFound("Article")
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get article %d: %w", id, err)
	}

	return &a, nil
}

// IncrementVotes adds inc (possibly negative) to the article's votes in a
// single statement and returns the updated row without comment_count.
func (s *Store) IncrementVotes(ctx context.Context, id, inc int64) (*model.Article, error) {
	var a model.Article

	err := s.db.QueryRow(ctx, incrementVotesSQL, inc, id).Scan(
		&a.ArticleID, &a.Author, &a.Title, &a.Body, &a.Topic,
		&a.CreatedAt, &a.Votes, &a.ArticleImgURL,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apierror.NotFound("Article")
	}

	if err != nil {
		return nil, fmt.Errorf("failed to update votes of article %d: %w", id, err)
	}

	return &a, nil
}
