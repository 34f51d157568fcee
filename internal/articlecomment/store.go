// Package articlecomment serves the comments nested under an article:
// listing them and posting new ones.
package articlecomment

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/sync/errgroup"

	"github.com/SergeyParamoshkin/news/internal/apierror"
	"github.com/SergeyParamoshkin/news/internal/database"
	"github.com/SergeyParamoshkin/news/internal/model"
	"github.com/SergeyParamoshkin/news/internal/payload"
	"github.com/SergeyParamoshkin/news/internal/queryutil"
)

const (
	pgForeignKeyViolation = "23503"

	// constraint names from migrations/000001_init.up.sql
	articleConstraint = "comments_article_id_fkey"
	authorConstraint  = "comments_author_fkey"
)

const (
	listCommentsSQL = `
	SELECT comment_id, author, body, article_id, votes, created_at
	FROM comments
	WHERE article_id = $1
	ORDER BY created_at DESC, comment_id DESC`

	insertCommentSQL = `
	INSERT INTO comments (author, body, article_id)
	VALUES ($1, $2, $3)
	RETURNING comment_id, author, body, article_id, votes, created_at`
)

// Store runs its two list queries concurrently, so db must be a pool rather
// than a single connection or transaction.
type Store struct {
	db database.DBTX
}

func NewStore(db database.DBTX) *Store {
	return &Store{db: db}
}

// List returns the comments of an article, newest first. An article with
// no comments yields an empty list; only a missing article is a 404.
func (s *Store) List(ctx context.Context, articleID int64) ([]*model.Comment, error) {
	var (
		comments []*model.Comment
		exists   bool
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		comments, err = s.list(gctx, articleID)

		return err
	})

	g.Go(func() error {
		var err error
		exists, err = queryutil.CheckForeignPrimaryKey(gctx, s.db, queryutil.ArticleKey, articleID)

		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(comments) == 0 && !exists {
		return nil, apierror.NotFound("Article")
	}

	return comments, nil
}

func (s *Store) list(ctx context.Context, articleID int64) ([]*model.Comment, error) {
	rows, err := s.db.Query(ctx, listCommentsSQL, articleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments of article %d: %w", articleID, err)
	}
	defer rows.Close()

	comments := []*model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.CommentID, &c.Author, &c.Body, &c.ArticleID, &c.Votes, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}

		comments = append(comments, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	return comments, nil
}

// Create posts a comment. The article must exist (404) before the body is
// judged (400). The existence check and the insert are separate round trips;
// a foreign key violation at insert time is reported as the missing row.
func (s *Store) Create(ctx context.Context, articleID int64, req *payload.CommentRequest) (*model.Comment, error) {
	exists, err := queryutil.CheckForeignPrimaryKey(ctx, s.db, queryutil.ArticleKey, articleID)
	if err != nil {
		return nil, err
	}

	if !exists {
		return nil, apierror.NotFound("Article")
	}

	if err := req.Validate(articleID); err != nil {
		return nil, err
	}

	var c model.Comment

	err = s.db.QueryRow(ctx, insertCommentSQL, req.Row(articleID)...).
		Scan(&c.CommentID, &c.Author, &c.Body, &c.ArticleID, &c.Votes, &c.CreatedAt)
	if err != nil {
		if notFound := foreignKeyNotFound(err); notFound != nil {
			return nil, notFound
		}

		return nil, fmt.Errorf("failed to insert comment on article %d: %w", articleID, err)
	}

	return &c, nil
}

func foreignKeyNotFound(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgForeignKeyViolation {
		return nil
	}

	switch pgErr.ConstraintName {
	case articleConstraint:
		return apierror.NotFound("Article")
	case authorConstraint:
		return apierror.NotFound("User")
	default:
		return nil
	}
}
