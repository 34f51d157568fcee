package comment

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/SergeyParamoshkin/news/internal/apierror"
	"github.com/SergeyParamoshkin/news/internal/database"
	"github.com/SergeyParamoshkin/news/internal/model"
)

const (
	incrementVotesSQL = `
	UPDATE comments SET votes = votes + $1
	WHERE comment_id = $2
	RETURNING comment_id, author, body, article_id, votes, created_at`

	deleteCommentSQL = `DELETE FROM comments WHERE comment_id = $1`
)

type Store struct {
	db database.DBTX
}

func NewStore(db database.DBTX) *Store {
	return &Store{db: db}
}

func (s *Store) IncrementVotes(ctx context.Context, id, inc int64) (*model.Comment, error) {
	var c model.Comment

	err := s.db.QueryRow(ctx, incrementVotesSQL, inc, id).
		Scan(&c.CommentID, &c.Author, &c.Body, &c.ArticleID, &c.Votes, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apierror.NotFound("Comment")
	}

	if err != nil {
		return nil, fmt.Errorf("failed to update votes of comment %d: %w", id, err)
	}

	return &c, nil
}

// Delete removes a comment; a 404 when nothing was deleted.
func (s *Store) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, deleteCommentSQL, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment %d: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return apierror.NotFound("Comment")
	}

	return nil
}
