package user

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

const (
	listUsersSQL = `SELECT username, name, avatar_url FROM users ORDER BY username`
	getUserSQL   = `SELECT username, name, avatar_url FROM users WHERE username = $1`
)

type Store struct {
	db database.DBTX
}

func NewStore(db database.DBTX) *Store {
	return &Store{db: db}
}

func (s *Store) List(ctx context.Context) ([]*model.User, error) {
	rows, err := s.db.Query(ctx, listUsersSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []*model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.Username, &u.Name, &u.AvatarURL); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}

		users = append(users, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// Get returns a 400 for a malformed username before touching the database,
// and a 404 when no such user exists.
func (s *Store) Get(ctx context.Context, username string) (*model.User, error) {
	if !queryutil.CheckValidUsername(username) {
		return nil, apierror.BadRequest()
	}

	var u model.User

	err := s.db.QueryRow(ctx, getUserSQL, username).Scan(&u.Username, &u.Name, &u.AvatarURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apierror.NotFound("User")
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get user %q: %w", username, err)
	}

	return &u, nil
}
