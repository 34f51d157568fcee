package topic

import (
	"context"
	"fmt"

	"github.com/SergeyParamoshkin/news/internal/database"
	"github.com/SergeyParamoshkin/news/internal/model"
)

const listTopicsSQL = `SELECT slug, description FROM topics ORDER BY slug`

type Store struct {
	db database.DBTX
}

func NewStore(db database.DBTX) *Store {
	return &Store{db: db}
}

func (s *Store) List(ctx context.Context) ([]*model.Topic, error) {
	rows, err := s.db.Query(ctx, listTopicsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	defer rows.Close()

	topics := []*model.Topic{}
	for rows.Next() {
		var t model.Topic
		if err := rows.Scan(&t.Slug, &t.Description); err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}

		topics = append(topics, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating topics: %w", err)
	}

	return topics, nil
}
