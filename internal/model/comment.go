package model

import (
	"encoding/json"
	"time"
)

type Comment struct {
	CommentID int64     `json:"comment_id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	ArticleID int64     `json:"article_id"`
	Votes     int64     `json:"votes"`
	CreatedAt time.Time `json:"created_at"`
}

// MarshalJSON renders created_at with milliseconds.
func (c Comment) MarshalJSON() ([]byte, error) {
	type plain Comment

	return json.Marshal(struct {
		plain
		CreatedAt Timestamp `json:"created_at"`
	}{plain(c), Timestamp(c.CreatedAt)})
}
