package model

import (
	"encoding/json"
	"time"
)

// Article data model. CommentCount is derived at read time and stays nil
// when the article has no comments.
type Article struct {
	ArticleID     int64     `json:"article_id"`
	Author        string    `json:"author"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	Topic         string    `json:"topic"`
	CreatedAt     time.Time `json:"created_at"`
	Votes         int64     `json:"votes"`
	ArticleImgURL string    `json:"article_img_url"`
	CommentCount  *int64    `json:"comment_count"`
}

// MarshalJSON renders created_at with milliseconds.
func (a Article) MarshalJSON() ([]byte, error) {
	type plain Article

	return json.Marshal(struct {
		plain
		CreatedAt Timestamp `json:"created_at"`
	}{plain(a), Timestamp(a.CreatedAt)})
}
