// Package client is a thin Go client for the news API. Non-2xx answers are
// returned as *apierror.Error carrying the status and the server message.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/SergeyParamoshkin/news/internal/apierror"
	"github.com/SergeyParamoshkin/news/internal/articleresponse"
	"github.com/SergeyParamoshkin/news/internal/model"
)

type Client struct {
	http.Client
	Addr string
}

// ArticleQuery mirrors the query string of GET /api/articles. Empty fields
// are left out.
type ArticleQuery struct {
	Topic  string
	SortBy string
	Order  string
}

func (q ArticleQuery) values() url.Values {
	v := url.Values{}
	if q.Topic != "" {
		v.Set("topic", q.Topic)
	}
	if q.SortBy != "" {
		v.Set("sort_by", q.SortBy)
	}
	if q.Order != "" {
		v.Set("order", q.Order)
	}

	return v
}

func (c *Client) Topics(ctx context.Context) ([]*model.Topic, error) {
	var out struct {
		Topics []*model.Topic `json:"topics"`
	}

	return out.Topics, c.do(ctx, http.MethodGet, "/api/topics", nil, &out)
}

func (c *Client) Users(ctx context.Context) ([]*model.User, error) {
	var out struct {
		Users []*model.User `json:"users"`
	}

	return out.Users, c.do(ctx, http.MethodGet, "/api/users", nil, &out)
}

func (c *Client) User(ctx context.Context, username string) (*model.User, error) {
	var out struct {
		User *model.User `json:"user"`
	}

	return out.User, c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(username), nil, &out)
}

func (c *Client) Articles(ctx context.Context, q ArticleQuery) ([]*articleresponse.Summary, error) {
	var out struct {
		Articles []*articleresponse.Summary `json:"articles"`
	}

	path := "/api/articles"
	if v := q.values(); len(v) > 0 {
		path += "?" + v.Encode()
	}

	return out.Articles, c.do(ctx, http.MethodGet, path, nil, &out)
}

func (c *Client) Article(ctx context.Context, id int64) (*model.Article, error) {
	var out struct {
		Article *model.Article `json:"article"`
	}

	return out.Article, c.do(ctx, http.MethodGet, articlePath(id), nil, &out)
}

func (c *Client) PatchArticleVotes(ctx context.Context, id, inc int64) (*articleresponse.Row, error) {
	var out struct {
		UpdatedArticle *articleresponse.Row `json:"updatedArticle"`
	}

	return out.UpdatedArticle, c.do(ctx, http.MethodPatch, articlePath(id), votes(inc), &out)
}

func (c *Client) Comments(ctx context.Context, articleID int64) ([]*model.Comment, error) {
	var out struct {
		Comments []*model.Comment `json:"comments"`
	}

	return out.Comments, c.do(ctx, http.MethodGet, articlePath(articleID)+"/comments", nil, &out)
}

func (c *Client) PostComment(ctx context.Context, articleID int64, username, body string) (*model.Comment, error) {
	var out struct {
		Comment *model.Comment `json:"comment"`
	}

	in := map[string]string{"username": username, "body": body}

	return out.Comment, c.do(ctx, http.MethodPost, articlePath(articleID)+"/comments", in, &out)
}

func (c *Client) PatchCommentVotes(ctx context.Context, id, inc int64) (*model.Comment, error) {
	var out struct {
		UpdatedComment *model.Comment `json:"updatedComment"`
	}

	return out.UpdatedComment, c.do(ctx, http.MethodPatch, commentPath(id), votes(inc), &out)
}

func (c *Client) DeleteComment(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, commentPath(id), nil, nil)
}

func articlePath(id int64) string {
	return "/api/articles/" + strconv.FormatInt(id, 10)
}

func commentPath(id int64) string {
	return "/api/comments/" + strconv.FormatInt(id, 10)
}

func votes(inc int64) map[string]int64 {
	return map[string]int64{"inc_votes": inc}
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.Addr+path, body)
	if err != nil {
		return err
	}

	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}

	return nil
}

func decodeError(resp *http.Response) error {
	var msg struct {
		Message string `json:"message"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil || msg.Message == "" {
		msg.Message = http.StatusText(resp.StatusCode)
	}

	return apierror.New(resp.StatusCode, msg.Message)
}
