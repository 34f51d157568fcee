// Package payload holds the request bodies of the news API. Bodies are
// decoded through render.Bind; each type checks its exact key set while
// unmarshalling so unknown fields never reach a store.
package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/SergeyParamoshkin/news/internal/apierror"
	"github.com/SergeyParamoshkin/news/internal/queryutil"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	err := v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return queryutil.CheckValidUsername(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}

	return v
}

var (
	errNotObject = errors.New("payload: body is not a JSON object")
	errTrailing  = errors.New("payload: unexpected data after the JSON value")
)

// Decode is a render.Decode replacement that reads exactly one JSON value
// from the body and fails on anything but whitespace after it.
func Decode(r *http.Request, v interface{}) error {
	if render.GetRequestContentType(r) != render.ContentTypeJSON {
		return render.DefaultDecoder(r, v)
	}

	defer io.Copy(io.Discard, r.Body) //nolint:errcheck

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return err
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return errTrailing
	}

	return nil
}

// decodeObject reads a JSON object keeping numbers as json.Number, so 2 and
// 2.5 stay distinguishable.
func decodeObject(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	if raw == nil {
		return nil, errNotObject
	}

	return raw, nil
}

// VoteRequest is the body of the vote endpoints: {"inc_votes": <integer>}.
type VoteRequest struct {
	IncVotes int64 `json:"inc_votes"`
}

func (v *VoteRequest) UnmarshalJSON(data []byte) error {
	raw, err := decodeObject(data)
	if err != nil {
		return err
	}

	if !queryutil.CheckValidVoteIncrease(raw) {
		return apierror.BadRequest()
	}

	// votes columns are INT
	inc, _ := queryutil.AsInteger(raw[queryutil.KeyIncVotes])
	if inc < math.MinInt32 || inc > math.MaxInt32 {
		return apierror.BadRequest()
	}

	v.IncVotes = inc

	return nil
}

func (v *VoteRequest) Bind(r *http.Request) error {
	return nil
}

// CommentRequest is the body of POST /api/articles/{article_id}/comments.
// Its shape is judged by Validate, after the article is known to exist.
type CommentRequest struct {
	Username string `json:"username" validate:"username"`
	Body     string `json:"body"`

	raw map[string]any
}

func (c *CommentRequest) UnmarshalJSON(data []byte) error {
	raw, err := decodeObject(data)
	if err != nil {
		return err
	}

	c.raw = raw
	c.Username, _ = raw[queryutil.KeyUsername].(string)
	c.Body, _ = raw[queryutil.KeyBody].(string)

	return nil
}

func (c *CommentRequest) Bind(r *http.Request) error {
	return nil
}

// Fields returns the decoded body as sent. The map is shared, callers must
// not modify it.
func (c *CommentRequest) Fields() map[string]any {
	return c.raw
}

// Validate checks that the body, with articleID merged in, is exactly
// {username, body, article_id}, that both values are strings and that the
// username is well formed. An empty body string is accepted.
func (c *CommentRequest) Validate(articleID int64) error {
	if !queryutil.CheckValidPostedComment(c.raw, articleID) {
		return apierror.BadRequest()
	}

	if _, ok := c.raw[queryutil.KeyUsername].(string); !ok {
		return apierror.BadRequest()
	}

	if _, ok := c.raw[queryutil.KeyBody].(string); !ok {
		return apierror.BadRequest()
	}

	if err := validate.Struct(c); err != nil {
		return apierror.BadRequest()
	}

	return nil
}

// Row merges articleID into the body and projects it in the column order of
// the comments insert.
func (c *CommentRequest) Row(articleID int64) []any {
	merged := make(map[string]any, len(c.raw)+1)
	for k, v := range c.raw {
		merged[k] = v
	}

	merged[queryutil.KeyArticleID] = articleID

	return queryutil.FormatObjectToRows(merged, CommentColumns)[0]
}

// CommentColumns is the key order of Row.
var CommentColumns = []string{queryutil.KeyUsername, queryutil.KeyBody, queryutil.KeyArticleID}
