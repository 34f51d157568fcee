package payload

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergeyParamoshkin/news/internal/apierror"
)

func newJSONRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")

	return r
}

func TestVoteRequestBind(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    int64
		wantErr bool
	}{
		{name: "positive", body: `{"inc_votes": 2}`, want: 2},
		{name: "negative", body: `{"inc_votes": -100}`, want: -100},
		{name: "whole float", body: `{"inc_votes": 3.0}`, want: 3},
		{name: "int4 max", body: `{"inc_votes": 2147483647}`, want: 2147483647},
		{name: "int4 min", body: `{"inc_votes": -2147483648}`, want: -2147483648},
		{name: "above int4", body: `{"inc_votes": 3000000000}`, wantErr: true},
		{name: "below int4", body: `{"inc_votes": -3000000000}`, wantErr: true},
		{name: "fraction", body: `{"inc_votes": 1.5}`, wantErr: true},
		{name: "string", body: `{"inc_votes": "world"}`, wantErr: true},
		{name: "wrong key", body: `{"hello": 4}`, wantErr: true},
		{name: "extra key", body: `{"inc_votes": 2, "sneakyKey": "drop all databases?"}`, wantErr: true},
		{name: "empty object", body: `{}`, wantErr: true},
		{name: "null", body: `null`, wantErr: true},
		{name: "array", body: `[1]`, wantErr: true},
		{name: "empty body", body: ``, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v VoteRequest
			err := render.Bind(newJSONRequest(tt.body), &v)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, v.IncVotes)
		})
	}
}

func TestCommentRequest(t *testing.T) {
	bind := func(t *testing.T, body string) *CommentRequest {
		t.Helper()

		var c CommentRequest
		require.NoError(t, render.Bind(newJSONRequest(body), &c))

		return &c
	}

	t.Run("valid", func(t *testing.T) {
		c := bind(t, `{"username": "rogersop", "body": "Hello, world!"}`)
		require.NoError(t, c.Validate(5))
		assert.Equal(t, []any{"rogersop", "Hello, world!", int64(5)}, c.Row(5))
	})

	t.Run("empty body string", func(t *testing.T) {
		c := bind(t, `{"username": "lurker", "body": ""}`)
		require.NoError(t, c.Validate(2))
		assert.Equal(t, []any{"lurker", "", int64(2)}, c.Row(2))
	})

	t.Run("row does not touch the decoded body", func(t *testing.T) {
		c := bind(t, `{"username": "rogersop", "body": "Hello, world!"}`)
		c.Row(5)
		assert.Len(t, c.Fields(), 2)
	})

	invalid := map[string]string{
		"extra key":        `{"username": "rogersop", "body": "Hello, world!", "sneakyKey": "drop all databases?"}`,
		"missing body":     `{"username": "rogersop"}`,
		"missing username": `{"body": "Hello, world!"}`,
		"numeric body":     `{"username": "rogersop", "body": 12}`,
		"empty username":   `{"username": "", "body": "hi"}`,
		"bad username":     `{"username": "robert'); --", "body": "hi"}`,
		"null body":        `{"username": "rogersop", "body": null}`,
		"client article":   `{"username": "rogersop", "body": "hi", "article_id": 9}`,
	}

	for name, body := range invalid {
		t.Run(name, func(t *testing.T) {
			c := bind(t, body)
			err := c.Validate(5)

			apiErr, ok := apierror.As(err)
			require.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, apiErr.Status)
		})
	}

	t.Run("malformed json", func(t *testing.T) {
		var c CommentRequest
		assert.Error(t, render.Bind(newJSONRequest(`{"username":`), &c))
	})
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "single object", body: `{"inc_votes": 1}`},
		{name: "trailing whitespace", body: "{\"inc_votes\": 1}\n\t "},
		{name: "second object", body: `{"inc_votes": 1} {"sneakyKey": 1}`, wantErr: true},
		{name: "trailing garbage", body: `{"inc_votes": 1}]`, wantErr: true},
		{name: "trailing number", body: `{"inc_votes": 1} 2`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v VoteRequest
			err := Decode(newJSONRequest(tt.body), &v)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(1), v.IncVotes)
		})
	}
}

func TestDecodeAsRenderDecoder(t *testing.T) {
	defer func(prev func(*http.Request, interface{}) error) { render.Decode = prev }(render.Decode)
	render.Decode = Decode

	var c CommentRequest
	err := render.Bind(newJSONRequest(`{"username":"lurker","body":"hi"} {"sneakyKey":1}`), &c)
	assert.Error(t, err)

	c = CommentRequest{}
	require.NoError(t, render.Bind(newJSONRequest(`{"username":"lurker","body":"hi"}`), &c))
	assert.Equal(t, "lurker", c.Username)
}
