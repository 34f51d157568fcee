package errresponse

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergeyParamoshkin/news/internal/apierror"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "invalid text representation is a bad request",
			err:        fmt.Errorf("select article: %w", &pgconn.PgError{Code: "22P02"}),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Bad request",
		},
		{
			name:       "vote total out of range is a bad request",
			err:        fmt.Errorf("increment votes: %w", &pgconn.PgError{Code: "22003"}),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Bad request",
		},
		{
			name:       "structured error is passed through verbatim",
			err:        apierror.NotFound("Article"),
			wantStatus: http.StatusNotFound,
			wantMsg:    "Article not found",
		},
		{
			name:       "wrapped structured error",
			err:        fmt.Errorf("list comments: %w", apierror.BadRequest()),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Bad request",
		},
		{
			name:       "other database errors are internal",
			err:        &pgconn.PgError{Code: "23505"},
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Internal Server Error",
		},
		{
			name:       "structured error without message falls through",
			err:        &apierror.Error{Status: http.StatusTeapot},
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Internal Server Error",
		},
		{
			name:       "plain error",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := Classify(tt.err)
			assert.Equal(t, tt.wantStatus, resp.HTTPStatusCode)
			assert.Equal(t, tt.wantMsg, resp.Message)
			assert.Equal(t, tt.err, resp.Err)
		})
	}
}

func TestChainOrder(t *testing.T) {
	// each classifier only claims its own kind of failure
	err := &apierror.Error{Status: http.StatusNotFound, Message: "Article not found"}
	_, ok := ClassifyDatabase(err)
	assert.False(t, ok)

	_, ok = ClassifyStructured(&pgconn.PgError{Code: "22P02"})
	assert.False(t, ok)
}

func TestRender(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/articles/888", nil)

	Render(w, r, nil, apierror.NotFound("Article"))

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"message": "Article not found"}, body)
}

func TestNotValidRoute(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/not-a-route", nil)

	NotValidRoute(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Not a valid route"}`, w.Body.String())
}

func TestBadPayload(t *testing.T) {
	resp := Classify(BadPayload(errors.New("unexpected EOF")))
	assert.Equal(t, http.StatusBadRequest, resp.HTTPStatusCode)
	assert.Equal(t, "Bad request", resp.Message)

	notFound := apierror.NotFound("Article")
	assert.Same(t, notFound, BadPayload(notFound))
}
