package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var allowedKeys = map[string]bool{
	"description":     true,
	"queries":         true,
	"format":          true,
	"exampleResponse": true,
}

func TestLoad(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	require.NotEmpty(t, c)

	for key := range c {
		method, path, ok := strings.Cut(key, " ")
		require.True(t, ok, key)
		assert.Contains(t, []string{"GET", "POST", "PATCH", "DELETE"}, method)
		assert.True(t, strings.HasPrefix(path, "/api"), key)
		assert.NotContains(t, path, "{", key)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := parse([]byte(`{"GET /api": {"description": "x", "method": "GET"}}`))
	assert.Error(t, err)

	_, err = parse([]byte(`{"GET /api": {"queries": []}}`))
	assert.Error(t, err)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "GET /api", Key(http.MethodGet, "/api"))
	assert.Equal(t, "GET /api/articles", Key(http.MethodGet, "/api/articles/"))
	assert.Equal(t, "GET /api/users/:username", Key(http.MethodGet, "/api/users/{username}"))
	assert.Equal(t, "PATCH /api/articles/:article_id", Key(http.MethodPatch, "/api/articles/{article_id}/"))
	assert.Equal(t, "GET /api/articles/:article_id/comments", Key(http.MethodGet, "/api/articles/{article_id}/comments"))
	assert.Equal(t, "GET /api/articles/:slug", Key(http.MethodGet, "/api/articles/{slug:[a-z-]+}"))
}

func TestGetAPI(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	NewAPI(c, zap.NewNop().Sugar()).GetAPI(w, httptest.NewRequest(http.MethodGet, "/api", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Endpoints map[string]map[string]json.RawMessage `json:"endpoints"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Endpoints, len(c))

	for key, entry := range body.Endpoints {
		assert.Contains(t, entry, "description", key)

		for field := range entry {
			assert.True(t, allowedKeys[field], "%s has unexpected key %q", key, field)
		}
	}
}
