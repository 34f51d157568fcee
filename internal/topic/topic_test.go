package topic

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestListTopics(t *testing.T) {
	t.Run("returns every topic", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT slug, description FROM topics`).
			WillReturnRows(pgxmock.NewRows([]string{"slug", "description"}).
				AddRow("mitch", "The man, the Mitch, the legend").
				AddRow("cats", "Not dogs").
				AddRow("paper", "what books are made of"))

		api := NewAPI(NewStore(mock), zap.NewNop().Sugar())

		w := httptest.NewRecorder()
		api.ListTopics(w, httptest.NewRequest(http.MethodGet, "/api/topics", nil))

		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Topics []map[string]any `json:"topics"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Topics, 3)

		for _, topic := range body.Topics {
			assert.Len(t, topic, 2)
			assert.IsType(t, "", topic["slug"])
			assert.IsType(t, "", topic["description"])
		}

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty table renders an empty list", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT slug, description FROM topics`).
			WillReturnRows(pgxmock.NewRows([]string{"slug", "description"}))

		api := NewAPI(NewStore(mock), zap.NewNop().Sugar())

		w := httptest.NewRecorder()
		api.ListTopics(w, httptest.NewRequest(http.MethodGet, "/api/topics", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"topics":[]}`, w.Body.String())
	})

	t.Run("database failure is internal", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT slug, description FROM topics`).
			WillReturnError(errors.New("conn closed"))

		api := NewAPI(NewStore(mock), zap.NewNop().Sugar())

		w := httptest.NewRecorder()
		api.ListTopics(w, httptest.NewRequest(http.MethodGet, "/api/topics", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"message":"Internal Server Error"}`, w.Body.String())
	})
}
