package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/electromaison/storefront-api/models"
)

type MockStatsRepo struct {
	SourceStats models.Stats
	Err         error
}

func (m *MockStatsRepo) Stats() (models.Stats, error) {
	return m.SourceStats, m.Err
}

func TestHandleStats(t *testing.T) {
	testCases := []struct {
		name               string
		repo               *MockStatsRepo
		expectedStatusCode int
		expectedStats      models.Stats
	}{
		{
			name:               "Success",
			repo:               &MockStatsRepo{SourceStats: models.Stats{Products: 8, Clients: 2}},
			expectedStatusCode: http.StatusOK,
			expectedStats:      models.Stats{Products: 8, Clients: 2},
		},
		{
			name:               "Backend failure",
			repo:               &MockStatsRepo{Err: errors.New("db down")},
			expectedStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewAdminHandler(tc.repo)
			req := httptest.NewRequest("GET", "/api/admin/stats", nil)
			rec := httptest.NewRecorder()

			handler.HandleStats(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.expectedStatusCode == http.StatusOK {
				var stats models.Stats
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&stats))
				assert.Equal(t, tc.expectedStats, stats)
			}
		})
	}
}
