package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdesk/core/internal/domain/entities"
	"github.com/taskdesk/core/internal/infrastructure/logger"
	"github.com/taskdesk/core/internal/ports"
)

func TestGetStatsHandler(t *testing.T) {
	svc := &fakeTaskService{
		statsFn: func(ctx context.Context) (*ports.DashboardStats, error) {
			return &ports.DashboardStats{
				Total:     8,
				Pending:   6,
				Completed: 2,
				Overdue:   1,
				Latest:    []*entities.Task{{ID: 8, Title: "Most recent"}},
			}, nil
		},
	}
	handler := NewDashboardHandler(svc, logger.NewNop())

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.GetStats(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var stats ports.DashboardStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, int64(8), stats.Total)
	assert.Equal(t, int64(6), stats.Pending)
	assert.Equal(t, int64(2), stats.Completed)
	assert.Equal(t, 1, stats.Overdue)
	require.Len(t, stats.Latest, 1)
	assert.Equal(t, "Most recent", stats.Latest[0].Title)
}
