package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourname/sleepcatalyst/internal"
	"github.com/yourname/sleepcatalyst/internal/auth"
	"github.com/yourname/sleepcatalyst/internal/storage"
	"github.com/yourname/sleepcatalyst/internal/tracker"
	"go.uber.org/zap"
)

const testToken = "MOCK-TOKEN"

type memStore struct {
	values map[string]string
}

func (m *memStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memStore) Set(ctx context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

func (m *memStore) Close() error { return nil }

var _ storage.Store = (*memStore)(nil)

type testApp struct {
	logger internal.Logger
	trk    *tracker.Tracker
}

func (a *testApp) Logger() internal.Logger   { return a.logger }
func (a *testApp) Tracker() *tracker.Tracker { return a.trk }

func setupRouter(t *testing.T) (*gin.Engine, *tracker.Tracker) {
	gin.SetMode(gin.TestMode)
	logger := internal.NewZapLogger(zap.NewNop().Sugar())
	trk := tracker.New(&memStore{values: make(map[string]string)}, internal.DefaultGoalHours, logger)
	trk.Init(context.Background())

	r := gin.New()
	app := &testApp{logger: logger, trk: trk}
	provider := auth.NewLocalProvider(testToken, logger)
	RegisterRoutes(r, app, auth.Middleware(provider))
	return r, trk
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer "+testToken)
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequired(t *testing.T) {
	r, _ := setupRouter(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/sleep", nil)
	r.ServeHTTP(rec, req)
	assert.Equal(t, 401, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/sleep", nil)
	req.Header.Set("Authorization", "Bearer wrong-token")
	r.ServeHTTP(rec, req)
	assert.Equal(t, 401, rec.Code)
}

func TestPostSleep_ValidAndInvalid(t *testing.T) {
	r, trk := setupRouter(t)

	rec := doJSON(t, r, "POST", "/sleep", `{"bedTime":"22:00","wakeTime":"06:00"}`)
	assert.Equal(t, 200, rec.Code)
	require.Len(t, trk.Entries(), 1)
	assert.Equal(t, 8.0, trk.Entries()[0].Duration)

	// Invalid: bad clock value
	rec = doJSON(t, r, "POST", "/sleep", `{"bedTime":"25:00","wakeTime":"06:00"}`)
	assert.Equal(t, 400, rec.Code)

	// Invalid: missing wakeTime
	rec = doJSON(t, r, "POST", "/sleep", `{"bedTime":"22:00"}`)
	assert.Equal(t, 400, rec.Code)

	assert.Len(t, trk.Entries(), 1)
}

func TestGetSleep_NewestFirst(t *testing.T) {
	r, _ := setupRouter(t)

	doJSON(t, r, "POST", "/sleep", `{"bedTime":"22:00","wakeTime":"06:00"}`)
	doJSON(t, r, "POST", "/sleep", `{"bedTime":"23:00","wakeTime":"05:30"}`)

	rec := doJSON(t, r, "GET", "/sleep", "")
	assert.Equal(t, 200, rec.Code)

	var resp struct {
		Data []internal.SleepEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "23:00", resp.Data[0].BedTime)
	assert.Equal(t, "22:00", resp.Data[1].BedTime)
}

func TestDeleteSleep(t *testing.T) {
	r, trk := setupRouter(t)

	doJSON(t, r, "POST", "/sleep", `{"bedTime":"22:00","wakeTime":"06:00"}`)
	require.Len(t, trk.Entries(), 1)
	id := trk.Entries()[0].ID

	// Unknown id: still 200, nothing removed
	rec := doJSON(t, r, "DELETE", fmt.Sprintf("/sleep/%d", id+999), "")
	assert.Equal(t, 200, rec.Code)
	assert.Len(t, trk.Entries(), 1)

	rec = doJSON(t, r, "DELETE", fmt.Sprintf("/sleep/%d", id), "")
	assert.Equal(t, 200, rec.Code)
	assert.Empty(t, trk.Entries())

	// Malformed id
	rec = doJSON(t, r, "DELETE", "/sleep/not-a-number", "")
	assert.Equal(t, 400, rec.Code)
}

func TestGetSleepStats(t *testing.T) {
	r, _ := setupRouter(t)

	rec := doJSON(t, r, "GET", "/sleep/stats", "")
	assert.Equal(t, 200, rec.Code)

	var resp struct {
		Data struct {
			AverageHours       float64 `json:"average_hours"`
			ConsistencyPercent int     `json:"consistency_percent"`
		} `json:"data"`
		Meta map[string]any `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0.0, resp.Data.AverageHours)
	assert.Equal(t, 0, resp.Data.ConsistencyPercent)
	assert.Equal(t, 8.0, resp.Meta["goal_hours"])
	assert.Equal(t, 8.0, resp.Meta["goal_deficit_hours"])

	doJSON(t, r, "POST", "/sleep", `{"bedTime":"22:00","wakeTime":"06:00"}`) // 8h
	doJSON(t, r, "POST", "/sleep", `{"bedTime":"00:00","wakeTime":"06:00"}`) // 6h

	rec = doJSON(t, r, "GET", "/sleep/stats", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 7.0, resp.Data.AverageHours)
	assert.Equal(t, 50, resp.Data.ConsistencyPercent)
	assert.Equal(t, 2.0, resp.Meta["entry_count"])
	assert.Equal(t, 1.0, resp.Meta["goal_deficit_hours"])
}

func TestGetSleepTrend(t *testing.T) {
	r, _ := setupRouter(t)

	rec := doJSON(t, r, "GET", "/sleep/trend", "")
	assert.Equal(t, 200, rec.Code)

	var resp struct {
		Data struct {
			Points           []internal.SleepEntry `json:"points"`
			GoalHours        float64               `json:"goal_hours"`
			InsufficientData bool                  `json:"insufficient_data"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Data.InsufficientData)

	doJSON(t, r, "POST", "/sleep", `{"bedTime":"22:00","wakeTime":"06:00"}`)
	doJSON(t, r, "POST", "/sleep", `{"bedTime":"23:00","wakeTime":"06:00"}`)

	rec = doJSON(t, r, "GET", "/sleep/trend", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Data.InsufficientData)
	require.Len(t, resp.Data.Points, 2)
	assert.Equal(t, "22:00", resp.Data.Points[0].BedTime, "chronological order")
	assert.Equal(t, 8.0, resp.Data.GoalHours)
}

func TestPostGoal_ValidAndInvalid(t *testing.T) {
	r, trk := setupRouter(t)

	rec := doJSON(t, r, "POST", "/api/goals", `{"hours":7.5}`)
	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, 7.5, trk.Goal())

	// Invalid: out of range
	rec = doJSON(t, r, "POST", "/api/goals", `{"hours":13}`)
	assert.Equal(t, 400, rec.Code)

	// Invalid: off the half-hour step
	rec = doJSON(t, r, "POST", "/api/goals", `{"hours":7.25}`)
	assert.Equal(t, 400, rec.Code)

	// Invalid: missing hours
	rec = doJSON(t, r, "POST", "/api/goals", `{}`)
	assert.Equal(t, 400, rec.Code)

	assert.Equal(t, 7.5, trk.Goal())

	rec = doJSON(t, r, "GET", "/api/goals", "")
	assert.Equal(t, 200, rec.Code)
	var resp struct {
		Data internal.GoalConfig `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 7.5, resp.Data.Hours)
}

func TestRequestIDHeader(t *testing.T) {
	r, _ := setupRouter(t)
	rec := doJSON(t, r, "GET", "/sleep", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
