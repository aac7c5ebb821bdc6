package neo

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cosmicwatch/neo-backend/database"
	"github.com/cosmicwatch/neo-backend/model"
	"github.com/cosmicwatch/neo-backend/nasa"
)

type stubService struct {
	feedAsteroids []model.Asteroid
	feedErr       error
	feedStart     string
	feedEnd       string
	feedRisk      string

	browseResult *nasa.BrowseResult
	browseErr    error
	browsePage   int
	browseSize   int
	browseRisk   string

	lookupAsteroid model.Asteroid
	lookupErr      error
	lookupID       string

	stats    *nasa.Stats
	statsErr error

	cacheCleared bool
}

func (s *stubService) FeedByDateRange(_ context.Context, startDate, endDate, riskLevel string) ([]model.Asteroid, error) {
	s.feedStart, s.feedEnd, s.feedRisk = startDate, endDate, riskLevel
	return s.feedAsteroids, s.feedErr
}

func (s *stubService) BrowseEnriched(_ context.Context, page, size int, riskLevel string) (*nasa.BrowseResult, error) {
	s.browsePage, s.browseSize, s.browseRisk = page, size, riskLevel
	return s.browseResult, s.browseErr
}

func (s *stubService) LookupAsteroid(_ context.Context, asteroidID string) (model.Asteroid, error) {
	s.lookupID = asteroidID
	return s.lookupAsteroid, s.lookupErr
}

func (s *stubService) GetStats(_ context.Context) (*nasa.Stats, error) {
	return s.stats, s.statsErr
}

func (s *stubService) ClearCache() { s.cacheCleared = true }

type stubPublisher struct {
	published []model.Asteroid
}

func (p *stubPublisher) Publish(_ context.Context, asteroid model.Asteroid) error {
	p.published = append(p.published, asteroid)
	return nil
}

type stubCounter struct{ count int }

func (s stubCounter) ConnectionCount() int { return s.count }

func newTestApp(svc *stubService, alerts AlertPublisher, sockets SocketCounter) *fiber.App {
	app := fiber.New()
	app.Get("/api/feed", GetFeed(svc))
	app.Get("/api/stats", GetStats(svc, sockets))
	app.Post("/api/cache/clear", ClearCache(svc))
	app.Get("/api/lookup/:asteroidId", LookupAsteroid(svc, database.DBConnection{}, alerts, zap.NewNop()))
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	return resp.StatusCode, payload
}

func TestGetFeedDateRangeMode(t *testing.T) {
	svc := &stubService{feedAsteroids: []model.Asteroid{
		{ID: "1", Name: "Eros"},
		{ID: "2", Name: "Apophis"},
	}}
	app := newTestApp(svc, nil, nil)

	status, payload := doRequest(t, app, http.MethodGet,
		"/api/feed?start_date=2026-01-01&end_date=2026-01-07&risk_level=high")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, float64(2), payload["count"])
	assert.Equal(t, "2026-01-01", svc.feedStart)
	assert.Equal(t, "2026-01-07", svc.feedEnd)
	assert.Equal(t, "high", svc.feedRisk)
}

func TestGetFeedBrowseModeDefaults(t *testing.T) {
	svc := &stubService{browseResult: &nasa.BrowseResult{
		Asteroids:     []model.Asteroid{{ID: "1"}},
		Page:          0,
		TotalPages:    100,
		TotalElements: 2000,
	}}
	app := newTestApp(svc, nil, nil)

	status, payload := doRequest(t, app, http.MethodGet, "/api/feed")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, float64(1), payload["count"])
	assert.Equal(t, float64(100), payload["totalPages"])
	assert.Equal(t, float64(2000), payload["totalElements"])
	assert.Equal(t, 0, svc.browsePage)
	assert.Equal(t, 20, svc.browseSize)
	assert.Equal(t, "", svc.browseRisk)
}

func TestGetFeedValidation(t *testing.T) {
	cases := []struct {
		name    string
		target  string
		message string
	}{
		{"unknown risk level", "/api/feed?risk_level=critical", "risk_level must be one of low, medium, high"},
		{"start date alone", "/api/feed?start_date=2026-01-01", "start_date and end_date must be provided together"},
		{"end date alone", "/api/feed?end_date=2026-01-07", "start_date and end_date must be provided together"},
		{"bad date format", "/api/feed?start_date=01-01-2026&end_date=2026-01-07", "Dates must be in YYYY-MM-DD format"},
		{"negative page", "/api/feed?page=-1", "page must be a non-negative integer"},
		{"non-numeric page", "/api/feed?page=abc", "page must be a non-negative integer"},
		{"zero size", "/api/feed?size=0", "size must be between 1 and 100"},
		{"oversized page size", "/api/feed?size=101", "size must be between 1 and 100"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(&stubService{}, nil, nil)
			status, payload := doRequest(t, app, http.MethodGet, tc.target)

			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, false, payload["success"])
			assert.Equal(t, tc.message, payload["message"])
		})
	}
}

func TestGetFeedRateLimitPropagation(t *testing.T) {
	svc := &stubService{browseErr: &nasa.APIError{
		StatusCode: http.StatusTooManyRequests,
		Message:    "NASA API rate limit exceeded. Get a free key at https://api.nasa.gov and set NASA_API_KEY",
	}}
	app := newTestApp(svc, nil, nil)

	status, payload := doRequest(t, app, http.MethodGet, "/api/feed")

	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, false, payload["success"])
	assert.Contains(t, payload["message"], "api.nasa.gov")
	assert.Contains(t, payload["message"], "NASA_API_KEY")
}

func TestLookupAsteroidNotFound(t *testing.T) {
	svc := &stubService{lookupErr: nasa.ErrNotFound}
	app := newTestApp(svc, nil, nil)

	status, payload := doRequest(t, app, http.MethodGet, "/api/lookup/99999")

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "Asteroid not found", payload["message"])
	assert.Equal(t, "99999", svc.lookupID)
}

func TestLookupAsteroidPublishesHazardAlert(t *testing.T) {
	svc := &stubService{lookupAsteroid: model.Asteroid{
		ID:           "3542519",
		Name:         "2010 PK9",
		RiskAnalysis: &model.RiskAnalysis{Score: 85, Level: model.RiskLevelCritical},
	}}
	alerts := &stubPublisher{}
	app := newTestApp(svc, alerts, nil)

	status, payload := doRequest(t, app, http.MethodGet, "/api/lookup/3542519")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, payload["success"])
	require.Len(t, alerts.published, 1)
	assert.Equal(t, "3542519", alerts.published[0].ID)
}

func TestLookupAsteroidSkipsAlertBelowThreshold(t *testing.T) {
	svc := &stubService{lookupAsteroid: model.Asteroid{
		ID:           "2000433",
		Name:         "433 Eros",
		RiskAnalysis: &model.RiskAnalysis{Score: 40, Level: model.RiskLevelMedium},
	}}
	alerts := &stubPublisher{}
	app := newTestApp(svc, alerts, nil)

	status, _ := doRequest(t, app, http.MethodGet, "/api/lookup/2000433")

	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, alerts.published)
}

func TestGetStats(t *testing.T) {
	closest := 0.5
	svc := &stubService{stats: &nasa.Stats{
		TotalNEOs:         32803,
		HazardousCount:    3,
		ClosestApproachLD: &closest,
	}}
	app := newTestApp(svc, nil, stubCounter{count: 7})

	status, payload := doRequest(t, app, http.MethodGet, "/api/stats")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, float64(32803), payload["totalNEOs"])
	assert.Equal(t, float64(3), payload["hazardousCount"])
	assert.Equal(t, 0.5, payload["closestApproachLD"])
	assert.Equal(t, float64(7), payload["socketCount"])
}

func TestClearCache(t *testing.T) {
	svc := &stubService{}
	app := newTestApp(svc, nil, nil)

	status, payload := doRequest(t, app, http.MethodPost, "/api/cache/clear")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Cache cleared successfully", payload["message"])
	assert.True(t, svc.cacheCleared)
}
