package nasa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/cosmicwatch/neo-backend/model"
)

const (
	// DefaultBaseURL is the NeoWs REST root.
	DefaultBaseURL = "https://api.nasa.gov/neo/rest/v1"

	// DefaultAPIKey is NASA's shared low-quota demo key.
	DefaultAPIKey = "DEMO_KEY"

	// requestTimeout bounds every outbound NASA call. There is no retry; a
	// failure is surfaced to the caller on first occurrence.
	requestTimeout = 15 * time.Second

	// pagesPerFilter is the fixed over-fetch multiplier for risk-filtered
	// browsing: upstream pagination knows nothing about the derived risk
	// level, so each logical page scans this many upstream pages.
	pagesPerFilter = 5
)

// Config holds the service configuration.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Cache      Cache
	Clock      clockwork.Clock
	Logger     *zap.Logger
}

// Service is the NASA NeoWs gateway: cached fetching, normalization, risk
// enrichment and the feed/browse/lookup orchestration.
type Service struct {
	baseURL string
	apiKey  string
	client  *http.Client
	cache   Cache
	clock   clockwork.Clock
	logger  *zap.Logger
}

// NewService creates a Service, filling in defaults for every zero field.
func NewService(cfg Config) *Service {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.APIKey == "" {
		cfg.APIKey = DefaultAPIKey
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: requestTimeout}
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Cache == nil {
		cfg.Cache = NewMemoryCache(DefaultCacheTTL, cfg.Clock)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Service{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  cfg.HTTPClient,
		cache:   cfg.Cache,
		clock:   cfg.Clock,
		logger:  cfg.Logger.With(zap.String("component", "nasa-service")),
	}
}

// cacheKey builds the deterministic key for an endpoint and its query
// parameters. url.Values.Encode sorts by key, so identical calls always
// share an entry.
func cacheKey(endpoint string, params url.Values) string {
	return endpoint + "?" + params.Encode()
}

// getOrFetch returns the cached response for endpoint+params when a
// non-stale entry exists, otherwise fetches from NASA and stores the result.
// Concurrent misses for the same key may each fetch; last writer wins with
// equivalent data.
func (s *Service) getOrFetch(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error) {
	key := cacheKey(endpoint, params)

	if data, ok := s.cache.Get(key); ok {
		cacheHitsTotal.Inc()
		return data, nil
	}
	cacheMissesTotal.Inc()

	query := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			query.Add(k, v)
		}
	}
	query.Set("api_key", s.apiKey)

	requestURL := s.baseURL + endpoint + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := s.clock.Now()
	resp, err := s.client.Do(req)
	upstreamRequestDuration.WithLabelValues(endpoint).Observe(s.clock.Since(start).Seconds())
	if err != nil {
		s.logger.Warn("NASA request failed", zap.String("endpoint", endpoint), zap.Error(err))
		upstreamErrorsTotal.WithLabelValues(errorClassNetwork).Inc()
		upstreamRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		return nil, badGatewayError("NASA API unavailable", 0)
	}
	defer resp.Body.Close()

	upstreamRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		upstreamErrorsTotal.WithLabelValues(errorClassNetwork).Inc()
		return nil, badGatewayError("NASA API unavailable", resp.StatusCode)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		upstreamErrorsTotal.WithLabelValues(errorClassRateLimit).Inc()
		return nil, rateLimitError()
	}
	if resp.StatusCode != http.StatusOK {
		upstreamErrorsTotal.WithLabelValues(errorClassUpstream).Inc()
		return nil, badGatewayError(upstreamMessage(body, resp.Status), resp.StatusCode)
	}

	// A 200 can still carry an error_message body (e.g. invalid date range).
	if msg := upstreamMessage(body, ""); msg != "" {
		upstreamErrorsTotal.WithLabelValues(errorClassUpstream).Inc()
		return nil, badGatewayError(msg, resp.StatusCode)
	}

	s.cache.Set(key, body)
	return body, nil
}

// upstreamMessage extracts NASA's error_message field, falling back to def.
func upstreamMessage(body []byte, def string) string {
	var errBody struct {
		ErrorMessage string `json:"error_message"`
	}
	if err := json.Unmarshal(body, &errBody); err == nil && errBody.ErrorMessage != "" {
		return errBody.ErrorMessage
	}
	return def
}

// GetFeed fetches the date-range feed document.
func (s *Service) GetFeed(ctx context.Context, startDate, endDate string) (*FeedDocument, error) {
	params := url.Values{}
	params.Set("start_date", startDate)
	params.Set("end_date", endDate)

	raw, err := s.getOrFetch(ctx, "/feed", params)
	if err != nil {
		return nil, err
	}

	var doc FeedDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, badGatewayError("Invalid response from NASA API", http.StatusOK)
	}
	return &doc, nil
}

// BrowseNEOs fetches exactly one upstream browse page, normalized.
func (s *Service) BrowseNEOs(ctx context.Context, page, size int) (*BrowsePage, error) {
	if page < 0 {
		page = 0
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(size))

	raw, err := s.getOrFetch(ctx, "/neo/browse", params)
	if err != nil {
		return nil, err
	}
	return NormalizeBrowse(raw, page)
}

// LookupAsteroid fetches a single asteroid by id, enriched. An upstream 404
// is classified as ErrNotFound, distinct from other upstream failures.
func (s *Service) LookupAsteroid(ctx context.Context, asteroidID string) (model.Asteroid, error) {
	raw, err := s.getOrFetch(ctx, "/neo/"+url.PathEscape(asteroidID), url.Values{})
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.UpstreamStatus == http.StatusNotFound {
			return model.Asteroid{}, ErrNotFound
		}
		return model.Asteroid{}, err
	}

	var asteroid model.Asteroid
	if err := json.Unmarshal(raw, &asteroid); err != nil {
		return model.Asteroid{}, badGatewayError("Invalid response from NASA API", http.StatusOK)
	}
	return Enrich(asteroid), nil
}

// FeedByDateRange returns every asteroid in the date range, enriched and
// optionally filtered by risk level. No pagination is applied in this mode.
func (s *Service) FeedByDateRange(ctx context.Context, startDate, endDate, riskLevel string) ([]model.Asteroid, error) {
	doc, err := s.GetFeed(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	flat, err := FlattenNEOs(doc.NearEarthObjects)
	if err != nil {
		return nil, badGatewayError("Invalid response from NASA API", http.StatusOK)
	}

	enriched := EnrichAll(flat)
	if riskLevel == "" {
		return enriched, nil
	}
	return filterByRiskLevel(enriched, riskLevel), nil
}

// BrowseResult is one logical page of the enriched browse listing. Links is
// the upstream pagination links document, absent in filtered mode where the
// upstream links no longer describe the logical pages.
type BrowseResult struct {
	Asteroids     []model.Asteroid
	Page          int
	TotalPages    int
	TotalElements int
	Links         json.RawMessage
}

// BrowseEnriched serves the paginated browse mode. Without a filter it maps
// one logical page to one upstream page. With a filter it over-fetches
// pagesPerFilter upstream pages, enriches and filters them all, then
// truncates to the requested size; the reported TotalPages is the
// approximation ceil(upstream_total_pages / pagesPerFilter), floored at 1.
func (s *Service) BrowseEnriched(ctx context.Context, page, size int, riskLevel string) (*BrowseResult, error) {
	if riskLevel == "" {
		bp, err := s.BrowseNEOs(ctx, page, size)
		if err != nil {
			return nil, err
		}
		return &BrowseResult{
			Asteroids:     EnrichAll(bp.NearEarthObjects),
			Page:          page,
			TotalPages:    bp.Page.TotalPages,
			TotalElements: bp.Page.TotalElements,
			Links:         bp.Links,
		}, nil
	}

	var all []model.Asteroid
	var pageMeta model.PageInfo
	for p := page * pagesPerFilter; p < page*pagesPerFilter+pagesPerFilter; p++ {
		bp, err := s.BrowseNEOs(ctx, p, size)
		if err != nil {
			return nil, err
		}
		all = append(all, bp.NearEarthObjects...)
		pageMeta = bp.Page
		// A short page signals the end of upstream data.
		if len(bp.NearEarthObjects) < size {
			break
		}
	}

	filtered := filterByRiskLevel(EnrichAll(all), riskLevel)
	if len(filtered) > size {
		filtered = filtered[:size]
	}

	totalPages := int(math.Ceil(float64(pageMeta.TotalPages) / float64(pagesPerFilter)))
	if totalPages < 1 {
		totalPages = 1
	}

	return &BrowseResult{
		Asteroids:     filtered,
		Page:          page,
		TotalPages:    totalPages,
		TotalElements: len(filtered),
	}, nil
}

// Stats holds the public landing-page aggregates.
type Stats struct {
	TotalNEOs         int
	HazardousCount    int
	ClosestApproachLD *float64
}

// GetStats aggregates the total tracked NEO count with a 7-day hazard
// window. A feed failure is tolerated (zero hazard figures) so the landing
// page survives NASA feed hiccups; a browse failure is not.
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	browse, err := s.BrowseNEOs(ctx, 0, 1)
	if err != nil {
		return nil, err
	}

	stats := &Stats{TotalNEOs: browse.Page.TotalElements}

	now := s.clock.Now().UTC()
	startDate := now.Format("2006-01-02")
	endDate := now.AddDate(0, 0, 7).Format("2006-01-02")

	doc, err := s.GetFeed(ctx, startDate, endDate)
	if err != nil {
		s.logger.Warn("stats feed window unavailable", zap.Error(err))
		return stats, nil
	}

	flat, err := FlattenNEOs(doc.NearEarthObjects)
	if err != nil {
		return stats, nil
	}

	var closest *float64
	for _, a := range flat {
		if a.IsPotentiallyHazardous {
			stats.HazardousCount++
		}
		if len(a.CloseApproachData) == 0 {
			continue
		}
		km := parseFloatDefault(a.CloseApproachData[0].MissDistance.Kilometers, math.NaN())
		if math.IsNaN(km) {
			continue
		}
		ld := km / LunarDistanceKm
		if closest == nil || ld < *closest {
			closest = &ld
		}
	}
	if closest != nil {
		rounded := math.Round(*closest*10) / 10
		stats.ClosestApproachLD = &rounded
	}
	return stats, nil
}

// ClearCache drops every cached NASA response unconditionally. Intended for
// operator-triggered invalidation, never called automatically.
func (s *Service) ClearCache() {
	s.cache.Clear()
}

func filterByRiskLevel(asteroids []model.Asteroid, level string) []model.Asteroid {
	filtered := make([]model.Asteroid, 0, len(asteroids))
	for _, a := range asteroids {
		if MatchesRiskLevel(a, level) {
			filtered = append(filtered, a)
		}
	}
	return filtered
}
