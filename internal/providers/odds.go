package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/stitts-dev/nfl-edge/internal/cache"
	"github.com/stitts-dev/nfl-edge/internal/models"
)

var (
	ErrOddsNotConfigured = fmt.Errorf("%w: odds feed not configured", models.ErrNoData)
	ErrLineUnavailable   = fmt.Errorf("%w: no betting line posted", models.ErrNoData)
)

type OddsOptions struct {
	APIKey    string
	BaseURL   string
	Timeout   time.Duration
	RateLimit int // requests per minute
	CacheTTL  time.Duration
}

// OddsProvider reads consensus spreads and totals from a betting-lines feed.
type OddsProvider struct {
	client   *http.Client
	cache    cache.Cache
	breaker  *CircuitBreakerService
	limiter  *rate.Limiter
	apiKey   string
	baseURL  string
	cacheTTL time.Duration
	logger   *logrus.Logger
}

type oddsResponse struct {
	HomeTeam   string    `json:"home_team"`
	AwayTeam   string    `json:"away_team"`
	HomeSpread *float64  `json:"home_spread"`
	Total      *float64  `json:"total"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewOddsProvider(opts OddsOptions, c cache.Cache, breaker *CircuitBreakerService, logger *logrus.Logger) *OddsProvider {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 30
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 15 * time.Minute
	}

	return &OddsProvider{
		client:   &http.Client{Timeout: opts.Timeout},
		cache:    cache.WithNamespace(c, ServiceOdds),
		breaker:  breaker,
		limiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RateLimit)), opts.RateLimit),
		apiKey:   opts.APIKey,
		baseURL:  opts.BaseURL,
		cacheTTL: opts.CacheTTL,
		logger:   logger,
	}
}

// GameLine returns the current line for home vs away.
func (p *OddsProvider) GameLine(ctx context.Context, season, week int, home, away string) (*models.GameLine, error) {
	if p.baseURL == "" {
		return nil, ErrOddsNotConfigured
	}

	cacheKey := cache.OddsKey(season, week, home, away)
	var cached models.GameLine
	if hit, err := p.cache.Get(ctx, cacheKey, &cached); err != nil {
		p.logger.WithError(err).WithField("component", "odds").Debug("Odds cache read failed")
	} else if hit {
		return &cached, nil
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("odds rate limiter: %w", err)
	}

	result, err := p.breaker.Execute(ServiceOdds, func() (interface{}, error) {
		return p.fetchLine(ctx, season, week, home, away)
	})
	if err != nil {
		return nil, err
	}
	line := result.(*models.GameLine)
	if line == nil {
		return nil, ErrLineUnavailable
	}

	if err := p.cache.Set(ctx, cacheKey, line, p.cacheTTL); err != nil {
		p.logger.WithError(err).WithField("component", "odds").Warn("Failed to cache game line")
	}
	return line, nil
}

// fetchLine reports a missing line as a nil result with no error so the
// breaker does not count it as an upstream failure.
func (p *OddsProvider) fetchLine(ctx context.Context, season, week int, home, away string) (*models.GameLine, error) {
	params := url.Values{}
	params.Add("season", strconv.Itoa(season))
	params.Add("week", strconv.Itoa(week))
	params.Add("home", home)
	params.Add("away", away)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/v1/nfl/odds?%s", p.baseURL, params.Encode()), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create odds request: %w", err)
	}
	if p.apiKey != "" {
		req.Header.Set("X-API-Key", p.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch odds: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("odds API returned status %d", resp.StatusCode)
	}

	var body oddsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to parse odds response: %w", err)
	}
	if body.HomeSpread == nil || body.Total == nil {
		return nil, nil
	}

	return &models.GameLine{
		HomeSpread: *body.HomeSpread,
		Total:      *body.Total,
		UpdatedAt:  body.UpdatedAt,
	}, nil
}
