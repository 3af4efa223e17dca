package providers

import (
	"context"
	"encoding/json"
	"errors"
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

const (
	defaultOpenWeatherURL = "https://api.openweathermap.org/data/2.5"
	// Forecast slots are three hours apart.
	forecastSlotTolerance = 3 * time.Hour
)

var (
	ErrWeatherNotConfigured = fmt.Errorf("%w: weather API key not configured", models.ErrNoData)
	ErrForecastUnavailable  = fmt.Errorf("%w: kickoff outside forecast window", models.ErrNoData)
)

type OpenWeatherOptions struct {
	APIKey    string
	BaseURL   string
	Timeout   time.Duration
	RateLimit int // requests per minute
	CacheTTL  time.Duration
}

// OpenWeatherProvider fetches the 5-day/3-hour forecast from OpenWeatherMap.
type OpenWeatherProvider struct {
	client   *http.Client
	cache    cache.Cache
	breaker  *CircuitBreakerService
	limiter  *rate.Limiter
	apiKey   string
	baseURL  string
	cacheTTL time.Duration
	logger   *logrus.Logger
}

type forecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
		Pop float64 `json:"pop"`
	} `json:"list"`
}

func NewOpenWeatherProvider(opts OpenWeatherOptions, c cache.Cache, breaker *CircuitBreakerService, logger *logrus.Logger) *OpenWeatherProvider {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultOpenWeatherURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 60
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Hour
	}

	return &OpenWeatherProvider{
		client:   &http.Client{Timeout: opts.Timeout},
		cache:    cache.WithNamespace(c, ServiceOpenWeather),
		breaker:  breaker,
		limiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RateLimit)), opts.RateLimit),
		apiKey:   opts.APIKey,
		baseURL:  opts.BaseURL,
		cacheTTL: opts.CacheTTL,
		logger:   logger,
	}
}

// Forecast returns the forecast slot nearest kickoff at the stadium. A
// kickoff beyond the forecast horizon yields ErrForecastUnavailable.
func (p *OpenWeatherProvider) Forecast(ctx context.Context, team string, loc models.Location, kickoff time.Time) (*models.WeatherConditions, error) {
	if p.apiKey == "" {
		return nil, ErrWeatherNotConfigured
	}

	cacheKey := cache.WeatherKey(team, kickoff)
	var cached models.WeatherConditions
	if hit, err := p.cache.Get(ctx, cacheKey, &cached); err != nil {
		p.logger.WithError(err).WithField("component", "openweather").Debug("Weather cache read failed")
	} else if hit {
		return &cached, nil
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("weather rate limiter: %w", err)
	}

	result, err := p.breaker.Execute(ServiceOpenWeather, func() (interface{}, error) {
		return p.fetchForecast(ctx, loc)
	})
	if err != nil {
		return nil, err
	}

	conditions, err := nearestSlot(result.(*forecastResponse), kickoff)
	if err != nil {
		return nil, err
	}

	if err := p.cache.Set(ctx, cacheKey, conditions, p.cacheTTL); err != nil {
		p.logger.WithError(err).WithField("component", "openweather").Warn("Failed to cache weather data")
	}

	return conditions, nil
}

func (p *OpenWeatherProvider) fetchForecast(ctx context.Context, loc models.Location) (*forecastResponse, error) {
	params := url.Values{}
	params.Add("lat", strconv.FormatFloat(loc.Latitude, 'f', 6, 64))
	params.Add("lon", strconv.FormatFloat(loc.Longitude, 'f', 6, 64))
	params.Add("appid", p.apiKey)
	params.Add("units", "imperial")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/forecast?%s", p.baseURL, params.Encode()), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create forecast request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forecast data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast API returned status %d", resp.StatusCode)
	}

	var forecast forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return nil, fmt.Errorf("failed to parse forecast response: %w", err)
	}
	return &forecast, nil
}

func nearestSlot(forecast *forecastResponse, kickoff time.Time) (*models.WeatherConditions, error) {
	best := -1
	var bestGap time.Duration
	for i, slot := range forecast.List {
		gap := time.Unix(slot.Dt, 0).Sub(kickoff)
		if gap < 0 {
			gap = -gap
		}
		if best < 0 || gap < bestGap {
			best, bestGap = i, gap
		}
	}
	if best < 0 || bestGap > forecastSlotTolerance {
		return nil, ErrForecastUnavailable
	}

	slot := forecast.List[best]
	conditions := &models.WeatherConditions{
		Temperature:       slot.Main.Temp,
		WindSpeed:         slot.Wind.Speed,
		PrecipProbability: slot.Pop,
		ForecastTime:      time.Unix(slot.Dt, 0).UTC(),
	}
	if len(slot.Weather) > 0 {
		conditions.Conditions = slot.Weather[0].Main
	}
	return conditions, nil
}

// IsNoData reports whether err means the upstream simply had nothing.
func IsNoData(err error) bool {
	return errors.Is(err, models.ErrNoData)
}
