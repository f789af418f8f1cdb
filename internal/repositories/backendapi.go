package repositories

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"temperature-dashboard/internal/models"
	"temperature-dashboard/pkg/logger"
)

const (
	CitiesPath     = "/api/cities"
	ComparisonPath = "/api/temperature-comparison"
)

var (
	ErrBackendStatus      = errors.New("unexpected backend status")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrEmptyPayload       = errors.New("empty response payload")
)

type BackendOptions struct {
	// RequestsPerMinute of 0 disables the limiter.
	RequestsPerMinute int
	Burst             int
	// BreakerFailures of 0 disables the circuit breaker.
	BreakerFailures    uint32
	BreakerOpenTimeout time.Duration
}

type BackendAPIRepository struct {
	BaseURL    string
	httpClient HTTPClient
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	l          *logger.Logger
}

func NewBackendAPIRepository(baseURL string, l *logger.Logger, httpClient HTTPClient, opts BackendOptions) (*BackendAPIRepository, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("backend base URL cannot be empty")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	repo := &BackendAPIRepository{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		l:          l,
	}

	if opts.RequestsPerMinute > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		repo.limiter = rate.NewLimiter(rate.Limit(float64(opts.RequestsPerMinute)/60.0), burst)
	}

	if opts.BreakerFailures > 0 {
		failures := opts.BreakerFailures
		repo.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    repo.Name(),
			Timeout: opts.BreakerOpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				l.Warning("backend circuit breaker changed state", map[string]any{
					"breaker": name,
					"from":    from.String(),
					"to":      to.String(),
				})
			},
		})
	}

	return repo, nil
}

func (b *BackendAPIRepository) Name() string {
	return "backend-api"
}

func (b *BackendAPIRepository) FetchCities(ctx context.Context) ([]models.City, error) {
	b.l.Info("making backend cities request")

	body, err := b.get(ctx, CitiesPath, nil)
	if err != nil {
		return nil, err
	}

	var cities []models.City
	if err := json.Unmarshal(body, &cities); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	b.l.Info("parsed backend cities response", map[string]any{
		"cities": len(cities),
	})

	return cities, nil
}

func (b *BackendAPIRepository) FetchComparison(ctx context.Context, query models.ComparisonQuery) (*models.ComparisonResult, error) {
	b.l.Info("making backend comparison request", map[string]any{
		"params": query.RequestParams(),
	})

	params := url.Values{}
	params.Set("city1_id", query.City1ID)
	params.Set("city2_id", query.City2ID)
	params.Set("start_date", query.StartDate)
	params.Set("end_date", query.EndDate)

	body, err := b.get(ctx, ComparisonPath, params)
	if err != nil {
		return nil, err
	}

	if bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return nil, ErrEmptyPayload
	}

	var result models.ComparisonResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	b.l.Info("parsed backend comparison response", map[string]any{
		"hours": len(result.HourlyData),
	})

	return &result, nil
}

type backendResponse struct {
	status     int
	statusText string
	body       []byte
}

// get performs a rate limited GET through the circuit breaker. Only transport
// errors and 5xx responses count as breaker failures.
func (b *BackendAPIRepository) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if b.limiter != nil {
		if err := b.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	endpoint := b.BaseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	call := func() (interface{}, error) {
		return b.do(ctx, endpoint)
	}

	var (
		raw any
		err error
	)
	if b.breaker != nil {
		raw, err = b.breaker.Execute(call)
	} else {
		raw, err = call()
	}
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
		}
		return nil, err
	}

	resp := raw.(*backendResponse)

	b.l.Info("received backend response", map[string]any{
		"path":       path,
		"status":     resp.status,
		"statusText": resp.statusText,
	})

	if resp.status < 200 || resp.status >= 300 {
		return nil, fmt.Errorf("%w (status %d): %s", ErrBackendStatus, resp.status, resp.statusText)
	}

	return resp.body, nil
}

func (b *BackendAPIRepository) do(ctx context.Context, endpoint string) (*backendResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	out := &backendResponse{status: resp.StatusCode, statusText: resp.Status, body: body}
	if resp.StatusCode >= http.StatusInternalServerError {
		return out, fmt.Errorf("%w (status %d): %s", ErrBackendStatus, resp.StatusCode, resp.Status)
	}

	return out, nil
}
