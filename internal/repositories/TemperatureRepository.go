package repositories

import (
	"context"
	"net/http"

	"temperature-dashboard/config"
	"temperature-dashboard/internal/models"
	"temperature-dashboard/pkg/logger"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// TemperatureRepository is the backend that owns the city catalog and
// computes temperature comparisons.
type TemperatureRepository interface {
	Name() string
	FetchCities(ctx context.Context) ([]models.City, error)
	FetchComparison(ctx context.Context, query models.ComparisonQuery) (*models.ComparisonResult, error)
}

func InitTemperatureRepository(cfg *config.Config, l *logger.Logger) (TemperatureRepository, error) {
	httpClient := &http.Client{Timeout: cfg.BackendTimeout()}

	return NewBackendAPIRepository(cfg.Backend.BaseURL, l, httpClient, BackendOptions{
		RequestsPerMinute:  cfg.Backend.RequestsPerMinute,
		Burst:              cfg.Backend.Burst,
		BreakerFailures:    cfg.Backend.BreakerFailures,
		BreakerOpenTimeout: cfg.BreakerOpenTimeout(),
	})
}
