package dashboard

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"temperature-dashboard/internal/models"
	"temperature-dashboard/internal/repositories"
	"temperature-dashboard/pkg/logger"
)

// DashboardService runs the dashboard state transitions for one session at a
// time and performs the backend calls they need.
type DashboardService struct {
	repo           repositories.TemperatureRepository
	sessions       repositories.SessionRepository
	l              *logger.Logger
	now            func() time.Time
	loadingTimeout time.Duration
	catalog        singleflight.Group
}

const (
	// DefaultLoadingTimeout bounds how long a session may show a pending comparison.
	DefaultLoadingTimeout = 30 * time.Second

	completeAttempts = 2
)

func NewDashboardService(
	repo repositories.TemperatureRepository,
	sessions repositories.SessionRepository,
	l *logger.Logger,
) *DashboardService {
	return &DashboardService{
		repo:     repo,
		sessions: sessions,
		l:        l,
		now:      time.Now,

		loadingTimeout: DefaultLoadingTimeout,
	}
}

// WithClock replaces the clock used for default date ranges and loading expiry.
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

// WithLoadingTimeout sets how long a comparison may stay pending before the
// session gives up on it. It should exceed the backend timeout.
func (s *DashboardService) WithLoadingTimeout(timeout time.Duration) *DashboardService {
	s.loadingTimeout = timeout
	return s
}

// StartSession creates the session state: default date range, then one
// attempt at loading the city catalog. A catalog failure is recorded in the
// state, not returned.
func (s *DashboardService) StartSession(ctx context.Context, id string) (models.DashboardState, error) {
	state := NewState(s.now())

	cities, err := s.fetchCities(ctx)
	if err != nil {
		s.l.Error(err, map[string]any{"session": id, "repo": s.repo.Name()})
		state = WithCitiesError(state)
	} else {
		state = WithCities(state, cities)
	}

	if err := s.sessions.Create(ctx, id, state); err != nil {
		return models.DashboardState{}, errors.Wrap(err, "create session")
	}

	s.l.Info("session started", map[string]any{
		"session": id,
		"cities":  len(state.Cities),
	})

	return state, nil
}

// fetchCities collapses simultaneous catalog requests into one backend call.
func (s *DashboardService) fetchCities(ctx context.Context) ([]models.City, error) {
	v, err, shared := s.catalog.Do("cities", func() (interface{}, error) {
		return s.repo.FetchCities(ctx)
	})
	if err != nil {
		return nil, errors.Wrap(err, "fetch cities")
	}

	cities := v.([]models.City)
	if shared {
		s.l.Debug("shared city catalog fetch", map[string]any{"cities": len(cities)})
	}

	return append([]models.City(nil), cities...), nil
}

// State returns the session state. A comparison pending past the loading
// timeout is reported as failed; the store catches up on the next update.
func (s *DashboardService) State(ctx context.Context, id string) (models.DashboardState, error) {
	state, err := s.sessions.Get(ctx, id)
	if err != nil {
		return state, err
	}
	state, _ = ExpireLoading(state, s.now(), s.loadingTimeout)
	return state, nil
}

// Apply stores one (kind, value) change from the selection panel.
func (s *DashboardService) Apply(ctx context.Context, id, kind, value string) (models.DashboardState, error) {
	return s.update(ctx, id, func(state models.DashboardState) (models.DashboardState, error) {
		return Apply(state, kind, value)
	})
}

// Compare runs a comparison request for the session's current selection.
// Validation failures and backend failures end up in the returned state;
// the error is reserved for session store problems.
func (s *DashboardService) Compare(ctx context.Context, id string) (models.DashboardState, error) {
	var (
		seq   uint64
		ok    bool
		query models.ComparisonQuery
	)

	state, err := s.update(ctx, id, func(state models.DashboardState) (models.DashboardState, error) {
		var next models.DashboardState
		next, seq, ok = BeginComparison(state)
		if ok {
			next.LoadingSince = s.now().UTC()
		}
		query = QueryOf(next)
		return next, nil
	})
	if err != nil || !ok {
		return state, err
	}

	s.l.Info("starting comparison fetch", map[string]any{
		"session": id,
		"seq":     seq,
		"params":  query.RequestParams(),
	})

	result, fetchErr := s.repo.FetchComparison(ctx, query)

	var applied bool
	complete := func(state models.DashboardState) (models.DashboardState, error) {
		var next models.DashboardState
		if fetchErr != nil {
			next, applied = FailComparison(state, seq)
		} else {
			next, applied = CompleteComparison(state, seq, result)
		}
		return next, nil
	}

	// A lost write here would leave the session loading until it expires, so
	// the completion gets one more attempt.
	for attempt := 1; ; attempt++ {
		state, err = s.update(ctx, id, complete)
		if err == nil || errors.Is(err, repositories.ErrSessionNotFound) || attempt == completeAttempts {
			break
		}
		s.l.Warning("retrying comparison completion", map[string]any{
			"session": id,
			"seq":     seq,
			"err":     err.Error(),
		})
	}
	if err != nil {
		return state, errors.Wrap(err, "complete comparison")
	}

	switch {
	case !applied:
		s.l.Warning("discarded stale comparison response", map[string]any{
			"session": id,
			"seq":     seq,
			"latest":  state.RequestSeq,
		})
	case fetchErr != nil:
		s.l.Error(errors.Wrap(fetchErr, "fetch comparison"), map[string]any{
			"session": id,
			"seq":     seq,
		})
	default:
		s.l.Info("comparison fetch completed", map[string]any{
			"session": id,
			"seq":     seq,
			"hours":   len(result.HourlyData),
		})
	}

	return state, nil
}

func (s *DashboardService) Back(ctx context.Context, id string) (models.DashboardState, error) {
	return s.update(ctx, id, func(state models.DashboardState) (models.DashboardState, error) {
		return Back(state), nil
	})
}

func (s *DashboardService) update(ctx context.Context, id string, fn repositories.UpdateFunc) (models.DashboardState, error) {
	return s.sessions.Update(ctx, id, func(state models.DashboardState) (models.DashboardState, error) {
		state, _ = ExpireLoading(state, s.now(), s.loadingTimeout)
		next, err := fn(state)
		if err != nil {
			return next, err
		}
		next.UpdatedAt = s.now().UTC()
		return next, nil
	})
}
