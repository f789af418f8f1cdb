package dashboard

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"temperature-dashboard/internal/models"
)

// User-facing banner messages.
const (
	MsgLoadCitiesFailed      = "Failed to load cities"
	MsgSelectionIncomplete   = "Please select both cities and date range"
	MsgComparisonFetchFailed = "Failed to fetch comparison data"
)

const defaultRangeDays = 7

// Slots accepted by SelectCity and ChangeDate.
const (
	SlotCity1 = "city1"
	SlotCity2 = "city2"
	SlotStart = "start"
	SlotEnd   = "end"
)

var ErrUnknownSlot = errors.New("unknown slot")

var validate = validator.New()

type Phase string

const (
	PhaseSelecting      Phase = "selecting"
	PhaseError          Phase = "error"
	PhaseShowingResults Phase = "showing_results"
)

// DefaultDateRange covers the seven days up to and including today, in UTC.
func DefaultDateRange(now time.Time) models.DateRange {
	end := now.UTC()
	start := end.AddDate(0, 0, -defaultRangeDays)
	return models.DateRange{
		Start: start.Format(models.DateLayout),
		End:   end.Format(models.DateLayout),
	}
}

// NewState is the state of a session before the city catalog arrives.
func NewState(now time.Time) models.DashboardState {
	return models.DashboardState{
		Dates:     DefaultDateRange(now),
		UpdatedAt: now.UTC(),
	}
}

func WithCities(s models.DashboardState, cities []models.City) models.DashboardState {
	s.Cities = cities
	return s
}

func WithCitiesError(s models.DashboardState) models.DashboardState {
	s.Cities = nil
	s.Error = MsgLoadCitiesFailed
	return s
}

func SelectCity(s models.DashboardState, slot, value string) (models.DashboardState, error) {
	switch slot {
	case SlotCity1:
		s.Selection.City1 = value
	case SlotCity2:
		s.Selection.City2 = value
	default:
		return s, errors.Wrapf(ErrUnknownSlot, "city slot %q", slot)
	}
	return s, nil
}

// ChangeDate stores the value as given; start may come after end.
func ChangeDate(s models.DashboardState, slot, value string) (models.DashboardState, error) {
	switch slot {
	case SlotStart:
		s.Dates.Start = value
	case SlotEnd:
		s.Dates.End = value
	default:
		return s, errors.Wrapf(ErrUnknownSlot, "date slot %q", slot)
	}
	return s, nil
}

// Apply dispatches a (kind, value) pair from the selection panel.
func Apply(s models.DashboardState, kind, value string) (models.DashboardState, error) {
	switch kind {
	case SlotCity1, SlotCity2:
		return SelectCity(s, kind, value)
	case SlotStart, SlotEnd:
		return ChangeDate(s, kind, value)
	default:
		return s, errors.Wrapf(ErrUnknownSlot, "kind %q", kind)
	}
}

type comparisonInput struct {
	Selection models.Selection
	Dates     models.DateRange
}

// BeginComparison validates the selection. When a field is missing it sets
// the validation banner and reports ok=false. Otherwise it marks the session
// loading and issues the next request sequence number.
func BeginComparison(s models.DashboardState) (next models.DashboardState, seq uint64, ok bool) {
	if err := validate.Struct(comparisonInput{Selection: s.Selection, Dates: s.Dates}); err != nil {
		s.Error = MsgSelectionIncomplete
		return s, 0, false
	}

	s.Loading = true
	s.Error = ""
	s.RequestSeq++
	return s, s.RequestSeq, true
}

func QueryOf(s models.DashboardState) models.ComparisonQuery {
	return models.ComparisonQuery{
		City1ID:   s.Selection.City1,
		City2ID:   s.Selection.City2,
		StartDate: s.Dates.Start,
		EndDate:   s.Dates.End,
	}
}

// CompleteComparison stores the result of request seq. Responses to any
// request other than the latest are dropped.
func CompleteComparison(s models.DashboardState, seq uint64, result *models.ComparisonResult) (models.DashboardState, bool) {
	if seq != s.RequestSeq {
		return s, false
	}
	s.Result = result
	s.Loading = false
	s.LoadingSince = time.Time{}
	s.Error = ""
	return s, true
}

// FailComparison records the failure of request seq and keeps any earlier result.
func FailComparison(s models.DashboardState, seq uint64) (models.DashboardState, bool) {
	if seq != s.RequestSeq {
		return s, false
	}
	s.Loading = false
	s.LoadingSince = time.Time{}
	s.Error = MsgComparisonFetchFailed
	return s, true
}

// ExpireLoading fails a comparison that has been pending for at least
// timeout. The request sequence moves on, so its response is dropped if it
// still arrives. A zero timeout disables expiry.
func ExpireLoading(s models.DashboardState, now time.Time, timeout time.Duration) (models.DashboardState, bool) {
	if !s.Loading || timeout <= 0 || s.LoadingSince.IsZero() || now.Sub(s.LoadingSince) < timeout {
		return s, false
	}
	s.RequestSeq++
	s.Loading = false
	s.LoadingSince = time.Time{}
	s.Error = MsgComparisonFetchFailed
	return s, true
}

// Back returns to the selection view, discarding the result.
func Back(s models.DashboardState) models.DashboardState {
	s.Result = nil
	s.Error = ""
	return s
}

func PhaseOf(s models.DashboardState) Phase {
	switch {
	case s.Error != "":
		return PhaseError
	case s.Result != nil:
		return PhaseShowingResults
	default:
		return PhaseSelecting
	}
}
