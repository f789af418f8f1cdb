package models

import "time"

// DateLayout is the YYYY-MM-DD layout of every date the dashboard handles.
const DateLayout = "2006-01-02"

type DateRange struct {
	Start string `json:"start" validate:"required" example:"2024-01-01"`
	End   string `json:"end" validate:"required" example:"2024-01-08"`
}

// Selection holds the chosen city ids; an empty string means nothing is selected.
type Selection struct {
	City1 string `json:"city1" validate:"required" example:"1"`
	City2 string `json:"city2" validate:"required" example:"2"`
}

// DashboardState is everything one browser session of the dashboard owns.
type DashboardState struct {
	Cities    []City            `json:"cities"`
	Selection Selection         `json:"selection"`
	Dates     DateRange         `json:"dates"`
	Loading   bool              `json:"loading"`
	// LoadingSince is when the pending comparison request was issued.
	LoadingSince time.Time `json:"loading_since"`
	Error     string            `json:"error,omitempty"`
	Result    *ComparisonResult `json:"result,omitempty"`
	// RequestSeq is the sequence number of the latest comparison request.
	RequestSeq uint64    `json:"request_seq"`
	UpdatedAt  time.Time `json:"updated_at"`
}
