package models

import "fmt"

// ComparisonResult is the backend's hourly comparison of two cities. The
// dashboard treats it as an opaque value and never recomputes the extrema.
type ComparisonResult struct {
	HourlyData    []HourSample    `json:"hourly_data"`
	MinDifference DifferencePoint `json:"min_difference"`
	MaxDifference DifferencePoint `json:"max_difference"`
}

// HourSample holds the averaged temperatures of both cities for one hour of
// the day. A nil temperature means the backend had no reading for that hour.
type HourSample struct {
	Hour             int      `json:"hour" example:"6"`
	City1Temperature *float64 `json:"city1_temperature" example:"12"`
	City2Temperature *float64 `json:"city2_temperature" example:"14"`
	Difference       *float64 `json:"difference,omitempty" example:"-2"`
}

// DifferencePoint marks the hour of the minimum or maximum difference. Both
// fields are nil when the series has no hour with readings for both cities.
type DifferencePoint struct {
	Hour       *int     `json:"hour" example:"6"`
	Difference *float64 `json:"difference" example:"2"`
}

// ComparisonQuery carries the raw selection values to the backend.
type ComparisonQuery struct {
	City1ID   string `json:"city1_id"`
	City2ID   string `json:"city2_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (q ComparisonQuery) RequestParams() string {
	return fmt.Sprintf("city1: %s city2: %s from: %s to: %s", q.City1ID, q.City2ID, q.StartDate, q.EndDate)
}
