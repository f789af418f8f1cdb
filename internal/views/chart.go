package views

import (
	"fmt"
	"math"
	"strconv"

	"temperature-dashboard/internal/models"
)

// MaxBarHeight is the pixel height of the warmest reading in a chart.
const MaxBarHeight = 200.0

const notAvailable = "N/A"

type TemperatureChart struct {
	Hours         []HourBar
	MinDifference DifferenceSummary
	MaxDifference DifferenceSummary
}

type HourBar struct {
	Label string
	City1 Bar
	City2 Bar
}

type Bar struct {
	HeightPx float64
	Title    string
}

// Height is the bar height in pixels, rounded to two decimals.
func (b Bar) Height() string {
	return formatNumber(math.Round(b.HeightPx*100) / 100)
}

type DifferenceSummary struct {
	Title      string
	Hour       string
	Difference string
}

// NewTemperatureChart scales every reading between the coldest and the
// warmest one. When all readings are equal, or a reading is missing, the bar
// has zero height. The min/max summaries are the backend's, shown verbatim.
func NewTemperatureChart(result *models.ComparisonResult) *TemperatureChart {
	if result == nil {
		return nil
	}

	minTemp, maxTemp := temperatureBounds(result.HourlyData)
	tempRange := maxTemp - minTemp

	height := func(t *float64) float64 {
		if t == nil || tempRange == 0 {
			return 0
		}
		return (*t - minTemp) / tempRange * MaxBarHeight
	}

	hours := make([]HourBar, 0, len(result.HourlyData))
	for _, sample := range result.HourlyData {
		hours = append(hours, HourBar{
			Label: hourLabel(&sample.Hour),
			City1: Bar{HeightPx: height(sample.City1Temperature), Title: "City 1: " + temperature(sample.City1Temperature)},
			City2: Bar{HeightPx: height(sample.City2Temperature), Title: "City 2: " + temperature(sample.City2Temperature)},
		})
	}

	return &TemperatureChart{
		Hours:         hours,
		MinDifference: newDifferenceSummary("Minimum Difference", result.MinDifference),
		MaxDifference: newDifferenceSummary("Maximum Difference", result.MaxDifference),
	}
}

func temperatureBounds(samples []models.HourSample) (minTemp, maxTemp float64) {
	seen := false
	for _, sample := range samples {
		for _, t := range []*float64{sample.City1Temperature, sample.City2Temperature} {
			if t == nil || math.IsNaN(*t) {
				continue
			}
			if !seen {
				minTemp, maxTemp = *t, *t
				seen = true
				continue
			}
			minTemp = math.Min(minTemp, *t)
			maxTemp = math.Max(maxTemp, *t)
		}
	}
	return minTemp, maxTemp
}

func newDifferenceSummary(title string, point models.DifferencePoint) DifferenceSummary {
	return DifferenceSummary{
		Title:      title,
		Hour:       "Hour: " + hourLabel(point.Hour),
		Difference: "Difference: " + temperature(point.Difference),
	}
}

func hourLabel(hour *int) string {
	if hour == nil {
		return notAvailable
	}
	return fmt.Sprintf("%d:00", *hour)
}

func temperature(t *float64) string {
	if t == nil {
		return notAvailable
	}
	return formatNumber(*t) + "°C"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
