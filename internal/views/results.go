package views

import "temperature-dashboard/internal/models"

const resultsHeading = "Temperature Comparison Results"

type ComparisonResults struct {
	Heading string
	Chart   *TemperatureChart
}

// NewComparisonResults returns nil when there is no result, which renders nothing.
func NewComparisonResults(result *models.ComparisonResult) *ComparisonResults {
	if result == nil {
		return nil
	}
	return &ComparisonResults{
		Heading: resultsHeading,
		Chart:   NewTemperatureChart(result),
	}
}
