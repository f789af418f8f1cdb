package views

import (
	"bytes"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"temperature-dashboard/internal/models"
	"temperature-dashboard/internal/services/dashboard"
)

func render(t *testing.T, name string, binding any) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(NewEngine(), &buf, name, binding))

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func baseState() models.DashboardState {
	return models.DashboardState{
		Cities:    testCities,
		Selection: models.Selection{City1: "1", City2: "2"},
		Dates:     models.DateRange{Start: "2024-01-01", End: "2024-01-08"},
	}
}

func TestNewPage_Phases(t *testing.T) {
	state := baseState()
	page := NewPage(state)
	assert.Equal(t, dashboard.PhaseSelecting, page.Phase)
	assert.False(t, page.ShowError())
	assert.False(t, page.ShowResults())

	state.Result = sampleResult()
	page = NewPage(state)
	assert.Equal(t, dashboard.PhaseShowingResults, page.Phase)
	assert.True(t, page.ShowResults())

	state.Error = dashboard.MsgComparisonFetchFailed
	page = NewPage(state)
	assert.Equal(t, dashboard.PhaseError, page.Phase)
	assert.True(t, page.ShowError())
	assert.Equal(t, "Failed to fetch comparison data", page.Error)
	assert.True(t, page.ShowResults())
}

func TestRenderPage_Selecting(t *testing.T) {
	doc := render(t, PageTemplate, NewPage(baseState()))

	assert.Equal(t, "Temperature Comparison Dashboard", doc.Find("h1").Text())
	assert.Equal(t, 0, doc.Find(".error").Length())
	assert.Equal(t, 0, doc.Find(".comparison-results").Length())

	assert.Equal(t, 2, doc.Find("select").Length())
	assert.Equal(t, 3, doc.Find(`select[name="city1"] option`).Length())
	selected, _ := doc.Find(`select[name="city1"] option[selected]`).Attr("value")
	assert.Equal(t, "1", selected)

	start, _ := doc.Find(`input[name="start"]`).Attr("value")
	assert.Equal(t, "2024-01-01", start)
	end, _ := doc.Find(`input[name="end"]`).Attr("value")
	assert.Equal(t, "2024-01-08", end)

	button := doc.Find("button.compare-button")
	assert.Equal(t, "Compare", button.Text())
	_, disabled := button.Attr("disabled")
	assert.False(t, disabled)
}

func TestRenderPage_SubmitSwitchesButtonToLoading(t *testing.T) {
	doc := render(t, PageTemplate, NewPage(baseState()))

	label, ok := doc.Find("button.compare-button").Attr("data-loading-label")
	require.True(t, ok)
	assert.Equal(t, "Loading...", label)

	script := doc.Find("script").Text()
	assert.Contains(t, script, "addEventListener('submit'")
	assert.Contains(t, script, "button.disabled = true")
	assert.Contains(t, script, "button.dataset.loadingLabel")
}

func TestRenderPage_Loading(t *testing.T) {
	state := baseState()
	state.Loading = true
	doc := render(t, PageTemplate, NewPage(state))

	button := doc.Find("button.compare-button")
	assert.Equal(t, "Loading...", button.Text())
	_, disabled := button.Attr("disabled")
	assert.True(t, disabled)
}

func TestRenderPage_ErrorBanner(t *testing.T) {
	state := baseState()
	state.Cities = nil
	state.Error = dashboard.MsgLoadCitiesFailed
	doc := render(t, PageTemplate, NewPage(state))

	assert.Equal(t, "Failed to load cities", doc.Find(".error").Text())
	assert.Equal(t, 1, doc.Find(`select[name="city1"] option`).Length())
}

func TestRenderPage_Results(t *testing.T) {
	state := baseState()
	state.Result = sampleResult()
	doc := render(t, PageTemplate, NewPage(state))

	assert.Equal(t, "Temperature Comparison Results", doc.Find(".comparison-results h2").Text())
	assert.Equal(t, 1, doc.Find("form.back").Length())

	labels := doc.Find(".hour-bar .bar-label").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	assert.Equal(t, []string{"0:00", "6:00"}, labels)

	style, _ := doc.Find(".hour-bar .temperature-bar.city2").First().Attr("style")
	assert.Equal(t, "height: 200px", style)
	title, _ := doc.Find(".hour-bar .temperature-bar.city1").First().Attr("title")
	assert.Equal(t, "City 1: 10°C", title)

	assert.Equal(t, "Minimum Difference", doc.Find(".min-difference h3").Text())
	assert.Equal(t, "Hour: 6:00", doc.Find(".min-difference .hour").Text())
	assert.Equal(t, "Difference: 2°C", doc.Find(".min-difference .difference").Text())
	assert.Equal(t, "Hour: 0:00", doc.Find(".max-difference .hour").Text())
	assert.Equal(t, "Difference: 5°C", doc.Find(".max-difference .difference").Text())
}

func TestRenderComparisonResults_NilRendersNothing(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(NewEngine(), &buf, ComparisonResultsTemplate, NewComparisonResults(nil)))
	assert.Empty(t, bytes.TrimSpace(buf.Bytes()))
}

func TestRenderTemperatureChart_EqualTemperatures(t *testing.T) {
	chart := NewTemperatureChart(&models.ComparisonResult{
		HourlyData: []models.HourSample{{Hour: 0, City1Temperature: f(20), City2Temperature: f(20)}},
	})
	doc := render(t, TemperatureChartTemplate, chart)

	doc.Find(".temperature-bar").Each(func(_ int, s *goquery.Selection) {
		style, _ := s.Attr("style")
		assert.Equal(t, "height: 0px", style)
	})
	assert.Equal(t, 2, doc.Find(".temperature-bar").Length())
}
