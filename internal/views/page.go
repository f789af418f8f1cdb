package views

import (
	"temperature-dashboard/internal/models"
	"temperature-dashboard/internal/services/dashboard"
)

const PageTitle = "Temperature Comparison Dashboard"

// Page is the whole dashboard. Which panels appear depends only on the phase.
type Page struct {
	Title     string
	Phase     dashboard.Phase
	Selection SelectionPanel
	Error     string
	Results   *ComparisonResults
}

func NewPage(state models.DashboardState) *Page {
	phase := dashboard.PhaseOf(state)

	page := &Page{
		Title:     PageTitle,
		Phase:     phase,
		Selection: NewSelectionPanel(state.Cities, state.Selection, state.Dates, state.Loading),
	}

	switch phase {
	case dashboard.PhaseError:
		page.Error = state.Error
		page.Results = NewComparisonResults(state.Result)
	case dashboard.PhaseShowingResults:
		page.Results = NewComparisonResults(state.Result)
	}

	return page
}

func (p *Page) ShowError() bool {
	return p.Phase == dashboard.PhaseError
}

func (p *Page) ShowResults() bool {
	return p.Results != nil
}
