package views

import "temperature-dashboard/internal/models"

const (
	noSelectionLabel = "Select a city"
	compareLabel     = "Compare"
	loadingLabel     = "Loading..."
)

// SelectionPanel is the read-only model of the city and date form. Every
// control reports changes as a (kind, value) pair.
type SelectionPanel struct {
	Cities []CitySelect
	Dates  []DateInput
	Button CompareButton
}

type CitySelect struct {
	Kind    string
	Label   string
	Options []Option
}

type Option struct {
	Value    string
	Name     string
	Selected bool
}

type DateInput struct {
	Kind  string
	Label string
	Value string
}

type CompareButton struct {
	Label    string
	Disabled bool
}

// LoadingLabel is shown by the browser as soon as the form is submitted.
func (CompareButton) LoadingLabel() string {
	return loadingLabel
}

func NewSelectionPanel(cities []models.City, selection models.Selection, dates models.DateRange, loading bool) SelectionPanel {
	button := CompareButton{Label: compareLabel}
	if loading {
		button = CompareButton{Label: loadingLabel, Disabled: true}
	}

	return SelectionPanel{
		Cities: []CitySelect{
			newCitySelect("city1", "City 1:", cities, selection.City1),
			newCitySelect("city2", "City 2:", cities, selection.City2),
		},
		Dates: []DateInput{
			{Kind: "start", Label: "Start Date:", Value: dates.Start},
			{Kind: "end", Label: "End Date:", Value: dates.End},
		},
		Button: button,
	}
}

func newCitySelect(kind, label string, cities []models.City, selected string) CitySelect {
	options := make([]Option, 0, len(cities)+1)
	options = append(options, Option{Value: "", Name: noSelectionLabel, Selected: selected == ""})

	for _, city := range cities {
		options = append(options, Option{
			Value:    city.ID.String(),
			Name:     city.Name,
			Selected: selected != "" && selected == city.ID.String(),
		})
	}

	return CitySelect{Kind: kind, Label: label, Options: options}
}
