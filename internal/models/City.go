package models

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
)

type City struct {
	ID        CityID   `json:"id" example:"1"`
	Name      string   `json:"name" example:"Buenos Aires"`
	Code      string   `json:"code,omitempty" example:"87585"`
	Latitude  *float64 `json:"latitude,omitempty" example:"-34.58"`
	Longitude *float64 `json:"longitude,omitempty" example:"-58.48"`
}

// CityID is the backend identifier of a city. The backend sends integers,
// but the dashboard only ever echoes the value back, so it is kept as text.
type CityID string

func (id *CityID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = CityID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("city id must be a string or a number: %w", err)
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return fmt.Errorf("city id must be a string or a number: %w", err)
	}
	*id = CityID(n.String())
	return nil
}

func (id CityID) String() string {
	return string(id)
}
