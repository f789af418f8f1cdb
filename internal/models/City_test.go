package models

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCityID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    CityID
		wantErr bool
	}{
		{"integer", `{"id": 7, "name": "Rosario"}`, "7", false},
		{"string", `{"id": "7", "name": "Rosario"}`, "7", false},
		{"null", `{"id": null, "name": "Rosario"}`, "", false},
		{"object", `{"id": {"x": 1}, "name": "Rosario"}`, "", true},
		{"bool", `{"id": true, "name": "Rosario"}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var city City
			err := json.Unmarshal([]byte(tt.payload), &city)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, city.ID)
			assert.Equal(t, "Rosario", city.Name)
		})
	}
}

func TestComparisonResult_DecodesNullReadings(t *testing.T) {
	payload := `{
		"hourly_data": [
			{"hour": 0, "city1_temperature": 10.5, "city2_temperature": null, "difference": null},
			{"hour": 1, "city1_temperature": 11, "city2_temperature": 9, "difference": 2}
		],
		"min_difference": {"hour": 1, "difference": 2},
		"max_difference": {"hour": null, "difference": null}
	}`

	var result ComparisonResult
	require.NoError(t, json.Unmarshal([]byte(payload), &result))

	require.Len(t, result.HourlyData, 2)
	require.NotNil(t, result.HourlyData[0].City1Temperature)
	assert.Equal(t, 10.5, *result.HourlyData[0].City1Temperature)
	assert.Nil(t, result.HourlyData[0].City2Temperature)
	assert.Nil(t, result.HourlyData[0].Difference)

	require.NotNil(t, result.MinDifference.Hour)
	assert.Equal(t, 1, *result.MinDifference.Hour)
	assert.Nil(t, result.MaxDifference.Hour)
	assert.Nil(t, result.MaxDifference.Difference)
}
