package feed

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOrDefaultFloat(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want float64
	}{
		{"nil", nil, 0},
		{"json number", json.Number("21.5"), 21.5},
		{"float64", 7.25, 7.25},
		{"int", 3, 3},
		{"numeric string", " 14.01 ", 14.01},
		{"non-numeric string", "fast", 0},
		{"empty string", "", 0},
		{"bool", true, 0},
		{"nan string", "NaN", 0},
		{"inf float", math.Inf(1), 0},
		{"map", map[string]any{"a": 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseOrDefault(tt.raw, ToFloat, 0))
		})
	}
}

func TestParseOrDefaultInt(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want int64
	}{
		{"nil", nil, 0},
		{"json integer", json.Number("1704172860000"), 1704172860000},
		{"json fraction truncates", json.Number("12.9"), 12},
		{"float64 truncates", 99.7, 99},
		{"integer string", "42", 42},
		{"fractional string", "4.2", 0},
		{"garbage string", "soon", 0},
		{"huge float", 1e30, 0},
		{"bool", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseOrDefault(tt.raw, ToInt, int64(0)))
		})
	}
}

func TestParseOrDefaultStringAndBool(t *testing.T) {
	assert.Equal(t, "Earth", ParseOrDefault(any("Earth"), ToString, ""))
	assert.Equal(t, "fallback", ParseOrDefault(any(json.Number("3")), ToString, "fallback"))
	assert.Equal(t, "fallback", ParseOrDefault(nil, ToString, "fallback"))

	assert.True(t, ParseOrDefault(any(true), ToBool, false))
	assert.True(t, ParseOrDefault(any("true"), ToBool, false))
	assert.False(t, ParseOrDefault(any("maybe"), ToBool, false))
	assert.False(t, ParseOrDefault(any(json.Number("1")), ToBool, false))
}

func TestExtractorsOnEmptyApproach(t *testing.T) {
	c := FirstApproach(nil)
	assert.Equal(t, 0.0, Velocity(c))
	assert.Equal(t, 0.0, MissDistance(c))
	assert.Equal(t, int64(0), Epoch(c))
	assert.Equal(t, "2024-02-29", ApproachDate(c, "2024-02-29"))

	minKm, maxKm := Diameter(nil)
	assert.Equal(t, 0.0, minKm)
	assert.Equal(t, 0.0, maxKm)
}

func TestExtractorsReadKilometreUnits(t *testing.T) {
	c := RawCloseApproach{
		RelativeVelocity: map[string]any{"kilometers_per_hour": "36000", "kilometers_per_second": "10"},
		MissDistance:     map[string]any{"lunar": "2.1", "kilometers": json.Number("807000")},
	}
	assert.Equal(t, 10.0, Velocity(c))
	assert.Equal(t, 807000.0, MissDistance(c))

	minKm, maxKm := Diameter(map[string]any{
		"meters":     map[string]any{"estimated_diameter_min": 100.0, "estimated_diameter_max": 200.0},
		"kilometers": map[string]any{"estimated_diameter_min": 0.1, "estimated_diameter_max": "bad"},
	})
	assert.Equal(t, 0.1, minKm)
	assert.Equal(t, 0.0, maxKm)
}

func TestExtractorsTolerateWrongShapes(t *testing.T) {
	assert.Equal(t, RawCloseApproach{}, FirstApproach(map[string]any{}))
	assert.Equal(t, RawCloseApproach{}, FirstApproach("soon"))
	assert.Equal(t, RawCloseApproach{}, FirstApproach([]any{"not an object"}))

	c := RawCloseApproach{RelativeVelocity: "fast", MissDistance: []any{1, 2}}
	assert.Equal(t, 0.0, Velocity(c))
	assert.Equal(t, 0.0, MissDistance(c))

	minKm, maxKm := Diameter(map[string]any{"kilometers": "1.2"})
	assert.Equal(t, 0.0, minKm)
	assert.Equal(t, 0.0, maxKm)

	minKm, maxKm = Diameter(42)
	assert.Equal(t, 0.0, minKm)
	assert.Equal(t, 0.0, maxKm)
}
