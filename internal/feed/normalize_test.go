package feed

import (
	"encoding/json"
	"testing"

	"asteroid-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `{
  "element_count": 3,
  "near_earth_objects": {
    "2024-01-02": [
      {
        "name": "(2010 PK9)",
        "nasa_jpl_url": "https://ssd.jpl.nasa.gov/tools/sbdb_lookup.html#/?sstr=3548280",
        "absolute_magnitude_h": 21.35,
        "is_potentially_hazardous_asteroid": true,
        "estimated_diameter": {
          "kilometers": {"estimated_diameter_min": 0.1529, "estimated_diameter_max": 0.3419},
          "meters": {"estimated_diameter_min": 152.9, "estimated_diameter_max": 341.9}
        },
        "close_approach_data": [
          {
            "close_approach_date": "2024-01-02",
            "close_approach_date_full": "2024-Jan-02 05:21",
            "epoch_date_close_approach": 1704172860000,
            "relative_velocity": {"kilometers_per_second": "14.1234", "kilometers_per_hour": "50844.2"},
            "miss_distance": {"astronomical": "0.21", "kilometers": "31415926.5"},
            "orbiting_body": "Earth"
          },
          {
            "close_approach_date": "2090-07-11",
            "orbiting_body": "Mars"
          }
        ]
      }
    ],
    "2024-01-01": [
      {"name": "Apophis", "close_approach_data": []},
      {"name": "Bennu", "absolute_magnitude_h": "n/a"}
    ]
  }
}`

func TestNormalizeSampleFeed(t *testing.T) {
	raw, err := DecodeFeed([]byte(sampleFeed))
	require.NoError(t, err)

	got := Normalize(raw)
	require.Len(t, got, 3)

	assert.Equal(t, "Apophis", got[0].Name)
	assert.Equal(t, "Bennu", got[1].Name)

	pk9 := got[2]
	assert.Equal(t, "(2010 PK9)", pk9.Name)
	assert.Equal(t, "https://ssd.jpl.nasa.gov/tools/sbdb_lookup.html#/?sstr=3548280", pk9.NasaJPLURL)
	assert.Equal(t, 21.35, pk9.AbsoluteMagnitude)
	assert.True(t, pk9.IsPotentiallyHazardous)
	assert.Equal(t, 0.1529, pk9.EstimatedDiameterMin)
	assert.Equal(t, 0.3419, pk9.EstimatedDiameterMax)
	assert.Equal(t, "2024-01-02", pk9.CloseApproachDate)
	assert.Equal(t, "2024-Jan-02 05:21", pk9.CloseApproachDateFull)
	assert.Equal(t, int64(1704172860000), pk9.EpochDateCloseApproach)
	assert.Equal(t, 14.1234, pk9.RelativeVelocity)
	assert.Equal(t, 31415926.5, pk9.MissDistance)
	assert.Equal(t, "Earth", pk9.OrbitingBody)
}

func TestNormalizeMissingCloseApproach(t *testing.T) {
	raw, err := DecodeFeed([]byte(`{"near_earth_objects": {"2024-01-01": [{"name": "Apophis", "close_approach_data": []}]}}`))
	require.NoError(t, err)

	got := Normalize(raw)
	require.Len(t, got, 1)

	assert.Equal(t, domain.AsteroidCreate{
		Name:              "Apophis",
		CloseApproachDate: "2024-01-01",
	}, got[0])
}

func TestNormalizeApproachWithoutDateUsesGroupDate(t *testing.T) {
	for name, body := range map[string]string{
		"absent": `{"near_earth_objects": {"2024-03-05": [{"close_approach_data": [{"orbiting_body": "Earth"}]}]}}`,
		"empty":  `{"near_earth_objects": {"2024-03-05": [{"close_approach_data": [{"close_approach_date": ""}]}]}}`,
		"null":   `{"near_earth_objects": {"2024-03-05": [{"close_approach_data": [{"close_approach_date": null}]}]}}`,
		"number": `{"near_earth_objects": {"2024-03-05": [{"close_approach_data": [{"close_approach_date": 20240305}]}]}}`,
	} {
		t.Run(name, func(t *testing.T) {
			raw, err := DecodeFeed([]byte(body))
			require.NoError(t, err)

			got := Normalize(raw)
			require.Len(t, got, 1)
			assert.Equal(t, "2024-03-05", got[0].CloseApproachDate)
		})
	}
}

func TestNormalizeMagnitudeFailSoft(t *testing.T) {
	for name, value := range map[string]string{
		"non-numeric string": `"bright"`,
		"null":               `null`,
		"object":             `{"h": 3}`,
		"bool":               `true`,
	} {
		t.Run(name, func(t *testing.T) {
			body := `{"near_earth_objects": {"2024-01-01": [{"name": "X", "absolute_magnitude_h": ` + value + `}]}}`
			raw, err := DecodeFeed([]byte(body))
			require.NoError(t, err)

			got := Normalize(raw)
			require.Len(t, got, 1)
			assert.Equal(t, 0.0, got[0].AbsoluteMagnitude)
		})
	}
}

func TestNormalizeUsesFirstApproachOnly(t *testing.T) {
	body := `{"near_earth_objects": {"2024-01-01": [{"name": "X", "close_approach_data": [
		{"close_approach_date": "2024-01-01", "orbiting_body": "Earth", "miss_distance": {"kilometers": "100"}},
		{"close_approach_date": "2031-06-09", "orbiting_body": "Venus", "miss_distance": {"kilometers": "5"}}
	]}]}}`
	raw, err := DecodeFeed([]byte(body))
	require.NoError(t, err)

	got := Normalize(raw)
	require.Len(t, got, 1)
	assert.Equal(t, "Earth", got[0].OrbitingBody)
	assert.Equal(t, "2024-01-01", got[0].CloseApproachDate)
	assert.Equal(t, 100.0, got[0].MissDistance)
}

func TestNormalizePartialDiameter(t *testing.T) {
	body := `{"near_earth_objects": {"2024-01-01": [{"name": "X",
		"estimated_diameter": {"kilometers": {"estimated_diameter_max": 1.2}}}]}}`
	raw, err := DecodeFeed([]byte(body))
	require.NoError(t, err)

	got := Normalize(raw)
	require.Len(t, got, 1)
	assert.Equal(t, 0.0, got[0].EstimatedDiameterMin)
	assert.Equal(t, 1.2, got[0].EstimatedDiameterMax)
}

func TestNormalizeIsDeterministic(t *testing.T) {
	raw, err := DecodeFeed([]byte(sampleFeed))
	require.NoError(t, err)

	first, err := json.Marshal(Normalize(raw))
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := json.Marshal(Normalize(raw))
		require.NoError(t, err)
		require.Equal(t, string(first), string(again))
	}
}

func TestNormalizeEmptyInputs(t *testing.T) {
	assert.Empty(t, Normalize(nil))

	raw, err := DecodeFeed([]byte(`{}`))
	require.NoError(t, err)
	assert.NotNil(t, raw.NearEarthObjects)
	assert.Empty(t, Normalize(raw))
}

func TestNormalizeDefaults(t *testing.T) {
	raw, err := DecodeFeed([]byte(`{"near_earth_objects": {"2024-01-01": [{}]}}`))
	require.NoError(t, err)

	got := Normalize(raw)
	require.Len(t, got, 1)
	assert.Equal(t, "Unknown", got[0].Name)
	assert.Equal(t, "", got[0].NasaJPLURL)
	assert.False(t, got[0].IsPotentiallyHazardous)
	assert.Equal(t, "", got[0].OrbitingBody)
}

func TestDecodeFeedRejectsWrongGroupingShape(t *testing.T) {
	for name, body := range map[string]string{
		"not json":         `<html>`,
		"grouping array":   `{"near_earth_objects": [1, 2]}`,
		"group not a list": `{"near_earth_objects": {"2024-01-01": "x"}}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeFeed([]byte(body))
			assert.Error(t, err)
		})
	}
}

func TestNormalizeKeepsFeedWithWrongNestedShapes(t *testing.T) {
	good := `{"name": "Good", "close_approach_data": [{"close_approach_date": "2024-01-01",
		"relative_velocity": {"kilometers_per_second": "12.5"}, "miss_distance": {"kilometers": "1000"}}]}`
	for name, bad := range map[string]string{
		"relative velocity is a string": `{"name": "Bad", "close_approach_data": [{"relative_velocity": "fast"}]}`,
		"diameter unit is a string":     `{"name": "Bad", "estimated_diameter": {"kilometers": "1.2"}}`,
		"approaches is an object":       `{"name": "Bad", "close_approach_data": {}}`,
	} {
		t.Run(name, func(t *testing.T) {
			body := `{"near_earth_objects": {"2024-01-01": [` + good + `, ` + bad + `]}}`
			raw, err := DecodeFeed([]byte(body))
			require.NoError(t, err)

			got := Normalize(raw)
			require.Len(t, got, 2)

			assert.Equal(t, "Good", got[0].Name)
			assert.Equal(t, 12.5, got[0].RelativeVelocity)
			assert.Equal(t, 1000.0, got[0].MissDistance)

			assert.Equal(t, "Bad", got[1].Name)
			assert.Equal(t, "2024-01-01", got[1].CloseApproachDate)
			assert.Equal(t, 0.0, got[1].RelativeVelocity)
			assert.Equal(t, 0.0, got[1].EstimatedDiameterMin)
			assert.Equal(t, 0.0, got[1].EstimatedDiameterMax)
		})
	}
}
