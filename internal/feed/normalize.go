package feed

import (
	"sort"

	"asteroid-tracker/internal/domain"
)

const (
	unitKilometers      = "kilometers"
	unitKilometersPerS  = "kilometers_per_second"
	defaultAsteroidName = "Unknown"
)

// Normalize flattens every asteroid of the feed into one record.
// Date groups are visited in ascending key order and asteroids in listed order.
func Normalize(raw *RawFeed) []domain.AsteroidCreate {
	out := make([]domain.AsteroidCreate, 0)
	if raw == nil {
		return out
	}

	dates := make([]string, 0, len(raw.NearEarthObjects))
	for date := range raw.NearEarthObjects {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		for _, asteroid := range raw.NearEarthObjects[date] {
			out = append(out, NormalizeAsteroid(asteroid, date))
		}
	}
	return out
}

// NormalizeAsteroid builds a record from a single raw entry listed under groupDate.
// Only the first close approach is used; later ones are ignored.
func NormalizeAsteroid(a RawAsteroid, groupDate string) domain.AsteroidCreate {
	approach := FirstApproach(a.CloseApproachData)
	minKm, maxKm := Diameter(a.EstimatedDiameter)

	return domain.AsteroidCreate{
		Name:                   ParseOrDefault(a.Name, ToString, defaultAsteroidName),
		NasaJPLURL:             ParseOrDefault(a.NasaJPLURL, ToString, ""),
		AbsoluteMagnitude:      ParseOrDefault(a.AbsoluteMagnitudeH, ToFloat, 0),
		IsPotentiallyHazardous: ParseOrDefault(a.IsPotentiallyHazardous, ToBool, false),
		EstimatedDiameterMin:   minKm,
		EstimatedDiameterMax:   maxKm,
		CloseApproachDate:      ApproachDate(approach, groupDate),
		CloseApproachDateFull:  ParseOrDefault(approach.CloseApproachDateFull, ToString, ""),
		EpochDateCloseApproach: Epoch(approach),
		RelativeVelocity:       Velocity(approach),
		MissDistance:           MissDistance(approach),
		OrbitingBody:           ParseOrDefault(approach.OrbitingBody, ToString, ""),
	}
}

// FirstApproach returns the first entry, or an empty approach whose lookups
// all yield defaults when the list is missing, empty or not a list of objects.
func FirstApproach(approaches any) RawCloseApproach {
	list, ok := approaches.([]any)
	if !ok || len(list) == 0 {
		return RawCloseApproach{}
	}
	c := asObject(list[0])
	return RawCloseApproach{
		CloseApproachDate:      c["close_approach_date"],
		CloseApproachDateFull:  c["close_approach_date_full"],
		EpochDateCloseApproach: c["epoch_date_close_approach"],
		RelativeVelocity:       c["relative_velocity"],
		MissDistance:           c["miss_distance"],
		OrbitingBody:           c["orbiting_body"],
	}
}

// ApproachDate falls back to the feed's grouping date when the approach has
// no usable date of its own.
func ApproachDate(c RawCloseApproach, groupDate string) string {
	if date := ParseOrDefault(c.CloseApproachDate, ToString, ""); date != "" {
		return date
	}
	return groupDate
}

// Diameter returns the kilometre bounds; each defaults to 0 independently.
func Diameter(d any) (minKm, maxKm float64) {
	km := asObject(asObject(d)[unitKilometers])
	return ParseOrDefault(km["estimated_diameter_min"], ToFloat, 0), ParseOrDefault(km["estimated_diameter_max"], ToFloat, 0)
}

// Velocity returns the relative velocity in km/s.
func Velocity(c RawCloseApproach) float64 {
	return ParseOrDefault(asObject(c.RelativeVelocity)[unitKilometersPerS], ToFloat, 0)
}

// MissDistance returns the miss distance in km.
func MissDistance(c RawCloseApproach) float64 {
	return ParseOrDefault(asObject(c.MissDistance)[unitKilometers], ToFloat, 0)
}

// Epoch returns the close-approach epoch in milliseconds.
func Epoch(c RawCloseApproach) int64 {
	return ParseOrDefault(c.EpochDateCloseApproach, ToInt, int64(0))
}

// asObject returns v as a JSON object, or nil (which still indexes safely)
// when v has any other shape.
func asObject(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}
