// Package feed turns NeoWs feed payloads into flat asteroid records.
//
// Everything below the date grouping is decoded as untyped values so that a
// wrong JSON type on any single field, nested or not, degrades to that
// field's default instead of failing the whole payload.
package feed

import (
	"bytes"
	"encoding/json"
)

// RawFeed is the subset of the NeoWs /feed response the normalizer reads.
type RawFeed struct {
	ElementCount     any                      `json:"element_count"`
	NearEarthObjects map[string][]RawAsteroid `json:"near_earth_objects"`
}

// RawAsteroid is one entry of a near_earth_objects date group.
type RawAsteroid struct {
	Name                   any `json:"name"`
	NasaJPLURL             any `json:"nasa_jpl_url"`
	AbsoluteMagnitudeH     any `json:"absolute_magnitude_h"`
	IsPotentiallyHazardous any `json:"is_potentially_hazardous_asteroid"`
	EstimatedDiameter      any `json:"estimated_diameter"`
	CloseApproachData      any `json:"close_approach_data"`
}

// RawCloseApproach is one recorded close-approach event, lifted out of the
// untyped close_approach_data list by FirstApproach.
// RelativeVelocity and MissDistance are objects keyed by unit when well formed.
type RawCloseApproach struct {
	CloseApproachDate      any
	CloseApproachDateFull  any
	EpochDateCloseApproach any
	RelativeVelocity       any
	MissDistance           any
	OrbitingBody           any
}

// DecodeFeed parses a feed body. Numbers are kept as json.Number so integer
// epochs survive without float rounding.
func DecodeFeed(data []byte) (*RawFeed, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw RawFeed
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if raw.NearEarthObjects == nil {
		raw.NearEarthObjects = map[string][]RawAsteroid{}
	}
	return &raw, nil
}
