package domain

import "time"

// AsteroidCreate is a normalized near-Earth object ready to be stored.
type AsteroidCreate struct {
	Name                   string  `json:"name"`
	NasaJPLURL             string  `json:"nasa_jpl_url"`
	AbsoluteMagnitude      float64 `json:"absolute_magnitude"`
	IsPotentiallyHazardous bool    `json:"is_potentially_hazardous"`
	EstimatedDiameterMin   float64 `json:"estimated_diameter_min"`
	EstimatedDiameterMax   float64 `json:"estimated_diameter_max"`
	CloseApproachDate      string  `json:"close_approach_date"`
	CloseApproachDateFull  string  `json:"close_approach_date_full"`
	EpochDateCloseApproach int64   `json:"epoch_date_close_approach"`
	RelativeVelocity       float64 `json:"relative_velocity"`
	MissDistance           float64 `json:"miss_distance"`
	OrbitingBody           string  `json:"orbiting_body"`
}

// Asteroid is a stored record with its assigned identity and timestamps.
type Asteroid struct {
	ID int64 `json:"id"`
	AsteroidCreate
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AsteroidPatch carries a partial update. Nil fields are left untouched.
type AsteroidPatch struct {
	Name                   *string  `json:"name,omitempty"`
	NasaJPLURL             *string  `json:"nasa_jpl_url,omitempty"`
	AbsoluteMagnitude      *float64 `json:"absolute_magnitude,omitempty"`
	IsPotentiallyHazardous *bool    `json:"is_potentially_hazardous,omitempty"`
	EstimatedDiameterMin   *float64 `json:"estimated_diameter_min,omitempty"`
	EstimatedDiameterMax   *float64 `json:"estimated_diameter_max,omitempty"`
	CloseApproachDate      *string  `json:"close_approach_date,omitempty"`
	CloseApproachDateFull  *string  `json:"close_approach_date_full,omitempty"`
	EpochDateCloseApproach *int64   `json:"epoch_date_close_approach,omitempty"`
	RelativeVelocity       *float64 `json:"relative_velocity,omitempty"`
	MissDistance           *float64 `json:"miss_distance,omitempty"`
	OrbitingBody           *string  `json:"orbiting_body,omitempty"`
}

// IsEmpty reports whether the patch carries no fields.
func (p AsteroidPatch) IsEmpty() bool {
	return p.Name == nil && p.NasaJPLURL == nil && p.AbsoluteMagnitude == nil &&
		p.IsPotentiallyHazardous == nil && p.EstimatedDiameterMin == nil &&
		p.EstimatedDiameterMax == nil && p.CloseApproachDate == nil &&
		p.CloseApproachDateFull == nil && p.EpochDateCloseApproach == nil &&
		p.RelativeVelocity == nil && p.MissDistance == nil && p.OrbitingBody == nil
}

// Apply copies the present fields of p onto a.
func (p AsteroidPatch) Apply(a *AsteroidCreate) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.NasaJPLURL != nil {
		a.NasaJPLURL = *p.NasaJPLURL
	}
	if p.AbsoluteMagnitude != nil {
		a.AbsoluteMagnitude = *p.AbsoluteMagnitude
	}
	if p.IsPotentiallyHazardous != nil {
		a.IsPotentiallyHazardous = *p.IsPotentiallyHazardous
	}
	if p.EstimatedDiameterMin != nil {
		a.EstimatedDiameterMin = *p.EstimatedDiameterMin
	}
	if p.EstimatedDiameterMax != nil {
		a.EstimatedDiameterMax = *p.EstimatedDiameterMax
	}
	if p.CloseApproachDate != nil {
		a.CloseApproachDate = *p.CloseApproachDate
	}
	if p.CloseApproachDateFull != nil {
		a.CloseApproachDateFull = *p.CloseApproachDateFull
	}
	if p.EpochDateCloseApproach != nil {
		a.EpochDateCloseApproach = *p.EpochDateCloseApproach
	}
	if p.RelativeVelocity != nil {
		a.RelativeVelocity = *p.RelativeVelocity
	}
	if p.MissDistance != nil {
		a.MissDistance = *p.MissDistance
	}
	if p.OrbitingBody != nil {
		a.OrbitingBody = *p.OrbitingBody
	}
}

// DeletionReceipt confirms a record removal.
type DeletionReceipt struct {
	ID        int64     `json:"id"`
	DeletedAt time.Time `json:"deleted_at"`
}

// ListFilter selects a page of stored asteroids.
// A nil Hazardous matches every record.
type ListFilter struct {
	Offset    int
	Limit     int
	Hazardous *bool
}

const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

// Normalize clamps offset and limit into their accepted ranges.
func (f ListFilter) Normalize() ListFilter {
	if f.Offset < 0 {
		f.Offset = 0
	}
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	return f
}

// FetchRun records one fetch-and-store invocation.
type FetchRun struct {
	ID         string    `json:"id"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	Normalized int       `json:"normalized"`
	Stored     int       `json:"stored"`
	Error      string    `json:"error,omitempty"`
	Category   string    `json:"category,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}
