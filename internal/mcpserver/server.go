// Package mcpserver exposes the asteroid catalogue as Model Context Protocol tools.
package mcpserver

import (
	"context"
	"fmt"
	"time"

	"asteroid-tracker/internal/domain"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	serverName    = "asteroid-tracker"
	serverVersion = "1.0.0"
)

type AsteroidService interface {
	ListAsteroids(ctx context.Context, filter domain.ListFilter) ([]*domain.Asteroid, error)
	GetAsteroid(ctx context.Context, id int64) (*domain.Asteroid, error)
	FetchAndStore(ctx context.Context, startDate, endDate string) ([]*domain.Asteroid, error)
}

type ListInput struct {
	Offset    int   `json:"offset,omitempty" jsonschema:"number of records to skip"`
	Limit     int   `json:"limit,omitempty" jsonschema:"page size, default 100, max 1000"`
	Hazardous *bool `json:"hazardous,omitempty" jsonschema:"only return records with this hazard flag"`
}

type GetInput struct {
	ID int64 `json:"id" jsonschema:"asteroid id"`
}

type FetchInput struct {
	StartDate string `json:"start_date" jsonschema:"first day of the range, YYYY-MM-DD"`
	EndDate   string `json:"end_date" jsonschema:"last day of the range, YYYY-MM-DD"`
}

// AsteroidView is the tool representation of a stored asteroid.
type AsteroidView struct {
	ID                     int64   `json:"id"`
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
	CreatedAt              string  `json:"created_at"`
	UpdatedAt              string  `json:"updated_at"`
}

type ListOutput struct {
	Count     int            `json:"count"`
	Asteroids []AsteroidView `json:"asteroids"`
}

type FetchOutput struct {
	Stored    int            `json:"stored"`
	Asteroids []AsteroidView `json:"asteroids"`
}

type tools struct {
	svc     AsteroidService
	timeout time.Duration
}

// NewServer registers list_asteroids, get_asteroid and fetch_asteroids.
// List and get calls are bounded by timeout. Fetch is not: the upstream
// request has its own transport timeout and the store loop runs to the end.
func NewServer(svc AsteroidService, timeout time.Duration) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	t := &tools{svc: svc, timeout: timeout}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_asteroids",
		Description: "List stored near-Earth asteroids ordered by id, optionally filtered by hazard flag.",
	}, t.listAsteroids)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_asteroid",
		Description: "Get one stored asteroid by id.",
	}, t.getAsteroid)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "fetch_asteroids",
		Description: "Fetch the NASA NeoWs feed for a date range and store every asteroid in it.",
	}, t.fetchAsteroids)

	return server
}

func (t *tools) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if t.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, t.timeout)
}

func (t *tools) listAsteroids(ctx context.Context, _ *mcp.CallToolRequest, in ListInput) (*mcp.CallToolResult, ListOutput, error) {
	ctx, cancel := t.bound(ctx)
	defer cancel()

	asteroids, err := t.svc.ListAsteroids(ctx, domain.ListFilter{Offset: in.Offset, Limit: in.Limit, Hazardous: in.Hazardous})
	if err != nil {
		return nil, ListOutput{}, toolError(err)
	}
	views := toViews(asteroids)
	return nil, ListOutput{Count: len(views), Asteroids: views}, nil
}

func (t *tools) getAsteroid(ctx context.Context, _ *mcp.CallToolRequest, in GetInput) (*mcp.CallToolResult, AsteroidView, error) {
	ctx, cancel := t.bound(ctx)
	defer cancel()

	a, err := t.svc.GetAsteroid(ctx, in.ID)
	if err != nil {
		return nil, AsteroidView{}, toolError(err)
	}
	return nil, toView(a), nil
}

func (t *tools) fetchAsteroids(ctx context.Context, _ *mcp.CallToolRequest, in FetchInput) (*mcp.CallToolResult, FetchOutput, error) {
	created, err := t.svc.FetchAndStore(ctx, in.StartDate, in.EndDate)
	if err != nil {
		return nil, FetchOutput{}, fmt.Errorf("%s (stored %d before failing)", toolError(err), len(created))
	}
	views := toViews(created)
	return nil, FetchOutput{Stored: len(views), Asteroids: views}, nil
}

func toolError(err error) error {
	return fmt.Errorf("%s: %v", domain.Category(err), err)
}

func toViews(asteroids []*domain.Asteroid) []AsteroidView {
	views := make([]AsteroidView, 0, len(asteroids))
	for _, a := range asteroids {
		views = append(views, toView(a))
	}
	return views
}

func toView(a *domain.Asteroid) AsteroidView {
	return AsteroidView{
		ID:                     a.ID,
		Name:                   a.Name,
		NasaJPLURL:             a.NasaJPLURL,
		AbsoluteMagnitude:      a.AbsoluteMagnitude,
		IsPotentiallyHazardous: a.IsPotentiallyHazardous,
		EstimatedDiameterMin:   a.EstimatedDiameterMin,
		EstimatedDiameterMax:   a.EstimatedDiameterMax,
		CloseApproachDate:      a.CloseApproachDate,
		CloseApproachDateFull:  a.CloseApproachDateFull,
		EpochDateCloseApproach: a.EpochDateCloseApproach,
		RelativeVelocity:       a.RelativeVelocity,
		MissDistance:           a.MissDistance,
		OrbitingBody:           a.OrbitingBody,
		CreatedAt:              a.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:              a.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
