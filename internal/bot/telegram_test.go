package bot

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"asteroid-tracker/internal/domain"
)

type serviceStub struct {
	asteroids []*domain.Asteroid
	err       error
	filter    domain.ListFilter
	fetched   [2]string
	deadline  bool
}

func (s *serviceStub) ListAsteroids(ctx context.Context, filter domain.ListFilter) ([]*domain.Asteroid, error) {
	s.filter = filter
	return s.asteroids, s.err
}

func (s *serviceStub) GetAsteroid(ctx context.Context, id int64) (*domain.Asteroid, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, a := range s.asteroids {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: asteroid with ID %d not found", domain.ErrNotFound, id)
}

func (s *serviceStub) FetchAndStore(ctx context.Context, startDate, endDate string) ([]*domain.Asteroid, error) {
	s.fetched = [2]string{startDate, endDate}
	_, s.deadline = ctx.Deadline()
	return s.asteroids, s.err
}

func TestStartTelegramBotSkipsWithoutToken(t *testing.T) {
	StartTelegramBot("", nil)
}

func TestHazardousCommand(t *testing.T) {
	stub := &serviceStub{asteroids: []*domain.Asteroid{
		{ID: 3, AsteroidCreate: domain.AsteroidCreate{Name: "Apophis", CloseApproachDate: "2029-04-13", MissDistance: 38012}},
	}}
	cmds := &commands{svc: stub}

	got := cmds.hazardous()
	if !strings.Contains(got, "#3 Apophis, 2029-04-13, miss 38012 km") {
		t.Fatalf("unexpected reply: %q", got)
	}
	if stub.filter.Hazardous == nil || !*stub.filter.Hazardous || stub.filter.Limit != hazardousListSize {
		t.Fatalf("unexpected filter: %+v", stub.filter)
	}

	empty := &commands{svc: &serviceStub{}}
	if got := empty.hazardous(); !strings.HasPrefix(got, "No potentially hazardous") {
		t.Fatalf("unexpected empty reply: %q", got)
	}
}

func TestAsteroidCommand(t *testing.T) {
	stub := &serviceStub{asteroids: []*domain.Asteroid{
		{ID: 7, AsteroidCreate: domain.AsteroidCreate{Name: "Bennu", IsPotentiallyHazardous: true, OrbitingBody: "Earth"}},
	}}
	cmds := &commands{svc: stub}

	tests := []struct {
		args []string
		want string
	}{
		{nil, "Usage: /asteroid"},
		{[]string{"seven"}, "Invalid asteroid id"},
		{[]string{"8"}, "Error (not_found)"},
		{[]string{"7"}, "#7 Bennu\nHazardous: YES"},
	}
	for _, tt := range tests {
		if got := cmds.asteroid(tt.args); !strings.Contains(got, tt.want) {
			t.Errorf("args %v: expected %q in %q", tt.args, tt.want, got)
		}
	}
}

func TestFetchCommand(t *testing.T) {
	stub := &serviceStub{asteroids: make([]*domain.Asteroid, 4)}
	cmds := &commands{svc: stub}

	if got := cmds.fetch([]string{"2024-01-01"}); !strings.HasPrefix(got, "Usage") {
		t.Fatalf("unexpected reply: %q", got)
	}
	if got := cmds.fetch([]string{"2024-01-01", "2024-01-02"}); got != "Stored 4 asteroids for 2024-01-01 to 2024-01-02." {
		t.Fatalf("unexpected reply: %q", got)
	}
	if stub.fetched != [2]string{"2024-01-01", "2024-01-02"} {
		t.Fatalf("unexpected range: %v", stub.fetched)
	}

	failing := &commands{svc: &serviceStub{err: fmt.Errorf("%w: reversed", domain.ErrInvalidRange)}}
	if got := failing.fetch([]string{"2024-01-02", "2024-01-01"}); !strings.Contains(got, "(invalid_range)") {
		t.Fatalf("unexpected reply: %q", got)
	}
}

func TestFetchCommandHasNoDeadline(t *testing.T) {
	stub := &serviceStub{}
	cmds := &commands{svc: stub}

	cmds.fetch([]string{"2024-01-01", "2024-01-07"})
	if stub.deadline {
		t.Fatal("fetch-and-store must not run under a command timeout")
	}
}
