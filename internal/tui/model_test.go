package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"asteroid-tracker/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
)

type listerStub struct {
	calls   []domain.ListFilter
	records []*domain.Asteroid
	err     error
}

func (s *listerStub) ListAsteroids(ctx context.Context, filter domain.ListFilter) ([]*domain.Asteroid, error) {
	s.calls = append(s.calls, filter)
	if s.err != nil {
		return nil, s.err
	}
	if filter.Hazardous == nil {
		return s.records, nil
	}
	out := make([]*domain.Asteroid, 0)
	for _, a := range s.records {
		if a.IsPotentiallyHazardous == *filter.Hazardous {
			out = append(out, a)
		}
	}
	return out, nil
}

func sampleRecords() []*domain.Asteroid {
	return []*domain.Asteroid{
		{ID: 1, AsteroidCreate: domain.AsteroidCreate{Name: "Apophis", IsPotentiallyHazardous: true, CloseApproachDate: "2029-04-13"}},
		{ID: 2, AsteroidCreate: domain.AsteroidCreate{Name: "Ceres", CloseApproachDate: "2024-01-01"}},
	}
}

func runCmd(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	m.Update(cmd())
}

func key(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelLoadsOnInit(t *testing.T) {
	stub := &listerStub{records: sampleRecords()}
	m := NewModel(stub, "alice")
	m.SetSize(100, 30)

	runCmd(t, m, m.Init())

	if m.loading {
		t.Fatal("expected loading to finish")
	}
	if len(m.table.Rows()) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(m.table.Rows()))
	}
	view := m.View()
	if !strings.Contains(view, "Apophis") || !strings.Contains(view, "filter: all") || !strings.Contains(view, "alice") {
		t.Fatalf("unexpected view:\n%s", view)
	}
	if stub.calls[0].Limit != browseLimit || stub.calls[0].Hazardous != nil {
		t.Fatalf("unexpected filter: %+v", stub.calls[0])
	}
}

func TestModelCyclesFilter(t *testing.T) {
	stub := &listerStub{records: sampleRecords()}
	m := NewModel(stub, "")
	runCmd(t, m, m.Init())

	_, cmd := m.Update(key("f"))
	runCmd(t, m, cmd)
	if m.filter != filterHazardous || len(m.asteroids) != 1 || m.asteroids[0].Name != "Apophis" {
		t.Fatalf("unexpected hazardous state: filter=%s rows=%d", m.filter, len(m.asteroids))
	}

	_, cmd = m.Update(key("f"))
	runCmd(t, m, cmd)
	if m.filter != filterNotHazardous || len(m.asteroids) != 1 || m.asteroids[0].Name != "Ceres" {
		t.Fatalf("unexpected not hazardous state: filter=%s", m.filter)
	}

	_, cmd = m.Update(key("f"))
	runCmd(t, m, cmd)
	if m.filter != filterAll || len(m.asteroids) != 2 {
		t.Fatalf("expected filter to wrap to all, got %s", m.filter)
	}
}

func TestModelIgnoresStaleLoads(t *testing.T) {
	m := NewModel(&listerStub{records: sampleRecords()}, "")
	m.filter = filterHazardous

	m.Update(asteroidsLoadedMsg{filter: filterAll, asteroids: sampleRecords()})
	if len(m.asteroids) != 0 {
		t.Fatal("stale result should be dropped")
	}
}

func TestModelDetailToggle(t *testing.T) {
	m := NewModel(&listerStub{records: sampleRecords()}, "")
	m.SetSize(100, 30)
	runCmd(t, m, m.Init())

	m.Update(key("enter"))
	if !m.showDetail || !strings.Contains(m.View(), "POTENTIALLY HAZARDOUS") {
		t.Fatalf("expected detail pane:\n%s", m.View())
	}
	m.Update(key("enter"))
	if m.showDetail {
		t.Fatal("expected detail pane to close")
	}
}

func TestModelShowsErrorsAndQuits(t *testing.T) {
	m := NewModel(&listerStub{err: fmt.Errorf("%w: db down", domain.ErrStorage)}, "")
	runCmd(t, m, m.Init())

	if !strings.Contains(m.View(), "error (storage)") {
		t.Fatalf("expected error in view:\n%s", m.View())
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestFilterModeListFilter(t *testing.T) {
	if f := filterNotHazardous.listFilter(); f.Hazardous == nil || *f.Hazardous {
		t.Fatalf("unexpected filter: %+v", f)
	}
	if filterNotHazardous.next() != filterAll {
		t.Fatal("expected wrap-around")
	}
}
