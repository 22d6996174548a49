package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"asteroid-tracker/internal/domain"

	"github.com/jonboulle/clockwork"
)

// MemoryAsteroidStore keeps asteroids in process memory. It backs the
// service when no database is configured and loses everything on restart.
type MemoryAsteroidStore struct {
	mu     sync.RWMutex
	clock  clockwork.Clock
	nextID int64
	rows   map[int64]domain.Asteroid
}

func NewMemoryAsteroidStore(clock clockwork.Clock) *MemoryAsteroidStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryAsteroidStore{
		clock: clock,
		rows:  make(map[int64]domain.Asteroid),
	}
}

func (s *MemoryAsteroidStore) Create(ctx context.Context, in domain.AsteroidCreate) (*domain.Asteroid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	now := s.clock.Now().UTC()
	a := domain.Asteroid{
		ID:             s.nextID,
		AsteroidCreate: in,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.rows[a.ID] = a
	return &a, nil
}

func (s *MemoryAsteroidStore) Get(ctx context.Context, id int64) (*domain.Asteroid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.rows[id]
	if !ok {
		return nil, notFound(id)
	}
	return &a, nil
}

func (s *MemoryAsteroidStore) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Asteroid, error) {
	filter = filter.Normalize()

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.rows))
	for id, a := range s.rows {
		if filter.Hazardous != nil && a.IsPotentiallyHazardous != *filter.Hazardous {
			continue
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]*domain.Asteroid, 0)
	for i := filter.Offset; i < len(ids) && len(out) < filter.Limit; i++ {
		a := s.rows[ids[i]]
		out = append(out, &a)
	}
	return out, nil
}

func (s *MemoryAsteroidStore) Update(ctx context.Context, id int64, patch domain.AsteroidPatch) (*domain.Asteroid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.rows[id]
	if !ok {
		return nil, notFound(id)
	}
	patch.Apply(&a.AsteroidCreate)
	a.UpdatedAt = s.clock.Now().UTC()
	s.rows[id] = a
	return &a, nil
}

func (s *MemoryAsteroidStore) Delete(ctx context.Context, id int64) (*domain.DeletionReceipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		return nil, notFound(id)
	}
	delete(s.rows, id)
	return &domain.DeletionReceipt{ID: id, DeletedAt: s.clock.Now().UTC()}, nil
}

func notFound(id int64) error {
	return fmt.Errorf("%w: asteroid with ID %d not found", domain.ErrNotFound, id)
}
