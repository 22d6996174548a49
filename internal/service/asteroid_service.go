package service

import (
	"context"
	"encoding/json"
	"fmt"

	"asteroid-tracker/internal/domain"
	"asteroid-tracker/internal/feed"
	"asteroid-tracker/internal/logger"
	"asteroid-tracker/internal/observability"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	fetchRunsKey         = "asteroids:fetch_runs"
	maxFetchRuns         = 50
	defaultFetchRunLimit = 10
)

type FeedFetcher interface {
	FetchFeed(ctx context.Context, startDate, endDate string) (*feed.RawFeed, error)
}

// AsteroidStore persists asteroid records. Implementations return errors
// wrapping domain.ErrNotFound or domain.ErrStorage.
type AsteroidStore interface {
	Create(ctx context.Context, in domain.AsteroidCreate) (*domain.Asteroid, error)
	Get(ctx context.Context, id int64) (*domain.Asteroid, error)
	List(ctx context.Context, filter domain.ListFilter) ([]*domain.Asteroid, error)
	Update(ctx context.Context, id int64, patch domain.AsteroidPatch) (*domain.Asteroid, error)
	Delete(ctx context.Context, id int64) (*domain.DeletionReceipt, error)
}

// RedisClient backs the fetch run log.
type RedisClient interface {
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	LTrim(ctx context.Context, key string, start, stop int64) *redis.StatusCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
}

type AsteroidService struct {
	tracer  trace.Tracer
	fetcher FeedFetcher
	store   AsteroidStore
	redis   RedisClient
	metrics *observability.Metrics
	clock   clockwork.Clock
	log     *log.Logger
}

// NewAsteroidService wires the service. redisClient and metrics may be nil.
func NewAsteroidService(
	tracer trace.Tracer,
	fetcher FeedFetcher,
	store AsteroidStore,
	redisClient RedisClient,
	metrics *observability.Metrics,
	clock clockwork.Clock,
) *AsteroidService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &AsteroidService{
		tracer:  tracer,
		fetcher: fetcher,
		store:   store,
		redis:   redisClient,
		metrics: metrics,
		clock:   clock,
		log:     logger.Component("asteroid-service"),
	}
}

func (s *AsteroidService) CreateAsteroid(ctx context.Context, in domain.AsteroidCreate) (*domain.Asteroid, error) {
	ctx, span := s.tracer.Start(ctx, "asteroid-service.create")
	defer span.End()

	a, err := s.store.Create(ctx, in)
	if err != nil {
		s.storeFailed("create", err)
		return nil, err
	}
	return a, nil
}

func (s *AsteroidService) GetAsteroid(ctx context.Context, id int64) (*domain.Asteroid, error) {
	ctx, span := s.tracer.Start(ctx, "asteroid-service.get")
	defer span.End()

	a, err := s.store.Get(ctx, id)
	if err != nil {
		s.storeFailed("get", err)
		return nil, err
	}
	return a, nil
}

func (s *AsteroidService) ListAsteroids(ctx context.Context, filter domain.ListFilter) ([]*domain.Asteroid, error) {
	ctx, span := s.tracer.Start(ctx, "asteroid-service.list")
	defer span.End()

	asteroids, err := s.store.List(ctx, filter.Normalize())
	if err != nil {
		s.storeFailed("list", err)
		return nil, err
	}
	return asteroids, nil
}

func (s *AsteroidService) UpdateAsteroid(ctx context.Context, id int64, patch domain.AsteroidPatch) (*domain.Asteroid, error) {
	ctx, span := s.tracer.Start(ctx, "asteroid-service.update")
	defer span.End()

	a, err := s.store.Update(ctx, id, patch)
	if err != nil {
		s.storeFailed("update", err)
		return nil, err
	}
	return a, nil
}

func (s *AsteroidService) DeleteAsteroid(ctx context.Context, id int64) (*domain.DeletionReceipt, error) {
	ctx, span := s.tracer.Start(ctx, "asteroid-service.delete")
	defer span.End()

	receipt, err := s.store.Delete(ctx, id)
	if err != nil {
		s.storeFailed("delete", err)
		return nil, err
	}
	return receipt, nil
}

// FetchAndStore fetches the feed for the range, normalizes it and creates one
// record per asteroid in order. Creation is not atomic: when a create fails
// the records already stored are returned together with the error.
func (s *AsteroidService) FetchAndStore(ctx context.Context, startDate, endDate string) ([]*domain.Asteroid, error) {
	ctx, span := s.tracer.Start(ctx, "asteroid-service.fetch-and-store")
	defer span.End()
	span.SetAttributes(
		attribute.String("start_date", startDate),
		attribute.String("end_date", endDate),
	)

	run := domain.FetchRun{
		ID:        uuid.NewString(),
		StartDate: startDate,
		EndDate:   endDate,
		StartedAt: s.clock.Now().UTC(),
	}

	raw, err := s.fetcher.FetchFeed(ctx, startDate, endDate)
	s.metrics.ObserveUpstream(s.clock.Since(run.StartedAt))
	if err != nil {
		span.RecordError(err)
		s.finishRun(ctx, &run, err)
		return nil, err
	}

	records := feed.Normalize(raw)
	run.Normalized = len(records)
	s.metrics.RecordNormalized(len(records))
	s.log.Debug("normalized feed", "element_count", raw.ElementCount, "records", len(records))

	created := make([]*domain.Asteroid, 0, len(records))
	for _, rec := range records {
		a, err := s.store.Create(ctx, rec)
		if err != nil {
			s.storeFailed("create", err)
			run.Stored = len(created)
			s.metrics.RecordStored(len(created))
			err = fmt.Errorf("stored %d of %d asteroids: %w", len(created), len(records), err)
			span.RecordError(err)
			s.finishRun(ctx, &run, err)
			return created, err
		}
		created = append(created, a)
	}

	run.Stored = len(created)
	s.metrics.RecordStored(len(created))
	span.SetAttributes(attribute.Int("asteroids.stored", len(created)))
	s.finishRun(ctx, &run, nil)
	return created, nil
}

// RecentFetchRuns returns the newest fetch runs first. Without Redis the log
// is always empty.
func (s *AsteroidService) RecentFetchRuns(ctx context.Context, limit int) ([]domain.FetchRun, error) {
	ctx, span := s.tracer.Start(ctx, "asteroid-service.recent-fetch-runs")
	defer span.End()

	runs := make([]domain.FetchRun, 0)
	if s.redis == nil {
		return runs, nil
	}
	if limit <= 0 {
		limit = defaultFetchRunLimit
	}
	if limit > maxFetchRuns {
		limit = maxFetchRuns
	}

	entries, err := s.redis.LRange(ctx, fetchRunsKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read fetch runs: %v", domain.ErrStorage, err)
	}
	for _, entry := range entries {
		var run domain.FetchRun
		if err := json.Unmarshal([]byte(entry), &run); err != nil {
			s.log.Warn("skipping malformed fetch run entry", "err", err)
			continue
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func (s *AsteroidService) finishRun(ctx context.Context, run *domain.FetchRun, err error) {
	run.FinishedAt = s.clock.Now().UTC()
	outcome := "success"
	if err != nil {
		run.Error = err.Error()
		run.Category = domain.Category(err)
		outcome = run.Category
		s.log.Warn("fetch run failed", "id", run.ID, "category", run.Category, "stored", run.Stored, "err", err)
	} else {
		s.log.Info("fetch run complete", "id", run.ID, "start", run.StartDate, "end", run.EndDate, "stored", run.Stored)
	}
	s.metrics.RecordFetchRun(outcome)

	if s.redis == nil {
		return
	}
	data, mErr := json.Marshal(run)
	if mErr != nil {
		return
	}
	if pErr := s.redis.LPush(ctx, fetchRunsKey, data).Err(); pErr != nil {
		s.log.Warn("failed to record fetch run", "err", pErr)
		return
	}
	if tErr := s.redis.LTrim(ctx, fetchRunsKey, 0, maxFetchRuns-1).Err(); tErr != nil {
		s.log.Warn("failed to trim fetch run log", "err", tErr)
	}
}

func (s *AsteroidService) storeFailed(op string, err error) {
	if domain.Category(err) == domain.CategoryStorage {
		s.metrics.RecordStoreError(op)
		s.log.Error("store operation failed", "op", op, "err", err)
	}
}
