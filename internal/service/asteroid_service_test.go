package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"asteroid-tracker/internal/domain"
	"asteroid-tracker/internal/feed"
	"asteroid-tracker/internal/observability"
	"asteroid-tracker/internal/repository"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

var testTracer = trace.NewNoopTracerProvider().Tracer("test")

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

const twoDayFeed = `{
  "element_count": 3,
  "near_earth_objects": {
    "2024-01-02": [{"name": "C", "is_potentially_hazardous_asteroid": true}],
    "2024-01-01": [{"name": "A"}, {"name": "B"}]
  }
}`

type fakeFetcher struct {
	raw   *feed.RawFeed
	err   error
	calls int
}

func (f *fakeFetcher) FetchFeed(ctx context.Context, startDate, endDate string) (*feed.RawFeed, error) {
	f.calls++
	return f.raw, f.err
}

func mustDecode(t *testing.T, body string) *feed.RawFeed {
	t.Helper()
	raw, err := feed.DecodeFeed([]byte(body))
	require.NoError(t, err)
	return raw
}

// failingStore delegates to an in-memory store and fails every create after
// the first failAfter calls.
type failingStore struct {
	*repository.MemoryAsteroidStore
	failAfter int
	creates   int
}

func (s *failingStore) Create(ctx context.Context, in domain.AsteroidCreate) (*domain.Asteroid, error) {
	s.creates++
	if s.creates > s.failAfter {
		return nil, fmt.Errorf("%w: connection reset", domain.ErrStorage)
	}
	return s.MemoryAsteroidStore.Create(ctx, in)
}

type fakeRedis struct {
	lists   map[string][]string
	pushErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{lists: make(map[string][]string)}
}

func (f *fakeRedis) LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd {
	if f.pushErr != nil {
		return redis.NewIntResult(0, f.pushErr)
	}
	for _, v := range values {
		var s string
		switch val := v.(type) {
		case []byte:
			s = string(val)
		case string:
			s = val
		default:
			b, _ := json.Marshal(val)
			s = string(b)
		}
		f.lists[key] = append([]string{s}, f.lists[key]...)
	}
	return redis.NewIntResult(int64(len(f.lists[key])), nil)
}

func (f *fakeRedis) LTrim(ctx context.Context, key string, start, stop int64) *redis.StatusCmd {
	list := f.lists[key]
	if int(stop)+1 < len(list) {
		f.lists[key] = list[start : stop+1]
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd {
	list := f.lists[key]
	end := int(stop) + 1
	if end > len(list) {
		end = len(list)
	}
	if int(start) >= end {
		return redis.NewStringSliceResult([]string{}, nil)
	}
	return redis.NewStringSliceResult(list[start:end], nil)
}

func newTestService(fetcher FeedFetcher, store AsteroidStore, rdb RedisClient, m *observability.Metrics) *AsteroidService {
	return NewAsteroidService(testTracer, fetcher, store, rdb, m, clockwork.NewFakeClockAt(epoch))
}

func TestFetchAndStoreCreatesInFeedOrder(t *testing.T) {
	t.Parallel()

	store := repository.NewMemoryAsteroidStore(clockwork.NewFakeClockAt(epoch))
	metrics := observability.NewMetricsForTesting()
	svc := newTestService(&fakeFetcher{raw: mustDecode(t, twoDayFeed)}, store, nil, metrics)

	created, err := svc.FetchAndStore(context.Background(), "2024-01-01", "2024-01-02")
	require.NoError(t, err)
	require.Len(t, created, 3)

	assert.Equal(t, []string{"A", "B", "C"}, []string{created[0].Name, created[1].Name, created[2].Name})
	assert.Equal(t, []int64{1, 2, 3}, []int64{created[0].ID, created[1].ID, created[2].ID})
	assert.True(t, created[2].IsPotentiallyHazardous)
	assert.Equal(t, "2024-01-01", created[0].CloseApproachDate)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.FetchRuns.WithLabelValues("success")))
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.AsteroidsStored))
}

func TestFetchAndStoreEmptyFeed(t *testing.T) {
	t.Parallel()

	store := repository.NewMemoryAsteroidStore(nil)
	svc := newTestService(&fakeFetcher{raw: mustDecode(t, `{"near_earth_objects": {}}`)}, store, nil, nil)

	created, err := svc.FetchAndStore(context.Background(), "2024-01-01", "2024-01-01")
	require.NoError(t, err)
	assert.NotNil(t, created)
	assert.Empty(t, created)
}

func TestFetchAndStorePropagatesFetcherErrors(t *testing.T) {
	t.Parallel()

	for _, sentinel := range []error{domain.ErrInvalidRange, domain.ErrConfiguration, domain.ErrUpstreamUnavailable, domain.ErrMalformedResponse} {
		sentinel := sentinel
		t.Run(sentinel.Error(), func(t *testing.T) {
			t.Parallel()

			store := repository.NewMemoryAsteroidStore(nil)
			svc := newTestService(&fakeFetcher{err: fmt.Errorf("%w: boom", sentinel)}, store, nil, nil)

			created, err := svc.FetchAndStore(context.Background(), "2024-01-01", "2024-01-01")
			assert.ErrorIs(t, err, sentinel)
			assert.Empty(t, created)

			all, listErr := store.List(context.Background(), domain.ListFilter{})
			require.NoError(t, listErr)
			assert.Empty(t, all)
		})
	}
}

func TestFetchAndStorePartialFailureKeepsEarlierRecords(t *testing.T) {
	t.Parallel()

	store := &failingStore{MemoryAsteroidStore: repository.NewMemoryAsteroidStore(nil), failAfter: 1}
	metrics := observability.NewMetricsForTesting()
	rdb := newFakeRedis()
	svc := newTestService(&fakeFetcher{raw: mustDecode(t, twoDayFeed)}, store, rdb, metrics)

	created, err := svc.FetchAndStore(context.Background(), "2024-01-01", "2024-01-02")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Contains(t, err.Error(), "stored 1 of 3")
	require.Len(t, created, 1)
	assert.Equal(t, "A", created[0].Name)

	kept, listErr := store.List(context.Background(), domain.ListFilter{})
	require.NoError(t, listErr)
	assert.Len(t, kept, 1)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.FetchRuns.WithLabelValues(domain.CategoryStorage)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.StoreErrors.WithLabelValues("create")))

	runs, err := svc.RecentFetchRuns(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 3, runs[0].Normalized)
	assert.Equal(t, 1, runs[0].Stored)
	assert.Equal(t, domain.CategoryStorage, runs[0].Category)
}

func TestFetchRunLogIsNewestFirstAndCapped(t *testing.T) {
	t.Parallel()

	rdb := newFakeRedis()
	svc := newTestService(&fakeFetcher{raw: mustDecode(t, `{}`)}, repository.NewMemoryAsteroidStore(nil), rdb, nil)

	for i := 0; i < maxFetchRuns+5; i++ {
		day := fmt.Sprintf("2024-02-%02d", i%28+1)
		_, err := svc.FetchAndStore(context.Background(), day, day)
		require.NoError(t, err)
	}
	assert.Len(t, rdb.lists[fetchRunsKey], maxFetchRuns)

	runs, err := svc.RecentFetchRuns(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "2024-02-27", runs[0].StartDate)
	assert.NotEmpty(t, runs[0].ID)
	assert.Empty(t, runs[0].Error)
	assert.True(t, runs[0].StartedAt.Equal(epoch))
}

func TestFetchRunLogFailureDoesNotFailFetch(t *testing.T) {
	t.Parallel()

	rdb := newFakeRedis()
	rdb.pushErr = errors.New("READONLY")
	svc := newTestService(&fakeFetcher{raw: mustDecode(t, twoDayFeed)}, repository.NewMemoryAsteroidStore(nil), rdb, nil)

	created, err := svc.FetchAndStore(context.Background(), "2024-01-01", "2024-01-02")
	require.NoError(t, err)
	assert.Len(t, created, 3)
}

func TestRecentFetchRunsWithoutRedis(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeFetcher{}, repository.NewMemoryAsteroidStore(nil), nil, nil)
	runs, err := svc.RecentFetchRuns(context.Background(), 5)
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}

func TestCRUDDelegatesToStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestService(&fakeFetcher{}, repository.NewMemoryAsteroidStore(clockwork.NewFakeClockAt(epoch)), nil, nil)

	created, err := svc.CreateAsteroid(ctx, domain.AsteroidCreate{Name: "Eros", IsPotentiallyHazardous: true})
	require.NoError(t, err)

	got, err := svc.GetAsteroid(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Eros", got.Name)

	name := "433 Eros"
	updated, err := svc.UpdateAsteroid(ctx, created.ID, domain.AsteroidPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "433 Eros", updated.Name)
	assert.True(t, updated.IsPotentiallyHazardous)

	notHazardous := false
	listed, err := svc.ListAsteroids(ctx, domain.ListFilter{Hazardous: &notHazardous})
	require.NoError(t, err)
	assert.Empty(t, listed)

	receipt, err := svc.DeleteAsteroid(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, receipt.ID)

	_, err = svc.GetAsteroid(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
