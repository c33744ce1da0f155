package worker_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mausam/mausam/internal/cache"
	"github.com/mausam/mausam/internal/location"
	"github.com/mausam/mausam/internal/weather"
	"github.com/mausam/mausam/internal/worker"
)

type stubGeocoder struct {
	forwardCalls int64
}

func (g *stubGeocoder) Forward(_ context.Context, _ string, _ int) ([]location.Candidate, error) {
	atomic.AddInt64(&g.forwardCalls, 1)
	return nil, nil
}

func (g *stubGeocoder) Reverse(_ context.Context, _, _ float64) (*location.Candidate, error) {
	return nil, nil
}

func (g *stubGeocoder) Name() string { return "stub" }

type stubWeatherProvider struct {
	calls int64
	err   error
}

func (p *stubWeatherProvider) CurrentWeather(_ context.Context, lat, lng float64) (*weather.Snapshot, error) {
	atomic.AddInt64(&p.calls, 1)
	if p.err != nil {
		return nil, p.err
	}
	return &weather.Snapshot{
		Coord:       weather.Coord{Lat: lat, Lng: lng},
		Temperature: 21.5,
	}, nil
}

func (p *stubWeatherProvider) Forecast(_ context.Context, _, _ float64) ([]weather.Sample, error) {
	return nil, nil
}

func (p *stubWeatherProvider) Name() string { return "stub" }

type warmFixture struct {
	job      *worker.WarmJob
	store    cache.Store
	provider *stubWeatherProvider
	geocoder *stubGeocoder
}

func newWarmFixture(t *testing.T, cfg worker.WarmConfig, providerErr error) *warmFixture {
	t.Helper()

	store := cache.NewMemoryStore()
	geocoder := &stubGeocoder{}
	provider := &stubWeatherProvider{err: providerErr}

	resolver := location.NewResolver(location.ResolverConfig{
		Geocoder: geocoder,
		Cache:    cache.New[[]location.Location](cache.Config{Store: store}),
		Logger:   zerolog.Nop(),
	})

	weatherService := weather.NewService(weather.ServiceConfig{
		Provider: provider,
		Cache:    cache.New[weather.Snapshot](cache.Config{Store: store}),
		Logger:   zerolog.Nop(),
	})

	return &warmFixture{
		job: worker.NewWarmJob(worker.WarmJobConfig{
			Config:         cfg,
			Logger:         zerolog.Nop(),
			Resolver:       resolver,
			WeatherService: weatherService,
		}),
		store:    store,
		provider: provider,
		geocoder: geocoder,
	}
}

func kathmanduTarget() worker.WarmTarget {
	return worker.WarmTarget{
		Query:    "Kathmandu",
		Priority: 1,
		Location: location.Location{Display: "Kathmandu, Bagmati, Nepal", Lat: 27.701690, Lng: 85.320600},
	}
}

func TestDefaultWarmConfig(t *testing.T) {
	cfg := worker.DefaultWarmConfig()

	assert.Equal(t, 3, cfg.Concurrency)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.True(t, cfg.WarmSuggestions)
	assert.True(t, cfg.WarmWeather)
	assert.NotEmpty(t, cfg.Targets)
}

func TestDefaultWarmTargets(t *testing.T) {
	targets := worker.DefaultWarmTargets()

	assert.GreaterOrEqual(t, len(targets), 10)

	var kathmandu *worker.WarmTarget
	for i := range targets {
		if targets[i].Query == "Kathmandu" {
			kathmandu = &targets[i]
			break
		}
	}
	require.NotNil(t, kathmandu, "Kathmandu should be in the warm list")
	assert.Equal(t, 1, kathmandu.Priority)
	assert.Equal(t, "Kathmandu, Bagmati, Nepal", kathmandu.Location.Display)
}

func TestTargetsFor_FiltersByName(t *testing.T) {
	targets := worker.TargetsFor([]string{"pokhara", "Lukla"})

	require.Len(t, targets, 2)
	assert.Equal(t, "Pokhara", targets[0].Query)
	assert.Equal(t, "Lukla", targets[1].Query)
}

func TestTargetsFor_UnknownNamesSkipped(t *testing.T) {
	targets := worker.TargetsFor([]string{"atlantis", "Kathmandu"})

	require.Len(t, targets, 1)
	assert.Equal(t, "Kathmandu", targets[0].Query)
}

func TestTargetsFor_EmptyReturnsDefaults(t *testing.T) {
	assert.Len(t, worker.TargetsFor(nil), len(worker.DefaultWarmTargets()))
}

func TestWarmConfig_AllTargets_OrderedByPriority(t *testing.T) {
	cfg := worker.WarmConfig{
		Targets: []worker.WarmTarget{
			{Query: "c", Priority: 3},
			{Query: "a", Priority: 1},
			{Query: "b", Priority: 2},
			{Query: "a2", Priority: 1},
		},
	}

	targets := cfg.AllTargets()
	require.Len(t, targets, 4)
	assert.Equal(t, "a", targets[0].Query)
	assert.Equal(t, "a2", targets[1].Query)
	assert.Equal(t, "b", targets[2].Query)
	assert.Equal(t, "c", targets[3].Query)
}

func TestWarmJob_Run_WarmsCaches(t *testing.T) {
	cfg := worker.WarmConfig{
		Targets:         []worker.WarmTarget{kathmanduTarget()},
		Concurrency:     1,
		Timeout:         time.Second,
		WarmSuggestions: true,
		WarmWeather:     true,
	}
	f := newWarmFixture(t, cfg, nil)

	result := f.job.Run(context.Background())

	require.NotNil(t, result)
	assert.Equal(t, 1, result.TotalTargets)
	assert.Equal(t, 1, result.Warmed)
	assert.Zero(t, result.Failed)

	// The snapshot cache entry the API reads must now exist.
	ctx := context.Background()
	_, ok, err := f.store.Load(ctx, weather.CacheKey(27.701690, 85.320600))
	require.NoError(t, err)
	assert.True(t, ok, "weather snapshot should be cached")

	_, ok, err = f.store.Load(ctx, location.SuggestCacheKey("Kathmandu"))
	require.NoError(t, err)
	assert.True(t, ok, "suggestion list should be cached")
}

func TestWarmJob_Run_RecordsWeatherFailures(t *testing.T) {
	cfg := worker.WarmConfig{
		Targets:     []worker.WarmTarget{kathmanduTarget()},
		Concurrency: 1,
		Timeout:     time.Second,
		WarmWeather: true,
	}
	f := newWarmFixture(t, cfg, &weather.ProviderError{StatusCode: 503, Message: "upstream down"})

	result := f.job.Run(context.Background())

	assert.Zero(t, result.Warmed)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "weather", result.Errors[0].Stage)
	assert.Equal(t, "Kathmandu, Bagmati, Nepal", result.Errors[0].Target)
}

func TestWarmJob_Run_WithConcurrency(t *testing.T) {
	targets := make([]worker.WarmTarget, 10)
	for i := range targets {
		targets[i] = worker.WarmTarget{
			Query: "Kathmandu",
			Location: location.Location{
				Display: "Kathmandu, Bagmati, Nepal",
				Lat:     27.0 + float64(i)*0.1,
				Lng:     85.0 + float64(i)*0.1,
			},
		}
	}

	cfg := worker.WarmConfig{
		Targets:     targets,
		Concurrency: 3,
		Timeout:     time.Second,
		WarmWeather: true,
	}
	f := newWarmFixture(t, cfg, nil)

	result := f.job.Run(context.Background())

	assert.Equal(t, 10, result.TotalTargets)
	assert.Equal(t, 10, result.Warmed)
	assert.Equal(t, int64(10), atomic.LoadInt64(&f.provider.calls))
}

func TestWarmJob_Run_ContextCancellation(t *testing.T) {
	cfg := worker.WarmConfig{
		Targets:     worker.DefaultWarmTargets(),
		Concurrency: 1,
		Timeout:     100 * time.Millisecond,
		WarmWeather: true,
	}
	f := newWarmFixture(t, cfg, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := f.job.Run(ctx)

	// Completes without processing every target.
	assert.NotNil(t, result)
}

func TestWarmJob_GetMetrics(t *testing.T) {
	cfg := worker.WarmConfig{
		Targets:     []worker.WarmTarget{kathmanduTarget()},
		Concurrency: 1,
		Timeout:     time.Second,
		WarmWeather: true,
	}
	f := newWarmFixture(t, cfg, nil)

	_ = f.job.Run(context.Background())

	metrics := f.job.GetMetrics()
	assert.Equal(t, int64(1), metrics.TotalRuns)
	assert.Equal(t, int64(1), metrics.WarmedTargets)
	assert.Equal(t, int64(1), metrics.WeatherWarms)
	assert.NotZero(t, metrics.LastRunAt)
}

func TestWarmJob_MetricsSnapshot(t *testing.T) {
	cfg := worker.WarmConfig{
		Targets:     []worker.WarmTarget{kathmanduTarget()},
		Concurrency: 1,
		Timeout:     time.Second,
	}
	f := newWarmFixture(t, cfg, nil)

	_ = f.job.Run(context.Background())

	snapshot := f.job.MetricsSnapshot()

	assert.Contains(t, snapshot, "total_runs")
	assert.Contains(t, snapshot, "warmed_targets")
	assert.Contains(t, snapshot, "failed_targets")
	assert.Contains(t, snapshot, "last_run_at")
	assert.Contains(t, snapshot, "last_run_duration")
}

func TestNewWarmJob_DefaultConfig(t *testing.T) {
	job := worker.NewWarmJob(worker.WarmJobConfig{
		Logger: zerolog.Nop(),
	})

	metrics := job.GetMetrics()
	assert.Equal(t, int64(0), metrics.TotalRuns)
}
