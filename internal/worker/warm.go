package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/mausam/mausam/internal/location"
	"github.com/mausam/mausam/internal/weather"
)

// WarmJob pre-populates the suggestion and weather caches so the first
// user request for a popular place is served warm.
type WarmJob struct {
	config WarmConfig
	logger zerolog.Logger

	// Services (optional, nil skips that warm stage)
	resolver       *location.Resolver
	weatherService *weather.Service

	metrics *WarmMetrics
}

// WarmMetrics tracks warm job statistics.
type WarmMetrics struct {
	mu sync.RWMutex

	// Counters
	TotalRuns       int64
	WarmedTargets   int64
	FailedTargets   int64
	SuggestionWarms int64
	WeatherWarms    int64

	// Timings
	LastRunAt       time.Time
	LastRunDuration time.Duration
	TotalDuration   time.Duration
}

// WarmJobConfig holds configuration for creating a WarmJob.
type WarmJobConfig struct {
	Config         WarmConfig
	Logger         zerolog.Logger
	Resolver       *location.Resolver
	WeatherService *weather.Service
}

// NewWarmJob creates a new warm job processor.
func NewWarmJob(cfg WarmJobConfig) *WarmJob {
	config := cfg.Config
	if len(config.Targets) == 0 {
		config = DefaultWarmConfig()
	}
	if config.Concurrency <= 0 {
		config.Concurrency = 3
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	return &WarmJob{
		config:         config,
		logger:         cfg.Logger,
		resolver:       cfg.Resolver,
		weatherService: cfg.WeatherService,
		metrics:        &WarmMetrics{},
	}
}

// WarmResult contains the result of a warm run.
type WarmResult struct {
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	TotalTargets int
	Warmed       int
	Failed       int
	Errors       []WarmError
}

// WarmError represents an error during a warm run.
type WarmError struct {
	Stage  string
	Target string
	Error  string
}

// Run warms every configured target once.
func (j *WarmJob) Run(ctx context.Context) *WarmResult {
	startTime := time.Now()
	result := &WarmResult{
		StartTime:    startTime,
		TotalTargets: j.config.TotalTargets(),
	}

	j.logger.Info().
		Int("total_targets", result.TotalTargets).
		Int("concurrency", j.config.Concurrency).
		Msg("starting cache warm job")

	targets := j.config.AllTargets()

	targetsChan := make(chan WarmTarget, len(targets))
	resultsChan := make(chan targetResult, len(targets))

	var wg sync.WaitGroup
	for i := 0; i < j.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j.warmWorker(ctx, targetsChan, resultsChan)
		}()
	}

	for _, t := range targets {
		targetsChan <- t
	}
	close(targetsChan)

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	for tr := range resultsChan {
		if tr.success {
			result.Warmed++
		} else {
			result.Failed++
		}
		result.Errors = append(result.Errors, tr.errors...)
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(startTime)

	j.updateMetrics(result)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("warmed", result.Warmed).
		Int("failed", result.Failed).
		Msg("cache warm job completed")

	return result
}

type targetResult struct {
	target  WarmTarget
	success bool
	errors  []WarmError
}

func (j *WarmJob) warmWorker(ctx context.Context, targets <-chan WarmTarget, results chan<- targetResult) {
	for target := range targets {
		select {
		case <-ctx.Done():
			return
		default:
			results <- j.warmTarget(ctx, target)
		}
	}
}

func (j *WarmJob) warmTarget(ctx context.Context, target WarmTarget) targetResult {
	result := targetResult{
		target:  target,
		success: true,
	}

	targetCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	// Suggestion warm. Suggest degrades internally and never errors, so
	// an empty result is the only failure signal worth logging.
	if j.config.WarmSuggestions && j.resolver != nil {
		matches := j.resolver.Suggest(targetCtx, target.Query)
		if len(matches) == 0 {
			j.logger.Debug().
				Str("query", target.Query).
				Msg("suggestion warm produced no matches")
		} else {
			atomic.AddInt64(&j.metrics.SuggestionWarms, 1)
		}
	}

	// Weather warm. A successful fetch writes the snapshot cache entry
	// the API will read for the next ten minutes.
	if j.config.WarmWeather && j.weatherService != nil {
		loc := target.Location
		if _, err := j.weatherService.CurrentWeather(targetCtx, loc.Lat, loc.Lng, loc.Display); err != nil {
			result.errors = append(result.errors, WarmError{
				Stage:  "weather",
				Target: loc.Display,
				Error:  err.Error(),
			})
			result.success = false
		} else {
			atomic.AddInt64(&j.metrics.WeatherWarms, 1)
		}
	}

	return result
}

func (j *WarmJob) updateMetrics(result *WarmResult) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalRuns++
	j.metrics.WarmedTargets += int64(result.Warmed)
	j.metrics.FailedTargets += int64(result.Failed)
	j.metrics.LastRunAt = result.EndTime
	j.metrics.LastRunDuration = result.Duration
	j.metrics.TotalDuration += result.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *WarmJob) GetMetrics() WarmMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return WarmMetrics{
		TotalRuns:       j.metrics.TotalRuns,
		WarmedTargets:   j.metrics.WarmedTargets,
		FailedTargets:   j.metrics.FailedTargets,
		SuggestionWarms: atomic.LoadInt64(&j.metrics.SuggestionWarms),
		WeatherWarms:    atomic.LoadInt64(&j.metrics.WeatherWarms),
		LastRunAt:       j.metrics.LastRunAt,
		LastRunDuration: j.metrics.LastRunDuration,
		TotalDuration:   j.metrics.TotalDuration,
	}
}

// MetricsSnapshot returns the current metrics as a map for the worker's
// status endpoint.
func (j *WarmJob) MetricsSnapshot() map[string]interface{} {
	m := j.GetMetrics()
	return map[string]interface{}{
		"total_runs":        m.TotalRuns,
		"warmed_targets":    m.WarmedTargets,
		"failed_targets":    m.FailedTargets,
		"suggestion_warms":  m.SuggestionWarms,
		"weather_warms":     m.WeatherWarms,
		"last_run_at":       m.LastRunAt,
		"last_run_duration": m.LastRunDuration.String(),
		"total_duration":    m.TotalDuration.String(),
	}
}
