package generators

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/cenkalti/backoff"

	"loadbench/internal/models"
	"loadbench/internal/orchestrators"
	"loadbench/internal/pipeline"
	"loadbench/internal/shared/configs"
	"loadbench/internal/shared/loggers"
)

const (
	probeTimeout   = 10 * time.Second
	requestTimeout = 30 * time.Second
)

func init() {
	orchestrators.RegisterGenerator("http", func(logger loggers.Logger) orchestrators.GeneratorPlugin {
		return newHTTPGenerator(logger)
	})
}

// httpGenerator shoots GET requests at the target with a worker pool, each
// worker pacing itself so the pool sums to the configured rate. Every
// request becomes one sample: latency, response size and status code.
type httpGenerator struct {
	logger loggers.Logger
	cfg    configs.GeneratorConfig
	source *pipeline.ChannelSource
	client *http.Client

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	results     chan models.Sample
	probeBudget time.Duration

	mu       sync.RWMutex
	deadline time.Time
}

func newHTTPGenerator(logger loggers.Logger) *httpGenerator {
	return &httpGenerator{
		logger:      logger.With().Str(loggers.FieldPlugin, "http").Logger(),
		source:      pipeline.NewChannelSource(sourceBuffer),
		client:      &http.Client{Timeout: requestTimeout},
		results:     make(chan models.Sample, 1024),
		probeBudget: probeTimeout,
	}
}

func (g *httpGenerator) Name() string { return "http" }

func (g *httpGenerator) Source() pipeline.BatchSource { return g.source }

func (g *httpGenerator) Configure(_ context.Context, cfg *configs.Config) error {
	if cfg.Generator.TargetURL == "" {
		return errors.New("http generator requires generator.target_url")
	}
	if _, err := url.ParseRequestURI(cfg.Generator.TargetURL); err != nil {
		return fmt.Errorf("invalid target url %q: %w", cfg.Generator.TargetURL, err)
	}
	g.cfg = cfg.Generator
	return nil
}

// Prepare probes the target once with an exponential backoff so a run fails
// fast, before the lock and artifact setup is spent on a dead target.
func (g *httpGenerator) Prepare(ctx context.Context) error {
	probe := func() error {
		reqCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		defer cancel()

		req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, g.cfg.TargetURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := g.client.Do(req)
		if err != nil {
			return err
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.Body.Close()
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = g.probeBudget
	if err := backoff.Retry(probe, policy); err != nil {
		return fmt.Errorf("target probe failed for %q: %w", g.cfg.TargetURL, err)
	}
	g.logger.Info().Str("target", g.cfg.TargetURL).Msg("target probe ok")
	return nil
}

func (g *httpGenerator) StartTest(_ context.Context) error {
	runCtx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel

	g.mu.Lock()
	g.deadline = time.Now().Add(g.cfg.Duration())
	g.mu.Unlock()

	// Each worker fires at rps/workers; the pool sums to the target rate.
	perWorker := g.cfg.RPS / float64(g.cfg.Workers)
	interval := time.Duration(float64(time.Second) / perWorker)

	for i := 0; i < g.cfg.Workers; i++ {
		g.wg.Add(1)
		go g.shoot(runCtx, interval)
	}

	g.wg.Add(1)
	go g.assemble(runCtx)

	g.logger.Info().
		Str("target", g.cfg.TargetURL).
		Float64("rps", g.cfg.RPS).
		Int("workers", g.cfg.Workers).
		Msg("http load started")
	return nil
}

func (g *httpGenerator) shoot(ctx context.Context, interval time.Duration) {
	defer g.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sample := g.fire(ctx)
			select {
			case g.results <- sample:
			case <-ctx.Done():
				return
			}
		}
	}
}

// fire performs one request. Transport failures still produce a sample
// (status 0, zero size) so error rates show up in the aggregates.
func (g *httpGenerator) fire(ctx context.Context) models.Sample {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.cfg.TargetURL, nil)
	if err != nil {
		return g.sampleAt(start, 0, 0)
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return g.sampleAt(start, 0, 0)
	}
	size, _ := io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	return g.sampleAt(start, resp.StatusCode, size)
}

func (g *httpGenerator) sampleAt(start time.Time, status int, size int64) models.Sample {
	return models.NewSample("http", start, map[string]float64{
		"latency_us": float64(time.Since(start).Microseconds()),
		"size_bytes": float64(size),
		"status":     float64(status),
	})
}

// assemble drains worker results into batches, flushing on an interval so
// the pipeline sees data while the shoot is still running.
func (g *httpGenerator) assemble(ctx context.Context) {
	defer g.wg.Done()
	defer g.source.Close()

	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	pending := make([]models.Sample, 0, 256)
	flush := func() {
		if len(pending) == 0 {
			return
		}
		batch := &models.Batch{Samples: pending}
		pending = make([]models.Sample, 0, 256)
		// Offer without the run context: once cancelled we still hand
		// over what was collected, bounded by the source buffer.
		if err := g.source.Offer(context.Background(), batch); err != nil {
			g.logger.Warn().Err(err).Msg("dropping batch, source rejected it")
		}
	}

	for {
		select {
		case <-ctx.Done():
			// Drain whatever the workers managed to report.
			for {
				select {
				case sample := <-g.results:
					pending = append(pending, sample)
				default:
					flush()
					return
				}
			}
		case sample := <-g.results:
			pending = append(pending, sample)
		case <-ticker.C:
			flush()
		}
	}
}

func (g *httpGenerator) IsTestFinished(_ context.Context) int {
	g.mu.RLock()
	deadline := g.deadline
	g.mu.RUnlock()
	if time.Now().After(deadline) {
		return 0
	}
	return orchestrators.KeepRunning
}

func (g *httpGenerator) EndTest(_ context.Context, retcode int) (int, error) {
	if g.cancel != nil {
		g.cancel()
	}
	g.wg.Wait()
	g.client.CloseIdleConnections()
	g.logger.Info().Msg("http load stopped")
	return retcode, nil
}

func (g *httpGenerator) PostProcess(_ context.Context, retcode int) (int, error) {
	return retcode, nil
}

func (g *httpGenerator) Close() error { return nil }
