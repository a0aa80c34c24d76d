// Package generators contains the load generator plugins. Each generator
// produces raw per-request samples and exposes them to the aggregation
// pipeline through a pull source; registration happens from init so
// configuration can select a plugin by name.
package generators

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"loadbench/internal/models"
	"loadbench/internal/orchestrators"
	"loadbench/internal/pipeline"
	"loadbench/internal/shared/configs"
	"loadbench/internal/shared/loggers"
)

const (
	sourceBuffer  = 8
	flushInterval = 200 * time.Millisecond
)

func init() {
	orchestrators.RegisterGenerator("stub", func(logger loggers.Logger) orchestrators.GeneratorPlugin {
		return newStubGenerator(logger)
	})
}

// stubGenerator synthesizes request samples without touching the network.
// It exists for dry runs and for exercising the pipeline under a known,
// reproducible load shape.
type stubGenerator struct {
	logger loggers.Logger
	cfg    configs.GeneratorConfig
	source *pipeline.ChannelSource

	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.RWMutex
	deadline time.Time
}

func newStubGenerator(logger loggers.Logger) *stubGenerator {
	return &stubGenerator{
		logger: logger.With().Str(loggers.FieldPlugin, "stub").Logger(),
		source: pipeline.NewChannelSource(sourceBuffer),
	}
}

func (g *stubGenerator) Name() string { return "stub" }

func (g *stubGenerator) Source() pipeline.BatchSource { return g.source }

func (g *stubGenerator) Configure(_ context.Context, cfg *configs.Config) error {
	g.cfg = cfg.Generator
	return nil
}

func (g *stubGenerator) Prepare(_ context.Context) error { return nil }

func (g *stubGenerator) StartTest(_ context.Context) error {
	runCtx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel

	g.mu.Lock()
	g.deadline = time.Now().Add(g.cfg.Duration())
	g.mu.Unlock()

	g.wg.Add(1)
	go g.produce(runCtx)

	g.logger.Info().
		Float64("rps", g.cfg.RPS).
		Int("duration_seconds", g.cfg.DurationSeconds).
		Msg("stub load started")
	return nil
}

// produce emits one batch per flush interval, pacing samples to the
// configured rate. Sample timestamps are wall-clock seconds, so consecutive
// batches naturally span bucket boundaries.
func (g *stubGenerator) produce(ctx context.Context) {
	defer g.wg.Done()
	defer g.source.Close()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	perFlush := int(g.cfg.RPS * flushInterval.Seconds())
	if perFlush < 1 {
		perFlush = 1
	}

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if now.After(g.deadlineSnapshot()) {
				return
			}
			batch := &models.Batch{Samples: make([]models.Sample, 0, perFlush)}
			for i := 0; i < perFlush; i++ {
				batch.Samples = append(batch.Samples, models.NewSample("stub", now, map[string]float64{
					"latency_us": 500 + rng.ExpFloat64()*2000,
					"size_bytes": float64(200 + rng.Intn(800)),
					"status":     200,
				}))
			}
			if err := g.source.Offer(ctx, batch); err != nil {
				return
			}
		}
	}
}

func (g *stubGenerator) deadlineSnapshot() time.Time {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.deadline
}

func (g *stubGenerator) IsTestFinished(_ context.Context) int {
	if time.Now().After(g.deadlineSnapshot()) {
		return 0
	}
	return orchestrators.KeepRunning
}

func (g *stubGenerator) EndTest(_ context.Context, retcode int) (int, error) {
	if g.cancel != nil {
		g.cancel()
	}
	g.wg.Wait()
	g.logger.Info().Msg("stub load stopped")
	return retcode, nil
}

func (g *stubGenerator) PostProcess(_ context.Context, retcode int) (int, error) {
	return retcode, nil
}

func (g *stubGenerator) Close() error { return nil }
