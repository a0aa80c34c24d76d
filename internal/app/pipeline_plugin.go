package app

import (
	"context"
	"fmt"
	"time"

	"loadbench/internal/aggregators"
	"loadbench/internal/models"
	"loadbench/internal/orchestrators"
	"loadbench/internal/pipeline"
	"loadbench/internal/shared/configs"
	"loadbench/internal/shared/loggers"
	"loadbench/internal/streams"
)

// drainGrace bounds how long EndTest waits for the pipeline to exhaust on
// its own after the generator closed the source. Past it the poller is
// cancelled and the windower flushes whatever it holds.
const drainGrace = 30 * time.Second

// pipelinePlugin adapts the aggregation pipeline to the run lifecycle. It
// builds the Poller→Windower→Aggregator→Drain chain over the generator's
// source at prepare time and tears it down when the shoot ends.
type pipelinePlugin struct {
	source     pipeline.BatchSource
	queue      *streams.RecordQueue
	dispatcher streams.ResultDispatcher
	logger     loggers.Logger

	cfg   configs.PipelineConfig
	spec  *aggregators.Spec
	drain *pipeline.Drain

	drainCancel context.CancelFunc
}

func newPipelinePlugin(source pipeline.BatchSource, queue *streams.RecordQueue, dispatcher streams.ResultDispatcher, logger loggers.Logger) *pipelinePlugin {
	return &pipelinePlugin{
		source:     source,
		queue:      queue,
		dispatcher: dispatcher,
		logger:     logger.With().Str(loggers.FieldPlugin, "pipeline").Logger(),
	}
}

func (p *pipelinePlugin) Name() string { return "pipeline" }

func (p *pipelinePlugin) Configure(_ context.Context, cfg *configs.Config) error {
	spec, err := aggregators.NewSpecFromConfig(cfg.Aggregation)
	if err != nil {
		return fmt.Errorf("aggregation spec: %w", err)
	}
	p.spec = spec
	p.cfg = cfg.Pipeline
	return nil
}

func (p *pipelinePlugin) Prepare(_ context.Context) error {
	latePolicy, err := models.NewLatePolicyFromString(p.cfg.LatePolicy)
	if err != nil {
		return err
	}

	poller := pipeline.NewPoller(p.source, p.cfg.PollInterval(), p.logger)
	windower := pipeline.NewWindower(poller, p.cfg.CacheSize, latePolicy, p.logger)
	aggregator := pipeline.NewAggregator(windower, aggregators.NewReducer(p.spec, p.logger))
	p.drain = pipeline.NewDrain(aggregator, p.queue, p.logger)
	return nil
}

func (p *pipelinePlugin) StartTest(_ context.Context) error {
	// The drain outlives the shoot context: it must keep flushing after the
	// run winds down, so it gets its own cancel.
	drainCtx, cancel := context.WithCancel(context.Background())
	p.drainCancel = cancel

	p.drain.Start(drainCtx)
	p.dispatcher.Start(context.Background())
	return nil
}

func (p *pipelinePlugin) IsTestFinished(_ context.Context) int {
	if p.queue.Err() != nil {
		// The pipeline already failed; no point shooting on.
		return 1
	}
	return orchestrators.KeepRunning
}

// EndTest waits for the pipeline to exhaust. The generator's EndTest ran
// first (plugins tear down in reverse order), so the source is closed and
// exhaustion is ordinarily quick; the grace timeout only covers a source
// that never closed.
func (p *pipelinePlugin) EndTest(_ context.Context, retcode int) (int, error) {
	if p.drainCancel == nil {
		// Shoot never started; nothing to drain.
		p.dispatcher.Stop()
		return retcode, nil
	}

	done := make(chan struct{})
	go func() {
		p.drain.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(drainGrace):
		p.logger.Warn().Msg("pipeline did not exhaust in time, cancelling poller")
		p.drainCancel()
		<-done
	}
	p.drainCancel()

	p.dispatcher.Stop()

	if err := p.queue.Err(); err != nil {
		if retcode == 0 {
			retcode = 1
		}
		return retcode, fmt.Errorf("pipeline failed: %w", err)
	}
	if err := p.dispatcher.Err(); err != nil {
		if retcode == 0 {
			retcode = 1
		}
		return retcode, err
	}

	p.logger.Info().
		Int64("records", p.queue.Pushed()).
		Msg("pipeline drained")
	return retcode, nil
}

func (p *pipelinePlugin) PostProcess(_ context.Context, retcode int) (int, error) {
	return retcode, nil
}

func (p *pipelinePlugin) Close() error { return nil }
