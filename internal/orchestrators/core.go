package orchestrators

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/looplab/fsm"
	"gopkg.in/yaml.v3"

	"loadbench/internal/shared/configs"
	"loadbench/internal/shared/loggers"
)

// Run phases.
const (
	PhaseCreated    = "created"
	PhaseConfigured = "configured"
	PhasePrepared   = "prepared"
	PhaseShooting   = "shooting"
	PhaseFinished   = "finished"
	PhaseDone       = "done"
)

const (
	eventConfigure = "configure"
	eventPrepare   = "prepare"
	eventStart     = "start"
	eventFinish    = "finish"
	eventCleanup   = "cleanup"
)

const finishPollInterval = 500 * time.Millisecond

// Core sequences plugins through a load test run. It owns the phase machine,
// the run id, and the artifact collector; plugins own their domain work.
type Core struct {
	runID     string
	cfg       *configs.Config
	plugins   []Plugin
	collector *ArtifactCollector
	logger    loggers.Logger

	machine *fsm.FSM

	mu        sync.RWMutex
	startedAt time.Time

	interruptOnce sync.Once
	interrupted   chan struct{}
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// NewCore builds a run over the given plugins. Plugin order matters: phases
// run in slice order, and EndTest/PostProcess run in reverse. Put the
// generator last so teardown stops it before the pipeline drains.
func NewCore(runID string, cfg *configs.Config, plugins []Plugin, collector *ArtifactCollector, logger loggers.Logger) *Core {
	core := &Core{
		runID:       runID,
		cfg:         cfg,
		plugins:     plugins,
		collector:   collector,
		interrupted: make(chan struct{}),
	}
	core.logger = logger.With().Str(loggers.FieldRunID, core.runID).Logger()

	core.machine = fsm.NewFSM(
		PhaseCreated,
		fsm.Events{
			{Name: eventConfigure, Src: []string{PhaseCreated}, Dst: PhaseConfigured},
			{Name: eventPrepare, Src: []string{PhaseConfigured}, Dst: PhasePrepared},
			{Name: eventStart, Src: []string{PhasePrepared}, Dst: PhaseShooting},
			{Name: eventFinish, Src: []string{PhaseConfigured, PhasePrepared, PhaseShooting}, Dst: PhaseFinished},
			{Name: eventCleanup, Src: []string{PhaseCreated, PhaseConfigured, PhasePrepared, PhaseShooting, PhaseFinished}, Dst: PhaseDone},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				metricPhaseTransitionsTotal.WithLabelValues(e.Dst).Inc()
				core.logger.Info().Str(loggers.FieldPhase, e.Dst).Msg("run phase changed")
			},
		},
	)

	return core
}

// RunID returns the unique id of this run.
func (c *Core) RunID() string { return c.runID }

// Phase returns the current run phase.
func (c *Core) Phase() string { return c.machine.Current() }

// StartedAt returns when the shoot phase began, zero before that.
func (c *Core) StartedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.startedAt
}

// Interrupt asks a running shoot to wind down. Safe to call more than once
// and from any goroutine.
func (c *Core) Interrupt() {
	c.interruptOnce.Do(func() {
		c.logger.Warn().Msg("run interrupted")
		close(c.interrupted)
	})
}

// Run drives the whole lifecycle and returns the process exit code. Phase
// errors short-circuit to teardown; teardown itself always runs so plugins
// get to flush and artifacts get collected.
func (c *Core) Run(ctx context.Context) int {
	retcode := 0

	if err := c.configure(ctx); err != nil {
		c.logger.Error().Err(err).Msg("configure failed")
		retcode = 1
	} else if err := c.prepare(ctx); err != nil {
		c.logger.Error().Err(err).Msg("prepare failed")
		retcode = 1
	} else if err := c.startShooting(ctx); err != nil {
		c.logger.Error().Err(err).Msg("start failed")
		retcode = 1
	} else {
		retcode = c.waitForFinish(ctx)
	}

	retcode = c.endTest(ctx, retcode)
	retcode = c.postProcess(ctx, retcode)
	c.closePlugins(ctx)

	c.logger.Info().Int("retcode", retcode).Msg("run complete")
	return retcode
}

func (c *Core) configure(ctx context.Context) error {
	for _, plugin := range c.plugins {
		if err := plugin.Configure(ctx, c.cfg); err != nil {
			metricPluginErrorsTotal.WithLabelValues(plugin.Name(), PhaseConfigured).Inc()
			return errInternalPhaseFailed(PhaseConfigured, fmt.Errorf("plugin %s: %w", plugin.Name(), err))
		}
	}
	c.copyConfigArtifact()
	return c.machine.Event(ctx, eventConfigure)
}

func (c *Core) prepare(ctx context.Context) error {
	for _, plugin := range c.plugins {
		if err := plugin.Prepare(ctx); err != nil {
			metricPluginErrorsTotal.WithLabelValues(plugin.Name(), PhasePrepared).Inc()
			return errInternalPhaseFailed(PhasePrepared, fmt.Errorf("plugin %s: %w", plugin.Name(), err))
		}
	}
	return c.machine.Event(ctx, eventPrepare)
}

func (c *Core) startShooting(ctx context.Context) error {
	for _, plugin := range c.plugins {
		if err := plugin.StartTest(ctx); err != nil {
			metricPluginErrorsTotal.WithLabelValues(plugin.Name(), PhaseShooting).Inc()
			return errInternalPhaseFailed(PhaseShooting, fmt.Errorf("plugin %s: %w", plugin.Name(), err))
		}
	}
	c.mu.Lock()
	c.startedAt = time.Now().UTC()
	c.mu.Unlock()
	return c.machine.Event(ctx, eventStart)
}

// waitForFinish polls every plugin until one reports an exit code, the
// context is cancelled, or the run is interrupted. The first non-negative
// code wins.
func (c *Core) waitForFinish(ctx context.Context) int {
	ticker := time.NewTicker(finishPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Warn().Msg("context cancelled during shoot")
			return 1
		case <-c.interrupted:
			return 1
		case <-ticker.C:
			for _, plugin := range c.plugins {
				if code := plugin.IsTestFinished(ctx); code != KeepRunning {
					c.logger.Info().
						Str(loggers.FieldPlugin, plugin.Name()).
						Int("retcode", code).
						Msg("plugin finished the test")
					return code
				}
			}
		}
	}
}

// endTest runs EndTest on every plugin in reverse order. Errors are
// accumulated and bump the exit code rather than aborting teardown.
func (c *Core) endTest(ctx context.Context, retcode int) int {
	var errs *multierror.Error
	for i := len(c.plugins) - 1; i >= 0; i-- {
		plugin := c.plugins[i]
		updated, err := plugin.EndTest(ctx, retcode)
		if err != nil {
			metricPluginErrorsTotal.WithLabelValues(plugin.Name(), PhaseFinished).Inc()
			errs = multierror.Append(errs, fmt.Errorf("plugin %s: %w", plugin.Name(), err))
		}
		retcode = updated
	}
	if err := errs.ErrorOrNil(); err != nil {
		c.logger.Error().Err(err).Msg("end test errors")
		if retcode == 0 {
			retcode = 1
		}
	}
	if err := c.machine.Event(ctx, eventFinish); err != nil {
		c.logger.Warn().Err(err).Msg("finish transition skipped")
	}
	return retcode
}

func (c *Core) postProcess(ctx context.Context, retcode int) int {
	var errs *multierror.Error
	for i := len(c.plugins) - 1; i >= 0; i-- {
		plugin := c.plugins[i]
		updated, err := plugin.PostProcess(ctx, retcode)
		if err != nil {
			metricPluginErrorsTotal.WithLabelValues(plugin.Name(), PhaseDone).Inc()
			errs = multierror.Append(errs, fmt.Errorf("plugin %s: %w", plugin.Name(), err))
		}
		retcode = updated
	}

	if c.collector != nil {
		if err := c.collector.Collect(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		c.logger.Error().Err(err).Msg("post process errors")
		if retcode == 0 {
			retcode = 1
		}
	}
	return retcode
}

func (c *Core) closePlugins(ctx context.Context) {
	for i := len(c.plugins) - 1; i >= 0; i-- {
		plugin := c.plugins[i]
		if err := plugin.Close(); err != nil {
			c.logger.Warn().Err(err).Str(loggers.FieldPlugin, plugin.Name()).Msg("plugin close failed")
		}
	}
	if err := c.machine.Event(ctx, eventCleanup); err != nil {
		c.logger.Warn().Err(err).Msg("cleanup transition skipped")
	}
}

// copyConfigArtifact writes the effective run configuration into the
// artifact dir so a run can be reproduced later.
func (c *Core) copyConfigArtifact() {
	if c.collector == nil {
		return
	}
	body, err := yaml.Marshal(c.cfg)
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to marshal effective config")
		return
	}
	path := filepath.Join(c.collector.Dir(), "configs.yml")
	if err := os.WriteFile(path, body, 0644); err != nil {
		c.logger.Warn().Err(err).Msg("failed to write effective config artifact")
		return
	}
	c.collector.Add(path, true)
}
