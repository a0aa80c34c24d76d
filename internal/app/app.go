// Package app wires configuration, the generator plugin, the aggregation
// pipeline and the result sinks into one load test run.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	internalhttp "loadbench/internal/http"
	"loadbench/internal/listeners"
	"loadbench/internal/orchestrators"
	"loadbench/internal/shared/configs"
	"loadbench/internal/shared/filestorages"
	"loadbench/internal/shared/loggers"
	"loadbench/internal/streams"
)

const shutdownTimeout = 10 * time.Second

// App holds all run dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server

	core       *orchestrators.Core
	queue      *streams.RecordQueue
	ignoreLock bool
}

// New creates and initializes a run. The artifact directory, sinks, the
// generator plugin and the pipeline are all assembled here; Run only drives
// them.
func New(config *configs.Config, ignoreLock bool) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "loadbench").
		Logger()

	runID := orchestrators.NewRunID()

	// Artifact directory and collector
	artifactDir, err := orchestrators.NewArtifactDir(config.Artifacts.BaseDir, config.Artifacts.DirName)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize artifact dir: %w", err)
	}
	collector := orchestrators.NewArtifactCollector(artifactDir, appLogger)

	// Blob store rooted in the artifact dir
	fileStorage, err := filestorages.NewFileStorage(artifactDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Record queue and result sinks
	queue := streams.NewRecordQueue(config.Pipeline.QueueDepth)

	var resultListeners []listeners.ResultListener
	if config.Sinks.Console {
		consoleLogger := appLogger.With().Str(loggers.FieldComponent, "console").Logger()
		resultListeners = append(resultListeners, listeners.NewConsoleListener(consoleLogger))
	}
	if config.Sinks.JSONL {
		jsonlListener, err := listeners.NewJSONLListener(fileStorage, runID)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize jsonl sink: %w", err)
		}
		resultListeners = append(resultListeners, jsonlListener)
	}
	if config.Sinks.Influx.Enabled {
		resultListeners = append(resultListeners, listeners.NewInfluxListener(config.Sinks.Influx, runID))
	}

	dispatcherLogger := appLogger.With().Str(loggers.FieldComponent, "dispatcher").Logger()
	dispatcher := streams.NewResultDispatcher(queue, resultListeners, dispatcherLogger)

	// Generator plugin and aggregation pipeline
	generatorLogger := appLogger.With().Str(loggers.FieldComponent, "generator").Logger()
	generator, err := orchestrators.NewGenerator(config.Generator.Plugin, generatorLogger)
	if err != nil {
		return nil, err
	}

	pipelineLogger := appLogger.With().Str(loggers.FieldComponent, "pipeline").Logger()
	pipelinePlugin := newPipelinePlugin(generator.Source(), queue, dispatcher, pipelineLogger)

	// Teardown runs in reverse order: generator first, pipeline second.
	core := orchestrators.NewCore(
		runID,
		config,
		[]orchestrators.Plugin{pipelinePlugin, generator},
		collector,
		appLogger,
	)

	// Status server
	statusProvider := func() internalhttp.StatusSnapshot {
		snapshot := internalhttp.StatusSnapshot{
			RunID:          core.RunID(),
			Phase:          core.Phase(),
			Generator:      config.Generator.Plugin,
			RecordsEmitted: queue.Pushed(),
			LastTimestamp:  queue.LastTimestamp(),
		}
		if startedAt := core.StartedAt(); !startedAt.IsZero() {
			snapshot.StartedAt = &startedAt
		}
		return snapshot
	}

	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(statusProvider, httpLogger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:     config,
		appLogger:  appLogger,
		server:     server,
		core:       core,
		queue:      queue,
		ignoreLock: ignoreLock,
	}, nil
}

// Run executes the load test and returns the process exit code. The status
// server lives for the duration of the run; cancelling ctx interrupts the
// shoot but teardown still drains and collects artifacts.
func (app *App) Run(ctx context.Context) int {
	app.appLogger.Info().
		Str(loggers.FieldRunID, app.core.RunID()).
		Str(loggers.FieldPlugin, app.config.Generator.Plugin).
		Int("status_port", app.config.Server.Port).
		Msg("starting load test run")

	if !app.ignoreLock {
		wait := time.Duration(app.config.Lock.WaitSeconds) * time.Second
		lock, err := orchestrators.AcquireLock(app.config.Lock.Dir, app.core.RunID(), wait, app.appLogger)
		if err != nil {
			if errors.Is(err, orchestrators.ErrLockHeld) {
				err = orchestrators.ErrConflictLockHeld(err)
			}
			app.appLogger.Error().Err(err).Msg("failed to acquire run lock")
			return 1
		}
		defer lock.Release()
	}

	// Watch for cancellation while the shoot runs.
	go func() {
		<-ctx.Done()
		app.core.Interrupt()
	}()

	go func() {
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.appLogger.Error().Err(err).Msg("status server failed")
		}
	}()

	// Phases run on a background context: an interrupted run still needs
	// working plugins for teardown.
	retcode := app.core.Run(context.Background())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.server.Shutdown(shutdownCtx); err != nil {
		app.appLogger.Warn().Err(err).Msg("status server shutdown failed")
	}

	return retcode
}
