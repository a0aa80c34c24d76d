package orchestrators

import (
	"context"

	"loadbench/internal/pipeline"
	"loadbench/internal/shared/configs"
)

// KeepRunning is returned from IsTestFinished while a plugin wants the run
// to continue. Any value >= 0 ends the shoot phase with that exit code.
const KeepRunning = -1

// Plugin is one participant in a load test run. The core drives every
// plugin through the same phase sequence:
//
//	Configure → Prepare → StartTest → (IsTestFinished polling) →
//	EndTest → PostProcess → Close
//
// EndTest and PostProcess receive the run's exit code so far and return the
// possibly-updated code; their errors are accumulated, not fatal to the
// phase.
//
//go:generate mockgen -source=plugin.go -destination=./mocks/plugin_mock.go -package=mocks
type Plugin interface {
	Name() string
	Configure(ctx context.Context, cfg *configs.Config) error
	Prepare(ctx context.Context) error
	StartTest(ctx context.Context) error
	IsTestFinished(ctx context.Context) int
	EndTest(ctx context.Context, retcode int) (int, error)
	PostProcess(ctx context.Context, retcode int) (int, error)
	Close() error
}

// GeneratorPlugin is a Plugin that produces the sample stream the
// aggregation pipeline consumes.
type GeneratorPlugin interface {
	Plugin
	Source() pipeline.BatchSource
}
