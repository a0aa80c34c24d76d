package orchestrators_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"loadbench/internal/orchestrators"
	"loadbench/internal/orchestrators/mocks"
	"loadbench/internal/shared/configs"
	"loadbench/internal/shared/loggers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func coreTestLogger(t *testing.T) loggers.Logger {
	t.Helper()
	logger, err := loggers.New("error")
	require.NoError(t, err)
	return logger
}

func relaxedPlugin(plugin *mocks.MockPlugin, name string) {
	plugin.EXPECT().Name().Return(name).AnyTimes()
}

func TestCoreRun_HappyPath(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &configs.Config{}
	first := mocks.NewMockPlugin(ctrl)
	second := mocks.NewMockPlugin(ctrl)
	relaxedPlugin(first, "first")
	relaxedPlugin(second, "second")

	gomock.InOrder(
		first.EXPECT().Configure(gomock.Any(), cfg).Return(nil),
		second.EXPECT().Configure(gomock.Any(), cfg).Return(nil),
		first.EXPECT().Prepare(gomock.Any()).Return(nil),
		second.EXPECT().Prepare(gomock.Any()).Return(nil),
		first.EXPECT().StartTest(gomock.Any()).Return(nil),
		second.EXPECT().StartTest(gomock.Any()).Return(nil),
	)
	first.EXPECT().IsTestFinished(gomock.Any()).Return(0).AnyTimes()
	second.EXPECT().IsTestFinished(gomock.Any()).Return(orchestrators.KeepRunning).AnyTimes()

	// Teardown runs in reverse plugin order.
	gomock.InOrder(
		second.EXPECT().EndTest(gomock.Any(), 0).Return(0, nil),
		first.EXPECT().EndTest(gomock.Any(), 0).Return(0, nil),
		second.EXPECT().PostProcess(gomock.Any(), 0).Return(0, nil),
		first.EXPECT().PostProcess(gomock.Any(), 0).Return(0, nil),
		second.EXPECT().Close().Return(nil),
		first.EXPECT().Close().Return(nil),
	)

	core := orchestrators.NewCore(
		orchestrators.NewRunID(),
		cfg,
		[]orchestrators.Plugin{first, second},
		nil,
		coreTestLogger(t),
	)

	assert.Equal(t, orchestrators.PhaseCreated, core.Phase())
	retcode := core.Run(context.Background())
	assert.Equal(t, 0, retcode)
	assert.Equal(t, orchestrators.PhaseDone, core.Phase())
	assert.False(t, core.StartedAt().IsZero())
}

func TestCoreRun_PluginRetcodePropagates(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &configs.Config{}
	plugin := mocks.NewMockPlugin(ctrl)
	relaxedPlugin(plugin, "only")

	plugin.EXPECT().Configure(gomock.Any(), cfg).Return(nil)
	plugin.EXPECT().Prepare(gomock.Any()).Return(nil)
	plugin.EXPECT().StartTest(gomock.Any()).Return(nil)
	plugin.EXPECT().IsTestFinished(gomock.Any()).Return(3).AnyTimes()
	plugin.EXPECT().EndTest(gomock.Any(), 3).Return(3, nil)
	plugin.EXPECT().PostProcess(gomock.Any(), 3).Return(3, nil)
	plugin.EXPECT().Close().Return(nil)

	core := orchestrators.NewCore(orchestrators.NewRunID(), cfg, []orchestrators.Plugin{plugin}, nil, coreTestLogger(t))
	assert.Equal(t, 3, core.Run(context.Background()))
}

func TestCoreRun_ConfigureFailureStillTearsDown(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &configs.Config{}
	plugin := mocks.NewMockPlugin(ctrl)
	relaxedPlugin(plugin, "broken")

	plugin.EXPECT().Configure(gomock.Any(), cfg).Return(assert.AnError)
	// Prepare/StartTest/IsTestFinished must not be called.
	plugin.EXPECT().EndTest(gomock.Any(), 1).Return(1, nil)
	plugin.EXPECT().PostProcess(gomock.Any(), 1).Return(1, nil)
	plugin.EXPECT().Close().Return(nil)

	core := orchestrators.NewCore(orchestrators.NewRunID(), cfg, []orchestrators.Plugin{plugin}, nil, coreTestLogger(t))
	assert.Equal(t, 1, core.Run(context.Background()))
	assert.Equal(t, orchestrators.PhaseDone, core.Phase())
}

func TestCoreRun_EndTestErrorBumpsRetcode(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &configs.Config{}
	plugin := mocks.NewMockPlugin(ctrl)
	relaxedPlugin(plugin, "flaky")

	plugin.EXPECT().Configure(gomock.Any(), cfg).Return(nil)
	plugin.EXPECT().Prepare(gomock.Any()).Return(nil)
	plugin.EXPECT().StartTest(gomock.Any()).Return(nil)
	plugin.EXPECT().IsTestFinished(gomock.Any()).Return(0).AnyTimes()
	plugin.EXPECT().EndTest(gomock.Any(), 0).Return(0, assert.AnError)
	plugin.EXPECT().PostProcess(gomock.Any(), 1).Return(1, nil)
	plugin.EXPECT().Close().Return(nil)

	core := orchestrators.NewCore(orchestrators.NewRunID(), cfg, []orchestrators.Plugin{plugin}, nil, coreTestLogger(t))
	assert.Equal(t, 1, core.Run(context.Background()))
}

func TestCoreRun_Interrupt(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &configs.Config{}
	plugin := mocks.NewMockPlugin(ctrl)
	relaxedPlugin(plugin, "endless")

	plugin.EXPECT().Configure(gomock.Any(), cfg).Return(nil)
	plugin.EXPECT().Prepare(gomock.Any()).Return(nil)
	plugin.EXPECT().StartTest(gomock.Any()).Return(nil)
	plugin.EXPECT().IsTestFinished(gomock.Any()).Return(orchestrators.KeepRunning).AnyTimes()
	plugin.EXPECT().EndTest(gomock.Any(), 1).Return(1, nil)
	plugin.EXPECT().PostProcess(gomock.Any(), 1).Return(1, nil)
	plugin.EXPECT().Close().Return(nil)

	core := orchestrators.NewCore(orchestrators.NewRunID(), cfg, []orchestrators.Plugin{plugin}, nil, coreTestLogger(t))

	go func() {
		time.Sleep(50 * time.Millisecond)
		core.Interrupt()
	}()

	assert.Equal(t, 1, core.Run(context.Background()))
}

func TestCoreRun_WritesConfigArtifact(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	artifactDir := t.TempDir()
	collector := orchestrators.NewArtifactCollector(artifactDir, coreTestLogger(t))

	cfg := &configs.Config{Log: configs.LogConfig{Level: "info"}}
	plugin := mocks.NewMockPlugin(ctrl)
	relaxedPlugin(plugin, "only")

	plugin.EXPECT().Configure(gomock.Any(), cfg).Return(nil)
	plugin.EXPECT().Prepare(gomock.Any()).Return(nil)
	plugin.EXPECT().StartTest(gomock.Any()).Return(nil)
	plugin.EXPECT().IsTestFinished(gomock.Any()).Return(0).AnyTimes()
	plugin.EXPECT().EndTest(gomock.Any(), 0).Return(0, nil)
	plugin.EXPECT().PostProcess(gomock.Any(), 0).Return(0, nil)
	plugin.EXPECT().Close().Return(nil)

	core := orchestrators.NewCore(orchestrators.NewRunID(), cfg, []orchestrators.Plugin{plugin}, collector, coreTestLogger(t))
	require.Equal(t, 0, core.Run(context.Background()))

	body, err := os.ReadFile(filepath.Join(artifactDir, "configs.yml"))
	require.NoError(t, err)
	assert.Contains(t, string(body), "level: info")
}
