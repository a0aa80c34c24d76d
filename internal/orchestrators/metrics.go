package orchestrators

import (
	"loadbench/internal/shared/metrics"
)

var metricPhaseTransitionsTotal = metrics.NewCounterVec(metrics.CounterOpts{
	Namespace: metrics.Namespace,
	Subsystem: metrics.SubOrchestrator,
	Name:      "phase_transitions_total",
	Help:      "Number of run phase transitions.",
}, []string{"phase"})

var metricPluginErrorsTotal = metrics.NewCounterVec(metrics.CounterOpts{
	Namespace: metrics.Namespace,
	Subsystem: metrics.SubOrchestrator,
	Name:      "plugin_errors_total",
	Help:      "Number of plugin errors by plugin and phase.",
}, []string{"plugin", "phase"})
