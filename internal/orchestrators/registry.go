package orchestrators

import (
	"fmt"
	"sort"
	"sync"

	"loadbench/internal/shared/loggers"
)

// GeneratorFactory builds a generator plugin instance for one run.
type GeneratorFactory func(logger loggers.Logger) GeneratorPlugin

var (
	registryMu sync.RWMutex
	registry   = make(map[string]GeneratorFactory)
)

// RegisterGenerator adds a generator factory under name. Implementations
// register themselves from init; configuration then selects by name. A
// duplicate name is a programming error.
func RegisterGenerator(name string, factory GeneratorFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("generator %q registered twice", name))
	}
	registry[name] = factory
}

// NewGenerator instantiates the generator registered under name.
func NewGenerator(name string, logger loggers.Logger) (GeneratorPlugin, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, errInvalidGeneratorPlugin(fmt.Errorf("generator plugin %q (registered: %v)", name, GeneratorNames()))
	}
	return factory(logger), nil
}

// GeneratorNames returns the registered generator names, sorted.
func GeneratorNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
