package api

import (
	"fmt"
	"sync"
)

// StepManager is a name-keyed registry of steps. It is populated once at
// startup and read for the rest of the process lifetime; lookups are safe
// to run concurrently.
//
// Inserting a step whose name is already registered overwrites the existing
// entry (last write wins). Callers that need strict uniqueness should check
// ContainsName before inserting.
type StepManager struct {
	mu       sync.RWMutex
	handlers map[string]Step
}

// NewStepManager creates an empty registry.
func NewStepManager() *StepManager {
	return &StepManager{
		handlers: make(map[string]Step),
	}
}

// Insert registers a step under its own name.
func (m *StepManager) Insert(step Step) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[step.Name()] = step
}

// InsertMany registers every given step.
func (m *StepManager) InsertMany(steps ...Step) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, step := range steps {
		m.handlers[step.Name()] = step
	}
}

// Get returns the step registered under name. A missing name is a
// recoverable ErrStepNotFound, never a panic.
func (m *StepManager) Get(name string) (Step, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	step, ok := m.handlers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrStepNotFound, name)
	}
	return step, nil
}

// Len returns the number of registered steps.
func (m *StepManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.handlers)
}

// ContainsName reports whether a step is registered under name.
func (m *StepManager) ContainsName(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.handlers[name]
	return ok
}

// ContainsStep reports whether a step with the same name as the given step
// is registered. Identity is by name, not by reference.
func (m *StepManager) ContainsStep(step Step) bool {
	return m.ContainsName(step.Name())
}

// Names returns the registered step names in unspecified order.
func (m *StepManager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.handlers))
	for name := range m.handlers {
		names = append(names, name)
	}
	return names
}
