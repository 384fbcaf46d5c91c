package service

import (
	"fmt"
	"sync"

	"github.com/olusolaa/forge-deploy-automator/internal/core/ports"
	"github.com/olusolaa/forge-deploy-automator/internal/errors"
)

// ComponentRegistry holds the pipeline steps in registration order and the
// available reporters by name.
type ComponentRegistry struct {
	mu        sync.RWMutex
	steps     []ports.Step
	stepNames map[string]struct{}
	reporters map[string]ports.Reporter
}

func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		stepNames: make(map[string]struct{}),
		reporters: make(map[string]ports.Reporter),
	}
}

func (r *ComponentRegistry) RegisterStep(step ports.Step) error {
	if step == nil {
		return errors.New(errors.CodeInternal, "attempted to register nil step")
	}
	name := step.Name()
	if name == "" {
		return errors.New(errors.CodeInternal, "step name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.stepNames[name]; exists {
		return errors.New(errors.CodeInternal, fmt.Sprintf("step '%s' already registered", name))
	}
	r.stepNames[name] = struct{}{}
	r.steps = append(r.steps, step)
	return nil
}

// Steps returns the registered steps in the order the pipeline runs them.
func (r *ComponentRegistry) Steps() []ports.Step {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ports.Step, len(r.steps))
	copy(out, r.steps)
	return out
}

func (r *ComponentRegistry) RegisterReporter(name string, reporter ports.Reporter) error {
	if reporter == nil {
		return errors.New(errors.CodeInternal, "attempted to register nil reporter")
	}
	if name == "" {
		return errors.New(errors.CodeInternal, "reporter name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.reporters[name]; exists {
		return errors.New(errors.CodeInternal, fmt.Sprintf("reporter '%s' already registered", name))
	}
	r.reporters[name] = reporter
	return nil
}

func (r *ComponentRegistry) GetReporter(name string) (ports.Reporter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reporter, exists := r.reporters[name]
	if !exists {
		return nil, errors.New(errors.CodeConfigValidation, fmt.Sprintf("reporter '%s' not found", name))
	}
	return reporter, nil
}
