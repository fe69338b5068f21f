package tools

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"tokenrail/internal/logging"
)

// Registry holds an ordered sequence of capabilities. Order matters twice:
// it is the presentation order in the instruction prompt and the branch
// priority inside the Action grammar (lowest index wins ties).
//
// Mutation is guarded for convenience during setup; the grammars built from
// a registry are pure values and do not observe later additions. Rebuild
// after changing the registry.
type Registry struct {
	mu   sync.RWMutex
	caps []Capability
}

// NewRegistry creates an empty registry.
func NewRegistry(caps ...Capability) *Registry {
	return &Registry{caps: caps}
}

// Add appends a capability. Names are assumed unique; duplicates are not
// rejected, but lookup only ever sees the first.
func (r *Registry) Add(c Capability) {
	r.mu.Lock()
	r.caps = append(r.caps, c)
	r.mu.Unlock()

	logging.L(logging.SubsystemRegistry).Debug("registered capability",
		zap.String("capability", c.Name()),
		zap.String("instruction", c.InputInstruction()))
}

// Get returns the first capability with the given name, or nil.
func (r *Registry) Get(name string) Capability {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.caps {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// At returns the capability at the given position, or nil when out of
// range. Positions correspond to Action-grammar branch indexes.
func (r *Registry) At(index int) Capability {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if index < 0 || index >= len(r.caps) {
		return nil
	}
	return r.caps[index]
}

// Len returns the number of registered capabilities.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.caps)
}

// Names returns all capability names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.caps))
	for i, c := range r.caps {
		names[i] = c.Name()
	}
	return names
}

// snapshot returns the current ordered capabilities for lock-free reads.
func (r *Registry) snapshot() []Capability {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Capability(nil), r.caps...)
}

// Invoke runs the named capability with one line of argument text.
func (r *Registry) Invoke(ctx context.Context, name, argument string) (*InvokeResult, error) {
	c := r.Get(name)
	if c == nil {
		return nil, fmt.Errorf("%w: %s", ErrCapabilityNotFound, name)
	}

	log := logging.L(logging.SubsystemRegistry)
	start := time.Now()
	output, err := c.Invoke(ctx, argument)
	duration := time.Since(start)
	if err != nil {
		log.Warn("capability failed",
			zap.String("capability", name),
			zap.Duration("duration", duration),
			zap.Error(err))
		return nil, err
	}

	log.Debug("capability invoked",
		zap.String("capability", name),
		zap.Duration("duration", duration))
	return &InvokeResult{Capability: name, Output: output, Duration: duration}, nil
}
