// Package activator provides the code activators that make cached artifacts
// available to the running process.
package activator

import (
	"context"
	"sync"

	"go.trai.ch/libload/internal/core/domain"
	"go.trai.ch/libload/internal/core/ports"
	"go.trai.ch/zerr"
)

// Registry holds the process-wide activators. They outlive a single
// dependency check, so an archive activated once stays active.
type Registry struct {
	classpath *Classpath

	interpOnce sync.Once
	interp     *Interpreter
	interpErr  error
}

// NewRegistry creates a registry. The interpreter is created on first use.
func NewRegistry() *Registry {
	return &Registry{classpath: NewClasspath()}
}

// Classpath returns the shared search path.
func (r *Registry) Classpath() *Classpath {
	return r.classpath
}

// Interpreter returns the shared interpreter.
func (r *Registry) Interpreter() (*Interpreter, error) {
	r.interpOnce.Do(func() {
		r.interp, r.interpErr = NewInterpreter()
	})
	return r.interp, r.interpErr
}

// For returns the activator for kind.
func (r *Registry) For(kind domain.ActivatorKind) (ports.CodeActivator, error) {
	switch kind {
	case domain.ActivatorClasspath, "":
		return r.classpath, nil
	case domain.ActivatorInterp:
		return r.Interpreter()
	default:
		return nil, zerr.With(domain.ErrUnknownActivator, "activator", string(kind))
	}
}

// Selected adapts a Registry to a single kind, resolving the activator lazily.
type Selected struct {
	registry *Registry
	kind     domain.ActivatorKind
}

// Select returns an activator that delegates to the registry entry for kind.
func (r *Registry) Select(kind domain.ActivatorKind) *Selected {
	return &Selected{registry: r, kind: kind}
}

// Activate implements ports.CodeActivator.
func (s *Selected) Activate(ctx context.Context, owner, path string) error {
	a, err := s.registry.For(s.kind)
	if err != nil {
		return err
	}
	return a.Activate(ctx, owner, path)
}

// Ensure Selected satisfies the interface.
var _ ports.CodeActivator = (*Selected)(nil)
