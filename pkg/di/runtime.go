// Package di wires the planner's collaborators with samber/do.
package di

import (
	"slices"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Injector is the dependency container handed to modules and handlers.
type Injector = do.Injector

// Module registers dependencies with an injector.
type Module func(Injector) error

// Runtime creates a fresh injector for every invocation and runs its modules on it.
type Runtime struct {
	modules []Module
}

// New creates a runtime running modules, in order, before every handler.
func New(modules ...Module) *Runtime {
	return &Runtime{modules: modules}
}

// Invoke builds an injector from the runtime's modules followed by extra, then runs
// handler. Nil modules are skipped. The injector is shut down afterwards.
func (r *Runtime) Invoke(handler func(Injector) error, extra ...Module) error {
	injector := do.New()
	defer func() { _ = injector.Shutdown() }()

	for _, module := range append(slices.Clone(r.modules), extra...) {
		if module == nil {
			continue
		}

		err := module(injector)
		if err != nil {
			return err
		}
	}

	return handler(injector)
}

// RunEWithRuntime adapts a handler to a cobra RunE function executed through rt.
func RunEWithRuntime(
	rt *Runtime,
	handler func(cmd *cobra.Command, injector Injector) error,
	extra ...func(cmd *cobra.Command) Module,
) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		modules := make([]Module, 0, len(extra))
		for _, build := range extra {
			modules = append(modules, build(cmd))
		}

		return rt.Invoke(func(injector Injector) error {
			return handler(cmd, injector)
		}, modules...)
	}
}
