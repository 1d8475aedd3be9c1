package di

import (
	"fmt"

	"github.com/devantler-tech/platup/pkg/svc/updater"
	"github.com/devantler-tech/platup/pkg/utils/runner"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Dependency resolvers.

// ResolveProcessRunner retrieves the process runner from the injector.
func ResolveProcessRunner(injector Injector) (runner.ProcessRunner, error) {
	processRunner, err := do.Invoke[runner.ProcessRunner](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve process runner dependency: %w", err)
	}

	return processRunner, nil
}

// ResolveStateResolver retrieves the project state resolver from the injector.
func ResolveStateResolver(injector Injector) (updater.StateResolver, error) {
	resolver, err := do.Invoke[updater.StateResolver](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve state resolver dependency: %w", err)
	}

	return resolver, nil
}

// ResolveUpdater retrieves the updater from the injector.
func ResolveUpdater(injector Injector) (*updater.Updater, error) {
	upd, err := do.Invoke[*updater.Updater](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve updater dependency: %w", err)
	}

	return upd, nil
}

// Handler decorators.

// WithUpdater decorates a handler to automatically resolve the updater.
func WithUpdater(
	handler func(cmd *cobra.Command, injector Injector, upd *updater.Updater) error,
) func(cmd *cobra.Command, injector Injector) error {
	return func(cmd *cobra.Command, injector Injector) error {
		upd, err := ResolveUpdater(injector)
		if err != nil {
			return err
		}

		return handler(cmd, injector, upd)
	}
}
