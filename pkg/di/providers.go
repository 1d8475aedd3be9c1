package di

import (
	"github.com/devantler-tech/platup/pkg/svc/recipes"
	"github.com/devantler-tech/platup/pkg/svc/rewrite"
	"github.com/devantler-tech/platup/pkg/svc/state"
	"github.com/devantler-tech/platup/pkg/svc/updater"
	"github.com/devantler-tech/platup/pkg/utils/notify"
	"github.com/devantler-tech/platup/pkg/utils/runner"
	"github.com/samber/do/v2"
)

// Dependency providers.

// NewRuntime constructs the shared runtime container used by the root command and tests.
// It registers the process runner and the rewrite engine.
func NewRuntime() *Runtime {
	return New(
		provideProcessRunner,
		provideRewriteEngine,
	)
}

// UpdaterOptions configure the collaborators of an update run.
type UpdaterOptions struct {
	// DefaultBOMArtifactID identifies the default platform BOM.
	DefaultBOMArtifactID string
	// RecipeSource provides the update recipe sets.
	RecipeSource recipes.Source
	// Logger receives planner output.
	Logger notify.Logger
}

// UpdaterModule registers the state resolver, the recipe repository, the logger and
// the updater built from them.
func UpdaterModule(opts UpdaterOptions) Module {
	return func(i Injector) error {
		log := opts.Logger
		if log == nil {
			log = notify.Discard
		}

		do.ProvideValue(i, log)

		do.Provide(i, func(Injector) (updater.StateResolver, error) {
			return state.NewResolver(opts.DefaultBOMArtifactID), nil
		})

		do.Provide(i, func(Injector) (updater.RecipeRepository, error) {
			return recipes.NewRepository(opts.RecipeSource), nil
		})

		do.Provide(i, newUpdater)

		return nil
	}
}

// provideProcessRunner registers the process runner writing to the standard streams.
func provideProcessRunner(i Injector) error {
	do.Provide(i, func(Injector) (runner.ProcessRunner, error) {
		return runner.NewExecProcessRunner(nil, nil), nil
	})

	return nil
}

// provideRewriteEngine registers the rewrite engine backed by the process runner.
func provideRewriteEngine(i Injector) error {
	do.Provide(i, func(injector Injector) (updater.RewriteEngine, error) {
		processRunner, err := ResolveProcessRunner(injector)
		if err != nil {
			return nil, err
		}

		return rewrite.NewEngine(processRunner), nil
	})

	return nil
}

func newUpdater(i Injector) (*updater.Updater, error) {
	resolver, err := do.Invoke[updater.StateResolver](i)
	if err != nil {
		return nil, err
	}

	repository, err := do.Invoke[updater.RecipeRepository](i)
	if err != nil {
		return nil, err
	}

	engine, err := do.Invoke[updater.RewriteEngine](i)
	if err != nil {
		return nil, err
	}

	log, err := do.Invoke[notify.Logger](i)
	if err != nil {
		return nil, err
	}

	return updater.New(resolver, repository, engine, log), nil
}
