package di_test

import (
	"testing"

	"github.com/devantler-tech/platup/pkg/di"
	"github.com/devantler-tech/platup/pkg/svc/recipes"
	"github.com/devantler-tech/platup/pkg/svc/updater"
	"github.com/samber/do/v2"
	"github.com/stretchr/testify/require"
)

func TestNewRuntime(t *testing.T) {
	t.Parallel()

	rt := di.NewRuntime()

	require.NotNil(t, rt, "expected runtime to be created")
}

func TestNewRuntime_ProvidesProcessRunner(t *testing.T) {
	t.Parallel()

	err := di.NewRuntime().Invoke(func(injector di.Injector) error {
		processRunner, resolveErr := di.ResolveProcessRunner(injector)
		require.NoError(t, resolveErr)
		require.NotNil(t, processRunner)

		engine, resolveErr := do.Invoke[updater.RewriteEngine](injector)
		require.NoError(t, resolveErr)
		require.NotNil(t, engine)

		return nil
	})

	require.NoError(t, err)
}

func TestUpdaterModule(t *testing.T) {
	t.Parallel()

	module := di.UpdaterModule(di.UpdaterOptions{
		DefaultBOMArtifactID: "platform-bom",
		RecipeSource:         recipes.NewDirSource(t.TempDir()),
	})

	err := di.NewRuntime().Invoke(func(injector di.Injector) error {
		resolver, resolveErr := di.ResolveStateResolver(injector)
		require.NoError(t, resolveErr)
		require.NotNil(t, resolver)

		upd, resolveErr := di.ResolveUpdater(injector)
		require.NoError(t, resolveErr)
		require.NotNil(t, upd)

		return nil
	}, module)

	require.NoError(t, err)
}
