package cmd

import (
	"errors"

	"github.com/devantler-tech/platup/pkg/di"
	"github.com/devantler-tech/platup/pkg/svc/updater"
	"github.com/devantler-tech/platup/pkg/utils/notify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ErrUpdateFailed is returned when the update could not be planned or applied.
var ErrUpdateFailed = errors.New("project update failed")

const updateCmdLong = `Compare the platform BOMs and extensions of a project with a catalog release,
report the changes and apply them with the rewrite plugin of the project's build tool.

Examples:
  # Report and apply the update to the latest release
  platup update --project project.yaml --catalog catalog.yaml --recipes-dir ./recipes

  # Only report the update to the newest 3.2 release
  platup up -P 3.2 --no-rewrite`

// NewUpdateCmd creates the update command.
func NewUpdateCmd(runtimeContainer *di.Runtime) *cobra.Command {
	viperInstance := newViper()

	cmd := &cobra.Command{
		Use:          "update",
		Aliases:      []string{"up"},
		Short:        "Update a project to a platform release",
		Long:         updateCmdLong,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}

	bindUpdateFlags(cmd, viperInstance)

	cmd.RunE = di.RunEWithRuntime(
		runtimeContainer,
		di.WithUpdater(func(cmd *cobra.Command, _ di.Injector, upd *updater.Updater) error {
			return handleUpdateRunE(cmd, viperInstance, upd)
		}),
		func(cmd *cobra.Command) di.Module {
			return updaterModule(cmd, viperInstance)
		},
	)

	return cmd
}

// updaterModule registers the updater configured by the command's options.
func updaterModule(cmd *cobra.Command, viperInstance *viper.Viper) di.Module {
	return func(injector di.Injector) error {
		opts, err := loadUpdateOptions(viperInstance)
		if err != nil {
			return err
		}

		source, err := opts.recipeSource()
		if err != nil {
			source = unavailableSource{err: err}
		}

		return di.UpdaterModule(di.UpdaterOptions{
			DefaultBOMArtifactID: opts.DefaultBOM,
			RecipeSource:         source,
			Logger:               notify.NewLogger(cmd.OutOrStdout(), cmd.ErrOrStderr()),
		})(injector)
	}
}

func handleUpdateRunE(cmd *cobra.Command, viperInstance *viper.Viper, upd *updater.Updater) error {
	opts, err := loadUpdateOptions(viperInstance)
	if err != nil {
		return err
	}

	project, cat, err := loadInputs(opts)
	if err != nil {
		return err
	}

	outcome, err := upd.Run(cmd.Context(), updater.Invocation{
		Project:              project,
		Catalog:              cat,
		TargetVersion:        opts.PlatformVersion,
		PerModule:            opts.PerModule,
		NoRewrite:            opts.NoRewrite,
		RewriteDryRun:        opts.RewriteDryRun,
		RecipesVersion:       opts.RecipesVersion,
		RewritePluginVersion: opts.RewritePluginVersion,
	})
	if err != nil {
		return err
	}

	if outcome == updater.Failure {
		return ErrUpdateFailed
	}

	return nil
}
