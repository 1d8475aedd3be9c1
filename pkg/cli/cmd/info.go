package cmd

import (
	"fmt"

	"github.com/devantler-tech/platup/pkg/di"
	"github.com/devantler-tech/platup/pkg/svc/report"
	"github.com/devantler-tech/platup/pkg/utils/notify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewInfoCmd creates the info command listing the platform BOMs and extensions of a project.
func NewInfoCmd(runtimeContainer *di.Runtime) *cobra.Command {
	viperInstance := newViper()

	cmd := &cobra.Command{
		Use:          "info",
		Short:        "List the platform BOMs and extensions of a project",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}

	bindProjectFlags(cmd, viperInstance)

	cmd.RunE = di.RunEWithRuntime(
		runtimeContainer,
		func(cmd *cobra.Command, injector di.Injector) error {
			return handleInfoRunE(cmd, injector, viperInstance)
		},
		func(cmd *cobra.Command) di.Module {
			return updaterModule(cmd, viperInstance)
		},
	)

	return cmd
}

func handleInfoRunE(cmd *cobra.Command, injector di.Injector, viperInstance *viper.Viper) error {
	opts, err := loadUpdateOptions(viperInstance)
	if err != nil {
		return err
	}

	resolver, err := di.ResolveStateResolver(injector)
	if err != nil {
		return err
	}

	project, cat, err := loadInputs(opts)
	if err != nil {
		return err
	}

	current, err := resolver.ResolveProjectState(project, cat)
	if err != nil {
		return fmt.Errorf("failed to resolve the project state: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, line := range report.StateLines(current, opts.PerModule) {
		notify.Plainf(out, "%s", line)
	}

	return nil
}
