package cmd

import (
	"fmt"

	"github.com/devantler-tech/platup/pkg/cli/ui/errorhandler"
	runtime "github.com/devantler-tech/platup/pkg/di"
	"github.com/devantler-tech/platup/pkg/svc/updater"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command with version info and subcommands.
func NewRootCmd(version, commit, date string) *cobra.Command {
	runtimeContainer := runtime.NewRuntime()

	cmd := &cobra.Command{
		Use:          "platup",
		Short:        "platup plans and applies platform updates of Java projects",
		Long:         "platup compares the platform BOMs and extensions a project imports with a catalog release and updates the project with OpenRewrite recipes",
		RunE:         handleRootRunE,
		SilenceUsage: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	cmd.AddCommand(NewUpdateCmd(runtimeContainer))
	cmd.AddCommand(NewInfoCmd(runtimeContainer))

	return cmd
}

// Execute runs the provided root command and shortens the messages of update failures.
func Execute(cmd *cobra.Command) error {
	executor := errorhandler.NewExecutor(
		errorhandler.Hint{Err: ErrUpdateFailed, Message: "the project was not updated, see the messages above"},
		errorhandler.Hint{Err: updater.ErrGenerateRecipe, Message: "could not generate the update recipes"},
		errorhandler.Hint{Err: updater.ErrRunRecipe, Message: "the rewrite plugin failed"},
	)

	//nolint:wrapcheck // CommandError carries the message shown to the user.
	return executor.Execute(cmd)
}

// --- internals ---

// handleRootRunE handles the root command.
func handleRootRunE(
	cmd *cobra.Command,
	_ []string,
) error {
	// The err can safely be ignored, as it can never fail at runtime.
	_ = cmd.Help()

	return nil
}
