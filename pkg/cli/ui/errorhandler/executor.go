package errorhandler

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

// ErrUsage marks failures caused by an invalid command line.
var ErrUsage = errors.New("invalid usage")

// cobra reports argument errors as plain strings.
var usagePrefixes = []string{"unknown command", "accepts ", "requires at ", "invalid argument"}

// Hint replaces the leading message of errors matching Err with Message.
type Hint struct {
	Err     error
	Message string
}

// Executor runs the root command and turns its failures into short messages.
//
// Cobra does not print errors itself while the executor runs, so stderr stays free
// for the output of the command.
type Executor struct {
	hints []Hint
}

// NewExecutor constructs an Executor that applies hints in order.
func NewExecutor(hints ...Hint) *Executor {
	return &Executor{hints: hints}
}

// Execute runs cmd and returns nil on success or a *CommandError wrapping the failure.
func (e *Executor) Execute(cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	silenced := cmd.SilenceErrors
	cmd.SilenceErrors = true

	defer func() { cmd.SilenceErrors = silenced }()

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{cause: err}
	})

	failed, err := cmd.ExecuteC()
	if err == nil {
		return nil
	}

	if failed == nil {
		failed = cmd
	}

	return &CommandError{message: e.describe(failed, err), cause: err}
}

func (e *Executor) describe(failed *cobra.Command, err error) string {
	for _, hint := range e.hints {
		if !errors.Is(err, hint.Err) {
			continue
		}

		detail := strings.TrimPrefix(err.Error(), hint.Err.Error())
		detail = strings.TrimPrefix(detail, ": ")

		if detail == "" {
			return hint.Message
		}

		return hint.Message + ": " + detail
	}

	if IsUsageError(err) {
		return strings.TrimSpace(err.Error()) + "\nRun '" + failed.CommandPath() + " --help' for usage."
	}

	return ""
}

// IsUsageError reports whether err comes from parsing the command line.
func IsUsageError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrUsage) {
		return true
	}

	message := err.Error()
	for _, prefix := range usagePrefixes {
		if strings.HasPrefix(message, prefix) {
			return true
		}
	}

	return false
}

type usageError struct {
	cause error
}

func (e usageError) Error() string { return e.cause.Error() }

func (e usageError) Unwrap() []error { return []error{e.cause, ErrUsage} }

// CommandError is a failed command run with its user-facing message.
type CommandError struct {
	message string
	cause   error
}

// Error returns the message, or the cause when no message applies.
func (e *CommandError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.message != "":
		return e.message
	case e.cause != nil:
		return e.cause.Error()
	default:
		return ""
	}
}

// Unwrap exposes the underlying cause for errors.Is/errors.As consumers.
func (e *CommandError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}
