// Package cli provides the command wiring of platup.
//
//   - cli/cmd: The root command and the update and info subcommands
//   - cli/ui/errorhandler: Cobra error capture and normalization
//
// Commands resolve their collaborators from the di runtime container.
package cli
