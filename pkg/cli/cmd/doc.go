// Package cmd provides the command-line interface for platup.
//
// This package contains the root command and its subcommands:
//   - update (alias up): report and apply the update of a project to a platform release
//   - info: list the platform BOMs and extensions of a project
//
// Options come from flags, PLATUP_* environment variables and an optional
// .platup.yaml config file.
package cmd
