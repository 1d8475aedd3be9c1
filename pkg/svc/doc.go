// Package svc provides the service layer of platup.
//
// This package contains the business logic that coordinates between the CLI
// commands and the external build tools.
//
// Subpackages:
//   - state: Project states and their resolution from a model and a catalog
//   - diff: Platform and extension update computation between two states
//   - report: Rendering of update instructions and state listings
//   - rewrite: Update requests and the rewrite plugin engine
//   - recipes: Versioned update recipe sets and recipe file assembly
//   - updater: Orchestration of a complete update run
package svc
