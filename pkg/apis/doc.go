// Package apis provides API type definitions for platup resources.
//
// This package contains versioned API types:
//
//   - project: artifact coordinates and build tool types shared by the planner
//
// The API types are designed to be serializable to YAML, JSON and TOML.
package apis
