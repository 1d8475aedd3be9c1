// Package io provides the file inputs of the planner.
//
// Subpackages:
//   - catalog: Platform catalogs, their releases and free-form metadata trees
//   - model: Project model files (YAML, JSON or TOML) and their JSON schema
package io
