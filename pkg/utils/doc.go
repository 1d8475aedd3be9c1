// Package utils provides utility packages for common operations.
//
// This package contains subpackages with utility functions used across
// the platup codebase:
//
//   - envvar: ${VAR} and home directory expansion of option values
//   - notify: Formatted message display with symbols and colors
//   - runner: External process execution with output capture
package utils
