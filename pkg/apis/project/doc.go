// Package project provides project dependency API types.
//
// This package contains versioned API types for platup:
//
//   - v1alpha1: Current API version for artifact coordinates and build tools
package project
