// Package notify provides utilities for sending formatted notifications to CLI users.
//
// This package includes:
//   - [WriteMessage] for displaying formatted messages with type-specific symbols and colors
//   - [Logger] and [NewLogger], the leveled sink the update planner reports through
//
// Message types include success (✔), error (✗), warning (⚠), info (ℹ), activity (►),
// plain (no symbol) and title messages with customizable emojis.
package notify
