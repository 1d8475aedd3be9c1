// Package report renders update plans and project states as ordered report lines.
//
// Lines are plain strings so callers decide where they go: the update command
// writes them through a notify.Logger, tests compare them directly.
package report
