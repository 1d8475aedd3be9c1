// Package updater orchestrates a project update: it resolves the current and
// recommended states, reports the differences and drives the rewrite plugin.
package updater
