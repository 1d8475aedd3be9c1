// Package state models the platform and extension state of a project.
//
// A [ProjectState] is an immutable snapshot of the platform BOMs a project
// imports and the extensions it depends on. The [Resolver] builds the current
// state from a project model and the recommended state for a target catalog
// release. States compare by [ProjectState.Fingerprint], not by identity.
package state
