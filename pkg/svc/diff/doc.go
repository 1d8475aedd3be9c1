// Package diff computes the minimal update between a project's current state and
// the state recommended for a target platform release.
//
// Platform BOM changes are reported as [PlatformUpdateInfo] and extension changes
// as [ExtensionsUpdateInfo], bucketed by provider key. Both resolvers are pure.
package diff
