// Package catalog loads platform catalogs: the releases of a platform, the member BOMs
// of each release with the extensions they manage, standalone extensions with their
// platform compatibility, and a free-form metadata tree.
//
// Metadata is exposed as a [Value] tree. [Lookup] and [LookupString] traverse it by
// key path and report a miss instead of failing.
package catalog
