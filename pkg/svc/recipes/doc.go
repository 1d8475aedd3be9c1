// Package recipes fetches versioned recipe sets and assembles the recipe file the
// rewrite plugin applies.
//
// A recipe set is a manifest.yaml plus recipe files. Sets are read from a local
// directory tree ([DirSource]) or from a GitHub repository at a release tag
// ([GitHubSource]).
package recipes
