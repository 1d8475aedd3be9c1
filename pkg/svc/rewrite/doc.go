// Package rewrite assembles update requests for the recipe-based rewrite step and
// runs the rewrite plugin through the project's build tool.
//
// The request carries only the build tool and versions; the recipe repository turns
// it into a recipe file and the [Engine] applies that file with Maven or Gradle.
package rewrite
