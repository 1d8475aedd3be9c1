package v1alpha1

import (
	"fmt"
	"slices"
	"strings"
)

// --- Enum Interface ---

// EnumValuer is implemented by string-based enum types to provide their valid values.
type EnumValuer interface {
	// ValidValues returns all valid string values for this enum type.
	ValidValues() []string
}

// --- BuildTool Types ---

// BuildTool defines the build tools whose descriptors can be rewritten.
type BuildTool string

const (
	// BuildToolMaven is Apache Maven (pom.xml).
	BuildToolMaven BuildTool = "Maven"
	// BuildToolGradle is Gradle with the Groovy DSL (build.gradle).
	BuildToolGradle BuildTool = "Gradle"
	// BuildToolGradleKotlinDSL is Gradle with the Kotlin DSL (build.gradle.kts).
	BuildToolGradleKotlinDSL BuildTool = "GradleKotlinDSL"
)

// Set for BuildTool (pflag.Value interface).
func (b *BuildTool) Set(value string) error {
	for _, tool := range ValidBuildTools() {
		if strings.EqualFold(value, string(tool)) {
			*b = tool

			return nil
		}
	}

	return fmt.Errorf(
		"%w: %s (valid options: %s, %s, %s)",
		ErrInvalidBuildTool,
		value,
		BuildToolMaven,
		BuildToolGradle,
		BuildToolGradleKotlinDSL,
	)
}

// IsValid checks if the build tool value is supported.
func (b *BuildTool) IsValid() bool {
	return slices.Contains(ValidBuildTools(), *b)
}

// String returns the string representation of the BuildTool.
func (b *BuildTool) String() string {
	return string(*b)
}

// Type returns the type of the BuildTool.
func (b *BuildTool) Type() string {
	return "BuildTool"
}

// Default returns the default value for BuildTool (Maven).
func (b *BuildTool) Default() any {
	return BuildToolMaven
}

// ValidValues returns all valid BuildTool values as strings.
func (b *BuildTool) ValidValues() []string {
	return []string{
		string(BuildToolMaven),
		string(BuildToolGradle),
		string(BuildToolGradleKotlinDSL),
	}
}

// IsGradle reports whether the build tool is one of the Gradle variants.
func (b *BuildTool) IsGradle() bool {
	switch *b {
	case BuildToolGradle, BuildToolGradleKotlinDSL:
		return true
	case BuildToolMaven:
		return false
	default:
		return false
	}
}

// BuildFile returns the name of the build descriptor the tool reads.
func (b *BuildTool) BuildFile() string {
	switch *b {
	case BuildToolMaven:
		return "pom.xml"
	case BuildToolGradle:
		return "build.gradle"
	case BuildToolGradleKotlinDSL:
		return "build.gradle.kts"
	default:
		return ""
	}
}

// Key returns the lower-case key used to index per-tool settings in recipe manifests.
// Both Gradle DSL variants share the "gradle" key.
func (b *BuildTool) Key() string {
	if b.IsGradle() {
		return "gradle"
	}

	return strings.ToLower(string(*b))
}

// ValidBuildTools returns supported build tool values.
func ValidBuildTools() []BuildTool {
	return []BuildTool{BuildToolMaven, BuildToolGradle, BuildToolGradleKotlinDSL}
}
