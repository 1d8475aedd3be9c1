package rewrite

import (
	"errors"
	"fmt"
	"strings"

	"github.com/devantler-tech/platup/pkg/apis/project/v1alpha1"
)

// ActiveRecipe is the name of the composite recipe written to every recipe file.
const ActiveRecipe = "io.platup.rewrite.UpdateProject"

// ErrInvalidUpdateRequest is returned when an update request cannot be built.
var ErrInvalidUpdateRequest = errors.New("invalid update request")

// ErrInvalidFetchResult is returned when a recipe fetch yields no usable coordinates.
var ErrInvalidFetchResult = errors.New("invalid recipe fetch result")

// UpdateRequest describes one project update for the recipe repository.
type UpdateRequest struct {
	buildTool      v1alpha1.BuildTool
	currentVersion string
	targetVersion  string
	kotlinVersion  string
}

// NewUpdateRequest validates and builds an update request. An empty kotlinVersion
// means the project does not need Kotlin-specific recipes.
func NewUpdateRequest(
	buildTool v1alpha1.BuildTool,
	currentVersion, targetVersion, kotlinVersion string,
) (UpdateRequest, error) {
	if !buildTool.IsValid() {
		return UpdateRequest{}, fmt.Errorf(
			"%w: %w: %q", ErrInvalidUpdateRequest, v1alpha1.ErrInvalidBuildTool, buildTool,
		)
	}

	currentVersion = strings.TrimSpace(currentVersion)
	targetVersion = strings.TrimSpace(targetVersion)

	if currentVersion == "" || targetVersion == "" {
		return UpdateRequest{}, fmt.Errorf(
			"%w: current and target versions are required", ErrInvalidUpdateRequest,
		)
	}

	return UpdateRequest{
		buildTool:      buildTool,
		currentVersion: currentVersion,
		targetVersion:  targetVersion,
		kotlinVersion:  strings.TrimSpace(kotlinVersion),
	}, nil
}

// BuildTool returns the build tool of the project.
func (r UpdateRequest) BuildTool() v1alpha1.BuildTool { return r.buildTool }

// CurrentVersion returns the imported platform version.
func (r UpdateRequest) CurrentVersion() string { return r.currentVersion }

// TargetVersion returns the platform version to update to.
func (r UpdateRequest) TargetVersion() string { return r.targetVersion }

// KotlinVersion returns the Kotlin version recommended by the target release.
func (r UpdateRequest) KotlinVersion() (string, bool) {
	return r.kotlinVersion, r.kotlinVersion != ""
}

// FetchResult is what the recipe repository returns after writing a recipe file.
type FetchResult struct {
	// RecipesGAV are the coordinates of the recipe artifact the plugin resolves.
	RecipesGAV string
	// RewritePluginVersion is the plugin version recommended by the recipe set.
	RewritePluginVersion string
	// Recipes names the recipes collected into the composite recipe.
	Recipes []string
}

// Validate checks that the result carries recipe coordinates and a plugin version.
func (f FetchResult) Validate() error {
	if strings.TrimSpace(f.RecipesGAV) == "" {
		return fmt.Errorf("%w: missing recipe coordinates", ErrInvalidFetchResult)
	}

	if strings.TrimSpace(f.RewritePluginVersion) == "" {
		return fmt.Errorf("%w: missing rewrite plugin version", ErrInvalidFetchResult)
	}

	return nil
}
