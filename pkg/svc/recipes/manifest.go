package recipes

import (
	"fmt"
	"slices"

	"github.com/Masterminds/semver/v3"
	"github.com/devantler-tech/platup/pkg/apis/project/v1alpha1"
	"github.com/devantler-tech/platup/pkg/svc/rewrite"
	"gopkg.in/yaml.v3"
)

// ManifestFile is the name of the manifest in every recipe set.
const ManifestFile = "manifest.yaml"

// Manifest describes a recipe set.
type Manifest struct {
	// GAV are the coordinates of the recipe artifact the rewrite plugin resolves.
	GAV string `yaml:"gav"`
	// RewritePluginVersions maps a build tool key ("maven", "gradle") to the
	// recommended rewrite plugin version.
	RewritePluginVersions map[string]string `yaml:"rewritePluginVersions"`
	Recipes               []RecipeEntry     `yaml:"recipes"`
}

// RecipeEntry is a recipe file that applies when updating to Version.
type RecipeEntry struct {
	// Version is the platform version the recipes migrate to.
	Version string `yaml:"version"`
	File    string `yaml:"file"`
	// BuildTools restricts the entry to build tool keys. Empty applies to all.
	BuildTools []string `yaml:"buildTools,omitempty"`
	// RequiresKotlin applies the entry only to projects with a Kotlin version.
	RequiresKotlin bool `yaml:"requiresKotlin,omitempty"`
}

// ParseManifest decodes a manifest and checks its entries.
func ParseManifest(data []byte) (*Manifest, error) {
	var manifest Manifest

	err := yaml.Unmarshal(data, &manifest)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %w", ErrUpdateFetch, ManifestFile, err)
	}

	if manifest.GAV == "" {
		return nil, fmt.Errorf("%w: %s has no gav", ErrUpdateFetch, ManifestFile)
	}

	for _, entry := range manifest.Recipes {
		_, err = semver.NewVersion(entry.Version)
		if err != nil {
			return nil, fmt.Errorf(
				"%w: recipe %s has an invalid version %q: %w",
				ErrUpdateFetch, entry.File, entry.Version, err,
			)
		}

		if entry.File == "" {
			return nil, fmt.Errorf("%w: recipe for %s has no file", ErrUpdateFetch, entry.Version)
		}
	}

	return &manifest, nil
}

// Select returns the entries migrating from the request's current version to its
// target version (current < version <= target) that match its build tool, ordered
// by version.
func (m *Manifest) Select(request rewrite.UpdateRequest) ([]RecipeEntry, error) {
	current, err := semver.NewVersion(request.CurrentVersion())
	if err != nil {
		return nil, fmt.Errorf("invalid current version %q: %w", request.CurrentVersion(), err)
	}

	target, err := semver.NewVersion(request.TargetVersion())
	if err != nil {
		return nil, fmt.Errorf("invalid target version %q: %w", request.TargetVersion(), err)
	}

	buildTool := request.BuildTool()
	_, hasKotlin := request.KotlinVersion()

	var (
		selected []RecipeEntry
		versions = map[string]*semver.Version{}
	)

	for _, entry := range m.Recipes {
		version, parseErr := semver.NewVersion(entry.Version)
		if parseErr != nil {
			continue
		}

		if !version.GreaterThan(current) || version.GreaterThan(target) {
			continue
		}

		if entry.RequiresKotlin && !hasKotlin {
			continue
		}

		if len(entry.BuildTools) > 0 && !slices.Contains(entry.BuildTools, buildTool.Key()) {
			continue
		}

		versions[entry.Version] = version
		selected = append(selected, entry)
	}

	slices.SortStableFunc(selected, func(a, b RecipeEntry) int {
		return versions[a.Version].Compare(versions[b.Version])
	})

	return selected, nil
}

// PluginVersion returns the rewrite plugin version recommended for buildTool.
func (m *Manifest) PluginVersion(buildTool v1alpha1.BuildTool) string {
	return m.RewritePluginVersions[buildTool.Key()]
}
