package state

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/devantler-tech/platup/pkg/apis/project/v1alpha1"
)

// ErrNoPlatformBOM is returned when a project or release has no default platform BOM.
var ErrNoPlatformBOM = errors.New("no default platform BOM")

// ErrMultipleDefaultPlatforms is returned when more than one platform group is
// flagged as the default.
var ErrMultipleDefaultPlatforms = errors.New("more than one default platform BOM")

// ErrDuplicatePlatform is returned when two platform groups share a provider key.
var ErrDuplicatePlatform = errors.New("duplicate platform provider")

// ErrDuplicateExtension is returned when an extension is listed twice.
var ErrDuplicateExtension = errors.New("duplicate extension")

// PlatformGroup is an imported platform BOM.
type PlatformGroup struct {
	// ProviderKey identifies the platform family across releases.
	ProviderKey string
	BOM         v1alpha1.ArtifactCoords
	// Default marks the platform's core BOM.
	Default bool
}

// Extension is a component dependency of the project.
type Extension struct {
	Artifact    v1alpha1.ArtifactCoords
	ProviderKey string
	// Platform is true when a platform BOM manages the extension.
	Platform bool
	// Versioned is true when the build file declares the version explicitly.
	Versioned bool
	// Modules lists the project modules declaring the extension.
	Modules []string
}

// Key returns the version-less identity of the extension.
func (e Extension) Key() v1alpha1.ArtifactKey {
	return e.Artifact.Key()
}

func (e Extension) clone() Extension {
	e.Modules = slices.Clone(e.Modules)

	return e
}

// ProjectState is an immutable snapshot of a project's platforms and extensions.
type ProjectState struct {
	platforms  []PlatformGroup
	extensions []Extension
	byKey      map[v1alpha1.ArtifactKey]int
}

// NewProjectState builds a state. Platforms keep their order; extensions keep the
// order they are given in.
func NewProjectState(platforms []PlatformGroup, extensions []Extension) (*ProjectState, error) {
	state := &ProjectState{
		platforms:  slices.Clone(platforms),
		extensions: make([]Extension, 0, len(extensions)),
		byKey:      make(map[v1alpha1.ArtifactKey]int, len(extensions)),
	}

	providers := make(map[string]struct{}, len(platforms))
	defaults := 0

	for _, platform := range platforms {
		if _, dup := providers[platform.ProviderKey]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePlatform, platform.ProviderKey)
		}

		providers[platform.ProviderKey] = struct{}{}

		if platform.Default {
			defaults++
		}
	}

	if defaults > 1 {
		return nil, ErrMultipleDefaultPlatforms
	}

	for _, ext := range extensions {
		key := ext.Key()
		if _, dup := state.byKey[key]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateExtension, key)
		}

		state.byKey[key] = len(state.extensions)
		state.extensions = append(state.extensions, ext.clone())
	}

	return state, nil
}

// Platforms returns the platform groups in import order.
func (s *ProjectState) Platforms() []PlatformGroup {
	return slices.Clone(s.platforms)
}

// DefaultPlatform returns the default platform group.
func (s *ProjectState) DefaultPlatform() (PlatformGroup, bool) {
	for _, platform := range s.platforms {
		if platform.Default {
			return platform, true
		}
	}

	return PlatformGroup{}, false
}

// Platform returns the platform group with the given provider key.
func (s *ProjectState) Platform(providerKey string) (PlatformGroup, bool) {
	for _, platform := range s.platforms {
		if platform.ProviderKey == providerKey {
			return platform, true
		}
	}

	return PlatformGroup{}, false
}

// Extensions returns all extensions in declaration order.
func (s *ProjectState) Extensions() []Extension {
	out := make([]Extension, 0, len(s.extensions))
	for _, ext := range s.extensions {
		out = append(out, ext.clone())
	}

	return out
}

// Extension returns the extension with the given key.
func (s *ProjectState) Extension(key v1alpha1.ArtifactKey) (Extension, bool) {
	pos, ok := s.byKey[key]
	if !ok {
		return Extension{}, false
	}

	return s.extensions[pos].clone(), true
}

// ExtensionsOf returns the extensions of one provider in declaration order.
func (s *ProjectState) ExtensionsOf(providerKey string) []Extension {
	var out []Extension

	for _, ext := range s.extensions {
		if ext.ProviderKey == providerKey {
			out = append(out, ext.clone())
		}
	}

	return out
}

// Providers returns the extension provider keys: platform providers in import
// order first, then the others sorted by name.
func (s *ProjectState) Providers() []string {
	seen := make(map[string]struct{})

	var out, rest []string

	for _, platform := range s.platforms {
		if len(s.ExtensionsOf(platform.ProviderKey)) == 0 {
			continue
		}

		seen[platform.ProviderKey] = struct{}{}
		out = append(out, platform.ProviderKey)
	}

	for _, ext := range s.extensions {
		if _, ok := seen[ext.ProviderKey]; ok {
			continue
		}

		seen[ext.ProviderKey] = struct{}{}
		rest = append(rest, ext.ProviderKey)
	}

	slices.Sort(rest)

	return append(out, rest...)
}

// HasPlatforms reports whether the project imports any platform BOM.
func (s *ProjectState) HasPlatforms() bool {
	return len(s.platforms) > 0
}

// HasExtensions reports whether the project depends on any extension.
func (s *ProjectState) HasExtensions() bool {
	return len(s.extensions) > 0
}

// Fingerprint is a content hash over platforms and extensions, their versions and
// flags. Order and module membership do not contribute.
func (s *ProjectState) Fingerprint() string {
	lines := make([]string, 0, len(s.platforms)+len(s.extensions))

	for _, platform := range s.platforms {
		lines = append(lines, strings.Join([]string{
			"platform",
			platform.ProviderKey,
			coordsText(platform.BOM),
			strconv.FormatBool(platform.Default),
		}, "|"))
	}

	for _, ext := range s.extensions {
		lines = append(lines, strings.Join([]string{
			"extension",
			ext.ProviderKey,
			coordsText(ext.Artifact),
			strconv.FormatBool(ext.Platform),
			strconv.FormatBool(ext.Versioned),
		}, "|"))
	}

	slices.Sort(lines)

	sum := sha256.Sum256([]byte(strings.Join(lines, "\n")))

	return hex.EncodeToString(sum[:])
}

// Equal reports whether two states have the same content.
func (s *ProjectState) Equal(other *ProjectState) bool {
	if s == nil || other == nil {
		return s == other
	}

	return s.Fingerprint() == other.Fingerprint()
}

func coordsText(coords v1alpha1.ArtifactCoords) string {
	text, _ := coords.MarshalText()

	return string(text)
}
