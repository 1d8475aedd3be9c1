package diff

import (
	"maps"
	"slices"

	"github.com/devantler-tech/platup/pkg/apis/project/v1alpha1"
	"github.com/devantler-tech/platup/pkg/svc/state"
)

// Kind classifies a change of a non-platform extension.
type Kind int

const (
	// KindVersionUpdate indicates a version change.
	KindVersionUpdate Kind = iota

	// KindAddedToPlatform indicates a standalone extension is now managed by a platform.
	KindAddedToPlatform

	// KindRemovedFromPlatform indicates a platform extension is now standalone.
	KindRemovedFromPlatform
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindVersionUpdate:
		return "version-update"
	case KindAddedToPlatform:
		return "added-to-platform"
	case KindRemovedFromPlatform:
		return "removed-from-platform"
	default:
		return "unknown"
	}
}

// PlatformInfo pairs the imported and recommended BOM of one platform provider.
// Either side is nil when the BOM is added or removed.
type PlatformInfo struct {
	Imported    *v1alpha1.ArtifactCoords
	Recommended *v1alpha1.ArtifactCoords
	ProviderKey string
}

// RecommendedVersion returns the recommended BOM version, or an empty string.
func (p PlatformInfo) RecommendedVersion() string {
	if p.Recommended == nil {
		return ""
	}

	return p.Recommended.Version
}

// PlatformUpdateInfo lists the platform BOM changes.
type PlatformUpdateInfo struct {
	// ImportVersionUpdates are BOMs imported at a different version than recommended.
	ImportVersionUpdates []PlatformInfo
	// NewImports are recommended BOMs the project does not import.
	NewImports []PlatformInfo
	// RemovedImports are imported BOMs that are no longer recommended.
	RemovedImports []PlatformInfo
}

// IsPlatformUpdatesAvailable returns true if any platform BOM changes.
func (p *PlatformUpdateInfo) IsPlatformUpdatesAvailable() bool {
	return len(p.ImportVersionUpdates) > 0 || len(p.NewImports) > 0 || len(p.RemovedImports) > 0
}

// ExtensionUpdate pairs the current and recommended form of one extension.
type ExtensionUpdate struct {
	Current     *state.Extension
	Recommended *state.Extension
	Kind        Kind
}

// ExtensionsUpdateInfo lists the extension changes, bucketed by provider key.
type ExtensionsUpdateInfo struct {
	// VersionedManaged are extensions whose explicit version should be dropped because
	// a platform now manages them.
	VersionedManaged map[string][]ExtensionUpdate
	// Added are recommended extensions the project lacks.
	Added map[string][]v1alpha1.ArtifactCoords
	// Removed are project extensions that are no longer recommended.
	Removed map[string][]v1alpha1.ArtifactCoords
	// NonPlatform are changes involving standalone extensions.
	NonPlatform map[string][]ExtensionUpdate
}

// NewExtensionsUpdateInfo returns an info with empty buckets.
func NewExtensionsUpdateInfo() *ExtensionsUpdateInfo {
	return &ExtensionsUpdateInfo{
		VersionedManaged: map[string][]ExtensionUpdate{},
		Added:            map[string][]v1alpha1.ArtifactCoords{},
		Removed:          map[string][]v1alpha1.ArtifactCoords{},
		NonPlatform:      map[string][]ExtensionUpdate{},
	}
}

// IsEmpty returns true if no extension changes.
func (e *ExtensionsUpdateInfo) IsEmpty() bool {
	return e.TotalChanges() == 0
}

// TotalChanges returns the number of extension changes across all buckets.
func (e *ExtensionsUpdateInfo) TotalChanges() int {
	total := 0

	for _, updates := range e.VersionedManaged {
		total += len(updates)
	}

	for _, added := range e.Added {
		total += len(added)
	}

	for _, removed := range e.Removed {
		total += len(removed)
	}

	for _, updates := range e.NonPlatform {
		total += len(updates)
	}

	return total
}

// Providers returns the provider keys of all non-empty buckets, sorted.
func (e *ExtensionsUpdateInfo) Providers() []string {
	seen := map[string]struct{}{}

	for key, updates := range e.VersionedManaged {
		if len(updates) > 0 {
			seen[key] = struct{}{}
		}
	}

	for key, added := range e.Added {
		if len(added) > 0 {
			seen[key] = struct{}{}
		}
	}

	for key, removed := range e.Removed {
		if len(removed) > 0 {
			seen[key] = struct{}{}
		}
	}

	for key, updates := range e.NonPlatform {
		if len(updates) > 0 {
			seen[key] = struct{}{}
		}
	}

	return slices.Sorted(maps.Keys(seen))
}
