package diff

import (
	"github.com/devantler-tech/platup/pkg/svc/state"
)

// ResolvePlatformUpdateInfo compares the platform BOMs of two states by provider key.
//
// Version updates and new imports follow the recommended order; removed imports
// follow the current order.
func ResolvePlatformUpdateInfo(current, recommended *state.ProjectState) PlatformUpdateInfo {
	var info PlatformUpdateInfo

	if current == nil || recommended == nil || current.Equal(recommended) {
		return info
	}

	for _, rec := range recommended.Platforms() {
		cur, imported := current.Platform(rec.ProviderKey)

		switch {
		case !imported:
			info.NewImports = append(info.NewImports, PlatformInfo{
				Recommended: &rec.BOM,
				ProviderKey: rec.ProviderKey,
			})
		case cur.BOM.Version != rec.BOM.Version:
			info.ImportVersionUpdates = append(info.ImportVersionUpdates, PlatformInfo{
				Imported:    &cur.BOM,
				Recommended: &rec.BOM,
				ProviderKey: rec.ProviderKey,
			})
		}
	}

	for _, cur := range current.Platforms() {
		if _, kept := recommended.Platform(cur.ProviderKey); kept {
			continue
		}

		info.RemovedImports = append(info.RemovedImports, PlatformInfo{
			Imported:    &cur.BOM,
			ProviderKey: cur.ProviderKey,
		})
	}

	return info
}

// extensionRule describes one way an extension present in both states can change.
type extensionRule struct {
	name    string
	applies func(cur, rec state.Extension) bool
	record  func(info *ExtensionsUpdateInfo, cur, rec state.Extension)
}

// extensionRules returns the change rules in precedence order. The first rule that
// applies wins; an extension no rule applies to is unchanged.
func extensionRules() []extensionRule {
	return []extensionRule{
		{
			name: "versioned-managed",
			applies: func(cur, rec state.Extension) bool {
				return rec.Platform && cur.Versioned
			},
			record: func(info *ExtensionsUpdateInfo, cur, rec state.Extension) {
				info.VersionedManaged[rec.ProviderKey] = append(
					info.VersionedManaged[rec.ProviderKey],
					newExtensionUpdate(cur, rec, KindVersionUpdate),
				)
			},
		},
		{
			name: "added-to-platform",
			applies: func(cur, rec state.Extension) bool {
				return !cur.Platform && rec.Platform
			},
			record: func(info *ExtensionsUpdateInfo, cur, rec state.Extension) {
				info.NonPlatform[cur.ProviderKey] = append(
					info.NonPlatform[cur.ProviderKey],
					newExtensionUpdate(cur, rec, KindAddedToPlatform),
				)
			},
		},
		{
			name: "removed-from-platform",
			applies: func(cur, rec state.Extension) bool {
				return cur.Platform && !rec.Platform
			},
			record: func(info *ExtensionsUpdateInfo, cur, rec state.Extension) {
				info.NonPlatform[rec.ProviderKey] = append(
					info.NonPlatform[rec.ProviderKey],
					newExtensionUpdate(cur, rec, KindRemovedFromPlatform),
				)
			},
		},
		{
			name: "version-update",
			applies: func(cur, rec state.Extension) bool {
				return !cur.Platform && !rec.Platform && cur.Artifact.Version != rec.Artifact.Version
			},
			record: func(info *ExtensionsUpdateInfo, cur, rec state.Extension) {
				info.NonPlatform[rec.ProviderKey] = append(
					info.NonPlatform[rec.ProviderKey],
					newExtensionUpdate(cur, rec, KindVersionUpdate),
				)
			},
		},
	}
}

// ResolveExtensionsUpdateInfo compares the extensions of two states by artifact key.
//
// Extensions only recommended are added and extensions only current are removed,
// each under its own provider. Extensions in both states are classified by the
// first matching rule of extensionRules.
func ResolveExtensionsUpdateInfo(current, recommended *state.ProjectState) *ExtensionsUpdateInfo {
	info := NewExtensionsUpdateInfo()

	if current == nil || recommended == nil || current.Equal(recommended) {
		return info
	}

	rules := extensionRules()

	for _, rec := range recommended.Extensions() {
		cur, found := current.Extension(rec.Key())
		if !found {
			info.Added[rec.ProviderKey] = append(info.Added[rec.ProviderKey], rec.Artifact)

			continue
		}

		for _, rule := range rules {
			if rule.applies(cur, rec) {
				rule.record(info, cur, rec)

				break
			}
		}
	}

	for _, cur := range current.Extensions() {
		if _, kept := recommended.Extension(cur.Key()); kept {
			continue
		}

		info.Removed[cur.ProviderKey] = append(info.Removed[cur.ProviderKey], cur.Artifact)
	}

	return info
}

func newExtensionUpdate(cur, rec state.Extension, kind Kind) ExtensionUpdate {
	return ExtensionUpdate{Current: &cur, Recommended: &rec, Kind: kind}
}
