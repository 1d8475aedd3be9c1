package report

import (
	"fmt"
	"slices"

	"github.com/devantler-tech/platup/pkg/svc/diff"
	"github.com/devantler-tech/platup/pkg/svc/state"
)

const (
	// itemFormat left-pads the label to a fixed width.
	itemFormat = "%-7s %s"

	labelAdd    = "ADD:"
	labelRemove = "REMOVE:"
	labelUpdate = "UPDATE:"
)

// Report headings and single-line outcomes.
const (
	PlatformUpdatesHeading = "Recommended platform BOM updates:"
	UpToDate               = "The project is up-to-date"
	NoPlatformBOM          = "The project does not import any platform BOM"
	NoExtensions           = "No extensions were found among the project dependencies"
)

// ExtensionsHeading returns the heading of a provider's extension group.
func ExtensionsHeading(provider string) string {
	return "Extensions from " + provider + ":"
}

// Add formats an ADD line.
func Add(coords string) string {
	return fmt.Sprintf(itemFormat, labelAdd, coords)
}

// Remove formats a REMOVE line.
func Remove(coords string) string {
	return fmt.Sprintf(itemFormat, labelRemove, coords)
}

// Update formats an UPDATE line.
func Update(coords, to string) string {
	return fmt.Sprintf(itemFormat, labelUpdate, coords) + " -> " + to
}

// Render lays out the update plan between two states.
//
// Platform BOM changes come first. Extension changes follow per provider: providers
// of the recommended platforms in platform order, then the remaining providers by
// name. Every non-empty group ends with a blank line. When the current state has
// no platforms or no extensions, or nothing changes, a single line says so.
func Render(
	current, recommended *state.ProjectState,
	platformInfo diff.PlatformUpdateInfo,
	extensionsInfo *diff.ExtensionsUpdateInfo,
) []string {
	switch {
	case !current.HasPlatforms():
		return []string{NoPlatformBOM}
	case !current.HasExtensions():
		return []string{NoExtensions}
	case current.Equal(recommended):
		return []string{UpToDate}
	}

	if extensionsInfo == nil {
		extensionsInfo = diff.NewExtensionsUpdateInfo()
	}

	var lines []string

	if platformInfo.IsPlatformUpdatesAvailable() {
		lines = append(lines, platformLines(platformInfo)...)
	}

	if extensionsInfo.IsEmpty() {
		if len(lines) == 0 {
			return []string{UpToDate}
		}

		return lines
	}

	covered := make(map[string]struct{})

	for _, platform := range recommended.Platforms() {
		provider := platform.ProviderKey
		covered[provider] = struct{}{}

		group := managedLines(extensionsInfo, provider)
		if len(group) == 0 {
			continue
		}

		lines = append(lines, ExtensionsHeading(provider))
		lines = append(lines, group...)
		lines = append(lines, "")
	}

	for _, provider := range extensionsInfo.Providers() {
		var group []string

		if _, done := covered[provider]; !done {
			group = managedLines(extensionsInfo, provider)
		}

		group = append(group, nonPlatformLines(extensionsInfo.NonPlatform[provider])...)
		if len(group) == 0 {
			continue
		}

		lines = append(lines, ExtensionsHeading(provider))
		lines = append(lines, group...)
		lines = append(lines, "")
	}

	return lines
}

func platformLines(info diff.PlatformUpdateInfo) []string {
	lines := []string{PlatformUpdatesHeading}

	for _, update := range info.ImportVersionUpdates {
		lines = append(lines, Update(update.Imported.CompactCoords(), update.RecommendedVersion()))
	}

	for _, added := range info.NewImports {
		lines = append(lines, Add(added.Recommended.CompactCoords()))
	}

	for _, removed := range info.RemovedImports {
		lines = append(lines, Remove(removed.Imported.CompactCoords()))
	}

	return append(lines, "")
}

// managedLines renders the versioned-managed, added and removed buckets of a provider.
func managedLines(info *diff.ExtensionsUpdateInfo, provider string) []string {
	var lines []string

	for _, update := range info.VersionedManaged[provider] {
		lines = append(lines, Update(update.Current.Artifact.CompactCoords(), "remove version (managed)"))
	}

	for _, added := range info.Added[provider] {
		lines = append(lines, Add(added.Key().String()))
	}

	for _, removed := range info.Removed[provider] {
		lines = append(lines, Remove(removed.Key().String()))
	}

	return lines
}

func nonPlatformLines(updates []diff.ExtensionUpdate) []string {
	lines := make([]string, 0, len(updates))

	for _, update := range updates {
		switch update.Kind {
		case diff.KindAddedToPlatform:
			lines = append(lines, Add(update.Recommended.Artifact.CompactCoords()))
		case diff.KindRemovedFromPlatform:
			lines = append(lines, Remove(update.Current.Artifact.CompactCoords()))
		case diff.KindVersionUpdate:
			lines = append(lines, Update(
				update.Current.Artifact.CompactCoords(),
				update.Recommended.Artifact.Version,
			))
		}
	}

	return lines
}

// StateLines lists the platform BOMs and extensions of a state. With perModule the
// extensions are grouped by the modules declaring them; extensions declared only by
// the root project are listed under the root.
func StateLines(current *state.ProjectState, perModule bool) []string {
	var lines []string

	if !current.HasPlatforms() {
		lines = append(lines, NoPlatformBOM, "")
	} else {
		lines = append(lines, "Platform BOMs:")
		for _, platform := range current.Platforms() {
			lines = append(lines, "  "+platform.BOM.CompactCoords())
		}

		lines = append(lines, "")
	}

	if !current.HasExtensions() {
		return append(lines, NoExtensions)
	}

	if !perModule {
		return append(lines, providerLines(current.Extensions(), current.Providers(), "")...)
	}

	for _, module := range modules(current) {
		var members []state.Extension

		for _, ext := range current.Extensions() {
			if declaredBy(ext, module) {
				members = append(members, ext)
			}
		}

		if module == "" {
			lines = append(lines, "Root project:")
		} else {
			lines = append(lines, "Module "+module+":")
		}

		lines = append(lines, providerLines(members, current.Providers(), "  ")...)
	}

	return lines
}

func providerLines(extensions []state.Extension, providers []string, indent string) []string {
	var lines []string

	for _, provider := range providers {
		var group []string

		for _, ext := range extensions {
			if ext.ProviderKey == provider {
				group = append(group, indent+"  "+extensionText(ext))
			}
		}

		if len(group) == 0 {
			continue
		}

		lines = append(lines, indent+ExtensionsHeading(provider))
		lines = append(lines, group...)
		lines = append(lines, "")
	}

	return lines
}

// extensionText shows the version only when the build file declares one.
func extensionText(ext state.Extension) string {
	if ext.Versioned {
		return ext.Artifact.CompactCoords()
	}

	return ext.Key().String()
}

// modules returns the root ("") first when it declares anything, then module names sorted.
func modules(current *state.ProjectState) []string {
	var (
		names []string
		root  bool
	)

	for _, ext := range current.Extensions() {
		if len(ext.Modules) == 0 {
			root = true
		}

		for _, module := range ext.Modules {
			if !slices.Contains(names, module) {
				names = append(names, module)
			}
		}
	}

	slices.Sort(names)

	if root {
		return append([]string{""}, names...)
	}

	return names
}

func declaredBy(ext state.Extension, module string) bool {
	if module == "" {
		return len(ext.Modules) == 0
	}

	return slices.Contains(ext.Modules, module)
}
