package state

import (
	"fmt"

	"github.com/devantler-tech/platup/pkg/apis/project/v1alpha1"
	"github.com/devantler-tech/platup/pkg/io/catalog"
	"github.com/devantler-tech/platup/pkg/io/model"
	"github.com/devantler-tech/platup/pkg/utils/notify"
)

// DefaultBOMArtifactID is the artifactId of the core platform BOM unless configured.
const DefaultBOMArtifactID = "platform-bom"

// Resolver builds project states from a project model and a catalog.
type Resolver struct {
	// DefaultBOMArtifactID identifies the default platform BOM by artifactId.
	DefaultBOMArtifactID string
}

// NewResolver creates a resolver. An empty artifactId selects DefaultBOMArtifactID.
func NewResolver(defaultBOMArtifactID string) *Resolver {
	if defaultBOMArtifactID == "" {
		defaultBOMArtifactID = DefaultBOMArtifactID
	}

	return &Resolver{DefaultBOMArtifactID: defaultBOMArtifactID}
}

// ResolveProjectState derives the current state of a project.
//
// Imported BOMs known to the catalog become platform groups. Dependencies managed by
// an imported platform become platform extensions; dependencies offered as standalone
// extensions, or managed only by platforms the project does not import, become
// standalone extensions. Anything else is an ordinary library and is ignored.
func (r *Resolver) ResolveProjectState(
	project *model.ApplicationModel,
	cat *catalog.Catalog,
) (*ProjectState, error) {
	platforms := make([]PlatformGroup, 0, len(project.Platforms))

	for _, bom := range project.Platforms {
		member, ok := cat.FindMemberByBOM(bom.Key())
		if !ok {
			continue
		}

		platforms = append(platforms, PlatformGroup{
			ProviderKey: member.ProviderKey(),
			BOM:         bom,
			Default:     r.isDefault(bom),
		})
	}

	var extensions []Extension

	for _, dep := range project.AllDependencies() {
		ext, ok := currentExtension(dep, platforms, cat)
		if ok {
			extensions = append(extensions, ext)
		}
	}

	current, err := NewProjectState(platforms, extensions)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project state: %w", err)
	}

	return current, nil
}

// ResolveRecommendedState maps the current extensions onto a target release.
//
// An extension managed by a member of the release becomes a platform extension at
// the managed version. Otherwise the highest standalone version compatible with the
// release is recommended. Extensions the catalog does not know are kept unchanged
// and reported through log. The recommended platforms are the default member plus
// every member managing a recommended extension, in release order.
func (r *Resolver) ResolveRecommendedState(
	current *ProjectState,
	release *catalog.Release,
	cat *catalog.Catalog,
	log notify.Logger,
) (*ProjectState, error) {
	defaultMember, ok := r.defaultMember(release)
	if !ok {
		return nil, fmt.Errorf("%w: release %s has no %s member", ErrNoPlatformBOM, release.Version, r.DefaultBOMArtifactID)
	}

	needed := map[string]struct{}{defaultMember.ProviderKey(): {}}
	extensions := make([]Extension, 0, len(current.extensions))

	for _, ext := range current.Extensions() {
		key := ext.Key()

		if member, coords, managed := release.MemberForExtension(key); managed {
			needed[member.ProviderKey()] = struct{}{}
			extensions = append(extensions, Extension{
				Artifact:    coords,
				ProviderKey: member.ProviderKey(),
				Platform:    true,
				Modules:     ext.Modules,
			})

			continue
		}

		if standalone, found := cat.NonPlatformExtension(key, release.Version); found {
			extensions = append(extensions, Extension{
				Artifact:    standalone.Artifact,
				ProviderKey: standalone.ProviderKey(),
				Versioned:   true,
				Modules:     ext.Modules,
			})

			continue
		}

		log.Warn("%s is not available for platform %s, keeping it as is", key, release.Version)

		extensions = append(extensions, ext)
	}

	var platforms []PlatformGroup

	for _, member := range release.Members {
		if _, keep := needed[member.ProviderKey()]; !keep {
			continue
		}

		platforms = append(platforms, PlatformGroup{
			ProviderKey: member.ProviderKey(),
			BOM:         member.BOM,
			Default:     r.isDefault(member.BOM),
		})
	}

	recommended, err := NewProjectState(platforms, extensions)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve recommended state: %w", err)
	}

	return recommended, nil
}

func (r *Resolver) isDefault(bom v1alpha1.ArtifactCoords) bool {
	return bom.ArtifactID == r.DefaultBOMArtifactID
}

func (r *Resolver) defaultMember(release *catalog.Release) (catalog.Member, bool) {
	for _, member := range release.Members {
		if r.isDefault(member.BOM) {
			return member, true
		}
	}

	return catalog.Member{}, false
}

// currentExtension classifies a declared dependency against the imported platforms.
func currentExtension(
	dep model.DeclaredDependency,
	platforms []PlatformGroup,
	cat *catalog.Catalog,
) (Extension, bool) {
	key := dep.Artifact.Key()
	ext := Extension{
		Artifact:  dep.Artifact,
		Versioned: dep.Versioned,
		Modules:   dep.Modules,
	}

	for _, platform := range platforms {
		version, managed := managedVersion(cat, platform.BOM, key)
		if !managed {
			continue
		}

		ext.ProviderKey = platform.ProviderKey
		ext.Platform = true

		if ext.Artifact.Version == "" {
			ext.Artifact.Version = version
		}

		return ext, true
	}

	if standalone, ok := cat.FindNonPlatformExtension(key); ok {
		ext.ProviderKey = standalone.ProviderKey()

		return ext, true
	}

	member, ok := cat.FindMemberForExtension(key)
	if !ok {
		return Extension{}, false
	}

	ext.ProviderKey = member.ProviderKey()

	for _, platform := range platforms {
		// The BOM is imported at a version the catalog does not list.
		if platform.ProviderKey == member.ProviderKey() && !bomListed(cat, platform.BOM) {
			ext.Platform = true
		}
	}

	return ext, true
}

// managedVersion returns the version an imported BOM manages for key.
func managedVersion(
	cat *catalog.Catalog,
	bom v1alpha1.ArtifactCoords,
	key v1alpha1.ArtifactKey,
) (string, bool) {
	for i := range cat.Releases {
		member, ok := cat.Releases[i].MemberByBOM(bom.Key())
		if !ok || member.BOM.Version != bom.Version {
			continue
		}

		for _, managed := range member.Extensions {
			if managed.Key() == key {
				return managed.Version, true
			}
		}
	}

	return "", false
}

func bomListed(cat *catalog.Catalog, bom v1alpha1.ArtifactCoords) bool {
	for i := range cat.Releases {
		member, ok := cat.Releases[i].MemberByBOM(bom.Key())
		if ok && member.BOM.Version == bom.Version {
			return true
		}
	}

	return false
}
