package catalog

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/devantler-tech/platup/pkg/apis/project/v1alpha1"
	yamlv3 "gopkg.in/yaml.v3"
	"sigs.k8s.io/yaml"
)

// LatestVersion selects the highest release when used as a requested version.
const LatestVersion = "latest"

// ErrInvalidCatalog is returned when a catalog document cannot be used.
var ErrInvalidCatalog = errors.New("invalid catalog")

// ErrReleaseNotFound is returned when no release satisfies a requested version.
var ErrReleaseNotFound = errors.New("platform release not found in catalog")

// Catalog describes the platform releases and standalone extensions a registry offers.
type Catalog struct {
	ID         string             `json:"id,omitempty"`
	// Metadata is decoded from YAML nodes, keeping numeric literals as written.
	Metadata   Value              `json:"-"`
	Releases   []Release          `json:"releases"`
	Extensions []CatalogExtension `json:"extensions,omitempty"`
}

// Release is one version of a platform: a set of member BOMs released together.
type Release struct {
	Version  string   `json:"version"`
	Metadata Value    `json:"-"`
	Members  []Member `json:"members"`
}

// Member is a platform BOM and the extensions it manages.
type Member struct {
	// Key is the provider key. Defaults to the BOM's groupId:artifactId.
	Key        string                    `json:"key,omitempty"`
	BOM        v1alpha1.ArtifactCoords   `json:"bom"`
	Extensions []v1alpha1.ArtifactCoords `json:"extensions,omitempty"`
}

// CatalogExtension is a standalone extension, not managed by any platform BOM.
type CatalogExtension struct {
	Artifact v1alpha1.ArtifactCoords `json:"artifact"`
	// Origin is the provider key. Defaults to the extension's groupId.
	Origin string `json:"origin,omitempty"`
	// Compatibility is a semver constraint on the platform version. Empty matches any.
	Compatibility string `json:"compatibility,omitempty"`
}

// ProviderKey returns the provider key of the member.
func (m Member) ProviderKey() string {
	if m.Key != "" {
		return m.Key
	}

	return m.BOM.Key().String()
}

// ProviderKey returns the provider key of the extension.
func (e CatalogExtension) ProviderKey() string {
	if e.Origin != "" {
		return e.Origin
	}

	return e.Artifact.GroupID
}

// Load reads a catalog from a YAML or JSON file.
func Load(path string) (*Catalog, error) {
	//nolint:gosec // path is provided by the user on purpose
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}

	return cat, nil
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var cat Catalog

	err := yaml.Unmarshal(data, &cat)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	err = cat.decodeMetadata(data)
	if err != nil {
		return nil, err
	}

	err = cat.Validate()
	if err != nil {
		return nil, err
	}

	return &cat, nil
}

// metadataDocument holds the metadata trees of a catalog document as YAML nodes.
type metadataDocument struct {
	Metadata yamlv3.Node `yaml:"metadata"`
	Releases []struct {
		Metadata yamlv3.Node `yaml:"metadata"`
	} `yaml:"releases"`
}

func (c *Catalog) decodeMetadata(data []byte) error {
	var doc metadataDocument

	err := yamlv3.Unmarshal(data, &doc)
	if err != nil {
		return fmt.Errorf("%w: metadata: %w", ErrInvalidCatalog, err)
	}

	c.Metadata, err = FromNode(&doc.Metadata)
	if err != nil {
		return fmt.Errorf("%w: metadata: %w", ErrInvalidCatalog, err)
	}

	for i := range c.Releases {
		if i >= len(doc.Releases) {
			break
		}

		c.Releases[i].Metadata, err = FromNode(&doc.Releases[i].Metadata)
		if err != nil {
			return fmt.Errorf(
				"%w: metadata of release %q: %w", ErrInvalidCatalog, c.Releases[i].Version, err,
			)
		}
	}

	return nil
}

// Validate checks that releases have unique semver versions and non-empty members.
func (c *Catalog) Validate() error {
	if len(c.Releases) == 0 {
		return fmt.Errorf("%w: no releases", ErrInvalidCatalog)
	}

	seen := make(map[string]struct{}, len(c.Releases))

	for _, release := range c.Releases {
		_, err := semver.NewVersion(release.Version)
		if err != nil {
			return fmt.Errorf("%w: release version %q: %w", ErrInvalidCatalog, release.Version, err)
		}

		if _, dup := seen[release.Version]; dup {
			return fmt.Errorf("%w: duplicate release %q", ErrInvalidCatalog, release.Version)
		}

		seen[release.Version] = struct{}{}

		if len(release.Members) == 0 {
			return fmt.Errorf("%w: release %q has no members", ErrInvalidCatalog, release.Version)
		}
	}

	for _, ext := range c.Extensions {
		if ext.Compatibility == "" {
			continue
		}

		_, err := semver.NewConstraint(ext.Compatibility)
		if err != nil {
			return fmt.Errorf(
				"%w: compatibility of %s: %w",
				ErrInvalidCatalog,
				ext.Artifact.CompactCoords(),
				err,
			)
		}
	}

	return nil
}

// ResolveRelease selects the release for a requested platform version.
//
// An empty or "latest" request selects the highest release. An exact version is used
// as is. Otherwise the request is narrowed to the highest release matching it as a
// constraint ("3.2" is read as "~3.2"). The returned flag reports narrowing.
func (c *Catalog) ResolveRelease(requested string) (*Release, bool, error) {
	requested = strings.TrimSpace(requested)

	if requested == "" || requested == LatestVersion {
		release := c.highest(func(*semver.Version) bool { return true })
		if release == nil {
			return nil, false, fmt.Errorf("%w: catalog has no releases", ErrReleaseNotFound)
		}

		return release, false, nil
	}

	for i := range c.Releases {
		if c.Releases[i].Version == requested {
			return &c.Releases[i], false, nil
		}
	}

	constraint, err := releaseConstraint(requested)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %q: %w", ErrReleaseNotFound, requested, err)
	}

	release := c.highest(constraint.Check)
	if release == nil {
		return nil, false, fmt.Errorf(
			"%w: %q (available: %s)",
			ErrReleaseNotFound,
			requested,
			strings.Join(c.Versions(), ", "),
		)
	}

	return release, true, nil
}

// Versions lists the release versions in catalog order.
func (c *Catalog) Versions() []string {
	versions := make([]string, 0, len(c.Releases))
	for _, release := range c.Releases {
		versions = append(versions, release.Version)
	}

	return versions
}

// ReleaseMetadata returns the metadata tree of a release overlaid on the catalog's.
func (c *Catalog) ReleaseMetadata(release *Release) Value {
	var base Value = Null{}
	if c.Metadata != nil {
		base = c.Metadata
	}

	if release == nil || release.Metadata == nil {
		return base
	}

	return Merge(base, release.Metadata)
}

// FindMemberByBOM finds a member importing the given BOM in any release, newest first.
func (c *Catalog) FindMemberByBOM(key v1alpha1.ArtifactKey) (Member, bool) {
	for _, release := range c.byVersionDesc() {
		member, ok := release.MemberByBOM(key)
		if ok {
			return member, true
		}
	}

	return Member{}, false
}

// FindMemberForExtension finds the member managing an extension in any release, newest first.
func (c *Catalog) FindMemberForExtension(key v1alpha1.ArtifactKey) (Member, bool) {
	for _, release := range c.byVersionDesc() {
		member, _, ok := release.MemberForExtension(key)
		if ok {
			return member, true
		}
	}

	return Member{}, false
}

// FindNonPlatformExtension reports whether key is offered as a standalone extension
// in any version.
func (c *Catalog) FindNonPlatformExtension(key v1alpha1.ArtifactKey) (CatalogExtension, bool) {
	for _, ext := range c.Extensions {
		if ext.Artifact.Key() == key {
			return ext, true
		}
	}

	return CatalogExtension{}, false
}

// NonPlatformExtension returns the highest version of a standalone extension that is
// compatible with platformVersion.
func (c *Catalog) NonPlatformExtension(
	key v1alpha1.ArtifactKey,
	platformVersion string,
) (CatalogExtension, bool) {
	platform, platformErr := semver.NewVersion(platformVersion)

	var (
		best    CatalogExtension
		bestVer *semver.Version
		found   bool
	)

	for _, ext := range c.Extensions {
		if ext.Artifact.Key() != key {
			continue
		}

		if ext.Compatibility != "" {
			constraint, err := semver.NewConstraint(ext.Compatibility)
			if err != nil || platformErr != nil || !constraint.Check(platform) {
				continue
			}
		}

		version, err := semver.NewVersion(ext.Artifact.Version)
		if err != nil {
			if !found {
				best, found = ext, true
			}

			continue
		}

		if bestVer == nil || version.GreaterThan(bestVer) {
			best, bestVer, found = ext, version, true
		}
	}

	return best, found
}

// MemberByBOM finds the release member importing the given BOM.
func (r *Release) MemberByBOM(key v1alpha1.ArtifactKey) (Member, bool) {
	for _, member := range r.Members {
		if member.BOM.Key() == key {
			return member, true
		}
	}

	return Member{}, false
}

// MemberByProvider finds the release member with the given provider key.
func (r *Release) MemberByProvider(providerKey string) (Member, bool) {
	for _, member := range r.Members {
		if member.ProviderKey() == providerKey {
			return member, true
		}
	}

	return Member{}, false
}

// MemberForExtension finds the first member managing the extension and the managed
// coordinates.
func (r *Release) MemberForExtension(
	key v1alpha1.ArtifactKey,
) (Member, v1alpha1.ArtifactCoords, bool) {
	for _, member := range r.Members {
		for _, ext := range member.Extensions {
			if ext.Key() == key {
				return member, ext, true
			}
		}
	}

	return Member{}, v1alpha1.ArtifactCoords{}, false
}

// --- internals ---

func (c *Catalog) highest(accept func(*semver.Version) bool) *Release {
	var (
		best    *Release
		bestVer *semver.Version
	)

	for i := range c.Releases {
		version, err := semver.NewVersion(c.Releases[i].Version)
		if err != nil || !accept(version) {
			continue
		}

		if bestVer == nil || version.GreaterThan(bestVer) {
			best, bestVer = &c.Releases[i], version
		}
	}

	return best
}

func (c *Catalog) byVersionDesc() []*Release {
	releases := make([]*Release, 0, len(c.Releases))
	for i := range c.Releases {
		releases = append(releases, &c.Releases[i])
	}

	slices.SortStableFunc(releases, func(a, b *Release) int {
		va, errA := semver.NewVersion(a.Version)
		vb, errB := semver.NewVersion(b.Version)

		if errA != nil || errB != nil {
			return 0
		}

		return vb.Compare(va)
	})

	return releases
}

// releaseConstraint reads a bare version as a tilde range and anything else as a
// semver constraint expression.
func releaseConstraint(requested string) (*semver.Constraints, error) {
	if strings.ContainsAny(requested, "<>=~^*xX, |") {
		constraint, err := semver.NewConstraint(requested)
		if err != nil {
			return nil, fmt.Errorf("invalid version constraint: %w", err)
		}

		return constraint, nil
	}

	constraint, err := semver.NewConstraint("~" + requested)
	if err != nil {
		return nil, fmt.Errorf("invalid version: %w", err)
	}

	return constraint, nil
}
