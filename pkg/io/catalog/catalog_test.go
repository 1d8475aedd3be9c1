package catalog_test

import (
	"path/filepath"
	"testing"

	"github.com/devantler-tech/platup/pkg/apis/project/v1alpha1"
	"github.com/devantler-tech/platup/pkg/io/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	cat, err := catalog.Load(filepath.Join("testdata", "catalog.yaml"))
	require.NoError(t, err)

	return cat
}

func TestLoad(t *testing.T) {
	t.Parallel()

	cat := loadTestCatalog(t)

	assert.Equal(t, "registry.acme.io", cat.ID)
	assert.Equal(t, []string{"3.1.0", "3.2.0", "3.2.4"}, cat.Versions())
	require.Len(t, cat.Releases[1].Members, 2)
	assert.Equal(t, "io.acme.platform:acme-bom", cat.Releases[1].Members[0].ProviderKey())
	assert.Equal(t, "io.acme.platform:acme-camel-bom", cat.Releases[1].Members[1].ProviderKey())
	assert.Equal(t, "pom", cat.Releases[1].Members[0].BOM.Type)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := catalog.Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read catalog")
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{name: "no releases", doc: "id: empty\n"},
		{
			name: "bad release version",
			doc:  "releases:\n  - version: not-a-version\n    members:\n      - bom: a:b:1\n",
		},
		{
			name: "duplicate release",
			doc: "releases:\n" +
				"  - version: 1.0.0\n    members:\n      - bom: a:b:1.0.0\n" +
				"  - version: 1.0.0\n    members:\n      - bom: a:b:1.0.0\n",
		},
		{name: "release without members", doc: "releases:\n  - version: 1.0.0\n"},
		{
			name: "bad compatibility",
			doc: "releases:\n  - version: 1.0.0\n    members:\n      - bom: a:b:1.0.0\n" +
				"extensions:\n  - artifact: x:y:1\n    compatibility: not-a-range\n",
		},
		{name: "bad coordinates", doc: "releases:\n  - version: 1.0.0\n    members:\n      - bom: nope\n"},
		{name: "malformed yaml", doc: "releases: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := catalog.Parse([]byte(tt.doc))

			require.ErrorIs(t, err, catalog.ErrInvalidCatalog)
		})
	}
}

func TestResolveRelease(t *testing.T) {
	t.Parallel()

	cat := loadTestCatalog(t)

	tests := []struct {
		name         string
		requested    string
		wantVersion  string
		wantNarrowed bool
	}{
		{name: "empty selects latest", requested: "", wantVersion: "3.2.4"},
		{name: "latest keyword", requested: "latest", wantVersion: "3.2.4"},
		{name: "exact", requested: "3.2.0", wantVersion: "3.2.0"},
		{name: "minor narrowed to highest patch", requested: "3.2", wantVersion: "3.2.4", wantNarrowed: true},
		{name: "major narrowed", requested: "3", wantVersion: "3.2.4", wantNarrowed: true},
		{name: "constraint expression", requested: "<3.2", wantVersion: "3.1.0", wantNarrowed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			release, narrowed, err := cat.ResolveRelease(tt.requested)

			require.NoError(t, err)
			assert.Equal(t, tt.wantVersion, release.Version)
			assert.Equal(t, tt.wantNarrowed, narrowed)
		})
	}
}

func TestResolveRelease_NotFound(t *testing.T) {
	t.Parallel()

	cat := loadTestCatalog(t)

	_, _, err := cat.ResolveRelease("4.0")

	require.ErrorIs(t, err, catalog.ErrReleaseNotFound)
	assert.Contains(t, err.Error(), "available: 3.1.0, 3.2.0, 3.2.4")
}

func TestFindMembers(t *testing.T) {
	t.Parallel()

	cat := loadTestCatalog(t)

	member, ok := cat.FindMemberByBOM(v1alpha1.ArtifactKey{
		GroupID: "io.acme.platform", ArtifactID: "acme-camel-bom",
	})
	require.True(t, ok)
	assert.Equal(t, "3.2.4", member.BOM.Version, "newest release wins")

	member, ok = cat.FindMemberForExtension(v1alpha1.ArtifactKey{GroupID: "io.acme", ArtifactID: "acme-jdbc"})
	require.True(t, ok)
	assert.Equal(t, "io.acme.platform:acme-bom", member.ProviderKey())

	_, ok = cat.FindMemberForExtension(v1alpha1.ArtifactKey{GroupID: "io.acmeverse", ArtifactID: "acme-ai"})
	assert.False(t, ok)

	ext, ok := cat.FindNonPlatformExtension(v1alpha1.ArtifactKey{GroupID: "io.acmeverse", ArtifactID: "acme-ai"})
	require.True(t, ok)
	assert.Equal(t, "acmeverse", ext.ProviderKey())
}

func TestRelease_MemberForExtension(t *testing.T) {
	t.Parallel()

	cat := loadTestCatalog(t)
	release := &cat.Releases[2]

	member, coords, ok := release.MemberForExtension(v1alpha1.ArtifactKey{
		GroupID: "org.apache.camel", ArtifactID: "camel-acme-core",
	})
	require.True(t, ok)
	assert.Equal(t, "io.acme.platform:acme-camel-bom", member.ProviderKey())
	assert.Equal(t, "4.0.3", coords.Version)

	_, ok = release.MemberByProvider("io.acme.platform:acme-bom")
	assert.True(t, ok)

	_, ok = release.MemberByProvider("unknown")
	assert.False(t, ok)
}

func TestNonPlatformExtension_Compatibility(t *testing.T) {
	t.Parallel()

	cat := loadTestCatalog(t)
	key := v1alpha1.ArtifactKey{GroupID: "io.acmeverse", ArtifactID: "acme-cache"}

	ext, ok := cat.NonPlatformExtension(key, "3.1.0")
	require.True(t, ok)
	assert.Equal(t, "1.0.0", ext.Artifact.Version)

	ext, ok = cat.NonPlatformExtension(key, "3.2.4")
	require.True(t, ok)
	assert.Equal(t, "1.4.0", ext.Artifact.Version)

	_, ok = cat.NonPlatformExtension(key, "2.0.0")
	assert.False(t, ok)

	ext, ok = cat.NonPlatformExtension(
		v1alpha1.ArtifactKey{GroupID: "io.acmeverse", ArtifactID: "acme-ai"},
		"2.0.0",
	)
	require.True(t, ok, "no compatibility constraint matches any platform")
	assert.Equal(t, "0.9.0", ext.Artifact.Version)
}

func TestReleaseMetadata_KeepsNumericLiterals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "yaml",
			doc: "metadata:\n  project:\n    properties:\n      kotlin-version: 1.10\n" +
				"releases:\n  - version: 1.0.0\n    members:\n      - bom: a:b:1.0.0\n",
		},
		{
			name: "json",
			doc: `{"metadata": {"project": {"properties": {"kotlin-version": 1.10}}},
  "releases": [{"version": "1.0.0", "members": [{"bom": "a:b:1.0.0"}]}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cat, err := catalog.Parse([]byte(tt.doc))
			require.NoError(t, err)

			kotlin, ok := catalog.LookupString(
				cat.ReleaseMetadata(&cat.Releases[0]), "project", "properties", "kotlin-version",
			)

			require.True(t, ok)
			assert.Equal(t, "1.10", kotlin)
		})
	}
}

func TestReleaseMetadata(t *testing.T) {
	t.Parallel()

	cat := loadTestCatalog(t)

	kotlin, ok := catalog.LookupString(
		cat.ReleaseMetadata(&cat.Releases[1]), "project", "properties", "kotlin-version",
	)
	require.True(t, ok)
	assert.Equal(t, "1.9.10", kotlin)

	overlaid := cat.ReleaseMetadata(&cat.Releases[2])

	kotlin, ok = catalog.LookupString(overlaid, "project", "properties", "kotlin-version")
	require.True(t, ok)
	assert.Equal(t, "2.0", kotlin, "release metadata overrides catalog metadata")

	plugin, ok := catalog.LookupString(overlaid, "project", "properties", "maven-plugin-version")
	require.True(t, ok, "sibling keys survive the overlay")
	assert.Equal(t, "3.1.0", plugin)
}
