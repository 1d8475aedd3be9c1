package diff_test

import (
	"testing"

	"github.com/devantler-tech/platup/pkg/apis/project/v1alpha1"
	"github.com/devantler-tech/platup/pkg/svc/diff"
	"github.com/devantler-tech/platup/pkg/svc/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coords(value string) v1alpha1.ArtifactCoords {
	return v1alpha1.MustParseArtifactCoords(value)
}

func platform(provider, bom string, isDefault bool) state.PlatformGroup {
	return state.PlatformGroup{ProviderKey: provider, BOM: coords(bom), Default: isDefault}
}

func managed(value, provider string) state.Extension {
	return state.Extension{Artifact: coords(value), ProviderKey: provider, Platform: true}
}

func standalone(value, provider string, versioned bool) state.Extension {
	return state.Extension{Artifact: coords(value), ProviderKey: provider, Versioned: versioned}
}

func build(t *testing.T, platforms []state.PlatformGroup, extensions ...state.Extension) *state.ProjectState {
	t.Helper()

	built, err := state.NewProjectState(platforms, extensions)
	require.NoError(t, err)

	return built
}

func TestResolvePlatformUpdateInfo(t *testing.T) {
	t.Parallel()

	current := build(t, []state.PlatformGroup{
		platform("core", "io.acme:acme-bom:1.0", true),
		platform("legacy", "io.acme:legacy-bom:1.0", false),
		platform("kafka", "io.acme:kafka-bom:1.0", false),
	})
	recommended := build(t, []state.PlatformGroup{
		platform("core", "io.acme:acme-bom:2.0", true),
		platform("camel", "io.acme:camel-bom:2.0", false),
		platform("kafka", "io.acme:kafka-bom:1.0", false),
	})

	info := diff.ResolvePlatformUpdateInfo(current, recommended)

	require.True(t, info.IsPlatformUpdatesAvailable())
	require.Len(t, info.ImportVersionUpdates, 1)
	assert.Equal(t, "core", info.ImportVersionUpdates[0].ProviderKey)
	assert.Equal(t, "1.0", info.ImportVersionUpdates[0].Imported.Version)
	assert.Equal(t, "2.0", info.ImportVersionUpdates[0].RecommendedVersion())

	require.Len(t, info.NewImports, 1)
	assert.Equal(t, "camel", info.NewImports[0].ProviderKey)
	assert.Nil(t, info.NewImports[0].Imported)

	require.Len(t, info.RemovedImports, 1)
	assert.Equal(t, "legacy", info.RemovedImports[0].ProviderKey)
	assert.Empty(t, info.RemovedImports[0].RecommendedVersion())
}

func TestResolvePlatformUpdateInfo_Order(t *testing.T) {
	t.Parallel()

	current := build(t, []state.PlatformGroup{
		platform("b", "io.acme:b-bom:1.0", false),
		platform("a", "io.acme:a-bom:1.0", false),
		platform("old2", "io.acme:old2-bom:1.0", false),
		platform("old1", "io.acme:old1-bom:1.0", false),
	})
	recommended := build(t, []state.PlatformGroup{
		platform("a", "io.acme:a-bom:2.0", false),
		platform("new2", "io.acme:new2-bom:2.0", false),
		platform("b", "io.acme:b-bom:2.0", false),
		platform("new1", "io.acme:new1-bom:2.0", false),
	})

	info := diff.ResolvePlatformUpdateInfo(current, recommended)

	providers := func(infos []diff.PlatformInfo) []string {
		out := make([]string, 0, len(infos))
		for _, i := range infos {
			out = append(out, i.ProviderKey)
		}

		return out
	}

	assert.Equal(t, []string{"a", "b"}, providers(info.ImportVersionUpdates), "recommended order")
	assert.Equal(t, []string{"new2", "new1"}, providers(info.NewImports), "recommended order")
	assert.Equal(t, []string{"old2", "old1"}, providers(info.RemovedImports), "current order")
}

func TestResolve_EqualStatesAreEmpty(t *testing.T) {
	t.Parallel()

	platforms := []state.PlatformGroup{platform("core", "io.acme:acme-bom:1.0", true)}
	current := build(t, platforms, managed("io.acme:rest:1.0", "core"), standalone("io.x:y:1.0", "x", true))
	recommended := build(t, platforms, managed("io.acme:rest:1.0", "core"), standalone("io.x:y:1.0", "x", true))

	platformInfo := diff.ResolvePlatformUpdateInfo(current, recommended)
	extensionsInfo := diff.ResolveExtensionsUpdateInfo(current, recommended)

	assert.False(t, platformInfo.IsPlatformUpdatesAvailable())
	assert.True(t, extensionsInfo.IsEmpty())
	assert.Empty(t, extensionsInfo.Providers())
}

func TestResolveExtensionsUpdateInfo_Classification(t *testing.T) {
	t.Parallel()

	platforms := []state.PlatformGroup{platform("core", "io.acme:acme-bom:1.0", true)}

	tests := []struct {
		name        string
		current     state.Extension
		recommended state.Extension
		bucket      string
		provider    string
		kind        diff.Kind
	}{
		{
			name:        "versioned platform extension becomes managed",
			current:     state.Extension{Artifact: coords("io.acme:rest:1.0"), ProviderKey: "core", Platform: true, Versioned: true},
			recommended: managed("io.acme:rest:2.0", "core"),
			bucket:      "versioned-managed",
			provider:    "core",
			kind:        diff.KindVersionUpdate,
		},
		{
			name:        "versioned standalone extension joins a platform",
			current:     standalone("io.x:cache:1.0", "x", true),
			recommended: managed("io.x:cache:2.0", "core"),
			bucket:      "versioned-managed",
			provider:    "core",
			kind:        diff.KindVersionUpdate,
		},
		{
			name:        "unversioned standalone extension joins a platform",
			current:     standalone("io.x:cache:1.0", "x", false),
			recommended: managed("io.x:cache:2.0", "core"),
			bucket:      "non-platform",
			provider:    "x",
			kind:        diff.KindAddedToPlatform,
		},
		{
			name:        "platform extension leaves the platform",
			current:     managed("io.x:cache:1.0", "core"),
			recommended: standalone("io.x:cache:1.5", "x", true),
			bucket:      "non-platform",
			provider:    "x",
			kind:        diff.KindRemovedFromPlatform,
		},
		{
			name:        "standalone version change",
			current:     standalone("io.x:ai:0.8", "x", true),
			recommended: standalone("io.x:ai:0.9", "x", true),
			bucket:      "non-platform",
			provider:    "x",
			kind:        diff.KindVersionUpdate,
		},
		{
			name:        "platform extension follows its BOM",
			current:     managed("io.acme:rest:1.0", "core"),
			recommended: managed("io.acme:rest:2.0", "core"),
		},
		{
			name:        "standalone at the same version",
			current:     standalone("io.x:ai:0.9", "x", false),
			recommended: standalone("io.x:ai:0.9", "x", true),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			current := build(t, platforms, tt.current)
			recommended := build(t, platforms, tt.recommended)

			info := diff.ResolveExtensionsUpdateInfo(current, recommended)

			assert.Empty(t, info.Added)
			assert.Empty(t, info.Removed)

			var got []diff.ExtensionUpdate

			switch tt.bucket {
			case "versioned-managed":
				got = info.VersionedManaged[tt.provider]
				assert.Empty(t, info.NonPlatform)
			case "non-platform":
				got = info.NonPlatform[tt.provider]
				assert.Empty(t, info.VersionedManaged)
			default:
				assert.True(t, info.IsEmpty())

				return
			}

			require.Len(t, got, 1)
			assert.Equal(t, tt.kind, got[0].Kind)
			assert.Equal(t, tt.current.Artifact, got[0].Current.Artifact)
			assert.Equal(t, tt.recommended.Artifact, got[0].Recommended.Artifact)
			assert.Equal(t, 1, info.TotalChanges())
		})
	}
}

func TestResolveExtensionsUpdateInfo_AddedAndRemoved(t *testing.T) {
	t.Parallel()

	platforms := []state.PlatformGroup{platform("core", "io.acme:acme-bom:1.0", true)}
	current := build(t, platforms,
		managed("io.acme:rest:1.0", "core"),
		managed("io.acme:soap:1.0", "core"),
		standalone("io.x:old:1.0", "x", true),
	)
	recommended := build(t, platforms,
		managed("io.acme:rest:1.0", "core"),
		managed("io.acme:grpc:1.0", "core"),
		standalone("io.y:new:1.0", "y", true),
	)

	info := diff.ResolveExtensionsUpdateInfo(current, recommended)

	assert.Equal(t, []v1alpha1.ArtifactCoords{coords("io.acme:grpc:1.0")}, info.Added["core"])
	assert.Equal(t, []v1alpha1.ArtifactCoords{coords("io.y:new:1.0")}, info.Added["y"])
	assert.Equal(t, []v1alpha1.ArtifactCoords{coords("io.acme:soap:1.0")}, info.Removed["core"])
	assert.Equal(t, []v1alpha1.ArtifactCoords{coords("io.x:old:1.0")}, info.Removed["x"])
	assert.Equal(t, []string{"core", "x", "y"}, info.Providers())
	assert.Equal(t, 4, info.TotalChanges())
	assert.False(t, info.IsEmpty())
}

func TestResolve_Deterministic(t *testing.T) {
	t.Parallel()

	current := build(t,
		[]state.PlatformGroup{platform("core", "io.acme:acme-bom:1.0", true)},
		managed("io.acme:rest:1.0", "core"),
		standalone("io.x:a:1.0", "x", true),
		standalone("io.y:b:1.0", "y", false),
	)
	recommended := build(t,
		[]state.PlatformGroup{platform("core", "io.acme:acme-bom:2.0", true)},
		managed("io.acme:rest:2.0", "core"),
		standalone("io.x:a:1.1", "x", true),
		managed("io.y:b:2.0", "core"),
	)

	first := diff.ResolveExtensionsUpdateInfo(current, recommended)
	second := diff.ResolveExtensionsUpdateInfo(current, recommended)

	assert.Equal(t, first, second)
	assert.Equal(t,
		diff.ResolvePlatformUpdateInfo(current, recommended),
		diff.ResolvePlatformUpdateInfo(current, recommended),
	)
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "version-update", diff.KindVersionUpdate.String())
	assert.Equal(t, "added-to-platform", diff.KindAddedToPlatform.String())
	assert.Equal(t, "removed-from-platform", diff.KindRemovedFromPlatform.String())
	assert.Equal(t, "unknown", diff.Kind(42).String())
}
