package v1alpha1_test

import (
	"encoding/json"
	"testing"

	"github.com/devantler-tech/platup/pkg/apis/project/v1alpha1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArtifactCoords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    v1alpha1.ArtifactCoords
		wantErr bool
	}{
		{
			name:  "group and artifact",
			input: "lib:foo",
			want:  v1alpha1.ArtifactCoords{GroupID: "lib", ArtifactID: "foo"},
		},
		{
			name:  "with version",
			input: "core:bom:1.0",
			want:  v1alpha1.ArtifactCoords{GroupID: "core", ArtifactID: "bom", Version: "1.0"},
		},
		{
			name:  "with classifier",
			input: "lib:foo:linux:1.0",
			want: v1alpha1.ArtifactCoords{
				GroupID: "lib", ArtifactID: "foo", Classifier: "linux", Version: "1.0",
			},
		},
		{
			name:  "full form",
			input: "io.acme:acme-bom::pom:3.2.0",
			want: v1alpha1.ArtifactCoords{
				GroupID: "io.acme", ArtifactID: "acme-bom", Type: "pom", Version: "3.2.0",
			},
		},
		{name: "single segment", input: "foo", wantErr: true},
		{name: "too many segments", input: "a:b:c:d:e:f", wantErr: true},
		{name: "missing group", input: ":foo:1.0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := v1alpha1.ParseArtifactCoords(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, v1alpha1.ErrInvalidArtifactCoords)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArtifactCoords_CompactCoords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		coords v1alpha1.ArtifactCoords
		want   string
	}{
		{
			name:   "plain",
			coords: v1alpha1.MustParseArtifactCoords("core:bom:1.0"),
			want:   "core:bom:1.0",
		},
		{
			name:   "pom type hidden",
			coords: v1alpha1.MustParseArtifactCoords("io.acme:acme-bom::pom:3.2.0"),
			want:   "io.acme:acme-bom:3.2.0",
		},
		{
			name:   "custom type shown",
			coords: v1alpha1.MustParseArtifactCoords("lib:foo::zip:1.0"),
			want:   "lib:foo::zip:1.0",
		},
		{
			name:   "classifier",
			coords: v1alpha1.MustParseArtifactCoords("lib:foo:linux:1.0"),
			want:   "lib:foo:linux:1.0",
		},
		{
			name:   "no version",
			coords: v1alpha1.MustParseArtifactCoords("lib:foo"),
			want:   "lib:foo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.coords.CompactCoords())
		})
	}
}

func TestArtifactCoords_KeyIgnoresVersion(t *testing.T) {
	t.Parallel()

	a := v1alpha1.MustParseArtifactCoords("lib:foo:1.0")
	b := v1alpha1.MustParseArtifactCoords("lib:foo:2.0")

	assert.Equal(t, a.Key(), b.Key())
	assert.Equal(t, "lib:foo", a.Key().String())
	assert.Equal(t, "lib:foo:linux", v1alpha1.MustParseArtifactCoords("lib:foo:linux:1").Key().String())
}

func TestArtifactCoords_TextRoundTripThroughJSON(t *testing.T) {
	t.Parallel()

	type holder struct {
		BOM v1alpha1.ArtifactCoords `json:"bom"`
	}

	var decoded holder

	err := json.Unmarshal([]byte(`{"bom":"io.acme:acme-bom:3.2.0"}`), &decoded)
	require.NoError(t, err)
	assert.Equal(t, "3.2.0", decoded.BOM.Version)

	encoded, err := json.Marshal(decoded)
	require.NoError(t, err)
	assert.JSONEq(t, `{"bom":"io.acme:acme-bom:3.2.0"}`, string(encoded))
}

func TestMustParseArtifactCoords_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { v1alpha1.MustParseArtifactCoords("invalid") })
}
