package v1alpha1

import (
	"fmt"
	"strings"
)

const (
	// TypeJar is the default artifact packaging type.
	TypeJar = "jar"
	// TypePom is the packaging type of BOM artifacts.
	TypePom = "pom"
)

// ArtifactKey identifies an artifact independently of its version.
type ArtifactKey struct {
	GroupID    string `json:"groupId"              yaml:"groupId"`
	ArtifactID string `json:"artifactId"           yaml:"artifactId"`
	Classifier string `json:"classifier,omitempty" yaml:"classifier,omitempty"`
}

// String returns the key as "groupId:artifactId[:classifier]".
func (k ArtifactKey) String() string {
	if k.Classifier == "" {
		return k.GroupID + ":" + k.ArtifactID
	}

	return k.GroupID + ":" + k.ArtifactID + ":" + k.Classifier
}

// ArtifactCoords are the full coordinates of a versioned artifact.
type ArtifactCoords struct {
	GroupID    string
	ArtifactID string
	Classifier string
	Type       string
	Version    string
}

// ParseArtifactCoords parses "groupId:artifactId[:classifier[:type]][:version]".
//
// Two segments are read as groupId:artifactId, three as groupId:artifactId:version,
// four as groupId:artifactId:classifier:version and five as the full form.
func ParseArtifactCoords(value string) (ArtifactCoords, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")

	var coords ArtifactCoords

	switch len(parts) {
	case 2:
		coords = ArtifactCoords{GroupID: parts[0], ArtifactID: parts[1]}
	case 3:
		coords = ArtifactCoords{GroupID: parts[0], ArtifactID: parts[1], Version: parts[2]}
	case 4:
		coords = ArtifactCoords{
			GroupID:    parts[0],
			ArtifactID: parts[1],
			Classifier: parts[2],
			Version:    parts[3],
		}
	case 5:
		coords = ArtifactCoords{
			GroupID:    parts[0],
			ArtifactID: parts[1],
			Classifier: parts[2],
			Type:       parts[3],
			Version:    parts[4],
		}
	default:
		return ArtifactCoords{}, fmt.Errorf("%w: %q", ErrInvalidArtifactCoords, value)
	}

	if coords.GroupID == "" || coords.ArtifactID == "" {
		return ArtifactCoords{}, fmt.Errorf(
			"%w: %q (groupId and artifactId are required)",
			ErrInvalidArtifactCoords,
			value,
		)
	}

	return coords, nil
}

// MustParseArtifactCoords is like ParseArtifactCoords but panics on error.
// It is intended for constants and tests.
func MustParseArtifactCoords(value string) ArtifactCoords {
	coords, err := ParseArtifactCoords(value)
	if err != nil {
		panic(err)
	}

	return coords
}

// Key returns the version-less identity of the artifact.
func (c ArtifactCoords) Key() ArtifactKey {
	return ArtifactKey{GroupID: c.GroupID, ArtifactID: c.ArtifactID, Classifier: c.Classifier}
}

// WithVersion returns a copy of the coordinates with a different version.
func (c ArtifactCoords) WithVersion(version string) ArtifactCoords {
	c.Version = version

	return c
}

// CompactCoords renders "groupId:artifactId[:classifier[:type]]:version", omitting the
// type when it is a default packaging and the version when it is unknown.
func (c ArtifactCoords) CompactCoords() string {
	var builder strings.Builder

	builder.WriteString(c.GroupID)
	builder.WriteByte(':')
	builder.WriteString(c.ArtifactID)

	showType := c.Type != "" && c.Type != TypeJar && c.Type != TypePom
	if c.Classifier != "" || showType {
		builder.WriteByte(':')
		builder.WriteString(c.Classifier)
	}

	if showType {
		builder.WriteByte(':')
		builder.WriteString(c.Type)
	}

	if c.Version != "" {
		builder.WriteByte(':')
		builder.WriteString(c.Version)
	}

	return builder.String()
}

// String returns the compact coordinates.
func (c ArtifactCoords) String() string {
	return c.CompactCoords()
}

// MarshalText encodes the coordinates as their compact string.
func (c ArtifactCoords) MarshalText() ([]byte, error) {
	if c.Type != "" && c.Type != TypeJar && c.Type != TypePom {
		return []byte(c.GroupID + ":" + c.ArtifactID + ":" + c.Classifier + ":" + c.Type + ":" + c.Version), nil
	}

	return []byte(c.CompactCoords()), nil
}

// UnmarshalText decodes coordinates from their string form.
func (c *ArtifactCoords) UnmarshalText(text []byte) error {
	parsed, err := ParseArtifactCoords(string(text))
	if err != nil {
		return err
	}

	*c = parsed

	return nil
}
