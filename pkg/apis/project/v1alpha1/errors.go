package v1alpha1

import "errors"

// ErrInvalidBuildTool is returned when an invalid build tool is specified.
var ErrInvalidBuildTool = errors.New("invalid build tool")

// ErrInvalidArtifactCoords is returned when artifact coordinates cannot be parsed.
var ErrInvalidArtifactCoords = errors.New("invalid artifact coordinates")
