package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/devantler-tech/platup/pkg/apis/project/v1alpha1"
	"github.com/pelletier/go-toml/v2"
	yamlv3 "gopkg.in/yaml.v3"
	"sigs.k8s.io/yaml"
)

// Format is the serialization format of a project model file.
type Format string

const (
	// FormatYAML is the YAML format (.yaml, .yml).
	FormatYAML Format = "yaml"
	// FormatJSON is the JSON format (.json).
	FormatJSON Format = "json"
	// FormatTOML is the TOML format (.toml).
	FormatTOML Format = "toml"
)

// ErrUnsupportedFormat is returned for model files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported project model format")

// ErrInvalidModel is returned when a model document cannot be decoded or is incomplete.
var ErrInvalidModel = errors.New("invalid project model")

// Dependency is a dependency declared in a build file.
type Dependency struct {
	Artifact v1alpha1.ArtifactCoords `json:"artifact"            toml:"artifact"            yaml:"artifact"`
	// Versioned is true when the build file declares the version explicitly.
	Versioned bool `json:"versioned,omitempty" toml:"versioned,omitempty" yaml:"versioned,omitempty"`
}

// Module is a project module with its own dependency declarations.
type Module struct {
	Name         string       `json:"name"                   toml:"name"                   yaml:"name"`
	Dependencies []Dependency `json:"dependencies,omitempty" toml:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}

// ApplicationModel is the resolved dependency model of a project.
type ApplicationModel struct {
	BuildTool    v1alpha1.BuildTool        `json:"buildTool"              toml:"buildTool"              yaml:"buildTool"`
	ProjectDir   string                    `json:"projectDir,omitempty"   toml:"projectDir,omitempty"   yaml:"projectDir,omitempty"`
	Platforms    []v1alpha1.ArtifactCoords `json:"platforms,omitempty"    toml:"platforms,omitempty"    yaml:"platforms,omitempty"`
	Dependencies []Dependency              `json:"dependencies,omitempty" toml:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Modules      []Module                  `json:"modules,omitempty"      toml:"modules,omitempty"      yaml:"modules,omitempty"`
}

// DeclaredDependency is a dependency together with the modules that declare it.
type DeclaredDependency struct {
	Dependency

	Modules []string
}

// FormatOf detects the model format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %s (valid options: .yaml, .yml, .json, .toml)", ErrUnsupportedFormat, path)
	}
}

// Load reads a project model file. A relative ProjectDir is resolved against the
// directory holding the model file; an empty one defaults to that directory.
func Load(path string) (*ApplicationModel, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	//nolint:gosec // path is provided by the user on purpose
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project model %s: %w", path, err)
	}

	model, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load project model %s: %w", path, err)
	}

	baseDir := filepath.Dir(path)

	switch {
	case model.ProjectDir == "":
		model.ProjectDir = baseDir
	case !filepath.IsAbs(model.ProjectDir):
		model.ProjectDir = filepath.Join(baseDir, model.ProjectDir)
	}

	return model, nil
}

// Parse decodes and validates a project model document.
func Parse(data []byte, format Format) (*ApplicationModel, error) {
	var model ApplicationModel

	var err error

	switch format {
	case FormatYAML:
		err = yamlv3.Unmarshal(data, &model)
	case FormatJSON:
		err = yaml.Unmarshal(data, &model)
	case FormatTOML:
		err = toml.Unmarshal(data, &model)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}

	err = model.Validate()
	if err != nil {
		return nil, err
	}

	return &model, nil
}

// Validate normalises the build tool and checks module names. An empty build tool
// defaults to Maven.
func (m *ApplicationModel) Validate() error {
	if m.BuildTool == "" {
		m.BuildTool = v1alpha1.BuildToolMaven
	}

	err := m.BuildTool.Set(string(m.BuildTool))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}

	seen := make(map[string]struct{}, len(m.Modules))

	for _, module := range m.Modules {
		if module.Name == "" {
			return fmt.Errorf("%w: module without a name", ErrInvalidModel)
		}

		if _, dup := seen[module.Name]; dup {
			return fmt.Errorf("%w: duplicate module %q", ErrInvalidModel, module.Name)
		}

		seen[module.Name] = struct{}{}
	}

	return nil
}

// AllDependencies merges root and module dependencies by artifact key, keeping the
// order of first declaration. A dependency counts as versioned when any declaration
// is versioned. Root declarations carry no module name.
func (m *ApplicationModel) AllDependencies() []DeclaredDependency {
	index := make(map[v1alpha1.ArtifactKey]int)

	var out []DeclaredDependency

	add := func(dep Dependency, module string) {
		key := dep.Artifact.Key()

		pos, ok := index[key]
		if !ok {
			index[key] = len(out)
			out = append(out, DeclaredDependency{Dependency: dep})
			pos = len(out) - 1
		} else if dep.Versioned {
			out[pos].Versioned = true
			out[pos].Artifact = dep.Artifact
		}

		if module != "" && !slices.Contains(out[pos].Modules, module) {
			out[pos].Modules = append(out[pos].Modules, module)
		}
	}

	for _, dep := range m.Dependencies {
		add(dep, "")
	}

	for _, module := range m.Modules {
		for _, dep := range module.Dependencies {
			add(dep, module.Name)
		}
	}

	return out
}
