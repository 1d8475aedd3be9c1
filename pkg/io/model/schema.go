package model

import (
	"reflect"

	"github.com/devantler-tech/platup/pkg/apis/project/v1alpha1"
	"github.com/invopop/jsonschema"
)

// coordsPattern matches g:a[:c[:t]]:v and g:a strings.
const coordsPattern = `^[^:\s]+:[^:\s]+(:[^:\s]*){0,3}$`

// Schema returns the JSON schema of project model files.
func Schema() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		Mapper:                    schemaTypeMapper,
	}
	schema := reflector.Reflect(&ApplicationModel{})

	schema.ID = ""
	schema.Title = "platup project model"
	schema.Description = "Platform BOMs and dependencies of a project (project.yaml, project.json or project.toml)"

	// Every field may be omitted; Validate fills in the build tool.
	walkSchema(schema, func(s *jsonschema.Schema) {
		s.Required = nil
	})

	return schema
}

// walkSchema traverses the schema tree and calls fn on each node.
func walkSchema(schema *jsonschema.Schema, fn func(*jsonschema.Schema)) {
	if schema == nil {
		return
	}

	fn(schema)

	if schema.Properties != nil {
		for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
			walkSchema(pair.Value, fn)
		}
	}

	if schema.Items != nil {
		walkSchema(schema.Items, fn)
	}
}

func schemaTypeMapper(t reflect.Type) *jsonschema.Schema {
	switch t {
	case reflect.TypeFor[v1alpha1.ArtifactCoords]():
		return &jsonschema.Schema{
			Type:        "string",
			Pattern:     coordsPattern,
			Description: "Maven coordinates: groupId:artifactId[:classifier[:type]]:version",
		}
	case reflect.TypeFor[v1alpha1.BuildTool]():
		return enumSchema(v1alpha1.ValidBuildTools())
	default:
		return nil
	}
}

// enumSchema creates a string enum schema from typed values.
func enumSchema[T ~string](values []T) *jsonschema.Schema {
	enums := make([]any, len(values))
	for i, v := range values {
		enums[i] = string(v)
	}

	return &jsonschema.Schema{Type: "string", Enum: enums}
}
