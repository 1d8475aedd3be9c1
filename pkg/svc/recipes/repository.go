package recipes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/devantler-tech/platup/pkg/apis/project/v1alpha1"
	"github.com/devantler-tech/platup/pkg/svc/rewrite"
	"github.com/devantler-tech/platup/pkg/utils/notify"
	"gopkg.in/yaml.v3"
)

const (
	recipeSpecType  = "specs.openrewrite.org/v1beta/recipe"
	filePermissions = 0o600
	yamlIndent      = 2
)

// Placeholders substituted in recipe files.
const (
	CurrentVersionPlaceholder = "${current.version}"
	TargetVersionPlaceholder  = "${target.version}"
	KotlinVersionPlaceholder  = "${kotlin.version}"
)

// Repository turns update requests into recipe files.
type Repository struct {
	source Source
}

// NewRepository creates a repository reading recipe sets from source.
func NewRepository(source Source) *Repository {
	return &Repository{source: source}
}

// CreateRecipe writes the recipes migrating the request's project to dest.
//
// The file starts with a composite recipe named rewrite.ActiveRecipe listing every
// collected recipe, followed by the recipe documents themselves.
func (r *Repository) CreateRecipe(
	ctx context.Context,
	log notify.Logger,
	dest string,
	buildTool v1alpha1.BuildTool,
	recipeSetVersion string,
	request rewrite.UpdateRequest,
) (rewrite.FetchResult, error) {
	version, err := r.source.ResolveVersion(ctx, recipeSetVersion)
	if err != nil {
		return rewrite.FetchResult{}, err
	}

	data, err := r.source.ReadFile(ctx, version, ManifestFile)
	if err != nil {
		return rewrite.FetchResult{}, err
	}

	manifest, err := ParseManifest(data)
	if err != nil {
		return rewrite.FetchResult{}, err
	}

	entries, err := manifest.Select(request)
	if err != nil {
		return rewrite.FetchResult{}, fmt.Errorf("%w: %w", ErrUpdateFetch, err)
	}

	replacer := placeholderReplacer(request)

	var (
		docs  []*yaml.Node
		names []string
	)

	for _, entry := range entries {
		content, readErr := r.source.ReadFile(ctx, version, entry.File)
		if readErr != nil {
			return rewrite.FetchResult{}, readErr
		}

		entryDocs, entryNames, parseErr := parseRecipes(replacer.Replace(string(content)))
		if parseErr != nil {
			return rewrite.FetchResult{}, fmt.Errorf("%w: %s: %w", ErrUpdateFetch, entry.File, parseErr)
		}

		docs = append(docs, entryDocs...)
		names = append(names, entryNames...)
	}

	if len(names) == 0 {
		log.Warn("no update recipes apply from %s to %s", request.CurrentVersion(), request.TargetVersion())
	} else {
		log.Info("Collected %d update recipes from recipe set %s", len(names), version)
	}

	err = writeRecipeFile(dest, compositeRecipe(request, names), docs)
	if err != nil {
		return rewrite.FetchResult{}, err
	}

	return rewrite.FetchResult{
		RecipesGAV:           manifest.GAV,
		RewritePluginVersion: manifest.PluginVersion(buildTool),
		Recipes:              names,
	}, nil
}

func placeholderReplacer(request rewrite.UpdateRequest) *strings.Replacer {
	kotlin, _ := request.KotlinVersion()

	return strings.NewReplacer(
		CurrentVersionPlaceholder, request.CurrentVersion(),
		TargetVersionPlaceholder, request.TargetVersion(),
		KotlinVersionPlaceholder, kotlin,
	)
}

// parseRecipes splits a multi-document recipe file and collects the recipe names.
func parseRecipes(content string) ([]*yaml.Node, []string, error) {
	decoder := yaml.NewDecoder(strings.NewReader(content))

	var (
		docs  []*yaml.Node
		names []string
	)

	for {
		var doc yaml.Node

		err := decoder.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse recipes: %w", err)
		}

		if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
			continue
		}

		var header struct {
			Type string `yaml:"type"`
			Name string `yaml:"name"`
		}

		err = doc.Decode(&header)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read recipe header: %w", err)
		}

		if header.Type == recipeSpecType && header.Name != "" {
			names = append(names, header.Name)
		}

		docs = append(docs, &doc)
	}

	return docs, names, nil
}

type recipeDoc struct {
	Type        string   `yaml:"type"`
	Name        string   `yaml:"name"`
	DisplayName string   `yaml:"displayName"`
	Description string   `yaml:"description,omitempty"`
	RecipeList  []string `yaml:"recipeList"`
}

func compositeRecipe(request rewrite.UpdateRequest, names []string) recipeDoc {
	return recipeDoc{
		Type:        recipeSpecType,
		Name:        rewrite.ActiveRecipe,
		DisplayName: fmt.Sprintf("Update project from %s to %s", request.CurrentVersion(), request.TargetVersion()),
		RecipeList:  append([]string{}, names...),
	}
}

func writeRecipeFile(dest string, composite recipeDoc, docs []*yaml.Node) error {
	var buf bytes.Buffer

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(yamlIndent)

	err := encoder.Encode(composite)
	if err != nil {
		return fmt.Errorf("failed to encode composite recipe: %w", err)
	}

	for _, doc := range docs {
		err = encoder.Encode(doc)
		if err != nil {
			return fmt.Errorf("failed to encode recipe: %w", err)
		}
	}

	err = encoder.Close()
	if err != nil {
		return fmt.Errorf("failed to encode recipes: %w", err)
	}

	err = os.WriteFile(dest, buf.Bytes(), filePermissions)
	if err != nil {
		return fmt.Errorf("failed to write recipe file %s: %w", dest, err)
	}

	return nil
}
