package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/devantler-tech/platup/pkg/apis/project/v1alpha1"
	"github.com/devantler-tech/platup/pkg/svc/recipes"
	"github.com/devantler-tech/platup/pkg/svc/state"
	"github.com/devantler-tech/platup/pkg/utils/envvar"
	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes the environment variables overriding flags (PLATUP_CATALOG, ...).
	EnvPrefix = "PLATUP"
	// ConfigFileName is the name of the optional config file, without extension.
	ConfigFileName = ".platup"

	defaultProjectFile = "project.yaml"
	defaultCatalogFile = "catalog.yaml"
)

// ErrNoRecipeSource is returned when a rewrite is requested without a recipe source.
var ErrNoRecipeSource = errors.New("no update recipe source configured, set --recipes-dir or --recipes-github")

// ErrInvalidRecipesRepository is returned when --recipes-github is not owner/repo[/dir].
var ErrInvalidRecipesRepository = errors.New("invalid recipes repository, expected owner/repo[/dir]")

// Flag names. They double as config file keys.
const (
	flagProject              = "project"
	flagProjectDir           = "project-dir"
	flagCatalog              = "catalog"
	flagPlatformVersion      = "platform-version"
	flagPerModule            = "per-module"
	flagNoRewrite            = "no-rewrite"
	flagRewriteDryRun        = "rewrite-dry-run"
	flagRecipesVersion       = "rewrite-update-recipes-version"
	flagRewritePluginVersion = "rewrite-plugin-version"
	flagRecipesDir           = "recipes-dir"
	flagRecipesGitHub        = "recipes-github"
	flagGitHubToken          = "github-token"
	flagDefaultBOM           = "default-bom"
	flagBuildTool            = "build-tool"
)

// UpdateOptions are the settings of the update and info commands.
type UpdateOptions struct {
	Project              string             `mapstructure:"project"`
	ProjectDir           string             `mapstructure:"project-dir"`
	Catalog              string             `mapstructure:"catalog"`
	PlatformVersion      string             `mapstructure:"platform-version"`
	PerModule            bool               `mapstructure:"per-module"`
	NoRewrite            bool               `mapstructure:"no-rewrite"`
	RewriteDryRun        bool               `mapstructure:"rewrite-dry-run"`
	RecipesVersion       string             `mapstructure:"rewrite-update-recipes-version"`
	RewritePluginVersion string             `mapstructure:"rewrite-plugin-version"`
	RecipesDir           string             `mapstructure:"recipes-dir"`
	RecipesGitHub        string             `mapstructure:"recipes-github"`
	GitHubToken          string             `mapstructure:"github-token"`
	DefaultBOM           string             `mapstructure:"default-bom"`
	BuildTool            v1alpha1.BuildTool `mapstructure:"build-tool"`
}

// newViper creates the option source of a command: defaults, then the optional
// .platup.yaml in the working directory or $HOME, then PLATUP_* variables, then flags.
func newViper() *viper.Viper {
	viperInstance := viper.New()
	viperInstance.SetConfigName(ConfigFileName)
	viperInstance.SetConfigType("yaml")
	viperInstance.AddConfigPath(".")
	viperInstance.AddConfigPath("$HOME")
	viperInstance.SetEnvPrefix(EnvPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viperInstance.AutomaticEnv()

	return viperInstance
}

// bindProjectFlags registers the flags shared by every command reading a project.
func bindProjectFlags(cmd *cobra.Command, viperInstance *viper.Viper) {
	flags := cmd.Flags()
	flags.StringP(flagProject, "p", defaultProjectFile, "Path to the project model file (yaml, json or toml)")
	flags.String(flagProjectDir, "", "Project directory, overrides the one in the project model")
	flags.StringP(flagCatalog, "c", defaultCatalogFile, "Path to the platform catalog file")
	flags.Bool(flagPerModule, false, "List extensions per project module")
	flags.String(flagDefaultBOM, state.DefaultBOMArtifactID, "Artifact ID of the default platform BOM")

	bindFlags(cmd, viperInstance, flagProject, flagProjectDir, flagCatalog, flagPerModule, flagDefaultBOM)
}

// bindUpdateFlags registers the flags of the update command.
func bindUpdateFlags(cmd *cobra.Command, viperInstance *viper.Viper) {
	bindProjectFlags(cmd, viperInstance)

	var buildTool v1alpha1.BuildTool

	flags := cmd.Flags()
	flags.StringP(flagPlatformVersion, "P", "", "Target platform version, defaults to the latest release")
	flags.Bool(flagNoRewrite, false, "Only report the update, do not run the rewrite plugin")
	flags.Bool(flagRewriteDryRun, false, "Run the rewrite plugin without changing files")
	flags.String(flagRecipesVersion, recipes.LatestVersion, "Version of the update recipe set")
	flags.String(flagRewritePluginVersion, "", "Rewrite plugin version, overrides the recipe set's")
	flags.String(flagRecipesDir, "", "Directory holding update recipe sets")
	flags.String(flagRecipesGitHub, "", "GitHub repository holding update recipe sets (owner/repo[/dir])")
	flags.String(flagGitHubToken, "", "Token for the GitHub recipe repository")
	flags.Var(&buildTool, flagBuildTool, "Build tool, overrides the one in the project model")

	bindFlags(
		cmd, viperInstance,
		flagPlatformVersion, flagNoRewrite, flagRewriteDryRun, flagRecipesVersion,
		flagRewritePluginVersion, flagRecipesDir, flagRecipesGitHub, flagGitHubToken, flagBuildTool,
	)
}

func bindFlags(cmd *cobra.Command, viperInstance *viper.Viper, names ...string) {
	for _, name := range names {
		_ = viperInstance.BindPFlag(name, cmd.Flags().Lookup(name))
	}
}

// loadUpdateOptions reads the config file, if any, and decodes every source into
// options. ${VAR} references and a leading ~/ in paths are expanded.
func loadUpdateOptions(viperInstance *viper.Viper) (UpdateOptions, error) {
	err := viperInstance.ReadInConfig()
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return UpdateOptions{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var opts UpdateOptions

	decoderConfig := func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(buildToolDecodeHook())
	}

	err = viperInstance.Unmarshal(&opts, decoderConfig)
	if err != nil {
		return UpdateOptions{}, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	err = envvar.ExpandPaths(&opts.Project, &opts.ProjectDir, &opts.Catalog, &opts.RecipesDir)
	if err != nil {
		return UpdateOptions{}, err
	}

	opts.GitHubToken = envvar.Expand(opts.GitHubToken)

	return opts, nil
}

// buildToolDecodeHook normalises build tool names from config files and the
// environment ("maven" -> "Maven").
func buildToolDecodeHook() mapstructure.DecodeHookFuncType {
	target := reflect.TypeFor[v1alpha1.BuildTool]()

	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to != target || from.Kind() != reflect.String {
			return data, nil
		}

		raw := strings.TrimSpace(reflect.ValueOf(data).String())
		if raw == "" {
			return v1alpha1.BuildTool(""), nil
		}

		var buildTool v1alpha1.BuildTool

		err := buildTool.Set(raw)
		if err != nil {
			return nil, err
		}

		return buildTool, nil
	}
}

// recipeSource builds the configured recipe source.
func (o UpdateOptions) recipeSource() (recipes.Source, error) {
	switch {
	case o.RecipesDir != "":
		return recipes.NewDirSource(o.RecipesDir), nil
	case o.RecipesGitHub != "":
		parts := strings.SplitN(o.RecipesGitHub, "/", 3)
		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRecipesRepository, o.RecipesGitHub)
		}

		dir := ""
		if len(parts) == 3 {
			dir = parts[2]
		}

		return recipes.NewGitHubSource(http.DefaultClient, o.GitHubToken, parts[0], parts[1], dir), nil
	default:
		return nil, ErrNoRecipeSource
	}
}

// unavailableSource fails every read with the error that prevented building the
// configured source. Runs that read no recipes are unaffected.
type unavailableSource struct {
	err error
}

func (s unavailableSource) ResolveVersion(context.Context, string) (string, error) {
	return "", s.err
}

func (s unavailableSource) ReadFile(context.Context, string, string) ([]byte, error) {
	return nil, s.err
}
