package updater

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/devantler-tech/platup/pkg/apis/project/v1alpha1"
	"github.com/devantler-tech/platup/pkg/io/catalog"
	"github.com/devantler-tech/platup/pkg/io/model"
	"github.com/devantler-tech/platup/pkg/svc/diff"
	"github.com/devantler-tech/platup/pkg/svc/report"
	"github.com/devantler-tech/platup/pkg/svc/rewrite"
	"github.com/devantler-tech/platup/pkg/svc/state"
	"github.com/devantler-tech/platup/pkg/utils/notify"
)

const recipeFilePattern = "platup-project-recipe-*.yaml"

// ErrGenerateRecipe is returned when the recipe file for an update cannot be produced.
var ErrGenerateRecipe = errors.New("failed to generate the update recipe")

// ErrRunRecipe is returned when the rewrite plugin fails to apply the update recipe.
var ErrRunRecipe = errors.New("failed to apply the update recipe")

// Outcome is the result of an update run.
type Outcome int

const (
	// Success means the project is up to date or the update was planned and applied.
	Success Outcome = iota
	// Failure means the update could not be planned or applied.
	Failure
)

func (o Outcome) String() string {
	if o == Success {
		return "success"
	}

	return "failure"
}

// StateResolver derives the current and recommended states of a project.
type StateResolver interface {
	ResolveProjectState(project *model.ApplicationModel, cat *catalog.Catalog) (*state.ProjectState, error)
	ResolveRecommendedState(
		current *state.ProjectState,
		release *catalog.Release,
		cat *catalog.Catalog,
		log notify.Logger,
	) (*state.ProjectState, error)
}

// RecipeRepository writes the recipes for an update request to a file.
type RecipeRepository interface {
	CreateRecipe(
		ctx context.Context,
		log notify.Logger,
		dest string,
		buildTool v1alpha1.BuildTool,
		recipeSetVersion string,
		request rewrite.UpdateRequest,
	) (rewrite.FetchResult, error)
}

// RewriteEngine applies a recipe file to a project.
type RewriteEngine interface {
	Handle(
		ctx context.Context,
		log notify.Logger,
		buildTool v1alpha1.BuildTool,
		projectDir, pluginVersion, recipesGAV, recipeFile string,
		dryRun bool,
	) error
}

// Invocation holds the inputs of one update run.
type Invocation struct {
	Project *model.ApplicationModel
	Catalog *catalog.Catalog
	// TargetVersion is the requested platform version. Empty selects the latest release.
	TargetVersion string
	// PerModule lists the current state per module when the project is already on target.
	PerModule bool
	// NoRewrite stops after the report.
	NoRewrite bool
	// RewriteDryRun runs the rewrite plugin without changing files.
	RewriteDryRun bool
	// RecipesVersion selects the recipe set. Empty selects the latest.
	RecipesVersion string
	// RewritePluginVersion overrides the plugin version recommended by the recipe set.
	RewritePluginVersion string
}

// Updater runs project updates.
type Updater struct {
	resolver StateResolver
	recipes  RecipeRepository
	engine   RewriteEngine
	log      notify.Logger

	// TempDir holds the generated recipe file. Empty uses the system default.
	TempDir string

	createTemp func(dir, pattern string) (*os.File, error)
}

// New creates an Updater.
func New(resolver StateResolver, recipes RecipeRepository, engine RewriteEngine, log notify.Logger) *Updater {
	if log == nil {
		log = notify.Discard
	}

	return &Updater{
		resolver:   resolver,
		recipes:    recipes,
		engine:     engine,
		log:        log,
		createTemp: os.CreateTemp,
	}
}

// Run plans the update of inv.Project to the target release and, unless disabled,
// applies it with the rewrite plugin.
//
// A project without a default platform BOM fails before the target release is
// selected. A project already on the target version gets its current state listed.
// Otherwise the report is logged and the recipes are generated and run. Projects
// without extensions skip the comparison but still get the platform recipes.
func (u *Updater) Run(ctx context.Context, inv Invocation) (Outcome, error) {
	current, err := u.resolver.ResolveProjectState(inv.Project, inv.Catalog)
	if err != nil {
		return Failure, fmt.Errorf("failed to resolve the project state: %w", err)
	}

	platform, ok := current.DefaultPlatform()
	if !ok {
		u.log.Error("%s imported by the project", state.ErrNoPlatformBOM)

		return Failure, nil
	}

	release, narrowed, err := inv.Catalog.ResolveRelease(inv.TargetVersion)
	if err != nil {
		return Failure, fmt.Errorf("failed to select the target platform release: %w", err)
	}

	if narrowed {
		u.log.Warn("platform version %s was narrowed to %s", inv.TargetVersion, release.Version)
	}

	currentVersion := platform.BOM.Version
	if currentVersion == release.Version {
		u.logLines(report.StateLines(current, inv.PerModule))

		return Success, nil
	}

	u.log.Info("Instructions to update this project from '%s' to '%s':", currentVersion, release.Version)

	extensionUpdates, err := u.plan(current, release, inv)
	if err != nil {
		return Failure, err
	}

	if inv.NoRewrite {
		return Success, nil
	}

	kotlin, _ := catalog.LookupString(
		inv.Catalog.ReleaseMetadata(release), "project", "properties", "kotlin-version",
	)

	request, err := rewrite.NewUpdateRequest(inv.Project.BuildTool, currentVersion, release.Version, kotlin)
	if err != nil {
		return Failure, fmt.Errorf("%w: %w", ErrGenerateRecipe, err)
	}

	return u.rewrite(ctx, inv, request, extensionUpdates)
}

// plan logs the changes between the current state and the target release and
// reports whether any extension changes. A project without extensions is not
// compared.
func (u *Updater) plan(current *state.ProjectState, release *catalog.Release, inv Invocation) (bool, error) {
	if !current.HasExtensions() {
		u.log.Info("%s", report.NoExtensions)

		return false, nil
	}

	recommended, err := u.resolver.ResolveRecommendedState(current, release, inv.Catalog, u.log)
	if err != nil {
		return false, fmt.Errorf("failed to resolve the recommended state: %w", err)
	}

	platformInfo := diff.ResolvePlatformUpdateInfo(current, recommended)
	extensionsInfo := diff.ResolveExtensionsUpdateInfo(current, recommended)

	u.logLines(report.Render(current, recommended, platformInfo, extensionsInfo))

	return !extensionsInfo.IsEmpty(), nil
}

func (u *Updater) rewrite(
	ctx context.Context,
	inv Invocation,
	request rewrite.UpdateRequest,
	extensionUpdates bool,
) (Outcome, error) {
	recipeFile, err := u.createTemp(u.TempDir, recipeFilePattern)
	if err != nil {
		return Failure, fmt.Errorf("%w: failed to create recipe file: %w", ErrGenerateRecipe, err)
	}

	recipePath := recipeFile.Name()
	defer func() { _ = os.Remove(recipePath) }()

	err = recipeFile.Close()
	if err != nil {
		return Failure, fmt.Errorf("%w: failed to close recipe file: %w", ErrGenerateRecipe, err)
	}

	buildTool := inv.Project.BuildTool

	fetched, err := u.recipes.CreateRecipe(ctx, u.log, recipePath, buildTool, inv.RecipesVersion, request)
	if err != nil {
		return Failure, fmt.Errorf("%w: %w", ErrGenerateRecipe, err)
	}

	pluginVersion := inv.RewritePluginVersion
	if pluginVersion == "" {
		pluginVersion = fetched.RewritePluginVersion
	} else {
		fetched.RewritePluginVersion = pluginVersion
	}

	err = fetched.Validate()
	if err != nil {
		return Failure, fmt.Errorf("%w: %w", ErrGenerateRecipe, err)
	}

	if extensionUpdates {
		u.log.Warn("extension version updates are not applied by the rewrite recipes, apply them manually")
	}

	err = u.engine.Handle(
		ctx, u.log, buildTool, inv.Project.ProjectDir, pluginVersion, fetched.RecipesGAV, recipePath, inv.RewriteDryRun,
	)
	if err != nil {
		return Failure, fmt.Errorf("%w: %w", ErrRunRecipe, err)
	}

	return Success, nil
}

func (u *Updater) logLines(lines []string) {
	for _, line := range lines {
		u.log.Info("%s", line)
	}
}
