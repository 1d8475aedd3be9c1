package rewrite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/devantler-tech/platup/pkg/apis/project/v1alpha1"
	"github.com/devantler-tech/platup/pkg/utils/notify"
	"github.com/devantler-tech/platup/pkg/utils/runner"
)

const (
	mavenPluginGroupID    = "org.openrewrite.maven"
	mavenPluginArtifactID = "rewrite-maven-plugin"

	gradleRunTask    = "rewriteRun"
	gradleDryRunTask = "rewriteDryRun"

	initScriptPattern = "platup-rewrite-*.gradle"
	filePermissions   = 0o600
)

// ErrUpdateExecution is returned when the rewrite plugin fails or cannot be started.
var ErrUpdateExecution = errors.New("failed to run the rewrite plugin")

// Command is a program invocation.
type Command struct {
	Name string
	Args []string
}

// Engine applies recipe files to a project by running the rewrite plugin.
type Engine struct {
	runner runner.ProcessRunner
}

// NewEngine creates an engine running build tools through processRunner.
func NewEngine(processRunner runner.ProcessRunner) *Engine {
	return &Engine{runner: processRunner}
}

// Handle runs the rewrite plugin of pluginVersion with the recipes in recipeFile.
// With dryRun the plugin only reports the changes it would make.
func (e *Engine) Handle(
	ctx context.Context,
	log notify.Logger,
	buildTool v1alpha1.BuildTool,
	projectDir, pluginVersion, recipesGAV, recipeFile string,
	dryRun bool,
) error {
	var (
		command Command
		err     error
	)

	switch buildTool {
	case v1alpha1.BuildToolMaven:
		command = MavenCommand(projectDir, pluginVersion, recipesGAV, recipeFile, dryRun)
	case v1alpha1.BuildToolGradle, v1alpha1.BuildToolGradleKotlinDSL:
		var initScript string

		initScript, err = writeInitScript(GradleInitScript(pluginVersion, recipesGAV, recipeFile))
		if err != nil {
			return err
		}

		defer func() { _ = os.Remove(initScript) }()

		command = GradleCommand(projectDir, initScript, dryRun)
	default:
		return fmt.Errorf("%w: %w: %q", ErrUpdateExecution, v1alpha1.ErrInvalidBuildTool, buildTool)
	}

	log.Info("Running %s %s", command.Name, strings.Join(command.Args, " "))

	_, err = e.runner.Run(ctx, projectDir, command.Name, command.Args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUpdateExecution, err)
	}

	if dryRun {
		log.Success("rewrite dry run finished, no files were changed")
	} else {
		log.Success("project updated")
	}

	return nil
}

// MavenCommand builds the Maven invocation of the rewrite plugin. The project's
// Maven wrapper is preferred over a global installation.
func MavenCommand(projectDir, pluginVersion, recipesGAV, recipeFile string, dryRun bool) Command {
	goal := "run"
	if dryRun {
		goal = "dryRun"
	}

	return Command{
		Name: wrapperOr(projectDir, "mvnw", "mvn"),
		Args: []string{
			"-e",
			fmt.Sprintf("%s:%s:%s:%s", mavenPluginGroupID, mavenPluginArtifactID, pluginVersion, goal),
			"-Drewrite.configLocation=" + recipeFile,
			"-Drewrite.recipeArtifactCoordinates=" + recipesGAV,
			"-Drewrite.activeRecipes=" + ActiveRecipe,
			"-Drewrite.pomCacheEnabled=false",
		},
	}
}

// GradleCommand builds the Gradle invocation of the rewrite plugin applied by
// initScript. The project's Gradle wrapper is preferred over a global installation.
func GradleCommand(projectDir, initScript string, dryRun bool) Command {
	task := gradleRunTask
	if dryRun {
		task = gradleDryRunTask
	}

	return Command{
		Name: wrapperOr(projectDir, "gradlew", "gradle"),
		Args: []string{"--console", "plain", "--stacktrace", "--init-script", initScript, task},
	}
}

// GradleInitScript renders an init script applying the rewrite plugin to the root
// project with the recipe artifact and file.
func GradleInitScript(pluginVersion, recipesGAV, recipeFile string) string {
	return fmt.Sprintf(`initscript {
    repositories {
        maven { url "https://plugins.gradle.org/m2" }
    }
    dependencies {
        classpath("org.openrewrite:plugin:%s")
    }
}

rootProject {
    plugins.apply(org.openrewrite.gradle.RewritePlugin)
    dependencies {
        rewrite("%s")
    }
    rewrite {
        activeRecipe("%s")
        configFile = file("%s")
        plainTextMasks = ["**/META-INF/services/**", "**/*.txt", "**/*.adoc", "**/*.md"]
    }
    afterEvaluate {
        if (repositories.isEmpty()) {
            repositories {
                mavenCentral()
            }
        }
    }
}
`, pluginVersion, recipesGAV, ActiveRecipe, filepath.ToSlash(recipeFile))
}

func writeInitScript(content string) (string, error) {
	file, err := os.CreateTemp("", initScriptPattern)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create init script: %w", ErrUpdateExecution, err)
	}

	path := file.Name()

	_, err = file.WriteString(content)
	closeErr := file.Close()

	if err == nil {
		err = closeErr
	}

	if err == nil {
		err = os.Chmod(path, filePermissions)
	}

	if err != nil {
		_ = os.Remove(path)

		return "", fmt.Errorf("%w: failed to write init script: %w", ErrUpdateExecution, err)
	}

	return path, nil
}

// wrapperOr returns the absolute path of the wrapper script in projectDir when
// present, else the global tool.
func wrapperOr(projectDir, wrapper, global string) string {
	if runtime.GOOS == "windows" {
		wrapper += ".cmd"
	}

	path, err := filepath.Abs(filepath.Join(projectDir, wrapper))
	if err != nil {
		return global
	}

	info, err := os.Stat(path)
	if err == nil && !info.IsDir() {
		return path
	}

	return global
}
