package cmd

import (
	"fmt"

	"github.com/devantler-tech/platup/pkg/io/catalog"
	"github.com/devantler-tech/platup/pkg/io/model"
)

// loadInputs reads the project model and the catalog named by opts and applies the
// project overrides.
func loadInputs(opts UpdateOptions) (*model.ApplicationModel, *catalog.Catalog, error) {
	project, err := model.Load(opts.Project)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load project: %w", err)
	}

	if opts.ProjectDir != "" {
		project.ProjectDir = opts.ProjectDir
	}

	if opts.BuildTool != "" {
		project.BuildTool = opts.BuildTool
	}

	cat, err := catalog.Load(opts.Catalog)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	return project, cat, nil
}
