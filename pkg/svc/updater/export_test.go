package updater

import "os"

// ExportSetCreateTemp replaces the function creating the recipe file.
func (u *Updater) ExportSetCreateTemp(create func(dir, pattern string) (*os.File, error)) {
	u.createTemp = create
}
