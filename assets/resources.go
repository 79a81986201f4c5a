package assets

import (
	"io/fs"
)

// Resource is one file of the bundled frontend. Path is relative to the
// bundle root and always uses forward slashes.
type Resource struct {
	Path string
	Body []byte
}

// ResourcesFromFS reads every regular file below the root of fsys.
func ResourcesFromFS(fsys fs.FS) ([]Resource, error) {
	var resources []Resource
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		body, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		resources = append(resources, Resource{Path: p, Body: body})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resources, nil
}
