// Package discover finds generation projects below a root directory.
//
// A project is an immediate subdirectory whose build manifest declares the
// component package marker:
//
//	[package.metadata.component]
//	package = "hyperware:process"
package discover

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/teranos/witgen/errors"
	"github.com/teranos/witgen/logger"
)

// Project is a directory selected for generation
type Project struct {
	Name string // directory name
	Path string // directory path
}

// manifest holds the part of the build manifest discovery looks at
type manifest struct {
	Package struct {
		Metadata struct {
			Component struct {
				Package string `toml:"package"`
			} `toml:"component"`
		} `toml:"metadata"`
	} `toml:"package"`
}

// Options configures project discovery
type Options struct {
	ManifestFile string // file name inside each subdirectory, e.g. "process.toml"
	Marker       string // required package.metadata.component.package value
}

// Projects returns the qualifying subdirectories of root in lexical order.
// Subdirectories with a missing or unparseable manifest are skipped.
func Projects(root string, opts Options) ([]Project, error) {
	log := logger.ComponentLogger("witgen.discover")

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan root directory %s", root)
	}

	var projects []Project
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		manifestPath := filepath.Join(dir, opts.ManifestFile)

		marker, err := readMarker(manifestPath)
		if err != nil {
			if !os.IsNotExist(errors.UnwrapAll(err)) {
				log.Debugw("Skipping directory with unreadable manifest",
					logger.FieldPath, manifestPath, logger.FieldError, err)
			}
			continue
		}
		if marker != opts.Marker {
			log.Debugw("Skipping directory with foreign component package",
				logger.FieldPath, dir, "package", marker)
			continue
		}

		log.Debugw("Found project", logger.FieldProject, entry.Name(), logger.FieldPath, dir)
		projects = append(projects, Project{Name: entry.Name(), Path: dir})
	}

	log.Debugw("Scanned for projects", logger.FieldPath, root, logger.FieldCount, len(projects))
	return projects, nil
}

// readMarker returns the component package declared by a build manifest
func readMarker(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.WithStack(err)
	}

	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return "", errors.Wrapf(err, "failed to parse %s", path)
	}
	return m.Package.Metadata.Component.Package, nil
}
