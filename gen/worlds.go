package gen

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/teranos/witgen/config"
	"github.com/teranos/witgen/errors"
	"github.com/teranos/witgen/logger"
	"github.com/teranos/witgen/output"
	"github.com/teranos/witgen/wit"
)

// Manifest is a world manifest file found in the api directory
type Manifest struct {
	Path string
	Name string
}

// FindWorlds returns the .wit files of apiDir that declare a world, in
// file-name order. A missing directory holds no manifests.
func FindWorlds(apiDir string) ([]Manifest, error) {
	entries, err := os.ReadDir(apiDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to scan %s for world manifests", apiDir)
	}

	var manifests []Manifest
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".wit") {
			continue
		}
		path := filepath.Join(apiDir, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", path)
		}
		if name, ok := wit.ParseWorldName(string(content)); ok {
			manifests = append(manifests, Manifest{Path: path, Name: name})
		}
	}
	return manifests, nil
}

// UpdateWorlds rewrites every world manifest in apiDir so it exports exactly
// exports. Without any manifest a default one is created, provided there is
// something to export. It returns the paths written.
func UpdateWorlds(apiDir string, exports []string, cfg config.WorldConfig, sink output.Sink) ([]string, error) {
	log := logger.ComponentLogger("witgen.gen")

	manifests, err := FindWorlds(apiDir)
	if err != nil {
		return nil, err
	}

	if len(manifests) == 0 {
		if len(exports) == 0 {
			log.Infow("No world manifest and nothing to export")
			return nil, nil
		}
		name := cfg.DefaultName
		if name == "" {
			name = wit.DefaultWorldName
		}
		log.Infow("No world manifest found, creating default", logger.FieldWorld, name)
		manifests = []Manifest{{Path: filepath.Join(apiDir, name+".wit"), Name: name}}
	}

	var written []string
	for _, m := range manifests {
		world := wit.World{Name: m.Name, Exports: exports, Include: cfg.Include}
		log.Debugw("Writing world manifest",
			logger.FieldWorld, m.Name,
			logger.FieldFile, m.Path,
			logger.FieldCount, len(exports))
		if err := sink.WriteFile(m.Path, []byte(world.Render())); err != nil {
			return nil, err
		}
		written = append(written, m.Path)
	}
	return written, nil
}
