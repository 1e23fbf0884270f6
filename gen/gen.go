// Package gen runs WIT generation over a root directory.
//
// A run has two phases. First every discovered project is parsed and each of
// its annotated process types is written as <api-dir>/<interface>.wit, while
// the matching export statements are collected. Then every world manifest in
// the api directory is rewritten to export them.
package gen

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/teranos/witgen/config"
	"github.com/teranos/witgen/discover"
	"github.com/teranos/witgen/errors"
	"github.com/teranos/witgen/logger"
	"github.com/teranos/witgen/output"
	"github.com/teranos/witgen/syntax"
	"github.com/teranos/witgen/syntax/golang"
	"github.com/teranos/witgen/wit"
)

// Generated describes one interface file produced by a run
type Generated struct {
	Project   string // project directory name
	Type      string // process type name as written in source
	Interface string // normalized interface name
	World     string // wit_world named by the process directive
	Path      string // written file
	Functions int
	Types     int
}

// Result summarizes a run
type Result struct {
	Projects   []discover.Project
	Interfaces []Generated
	Exports    []string // export statements in processing order
	Manifests  []string // world manifests written
}

// Run performs a full generation with cfg, writing through sink.
func Run(ctx context.Context, cfg *config.Config, sink output.Sink) (*Result, error) {
	log := logger.ComponentLogger("witgen.gen")

	opts, err := witOptions(cfg)
	if err != nil {
		return nil, err
	}

	apiDir := cfg.APIPath()
	if err := sink.MkdirAll(apiDir); err != nil {
		return nil, err
	}
	log.Debugw("Using api directory", logger.FieldPath, apiDir)

	projects, err := discover.Projects(cfg.Root, discover.Options{
		ManifestFile: cfg.Manifest.File,
		Marker:       cfg.Manifest.Marker,
	})
	if err != nil {
		return nil, err
	}

	result := &Result{Projects: projects}
	if len(projects) == 0 {
		log.Infow("No projects found", logger.FieldPath, cfg.Root, "marker", cfg.Manifest.Marker)
		return result, nil
	}
	log.Infow("Found projects", logger.FieldCount, len(projects))

	// Phase 1: interfaces
	for _, project := range projects {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		generated, err := ProcessProject(project, cfg, opts, sink)
		if err != nil {
			return nil, errors.Wrapf(err, "project %s", project.Name)
		}
		for _, g := range generated {
			result.Interfaces = append(result.Interfaces, g)
			result.Exports = append(result.Exports, wit.ExportStatement(g.Interface))
		}
	}
	log.Infow("Collected world exports", logger.FieldCount, len(result.Exports))

	// Phase 2: world manifests
	manifests, err := UpdateWorlds(apiDir, result.Exports, cfg.World, sink)
	if err != nil {
		return nil, err
	}
	result.Manifests = manifests

	return result, nil
}

// ProcessProject generates the interfaces of one project. Process types
// without a world annotation are skipped with a warning; types without
// exported methods produce nothing.
func ProcessProject(project discover.Project, cfg *config.Config, opts wit.Options, sink output.Sink) ([]Generated, error) {
	log := projectLogger(project)

	built, err := buildInterfaces(project, cfg, opts)
	if err != nil {
		return nil, err
	}

	apiDir := cfg.APIPath()
	var generated []Generated
	for _, b := range built {
		path := filepath.Join(apiDir, b.iface.FileName())
		logInterface(log, b.iface, path)
		if err := sink.WriteFile(path, []byte(b.iface.Render())); err != nil {
			return nil, err
		}

		generated = append(generated, Generated{
			Project:   project.Name,
			Type:      b.typeName,
			Interface: b.iface.Name,
			World:     b.world,
			Path:      path,
			Functions: len(b.iface.Functions),
			Types:     len(b.iface.Declarations),
		})
	}

	return generated, nil
}

// builtInterface is a non-empty interface of one process type
type builtInterface struct {
	typeName string
	world    string
	iface    *wit.Interface
}

func buildInterfaces(project discover.Project, cfg *config.Config, opts wit.Options) ([]builtInterface, error) {
	log := projectLogger(project)

	srcDir := cfg.SourcePath(project.Path)
	file, err := golang.Load(srcDir, golang.Options{
		Directive: cfg.Source.Directive,
		Loader:    cfg.Source.Loader,
	})
	if err != nil {
		if errors.Is(err, golang.ErrNoSource) {
			log.Infow("No Go source found, skipping", logger.FieldPath, srcDir)
			return nil, nil
		}
		return nil, errors.WrapSourceParse(err, srcDir)
	}

	generator := wit.NewGenerator(file, opts)

	var built []builtInterface
	for _, impl := range file.Impls() {
		directive, ok := impl.Directive(golang.DirectiveProcess)
		if !ok {
			continue
		}

		world, err := worldOf(impl, directive, cfg.Source.Directive)
		if err != nil {
			log.Warnw("Skipping process type", logger.FieldType, impl.TypeName, logger.FieldError, err.Error())
			continue
		}

		iface, err := generator.Interface(impl, impl.TypeName)
		if err != nil {
			return nil, err
		}
		if iface.Empty() {
			log.Infow("No exported methods, skipping interface", logger.FieldType, impl.TypeName, logger.FieldInterface, iface.Name)
			continue
		}

		built = append(built, builtInterface{typeName: impl.TypeName, world: world, iface: iface})
	}
	return built, nil
}

func projectLogger(project discover.Project) *zap.SugaredLogger {
	return logger.ChildLogger(logger.ComponentLogger("witgen.gen"), logger.FieldProject, project.Name)
}

func worldOf(impl *syntax.Impl, directive syntax.Directive, prefix string) (string, error) {
	world := directive.Args[golang.WorldArg]
	if world == "" {
		return "", errors.WithHintf(
			errors.Wrapf(errors.ErrMissingAnnotation, "%s (%s): process directive has no %s", impl.TypeName, impl.Pos, golang.WorldArg),
			"annotate the type with //%s:%s %s=\"<world>\"", prefix, golang.DirectiveProcess, golang.WorldArg)
	}
	return world, nil
}

func logInterface(log *zap.SugaredLogger, iface *wit.Interface, path string) {
	types := make([]string, len(iface.Declarations))
	for i, d := range iface.Declarations {
		types[i] = d.Name
	}
	log.Debugw("Writing interface",
		logger.FieldInterface, iface.Name,
		logger.FieldFile, path,
		logger.FieldCount, len(iface.Functions),
		"types", types)
}

func witOptions(cfg *config.Config) (wit.Options, error) {
	collisions, err := wit.ParseCollisionPolicy(cfg.Naming.Collisions)
	if err != nil {
		return wit.Options{}, err
	}
	tracking, err := wit.ParseTracking(cfg.Closure.Tracking)
	if err != nil {
		return wit.Options{}, err
	}
	return wit.Options{Collisions: collisions, Tracking: tracking}, nil
}
