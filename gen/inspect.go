package gen

import (
	"context"

	"github.com/teranos/witgen/config"
	"github.com/teranos/witgen/discover"
	"github.com/teranos/witgen/errors"
	"github.com/teranos/witgen/wit"
)

// InterfaceModel is the machine-readable view of one generated interface
type InterfaceModel struct {
	Project   string          `json:"project" yaml:"project"`
	World     string          `json:"world" yaml:"world"`
	Name      string          `json:"name" yaml:"name"`
	Source    string          `json:"source" yaml:"source"`
	File      string          `json:"file" yaml:"file"`
	Functions []FunctionModel `json:"functions" yaml:"functions"`
	Types     []TypeModel     `json:"types,omitempty" yaml:"types,omitempty"`
}

// FunctionModel describes one exported function
type FunctionModel struct {
	Name    string       `json:"name" yaml:"name"`
	Source  string       `json:"source" yaml:"source"`
	Markers []string     `json:"markers" yaml:"markers"`
	Params  []ParamModel `json:"params,omitempty" yaml:"params,omitempty"`
	Result  string       `json:"result" yaml:"result"`
}

// ParamModel is a function parameter after type mapping
type ParamModel struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// TypeModel is a declaration included in an interface
type TypeModel struct {
	Name   string `json:"name" yaml:"name"`
	Source string `json:"source" yaml:"source"`
	Kind   string `json:"kind" yaml:"kind"`
}

// Inspect builds the interfaces a run would generate without writing
// anything, in the same order as Run.
func Inspect(ctx context.Context, cfg *config.Config) ([]InterfaceModel, error) {
	opts, err := witOptions(cfg)
	if err != nil {
		return nil, err
	}

	projects, err := discover.Projects(cfg.Root, discover.Options{
		ManifestFile: cfg.Manifest.File,
		Marker:       cfg.Manifest.Marker,
	})
	if err != nil {
		return nil, err
	}

	models := []InterfaceModel{}
	for _, project := range projects {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		built, err := buildInterfaces(project, cfg, opts)
		if err != nil {
			return nil, errors.Wrapf(err, "project %s", project.Name)
		}
		for _, b := range built {
			models = append(models, interfaceModel(project.Name, b))
		}
	}
	return models, nil
}

func interfaceModel(project string, b builtInterface) InterfaceModel {
	m := InterfaceModel{
		Project: project,
		World:   b.world,
		Name:    b.iface.Name,
		Source:  b.typeName,
		File:    b.iface.FileName(),
	}

	for _, fn := range b.iface.Functions {
		f := FunctionModel{
			Name:    fn.Name,
			Source:  fn.Source,
			Markers: markerNames(fn),
			Result:  fn.Result,
		}
		for _, p := range fn.Params {
			f.Params = append(f.Params, ParamModel{Name: p.Name, Type: p.Type})
		}
		m.Functions = append(m.Functions, f)
	}

	for _, d := range b.iface.Declarations {
		m.Types = append(m.Types, TypeModel{Name: d.Name, Source: d.Source, Kind: d.Kind.String()})
	}
	return m
}

func markerNames(fn wit.Function) []string {
	var names []string
	if fn.Markers.Remote {
		names = append(names, "remote")
	}
	if fn.Markers.Local {
		names = append(names, "local")
	}
	if fn.Markers.HTTP {
		names = append(names, "http")
	}
	return names
}
