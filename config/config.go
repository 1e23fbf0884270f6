// Package config loads witgen configuration.
//
// Precedence (lowest to highest): defaults < witgen.toml < WITGEN_* environment
// variables < command line flags (applied by the caller after Load).
package config

import "path/filepath"

// Config represents the witgen configuration
type Config struct {
	Root     string         `mapstructure:"root"`    // directory whose subdirectories are scanned for projects
	APIDir   string         `mapstructure:"api_dir"` // output directory, relative to Root unless absolute
	Manifest ManifestConfig `mapstructure:"manifest"`
	Source   SourceConfig   `mapstructure:"source"`
	World    WorldConfig    `mapstructure:"world"`
	Naming   NamingConfig   `mapstructure:"naming"`
	Closure  ClosureConfig  `mapstructure:"closure"`
	Log      LogConfig      `mapstructure:"log"`
}

// ManifestConfig selects which subdirectories count as projects
type ManifestConfig struct {
	File   string `mapstructure:"file"`   // build manifest file name inside a project
	Marker string `mapstructure:"marker"` // required value of package.metadata.component.package
}

// SourceConfig controls how project source is loaded
type SourceConfig struct {
	Dir       string `mapstructure:"dir"`       // source directory relative to the project
	Loader    string `mapstructure:"loader"`    // "parser" or "packages"
	Directive string `mapstructure:"directive"` // comment directive prefix, e.g. "hyper" for //hyper:remote
}

// WorldConfig configures world manifest rendering
type WorldConfig struct {
	DefaultName string `mapstructure:"default_name"` // world synthesized when no manifest exists
	Include     string `mapstructure:"include"`      // world included by every manifest
}

// NamingConfig configures declaration name handling
type NamingConfig struct {
	Collisions string `mapstructure:"collisions"` // "overwrite", "report" or "reject"
}

// ClosureConfig configures type closure computation
type ClosureConfig struct {
	Tracking string `mapstructure:"tracking"` // "textual" or "structural"
}

// LogConfig configures log output
type LogConfig struct {
	JSON bool `mapstructure:"json"`
}

// Loader values
const (
	LoaderParser   = "parser"
	LoaderPackages = "packages"
)

// Collision policy values
const (
	CollisionsOverwrite = "overwrite"
	CollisionsReport    = "report"
	CollisionsReject    = "reject"
)

// Closure tracking values
const (
	TrackingTextual    = "textual"
	TrackingStructural = "structural"
)

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)

// FileName is the project-level config file looked up in the root directory
const FileName = "witgen.toml"

// APIPath returns the output directory resolved against Root
func (c *Config) APIPath() string {
	if filepath.IsAbs(c.APIDir) {
		return c.APIDir
	}
	return filepath.Join(c.Root, c.APIDir)
}

// SourcePath returns the source directory of a project
func (c *Config) SourcePath(projectPath string) string {
	if filepath.IsAbs(c.Source.Dir) {
		return c.Source.Dir
	}
	return filepath.Join(projectPath, c.Source.Dir)
}
