package config

import "github.com/spf13/viper"

// Default values shared with the CLI flag help text
const (
	DefaultAPIDir       = "api"
	DefaultManifestFile = "process.toml"
	DefaultMarker       = "hyperware:process"
	DefaultDirective    = "hyper"
	DefaultWorldName    = "async-app-template-dot-os-v0"
	DefaultWorldInclude = "process-v1"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("root", ".")
	v.SetDefault("api_dir", DefaultAPIDir)

	v.SetDefault("manifest.file", DefaultManifestFile)
	v.SetDefault("manifest.marker", DefaultMarker)

	v.SetDefault("source.dir", ".")
	v.SetDefault("source.loader", LoaderParser)
	v.SetDefault("source.directive", DefaultDirective)

	v.SetDefault("world.default_name", DefaultWorldName)
	v.SetDefault("world.include", DefaultWorldInclude)

	// Last declaration wins unless configured otherwise
	v.SetDefault("naming.collisions", CollisionsOverwrite)
	v.SetDefault("closure.tracking", TrackingTextual)

	v.SetDefault("log.json", false)
}
