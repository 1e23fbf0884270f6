package config

import (
	"strings"

	"github.com/teranos/witgen/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Root == "" {
		return invalid("root cannot be empty")
	}
	if c.APIDir == "" {
		return invalid("api_dir cannot be empty")
	}
	if c.Manifest.File == "" {
		return invalid("manifest.file cannot be empty")
	}
	if c.Manifest.Marker == "" {
		return invalid("manifest.marker cannot be empty")
	}
	if c.World.DefaultName == "" {
		return invalid("world.default_name cannot be empty")
	}
	if c.World.Include == "" {
		return invalid("world.include cannot be empty")
	}

	// Directive prefix becomes part of "//<prefix>:remote"
	if c.Source.Directive == "" || strings.ContainsAny(c.Source.Directive, ": \t") {
		return invalid("source.directive must be a non-empty word, got %q", c.Source.Directive)
	}

	switch c.Source.Loader {
	case LoaderParser, LoaderPackages:
	default:
		return invalid("source.loader must be %q or %q, got %q", LoaderParser, LoaderPackages, c.Source.Loader)
	}

	switch c.Naming.Collisions {
	case CollisionsOverwrite, CollisionsReport, CollisionsReject:
	default:
		return invalid("naming.collisions must be %q, %q or %q, got %q",
			CollisionsOverwrite, CollisionsReport, CollisionsReject, c.Naming.Collisions)
	}

	switch c.Closure.Tracking {
	case TrackingTextual, TrackingStructural:
	default:
		return invalid("closure.tracking must be %q or %q, got %q", TrackingTextual, TrackingStructural, c.Closure.Tracking)
	}

	return nil
}

func invalid(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), errors.ErrInvalidConfig)
}
