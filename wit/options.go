// Package wit translates a syntax tree into WIT interface and world text.
package wit

import "github.com/teranos/witgen/errors"

// CollisionPolicy decides what happens when two declarations normalize to
// the same name.
type CollisionPolicy int

const (
	// CollisionOverwrite keeps the declaration seen last in source order
	CollisionOverwrite CollisionPolicy = iota
	// CollisionReport overwrites and logs a warning
	CollisionReport
	// CollisionReject fails with ErrDeclarationCollision
	CollisionReject
)

func (p CollisionPolicy) String() string {
	switch p {
	case CollisionReport:
		return "report"
	case CollisionReject:
		return "reject"
	default:
		return "overwrite"
	}
}

// ParseCollisionPolicy parses a policy name as used in configuration.
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch s {
	case "", "overwrite":
		return CollisionOverwrite, nil
	case "report":
		return CollisionReport, nil
	case "reject":
		return CollisionReject, nil
	}
	return 0, errors.Mark(errors.Newf("unknown collision policy %q", s), errors.ErrInvalidConfig)
}

// Tracking selects how the type closure discovers dependencies between
// declarations.
type Tracking int

const (
	// TrackingTextual treats every declaration whose name occurs in the
	// rendered text of another as its dependency. Over-inclusive: a name that
	// is a substring of unrelated text also matches.
	TrackingTextual Tracking = iota
	// TrackingStructural follows the custom types each declaration's members
	// actually reference.
	TrackingStructural
)

func (t Tracking) String() string {
	if t == TrackingStructural {
		return "structural"
	}
	return "textual"
}

// ParseTracking parses a tracking mode name as used in configuration.
func ParseTracking(s string) (Tracking, error) {
	switch s {
	case "", "textual":
		return TrackingTextual, nil
	case "structural":
		return TrackingStructural, nil
	}
	return 0, errors.Mark(errors.Newf("unknown closure tracking %q", s), errors.ErrInvalidConfig)
}

// Options configures declaration collection and interface generation.
type Options struct {
	Collisions CollisionPolicy
	Tracking   Tracking
}
