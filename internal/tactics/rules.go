package tactics

import (
	"fmt"
	"math"
)

// Rules holds the ranges the engine draws unit stats and turn steps from.
// All ranges are inclusive.
type Rules struct {
	MinHP    int
	MaxHP    int
	MinATK   int
	MaxATK   int
	MinSteps int
	MaxSteps int
}

// DefaultRules returns the standard ranges: hp 500..1000, atk 100..600,
// one or two steps per turn.
func DefaultRules() Rules {
	return Rules{
		MinHP:    500,
		MaxHP:    1000,
		MinATK:   100,
		MaxATK:   600,
		MinSteps: 1,
		MaxSteps: 2,
	}
}

// Validate reports whether the ranges can be drawn from.
func (r Rules) Validate() error {
	switch {
	case r.MinHP <= 0:
		return fmt.Errorf("%w: min hp must be positive, got %d", ErrInvalidArgument, r.MinHP)
	case r.MaxHP < r.MinHP:
		return fmt.Errorf("%w: hp range [%d, %d] is empty", ErrInvalidArgument, r.MinHP, r.MaxHP)
	case tooWide(r.MinHP, r.MaxHP):
		return fmt.Errorf("%w: hp range [%d, %d] is too wide", ErrInvalidArgument, r.MinHP, r.MaxHP)
	case r.MinATK < 0:
		return fmt.Errorf("%w: min atk must not be negative, got %d", ErrInvalidArgument, r.MinATK)
	case r.MaxATK < r.MinATK:
		return fmt.Errorf("%w: atk range [%d, %d] is empty", ErrInvalidArgument, r.MinATK, r.MaxATK)
	case tooWide(r.MinATK, r.MaxATK):
		return fmt.Errorf("%w: atk range [%d, %d] is too wide", ErrInvalidArgument, r.MinATK, r.MaxATK)
	case r.MinSteps < 1:
		return fmt.Errorf("%w: min steps must be at least 1, got %d", ErrInvalidArgument, r.MinSteps)
	case r.MaxSteps < r.MinSteps:
		return fmt.Errorf("%w: steps range [%d, %d] is empty", ErrInvalidArgument, r.MinSteps, r.MaxSteps)
	case tooWide(r.MinSteps, r.MaxSteps):
		return fmt.Errorf("%w: steps range [%d, %d] is too wide", ErrInvalidArgument, r.MinSteps, r.MaxSteps)
	}
	return nil
}

// tooWide reports whether the inclusive width of [lo, hi] overflows int.
// Callers check lo >= 0 and hi >= lo first.
func tooWide(lo, hi int) bool {
	return hi-lo >= math.MaxInt
}
