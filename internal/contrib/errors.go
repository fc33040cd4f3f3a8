package contrib

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidContribution is returned when a contribution is missing
	// required fields or has the wrong shape for its extension point.
	ErrInvalidContribution = errors.New("invalid contribution")
	// ErrInvalidCategory is returned for a menu category outside the fixed set.
	ErrInvalidCategory = errors.New("invalid menu category")
)

func invalid(kind, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidContribution, kind, reason)
}
