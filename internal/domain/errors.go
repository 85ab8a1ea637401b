package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Specific errors wrap one of these so callers can branch with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("already exists")
)

var (
	ErrMissingField = fmt.Errorf("%w: required field missing", ErrValidation)
	ErrInvalidValue = fmt.Errorf("%w: invalid value", ErrValidation)

	ErrDuplicateWrestler     = fmt.Errorf("%w: a wrestler with that name already exists", ErrConflict)
	ErrDuplicateChampionship = fmt.Errorf("%w: a championship with that title already exists", ErrConflict)
	ErrDuplicateStable       = fmt.Errorf("%w: a stable with that name already exists", ErrConflict)

	ErrWrestlerNotFound     = fmt.Errorf("wrestler %w", ErrNotFound)
	ErrChampionshipNotFound = fmt.Errorf("championship %w", ErrNotFound)
	ErrStableNotFound       = fmt.Errorf("stable %w", ErrNotFound)
	ErrCardNotFound         = fmt.Errorf("card %w", ErrNotFound)
	ErrMatchNotFound        = fmt.Errorf("match %w", ErrNotFound)
	ErrSessionNotFound      = fmt.Errorf("session %w", ErrNotFound)
	ErrStyleNotFound        = fmt.Errorf("match style %w", ErrNotFound)

	ErrTooFewMembers    = fmt.Errorf("%w: a stable needs at least 2 members", ErrValidation)
	ErrIneligibleHolder = fmt.Errorf("%w: wrestler is not eligible for this championship", ErrValidation)

	ErrIllegalShape     = fmt.Errorf("%w: shape is not legal for that participant count", ErrValidation)
	ErrSlotOutOfRange   = fmt.Errorf("%w: slot index out of range", ErrValidation)
	ErrSlotFilled       = fmt.Errorf("%w: slot already filled", ErrValidation)
	ErrNotInPool        = fmt.Errorf("%w: wrestler is not available", ErrValidation)
	ErrEmptySlot        = fmt.Errorf("%w: every slot must be filled", ErrValidation)
	ErrMatchResolved    = fmt.Errorf("%w: match already has a result", ErrValidation)
	ErrUnknownWinner    = fmt.Errorf("%w: winner does not match any team", ErrValidation)
	ErrMalformedCard    = fmt.Errorf("%w: malformed card data", ErrValidation)
	ErrInvalidDirection = fmt.Errorf("%w: direction must be -1 or 1", ErrValidation)
)

// IsValidation reports whether err should be surfaced as a rejected user action.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrConflict)
}

// IsNotFound reports whether err refers to a since-deleted or unknown entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
