package treasury

import (
	"github.com/stronghold-labs/stronghold/errors"
)

// The treasury extension reserves error codes 1100-1109.
var (
	// ErrDuplicateRole is returned when the target already holds a
	// live capability of the same role.
	ErrDuplicateRole = errors.Register(1100, "duplicate role")

	// ErrMissingRole is returned when the target does not hold a
	// capability of the requested role.
	ErrMissingRole = errors.Register(1101, "missing role")

	// ErrLastAdmin is returned on an attempt to remove the only
	// remaining admin.
	ErrLastAdmin = errors.Register(1102, "cannot remove the last admin")

	// ErrLimitExceeded is returned when a mint request is larger
	// than what remains of the allowance for the current epoch.
	ErrLimitExceeded = errors.Register(1103, "mint limit exceeded")
)
