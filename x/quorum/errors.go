package quorum

import (
	"github.com/stronghold-labs/stronghold/errors"
)

// The quorum extension reserves error codes 1200-1209.
var (
	// ErrNotVoter is returned when the caller is not a member of
	// the voter set.
	ErrNotVoter = errors.Register(1200, "not a voter")

	// ErrUnknownProposal is returned when no proposal with the
	// given id is pending.
	ErrUnknownProposal = errors.Register(1201, "unknown proposal")

	// ErrDuplicateProposal is returned when a structurally
	// identical proposal is already pending.
	ErrDuplicateProposal = errors.Register(1202, "proposal already pending")

	// ErrNoQuorum is returned when execution is attempted before a
	// strict majority has approved.
	ErrNoQuorum = errors.Register(1203, "quorum not reached")
)
