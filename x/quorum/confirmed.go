package quorum

import (
	"github.com/stronghold-labs/stronghold"
	"github.com/stronghold-labs/stronghold/errors"
)

// Confirmed witnesses a successful execution. Only Execute mints one,
// so holding a Confirmed proves the wrapped payload passed a majority
// vote. All fields are unexported to keep the proof unforgeable by
// construction.
type Confirmed struct {
	quorumID   stronghold.Identity
	proposalID []byte
	path       string
	payload    []byte
}

func newConfirmed(quorumID stronghold.Identity, proposalID []byte, ballot *Ballot) *Confirmed {
	return &Confirmed{
		quorumID:   quorumID.Clone(),
		proposalID: append([]byte(nil), proposalID...),
		path:       ballot.Path,
		payload:    append([]byte(nil), ballot.Payload...),
	}
}

// QuorumID returns the identity of the aggregate that approved the
// proposal.
func (c *Confirmed) QuorumID() stronghold.Identity {
	return c.quorumID.Clone()
}

// ProposalID returns the content-addressed id of the executed
// proposal.
func (c *Confirmed) ProposalID() []byte {
	return append([]byte(nil), c.proposalID...)
}

// Path returns the routing path of the approved payload.
func (c *Confirmed) Path() string {
	return c.path
}

// Payload returns the serialized approved payload.
func (c *Confirmed) Payload() []byte {
	return append([]byte(nil), c.payload...)
}

// Unpack deserializes the approved payload into dest. It fails with
// ErrType when dest does not route under the proposal's path.
func (c *Confirmed) Unpack(dest Payload) error {
	if dest.Path() != c.path {
		return errors.Wrapf(errors.ErrType, "payload path %q, want %q", dest.Path(), c.path)
	}
	if err := dest.Unmarshal(c.payload); err != nil {
		return errors.Wrap(err, "unmarshal payload")
	}
	return nil
}
