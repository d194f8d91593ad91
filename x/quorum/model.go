package quorum

import (
	"crypto/sha256"
	"encoding/json"

	"github.com/stronghold-labs/stronghold"
	"github.com/stronghold-labs/stronghold/errors"
	"github.com/stronghold-labs/stronghold/orm"
)

// To avoid burning CPU, this is the maximum number of members allowed
// in a single voter set.
const maxVoters = 100

// Payload is any value that can be put up for collective
// authorization. Path is a constant type descriptor; together with the
// marshaled bytes it determines the proposal identity, so Marshal must
// be deterministic for a given value.
type Payload interface {
	stronghold.Persistent
	Path() string
}

// ProposalID computes the content address of a payload: the hash over
// its type descriptor and serialized bytes. Structurally identical
// payloads yield an identical id.
func ProposalID(payload Payload) ([]byte, error) {
	raw, err := payload.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal payload")
	}
	h := sha256.New()
	h.Write([]byte(payload.Path()))
	h.Write([]byte{0})
	h.Write(raw)
	return h.Sum(nil), nil
}

// Quorum is the persisted aggregate: its own identity and the current
// voter set. The voter set is meant to change only through the
// quorum's own proposal mechanism; applying a VoterSetUpdate payload is
// not wired to execution yet.
type Quorum struct {
	ID     stronghold.Identity   `json:"id"`
	Voters []stronghold.Identity `json:"voters"`
}

var _ orm.Model = (*Quorum)(nil)

func (q *Quorum) Marshal() ([]byte, error) {
	return json.Marshal(q)
}

func (q *Quorum) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, q)
}

func (q *Quorum) Validate() error {
	if err := q.ID.Validate(); err != nil {
		return errors.Field("ID", err, "invalid quorum identity")
	}
	return validateVoters(q.Voters)
}

func validateVoters(voters []stronghold.Identity) error {
	switch n := len(voters); {
	case n == 0:
		return errors.Field("Voters", errors.ErrEmpty, "no voters")
	case n > maxVoters:
		return errors.Field("Voters", errors.ErrInput, "too many voters")
	}
	index := make(map[string]struct{}, len(voters))
	for _, v := range voters {
		if err := v.Validate(); err != nil {
			return errors.Field("Voters", err, "voter %s", v)
		}
		if _, ok := index[string(v)]; ok {
			return errors.Field("Voters", errors.ErrDuplicate, "voter %s", v)
		}
		index[string(v)] = struct{}{}
	}
	return nil
}

// Contains reports whether the identity is a current voter.
func (q *Quorum) Contains(id stronghold.Identity) bool {
	for _, v := range q.Voters {
		if v.Equals(id) {
			return true
		}
	}
	return false
}

// Threshold returns the strict majority bound: more than half of the
// current voter set.
func (q *Quorum) Threshold() int {
	return len(q.Voters)/2 + 1
}

// Ballot is one pending proposal: the payload held for later
// execution and the set of voters that approved so far.
type Ballot struct {
	Path      string                `json:"path"`
	Payload   []byte                `json:"payload"`
	Approvals []stronghold.Identity `json:"approvals"`
}

var _ orm.Model = (*Ballot)(nil)

func (b *Ballot) Marshal() ([]byte, error) {
	return json.Marshal(b)
}

func (b *Ballot) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, b)
}

func (b *Ballot) Validate() error {
	if b.Path == "" {
		return errors.Field("Path", errors.ErrEmpty, "missing payload path")
	}
	if len(b.Payload) == 0 {
		return errors.Field("Payload", errors.ErrEmpty, "missing payload")
	}
	if len(b.Approvals) == 0 {
		return errors.Field("Approvals", errors.ErrEmpty, "a ballot always carries the proposer approval")
	}
	for _, a := range b.Approvals {
		if err := a.Validate(); err != nil {
			return errors.Field("Approvals", err, "approval %s", a)
		}
	}
	return nil
}

// HasApproved reports whether the identity already voted for this
// ballot.
func (b *Ballot) HasApproved(id stronghold.Identity) bool {
	for _, a := range b.Approvals {
		if a.Equals(id) {
			return true
		}
	}
	return false
}

// Approve registers a vote. Repeated votes from the same identity are
// a no-op; the reported value tells whether the set changed.
func (b *Ballot) Approve(id stronghold.Identity) bool {
	if b.HasApproved(id) {
		return false
	}
	b.Approvals = append(b.Approvals, id.Clone())
	return true
}

// VoterSetUpdate is the payload for changing the voter set through the
// quorum itself. Executing it yields a Confirmed token; feeding that
// token back into the quorum state is left to the host and not wired
// here.
type VoterSetUpdate struct {
	Voters []stronghold.Identity `json:"voters"`
}

var _ Payload = (*VoterSetUpdate)(nil)

func (v *VoterSetUpdate) Path() string {
	return "quorum/update_voters"
}

func (v *VoterSetUpdate) Marshal() ([]byte, error) {
	return json.Marshal(v)
}

func (v *VoterSetUpdate) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, v)
}

func (v *VoterSetUpdate) Validate() error {
	return validateVoters(v.Voters)
}
