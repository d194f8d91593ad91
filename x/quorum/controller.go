package quorum

import (
	"crypto/sha256"

	"github.com/stronghold-labs/stronghold"
	"github.com/stronghold-labs/stronghold/errors"
	"github.com/stronghold-labs/stronghold/orm"
	"github.com/stronghold-labs/stronghold/x"
)

const (
	// stateBucketName is where we store the quorum aggregate.
	stateBucketName = "quorum"
	// ballotBucketName is where we store the pending proposals.
	ballotBucketName = "ballots"
)

// stateKey is the singleton key of the quorum aggregate.
var stateKey = []byte("state")

// Engine runs the proposal state machine for one quorum aggregate. As
// with the treasury, the host serializes access; run each operation in
// a cache wrap committed on success.
type Engine struct {
	auth    x.Authenticator
	state   orm.Bucket
	ballots orm.Bucket
}

// NewEngine wires a quorum engine.
func NewEngine(auth x.Authenticator) *Engine {
	return &Engine{
		auth:    auth,
		state:   orm.NewBucket(stateBucketName),
		ballots: orm.NewBucket(ballotBucketName),
	}
}

// Initialize registers the voter set. The quorum identity is derived
// from the genesis voters and stays fixed for the aggregate's open
// lifetime. It fails with ErrDuplicate when already initialized.
func (e *Engine) Initialize(db stronghold.KVStore, voters []stronghold.Identity) error {
	switch ok, err := e.state.Has(db, stateKey); {
	case err != nil:
		return errors.Wrap(err, "state lookup")
	case ok:
		return errors.Wrap(errors.ErrDuplicate, "quorum already initialized")
	}
	if err := validateVoters(voters); err != nil {
		return err
	}

	q := Quorum{
		ID:     quorumIdentity(voters),
		Voters: voters,
	}
	return e.state.Put(db, stateKey, &q)
}

// quorumIdentity derives the aggregate's own identity from the genesis
// voter set.
func quorumIdentity(voters []stronghold.Identity) stronghold.Identity {
	h := sha256.New()
	for _, v := range voters {
		h.Write(v)
	}
	return stronghold.NewCondition("quorum", "seat", h.Sum(nil)).Identity()
}

// Propose registers the payload as a pending proposal and returns its
// content-addressed id. The proposer is auto-counted as the first
// vote. It fails with ErrNotVoter when the caller is not a current
// voter and with ErrDuplicateProposal when a structurally identical
// proposal is already pending.
func (e *Engine) Propose(ctx stronghold.Context, db stronghold.KVStore, caller stronghold.Identity, payload Payload) ([]byte, error) {
	if _, err := e.authorizeVoter(ctx, db, caller); err != nil {
		return nil, err
	}

	id, err := ProposalID(payload)
	if err != nil {
		return nil, err
	}
	switch ok, err := e.ballots.Has(db, id); {
	case err != nil:
		return nil, errors.Wrap(err, "ballot lookup")
	case ok:
		return nil, errors.Wrapf(ErrDuplicateProposal, "id %X", id)
	}

	raw, err := payload.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal payload")
	}
	ballot := Ballot{
		Path:      payload.Path(),
		Payload:   raw,
		Approvals: []stronghold.Identity{caller.Clone()},
	}
	if err := e.ballots.Put(db, id, &ballot); err != nil {
		return nil, err
	}
	return id, nil
}

// Vote adds the caller's approval to the pending proposal. Voting
// twice is a no-op. It fails with ErrNotVoter or ErrUnknownProposal.
func (e *Engine) Vote(ctx stronghold.Context, db stronghold.KVStore, caller stronghold.Identity, proposalID []byte) error {
	if _, err := e.authorizeVoter(ctx, db, caller); err != nil {
		return err
	}
	ballot, err := e.loadBallot(db, proposalID)
	if err != nil {
		return err
	}
	if !ballot.Approve(caller) {
		// idempotent: the approval set did not change
		return nil
	}
	return e.ballots.Put(db, proposalID, ballot)
}

// Execute finishes the proposal once a strict majority of the current
// voter set has approved. Any current voter may trigger execution, not
// only those who approved. Approvals are counted as recorded: a vote
// by a since-removed voter still counts. On success the pending state
// is removed and the only Confirmed token for this execution is
// returned.
func (e *Engine) Execute(ctx stronghold.Context, db stronghold.KVStore, caller stronghold.Identity, proposalID []byte) (*Confirmed, error) {
	q, err := e.authorizeVoter(ctx, db, caller)
	if err != nil {
		return nil, err
	}
	ballot, err := e.loadBallot(db, proposalID)
	if err != nil {
		return nil, err
	}

	if got, want := len(ballot.Approvals), q.Threshold(); got < want {
		return nil, errors.Wrapf(ErrNoQuorum, "%d of %d approvals", got, want)
	}

	if err := e.ballots.Delete(db, proposalID); err != nil {
		return nil, errors.Wrap(err, "remove ballot")
	}
	return newConfirmed(q.ID, proposalID, ballot), nil
}

// Revoke is the declared vote retraction transition. It always aborts:
// retraction is not part of the supported state machine.
func (e *Engine) Revoke(ctx stronghold.Context, db stronghold.KVStore, caller stronghold.Identity, proposalID []byte) error {
	return errors.Wrap(errors.ErrNotImplemented, "vote retraction")
}

// Approvals returns the identities that approved the pending proposal
// so far.
func (e *Engine) Approvals(db stronghold.ReadOnlyKVStore, proposalID []byte) ([]stronghold.Identity, error) {
	ballot, err := e.loadBallot(db, proposalID)
	if err != nil {
		return nil, err
	}
	return ballot.Approvals, nil
}

// Voters returns the current quorum aggregate.
func (e *Engine) Voters(db stronghold.ReadOnlyKVStore) (*Quorum, error) {
	return e.loadState(db)
}

func (e *Engine) loadState(db stronghold.ReadOnlyKVStore) (*Quorum, error) {
	var q Quorum
	if err := e.state.One(db, stateKey, &q); err != nil {
		return nil, errors.Wrap(err, "quorum not initialized")
	}
	return &q, nil
}

func (e *Engine) loadBallot(db stronghold.ReadOnlyKVStore, proposalID []byte) (*Ballot, error) {
	var ballot Ballot
	err := e.ballots.One(db, proposalID, &ballot)
	switch {
	case err == nil:
		return &ballot, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrUnknownProposal, "id %X", proposalID)
	default:
		return nil, errors.Wrap(err, "ballot lookup")
	}
}

// authorizeVoter verifies that the caller authenticates as the given
// identity and is a member of the current voter set.
func (e *Engine) authorizeVoter(ctx stronghold.Context, db stronghold.ReadOnlyKVStore, caller stronghold.Identity) (*Quorum, error) {
	q, err := e.loadState(db)
	if err != nil {
		return nil, err
	}
	if !e.auth.HasIdentity(ctx, caller) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "%s signature required", caller)
	}
	if !q.Contains(caller) {
		return nil, errors.Wrapf(ErrNotVoter, "%s", caller)
	}
	return q, nil
}
