/*
Package quorum implements N-of-M majority authorization.

A quorum is a registered voter set plus a store of pending proposals.
Any voter may register an arbitrary serializable payload as a proposal;
its identity is the hash of the payload type and bytes, so two
structurally identical proposals cannot be pending at the same time.
Voters approve by voting (idempotently), and once a strict majority has
approved, any current voter may execute the proposal. Execution removes
the pending state and yields a Confirmed token that can only be minted
here, making it evidence of majority approval.

The pending state has no deadline: a proposal that never reaches the
threshold simply stays pending. Vote retraction is declared but not
supported.
*/
package quorum
