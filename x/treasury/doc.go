/*
Package treasury implements a capability controlled treasury.

A treasury pairs an external asset ledger and an external deny registry
with an authorization registry: a typed mapping from (role, holder
identity) to a capability instance. Exactly one admin is wired in at
bootstrap and the admin count never drops below one. Every privileged
action (minting, burning, deny list edits, whitelisting) is guarded by
its own role and re-validated against the registry at use time, so a
revoked role stops working with the very next operation.

All operations are check-first: every precondition is verified before
the first write, and callers are expected to run each operation inside
a store cache wrap that is committed on success only.
*/
package treasury
