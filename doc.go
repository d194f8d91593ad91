/*
Package stronghold defines the common interfaces that tie the treasury
and quorum extensions together: identities and the conditions they are
derived from, the key-value store family used for all state access, and
the context helpers that operations read host-provided information
from.

Extensions live under x/ and depend only on this package, errors/,
store/ and orm/. The host is expected to serialize access to a single
aggregate: every operation is written check-first so that a failed
precondition leaves the backing store untouched, and the cache-wrap
store makes a whole operation commit or vanish as one unit.
*/
package stronghold
