// Package auth implements session authentication for HomeLink Core.
//
// The session authority issues signed JWT session tokens (HS256, 7-day
// default lifetime), verifies validity and freshness, and maintains the
// in-memory revocation set that logout feeds. User records live in SQLite
// behind the UserRepository interface; passwords are bcrypt digests.
//
// # Known limitations (accepted trade-offs)
//
// The revocation set is not persisted: a process restart un-revokes every
// token revoked since the last start, and the set grows without eviction
// for the life of the process. Both are deliberate simplifications for a
// single-home deployment, documented here rather than silently fixed.
package auth
