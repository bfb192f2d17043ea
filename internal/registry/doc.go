// Package registry owns the canonical collection of every piece registered
// in the session, approved and rejected alike, keyed by identifier with
// registration order preserved for listing. It does not place pieces into
// boxes — that is the system aggregate's job.
package registry
