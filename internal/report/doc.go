// Package report derives aggregate session statistics from registry and box
// state: counts and percentages, rejection breakdowns by reason, storage
// summary, and quality statistics over approved pieces. Building a snapshot
// has no side effects and is idempotent for unchanged inputs.
package report
