// Package pipeline fans the flare catalog out over a worker pool, runs the
// per-flare matcher, and hands results to a visit callback.
//
// The only contract to implement is Matcher (MatchOne). This keeps the
// pipeline swappable and testable.
package pipeline
