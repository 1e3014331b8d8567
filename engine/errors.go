package engine

import "errors"

// Sentinel errors surfaced to the hosting service. Every failure is a local
// validation failure: an operation either fully succeeds or leaves the
// bracket untouched.
var (
	ErrInsufficientTeams  = errors.New("at least two teams are required")
	ErrInvalidSeed        = errors.New("manual seeds must be a permutation of 1..N")
	ErrNodeNotReady       = errors.New("node is not ready to accept a result")
	ErrInvalidWinner      = errors.New("winner is not a resolved participant of this node")
	ErrNoResultToUndo     = errors.New("node has no submitted result to undo")
	ErrNodeNotFound       = errors.New("bracket node not found")
	ErrRandSourceRequired = errors.New("random seeding requires an injected rand source")
	ErrUnsupportedFormat  = errors.New("unsupported bracket format")
	ErrUnsupportedSeeding = errors.New("unsupported seeding method")
)
