package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrMalformedTree indicates a local descriptor exists but cannot be
	// parsed as the expected schema. Fatal for the run: a corrupt
	// ancestor invalidates descendant identity.
	ErrMalformedTree = errors.New("malformed tree")

	// ErrMissingIdentity indicates an operation required a remote ID the
	// node does not have (update before create). A classification bug,
	// fatal for the run.
	ErrMissingIdentity = errors.New("missing remote identity")

	// ErrRemoteOperation indicates a transport or authorization failure
	// from the remote service. Fatal to the affected node and its
	// dependents, not to the run.
	ErrRemoteOperation = errors.New("remote operation failed")

	// ErrParentUnavailable indicates a child operation was skipped
	// because its parent's create failed in the same run.
	ErrParentUnavailable = errors.New("parent identity unavailable")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)
