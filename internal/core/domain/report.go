package domain

import "fmt"

// NodeFailure records one node-level failure surfaced in the run summary.
type NodeFailure struct {
	// Path of the affected node.
	Path string

	// Op is the operation that was attempted ("create", "update", ...).
	Op string

	// Err is the underlying reason.
	Err error
}

// String renders the failure for the end-of-run summary.
func (f NodeFailure) String() string {
	return fmt.Sprintf("%s: %s: %v", f.Path, f.Op, f.Err)
}

// RunReport summarises a reconciliation run. A run always completes with
// either full success or a non-empty failure list; re-running is the
// recovery path because classification is idempotent.
type RunReport struct {
	// Created counts remote create operations performed.
	Created int

	// Updated counts remote update operations performed.
	Updated int

	// Deleted counts remote delete operations performed.
	Deleted int

	// Translated counts translation upserts and registrations performed.
	Translated int

	// Repaired counts local files synthesised by doctor or add.
	Repaired int

	// Imported counts nodes written locally during import.
	Imported int

	// Skipped counts nodes that were already in sync.
	Skipped int

	// Failures lists the nodes whose operations failed this run.
	Failures []NodeFailure
}

// Fail records a node-level failure.
func (r *RunReport) Fail(path, op string, err error) {
	r.Failures = append(r.Failures, NodeFailure{Path: path, Op: op, Err: err})
}

// Clean reports whether the run finished without node failures.
func (r *RunReport) Clean() bool {
	return len(r.Failures) == 0
}

// Mutations returns the number of remote mutations performed.
func (r *RunReport) Mutations() int {
	return r.Created + r.Updated + r.Deleted + r.Translated
}
