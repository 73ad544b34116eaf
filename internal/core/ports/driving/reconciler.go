package driving

import (
	"context"

	"github.com/custodia-labs/helpsync-cli/internal/core/domain"
)

// Reconciler is the diff-and-apply engine synchronising the local tree
// with the remote hierarchy. Every method performs one complete
// scan-diff-apply pass and returns a per-node report; node-level
// failures are collected in the report, only tree-level and local I/O
// failures are returned as errors.
type Reconciler interface {
	// Import replaces the local tree with the remote hierarchy.
	Import(ctx context.Context) (*domain.RunReport, error)

	// Export makes the remote hierarchy match the local tree:
	// creates top-down, updates on fingerprint mismatch, deletes for
	// orphaned sidecars. Runs a doctor pass first.
	Export(ctx context.Context) (*domain.RunReport, error)

	// Add synthesises missing local files under one path. No uploads.
	Add(ctx context.Context, path string) (*domain.RunReport, error)

	// Remove deletes one path locally, remotely and from the
	// translation service. Ancestor containers are never removed,
	// even when they become empty.
	Remove(ctx context.Context, path string) (*domain.RunReport, error)

	// Doctor repairs structurally incomplete nodes by synthesising
	// missing descriptors with defaults derived from the path. Never
	// overwrites existing files, never invents a remote ID.
	Doctor(ctx context.Context) (*domain.RunReport, error)

	// Translate registers default-locale source files with the
	// translation service and records the returned file ids.
	Translate(ctx context.Context) (*domain.RunReport, error)
}
