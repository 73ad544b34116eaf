package driven

import (
	"context"

	"github.com/custodia-labs/helpsync-cli/internal/core/domain"
)

// TreeStore loads the local content tree into domain nodes and writes
// nodes back to disk. Implementations must tolerate structurally
// incomplete trees (missing descriptors are flagged on the node, not
// errors) but fail with domain.ErrMalformedTree when a descriptor
// exists and cannot be parsed.
type TreeStore interface {
	// Load walks the root and returns the top-level categories with
	// their sections and articles attached. Sidecar identities are
	// populated on every node; nil Identity means never synchronised.
	Load(ctx context.Context) ([]*domain.Node, error)

	// LoadPath loads the node at a root-relative path together with its
	// descendants. Returns domain.ErrNotFound if nothing exists there.
	LoadPath(ctx context.Context, path string) (*domain.Node, error)

	// WriteNode writes the node's descriptor and body files,
	// overwriting existing content. Used by import.
	WriteNode(ctx context.Context, node *domain.Node) error

	// WriteMissing writes only the node's files that are absent on
	// disk and returns their root-relative paths. Existing files are
	// never touched. Used by doctor and add.
	WriteMissing(ctx context.Context, node *domain.Node) ([]string, error)

	// RemoveNode deletes the node's files: the whole directory for a
	// container, the per-locale article files for an article. Ancestor
	// directories are never removed, even when left empty.
	RemoveNode(ctx context.Context, node *domain.Node) error

	// ContentPaths returns the node's default-locale source files as
	// root-relative paths keyed by part ("content" descriptor, "body"
	// for articles). Used when registering sources with the
	// translation service.
	ContentPaths(node *domain.Node) map[string]string
}

// IdentityStore persists per-node remote linkage in sidecar files
// colocated with the node's path. It never contacts the remote service.
type IdentityStore interface {
	// Get loads the sidecar for the node at the given root-relative
	// path. Returns (nil, nil) when no sidecar exists; that is the
	// normal state for a brand-new local node.
	Get(ctx context.Context, kind domain.Kind, path string) (*domain.Identity, error)

	// Save writes the sidecar atomically. Callers write immediately
	// after each individual remote operation succeeds, never batched,
	// trading an at-most-one duplicate risk window for lost linkage.
	Save(ctx context.Context, kind domain.Kind, path string, id *domain.Identity) error

	// Delete removes the node's sidecar. Missing sidecars are not an error.
	Delete(ctx context.Context, kind domain.Kind, path string) error

	// DeleteTree removes every sidecar at or below the given path, so a
	// cascaded remote delete leaves no orphaned identity records.
	DeleteTree(ctx context.Context, path string) error

	// Orphans walks the root for sidecars whose node files are gone:
	// nodes deleted locally whose remote copies are pending deletion.
	Orphans(ctx context.Context) ([]domain.Orphan, error)
}
