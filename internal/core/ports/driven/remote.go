package driven

import (
	"context"

	"github.com/custodia-labs/helpsync-cli/internal/core/domain"
)

// RemoteStore is the help-center hierarchy the reconciler syncs against.
// Transport and authorization failures are both returned wrapped in
// domain.ErrRemoteOperation; the reconciler treats them identically as
// fatal to the node, not to the run.
type RemoteStore interface {
	// ListChildren lists nodes of the given kind under a parent.
	// parentID is ignored for categories, which live at the root.
	ListChildren(ctx context.Context, kind domain.Kind, parentID int64) ([]domain.RemoteNode, error)

	// Create creates a node and returns it with its assigned ID.
	// parentID is required for sections and articles.
	Create(ctx context.Context, kind domain.Kind, parentID int64, payload domain.NodePayload) (*domain.RemoteNode, error)

	// Update replaces the default-locale title and body of a node.
	Update(ctx context.Context, kind domain.Kind, id int64, payload domain.NodePayload) (*domain.RemoteNode, error)

	// Delete removes a node. Container deletion cascades remotely;
	// callers issue a single delete on the container.
	Delete(ctx context.Context, kind domain.Kind, id int64) error

	// ListTranslations returns existing translations keyed by remote
	// lowercase locale.
	ListTranslations(ctx context.Context, kind domain.Kind, id int64) (map[string]domain.TranslationPayload, error)

	// UpsertTranslation creates or updates one locale's translation.
	UpsertTranslation(ctx context.Context, kind domain.Kind, id int64, locale string, t domain.TranslationPayload) error

	// SetCommentsDisabled toggles comments on an article.
	SetCommentsDisabled(ctx context.Context, id int64, disabled bool) error
}

// TranslationUploader registers default-locale source files with the
// translation service. The service then writes per-locale variants back
// into the same local tree out of process; the reconciler only ever
// re-scans, it never calls the service synchronously during export.
type TranslationUploader interface {
	// Register uploads a source file and returns its file id.
	Register(ctx context.Context, relPath string) (string, error)

	// Update re-uploads the source content for an existing file id.
	Update(ctx context.Context, fileID, relPath string) error

	// Delete removes a registered file.
	Delete(ctx context.Context, fileID string) error
}
