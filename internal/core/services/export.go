package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/helpsync-cli/internal/core/domain"
	"github.com/custodia-labs/helpsync-cli/internal/logger"
)

// Export makes the remote hierarchy match the local tree. The pass runs
// in dependency order: a doctor repair first, then deletions for
// locally-removed nodes, then creates and updates top-down so every
// child create observes its parent's remote ID. The sidecar state is
// trusted as the last-known-good remote snapshot; the remote tree is
// not re-fetched.
func (r *Reconciler) Export(ctx context.Context) (*domain.RunReport, error) {
	report := &domain.RunReport{}

	logger.Section("repair")
	if err := r.repair(ctx, report); err != nil {
		return nil, err
	}

	logger.Section("deletions")
	orphans, err := r.ids.Orphans(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan for deleted nodes: %w", err)
	}
	for _, orphan := range orphans {
		if err := r.deleteOrphan(ctx, orphan, report); err != nil {
			return nil, err
		}
	}

	logger.Section("push")
	categories, err := r.tree.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, category := range categories {
		if err := r.exportNode(ctx, category, report); err != nil {
			return nil, err
		}
	}
	return report, nil
}

// exportNode pushes one node and recurses into its children. When a
// container's create fails the children cannot proceed without the
// parent identity; they are reported as skipped failures for this run.
func (r *Reconciler) exportNode(ctx context.Context, node *domain.Node, report *domain.RunReport) error {
	if err := r.pushNode(ctx, node, report); err != nil {
		return err
	}

	if node.Kind.Container() && node.RemoteID() == 0 {
		for _, child := range node.Children {
			child.Walk(func(n *domain.Node) bool {
				report.Fail(n.Path, "create", domain.ErrParentUnavailable)
				return true
			})
		}
		return nil
	}

	for _, child := range node.Children {
		if err := r.exportNode(ctx, child, report); err != nil {
			return err
		}
	}
	return nil
}

// pushNode applies the create or update for the node's default-locale
// variant, then the independent per-locale translation upserts. Remote
// failures are recorded in the report; only sidecar I/O errors are
// returned and abort the run.
func (r *Reconciler) pushNode(ctx context.Context, node *domain.Node, report *domain.RunReport) error {
	def, ok := node.Default()
	if !ok {
		report.Fail(node.Path, "classify", fmt.Errorf("%w: no %s variant", domain.ErrInvalidInput, domain.DefaultLocale))
		return nil
	}

	pushed := false
	switch r.classify(node) {
	case actionCreate:
		parentID := int64(0)
		if node.Parent != nil {
			parentID = node.Parent.RemoteID()
			if parentID == 0 {
				report.Fail(node.Path, "create", domain.ErrParentUnavailable)
				return nil
			}
		}
		logger.Info("creating %s %s", node.Kind, node.Path)
		remote, err := r.remote.Create(ctx, node.Kind, parentID, r.payload(node, def))
		if err != nil {
			report.Fail(node.Path, "create", err)
			return nil
		}
		id := node.Identity.Clone()
		if id == nil {
			id = &domain.Identity{}
		}
		id.RemoteID = remote.ID
		id.Meta = remote.Raw
		id.SetHash(domain.DefaultLocale, def.Fingerprint())
		if err := r.saveIdentity(ctx, node, id); err != nil {
			return err
		}
		report.Created++
		pushed = true

	case actionUpdate:
		if node.RemoteID() == 0 {
			return fmt.Errorf("%w: update of %s classified without remote ID", domain.ErrMissingIdentity, node.Path)
		}
		logger.Info("updating %s %s", node.Kind, node.Path)
		remote, err := r.remote.Update(ctx, node.Kind, node.RemoteID(), r.payload(node, def))
		if err != nil {
			report.Fail(node.Path, "update", err)
			return nil
		}
		id := node.Identity.Clone()
		if remote != nil && remote.Raw != nil {
			id.Meta = remote.Raw
		}
		id.SetHash(domain.DefaultLocale, def.Fingerprint())
		if err := r.saveIdentity(ctx, node, id); err != nil {
			return err
		}
		report.Updated++
		pushed = true

	case actionSkip:
		logger.Debug("nothing changed for %s", node.Path)
		report.Skipped++
	}

	if pushed && node.Kind == domain.KindArticle && r.settings.DisableArticleComments {
		if err := r.remote.SetCommentsDisabled(ctx, node.RemoteID(), true); err != nil {
			report.Fail(node.Path, "disable comments", err)
		}
	}

	return r.pushTranslations(ctx, node, report)
}

// pushTranslations upserts the non-default variants whose own hashes
// diverged. Each locale has an independent fingerprint, so partial
// translation completeness never blocks the default-locale sync.
func (r *Reconciler) pushTranslations(ctx context.Context, node *domain.Node, report *domain.RunReport) error {
	// A failed create leaves no remote node to attach translations to;
	// the next run retries both.
	if node.RemoteID() == 0 {
		return nil
	}
	for _, locale := range extraLocales(node) {
		variant := node.Variants[locale]
		if variant.Fingerprint() == node.SyncedHash(locale) {
			logger.Debug("nothing changed for %s locale %s", node.Path, locale)
			continue
		}
		logger.Info("upserting %s translation for %s", locale, node.Path)
		err := r.remote.UpsertTranslation(ctx, node.Kind, node.RemoteID(),
			domain.ToRemoteLocale(locale), r.translationPayload(node, variant))
		if err != nil {
			report.Fail(node.Path, "translate "+locale, err)
			continue
		}
		id := node.Identity.Clone()
		id.SetHash(locale, variant.Fingerprint())
		if err := r.saveIdentity(ctx, node, id); err != nil {
			return err
		}
		report.Translated++
	}
	return nil
}

// deleteOrphan removes the remote copy of a locally-deleted node and
// then its sidecar, in that order: a failed remote delete leaves the
// sidecar in place so the deletion is retried next run.
func (r *Reconciler) deleteOrphan(ctx context.Context, orphan domain.Orphan, report *domain.RunReport) error {
	if orphan.Identity != nil && orphan.Identity.RemoteID != 0 {
		logger.Info("deleting remote %s for %s", orphan.Kind, orphan.Path)
		if err := r.remote.Delete(ctx, orphan.Kind, orphan.Identity.RemoteID); err != nil {
			report.Fail(orphan.Path, "delete", err)
			return nil
		}
		report.Deleted++
	}

	if r.translator != nil && orphan.Identity != nil {
		for part, fileID := range orphan.Identity.TranslationIDs {
			if err := r.translator.Delete(ctx, fileID); err != nil {
				report.Fail(orphan.Path, "delete translation "+part, err)
			}
		}
	}

	// An article is orphaned once its body is gone; its descriptor may
	// still be on disk and would otherwise be stranded forever.
	segments := splitPath(orphan.Path)
	leftover := &domain.Node{Kind: orphan.Kind, Name: segments[len(segments)-1], Path: orphan.Path}
	if err := r.tree.RemoveNode(ctx, leftover); err != nil {
		return fmt.Errorf("remove local files for %s: %w", orphan.Path, err)
	}

	if err := r.ids.Delete(ctx, orphan.Kind, orphan.Path); err != nil {
		return fmt.Errorf("remove sidecar for %s: %w", orphan.Path, err)
	}
	return nil
}
