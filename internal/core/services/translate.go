package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/helpsync-cli/internal/core/domain"
	"github.com/custodia-labs/helpsync-cli/internal/logger"
)

// Translate registers every node's default-locale source files with the
// translation service and records the returned file ids in the sidecar.
// Files that already carry an id are skipped; the translation service
// itself writes per-locale variants back into the tree out of process.
func (r *Reconciler) Translate(ctx context.Context) (*domain.RunReport, error) {
	if r.translator == nil {
		return nil, fmt.Errorf("%w: translation service not configured", domain.ErrInvalidInput)
	}

	report := &domain.RunReport{}
	categories, err := r.tree.Load(ctx)
	if err != nil {
		return nil, err
	}

	var fatal error
	for _, category := range categories {
		category.Walk(func(node *domain.Node) bool {
			if fatal != nil {
				return false
			}
			fatal = r.registerNode(ctx, node, report)
			return fatal == nil
		})
		if fatal != nil {
			return nil, fatal
		}
	}
	return report, nil
}

// registerNode uploads the node's unregistered source files. Upload
// failures are per-node; only sidecar writes can abort the run.
func (r *Reconciler) registerNode(ctx context.Context, node *domain.Node, report *domain.RunReport) error {
	id := node.Identity.Clone()
	if id == nil {
		id = &domain.Identity{}
	}

	changed := false
	for part, relPath := range r.tree.ContentPaths(node) {
		if id.TranslationIDs[part] != "" {
			logger.Debug("%s %s already registered", node.Path, part)
			continue
		}
		fileID, err := r.translator.Register(ctx, relPath)
		if err != nil {
			report.Fail(node.Path, "register "+part, err)
			continue
		}
		logger.Info("registered %s as file %s", relPath, fileID)
		id.SetTranslationID(part, fileID)
		report.Translated++
		changed = true
	}

	if !changed {
		return nil
	}
	return r.saveIdentity(ctx, node, id)
}
