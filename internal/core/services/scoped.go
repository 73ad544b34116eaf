package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/helpsync-cli/internal/core/domain"
	"github.com/custodia-labs/helpsync-cli/internal/logger"
)

// Add synthesises the missing local files for one root-relative path:
// category, category/section or category/section/article. Files that
// already exist are left untouched and nothing is uploaded.
func (r *Reconciler) Add(ctx context.Context, path string) (*domain.RunReport, error) {
	report := &domain.RunReport{}

	segments := splitPath(path)
	if len(segments) == 0 || len(segments) > 3 {
		return nil, fmt.Errorf("%w: path %q must be category[/section[/article]]", domain.ErrInvalidInput, path)
	}

	kinds := []domain.Kind{domain.KindCategory, domain.KindSection, domain.KindArticle}
	var parent *domain.Node
	for depth, segment := range segments {
		if kinds[depth] == domain.KindArticle {
			segment = strings.TrimSuffix(segment, ".md")
		}
		node := &domain.Node{
			Kind: kinds[depth],
			Name: segment,
			Path: segment,
		}
		if parent != nil {
			node.Path = domain.JoinPath(parent.Path, segment)
			node.Parent = parent
		}
		synthesizeDefaults(node)
		written, err := r.tree.WriteMissing(ctx, node)
		if err != nil {
			return nil, fmt.Errorf("add %s: %w", node.Path, err)
		}
		for _, p := range written {
			logger.Info("created %s", p)
		}
		report.Repaired += len(written)
		parent = node
	}
	return report, nil
}

// Remove deletes one path from the local tree, the remote hierarchy and
// the translation service. The remote delete cascades to descendants;
// locally every file and sidecar under the path is removed. Ancestor
// containers are never deleted, even when the removal leaves them
// empty: that is the containment boundary of the command.
func (r *Reconciler) Remove(ctx context.Context, path string) (*domain.RunReport, error) {
	report := &domain.RunReport{}

	node, err := r.tree.LoadPath(ctx, path)
	if err != nil {
		return nil, err
	}

	if node.RemoteID() != 0 {
		logger.Info("deleting remote %s %s", node.Kind, node.Path)
		if err := r.remote.Delete(ctx, node.Kind, node.RemoteID()); err != nil {
			// Local files stay so the removal can be retried.
			report.Fail(node.Path, "delete", err)
			return report, nil
		}
		report.Deleted++
	}

	if r.translator != nil {
		node.Walk(func(n *domain.Node) bool {
			if n.Identity == nil {
				return true
			}
			for part, fileID := range n.Identity.TranslationIDs {
				if err := r.translator.Delete(ctx, fileID); err != nil {
					report.Fail(n.Path, "delete translation "+part, err)
				}
			}
			return true
		})
	}

	if err := r.tree.RemoveNode(ctx, node); err != nil {
		return nil, fmt.Errorf("remove %s: %w", node.Path, err)
	}
	if node.Kind.Container() {
		if err := r.ids.DeleteTree(ctx, node.Path); err != nil {
			return nil, fmt.Errorf("remove sidecars under %s: %w", node.Path, err)
		}
	} else if err := r.ids.Delete(ctx, node.Kind, node.Path); err != nil {
		return nil, fmt.Errorf("remove sidecar for %s: %w", node.Path, err)
	}
	return report, nil
}

// splitPath splits a root-relative slash path into clean segments.
func splitPath(path string) []string {
	var segments []string
	for _, segment := range strings.Split(strings.Trim(strings.ReplaceAll(path, "\\", "/"), "/"), "/") {
		if segment != "" && segment != "." {
			segments = append(segments, segment)
		}
	}
	return segments
}
