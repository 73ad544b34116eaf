package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/helpsync-cli/internal/core/domain"
	"github.com/custodia-labs/helpsync-cli/internal/logger"
)

// Doctor repairs structurally incomplete nodes: every missing
// descriptor is synthesised with defaults derived from the path
// (directory name as title, empty description). Existing files are
// never overwritten and no remote ID is ever invented, so a doctor run
// on a complete tree performs zero file writes.
func (r *Reconciler) Doctor(ctx context.Context) (*domain.RunReport, error) {
	report := &domain.RunReport{}
	if err := r.repair(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// repair is the doctor pass, shared with Export. Local I/O failures are
// fatal; nothing else here can fail per-node.
func (r *Reconciler) repair(ctx context.Context, report *domain.RunReport) error {
	categories, err := r.tree.Load(ctx)
	if err != nil {
		return err
	}

	var fatal error
	for _, category := range categories {
		category.Walk(func(node *domain.Node) bool {
			if fatal != nil {
				return false
			}
			if len(node.Incomplete) == 0 {
				return true
			}
			for _, problem := range node.Incomplete {
				logger.Warn("%s %s: %s", node.Kind, node.Path, problem)
			}
			synthesizeDefaults(node)
			written, err := r.tree.WriteMissing(ctx, node)
			if err != nil {
				fatal = fmt.Errorf("repair %s: %w", node.Path, err)
				return false
			}
			for _, path := range written {
				logger.Info("synthesised %s", path)
			}
			report.Repaired += len(written)
			return true
		})
	}
	return fatal
}

// synthesizeDefaults fills in a missing default-locale variant from the
// node's path: the directory or file name becomes the title, the
// description stays empty.
func synthesizeDefaults(node *domain.Node) {
	if _, ok := node.Default(); ok {
		return
	}
	if node.Variants == nil {
		node.Variants = make(map[string]domain.Variant)
	}
	node.Variants[domain.DefaultLocale] = domain.Variant{
		Locale: domain.DefaultLocale,
		Title:  node.Name,
	}
}
