package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/helpsync-cli/internal/core/domain"
	"github.com/custodia-labs/helpsync-cli/internal/logger"
	"github.com/custodia-labs/helpsync-cli/internal/markdown"
)

// Import writes the remote hierarchy into the local tree. The remote
// listing is authoritative: local content at the imported paths is
// overwritten, and each sidecar records the remote ID and the
// fingerprint of the written content so an export immediately after an
// import performs zero remote mutations.
func (r *Reconciler) Import(ctx context.Context) (*domain.RunReport, error) {
	report := &domain.RunReport{}

	remoteCategories, err := r.remote.ListChildren(ctx, domain.KindCategory, 0)
	if err != nil {
		return nil, fmt.Errorf("list remote categories: %w", err)
	}

	for _, remoteCategory := range remoteCategories {
		node, err := r.nodeFromRemote(domain.KindCategory, nil, remoteCategory)
		if err != nil {
			report.Fail(remoteCategory.Title, "convert", err)
			continue
		}
		if err := r.importNode(ctx, node, report); err != nil {
			return nil, err
		}
	}
	return report, nil
}

// importNode writes one remote node locally and recurses into its
// remote children. Listing failures are fatal to the subtree only.
func (r *Reconciler) importNode(ctx context.Context, node *domain.Node, report *domain.RunReport) error {
	logger.Info("importing %s %s", node.Kind, node.Path)
	if err := r.importTranslations(ctx, node); err != nil {
		report.Fail(node.Path, "list translations", err)
	}
	if err := r.tree.WriteNode(ctx, node); err != nil {
		return fmt.Errorf("write %s: %w", node.Path, err)
	}

	id := &domain.Identity{
		RemoteID: node.Identity.RemoteID,
		Meta:     node.Identity.Meta,
	}
	for locale, variant := range node.Variants {
		id.SetHash(locale, variant.Fingerprint())
	}
	if err := r.saveIdentity(ctx, node, id); err != nil {
		return err
	}
	report.Imported++

	if !node.Kind.Container() {
		return nil
	}

	children, err := r.remote.ListChildren(ctx, domain.ChildKind(node.Kind), node.RemoteID())
	if err != nil {
		report.Fail(node.Path, "list children", err)
		return nil
	}
	for _, remoteChild := range children {
		child, err := r.nodeFromRemote(domain.ChildKind(node.Kind), node, remoteChild)
		if err != nil {
			report.Fail(node.Path+"/"+remoteChild.Title, "convert", err)
			continue
		}
		if err := r.importNode(ctx, child, report); err != nil {
			return err
		}
	}
	return nil
}

// importTranslations adds the node's remote per-locale variants. A
// listing failure is reported against the node; the default-locale
// content is still written.
func (r *Reconciler) importTranslations(ctx context.Context, node *domain.Node) error {
	translations, err := r.remote.ListTranslations(ctx, node.Kind, node.RemoteID())
	if err != nil {
		return err
	}
	for remoteLocale, translation := range translations {
		iso := domain.ToISOLocale(remoteLocale)
		if iso == domain.DefaultLocale {
			continue
		}
		body := translation.Body
		if node.Kind == domain.KindArticle {
			converted, err := markdown.FromHTML(translation.Body)
			if err != nil {
				return fmt.Errorf("convert %s body of %s: %w", iso, node.Path, err)
			}
			body = converted
		}
		node.Variants[iso] = domain.Variant{Locale: iso, Title: translation.Title, Body: body}
	}
	return nil
}

// nodeFromRemote builds a local node from a remote listing entry. The
// local name is the slugified remote title; article bodies come back as
// HTML and are converted to Markdown for local storage.
func (r *Reconciler) nodeFromRemote(kind domain.Kind, parent *domain.Node, remote domain.RemoteNode) (*domain.Node, error) {
	name := domain.Slugify(remote.Title)
	if name == "" {
		return nil, fmt.Errorf("%w: remote %s %d has an empty title", domain.ErrInvalidInput, kind, remote.ID)
	}

	body := remote.Description
	if kind == domain.KindArticle {
		converted, err := markdown.FromHTML(remote.Body)
		if err != nil {
			return nil, fmt.Errorf("convert body of %q: %w", remote.Title, err)
		}
		body = converted
	}

	node := &domain.Node{
		Kind: kind,
		Name: name,
		Path: name,
		Variants: map[string]domain.Variant{
			domain.DefaultLocale: {
				Locale: domain.DefaultLocale,
				Title:  remote.Title,
				Body:   body,
			},
		},
		Identity: &domain.Identity{RemoteID: remote.ID, Meta: remote.Raw},
	}
	if parent != nil {
		node.Path = domain.JoinPath(parent.Path, name)
		parent.AddChild(node)
	}
	return node, nil
}
