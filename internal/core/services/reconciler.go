package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/custodia-labs/helpsync-cli/internal/core/domain"
	"github.com/custodia-labs/helpsync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/helpsync-cli/internal/core/ports/driving"
	"github.com/custodia-labs/helpsync-cli/internal/markdown"
)

// Ensure Reconciler implements the interface.
var _ driving.Reconciler = (*Reconciler)(nil)

// Reconciler synchronises the local content tree with the remote
// hierarchy. One instance performs one single-threaded scan-diff-apply
// pass per method call; concurrent invocations are unsupported.
type Reconciler struct {
	tree       driven.TreeStore
	ids        driven.IdentityStore
	remote     driven.RemoteStore
	translator driven.TranslationUploader
	settings   domain.Settings
}

// NewReconciler creates a reconciler over the given stores.
// translator may be nil; translation registration is then unavailable.
func NewReconciler(
	tree driven.TreeStore,
	ids driven.IdentityStore,
	remote driven.RemoteStore,
	translator driven.TranslationUploader,
	settings domain.Settings,
) *Reconciler {
	return &Reconciler{
		tree:       tree,
		ids:        ids,
		remote:     remote,
		translator: translator,
		settings:   settings,
	}
}

// action is the classification outcome for one node.
type action int

const (
	actionSkip action = iota
	actionCreate
	actionUpdate
)

// classify compares a node's identity and default-locale fingerprint
// with the sidecar state. No remote ID means create; a fingerprint
// mismatch means update; otherwise the node is in sync.
func (r *Reconciler) classify(node *domain.Node) action {
	if node.RemoteID() == 0 {
		return actionCreate
	}
	def, ok := node.Default()
	if !ok {
		return actionSkip
	}
	if def.Fingerprint() != node.SyncedHash(domain.DefaultLocale) {
		return actionUpdate
	}
	return actionSkip
}

// payload builds the remote payload for one variant. Article bodies get
// the image-root substitution and are rendered to HTML; the substitution
// works on a copy, the on-disk source and its fingerprint are untouched.
func (r *Reconciler) payload(node *domain.Node, v domain.Variant) domain.NodePayload {
	body := v.Body
	if node.Kind == domain.KindArticle {
		body = markdown.Render(markdown.SubstituteImageRoot(body, r.settings.ImageRoot))
	}
	return domain.NodePayload{
		Title:  v.Title,
		Body:   body,
		Locale: domain.ToRemoteLocale(v.Locale),
	}
}

// translationPayload builds the upsert payload for a non-default variant.
func (r *Reconciler) translationPayload(node *domain.Node, v domain.Variant) domain.TranslationPayload {
	body := v.Body
	if node.Kind == domain.KindArticle {
		body = markdown.Render(markdown.SubstituteImageRoot(body, r.settings.ImageRoot))
	}
	return domain.TranslationPayload{Title: v.Title, Body: body}
}

// extraLocales returns the node's non-default locales in stable order.
func extraLocales(node *domain.Node) []string {
	locales := make([]string, 0, len(node.Variants))
	for locale := range node.Variants {
		if locale != domain.DefaultLocale {
			locales = append(locales, locale)
		}
	}
	sort.Strings(locales)
	return locales
}

// saveIdentity persists a sidecar update. Sidecar writes happen
// immediately after each remote success; a failure here is a local I/O
// failure and fatal to the run.
func (r *Reconciler) saveIdentity(ctx context.Context, node *domain.Node, id *domain.Identity) error {
	if err := r.ids.Save(ctx, node.Kind, node.Path, id); err != nil {
		return fmt.Errorf("save sidecar for %s: %w", node.Path, err)
	}
	node.Identity = id
	return nil
}
