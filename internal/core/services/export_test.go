package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/helpsync-cli/internal/core/domain"
)

func TestExport_CreatesTopDown(t *testing.T) {
	category, section, article := newTestTree()
	tree := &mockTreeStore{categories: []*domain.Node{category}}
	ids := newMockIdentityStore()
	remote := &mockRemoteStore{}
	r := newTestReconciler(tree, ids, remote, nil)

	report, err := r.Export(context.Background())

	require.NoError(t, err)
	assert.True(t, report.Clean())
	assert.Equal(t, 3, report.Created)

	require.Len(t, remote.creates, 3)
	assert.Equal(t, domain.KindCategory, remote.creates[0].kind)
	assert.Equal(t, domain.KindSection, remote.creates[1].kind)
	assert.Equal(t, domain.KindArticle, remote.creates[2].kind)

	// Each child create observed its parent's freshly assigned ID.
	assert.Equal(t, category.RemoteID(), remote.creates[1].parentID)
	assert.Equal(t, section.RemoteID(), remote.creates[2].parentID)

	// Sidecars recorded the ID and the default-locale fingerprint.
	saved := ids.saved[article.Path]
	require.NotNil(t, saved)
	assert.Equal(t, article.RemoteID(), saved.RemoteID)
	def, _ := article.Default()
	assert.Equal(t, def.Fingerprint(), saved.Hashes[domain.DefaultLocale])
}

func TestExport_SecondRunIsNoOp(t *testing.T) {
	category, _, _ := newTestTree()
	tree := &mockTreeStore{categories: []*domain.Node{category}}
	ids := newMockIdentityStore()
	remote := &mockRemoteStore{}
	r := newTestReconciler(tree, ids, remote, nil)

	_, err := r.Export(context.Background())
	require.NoError(t, err)

	report, err := r.Export(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, report.Created)
	assert.Equal(t, 0, report.Updated)
	assert.Equal(t, 3, report.Skipped)
	assert.Equal(t, 0, report.Mutations())
	assert.Len(t, remote.creates, 3)
	assert.Empty(t, remote.updates)
}

func TestExport_UpdatesOnFingerprintMismatch(t *testing.T) {
	category, section, article := newTestTree()
	markSynced(category, 1)
	markSynced(section, 2)
	markSynced(article, 3)
	article.Variants[domain.DefaultLocale] = domain.Variant{
		Locale: domain.DefaultLocale, Title: "Installing", Body: "Run the new installer.",
	}

	tree := &mockTreeStore{categories: []*domain.Node{category}}
	ids := newMockIdentityStore()
	remote := &mockRemoteStore{}
	r := newTestReconciler(tree, ids, remote, nil)

	report, err := r.Export(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, 2, report.Skipped)
	assert.Equal(t, []int64{3}, remote.updates)

	def, _ := article.Default()
	assert.Equal(t, def.Fingerprint(), ids.saved[article.Path].Hashes[domain.DefaultLocale])
}

func TestExport_FailedContainerCreateBlocksChildren(t *testing.T) {
	category, section, article := newTestTree()
	tree := &mockTreeStore{categories: []*domain.Node{category}}
	ids := newMockIdentityStore()
	remote := &mockRemoteStore{
		failCreate: map[string]error{"Guides": errors.New("boom")},
	}
	r := newTestReconciler(tree, ids, remote, nil)

	report, err := r.Export(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, report.Created)
	assert.Empty(t, remote.creates)

	require.Len(t, report.Failures, 3)
	assert.Equal(t, category.Path, report.Failures[0].Path)
	for _, failure := range report.Failures[1:] {
		assert.ErrorIs(t, failure.Err, domain.ErrParentUnavailable)
	}
	assert.Contains(t, []string{section.Path, article.Path}, report.Failures[1].Path)
}

func TestExport_DeletesOrphanedArticles(t *testing.T) {
	tree := &mockTreeStore{}
	ids := newMockIdentityStore()
	ids.orphans = []domain.Orphan{{
		Kind:     domain.KindArticle,
		Path:     "guides/setup/install",
		Identity: &domain.Identity{RemoteID: 42, TranslationIDs: map[string]string{"body": "file-9"}},
	}}
	remote := &mockRemoteStore{}
	uploader := &mockUploader{}
	r := newTestReconciler(tree, ids, remote, uploader)

	report, err := r.Export(context.Background())

	require.NoError(t, err)
	assert.True(t, report.Clean())
	assert.Equal(t, 1, report.Deleted)
	assert.Equal(t, []int64{42}, remote.deletes)
	assert.Equal(t, []string{"file-9"}, uploader.deleted)
	assert.Equal(t, []string{"guides/setup/install"}, ids.deleted)
	// Surviving local files, such as a descriptor left behind after the
	// body was deleted, are cleaned up with the sidecar.
	assert.Equal(t, []string{"guides/setup/install"}, tree.removed)
}

func TestExport_FailedDeleteKeepsSidecar(t *testing.T) {
	tree := &mockTreeStore{}
	ids := newMockIdentityStore()
	ids.orphans = []domain.Orphan{{
		Kind:     domain.KindArticle,
		Path:     "guides/setup/install",
		Identity: &domain.Identity{RemoteID: 42},
	}}
	remote := &mockRemoteStore{failDelete: map[int64]error{42: errors.New("boom")}}
	r := newTestReconciler(tree, ids, remote, nil)

	report, err := r.Export(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, report.Deleted)
	require.Len(t, report.Failures, 1)
	// The sidecar and local files survive so the deletion is retried
	// next run.
	assert.Empty(t, ids.deleted)
	assert.Empty(t, tree.removed)
}

func TestExport_TranslationUpsertsPerLocale(t *testing.T) {
	article := newTestNode(domain.KindArticle, nil, "install", "Installing", "Run the installer.")
	article.Variants["fr"] = domain.Variant{Locale: "fr", Title: "Installation", Body: "Lancez."}
	article.Variants["de"] = domain.Variant{Locale: "de", Title: "Installieren", Body: "Starten."}
	markSynced(article, 5)
	// Only the fr hash is stale.
	article.Identity.SetHash("fr", "stale")

	tree := &mockTreeStore{categories: []*domain.Node{article}}
	ids := newMockIdentityStore()
	remote := &mockRemoteStore{}
	r := newTestReconciler(tree, ids, remote, nil)

	report, err := r.Export(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.Translated)
	assert.Equal(t, 1, report.Skipped)
	require.Len(t, remote.upserts, 1)
	assert.Equal(t, upsertCall{id: 5, locale: "fr"}, remote.upserts[0])
	assert.Equal(t, article.Variants["fr"].Fingerprint(), ids.saved[article.Path].Hashes["fr"])
}

func TestExport_TranslationFailureDoesNotBlockOthers(t *testing.T) {
	article := newTestNode(domain.KindArticle, nil, "install", "Installing", "Run the installer.")
	article.Variants["de"] = domain.Variant{Locale: "de", Title: "Installieren", Body: "Starten."}
	article.Variants["fr"] = domain.Variant{Locale: "fr", Title: "Installation", Body: "Lancez."}
	markSynced(article, 5)
	article.Identity.SetHash("de", "stale")
	article.Identity.SetHash("fr", "stale")

	tree := &mockTreeStore{categories: []*domain.Node{article}}
	ids := newMockIdentityStore()
	remote := &mockRemoteStore{failUpsert: map[string]error{"de": errors.New("boom")}}
	r := newTestReconciler(tree, ids, remote, nil)

	report, err := r.Export(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.Translated)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "translate de", report.Failures[0].Op)
	// fr still went through and its hash advanced; de stayed stale.
	assert.Equal(t, article.Variants["fr"].Fingerprint(), ids.saved[article.Path].Hashes["fr"])
	assert.Equal(t, "stale", ids.saved[article.Path].Hashes["de"])
}

func TestExport_DisablesCommentsOnPushedArticles(t *testing.T) {
	category, _, article := newTestTree()
	tree := &mockTreeStore{categories: []*domain.Node{category}}
	ids := newMockIdentityStore()
	remote := &mockRemoteStore{}
	r := newTestReconciler(tree, ids, remote, nil)
	r.settings.DisableArticleComments = true

	_, err := r.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{article.RemoteID()}, remote.commentsOff)

	// A no-op run toggles nothing.
	remote.commentsOff = nil
	_, err = r.Export(context.Background())
	require.NoError(t, err)
	assert.Empty(t, remote.commentsOff)
}
