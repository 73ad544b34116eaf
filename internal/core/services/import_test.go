package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/helpsync-cli/internal/core/domain"
	"github.com/custodia-labs/helpsync-cli/internal/markdown"
)

func remoteFixture() map[string][]domain.RemoteNode {
	return map[string][]domain.RemoteNode{
		childKey(domain.KindCategory, 0): {
			{ID: 10, Title: "User Guides", Description: "How-to content", Raw: map[string]any{"id": float64(10)}},
		},
		childKey(domain.KindSection, 10): {
			{ID: 20, Title: "Getting Started", Raw: map[string]any{"id": float64(20)}},
		},
		childKey(domain.KindArticle, 20): {
			{ID: 30, Title: "Install the CLI", Body: "<p>Run the installer.</p>", Raw: map[string]any{"id": float64(30)}},
		},
	}
}

func TestImport_WritesTreeWithSlugs(t *testing.T) {
	tree := &mockTreeStore{}
	ids := newMockIdentityStore()
	remote := &mockRemoteStore{children: remoteFixture()}
	r := newTestReconciler(tree, ids, remote, nil)

	report, err := r.Import(context.Background())

	require.NoError(t, err)
	assert.True(t, report.Clean())
	assert.Equal(t, 3, report.Imported)

	require.Len(t, tree.written, 3)
	assert.Equal(t, "user-guides", tree.written[0].Path)
	assert.Equal(t, "user-guides/getting-started", tree.written[1].Path)
	assert.Equal(t, "user-guides/getting-started/install-the-cli", tree.written[2].Path)

	// Article bodies come back as HTML and are stored as Markdown.
	def, ok := tree.written[2].Default()
	require.True(t, ok)
	expected, err := markdown.FromHTML("<p>Run the installer.</p>")
	require.NoError(t, err)
	assert.Equal(t, expected, def.Body)
}

func TestImport_SidecarsMakeNextExportNoOp(t *testing.T) {
	tree := &mockTreeStore{}
	ids := newMockIdentityStore()
	remote := &mockRemoteStore{children: remoteFixture()}
	r := newTestReconciler(tree, ids, remote, nil)

	_, err := r.Import(context.Background())
	require.NoError(t, err)

	// Exporting the imported nodes classifies everything as in sync.
	for _, node := range tree.written {
		node.Identity = ids.saved[node.Path]
		assert.Equal(t, actionSkip, r.classify(node), node.Path)
	}

	article := ids.saved["user-guides/getting-started/install-the-cli"]
	require.NotNil(t, article)
	assert.Equal(t, int64(30), article.RemoteID)
	assert.NotEmpty(t, article.Hashes[domain.DefaultLocale])
}

func TestImport_PullsTranslatedVariants(t *testing.T) {
	tree := &mockTreeStore{}
	ids := newMockIdentityStore()
	remote := &mockRemoteStore{
		children: remoteFixture(),
		translations: map[int64]map[string]domain.TranslationPayload{
			30: {"pt-br": {Title: "Instale a CLI", Body: "<p>Execute o instalador.</p>"}},
		},
	}
	r := newTestReconciler(tree, ids, remote, nil)

	report, err := r.Import(context.Background())

	require.NoError(t, err)
	assert.True(t, report.Clean())

	article := tree.written[2]
	pt, ok := article.Variants["pt-BR"]
	require.True(t, ok)
	assert.Equal(t, "Instale a CLI", pt.Title)
	expected, err := markdown.FromHTML("<p>Execute o instalador.</p>")
	require.NoError(t, err)
	assert.Equal(t, expected, pt.Body)

	// The translated fingerprint is recorded so the next export skips
	// the locale.
	id := ids.saved[article.Path]
	require.NotNil(t, id)
	assert.Equal(t, pt.Fingerprint(), id.Hashes["pt-BR"])
}

func TestImport_EmptyTitleIsPerNodeFailure(t *testing.T) {
	fixture := remoteFixture()
	fixture[childKey(domain.KindArticle, 20)] = []domain.RemoteNode{
		{ID: 30, Title: "   ", Body: "<p>x</p>", Raw: map[string]any{"id": float64(30)}},
	}
	tree := &mockTreeStore{}
	ids := newMockIdentityStore()
	remote := &mockRemoteStore{children: fixture}
	r := newTestReconciler(tree, ids, remote, nil)

	report, err := r.Import(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, report.Imported)
	require.Len(t, report.Failures, 1)
	assert.ErrorIs(t, report.Failures[0].Err, domain.ErrInvalidInput)
}

func TestImport_ListFailureIsFatal(t *testing.T) {
	tree := &mockTreeStore{}
	ids := newMockIdentityStore()
	remote := &mockRemoteStore{listErr: errors.New("boom")}
	r := newTestReconciler(tree, ids, remote, nil)

	_, err := r.Import(context.Background())
	require.Error(t, err)
}
