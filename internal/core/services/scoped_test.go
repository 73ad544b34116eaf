package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/helpsync-cli/internal/core/domain"
)

func TestAdd_ScaffoldsFullPath(t *testing.T) {
	tree := &mockTreeStore{missing: map[string][]string{
		"guides":               {"guides/__group__.json"},
		"guides/setup":         {"guides/setup/__group__.json"},
		"guides/setup/install": {"guides/setup/install.json", "guides/setup/install.md"},
	}}
	r := newTestReconciler(tree, newMockIdentityStore(), &mockRemoteStore{}, nil)

	report, err := r.Add(context.Background(), "guides/setup/install.md")

	require.NoError(t, err)
	assert.Equal(t, 4, report.Repaired)

	require.Len(t, tree.missingCalls, 3)
	assert.Equal(t, domain.KindCategory, tree.missingCalls[0].Kind)
	assert.Equal(t, domain.KindSection, tree.missingCalls[1].Kind)
	assert.Equal(t, domain.KindArticle, tree.missingCalls[2].Kind)
	// The .md extension is not part of the node name.
	assert.Equal(t, "install", tree.missingCalls[2].Name)
	assert.Equal(t, "guides/setup/install", tree.missingCalls[2].Path)
}

func TestAdd_RejectsTooDeepPath(t *testing.T) {
	r := newTestReconciler(&mockTreeStore{}, newMockIdentityStore(), &mockRemoteStore{}, nil)

	_, err := r.Add(context.Background(), "a/b/c/d")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = r.Add(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdd_NeverUploads(t *testing.T) {
	tree := &mockTreeStore{}
	remote := &mockRemoteStore{}
	r := newTestReconciler(tree, newMockIdentityStore(), remote, nil)

	_, err := r.Add(context.Background(), "guides")

	require.NoError(t, err)
	assert.Empty(t, remote.creates)
	assert.Empty(t, remote.updates)
}

func TestRemove_DeletesEverywhere(t *testing.T) {
	section := newTestNode(domain.KindSection, nil, "setup", "Setup", "")
	section.Path = "guides/setup"
	markSynced(section, 20)
	article := newTestNode(domain.KindArticle, section, "install", "Installing", "body")
	markSynced(article, 30)
	article.Identity.TranslationIDs = map[string]string{"body": "file-3"}

	tree := &mockTreeStore{pathNodes: map[string]*domain.Node{"guides/setup": section}}
	ids := newMockIdentityStore()
	remote := &mockRemoteStore{}
	uploader := &mockUploader{}
	r := newTestReconciler(tree, ids, remote, uploader)

	report, err := r.Remove(context.Background(), "guides/setup")

	require.NoError(t, err)
	assert.True(t, report.Clean())
	assert.Equal(t, 1, report.Deleted)

	// One remote delete on the container; the cascade covers the article.
	assert.Equal(t, []int64{20}, remote.deletes)
	assert.Equal(t, []string{"file-3"}, uploader.deleted)
	assert.Equal(t, []string{"guides/setup"}, tree.removed)
	assert.Equal(t, []string{"guides/setup"}, ids.deletedTrees)
}

func TestRemove_FailedRemoteDeleteLeavesLocalIntact(t *testing.T) {
	article := newTestNode(domain.KindArticle, nil, "install", "Installing", "body")
	article.Path = "guides/setup/install"
	markSynced(article, 30)

	tree := &mockTreeStore{pathNodes: map[string]*domain.Node{"guides/setup/install": article}}
	ids := newMockIdentityStore()
	remote := &mockRemoteStore{failDelete: map[int64]error{30: errors.New("boom")}}
	r := newTestReconciler(tree, ids, remote, nil)

	report, err := r.Remove(context.Background(), "guides/setup/install")

	require.NoError(t, err)
	require.Len(t, report.Failures, 1)
	assert.Empty(t, tree.removed)
	assert.Empty(t, ids.deleted)
}

func TestRemove_NeverSyncedSkipsRemote(t *testing.T) {
	article := newTestNode(domain.KindArticle, nil, "draft", "Draft", "body")
	article.Path = "guides/setup/draft"

	tree := &mockTreeStore{pathNodes: map[string]*domain.Node{"guides/setup/draft": article}}
	ids := newMockIdentityStore()
	remote := &mockRemoteStore{}
	r := newTestReconciler(tree, ids, remote, nil)

	report, err := r.Remove(context.Background(), "guides/setup/draft")

	require.NoError(t, err)
	assert.Equal(t, 0, report.Deleted)
	assert.Empty(t, remote.deletes)
	assert.Equal(t, []string{"guides/setup/draft"}, tree.removed)
	assert.Equal(t, []string{"guides/setup/draft"}, ids.deleted)
}

func TestRemove_UnknownPath(t *testing.T) {
	r := newTestReconciler(&mockTreeStore{}, newMockIdentityStore(), &mockRemoteStore{}, nil)

	_, err := r.Remove(context.Background(), "nope")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
