package tree

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/helpsync-cli/internal/core/domain"
)

func TestSidecarStore_SaveGetRoundTrip(t *testing.T) {
	root := t.TempDir()
	store := NewSidecarStore(root)
	ctx := context.Background()

	id := &domain.Identity{
		RemoteID:       42,
		Hashes:         map[string]string{"en-US": "abc", "fr": "def"},
		TranslationIDs: map[string]string{"body": "file-7"},
		Meta:           map[string]any{"position": float64(3)},
	}
	require.NoError(t, store.Save(ctx, domain.KindArticle, "guides/setup/install", id))

	loaded, err := store.Get(ctx, domain.KindArticle, "guides/setup/install")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, id, loaded)

	// The article sidecar sits next to the article, dot-prefixed.
	_, statErr := os.Stat(filepath.Join(root, "guides", "setup", ".article_install.meta"))
	assert.NoError(t, statErr)
}

func TestSidecarStore_ContainerSidecarLocation(t *testing.T) {
	root := t.TempDir()
	store := NewSidecarStore(root)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.KindSection, "guides/setup", &domain.Identity{RemoteID: 20}))

	_, err := os.Stat(filepath.Join(root, "guides", "setup", ".group.meta"))
	assert.NoError(t, err)
}

func TestSidecarStore_GetMissingIsNil(t *testing.T) {
	store := NewSidecarStore(t.TempDir())

	id, err := store.Get(context.Background(), domain.KindArticle, "guides/setup/install")
	require.NoError(t, err)
	assert.Nil(t, id)
}

func TestSidecarStore_DeleteIsIdempotent(t *testing.T) {
	root := t.TempDir()
	store := NewSidecarStore(root)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.KindCategory, "guides", &domain.Identity{RemoteID: 1}))
	require.NoError(t, store.Delete(ctx, domain.KindCategory, "guides"))
	require.NoError(t, store.Delete(ctx, domain.KindCategory, "guides"))

	id, err := store.Get(ctx, domain.KindCategory, "guides")
	require.NoError(t, err)
	assert.Nil(t, id)
}

func TestSidecarStore_DeleteTree(t *testing.T) {
	root := t.TempDir()
	store := NewSidecarStore(root)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.KindSection, "guides/setup", &domain.Identity{RemoteID: 20}))
	require.NoError(t, store.Save(ctx, domain.KindArticle, "guides/setup/install", &domain.Identity{RemoteID: 30}))
	writeTreeFile(t, root, "guides/setup/install.md", "body")

	require.NoError(t, store.DeleteTree(ctx, "guides/setup"))

	for _, rel := range []string{"guides/setup/.group.meta", "guides/setup/.article_install.meta"} {
		_, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
		assert.True(t, os.IsNotExist(err), rel)
	}
	// Content files survive a sidecar sweep.
	_, err := os.Stat(filepath.Join(root, "guides", "setup", "install.md"))
	assert.NoError(t, err)
}

func TestSidecarStore_Orphans(t *testing.T) {
	root := t.TempDir()
	store := NewSidecarStore(root)
	ctx := context.Background()

	// install still has its body; gone does not.
	writeTreeFile(t, root, "guides/setup/install.md", "body")
	require.NoError(t, store.Save(ctx, domain.KindArticle, "guides/setup/install", &domain.Identity{RemoteID: 30}))
	require.NoError(t, store.Save(ctx, domain.KindArticle, "guides/setup/gone", &domain.Identity{RemoteID: 31}))

	orphans, err := store.Orphans(ctx)
	require.NoError(t, err)
	require.Len(t, orphans, 1)

	assert.Equal(t, domain.KindArticle, orphans[0].Kind)
	assert.Equal(t, "guides/setup/gone", orphans[0].Path)
	require.NotNil(t, orphans[0].Identity)
	assert.Equal(t, int64(31), orphans[0].Identity.RemoteID)
}

func TestSidecarStore_OrphansChecksSubdirLayout(t *testing.T) {
	root := t.TempDir()
	store := NewSidecarStore(root)
	ctx := context.Background()

	// The body lives in a locale subdirectory; the sidecar stays in the
	// section directory, so both layouts must be checked.
	writeTreeFile(t, root, "guides/setup/en-US/install.md", "body")
	require.NoError(t, store.Save(ctx, domain.KindArticle, "guides/setup/install", &domain.Identity{RemoteID: 30}))

	orphans, err := store.Orphans(ctx)
	require.NoError(t, err)
	assert.Empty(t, orphans)
}

func TestSidecarStore_OrphansIgnoresContainers(t *testing.T) {
	root := t.TempDir()
	store := NewSidecarStore(root)
	ctx := context.Background()

	// A container directory missing its descriptor is doctor territory,
	// never a pending deletion.
	require.NoError(t, store.Save(ctx, domain.KindSection, "guides/setup", &domain.Identity{RemoteID: 20}))

	orphans, err := store.Orphans(ctx)
	require.NoError(t, err)
	assert.Empty(t, orphans)
}
