package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/algoviz/pkg/adapters/file"
	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/ports/tests"
)

func TestFileStore_Contract(t *testing.T) {
	tests.PageStoreContractTest(t, file.New(t.TempDir()))
}

func TestFileStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "pages")
	store := file.New(dir)
	ctx := context.Background()

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, store.Save(ctx, &domain.PageRecord{ID: "p1", Algorithm: "BST"}))
	_, err = os.Stat(filepath.Join(dir, "p1.json"))
	require.NoError(t, err)
}

func TestFileStore_Overwrite(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.PageRecord{ID: "p1", Algorithm: "BST"}))
	require.NoError(t, store.Save(ctx, &domain.PageRecord{ID: "p1", Algorithm: "BinaryHeap"}))

	loaded, err := store.Load(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "BinaryHeap", loaded.Algorithm)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, ids)
}

func TestFileStore_InvalidIDs(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	assert.Error(t, store.Save(ctx, &domain.PageRecord{}))
	assert.Error(t, store.Save(ctx, &domain.PageRecord{ID: "../escape"}))
	_, err := store.Load(ctx, "")
	assert.Error(t, err)
	assert.Error(t, store.Delete(ctx, ".."))
}

func TestFileStore_CorruptRecord(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{"), 0o644))

	_, err := file.New(dir).Load(context.Background(), "bad")
	assert.ErrorContains(t, err, "failed to unmarshal page record")
}

func TestFileStore_DefaultPath(t *testing.T) {
	assert.Equal(t, file.DefaultPath, file.New("").BasePath)
}
