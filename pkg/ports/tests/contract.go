package tests

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// PageStoreContractTest is a reusable test suite that verifies if an adapter complies with ports.PageStore.
func PageStoreContractTest(t *testing.T, store ports.PageStore) {
	t.Helper()

	ctx := context.Background()
	pageID := "contract-page-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		record := &domain.PageRecord{
			ID:        pageID,
			Container: "viz",
			Algorithm: "BST",
			Debug:     true,
			CreatedAt: time.Now().UTC().Truncate(time.Second),
		}

		require.NoError(t, store.Save(ctx, record), "Save should not return error")

		loaded, err := store.Load(ctx, pageID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, "viz", loaded.Container)
		assert.Equal(t, "BST", loaded.Algorithm)
		assert.True(t, loaded.Debug)
		assert.True(t, record.CreatedAt.Equal(loaded.CreatedAt))
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+pageID)
		assert.ErrorIs(t, err, domain.ErrPageNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, &domain.PageRecord{ID: pageID, Container: "viz"}))

		require.NoError(t, store.Delete(ctx, pageID), "Delete should not return error")

		_, err := store.Load(ctx, pageID)
		assert.ErrorIs(t, err, domain.ErrPageNotFound, "Load after Delete should return ErrPageNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := pageID + "-1"
		id2 := pageID + "-2"
		_ = store.Save(ctx, &domain.PageRecord{ID: id1, Container: "viz"})
		_ = store.Save(ctx, &domain.PageRecord{ID: id2, Container: "viz"})

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		pages, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, pages, id1)
		assert.Contains(t, pages, id2)
	})
}
