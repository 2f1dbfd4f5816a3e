package ports

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDocumentStoreContract runs a suite of tests to verify that a DocumentStore implementation
// adheres to the defined interface contract.
func RunDocumentStoreContract(t *testing.T, store DocumentStore) {
	ctx := context.Background()
	docID := "contract-test-doc-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		payload := []byte("mission payload")

		err := store.Save(ctx, docID, payload)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, docID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, payload, loaded)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, docID, []byte("v1")))
		require.NoError(t, store.Save(ctx, docID, []byte("v2")))

		loaded, err := store.Load(ctx, docID)
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), loaded)
	})

	t.Run("Isolation", func(t *testing.T) {
		payload := []byte("original")
		require.NoError(t, store.Save(ctx, docID, payload))
		payload[0] = 'X'

		loaded, err := store.Load(ctx, docID)
		require.NoError(t, err)
		assert.Equal(t, []byte("original"), loaded, "store must not alias the caller's buffer")
		loaded[0] = 'Y'

		again, err := store.Load(ctx, docID)
		require.NoError(t, err)
		assert.Equal(t, []byte("original"), again)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+docID)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, docID, []byte("x")))

		err := store.Delete(ctx, docID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, docID)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound, "Load after Delete should return ErrDocumentNotFound")

		assert.NoError(t, store.Delete(ctx, docID), "deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := docID + "-1"
		id2 := docID + "-2"
		_ = store.Save(ctx, id1, []byte("a"))
		_ = store.Save(ctx, id2, []byte("b"))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})

	t.Run("Concurrent Save", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				id := fmt.Sprintf("%s-c%d", docID, i)
				assert.NoError(t, store.Save(ctx, id, []byte(id)))
			}(i)
		}
		wg.Wait()

		for i := 0; i < 8; i++ {
			id := fmt.Sprintf("%s-c%d", docID, i)
			loaded, err := store.Load(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, []byte(id), loaded)
			_ = store.Delete(ctx, id)
		}
	})
}
