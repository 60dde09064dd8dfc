package store_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stashhq/stash/internal/store"
	"github.com/stashhq/stash/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupStore creates a temporary SQLite store for testing.
func setupStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "stash-store-test-*")
	require.NoError(t, err)

	s, err := store.Open(filepath.Join(tmpDir, "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.Init())

	t.Cleanup(func() {
		s.Close()
		os.RemoveAll(tmpDir)
	})
	return s
}

// ptr is a shorthand for optional parent ids in tests.
func ptr(s string) *string { return &s }

// --- Location CRUD ---

func TestStore_CreateAndGetLocation(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	loc, err := s.CreateLocation(ctx, "garage", "Garage", "detached garage", nil)
	require.NoError(t, err)
	assert.Equal(t, "garage", loc.ID)
	assert.Equal(t, "Garage", loc.Name)
	assert.Nil(t, loc.ParentID)
	assert.NotZero(t, loc.CreatedAt)

	got, err := s.Location(ctx, "garage")
	require.NoError(t, err)
	assert.Equal(t, loc.ID, got.ID)
	assert.Equal(t, "detached garage", got.Description)
}

func TestStore_CreateLocation_DuplicateID(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.CreateLocation(ctx, "garage", "Garage", "", nil)
	require.NoError(t, err)

	_, err = s.CreateLocation(ctx, "garage", "Other Garage", "", nil)
	assert.ErrorIs(t, err, store.ErrLocationExists)
}

func TestStore_CreateLocation_InvalidInput(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.CreateLocation(ctx, "", "Garage", "", nil)
	assert.ErrorIs(t, err, validate.ErrInvalidID)

	_, err = s.CreateLocation(ctx, "garage", "   ", "", nil)
	assert.ErrorIs(t, err, validate.ErrInvalidName)
}

func TestStore_CreateLocation_DanglingParent(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.CreateLocation(ctx, "shelf", "Shelf", "", ptr("nope"))
	assert.ErrorIs(t, err, store.ErrParentNotFound)

	// Fail-fast means no row was written.
	exists, err := s.LocationExists(ctx, "shelf")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStore_UpdateLocation(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.CreateLocation(ctx, "garage", "Garage", "", nil)
	require.NoError(t, err)
	created, err := s.CreateLocation(ctx, "shelf", "Shelf", "old", ptr("garage"))
	require.NoError(t, err)

	got, err := s.UpdateLocation(ctx, "shelf", "Steel Shelf", "new description", ptr("garage"))
	require.NoError(t, err)
	assert.Equal(t, "Steel Shelf", got.Name)
	assert.Equal(t, "new description", got.Description)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)

	_, err = s.UpdateLocation(ctx, "missing", "Name", "", nil)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_DeleteLocation_Guards(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.CreateLocation(ctx, "garage", "Garage", "", nil)
	require.NoError(t, err)
	_, err = s.CreateLocation(ctx, "shelf", "Shelf", "", ptr("garage"))
	require.NoError(t, err)

	// Parent with a child cannot be deleted; both rows survive.
	err = s.DeleteLocation(ctx, "garage")
	assert.ErrorIs(t, err, store.ErrLocationHasChildren)
	for _, id := range []string{"garage", "shelf"} {
		exists, err := s.LocationExists(ctx, id)
		require.NoError(t, err)
		assert.True(t, exists, "location %s should survive failed delete", id)
	}

	// Location holding an item cannot be deleted.
	_, err = s.CreateItem(ctx, "Hammer", "", "shelf", nil)
	require.NoError(t, err)
	err = s.DeleteLocation(ctx, "shelf")
	assert.ErrorIs(t, err, store.ErrLocationHasItems)

	// Empty leaf deletes fine once the item is gone.
	items, err := s.ItemsIn(ctx, "shelf")
	require.NoError(t, err)
	require.NoError(t, s.DeleteItem(ctx, items[0].ID))
	require.NoError(t, s.DeleteLocation(ctx, "shelf"))
	require.NoError(t, s.DeleteLocation(ctx, "garage"))

	err = s.DeleteLocation(ctx, "garage")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_Children(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.CreateLocation(ctx, "garage", "Garage", "", nil)
	require.NoError(t, err)
	_, err = s.CreateLocation(ctx, "attic", "Attic", "", nil)
	require.NoError(t, err)
	_, err = s.CreateLocation(ctx, "shelf-b", "Zinc Shelf", "", ptr("garage"))
	require.NoError(t, err)
	_, err = s.CreateLocation(ctx, "shelf-a", "Alloy Shelf", "", ptr("garage"))
	require.NoError(t, err)

	roots, err := s.Children(ctx, "")
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.Equal(t, "Attic", roots[0].Name)

	kids, err := s.Children(ctx, "garage")
	require.NoError(t, err)
	require.Len(t, kids, 2)
	assert.Equal(t, []string{"Alloy Shelf", "Zinc Shelf"}, []string{kids[0].Name, kids[1].Name})

	n, err := s.ChildCount(ctx, "garage")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

// --- Item CRUD ---

func TestStore_CreateAndGetItem(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.CreateLocation(ctx, "garage", "Garage", "", nil)
	require.NoError(t, err)

	item, err := s.CreateItem(ctx, "Hammer", "claw hammer", "garage", map[string]string{"brand": "Estwing"})
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)

	got, err := s.Item(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hammer", got.Name)
	assert.Equal(t, "claw hammer", got.Description)
	assert.Equal(t, "garage", got.LocationID)
	assert.Equal(t, map[string]string{"brand": "Estwing"}, got.Properties)
}

func TestStore_CreateItem_MissingLocation(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.CreateItem(ctx, "Hammer", "", "nowhere", nil)
	assert.ErrorIs(t, err, store.ErrLocationNotFound)
}

func TestStore_CreateItem_NilPropertiesStoredAsEmptyBag(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.CreateLocation(ctx, "garage", "Garage", "", nil)
	require.NoError(t, err)

	item, err := s.CreateItem(ctx, "Hammer", "", "garage", nil)
	require.NoError(t, err)

	got, err := s.Item(ctx, item.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.Properties)
	assert.Empty(t, got.Properties)

	// The stored column is a JSON object, never NULL.
	var raw string
	require.NoError(t, s.DB().QueryRow(`SELECT properties FROM items WHERE id = ?`, item.ID).Scan(&raw))
	assert.JSONEq(t, `{}`, raw)
}

func TestStore_UpdateItem(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.CreateLocation(ctx, "garage", "Garage", "", nil)
	require.NoError(t, err)
	item, err := s.CreateItem(ctx, "Hammer", "", "garage", nil)
	require.NoError(t, err)

	got, err := s.UpdateItem(ctx, item.ID, "Sledgehammer", "10 lb", map[string]string{"weight": "10lb"})
	require.NoError(t, err)
	assert.Equal(t, "Sledgehammer", got.Name)
	assert.Equal(t, "10 lb", got.Description)
	assert.Equal(t, "10lb", got.Properties["weight"])

	_, err = s.UpdateItem(ctx, "no-such-item", "Name", "", nil)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_MoveItem(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.CreateLocation(ctx, "garage", "Garage", "", nil)
	require.NoError(t, err)
	_, err = s.CreateLocation(ctx, "attic", "Attic", "", nil)
	require.NoError(t, err)
	item, err := s.CreateItem(ctx, "Hammer", "", "garage", nil)
	require.NoError(t, err)

	got, err := s.MoveItem(ctx, item.ID, "attic")
	require.NoError(t, err)
	assert.Equal(t, "attic", got.LocationID)

	// Moving into a nonexistent location is rejected by the backstop and
	// translated; the item stays where it was.
	_, err = s.MoveItem(ctx, item.ID, "basement")
	assert.ErrorIs(t, err, store.ErrLocationNotFound)
	got, err = s.Item(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "attic", got.LocationID)

	_, err = s.MoveItem(ctx, "no-such-item", "attic")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_ItemCount(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.CreateLocation(ctx, "garage", "Garage", "", nil)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = s.CreateItem(ctx, fmt.Sprintf("Tool %d", i), "", "garage", nil)
		require.NoError(t, err)
	}

	n, err := s.ItemCount(ctx, "garage")
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}
