package store_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stashhq/stash/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildChain creates a parent chain root -> c1 -> c2 -> ... -> cDepth and
// returns the id of the deepest location.
func buildChain(t *testing.T, s *store.SQLiteStore, depth int) string {
	t.Helper()
	ctx := context.Background()

	_, err := s.CreateLocation(ctx, "root", "Root", "", nil)
	require.NoError(t, err)

	parent := "root"
	for i := 1; i <= depth; i++ {
		id := fmt.Sprintf("c%d", i)
		_, err := s.CreateLocation(ctx, id, fmt.Sprintf("Level %d", i), "", &parent)
		require.NoError(t, err)
		parent = id
	}
	return parent
}

func TestValidateParent_SelfParent(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.CreateLocation(ctx, "garage", "Garage", "", nil)
	require.NoError(t, err)

	assert.ErrorIs(t, s.ValidateParent(ctx, "garage", "garage"), store.ErrSelfParent)
}

func TestValidateParent_DanglingParent(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.CreateLocation(ctx, "garage", "Garage", "", nil)
	require.NoError(t, err)

	assert.ErrorIs(t, s.ValidateParent(ctx, "garage", "no-such-place"), store.ErrParentNotFound)
}

// A location may not become a child of anything reachable from it by parent
// links, at any depth.
func TestValidateParent_CycleAtEveryDepth(t *testing.T) {
	for _, depth := range []int{1, 2, 5, 10} {
		t.Run(fmt.Sprintf("depth-%d", depth), func(t *testing.T) {
			s := setupStore(t)
			ctx := context.Background()
			deepest := buildChain(t, s, depth)

			// root under any of its descendants closes a cycle.
			assert.ErrorIs(t, s.ValidateParent(ctx, "root", deepest), store.ErrParentCycle)
			if depth > 1 {
				assert.ErrorIs(t, s.ValidateParent(ctx, "c1", deepest), store.ErrParentCycle)
			}

			// Moving the deepest node under the root is always legal.
			assert.NoError(t, s.ValidateParent(ctx, deepest, "root"))
		})
	}
}

func TestValidateParent_SiblingMoveAllowed(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.CreateLocation(ctx, "garage", "Garage", "", nil)
	require.NoError(t, err)
	_, err = s.CreateLocation(ctx, "shelf-a", "Shelf A", "", ptr("garage"))
	require.NoError(t, err)
	_, err = s.CreateLocation(ctx, "shelf-b", "Shelf B", "", ptr("garage"))
	require.NoError(t, err)

	assert.NoError(t, s.ValidateParent(ctx, "shelf-a", "shelf-b"))
}

// Re-parenting a root under its own descendant must fail and leave the tree
// unchanged.
func TestUpdateLocation_RejectsCycle(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	// root -> c1 -> c2
	buildChain(t, s, 2)

	_, err := s.UpdateLocation(ctx, "root", "Root", "", ptr("c2"))
	assert.ErrorIs(t, err, store.ErrParentCycle)

	root, err := s.Location(ctx, "root")
	require.NoError(t, err)
	assert.Nil(t, root.ParentID, "failed re-parent must not change the tree")

	c2, err := s.Location(ctx, "c2")
	require.NoError(t, err)
	require.NotNil(t, c2.ParentID)
	assert.Equal(t, "c1", *c2.ParentID)
}

func TestUpdateLocation_ReparentToRootAllowed(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	deepest := buildChain(t, s, 3)

	got, err := s.UpdateLocation(ctx, deepest, "Level 3", "", nil)
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)
}

func TestCreateLocation_SelfParentRejected(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.CreateLocation(ctx, "loop", "Loop", "", ptr("loop"))
	assert.ErrorIs(t, err, store.ErrSelfParent)
}
