package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlistAddAndGet(t *testing.T) {
	svc := &WishlistService{Repo: newTestRepo(t)}
	ctx := context.Background()

	item, err := svc.AddItem(ctx, 1, AddWishlistItemInput{ProductID: 10, Name: "Chrome Goggles", Price: 19.99})
	require.NoError(t, err)
	assert.Equal(t, uint(10), item.ProductID)

	_, err = svc.AddItem(ctx, 1, AddWishlistItemInput{ProductID: 11, Name: "Lab Coat", Price: 45})
	require.NoError(t, err)

	items, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	// A second user's wishlist is separate.
	items, err = svc.Get(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestWishlistRejectsDuplicates(t *testing.T) {
	svc := &WishlistService{Repo: newTestRepo(t)}
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, AddWishlistItemInput{ProductID: 10, Name: "Chrome Goggles", Price: 19.99})
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, 1, AddWishlistItemInput{ProductID: 10, Name: "Chrome Goggles", Price: 19.99})
	assert.ErrorIs(t, err, ErrDuplicateItem)

	// Same product for a different user is fine.
	_, err = svc.AddItem(ctx, 2, AddWishlistItemInput{ProductID: 10, Name: "Chrome Goggles", Price: 19.99})
	require.NoError(t, err)
}

func TestWishlistValidation(t *testing.T) {
	svc := &WishlistService{Repo: newTestRepo(t)}
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, AddWishlistItemInput{Name: "x", Price: 1})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.AddItem(ctx, 1, AddWishlistItemInput{ProductID: 1, Price: 1})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.AddItem(ctx, 1, AddWishlistItemInput{ProductID: 1, Name: "x"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestWishlistRemoveAndContains(t *testing.T) {
	svc := &WishlistService{Repo: newTestRepo(t)}
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, AddWishlistItemInput{ProductID: 10, Name: "Chrome Goggles", Price: 19.99})
	require.NoError(t, err)

	found, err := svc.Contains(ctx, 1, 10)
	require.NoError(t, err)
	assert.True(t, found)

	require.NoError(t, svc.RemoveItem(ctx, 1, 10))

	found, err = svc.Contains(ctx, 1, 10)
	require.NoError(t, err)
	assert.False(t, found)

	assert.ErrorIs(t, svc.RemoveItem(ctx, 1, 10), ErrNotFound)
}

func TestWishlistClear(t *testing.T) {
	svc := &WishlistService{Repo: newTestRepo(t)}
	ctx := context.Background()

	for _, id := range []uint{1, 2, 3} {
		_, err := svc.AddItem(ctx, 1, AddWishlistItemInput{ProductID: id, Name: "Item", Price: 1})
		require.NoError(t, err)
	}

	require.NoError(t, svc.Clear(ctx, 1))

	items, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, items)

	// Clearing an already-empty wishlist is not an error.
	assert.NoError(t, svc.Clear(ctx, 1))
}
