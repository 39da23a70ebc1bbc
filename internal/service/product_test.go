package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senkudev/otaku_shop/internal/repo"
)

func seedProduct(t *testing.T, svc *ProductService, in ProductInput) uint {
	t.Helper()
	p, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	return p.ID
}

func TestProductCreateDefaults(t *testing.T) {
	svc := &ProductService{Repo: newTestRepo(t)}
	ctx := context.Background()

	p, err := svc.Create(ctx, ProductInput{Name: "Cola", Price: 3.5, Category: "drinks", Tags: []string{"rare", "handmade"}})
	require.NoError(t, err)
	assert.True(t, p.InStock)
	assert.False(t, p.Featured)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cola", got.Name)
	assert.Len(t, got.Tags, 2)

	_, err = svc.Create(ctx, ProductInput{Price: 1})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Create(ctx, ProductInput{Name: "free", Price: 0})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestProductListFilters(t *testing.T) {
	svc := &ProductService{Repo: newTestRepo(t)}
	ctx := context.Background()

	featured := true
	outOfStock := false
	seedProduct(t, svc, ProductInput{Name: "Cola", Price: 3.5, Category: "drinks"})
	seedProduct(t, svc, ProductInput{Name: "Ramen", Price: 8, Category: "food", Featured: &featured})
	seedProduct(t, svc, ProductInput{Name: "Sold Out Snack", Price: 2, Category: "food", InStock: &outOfStock})

	all, total, err := svc.List(ctx, repo.ProductFilter{}, 20, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.EqualValues(t, 3, total)

	food, total, err := svc.List(ctx, repo.ProductFilter{Category: "food"}, 20, 0)
	require.NoError(t, err)
	assert.Len(t, food, 2)
	assert.EqualValues(t, 2, total)

	hot, _, err := svc.List(ctx, repo.ProductFilter{Featured: &featured}, 20, 0)
	require.NoError(t, err)
	require.Len(t, hot, 1)
	assert.Equal(t, "Ramen", hot[0].Name)

	inStock := true
	available, _, err := svc.List(ctx, repo.ProductFilter{InStock: &inStock}, 20, 0)
	require.NoError(t, err)
	assert.Len(t, available, 2)

	// Pagination caps the page, total still counts everything.
	page, total, err := svc.List(ctx, repo.ProductFilter{}, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)
	assert.EqualValues(t, 3, total)
}

func TestProductUpdatePartial(t *testing.T) {
	svc := &ProductService{Repo: newTestRepo(t)}
	ctx := context.Background()

	id := seedProduct(t, svc, ProductInput{Name: "Cola", Price: 3.5, Category: "drinks"})

	updated, err := svc.Update(ctx, id, ProductInput{Price: 4})
	require.NoError(t, err)
	assert.Equal(t, "Cola", updated.Name)
	assert.InDelta(t, 4.0, updated.Price, 1e-9)

	outOfStock := false
	updated, err = svc.Update(ctx, id, ProductInput{InStock: &outOfStock})
	require.NoError(t, err)
	assert.False(t, updated.InStock)
	assert.Equal(t, "Cola", updated.Name)

	_, err = svc.Update(ctx, 9999, ProductInput{Price: 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductDelete(t *testing.T) {
	svc := &ProductService{Repo: newTestRepo(t)}
	ctx := context.Background()

	id := seedProduct(t, svc, ProductInput{Name: "Cola", Price: 3.5})

	require.NoError(t, svc.Delete(ctx, id))
	_, err := svc.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, id), ErrNotFound)
}
