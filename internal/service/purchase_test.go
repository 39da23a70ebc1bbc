package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senkudev/otaku_shop/internal/models"
)

func codOrder() CreatePurchaseInput {
	return CreatePurchaseInput{
		Items: []PurchaseItemInput{
			{ProductID: 1, Name: "Sarcophagus Replica", Price: 549, Quantity: 1},
			{ProductID: 2, Name: "Poster", Price: 25, Quantity: 2},
		},
		TotalAmount:   599.00,
		PaymentMethod: models.PaymentCOD,
		ShippingAddress: models.Address{
			Street: "1 Science Rd", City: "Ishigami Village", Country: "JP", PostalCode: "100-0001",
		},
	}
}

func TestPurchaseCreateIsAlwaysPending(t *testing.T) {
	r := newTestRepo(t)
	svc := &PurchaseService{Repo: r}
	ctx := context.Background()

	purchase, warning, err := svc.Create(ctx, 1, codOrder())
	require.NoError(t, err)
	assert.Empty(t, warning)
	assert.Equal(t, models.StatusPending, purchase.Status)
	assert.InDelta(t, 599.00, purchase.TotalAmount, 1e-9)
	assert.Equal(t, models.PaymentCOD, purchase.PaymentMethod)
	assert.Len(t, purchase.Items, 2)
	assert.Nil(t, purchase.DeliveredAt)
}

func TestPurchaseCreateClearsCart(t *testing.T) {
	r := newTestRepo(t)
	cartSvc := &CartService{Repo: r}
	svc := &PurchaseService{Repo: r}
	ctx := context.Background()

	_, err := cartSvc.AddItem(ctx, 1, AddCartItemInput{ProductID: 1, Name: "Sarcophagus Replica", Price: 549, Quantity: 1})
	require.NoError(t, err)

	_, _, err = svc.Create(ctx, 1, codOrder())
	require.NoError(t, err)

	cart, err := cartSvc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.ItemCount)
}

func TestPurchaseCreateValidation(t *testing.T) {
	svc := &PurchaseService{Repo: newTestRepo(t)}
	ctx := context.Background()

	in := codOrder()
	in.Items = nil
	_, _, err := svc.Create(ctx, 1, in)
	assert.ErrorIs(t, err, ErrValidation)

	in = codOrder()
	in.TotalAmount = 0
	_, _, err = svc.Create(ctx, 1, in)
	assert.ErrorIs(t, err, ErrValidation)

	in = codOrder()
	in.PaymentMethod = "barter"
	_, _, err = svc.Create(ctx, 1, in)
	assert.ErrorIs(t, err, ErrValidation)

	in = codOrder()
	in.Items[0].Quantity = 0
	_, _, err = svc.Create(ctx, 1, in)
	assert.ErrorIs(t, err, ErrValidation)

	in = codOrder()
	in.Items[0].Price = -1
	_, _, err = svc.Create(ctx, 1, in)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPurchaseGetOwnership(t *testing.T) {
	svc := &PurchaseService{Repo: newTestRepo(t)}
	ctx := context.Background()

	purchase, _, err := svc.Create(ctx, 1, codOrder())
	require.NoError(t, err)

	got, err := svc.Get(ctx, purchase.ID, 1, models.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, purchase.ID, got.ID)

	// Another plain user is shut out, an admin is not.
	_, err = svc.Get(ctx, purchase.ID, 2, models.RoleUser)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Get(ctx, purchase.ID, 2, models.RoleAdmin)
	require.NoError(t, err)

	_, err = svc.Get(ctx, 9999, 1, models.RoleUser)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPurchaseUpdateStatus(t *testing.T) {
	svc := &PurchaseService{Repo: newTestRepo(t)}
	ctx := context.Background()

	purchase, _, err := svc.Create(ctx, 1, codOrder())
	require.NoError(t, err)

	got, err := svc.UpdateStatus(ctx, purchase.ID, models.StatusShipped, 1, models.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, models.StatusShipped, got.Status)
	assert.Nil(t, got.DeliveredAt)

	got, err = svc.UpdateStatus(ctx, purchase.ID, models.StatusDelivered, 1, models.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, got.Status)
	require.NotNil(t, got.DeliveredAt)

	// Any status may follow any other, even moving backwards.
	got, err = svc.UpdateStatus(ctx, purchase.ID, models.StatusPending, 1, models.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, got.Status)

	_, err = svc.UpdateStatus(ctx, purchase.ID, "teleported", 1, models.RoleUser)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateStatus(ctx, purchase.ID, models.StatusShipped, 2, models.RoleUser)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.UpdateStatus(ctx, 9999, models.StatusShipped, 1, models.RoleUser)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPurchaseListing(t *testing.T) {
	svc := &PurchaseService{Repo: newTestRepo(t)}
	ctx := context.Background()

	_, _, err := svc.Create(ctx, 1, codOrder())
	require.NoError(t, err)
	_, _, err = svc.Create(ctx, 1, codOrder())
	require.NoError(t, err)
	_, _, err = svc.Create(ctx, 2, codOrder())
	require.NoError(t, err)

	mine, err := svc.ListForUser(ctx, 1, 20, 0)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	_, err = svc.ListAll(ctx, models.RoleUser, 20, 0)
	assert.ErrorIs(t, err, ErrForbidden)

	all, err := svc.ListAll(ctx, models.RoleAdmin, 20, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
