package services

import (
	"context"
	"testing"

	"github.com/Rakhulsr/ace-genuine-parts/app/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) wishlistService() *WishlistService {
	return NewWishlistService(f.db, f.wishlist, f.cart, f.products)
}

func TestWishlistAdd_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := uuid.New().String()
	p := f.product(t, "Hydraulic Filter", "1000")
	svc := f.wishlistService()

	exists, count, err := svc.Add(ctx, userID, p.ID)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, int64(1), count)

	exists, count, err = svc.Add(ctx, userID, p.ID)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, int64(1), count)

	_, _, err = svc.Add(ctx, userID, uuid.New().String())
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestWishlistAdd_DuplicateInsertIsNoop(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := uuid.New().String()
	p := f.product(t, "Hydraulic Filter", "1000")

	inserted, err := f.wishlist.Add(ctx, nil, &models.WishlistItem{UserID: userID, ProductID: p.ID})
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = f.wishlist.Add(ctx, nil, &models.WishlistItem{UserID: userID, ProductID: p.ID})
	require.NoError(t, err)
	assert.False(t, inserted)

	count, err := f.wishlist.Count(ctx, nil, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestWishlist_InactiveProductRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := uuid.New().String()
	p := f.product(t, "Discontinued Seal Kit", "650")
	svc := f.wishlistService()

	_, _, err := svc.Add(ctx, userID, p.ID)
	require.NoError(t, err)
	require.NoError(t, f.db.Model(&models.Product{}).Where("id = ?", p.ID).Update("is_active", false).Error)

	other := uuid.New().String()
	_, _, err = svc.Add(ctx, other, p.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
	_, err = svc.Toggle(ctx, other, p.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = svc.MoveToCart(ctx, userID, p.ID, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)

	inWishlist, err := svc.Check(ctx, userID, p.ID)
	require.NoError(t, err)
	assert.True(t, inWishlist, "row stays when the move is refused")
	cartCount, err := f.cart.CountForUser(ctx, nil, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), cartCount)

	res, err := svc.Toggle(ctx, userID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "removed", res.Action, "inactive products can still be removed")
}

func TestWishlistToggle_CountMatchesRows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := uuid.New().String()
	a := f.product(t, "Hydraulic Filter", "1000")
	b := f.product(t, "Air Filter", "700")
	svc := f.wishlistService()

	res, err := svc.Toggle(ctx, userID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "added", res.Action)
	assert.True(t, res.InWishlist)
	assert.Equal(t, int64(1), res.WishlistCount)

	res, err = svc.Toggle(ctx, userID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.WishlistCount)

	res, err = svc.Toggle(ctx, userID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "removed", res.Action)
	assert.False(t, res.InWishlist)
	assert.Equal(t, int64(1), res.WishlistCount)

	items, count, err := svc.List(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(len(items)), count)
	require.Len(t, items, 1)
	assert.Equal(t, b.ID, items[0].ProductID)
	require.NotNil(t, items[0].Product)
	assert.Equal(t, "Air Filter", items[0].Product.Name)

	in, err := svc.Check(ctx, userID, a.ID)
	require.NoError(t, err)
	assert.False(t, in)
}

func TestWishlistRemove_Missing(t *testing.T) {
	f := newFixture(t)

	_, err := f.wishlistService().Remove(context.Background(), uuid.New().String(), uuid.New().String())
	assert.ErrorIs(t, err, ErrNotInWishlist)
}

func TestWishlistMoveToCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := uuid.New().String()
	p := f.product(t, "Hydraulic Filter", "1000")
	svc := f.wishlistService()

	_, err := f.cart.AddOrIncrement(ctx, nil, userID, p.ID, 1)
	require.NoError(t, err)
	_, _, err = svc.Add(ctx, userID, p.ID)
	require.NoError(t, err)

	res, err := svc.MoveToCart(ctx, userID, p.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.WishlistCount)
	assert.Equal(t, int64(1), res.CartCount)
	assert.Equal(t, 2, res.CartItem.Quantity, "existing cart row is incremented")

	item, err := f.cart.Find(ctx, nil, userID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	_, err = svc.MoveToCart(ctx, userID, p.ID, 1)
	assert.ErrorIs(t, err, ErrNotInWishlist)
}

func TestCartService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := uuid.New().String()
	p := f.product(t, "Hydraulic Filter", "1000")
	svc := NewCartService(f.cart, f.products, "₹")

	empty, err := svc.GetCart(ctx, userID, "")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.ItemCount)
	assert.True(t, empty.Summary.Total.IsZero())

	_, err = svc.AddItem(ctx, userID, p.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, userID, p.ID, 1)
	require.NoError(t, err)

	cart, err := svc.GetCart(ctx, userID, "")
	require.NoError(t, err)
	assert.Equal(t, 1, cart.ItemCount)
	assert.Equal(t, "2459.00", cart.Summary.Total.StringFixed(2))
	assert.Equal(t, "₹2,459.00", cart.FormattedTotal)

	require.NoError(t, svc.UpdateQuantity(ctx, userID, p.ID, 5))
	cart, err = svc.GetCart(ctx, userID, "fast_track")
	require.NoError(t, err)
	assert.Equal(t, "499.00", cart.Summary.DeliveryFee.StringFixed(2))

	require.NoError(t, svc.UpdateQuantity(ctx, userID, p.ID, 0))
	count, err := svc.Count(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	assert.ErrorIs(t, svc.RemoveItem(ctx, userID, p.ID), ErrNotInCart)
	_, err = svc.AddItem(ctx, userID, uuid.New().String(), 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
