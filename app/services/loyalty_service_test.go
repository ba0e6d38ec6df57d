package services

import (
	"context"
	"testing"

	"github.com/Rakhulsr/ace-genuine-parts/app/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestLoyaltyOverview_CreatesBronzeAccount(t *testing.T) {
	f := newFixture(t)
	userID := uuid.New().String()

	overview, err := f.loyaltyService().Overview(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "bronze", overview.Tier)
	assert.Equal(t, "silver", overview.NextTier)
	assert.Equal(t, int64(1000), overview.PointsToNextTier)
	assert.Equal(t, int64(0), overview.Account.PointsBalance)
	assert.Len(t, overview.Tiers, 4)
	assert.Empty(t, overview.Transactions)
}

func TestLoyaltyAccount_DuplicateCreateKeepsFirstRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := uuid.New().String()

	first := &models.LoyaltyAccount{UserID: userID, Tier: "bronze", PointsBalance: 50, LifetimePoints: 50}
	require.NoError(t, f.loyalty.CreateAccount(ctx, nil, first))
	require.NoError(t, f.loyalty.CreateAccount(ctx, nil, &models.LoyaltyAccount{UserID: userID, Tier: "bronze"}))

	var rows int64
	require.NoError(t, f.db.Model(&models.LoyaltyAccount{}).Where("user_id = ?", userID).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)

	overview, err := f.loyaltyService().Overview(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, overview.Account.ID)
	assert.Equal(t, int64(50), overview.Account.PointsBalance)
}

func TestLoyaltyCreditAndRedeem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := uuid.New().String()
	svc := f.loyaltyService()
	p := f.product(t, "Final Drive Motor", "120000")
	order := f.placeOrder(t, userID, p)

	var credited int64
	err := f.db.Transaction(func(tx *gorm.DB) error {
		var err error
		credited, err = svc.CreditOrder(ctx, tx, order)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1200), credited)

	overview, err := svc.Overview(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "silver", overview.Tier)
	assert.Equal(t, int64(1200), overview.Account.PointsBalance)
	assert.Equal(t, int64(1200), overview.Account.LifetimePoints)
	require.Len(t, overview.Transactions, 1)
	assert.Equal(t, models.LoyaltyTransactionEarned, overview.Transactions[0].Type)
	require.NotNil(t, overview.Transactions[0].OrderID)
	assert.Equal(t, order.ID, *overview.Transactions[0].OrderID)

	account, err := svc.Redeem(ctx, userID, 200, "Discount on next order")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), account.PointsBalance)
	assert.Equal(t, int64(1200), account.LifetimePoints, "redeeming keeps the tier")

	_, err = svc.Redeem(ctx, userID, 5000, "")
	assert.ErrorIs(t, err, ErrInsufficientPoints)

	overview, err = svc.Overview(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), overview.Account.PointsBalance)
	assert.Len(t, overview.Transactions, 2)
}

func TestLoyaltyRedeem_NoAccount(t *testing.T) {
	f := newFixture(t)

	_, err := f.loyaltyService().Redeem(context.Background(), uuid.New().String(), 10, "")
	assert.ErrorIs(t, err, ErrInsufficientPoints)

	_, err = f.loyaltyService().Redeem(context.Background(), uuid.New().String(), 0, "")
	assert.ErrorIs(t, err, ErrInsufficientPoints)
}
