package services

import (
	"context"
	"testing"

	"github.com/Rakhulsr/ace-genuine-parts/app/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAddress(line1 string, isDefault bool) *models.Address {
	return &models.Address{
		FullName:  "Ravi Kumar",
		Phone:     "9876543210",
		Line1:     line1,
		City:      "Faridabad",
		State:     "Haryana",
		Pincode:   "121005",
		IsDefault: isDefault,
	}
}

func defaults(addresses []models.Address) []string {
	var ids []string
	for _, a := range addresses {
		if a.IsDefault {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

func TestAddressService_DefaultHandling(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := uuid.New().String()
	svc := NewAddressService(f.db, f.addresses)

	first, err := svc.Create(ctx, userID, newAddress("Plot 1", false))
	require.NoError(t, err)
	assert.True(t, first.IsDefault, "first address becomes default")

	second, err := svc.Create(ctx, userID, newAddress("Plot 2", false))
	require.NoError(t, err)
	assert.False(t, second.IsDefault)

	third, err := svc.Create(ctx, userID, newAddress("Plot 3", true))
	require.NoError(t, err)

	list, err := svc.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{third.ID}, defaults(list))
	assert.Equal(t, third.ID, list[0].ID, "default is listed first")

	_, err = svc.SetDefault(ctx, userID, second.ID)
	require.NoError(t, err)
	list, _ = svc.List(ctx, userID)
	assert.Equal(t, []string{second.ID}, defaults(list))

	_, err = svc.SetDefault(ctx, uuid.New().String(), first.ID)
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestAddressService_DeleteDefaultPromotesAnother(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := uuid.New().String()
	svc := NewAddressService(f.db, f.addresses)

	first, err := svc.Create(ctx, userID, newAddress("Plot 1", false))
	require.NoError(t, err)
	second, err := svc.Create(ctx, userID, newAddress("Plot 2", false))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, userID, first.ID))

	list, err := svc.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{second.ID}, defaults(list))

	assert.ErrorIs(t, svc.Delete(ctx, userID, first.ID), ErrAddressNotFound)
}
