package services

import "errors"

var (
	ErrEmptyCart               = errors.New("cart is empty")
	ErrOrderNotFound           = errors.New("order not found")
	ErrOrderNotCancellable     = errors.New("order cannot be cancelled in its current status")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
	ErrProductNotFound         = errors.New("product not found")
	ErrNotInWishlist           = errors.New("product not in wishlist")
	ErrNotInCart               = errors.New("product not in cart")
	ErrAddressNotFound         = errors.New("address not found")
	ErrEquipmentNotFound       = errors.New("equipment not found")
	ErrInsufficientPoints      = errors.New("insufficient loyalty points")
	ErrNotDealer               = errors.New("dealer access required")
	ErrOfferNotFound           = errors.New("offer not found")
	ErrInvalidOfferWindow      = errors.New("offer must end after it starts")
)

// IsNotFound groups the lookups that surface as 404.
func IsNotFound(err error) bool {
	for _, target := range []error{
		ErrOrderNotFound,
		ErrProductNotFound,
		ErrNotInWishlist,
		ErrNotInCart,
		ErrAddressNotFound,
		ErrEquipmentNotFound,
		ErrOfferNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsRejected groups business-rule refusals that surface as 400.
func IsRejected(err error) bool {
	for _, target := range []error{
		ErrEmptyCart,
		ErrOrderNotCancellable,
		ErrInvalidStatusTransition,
		ErrInsufficientPoints,
		ErrInvalidOfferWindow,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
