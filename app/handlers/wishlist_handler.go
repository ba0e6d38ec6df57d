package handlers

import (
	"net/http"

	"github.com/Rakhulsr/ace-genuine-parts/app/helpers"
	"github.com/Rakhulsr/ace-genuine-parts/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type WishlistHandler struct {
	wishlistSvc *services.WishlistService
	render      *render.Render
	validate    *validator.Validate
}

func NewWishlistHandler(wishlistSvc *services.WishlistService, r *render.Render, v *validator.Validate) *WishlistHandler {
	return &WishlistHandler{wishlistSvc: wishlistSvc, render: r, validate: v}
}

type WishlistProductRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type MoveToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1,max=999"`
}

func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, count, err := h.wishlistSvc.List(ctx, helpers.UserID(ctx))
	if err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	h.render.JSON(w, http.StatusOK, success(envelope{
		"data":           items,
		"wishlist_count": count,
	}))
}

func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req WishlistProductRequest
	if !bind(h.render, h.validate, w, r, &req) {
		return
	}

	exists, count, err := h.wishlistSvc.Add(ctx, helpers.UserID(ctx), req.ProductID)
	if err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	message := "Added to wishlist"
	if exists {
		message = "Already in wishlist"
	}
	h.render.JSON(w, http.StatusOK, success(envelope{
		"message":        message,
		"already_exists": exists,
		"wishlist_count": count,
	}))
}

func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	count, err := h.wishlistSvc.Remove(ctx, helpers.UserID(ctx), mux.Vars(r)["productId"])
	if err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	h.render.JSON(w, http.StatusOK, success(envelope{
		"message":        "Removed from wishlist",
		"wishlist_count": count,
	}))
}

func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req WishlistProductRequest
	if !bind(h.render, h.validate, w, r, &req) {
		return
	}

	result, err := h.wishlistSvc.Toggle(ctx, helpers.UserID(ctx), req.ProductID)
	if err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	h.render.JSON(w, http.StatusOK, success(envelope{
		"action":         result.Action,
		"in_wishlist":    result.InWishlist,
		"wishlist_count": result.WishlistCount,
	}))
}

func (h *WishlistHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	in, err := h.wishlistSvc.Check(ctx, helpers.UserID(ctx), mux.Vars(r)["productId"])
	if err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	h.render.JSON(w, http.StatusOK, success(envelope{"in_wishlist": in}))
}

func (h *WishlistHandler) MoveToCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req MoveToCartRequest
	if !bind(h.render, h.validate, w, r, &req) {
		return
	}

	result, err := h.wishlistSvc.MoveToCart(ctx, helpers.UserID(ctx), req.ProductID, req.Quantity)
	if err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	h.render.JSON(w, http.StatusOK, success(envelope{
		"message":        "Moved to cart",
		"cart_item":      result.CartItem,
		"wishlist_count": result.WishlistCount,
		"cart_count":     result.CartCount,
	}))
}
