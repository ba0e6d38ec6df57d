package handlers

import (
	"net/http"

	"github.com/Rakhulsr/ace-genuine-parts/app/helpers"
	"github.com/Rakhulsr/ace-genuine-parts/app/models"
	"github.com/Rakhulsr/ace-genuine-parts/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type CartHandler struct {
	cartSvc  *services.CartService
	render   *render.Render
	validate *validator.Validate
}

func NewCartHandler(cartSvc *services.CartService, r *render.Render, v *validator.Validate) *CartHandler {
	return &CartHandler{cartSvc: cartSvc, render: r, validate: v}
}

type AddToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1,max=999"`
}

type UpdateCartRequest struct {
	Quantity int `json:"quantity" validate:"min=0,max=999"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	option := r.URL.Query().Get("delivery_option")
	if option != "" && option != models.DeliveryOptionStandard && option != models.DeliveryOptionFastTrack {
		renderError(h.render, w, http.StatusBadRequest, "delivery_option must be one of [standard fast_track]")
		return
	}

	cart, err := h.cartSvc.GetCart(ctx, helpers.UserID(ctx), option)
	if err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	h.render.JSON(w, http.StatusOK, success(envelope{"data": cart}))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := helpers.UserID(ctx)

	var req AddToCartRequest
	if !bind(h.render, h.validate, w, r, &req) {
		return
	}

	item, err := h.cartSvc.AddItem(ctx, userID, req.ProductID, req.Quantity)
	if err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	count, err := h.cartSvc.Count(ctx, userID)
	if err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	h.render.JSON(w, http.StatusOK, success(envelope{
		"message":    "Added to cart",
		"data":       item,
		"cart_count": count,
	}))
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req UpdateCartRequest
	if !bind(h.render, h.validate, w, r, &req) {
		return
	}

	if err := h.cartSvc.UpdateQuantity(ctx, helpers.UserID(ctx), mux.Vars(r)["productId"], req.Quantity); err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	h.render.JSON(w, http.StatusOK, success(envelope{"message": "Cart updated"}))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.cartSvc.RemoveItem(ctx, helpers.UserID(ctx), mux.Vars(r)["productId"]); err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	h.render.JSON(w, http.StatusOK, success(envelope{"message": "Removed from cart"}))
}
