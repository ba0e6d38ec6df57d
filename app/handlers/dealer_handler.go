package handlers

import (
	"net/http"
	"time"

	"github.com/Rakhulsr/ace-genuine-parts/app/helpers"
	"github.com/Rakhulsr/ace-genuine-parts/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

// DealerHandler serves the back-office. Routes sit behind the dealer gate,
// which puts the caller's dealer row in the request context.
type DealerHandler struct {
	dealerSvc *services.DealerService
	render    *render.Render
	validate  *validator.Validate
}

func NewDealerHandler(dealerSvc *services.DealerService, r *render.Render, v *validator.Validate) *DealerHandler {
	return &DealerHandler{dealerSvc: dealerSvc, render: r, validate: v}
}

type InventoryRequest struct {
	Quantity     int             `json:"quantity" validate:"min=0"`
	DealerPrice  decimal.Decimal `json:"dealer_price"`
	ReorderLevel int             `json:"reorder_level" validate:"min=0"`
}

type OrderStatusRequest struct {
	Status       string `json:"status" validate:"required,oneof=preparing shipped out_for_delivery delivered"`
	Location     string `json:"location" validate:"max=255"`
	Note         string `json:"note" validate:"max=1000"`
	CourierName  string `json:"courier_name" validate:"max=100"`
	CourierPhone string `json:"courier_phone" validate:"omitempty,numeric,max=20"`
}

type OfferRequest struct {
	ProductID       *string         `json:"product_id"`
	Title           string          `json:"title" validate:"required,max=255"`
	Description     string          `json:"description"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	ValidFrom       *time.Time      `json:"valid_from"`
	ValidUntil      time.Time       `json:"valid_until" validate:"required"`
}

var maxDiscount = decimal.NewFromInt(100)

func (h *DealerHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dashboard, err := h.dealerSvc.Dashboard(ctx, helpers.DealerFromContext(ctx))
	if err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	h.render.JSON(w, http.StatusOK, success(envelope{"data": dashboard}))
}

func (h *DealerHandler) Inventory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := h.dealerSvc.Inventory(ctx, helpers.DealerFromContext(ctx))
	if err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	h.render.JSON(w, http.StatusOK, success(envelope{"data": items}))
}

func (h *DealerHandler) UpsertInventory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req InventoryRequest
	if !bind(h.render, h.validate, w, r, &req) {
		return
	}
	if req.DealerPrice.IsNegative() {
		renderError(h.render, w, http.StatusBadRequest, "dealer_price must not be negative")
		return
	}

	item, err := h.dealerSvc.UpsertInventory(ctx, helpers.DealerFromContext(ctx), mux.Vars(r)["productId"], services.InventoryInput{
		Quantity:     req.Quantity,
		DealerPrice:  req.DealerPrice,
		ReorderLevel: req.ReorderLevel,
	})
	if err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	h.render.JSON(w, http.StatusOK, success(envelope{
		"data":    item,
		"message": "Inventory updated",
	}))
}

func (h *DealerHandler) Orders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page := helpers.ParsePagination(r)

	orders, total, err := h.dealerSvc.Orders(ctx, helpers.DealerFromContext(ctx), r.URL.Query().Get("status"), page.Limit, page.Offset())
	if err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	h.render.JSON(w, http.StatusOK, success(envelope{
		"data":       orders,
		"pagination": page.WithTotal(total),
	}))
}

func (h *DealerHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req OrderStatusRequest
	if !bind(h.render, h.validate, w, r, &req) {
		return
	}

	order, err := h.dealerSvc.UpdateOrderStatus(ctx, helpers.DealerFromContext(ctx), mux.Vars(r)["id"], services.StatusUpdateInput{
		Status:       req.Status,
		Location:     trimmed(req.Location),
		Note:         trimmed(req.Note),
		CourierName:  trimmed(req.CourierName),
		CourierPhone: trimmed(req.CourierPhone),
	})
	if err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	h.render.JSON(w, http.StatusOK, success(envelope{
		"order":   order,
		"message": "Order status updated",
	}))
}

func (h *DealerHandler) Offers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	activeOnly := r.URL.Query().Get("active") == "true"

	offers, err := h.dealerSvc.Offers(ctx, helpers.DealerFromContext(ctx), activeOnly)
	if err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	h.render.JSON(w, http.StatusOK, success(envelope{"data": offers}))
}

func (h *DealerHandler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req OfferRequest
	if !bind(h.render, h.validate, w, r, &req) {
		return
	}
	if !req.DiscountPercent.IsPositive() || req.DiscountPercent.GreaterThan(maxDiscount) {
		renderError(h.render, w, http.StatusBadRequest, "discount_percent must be between 0 and 100")
		return
	}

	in := services.OfferInput{
		ProductID:       req.ProductID,
		Title:           trimmed(req.Title),
		Description:     trimmed(req.Description),
		DiscountPercent: req.DiscountPercent,
		ValidUntil:      req.ValidUntil,
	}
	if req.ValidFrom != nil {
		in.ValidFrom = *req.ValidFrom
	}

	offer, err := h.dealerSvc.CreateOffer(ctx, helpers.DealerFromContext(ctx), in)
	if err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	h.render.JSON(w, http.StatusCreated, success(envelope{
		"data":    offer,
		"message": "Offer created",
	}))
}

func (h *DealerHandler) DeactivateOffer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.dealerSvc.DeactivateOffer(ctx, helpers.DealerFromContext(ctx), mux.Vars(r)["id"]); err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	h.render.JSON(w, http.StatusOK, success(envelope{"message": "Offer deactivated"}))
}
