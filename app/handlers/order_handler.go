package handlers

import (
	"net/http"

	"github.com/Rakhulsr/ace-genuine-parts/app/helpers"
	"github.com/Rakhulsr/ace-genuine-parts/app/models"
	"github.com/Rakhulsr/ace-genuine-parts/app/services"
	"github.com/Rakhulsr/ace-genuine-parts/app/utils/format"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/unrolled/render"
)

type OrderHandler struct {
	orderSvc       *services.OrderService
	render         *render.Render
	validate       *validator.Validate
	currencySymbol string
}

func NewOrderHandler(orderSvc *services.OrderService, r *render.Render, v *validator.Validate, currencySymbol string) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc, render: r, validate: v, currencySymbol: currencySymbol}
}

type OrderItemRequest struct {
	ProductID   string           `json:"product_id" validate:"required"`
	ProductName string           `json:"product_name" validate:"required"`
	PartNumber  string           `json:"part_number"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Quantity    int              `json:"quantity" validate:"required,min=1"`
}

type CreateOrderRequest struct {
	Items          []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	AddressID      string             `json:"address_id"`
	DeliveryOption string             `json:"delivery_option" validate:"omitempty,oneof=standard fast_track"`
	PaymentMethod  string             `json:"payment_method" validate:"omitempty,oneof=cod upi card netbanking"`
	Notes          string             `json:"notes" validate:"max=1000"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := helpers.UserID(ctx)
	page := helpers.ParsePagination(r)
	status := r.URL.Query().Get("status")

	orders, total, err := h.orderSvc.ListOrders(ctx, userID, status, page.Limit, page.Offset())
	if err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	h.render.JSON(w, http.StatusOK, success(envelope{
		"data":       orders,
		"pagination": page.WithTotal(total),
	}))
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := mux.Vars(r)["id"]

	order, err := h.orderSvc.GetOrder(ctx, helpers.UserID(ctx), orderID)
	if err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	h.render.JSON(w, http.StatusOK, success(envelope{"data": order}))
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := helpers.UserID(ctx)

	var req CreateOrderRequest
	if !bind(h.render, h.validate, w, r, &req) {
		return
	}

	in := services.CreateOrderInput{
		AddressID:      trimmed(req.AddressID),
		DeliveryOption: req.DeliveryOption,
		PaymentMethod:  req.PaymentMethod,
		Notes:          trimmed(req.Notes),
	}
	if in.DeliveryOption == "" {
		in.DeliveryOption = models.DeliveryOptionStandard
	}
	if in.PaymentMethod == "" {
		in.PaymentMethod = models.PaymentMethodCOD
	}

	for _, item := range req.Items {
		if item.Price.IsNegative() {
			renderError(h.render, w, http.StatusBadRequest, "price must not be negative")
			return
		}
		in.Items = append(in.Items, services.OrderLineInput{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			PartNumber:  item.PartNumber,
			Price:       *item.Price,
			Quantity:    item.Quantity,
		})
	}

	order, err := h.orderSvc.CreateOrder(ctx, userID, in)
	if err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	log.Printf("OrderHandler.CreateOrder: order %s placed by user %s", order.OrderNumber, userID)
	h.render.JSON(w, http.StatusCreated, success(envelope{
		"order":           order,
		"formatted_total": format.Currency(h.currencySymbol, order.TotalAmount),
		"message":         "Order placed successfully",
	}))
}

func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := mux.Vars(r)["id"]

	var req CancelOrderRequest
	if !bind(h.render, h.validate, w, r, &req) {
		return
	}

	order, err := h.orderSvc.CancelOrder(ctx, helpers.UserID(ctx), orderID, trimmed(req.Reason))
	if err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	h.render.JSON(w, http.StatusOK, success(envelope{
		"message":       "Order cancelled successfully",
		"refund_amount": order.TotalAmount,
		"order":         order,
	}))
}
