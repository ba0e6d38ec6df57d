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

type AddressHandler struct {
	addressSvc *services.AddressService
	render     *render.Render
	validate   *validator.Validate
}

func NewAddressHandler(addressSvc *services.AddressService, r *render.Render, v *validator.Validate) *AddressHandler {
	return &AddressHandler{addressSvc: addressSvc, render: r, validate: v}
}

type AddressRequest struct {
	FullName  string `json:"full_name" validate:"required,max=255"`
	Phone     string `json:"phone" validate:"required,numeric,min=10,max=15"`
	Line1     string `json:"line1" validate:"required"`
	Line2     string `json:"line2"`
	City      string `json:"city" validate:"required,max=100"`
	State     string `json:"state" validate:"required,max=100"`
	Pincode   string `json:"pincode" validate:"required,numeric,len=6"`
	IsDefault bool   `json:"is_default"`
}

func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	addresses, err := h.addressSvc.List(ctx, helpers.UserID(ctx))
	if err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	h.render.JSON(w, http.StatusOK, success(envelope{"data": addresses}))
}

func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AddressRequest
	if !bind(h.render, h.validate, w, r, &req) {
		return
	}

	address, err := h.addressSvc.Create(ctx, helpers.UserID(ctx), &models.Address{
		FullName:  trimmed(req.FullName),
		Phone:     trimmed(req.Phone),
		Line1:     trimmed(req.Line1),
		Line2:     trimmed(req.Line2),
		City:      trimmed(req.City),
		State:     trimmed(req.State),
		Pincode:   trimmed(req.Pincode),
		IsDefault: req.IsDefault,
	})
	if err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	h.render.JSON(w, http.StatusCreated, success(envelope{
		"data":    address,
		"message": "Address saved",
	}))
}

func (h *AddressHandler) SetDefault(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	address, err := h.addressSvc.SetDefault(ctx, helpers.UserID(ctx), mux.Vars(r)["id"])
	if err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	h.render.JSON(w, http.StatusOK, success(envelope{
		"data":    address,
		"message": "Default address updated",
	}))
}

func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.addressSvc.Delete(ctx, helpers.UserID(ctx), mux.Vars(r)["id"]); err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	h.render.JSON(w, http.StatusOK, success(envelope{"message": "Address deleted"}))
}
