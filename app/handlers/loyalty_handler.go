package handlers

import (
	"net/http"

	"github.com/Rakhulsr/ace-genuine-parts/app/helpers"
	"github.com/Rakhulsr/ace-genuine-parts/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
)

type LoyaltyHandler struct {
	loyaltySvc *services.LoyaltyService
	render     *render.Render
	validate   *validator.Validate
}

func NewLoyaltyHandler(loyaltySvc *services.LoyaltyService, r *render.Render, v *validator.Validate) *LoyaltyHandler {
	return &LoyaltyHandler{loyaltySvc: loyaltySvc, render: r, validate: v}
}

type RedeemRequest struct {
	Points      int64  `json:"points" validate:"required,min=1"`
	Description string `json:"description" validate:"max=255"`
}

func (h *LoyaltyHandler) Overview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	overview, err := h.loyaltySvc.Overview(ctx, helpers.UserID(ctx))
	if err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	h.render.JSON(w, http.StatusOK, success(envelope{"data": overview}))
}

func (h *LoyaltyHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RedeemRequest
	if !bind(h.render, h.validate, w, r, &req) {
		return
	}

	description := trimmed(req.Description)
	if description == "" {
		description = "Points redeemed"
	}

	account, err := h.loyaltySvc.Redeem(ctx, helpers.UserID(ctx), req.Points, description)
	if err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	h.render.JSON(w, http.StatusOK, success(envelope{
		"data":    account,
		"message": "Points redeemed",
	}))
}
