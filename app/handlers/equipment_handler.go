package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Rakhulsr/ace-genuine-parts/app/helpers"
	"github.com/Rakhulsr/ace-genuine-parts/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type EquipmentHandler struct {
	equipmentSvc *services.EquipmentService
	render       *render.Render
	validate     *validator.Validate
}

func NewEquipmentHandler(equipmentSvc *services.EquipmentService, r *render.Render, v *validator.Validate) *EquipmentHandler {
	return &EquipmentHandler{equipmentSvc: equipmentSvc, render: r, validate: v}
}

// EquipmentRequest is shared by create and update. Dates accept either
// 2006-01-02 or RFC 3339.
type EquipmentRequest struct {
	Model               *string `json:"model" validate:"omitempty,min=1,max=150"`
	SerialNumber        *string `json:"serial_number" validate:"omitempty,min=1,max=100"`
	Category            *string `json:"category" validate:"omitempty,max=100"`
	Status              *string `json:"status" validate:"omitempty,oneof=active maintenance inactive"`
	HoursUsed           *int    `json:"hours_used" validate:"omitempty,min=0"`
	PurchaseDate        *string `json:"purchase_date"`
	LastServiceDate     *string `json:"last_service_date"`
	NextServiceDate     *string `json:"next_service_date"`
	ServiceIntervalDays *int    `json:"service_interval_days" validate:"omitempty,min=1,max=3650"`
	Notes               *string `json:"notes"`
}

type ServiceLogRequest struct {
	HoursUsed *int   `json:"hours_used" validate:"omitempty,min=0"`
	Notes     string `json:"notes"`
}

func parseDate(field string, value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, *value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%s must be a date (YYYY-MM-DD)", field)
}

func (req EquipmentRequest) toInput() (services.EquipmentInput, error) {
	in := services.EquipmentInput{
		Model:               req.Model,
		SerialNumber:        req.SerialNumber,
		Category:            req.Category,
		Status:              req.Status,
		HoursUsed:           req.HoursUsed,
		ServiceIntervalDays: req.ServiceIntervalDays,
		Notes:               req.Notes,
	}

	var err error
	if in.PurchaseDate, err = parseDate("purchase_date", req.PurchaseDate); err != nil {
		return in, err
	}
	if in.LastServiceDate, err = parseDate("last_service_date", req.LastServiceDate); err != nil {
		return in, err
	}
	if in.NextServiceDate, err = parseDate("next_service_date", req.NextServiceDate); err != nil {
		return in, err
	}
	return in, nil
}

func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	machines, err := h.equipmentSvc.List(ctx, helpers.UserID(ctx))
	if err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	h.render.JSON(w, http.StatusOK, success(envelope{"data": machines}))
}

func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req EquipmentRequest
	if !bind(h.render, h.validate, w, r, &req) {
		return
	}
	if req.Model == nil || req.SerialNumber == nil {
		renderError(h.render, w, http.StatusBadRequest, "model and serial_number are required")
		return
	}

	in, err := req.toInput()
	if err != nil {
		renderError(h.render, w, http.StatusBadRequest, err.Error())
		return
	}

	machine, err := h.equipmentSvc.Create(ctx, helpers.UserID(ctx), in)
	if err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	h.render.JSON(w, http.StatusCreated, success(envelope{
		"data":    machine,
		"message": "Equipment added",
	}))
}

func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req EquipmentRequest
	if !bind(h.render, h.validate, w, r, &req) {
		return
	}

	in, err := req.toInput()
	if err != nil {
		renderError(h.render, w, http.StatusBadRequest, err.Error())
		return
	}

	machine, err := h.equipmentSvc.Update(ctx, helpers.UserID(ctx), mux.Vars(r)["id"], in)
	if err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	h.render.JSON(w, http.StatusOK, success(envelope{
		"data":    machine,
		"message": "Equipment updated",
	}))
}

func (h *EquipmentHandler) LogService(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ServiceLogRequest
	if !bind(h.render, h.validate, w, r, &req) {
		return
	}

	machine, err := h.equipmentSvc.LogService(ctx, helpers.UserID(ctx), mux.Vars(r)["id"], req.HoursUsed, trimmed(req.Notes))
	if err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	h.render.JSON(w, http.StatusOK, success(envelope{
		"data":    machine,
		"message": "Service recorded",
	}))
}

func (h *EquipmentHandler) Maintenance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summary, err := h.equipmentSvc.Summary(ctx, helpers.UserID(ctx))
	if err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	h.render.JSON(w, http.StatusOK, success(envelope{"data": summary}))
}
