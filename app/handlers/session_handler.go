package handlers

import (
	"errors"
	"net/http"

	"github.com/Rakhulsr/ace-genuine-parts/app/helpers"
	"github.com/Rakhulsr/ace-genuine-parts/app/services"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

type SessionHandler struct {
	dealerSvc *services.DealerService
	render    *render.Render
}

func NewSessionHandler(dealerSvc *services.DealerService, r *render.Render) *SessionHandler {
	return &SessionHandler{dealerSvc: dealerSvc, render: r}
}

// Session echoes the verified identity. Sign-out is the client discarding
// its token; nothing is held here.
func (h *SessionHandler) Session(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := helpers.IdentityFromContext(ctx)

	dealer, err := h.dealerSvc.ActiveDealer(ctx, identity.UserID)
	if err != nil && !errors.Is(err, services.ErrNotDealer) {
		renderServiceError(h.render, w, r, err)
		return
	}

	data := envelope{
		"user_id":   identity.UserID,
		"email":     identity.Email,
		"role":      identity.Role,
		"is_dealer": dealer != nil,
	}
	if dealer != nil {
		data["dealer"] = dealer
	}
	h.render.JSON(w, http.StatusOK, success(envelope{"data": data}))
}

type HealthHandler struct {
	db     *gorm.DB
	render *render.Render
}

func NewHealthHandler(db *gorm.DB, r *render.Render) *HealthHandler {
	return &HealthHandler{db: db, render: r}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(r.Context())
	}
	if err != nil {
		h.render.JSON(w, http.StatusServiceUnavailable, envelope{
			"success":  false,
			"status":   "unavailable",
			"database": err.Error(),
		})
		return
	}

	h.render.JSON(w, http.StatusOK, envelope{
		"success":  true,
		"status":   "ok",
		"database": "ok",
	})
}
