package handlers

import (
	"net/http"

	"github.com/Rakhulsr/ace-genuine-parts/app/helpers"
	"github.com/Rakhulsr/ace-genuine-parts/app/services"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type TrackingHandler struct {
	trackingSvc *services.TrackingService
	render      *render.Render
}

func NewTrackingHandler(trackingSvc *services.TrackingService, r *render.Render) *TrackingHandler {
	return &TrackingHandler{trackingSvc: trackingSvc, render: r}
}

func (h *TrackingHandler) Track(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	info, err := h.trackingSvc.Track(ctx, helpers.UserID(ctx), mux.Vars(r)["orderId"])
	if err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	h.render.JSON(w, http.StatusOK, success(envelope{"data": info}))
}

func (h *TrackingHandler) Live(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	live, err := h.trackingSvc.Live(ctx, helpers.UserID(ctx), mux.Vars(r)["trackingNumber"])
	if err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	h.render.JSON(w, http.StatusOK, success(envelope{"data": live}))
}
