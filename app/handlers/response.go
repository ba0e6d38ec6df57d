package handlers

import (
	"errors"
	"net/http"
	"strings"
	"unicode"

	"github.com/Rakhulsr/ace-genuine-parts/app/helpers"
	"github.com/Rakhulsr/ace-genuine-parts/app/services"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
	"github.com/unrolled/render"
)

type envelope map[string]interface{}

func success(payload envelope) envelope {
	out := envelope{"success": true}
	for k, v := range payload {
		out[k] = v
	}
	return out
}

func renderError(rnd *render.Render, w http.ResponseWriter, status int, message string) {
	rnd.JSON(w, status, envelope{
		"success": false,
		"error":   message,
	})
}

func sentence(msg string) string {
	if msg == "" {
		return msg
	}
	runes := []rune(msg)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// renderServiceError maps service errors onto status codes. Anything
// unrecognised is a 500 carrying the raw message.
func renderServiceError(rnd *render.Render, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrNotDealer):
		renderError(rnd, w, http.StatusForbidden, sentence(err.Error()))
	case services.IsNotFound(err):
		renderError(rnd, w, http.StatusNotFound, sentence(err.Error()))
	case services.IsRejected(err):
		renderError(rnd, w, http.StatusBadRequest, sentence(err.Error()))
	default:
		log.WithFields(log.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Errorf("request failed: %v", err)
		renderError(rnd, w, http.StatusInternalServerError, err.Error())
	}
}

// bind decodes the JSON body into dst and validates it, writing a 400 and
// returning false on failure.
func bind(rnd *render.Render, validate *validator.Validate, w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := helpers.DecodeJSONBody(w, r, dst); err != nil {
		renderError(rnd, w, http.StatusBadRequest, sentence(err.Error()))
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			renderError(rnd, w, http.StatusBadRequest, helpers.ValidationMessage(verrs))
			return false
		}
		renderError(rnd, w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
