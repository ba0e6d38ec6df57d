package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/Rakhulsr/ace-genuine-parts/app/auth"
	"github.com/Rakhulsr/ace-genuine-parts/app/models"
	"github.com/go-playground/validator/v10"
)

type contextKey string

const (
	ContextKeyIdentity contextKey = "identity"
	ContextKeyDealer   contextKey = "dealer"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 50
)

func WithIdentity(ctx context.Context, identity *auth.Identity) context.Context {
	return context.WithValue(ctx, ContextKeyIdentity, identity)
}

func IdentityFromContext(ctx context.Context) *auth.Identity {
	identity, _ := ctx.Value(ContextKeyIdentity).(*auth.Identity)
	return identity
}

// UserID returns the authenticated subject, or "" for anonymous requests.
func UserID(ctx context.Context) string {
	if identity := IdentityFromContext(ctx); identity != nil {
		return identity.UserID
	}
	return ""
}

func WithDealer(ctx context.Context, dealer *models.Dealer) context.Context {
	return context.WithValue(ctx, ContextKeyDealer, dealer)
}

func DealerFromContext(ctx context.Context) *models.Dealer {
	dealer, _ := ctx.Value(ContextKeyDealer).(*models.Dealer)
	return dealer
}

const maxBodyBytes = 1 << 20

// DecodeJSONBody reads a single JSON object from the request body. An empty
// body decodes to the zero value.
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if dec.More() {
		return errors.New("invalid JSON body: multiple JSON values")
	}
	return nil
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

func (p Pagination) WithTotal(total int64) Pagination {
	p.Total = total
	p.TotalPages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return p
}

// ParsePagination reads page/limit query params, clamping bad values to
// defaults instead of rejecting the request.
func ParsePagination(r *http.Request) Pagination {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	return Pagination{Page: page, Limit: limit}
}

// NewValidator reports json field names in validation errors.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range errs {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("%s is required", field)
		case "email":
			errorMessages[field] = fmt.Sprintf("%s must be a valid email address", field)
		case "numeric":
			errorMessages[field] = fmt.Sprintf("%s must be a number", field)
		case "min", "gte":
			errorMessages[field] = fmt.Sprintf("%s must be at least %s", field, err.Param())
		case "max", "lte":
			errorMessages[field] = fmt.Sprintf("%s must be at most %s", field, err.Param())
		case "oneof":
			errorMessages[field] = fmt.Sprintf("%s must be one of [%s]", field, err.Param())
		default:
			errorMessages[field] = fmt.Sprintf("%s failed %s validation", field, err.Tag())
		}
	}
	return errorMessages
}

// ValidationMessage flattens validation errors into one sorted line.
func ValidationMessage(errs validator.ValidationErrors) string {
	messages := FormatValidationErrors(errs)
	parts := make([]string, 0, len(messages))
	for _, msg := range messages {
		parts = append(parts, msg)
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}
