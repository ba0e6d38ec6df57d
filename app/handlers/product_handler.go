package handlers

import (
	"net/http"
	"strings"

	"github.com/Rakhulsr/ace-genuine-parts/app/helpers"
	"github.com/Rakhulsr/ace-genuine-parts/app/repositories"
	"github.com/Rakhulsr/ace-genuine-parts/app/utils/format"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/unrolled/render"
)

type ProductHandler struct {
	repo           repositories.ProductRepository
	categoryRepo   repositories.CategoryRepository
	render         *render.Render
	currencySymbol string
}

func NewProductHandler(p repositories.ProductRepository, c repositories.CategoryRepository, r *render.Render, currencySymbol string) *ProductHandler {
	return &ProductHandler{repo: p, categoryRepo: c, render: r, currencySymbol: currencySymbol}
}

func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryRepo.GetAll(r.Context())
	if err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}

	h.render.JSON(w, http.StatusOK, success(envelope{"data": categories}))
}

func (h *ProductHandler) Products(w http.ResponseWriter, r *http.Request) {
	page := helpers.ParsePagination(r)
	filter := repositories.ProductFilter{
		Category: strings.TrimSpace(r.URL.Query().Get("category")),
		Keyword:  strings.TrimSpace(r.URL.Query().Get("q")),
	}

	products, total, err := h.repo.GetPaginated(r.Context(), filter, page.Limit, page.Offset())
	if err != nil {
		log.Printf("ProductHandler.Products: failed to load products: %v", err)
		renderServiceError(h.render, w, r, err)
		return
	}

	h.render.JSON(w, http.StatusOK, success(envelope{
		"data":       products,
		"pagination": page.WithTotal(total),
	}))
}

func (h *ProductHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]

	product, err := h.repo.GetByID(r.Context(), productID)
	if err != nil {
		renderServiceError(h.render, w, r, err)
		return
	}
	if product == nil || !product.IsActive {
		renderError(h.render, w, http.StatusNotFound, "Product not found")
		return
	}

	h.render.JSON(w, http.StatusOK, success(envelope{
		"data":            product,
		"formatted_price": format.Currency(h.currencySymbol, product.Price),
		"in_stock":        product.InStock(),
	}))
}
