package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"sweetshop-backend/application/services"
	"sweetshop-backend/domain/catalog"
	"sweetshop-backend/pkg/common"
)

// CatalogHandler serves products and categories.
type CatalogHandler struct {
	catalog *services.CatalogService
	logger  *zap.Logger
}

// NewCatalogHandler creates a catalog handler.
func NewCatalogHandler(catalog *services.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: logger}
}

// ListProducts returns the catalog, filtered and paginated via query
// parameters: category, search, inStock, featured, sort, page, limit.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := catalog.ListFilter{
		CategoryID:  q.Get("category"),
		Search:      q.Get("search"),
		OnlyInStock: q.Get("inStock") == "true",
		Featured:    q.Get("featured") == "true",
		SortBy:      q.Get("sort"),
	}

	products, err := h.catalog.ListProducts(r.Context(), filter)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	params := common.ExtractPaginationParams(r)
	start, end, info := params.Bounds(len(products))
	common.RespondWithMeta(w, http.StatusOK, products[start:end], &common.MetaInfo{Pagination: info})
}

// GetProduct returns one product.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.GetProduct(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, p)
}

// CreateProduct stores a new product.
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var p catalog.Product
	if err := common.ParseJSONBody(r, &p, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	created, err := h.catalog.CreateProduct(r.Context(), p)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, created)
}

// UpdateProduct applies a partial update.
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var patch map[string]interface{}
	if err := common.ParseJSONBody(r, &patch, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	updated, err := h.catalog.UpdateProduct(r.Context(), chi.URLParam(r, "productID"), patch)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, updated)
}

// DeleteProduct removes a product.
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteProduct(r.Context(), chi.URLParam(r, "productID")); err != nil {
		common.RespondAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListCategories returns the navigation categories.
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, cats)
}

// CreateCategory stores a new category.
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var c catalog.Category
	if err := common.ParseJSONBody(r, &c, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	created, err := h.catalog.CreateCategory(r.Context(), c)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, created)
}

// DeleteCategory removes a category.
func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteCategory(r.Context(), chi.URLParam(r, "categoryID")); err != nil {
		common.RespondAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
