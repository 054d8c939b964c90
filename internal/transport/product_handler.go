package transport

import (
	"bytes"
	"encoding/json"
	"net/http"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/middleware"
	"catalog-admin/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateProductRequest represents the product creation payload. Variant values
// may be plain strings or {"value","available"} objects.
type CreateProductRequest struct {
	Name          string           `json:"name" validate:"required,max=255"`
	SubCategoryID string           `json:"subCategoryId" validate:"required,uuid"`
	BrandID       *string          `json:"brandId" validate:"omitempty,uuid"`
	Price         *decimal.Decimal `json:"price" validate:"required"`
	Description   string           `json:"description"`
	Variants      []domain.Variant `json:"variants"`
}

// UpdateProductRequest represents a partial product update. inStock is not
// accepted; it always follows the variants. A null brandId detaches the brand.
type UpdateProductRequest struct {
	Name          *string           `json:"name" validate:"omitempty,max=255"`
	SubCategoryID *string           `json:"subCategoryId" validate:"omitempty,uuid"`
	BrandID       json.RawMessage   `json:"brandId"`
	Price         *decimal.Decimal  `json:"price"`
	Description   *string           `json:"description"`
	Variants      *[]domain.Variant `json:"variants"`
}

// AvailabilityRequest is the body of the variant value availability toggle
type AvailabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

// ProductHandler handles HTTP requests for products and their variants
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product and variant routes. The variant
// segment is an index for the availability toggle and an id elsewhere.
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/products", h.List)
	r.Post("/api/products", h.Create)
	r.Get("/api/products/{id}", h.Get)
	r.Put("/api/products/{id}", h.Update)
	r.Patch("/api/products/{id}", h.Update)
	r.Delete("/api/products/{id}", h.Delete)

	r.Get("/api/products/{id}/variants", h.ListVariants)
	r.Post("/api/products/{id}/variants", h.AddVariant)
	r.Put("/api/products/{id}/variants/{variant}", h.UpdateVariant)
	r.Delete("/api/products/{id}/variants/{variant}", h.DeleteVariant)
	r.Patch("/api/products/{id}/variants/{variant}/values/{valueIndex}", h.SetVariantValueAvailability)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}

	in := domain.ProductInput{
		Name:          req.Name,
		SubCategoryID: uuid.MustParse(req.SubCategoryID),
		Price:         *req.Price,
		Description:   req.Description,
		Variants:      req.Variants,
	}
	if req.BrandID != nil {
		brandID := uuid.MustParse(*req.BrandID)
		in.BrandID = &brandID
	}

	product, err := h.productService.Create(r.Context(), in)
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// List supports ?subCategoryId=, ?brandId=, ?inStock= and ?expand=
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		filter domain.ProductFilter
		err    error
	)
	if filter.SubCategoryID, err = queryUUID(r, "subCategoryId"); err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}
	if filter.BrandID, err = queryUUID(r, "brandId"); err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}
	if filter.InStock, err = queryBool(r, "inStock"); err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	products, err := h.productService.List(r.Context(), filter, queryExpand(r))
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	product, err := h.productService.Get(r.Context(), id, queryExpand(r))
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Update applies a partial update for both PUT and PATCH
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	var req UpdateProductRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	product, err := h.productService.Update(r.Context(), id, patch)
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

func (req UpdateProductRequest) toPatch() (domain.ProductPatch, error) {
	patch := domain.ProductPatch{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Variants:    req.Variants,
	}
	if req.SubCategoryID != nil {
		subCategoryID := uuid.MustParse(*req.SubCategoryID)
		patch.SubCategoryID = &subCategoryID
	}

	switch raw := bytes.TrimSpace(req.BrandID); {
	case len(raw) == 0:
	case bytes.Equal(raw, []byte("null")):
		patch.ClearBrand = true
	default:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return patch, domain.NewValidationError("brandId", "must be a UUID string or null")
		}
		brandID, err := uuid.Parse(s)
		if err != nil {
			return patch, domain.NewValidationError("brandId", "must be a valid UUID")
		}
		patch.BrandID = &brandID
	}
	return patch, nil
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	if err := h.productService.Delete(r.Context(), id); err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetVariantValueAvailability toggles one variant value and answers with the
// fully expanded product
func (h *ProductHandler) SetVariantValueAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}
	variantIndex, err := domain.ParseIndex("variantIndex", chi.URLParam(r, "variant"))
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}
	valueIndex, err := domain.ParseIndex("valueIndex", chi.URLParam(r, "valueIndex"))
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	var req AvailabilityRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}

	product, err := h.productService.SetVariantValueAvailability(r.Context(), id, variantIndex, valueIndex, *req.Available)
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) ListVariants(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	variants, err := h.productService.ListVariants(r.Context(), id)
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, variants)
}

func (h *ProductHandler) AddVariant(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	var variant domain.Variant
	if !decodeRequest(w, r, h.logger, &variant) {
		return
	}

	product, err := h.productService.AddVariant(r.Context(), id, variant)
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) UpdateVariant(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}
	variantID, err := pathUUID(r, "variant")
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	var variant domain.Variant
	if !decodeRequest(w, r, h.logger, &variant) {
		return
	}

	product, err := h.productService.UpdateVariant(r.Context(), id, variantID, variant)
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) DeleteVariant(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}
	variantID, err := pathUUID(r, "variant")
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	product, err := h.productService.DeleteVariant(r.Context(), id, variantID)
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}
