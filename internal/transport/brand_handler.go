package transport

import (
	"net/http"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/middleware"
	"catalog-admin/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBrandRequest represents the brand creation payload. The subcategory id
// may come from the path instead of the body.
type CreateBrandRequest struct {
	Name          string `json:"name" validate:"required,max=255"`
	SubCategoryID string `json:"subCategoryId" validate:"omitempty,uuid"`
	Description   string `json:"description" validate:"max=2000"`
	Website       string `json:"website" validate:"omitempty,url,max=500"`
	Logo          string `json:"logo" validate:"omitempty,url,max=500"`
	IsActive      *bool  `json:"isActive"`
}

// UpdateBrandRequest represents a partial brand update. Sending an empty slug
// regenerates it from the name.
type UpdateBrandRequest struct {
	Name          *string `json:"name" validate:"omitempty,max=255"`
	Slug          *string `json:"slug" validate:"omitempty,max=300"`
	SubCategoryID *string `json:"subCategoryId" validate:"omitempty,uuid"`
	Description   *string `json:"description" validate:"omitempty,max=2000"`
	Website       *string `json:"website" validate:"omitempty,max=500"`
	Logo          *string `json:"logo" validate:"omitempty,max=500"`
	IsActive      *bool   `json:"isActive"`
}

// BrandHandler handles HTTP requests for brands
type BrandHandler struct {
	brandService service.BrandService
	logger       *zap.Logger
}

func NewBrandHandler(brandService service.BrandService, logger *zap.Logger) *BrandHandler {
	return &BrandHandler{
		brandService: brandService,
		logger:       logger,
	}
}

// RegisterRoutes registers all brand routes
func (h *BrandHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/brands", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/subcategories/{subCategoryId}", h.ListBySubCategory)
		r.Post("/subcategories/{subCategoryId}", h.CreateInSubCategory)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *BrandHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBrandRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}
	if req.SubCategoryID == "" {
		middleware.RespondWithValidationErrors(w, []middleware.ValidationError{
			{Field: "subCategoryId", Message: "This field is required"},
		})
		return
	}

	h.create(w, r, uuid.MustParse(req.SubCategoryID), req)
}

// CreateInSubCategory creates a brand under the subcategory named in the path
func (h *BrandHandler) CreateInSubCategory(w http.ResponseWriter, r *http.Request) {
	subCategoryID, err := pathUUID(r, "subCategoryId")
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	var req CreateBrandRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}

	h.create(w, r, subCategoryID, req)
}

func (h *BrandHandler) create(w http.ResponseWriter, r *http.Request, subCategoryID uuid.UUID, req CreateBrandRequest) {
	brand, err := h.brandService.Create(r.Context(), domain.BrandInput{
		Name:          req.Name,
		SubCategoryID: subCategoryID,
		Description:   req.Description,
		Website:       req.Website,
		Logo:          req.Logo,
		IsActive:      req.IsActive,
	})
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, brand)
}

// List supports ?subCategoryId= filtering and ?expand=subCategory
func (h *BrandHandler) List(w http.ResponseWriter, r *http.Request) {
	subCategoryID, err := queryUUID(r, "subCategoryId")
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	h.list(w, r, subCategoryID)
}

func (h *BrandHandler) ListBySubCategory(w http.ResponseWriter, r *http.Request) {
	subCategoryID, err := pathUUID(r, "subCategoryId")
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	h.list(w, r, &subCategoryID)
}

func (h *BrandHandler) list(w http.ResponseWriter, r *http.Request, subCategoryID *uuid.UUID) {
	brands, err := h.brandService.List(r.Context(), subCategoryID, queryExpand(r))
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, brands)
}

func (h *BrandHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	brand, err := h.brandService.Get(r.Context(), id, queryExpand(r))
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, brand)
}

func (h *BrandHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	var req UpdateBrandRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}

	patch := domain.BrandPatch{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Website:     req.Website,
		Logo:        req.Logo,
		IsActive:    req.IsActive,
	}
	if req.SubCategoryID != nil {
		subCategoryID := uuid.MustParse(*req.SubCategoryID)
		patch.SubCategoryID = &subCategoryID
	}

	brand, err := h.brandService.Update(r.Context(), id, patch)
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, brand)
}

func (h *BrandHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	if err := h.brandService.Delete(r.Context(), id); err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
