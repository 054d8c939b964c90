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

// UpdateSubCategoryRequest represents a partial subcategory update
type UpdateSubCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	CategoryID  *string `json:"categoryId" validate:"omitempty,uuid"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	IsActive    *bool   `json:"isActive"`
}

// SubCategoryHandler handles HTTP requests for subcategories
type SubCategoryHandler struct {
	subCategoryService service.SubCategoryService
	logger             *zap.Logger
}

func NewSubCategoryHandler(subCategoryService service.SubCategoryService, logger *zap.Logger) *SubCategoryHandler {
	return &SubCategoryHandler{
		subCategoryService: subCategoryService,
		logger:             logger,
	}
}

func (h *SubCategoryHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/subcategories", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *SubCategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSubCategoryRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}
	if req.CategoryID == "" {
		middleware.RespondWithValidationErrors(w, []middleware.ValidationError{
			{Field: "categoryId", Message: "This field is required"},
		})
		return
	}

	subCategory, err := h.subCategoryService.Create(r.Context(), domain.SubCategoryInput{
		Name:        req.Name,
		CategoryID:  uuid.MustParse(req.CategoryID),
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, subCategory)
}

// List supports ?categoryId= filtering and ?expand=category
func (h *SubCategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categoryID, err := queryUUID(r, "categoryId")
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	subCategories, err := h.subCategoryService.List(r.Context(), categoryID, queryExpand(r))
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, subCategories)
}

func (h *SubCategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	subCategory, err := h.subCategoryService.Get(r.Context(), id, queryExpand(r))
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, subCategory)
}

func (h *SubCategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	var req UpdateSubCategoryRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}

	patch := domain.SubCategoryPatch{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	}
	if req.CategoryID != nil {
		categoryID := uuid.MustParse(*req.CategoryID)
		patch.CategoryID = &categoryID
	}

	subCategory, err := h.subCategoryService.Update(r.Context(), id, patch)
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, subCategory)
}

func (h *SubCategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	if err := h.subCategoryService.Delete(r.Context(), id); err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
