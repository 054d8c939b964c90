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

// CreateProductImageRequest represents image metadata for a product. The
// product comes from the path.
type CreateProductImageRequest struct {
	URL       string  `json:"url" validate:"required,url,max=1000"`
	AltText   string  `json:"altText" validate:"max=500"`
	VariantID *string `json:"variantId" validate:"omitempty,uuid"`
	SortOrder *int    `json:"sortOrder" validate:"omitempty,gte=0"`
	IsPrimary bool    `json:"isPrimary"`
	ImageType string  `json:"imageType" validate:"omitempty,oneof=main gallery thumbnail zoom"`
	FileSize  *int64  `json:"fileSize" validate:"omitempty,gte=0"`
	MimeType  string  `json:"mimeType" validate:"max=100"`
	Width     *int    `json:"width" validate:"omitempty,gte=0"`
	Height    *int    `json:"height" validate:"omitempty,gte=0"`
}

// ProductImageHandler handles HTTP requests for product images
type ProductImageHandler struct {
	imageService service.ProductImageService
	logger       *zap.Logger
}

func NewProductImageHandler(imageService service.ProductImageService, logger *zap.Logger) *ProductImageHandler {
	return &ProductImageHandler{
		imageService: imageService,
		logger:       logger,
	}
}

func (h *ProductImageHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/products/{id}/images", h.List)
	r.Post("/api/products/{id}/images", h.Create)
	r.Delete("/api/products/{id}/images/{imageId}", h.Delete)
}

func (h *ProductImageHandler) Create(w http.ResponseWriter, r *http.Request) {
	productID, err := pathUUID(r, "id")
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	var req CreateProductImageRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}

	in := domain.ProductImageInput{
		ProductID: productID,
		URL:       req.URL,
		AltText:   req.AltText,
		SortOrder: req.SortOrder,
		IsPrimary: req.IsPrimary,
		ImageType: domain.ImageType(req.ImageType),
		FileSize:  req.FileSize,
		MimeType:  req.MimeType,
		Width:     req.Width,
		Height:    req.Height,
	}
	if req.VariantID != nil {
		variantID := uuid.MustParse(*req.VariantID)
		in.VariantID = &variantID
	}

	image, err := h.imageService.Create(r.Context(), in)
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, image)
}

// List returns the product's images ordered by sort order
func (h *ProductImageHandler) List(w http.ResponseWriter, r *http.Request) {
	productID, err := pathUUID(r, "id")
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	images, err := h.imageService.List(r.Context(), productID)
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, images)
}

func (h *ProductImageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	productID, err := pathUUID(r, "id")
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}
	imageID, err := pathUUID(r, "imageId")
	if err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	if err := h.imageService.Delete(r.Context(), productID, imageID); err != nil {
		middleware.RespondWithDomainError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
