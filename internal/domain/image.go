package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ImageType is the role an image plays for its product
type ImageType string

const (
	ImageTypeMain      ImageType = "main"
	ImageTypeGallery   ImageType = "gallery"
	ImageTypeThumbnail ImageType = "thumbnail"
	ImageTypeZoom      ImageType = "zoom"
)

func (t ImageType) Valid() bool {
	switch t {
	case ImageTypeMain, ImageTypeGallery, ImageTypeThumbnail, ImageTypeZoom:
		return true
	}
	return false
}

// ProductImage is image metadata attached to a product and optionally to one of its variants
type ProductImage struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	ProductID uuid.UUID  `json:"productId" db:"product_id"`
	VariantID *uuid.UUID `json:"variantId,omitempty" db:"variant_id"`
	URL       string     `json:"url" db:"url"`
	AltText   string     `json:"altText,omitempty" db:"alt_text"`
	SortOrder int        `json:"sortOrder" db:"sort_order"`
	IsPrimary bool       `json:"isPrimary" db:"is_primary"`
	ImageType ImageType  `json:"imageType" db:"image_type"`
	FileSize  *int64     `json:"fileSize,omitempty" db:"file_size"`
	MimeType  string     `json:"mimeType,omitempty" db:"mime_type"`
	Width     *int       `json:"width,omitempty" db:"width"`
	Height    *int       `json:"height,omitempty" db:"height"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
}

type ProductImageInput struct {
	ProductID uuid.UUID
	VariantID *uuid.UUID
	URL       string
	AltText   string
	SortOrder *int
	IsPrimary bool
	ImageType ImageType
	FileSize  *int64
	MimeType  string
	Width     *int
	Height    *int
}

func NewProductImage(in ProductImageInput, now time.Time) (*ProductImage, error) {
	img := &ProductImage{
		ID:        uuid.New(),
		ProductID: in.ProductID,
		VariantID: in.VariantID,
		URL:       strings.TrimSpace(in.URL),
		AltText:   in.AltText,
		IsPrimary: in.IsPrimary,
		ImageType: in.ImageType,
		FileSize:  in.FileSize,
		MimeType:  in.MimeType,
		Width:     in.Width,
		Height:    in.Height,
		CreatedAt: now,
	}
	if in.SortOrder != nil {
		img.SortOrder = *in.SortOrder
	}
	if img.ImageType == "" {
		img.ImageType = ImageTypeMain
	}
	return img, img.Validate()
}

func (img *ProductImage) Validate() error {
	if img.URL == "" {
		return NewValidationError("url", "is required")
	}
	if !img.ImageType.Valid() {
		return NewValidationError("imageType", "must be one of main, gallery, thumbnail, zoom")
	}
	if img.FileSize != nil && *img.FileSize < 0 {
		return NewValidationError("fileSize", "must be greater than or equal to 0")
	}
	if img.Width != nil && *img.Width < 0 {
		return NewValidationError("width", "must be greater than or equal to 0")
	}
	if img.Height != nil && *img.Height < 0 {
		return NewValidationError("height", "must be greater than or equal to 0")
	}
	return nil
}
