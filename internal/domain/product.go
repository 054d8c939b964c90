package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// maxPrice is the first value the NUMERIC(12, 2) price column cannot hold
var maxPrice = decimal.New(1, 10)

func init() {
	// Prices travel as JSON numbers, matching what the admin UI sends.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product belongs to a SubCategory, optionally to a Brand, and owns its variants.
// InStock is derived from Variants and is never set from input.
type Product struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	Name          string          `json:"name" db:"name"`
	SubCategoryID uuid.UUID       `json:"subCategoryId" db:"sub_category_id"`
	BrandID       *uuid.UUID      `json:"brandId,omitempty" db:"brand_id"`
	Price         decimal.Decimal `json:"price" db:"price"`
	Description   string          `json:"description,omitempty" db:"description"`
	InStock       bool            `json:"inStock" db:"in_stock"`
	Variants      Variants        `json:"variants" db:"variants"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time       `json:"updatedAt" db:"updated_at"`

	SubCategory *SubCategory `json:"subCategory,omitempty" db:"-"`
	Brand       *Brand       `json:"brand,omitempty" db:"-"`
}

type ProductInput struct {
	Name          string
	SubCategoryID uuid.UUID
	BrandID       *uuid.UUID
	Price         decimal.Decimal
	Description   string
	Variants      []Variant
}

// ProductPatch is a partial product update. A nil Variants pointer keeps the
// stored variants; ClearBrand detaches the brand.
type ProductPatch struct {
	Name          *string
	SubCategoryID *uuid.UUID
	BrandID       *uuid.UUID
	ClearBrand    bool
	Price         *decimal.Decimal
	Description   *string
	Variants      *[]Variant
}

// ProductFilter narrows a product listing
type ProductFilter struct {
	SubCategoryID *uuid.UUID
	BrandID       *uuid.UUID
	InStock       *bool
}

// NewProduct builds a product from input. Variants are normalized and
// InStock is derived before the product is returned.
func NewProduct(in ProductInput, now time.Time) (*Product, error) {
	variants, err := NormalizeVariants(in.Variants)
	if err != nil {
		return nil, err
	}
	p := &Product{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(in.Name),
		SubCategoryID: in.SubCategoryID,
		BrandID:       in.BrandID,
		Price:         in.Price,
		Description:   in.Description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	p.SetVariants(variants)
	return p, p.Validate()
}

// SetVariants replaces the variants and re-derives InStock
func (p *Product) SetVariants(vs Variants) {
	if vs == nil {
		vs = Variants{}
	}
	p.Variants = vs
	p.InStock = ComputeInStock(vs)
}

func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return NewValidationError("name", "is required")
	}
	if p.SubCategoryID == uuid.Nil {
		return NewValidationError("subCategoryId", "is required")
	}
	if p.Price.IsNegative() {
		return NewValidationError("price", "must be greater than or equal to 0")
	}
	if p.Price.GreaterThanOrEqual(maxPrice) {
		return NewValidationError("price", "must be less than 10000000000")
	}
	return nil
}

// Apply copies the patch onto the product, normalizing replacement variants
func (pp ProductPatch) Apply(p *Product) error {
	if pp.Name != nil {
		p.Name = strings.TrimSpace(*pp.Name)
	}
	if pp.SubCategoryID != nil {
		p.SubCategoryID = *pp.SubCategoryID
	}
	if pp.ClearBrand {
		p.BrandID = nil
	} else if pp.BrandID != nil {
		id := *pp.BrandID
		p.BrandID = &id
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.Variants != nil {
		variants, err := NormalizeVariants(*pp.Variants)
		if err != nil {
			return err
		}
		p.SetVariants(variants)
	}
	return p.Validate()
}

// TouchesHierarchy reports whether the patch changes the subcategory or brand
func (pp ProductPatch) TouchesHierarchy() bool {
	return pp.SubCategoryID != nil || pp.BrandID != nil
}

// CheckBrandConsistency enforces that a product's brand lives under the
// product's own subcategory. A brand may have been moved since the product
// was created, so the reason names both subcategories.
func CheckBrandConsistency(p *Product, brand *Brand) error {
	if brand == nil {
		return nil
	}
	if brand.SubCategoryID != p.SubCategoryID {
		return NewValidationError("brandId", fmt.Sprintf(
			"brand_subcategory_mismatch: brand %s belongs to subcategory %s but the product is in subcategory %s; "+
				"set subCategoryId to the brand's subcategory or choose another brand",
			brand.ID, brand.SubCategoryID, p.SubCategoryID))
	}
	return nil
}
