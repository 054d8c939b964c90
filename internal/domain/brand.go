package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// Brand belongs to exactly one SubCategory
type Brand struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Slug          string    `json:"slug" db:"slug"`
	SubCategoryID uuid.UUID `json:"subCategoryId" db:"sub_category_id"`
	Description   string    `json:"description,omitempty" db:"description"`
	Website       string    `json:"website,omitempty" db:"website"`
	Logo          string    `json:"logo,omitempty" db:"logo"`
	IsActive      bool      `json:"isActive" db:"is_active"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`

	SubCategory *SubCategory `json:"subCategory,omitempty" db:"-"`
}

type BrandInput struct {
	Name          string
	SubCategoryID uuid.UUID
	Description   string
	Website       string
	Logo          string
	IsActive      *bool
}

// BrandPatch is a partial brand update. An empty Slug asks for a fresh slug
// derived from the name.
type BrandPatch struct {
	Name          *string
	Slug          *string
	SubCategoryID *uuid.UUID
	Description   *string
	Website       *string
	Logo          *string
	IsActive      *bool
}

func NewBrand(in BrandInput, now time.Time) *Brand {
	return &Brand{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(in.Name),
		SubCategoryID: in.SubCategoryID,
		Description:   in.Description,
		Website:       in.Website,
		Logo:          in.Logo,
		IsActive:      boolOrDefault(in.IsActive, true),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (b *Brand) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return NewValidationError("name", "is required")
	}
	if b.SubCategoryID == uuid.Nil {
		return NewValidationError("subCategoryId", "is required")
	}
	return nil
}

func (p BrandPatch) Apply(b *Brand) {
	if p.Name != nil {
		b.Name = strings.TrimSpace(*p.Name)
	}
	if p.SubCategoryID != nil {
		b.SubCategoryID = *p.SubCategoryID
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.Website != nil {
		b.Website = *p.Website
	}
	if p.Logo != nil {
		b.Logo = *p.Logo
	}
	if p.IsActive != nil {
		b.IsActive = *p.IsActive
	}
}

// BrandSlug derives the base slug for a brand name. Names with no
// slug-able characters fall back to "brand".
func BrandSlug(name string) string {
	s := slug.Make(name)
	if s == "" {
		return "brand"
	}
	return s
}

// SlugCandidate returns the n-th candidate for a base slug: the base itself
// for n == 0, then base-1, base-2 and so on.
func SlugCandidate(base string, n int) string {
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}

// NewSlugTakenError reports a slug already held by another brand
func NewSlugTakenError(slug string) error {
	return &ConflictError{Entity: "brand", Field: "slug", Reason: fmt.Sprintf("slug %q already exists", slug)}
}

// IsSlugTaken reports whether err is a brand slug uniqueness conflict
func IsSlugTaken(err error) bool {
	var conflictErr *ConflictError
	return errors.As(err, &conflictErr) && conflictErr.Entity == "brand" && conflictErr.Field == "slug"
}
