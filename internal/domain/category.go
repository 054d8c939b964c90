package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category is the top level of the catalog hierarchy
type Category struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description,omitempty" db:"description"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// CategoryInput carries the fields accepted when creating a category
type CategoryInput struct {
	Name        string
	Description string
	IsActive    *bool
}

// CategoryPatch carries a partial update; nil fields are left unchanged
type CategoryPatch struct {
	Name        *string
	Description *string
	IsActive    *bool
}

// Validate checks the category invariants
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return NewValidationError("name", "is required")
	}
	return nil
}

// Apply copies the non-nil fields of the patch onto the category
func (p CategoryPatch) Apply(c *Category) {
	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.IsActive != nil {
		c.IsActive = *p.IsActive
	}
}

// SubCategory belongs to exactly one Category
type SubCategory struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	CategoryID  uuid.UUID `json:"categoryId" db:"category_id"`
	Description string    `json:"description,omitempty" db:"description"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	Category *Category `json:"category,omitempty" db:"-"`
}

type SubCategoryInput struct {
	Name        string
	CategoryID  uuid.UUID
	Description string
	IsActive    *bool
}

type SubCategoryPatch struct {
	Name        *string
	CategoryID  *uuid.UUID
	Description *string
	IsActive    *bool
}

func (s *SubCategory) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return NewValidationError("name", "is required")
	}
	if s.CategoryID == uuid.Nil {
		return NewValidationError("categoryId", "is required")
	}
	return nil
}

func (p SubCategoryPatch) Apply(s *SubCategory) {
	if p.Name != nil {
		s.Name = strings.TrimSpace(*p.Name)
	}
	if p.CategoryID != nil {
		s.CategoryID = *p.CategoryID
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.IsActive != nil {
		s.IsActive = *p.IsActive
	}
}

// boolOrDefault resolves an optional flag
func boolOrDefault(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// NewCategory builds a Category from input with defaults applied
func NewCategory(in CategoryInput, now time.Time) *Category {
	return &Category{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		IsActive:    boolOrDefault(in.IsActive, true),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewSubCategory builds a SubCategory from input with defaults applied
func NewSubCategory(in SubCategoryInput, now time.Time) *SubCategory {
	return &SubCategory{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(in.Name),
		CategoryID:  in.CategoryID,
		Description: in.Description,
		IsActive:    boolOrDefault(in.IsActive, true),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
