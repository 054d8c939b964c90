package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"catalog-admin/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// BrandRepository defines the interface for brand data access
type BrandRepository interface {
	Create(ctx context.Context, brand *domain.Brand) error
	List(ctx context.Context, subCategoryID *uuid.UUID) ([]*domain.Brand, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Brand, error)
	Update(ctx context.Context, brand *domain.Brand) error
	Delete(ctx context.Context, id uuid.UUID) error
	SlugTaken(ctx context.Context, slug string, exclude uuid.UUID) (bool, error)
	CountBySubCategory(ctx context.Context, subCategoryID uuid.UUID) (int, error)
}

type brandRepository struct {
	db *sqlx.DB
}

func NewBrandRepository(db *sqlx.DB) BrandRepository {
	return &brandRepository{db: db}
}

const brandColumns = `id, name, slug, sub_category_id, description, website, logo, is_active, created_at, updated_at`

func (r *brandRepository) Create(ctx context.Context, brand *domain.Brand) error {
	query := `
		INSERT INTO brands (id, name, slug, sub_category_id, description, website, logo, is_active, created_at, updated_at)
		VALUES (:id, :name, :slug, :sub_category_id, :description, :website, :logo, :is_active, :created_at, :updated_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, brand); err != nil {
		return r.translate(err, brand, "create")
	}

	return nil
}

func (r *brandRepository) List(ctx context.Context, subCategoryID *uuid.UUID) ([]*domain.Brand, error) {
	query := `SELECT ` + brandColumns + ` FROM brands`
	args := []interface{}{}

	if subCategoryID != nil {
		query += ` WHERE sub_category_id = $1`
		args = append(args, *subCategoryID)
	}
	query += ` ORDER BY created_at ASC, id ASC`

	brands := []*domain.Brand{}
	if err := r.db.SelectContext(ctx, &brands, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}

	return brands, nil
}

func (r *brandRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Brand, error) {
	query := `SELECT ` + brandColumns + ` FROM brands WHERE id = $1`

	brand := &domain.Brand{}
	if err := r.db.GetContext(ctx, brand, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("brand", id.String())
		}
		return nil, fmt.Errorf("failed to find brand by ID: %w", err)
	}

	return brand, nil
}

func (r *brandRepository) Update(ctx context.Context, brand *domain.Brand) error {
	query := `
		UPDATE brands
		SET name = $2, slug = $3, sub_category_id = $4, description = $5,
		    website = $6, logo = $7, is_active = $8
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		brand.ID,
		brand.Name,
		brand.Slug,
		brand.SubCategoryID,
		brand.Description,
		brand.Website,
		brand.Logo,
		brand.IsActive,
	).Scan(&brand.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewNotFoundError("brand", brand.ID.String())
		}
		return r.translate(err, brand, "update")
	}

	return nil
}

// Delete removes a brand. Products still pointing at it block the delete.
func (r *brandRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err, "fk_products_brand") {
			return domain.NewConflictError("brand", "still has products")
		}
		return fmt.Errorf("failed to delete brand: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return domain.NewNotFoundError("brand", id.String())
	}

	return nil
}

// SlugTaken reports whether another brand already uses slug
func (r *brandRepository) SlugTaken(ctx context.Context, slug string, exclude uuid.UUID) (bool, error) {
	var taken bool
	err := r.db.GetContext(ctx, &taken,
		`SELECT EXISTS (SELECT 1 FROM brands WHERE slug = $1 AND id <> $2)`, slug, exclude)
	if err != nil {
		return false, fmt.Errorf("failed to check brand slug: %w", err)
	}
	return taken, nil
}

func (r *brandRepository) CountBySubCategory(ctx context.Context, subCategoryID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM brands WHERE sub_category_id = $1`, subCategoryID)
	if err != nil {
		return 0, fmt.Errorf("failed to count brands: %w", err)
	}
	return count, nil
}

func (r *brandRepository) translate(err error, brand *domain.Brand, op string) error {
	switch {
	case isUniqueViolation(err, "brands_slug_key"):
		return domain.NewSlugTakenError(brand.Slug)
	case isForeignKeyViolation(err, "fk_brands_sub_category"):
		return domain.NewReferentialError("subCategoryId", "subcategory", brand.SubCategoryID.String())
	}
	return fmt.Errorf("failed to %s brand: %w", op, err)
}
