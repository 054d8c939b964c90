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

// SubCategoryRepository defines the interface for subcategory data access
type SubCategoryRepository interface {
	Create(ctx context.Context, subCategory *domain.SubCategory) error
	List(ctx context.Context, categoryID *uuid.UUID) ([]*domain.SubCategory, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.SubCategory, error)
	Update(ctx context.Context, subCategory *domain.SubCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error)
}

type subCategoryRepository struct {
	db *sqlx.DB
}

func NewSubCategoryRepository(db *sqlx.DB) SubCategoryRepository {
	return &subCategoryRepository{db: db}
}

const subCategoryColumns = `id, name, category_id, description, is_active, created_at, updated_at`

func (r *subCategoryRepository) Create(ctx context.Context, subCategory *domain.SubCategory) error {
	query := `
		INSERT INTO sub_categories (id, name, category_id, description, is_active, created_at, updated_at)
		VALUES (:id, :name, :category_id, :description, :is_active, :created_at, :updated_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, subCategory); err != nil {
		// The parent may disappear between the service check and the insert.
		if isForeignKeyViolation(err, "fk_sub_categories_category") {
			return domain.NewReferentialError("categoryId", "category", subCategory.CategoryID.String())
		}
		return fmt.Errorf("failed to create subcategory: %w", err)
	}

	return nil
}

// List retrieves subcategories in creation order, optionally scoped to a category
func (r *subCategoryRepository) List(ctx context.Context, categoryID *uuid.UUID) ([]*domain.SubCategory, error) {
	query := `SELECT ` + subCategoryColumns + ` FROM sub_categories`
	args := []interface{}{}

	if categoryID != nil {
		query += ` WHERE category_id = $1`
		args = append(args, *categoryID)
	}
	query += ` ORDER BY created_at ASC, id ASC`

	subCategories := []*domain.SubCategory{}
	if err := r.db.SelectContext(ctx, &subCategories, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list subcategories: %w", err)
	}

	return subCategories, nil
}

func (r *subCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.SubCategory, error) {
	query := `SELECT ` + subCategoryColumns + ` FROM sub_categories WHERE id = $1`

	subCategory := &domain.SubCategory{}
	if err := r.db.GetContext(ctx, subCategory, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("subcategory", id.String())
		}
		return nil, fmt.Errorf("failed to find subcategory by ID: %w", err)
	}

	return subCategory, nil
}

func (r *subCategoryRepository) Update(ctx context.Context, subCategory *domain.SubCategory) error {
	query := `
		UPDATE sub_categories
		SET name = $2, category_id = $3, description = $4, is_active = $5
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		subCategory.ID,
		subCategory.Name,
		subCategory.CategoryID,
		subCategory.Description,
		subCategory.IsActive,
	).Scan(&subCategory.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewNotFoundError("subcategory", subCategory.ID.String())
		}
		if isForeignKeyViolation(err, "fk_sub_categories_category") {
			return domain.NewReferentialError("categoryId", "category", subCategory.CategoryID.String())
		}
		return fmt.Errorf("failed to update subcategory: %w", err)
	}

	return nil
}

// Delete removes a subcategory. Brands or products still pointing at it block the delete.
func (r *subCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sub_categories WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err, "") {
			return domain.NewConflictError("subcategory", "still has brands or products")
		}
		return fmt.Errorf("failed to delete subcategory: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return domain.NewNotFoundError("subcategory", id.String())
	}

	return nil
}

func (r *subCategoryRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM sub_categories WHERE category_id = $1`, categoryID)
	if err != nil {
		return 0, fmt.Errorf("failed to count subcategories: %w", err)
	}
	return count, nil
}
