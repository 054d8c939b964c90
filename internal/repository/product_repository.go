package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"catalog-admin/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// MutateFunc edits a locked product in place
type MutateFunc func(product *domain.Product) error

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	Mutate(ctx context.Context, id uuid.UUID, fn MutateFunc) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountBySubCategory(ctx context.Context, subCategoryID uuid.UUID) (int, error)
	CountByBrand(ctx context.Context, brandID uuid.UUID) (int, error)
}

type productRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sqlx.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, name, sub_category_id, brand_id, price, description, in_stock, variants, created_at, updated_at`

// Create inserts a new product. InStock is derived here so that nothing but
// the variants can decide it.
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	product.InStock = domain.ComputeInStock(product.Variants)

	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES (:id, :name, :sub_category_id, :brand_id, :price, :description, :in_stock, :variants, :created_at, :updated_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, product); err != nil {
		return translateProductError(err, product, "create")
	}

	return nil
}

// FindByID retrieves a product by ID
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product := &domain.Product{}
	if err := r.db.GetContext(ctx, product, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("product", id.String())
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// List retrieves products in creation order with optional filters
func (r *productRepository) List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	conditions := []string{}
	args := []interface{}{}

	if filter.SubCategoryID != nil {
		args = append(args, *filter.SubCategoryID)
		conditions = append(conditions, fmt.Sprintf("sub_category_id = $%d", len(args)))
	}
	if filter.BrandID != nil {
		args = append(args, *filter.BrandID)
		conditions = append(conditions, fmt.Sprintf("brand_id = $%d", len(args)))
	}
	if filter.InStock != nil {
		args = append(args, *filter.InStock)
		conditions = append(conditions, fmt.Sprintf("in_stock = $%d", len(args)))
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at ASC, id ASC`

	products := []*domain.Product{}
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

// Mutate loads the product with a row lock, applies fn and writes it back in
// the same transaction. Concurrent mutations of one product serialize on the
// lock, so an availability flip and its InStock update are never observed apart.
func (r *productRepository) Mutate(ctx context.Context, id uuid.UUID, fn MutateFunc) (*domain.Product, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	product := &domain.Product{}
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	if err := tx.GetContext(ctx, product, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("product", id.String())
		}
		return nil, fmt.Errorf("failed to lock product: %w", err)
	}

	if err := fn(product); err != nil {
		return nil, err
	}
	product.InStock = domain.ComputeInStock(product.Variants)

	update := `
		UPDATE products
		SET name = $2, sub_category_id = $3, brand_id = $4, price = $5,
		    description = $6, in_stock = $7, variants = $8
		WHERE id = $1
		RETURNING updated_at
	`
	err = tx.QueryRowxContext(ctx, update,
		product.ID,
		product.Name,
		product.SubCategoryID,
		product.BrandID,
		product.Price,
		product.Description,
		product.InStock,
		product.Variants,
	).Scan(&product.UpdatedAt)
	if err != nil {
		return nil, translateProductError(err, product, "update")
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit product update: %w", err)
	}

	return product, nil
}

// Delete removes a product; its images go with it through the foreign key cascade
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return domain.NewNotFoundError("product", id.String())
	}

	return nil
}

func (r *productRepository) CountBySubCategory(ctx context.Context, subCategoryID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM products WHERE sub_category_id = $1`, subCategoryID)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (r *productRepository) CountByBrand(ctx context.Context, brandID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM products WHERE brand_id = $1`, brandID)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func translateProductError(err error, product *domain.Product, op string) error {
	switch {
	case isForeignKeyViolation(err, "fk_products_sub_category"):
		return domain.NewReferentialError("subCategoryId", "subcategory", product.SubCategoryID.String())
	case isForeignKeyViolation(err, "fk_products_brand"):
		id := ""
		if product.BrandID != nil {
			id = product.BrandID.String()
		}
		return domain.NewReferentialError("brandId", "brand", id)
	case isCheckViolation(err, "chk_products_price"):
		return domain.NewValidationError("price", "must be greater than or equal to 0")
	}
	return fmt.Errorf("failed to %s product: %w", op, err)
}
