package repository

import (
	"context"
	"fmt"

	"catalog-admin/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ProductImageRepository defines the interface for product image data access
type ProductImageRepository interface {
	Create(ctx context.Context, image *domain.ProductImage) error
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.ProductImage, error)
	Delete(ctx context.Context, productID, imageID uuid.UUID) error
}

type productImageRepository struct {
	db *sqlx.DB
}

func NewProductImageRepository(db *sqlx.DB) ProductImageRepository {
	return &productImageRepository{db: db}
}

const productImageColumns = `id, product_id, variant_id, url, alt_text, sort_order, is_primary, image_type,
	file_size, mime_type, width, height, created_at`

// Create inserts an image. A new primary image demotes the product's previous
// primary inside the same transaction.
func (r *productImageRepository) Create(ctx context.Context, image *domain.ProductImage) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if image.IsPrimary {
		_, err := tx.ExecContext(ctx,
			`UPDATE product_images SET is_primary = FALSE WHERE product_id = $1 AND is_primary`,
			image.ProductID)
		if err != nil {
			return fmt.Errorf("failed to reset primary image: %w", err)
		}
	}

	query := `
		INSERT INTO product_images (` + productImageColumns + `)
		VALUES (:id, :product_id, :variant_id, :url, :alt_text, :sort_order, :is_primary, :image_type,
		        :file_size, :mime_type, :width, :height, :created_at)
	`
	if _, err := tx.NamedExecContext(ctx, query, image); err != nil {
		if isForeignKeyViolation(err, "fk_product_images_product") {
			return domain.NewReferentialError("productId", "product", image.ProductID.String())
		}
		if isCheckViolation(err, "chk_product_images_image_type") {
			return domain.NewValidationError("imageType", "must be one of main, gallery, thumbnail, zoom")
		}
		return fmt.Errorf("failed to create product image: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit product image: %w", err)
	}
	return nil
}

// ListByProduct returns a product's images by sort order, then creation time
func (r *productImageRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.ProductImage, error) {
	query := `
		SELECT ` + productImageColumns + `
		FROM product_images
		WHERE product_id = $1
		ORDER BY sort_order ASC, created_at ASC, id ASC
	`

	images := []*domain.ProductImage{}
	if err := r.db.SelectContext(ctx, &images, query, productID); err != nil {
		return nil, fmt.Errorf("failed to list product images: %w", err)
	}
	return images, nil
}

func (r *productImageRepository) Delete(ctx context.Context, productID, imageID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM product_images WHERE id = $1 AND product_id = $2`, imageID, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product image: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return domain.NewNotFoundError("product image", imageID.String())
	}
	return nil
}
