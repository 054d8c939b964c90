package service

import (
	"context"
	"errors"
	"time"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductImageService defines the interface for product image business logic
type ProductImageService interface {
	Create(ctx context.Context, in domain.ProductImageInput) (*domain.ProductImage, error)
	List(ctx context.Context, productID uuid.UUID) ([]*domain.ProductImage, error)
	Delete(ctx context.Context, productID, imageID uuid.UUID) error
}

type productImageService struct {
	productRepo repository.ProductRepository
	imageRepo   repository.ProductImageRepository
	logger      *zap.Logger
}

func NewProductImageService(
	productRepo repository.ProductRepository,
	imageRepo repository.ProductImageRepository,
	logger *zap.Logger,
) ProductImageService {
	return &productImageService{
		productRepo: productRepo,
		imageRepo:   imageRepo,
		logger:      logger,
	}
}

// Create attaches image metadata to an existing product. A variantId must
// name one of that product's variants.
func (s *productImageService) Create(ctx context.Context, in domain.ProductImageInput) (*domain.ProductImage, error) {
	image, err := domain.NewProductImage(in, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, image.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewReferentialError("productId", "product", image.ProductID.String())
		}
		return nil, err
	}

	if image.VariantID != nil && product.Variants.IndexOf(*image.VariantID) < 0 {
		return nil, domain.NewReferentialError("variantId", "variant", image.VariantID.String())
	}

	if err := s.imageRepo.Create(ctx, image); err != nil {
		return nil, err
	}

	s.logger.Info("Product image created",
		zap.String("image_id", image.ID.String()),
		zap.String("product_id", image.ProductID.String()),
		zap.Bool("primary", image.IsPrimary),
	)
	return image, nil
}

// List returns a product's images; an unknown product is NotFound
func (s *productImageService) List(ctx context.Context, productID uuid.UUID) ([]*domain.ProductImage, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.imageRepo.ListByProduct(ctx, productID)
}

func (s *productImageService) Delete(ctx context.Context, productID, imageID uuid.UUID) error {
	if err := s.imageRepo.Delete(ctx, productID, imageID); err != nil {
		return err
	}

	s.logger.Info("Product image deleted",
		zap.String("image_id", imageID.String()),
		zap.String("product_id", productID.String()),
	)
	return nil
}
