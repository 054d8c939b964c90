package service

import (
	"context"
	"fmt"
	"time"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubCategoryService defines the interface for subcategory business logic
type SubCategoryService interface {
	Create(ctx context.Context, in domain.SubCategoryInput) (*domain.SubCategory, error)
	List(ctx context.Context, categoryID *uuid.UUID, expand domain.Expand) ([]*domain.SubCategory, error)
	Get(ctx context.Context, id uuid.UUID, expand domain.Expand) (*domain.SubCategory, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.SubCategoryPatch) (*domain.SubCategory, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type subCategoryService struct {
	categoryRepo    repository.CategoryRepository
	subCategoryRepo repository.SubCategoryRepository
	brandRepo       repository.BrandRepository
	productRepo     repository.ProductRepository
	logger          *zap.Logger
}

func NewSubCategoryService(
	categoryRepo repository.CategoryRepository,
	subCategoryRepo repository.SubCategoryRepository,
	brandRepo repository.BrandRepository,
	productRepo repository.ProductRepository,
	logger *zap.Logger,
) SubCategoryService {
	return &subCategoryService{
		categoryRepo:    categoryRepo,
		subCategoryRepo: subCategoryRepo,
		brandRepo:       brandRepo,
		productRepo:     productRepo,
		logger:          logger,
	}
}

// Create checks the parent category before inserting
func (s *subCategoryService) Create(ctx context.Context, in domain.SubCategoryInput) (*domain.SubCategory, error) {
	subCategory := domain.NewSubCategory(in, time.Now().UTC())
	if err := subCategory.Validate(); err != nil {
		return nil, err
	}

	if err := resolveCategory(ctx, s.categoryRepo, subCategory.CategoryID); err != nil {
		return nil, err
	}

	if err := s.subCategoryRepo.Create(ctx, subCategory); err != nil {
		return nil, err
	}

	s.logger.Info("Subcategory created",
		zap.String("subcategory_id", subCategory.ID.String()),
		zap.String("category_id", subCategory.CategoryID.String()),
	)
	return subCategory, nil
}

func (s *subCategoryService) List(ctx context.Context, categoryID *uuid.UUID, expand domain.Expand) ([]*domain.SubCategory, error) {
	subCategories, err := s.subCategoryRepo.List(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	x := newExpander(s.categoryRepo, s.subCategoryRepo, s.brandRepo)
	for _, sc := range subCategories {
		if err := x.expandSubCategory(ctx, sc, expand); err != nil {
			return nil, err
		}
	}
	return subCategories, nil
}

func (s *subCategoryService) Get(ctx context.Context, id uuid.UUID, expand domain.Expand) (*domain.SubCategory, error) {
	subCategory, err := s.subCategoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	x := newExpander(s.categoryRepo, s.subCategoryRepo, s.brandRepo)
	if err := x.expandSubCategory(ctx, subCategory, expand); err != nil {
		return nil, err
	}
	return subCategory, nil
}

// Update applies a partial update; moving to another category requires that category to exist
func (s *subCategoryService) Update(ctx context.Context, id uuid.UUID, patch domain.SubCategoryPatch) (*domain.SubCategory, error) {
	subCategory, err := s.subCategoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previousCategory := subCategory.CategoryID
	patch.Apply(subCategory)
	if err := subCategory.Validate(); err != nil {
		return nil, err
	}

	if subCategory.CategoryID != previousCategory {
		if err := resolveCategory(ctx, s.categoryRepo, subCategory.CategoryID); err != nil {
			return nil, err
		}
	}

	if err := s.subCategoryRepo.Update(ctx, subCategory); err != nil {
		return nil, err
	}

	s.logger.Info("Subcategory updated", zap.String("subcategory_id", id.String()))
	return subCategory, nil
}

// Delete removes a subcategory with no brands and no products
func (s *subCategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.subCategoryRepo.FindByID(ctx, id); err != nil {
		return err
	}

	brands, err := s.brandRepo.CountBySubCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check subcategory dependents: %w", err)
	}
	products, err := s.productRepo.CountBySubCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check subcategory dependents: %w", err)
	}
	if brands > 0 || products > 0 {
		return domain.NewConflictError("subcategory",
			fmt.Sprintf("still has %d brands and %d products", brands, products))
	}

	if err := s.subCategoryRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Subcategory deleted", zap.String("subcategory_id", id.String()))
	return nil
}
