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

// CategoryService defines the interface for category business logic
type CategoryService interface {
	Create(ctx context.Context, in domain.CategoryInput) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.CategoryPatch) (*domain.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	categoryRepo    repository.CategoryRepository
	subCategoryRepo repository.SubCategoryRepository
	logger          *zap.Logger
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(
	categoryRepo repository.CategoryRepository,
	subCategoryRepo repository.SubCategoryRepository,
	logger *zap.Logger,
) CategoryService {
	return &categoryService{
		categoryRepo:    categoryRepo,
		subCategoryRepo: subCategoryRepo,
		logger:          logger,
	}
}

// Create validates and stores a new category; duplicate names conflict
func (s *categoryService) Create(ctx context.Context, in domain.CategoryInput) (*domain.Category, error) {
	category := domain.NewCategory(in, time.Now().UTC())
	if err := category.Validate(); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("Category created",
		zap.String("category_id", category.ID.String()),
		zap.String("name", category.Name),
	)
	return category, nil
}

func (s *categoryService) List(ctx context.Context) ([]*domain.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *categoryService) Get(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	return s.categoryRepo.FindByID(ctx, id)
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, patch domain.CategoryPatch) (*domain.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(category)
	if err := category.Validate(); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("Category updated", zap.String("category_id", id.String()))
	return category, nil
}

// Delete removes a category that has no subcategories left
func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		return err
	}

	children, err := s.subCategoryRepo.CountByCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check category dependents: %w", err)
	}
	if children > 0 {
		return domain.NewConflictError("category", fmt.Sprintf("still has %d subcategories", children))
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Category deleted", zap.String("category_id", id.String()))
	return nil
}
