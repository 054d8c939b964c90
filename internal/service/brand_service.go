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

const (
	// maxSlugAttempts bounds the search for a free slug suffix
	maxSlugAttempts = 1000
	// maxSlugWrites bounds how often a write may lose its slug to a
	// concurrent writer before the conflict is returned
	maxSlugWrites = 5
)

// BrandService defines the interface for brand business logic
type BrandService interface {
	Create(ctx context.Context, in domain.BrandInput) (*domain.Brand, error)
	List(ctx context.Context, subCategoryID *uuid.UUID, expand domain.Expand) ([]*domain.Brand, error)
	Get(ctx context.Context, id uuid.UUID, expand domain.Expand) (*domain.Brand, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.BrandPatch) (*domain.Brand, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type brandService struct {
	categoryRepo    repository.CategoryRepository
	subCategoryRepo repository.SubCategoryRepository
	brandRepo       repository.BrandRepository
	productRepo     repository.ProductRepository
	logger          *zap.Logger
}

func NewBrandService(
	categoryRepo repository.CategoryRepository,
	subCategoryRepo repository.SubCategoryRepository,
	brandRepo repository.BrandRepository,
	productRepo repository.ProductRepository,
	logger *zap.Logger,
) BrandService {
	return &brandService{
		categoryRepo:    categoryRepo,
		subCategoryRepo: subCategoryRepo,
		brandRepo:       brandRepo,
		productRepo:     productRepo,
		logger:          logger,
	}
}

func (s *brandService) Create(ctx context.Context, in domain.BrandInput) (*domain.Brand, error) {
	brand := domain.NewBrand(in, time.Now().UTC())
	if err := brand.Validate(); err != nil {
		return nil, err
	}

	if _, err := resolveSubCategory(ctx, s.subCategoryRepo, brand.SubCategoryID); err != nil {
		return nil, err
	}

	if err := s.writeWithFreeSlug(ctx, brand, s.brandRepo.Create); err != nil {
		return nil, err
	}

	s.logger.Info("Brand created",
		zap.String("brand_id", brand.ID.String()),
		zap.String("slug", brand.Slug),
		zap.String("subcategory_id", brand.SubCategoryID.String()),
	)
	return brand, nil
}

func (s *brandService) List(ctx context.Context, subCategoryID *uuid.UUID, expand domain.Expand) ([]*domain.Brand, error) {
	brands, err := s.brandRepo.List(ctx, subCategoryID)
	if err != nil {
		return nil, err
	}

	x := newExpander(s.categoryRepo, s.subCategoryRepo, s.brandRepo)
	for _, b := range brands {
		if err := x.expandBrand(ctx, b, expand); err != nil {
			return nil, err
		}
	}
	return brands, nil
}

func (s *brandService) Get(ctx context.Context, id uuid.UUID, expand domain.Expand) (*domain.Brand, error) {
	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	x := newExpander(s.categoryRepo, s.subCategoryRepo, s.brandRepo)
	if err := x.expandBrand(ctx, brand, expand); err != nil {
		return nil, err
	}
	return brand, nil
}

// Update applies a partial update. Re-parenting only requires the new
// subcategory to exist; products already attached keep their subcategory
// until they are edited.
func (s *brandService) Update(ctx context.Context, id uuid.UUID, patch domain.BrandPatch) (*domain.Brand, error) {
	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previousSubCategory := brand.SubCategoryID
	patch.Apply(brand)
	if err := brand.Validate(); err != nil {
		return nil, err
	}

	moved := brand.SubCategoryID != previousSubCategory
	if moved {
		if _, err := resolveSubCategory(ctx, s.subCategoryRepo, brand.SubCategoryID); err != nil {
			return nil, err
		}
	}

	switch {
	case patch.Slug != nil && *patch.Slug == "":
		err = s.writeWithFreeSlug(ctx, brand, s.brandRepo.Update)
	case patch.Slug != nil:
		brand.Slug = domain.BrandSlug(*patch.Slug)
		err = s.updateWithSlug(ctx, brand)
	default:
		err = s.brandRepo.Update(ctx, brand)
	}
	if err != nil {
		return nil, err
	}

	if moved {
		s.logStrandedProducts(ctx, brand, previousSubCategory)
	}
	s.logger.Info("Brand updated", zap.String("brand_id", id.String()))
	return brand, nil
}

// logStrandedProducts warns when a moved brand leaves products behind in its
// old subcategory. Those products fail brand_subcategory_mismatch on their next
// edit of subCategoryId or brandId until they follow the brand.
func (s *brandService) logStrandedProducts(ctx context.Context, brand *domain.Brand, from uuid.UUID) {
	products, err := s.productRepo.CountByBrand(ctx, brand.ID)
	if err != nil {
		s.logger.Error("Failed to count products of moved brand", zap.String("brand_id", brand.ID.String()), zap.Error(err))
		return
	}
	if products == 0 {
		return
	}
	s.logger.Warn("Brand moved away from its products",
		zap.String("brand_id", brand.ID.String()),
		zap.String("from_subcategory_id", from.String()),
		zap.String("to_subcategory_id", brand.SubCategoryID.String()),
		zap.Int("products", products),
	)
}

// Delete removes a brand that no product references
func (s *brandService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.brandRepo.FindByID(ctx, id); err != nil {
		return err
	}

	products, err := s.productRepo.CountByBrand(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check brand dependents: %w", err)
	}
	if products > 0 {
		return domain.NewConflictError("brand", fmt.Sprintf("still has %d products", products))
	}

	if err := s.brandRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Brand deleted", zap.String("brand_id", id.String()))
	return nil
}

// updateWithSlug stores a caller-chosen slug, which must not be held by
// another brand
func (s *brandService) updateWithSlug(ctx context.Context, brand *domain.Brand) error {
	taken, err := s.brandRepo.SlugTaken(ctx, brand.Slug, brand.ID)
	if err != nil {
		return err
	}
	if taken {
		return domain.NewSlugTakenError(brand.Slug)
	}
	return s.brandRepo.Update(ctx, brand)
}

// writeWithFreeSlug assigns the first free slug derived from the brand name and
// runs write. Another writer can claim that slug between the check and the
// write; the search then resumes after the lost candidate.
func (s *brandService) writeWithFreeSlug(ctx context.Context, brand *domain.Brand, write func(context.Context, *domain.Brand) error) error {
	base := domain.BrandSlug(brand.Name)
	from := 0
	for attempt := 1; ; attempt++ {
		n, err := s.freeSlug(ctx, base, brand.ID, from)
		if err != nil {
			return err
		}
		brand.Slug = domain.SlugCandidate(base, n)

		err = write(ctx, brand)
		if err == nil || !domain.IsSlugTaken(err) || attempt == maxSlugWrites {
			return err
		}
		s.logger.Debug("Brand slug claimed concurrently, retrying",
			zap.String("brand_id", brand.ID.String()),
			zap.String("slug", brand.Slug),
			zap.Int("attempt", attempt),
		)
		from = n + 1
	}
}

// freeSlug returns the index of the first free candidate among base, base-1,
// base-2, ... starting at from.
func (s *brandService) freeSlug(ctx context.Context, base string, self uuid.UUID, from int) (int, error) {
	for n := from; n < from+maxSlugAttempts; n++ {
		taken, err := s.brandRepo.SlugTaken(ctx, domain.SlugCandidate(base, n), self)
		if err != nil {
			return 0, err
		}
		if !taken {
			return n, nil
		}
	}
	return 0, domain.NewConflictError("brand", fmt.Sprintf("no free slug for %q", base))
}
