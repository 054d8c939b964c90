package service

import (
	"context"
	"time"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductService defines the interface for product business logic
type ProductService interface {
	Create(ctx context.Context, in domain.ProductInput) (*domain.Product, error)
	List(ctx context.Context, filter domain.ProductFilter, expand domain.Expand) ([]*domain.Product, error)
	Get(ctx context.Context, id uuid.UUID, expand domain.Expand) (*domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error

	SetVariantValueAvailability(ctx context.Context, id uuid.UUID, variantIndex, valueIndex int, available bool) (*domain.Product, error)

	ListVariants(ctx context.Context, id uuid.UUID) (domain.Variants, error)
	AddVariant(ctx context.Context, id uuid.UUID, variant domain.Variant) (*domain.Product, error)
	UpdateVariant(ctx context.Context, id, variantID uuid.UUID, variant domain.Variant) (*domain.Product, error)
	DeleteVariant(ctx context.Context, id, variantID uuid.UUID) (*domain.Product, error)
}

type productService struct {
	categoryRepo    repository.CategoryRepository
	subCategoryRepo repository.SubCategoryRepository
	brandRepo       repository.BrandRepository
	productRepo     repository.ProductRepository
	logger          *zap.Logger
}

func NewProductService(
	categoryRepo repository.CategoryRepository,
	subCategoryRepo repository.SubCategoryRepository,
	brandRepo repository.BrandRepository,
	productRepo repository.ProductRepository,
	logger *zap.Logger,
) ProductService {
	return &productService{
		categoryRepo:    categoryRepo,
		subCategoryRepo: subCategoryRepo,
		brandRepo:       brandRepo,
		productRepo:     productRepo,
		logger:          logger,
	}
}

// everything is the expansion returned by operations that answer with a full product
var everything = domain.Expand{SubCategory: true, Brand: true, Category: true}

// Create normalizes variants, derives InStock and checks the hierarchy before inserting
func (s *productService) Create(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	product, err := domain.NewProduct(in, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.checkHierarchy(ctx, product); err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("subcategory_id", product.SubCategoryID.String()),
		zap.Bool("in_stock", product.InStock),
		zap.Int("variants", len(product.Variants)),
	)
	return product, nil
}

func (s *productService) List(ctx context.Context, filter domain.ProductFilter, expand domain.Expand) ([]*domain.Product, error) {
	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if !expand.Any() {
		return products, nil
	}

	x := newExpander(s.categoryRepo, s.subCategoryRepo, s.brandRepo)
	for _, p := range products {
		if err := x.expandProduct(ctx, p, expand); err != nil {
			return nil, err
		}
	}
	return products, nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID, expand domain.Expand) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, product, expand)
}

// Update applies a partial update under the product's row lock. Variants are
// only replaced, and InStock only re-derived, when the patch carries them.
func (s *productService) Update(ctx context.Context, id uuid.UUID, patch domain.ProductPatch) (*domain.Product, error) {
	product, err := s.productRepo.Mutate(ctx, id, func(p *domain.Product) error {
		if err := patch.Apply(p); err != nil {
			return err
		}
		if patch.TouchesHierarchy() {
			return s.checkHierarchy(ctx, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Product updated",
		zap.String("product_id", id.String()),
		zap.Bool("variants_replaced", patch.Variants != nil),
		zap.Bool("in_stock", product.InStock),
	)
	return product, nil
}

// Delete removes the product together with its images
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}

// SetVariantValueAvailability flips one value's availability and re-derives
// InStock in the same locked write, then returns the expanded product.
func (s *productService) SetVariantValueAvailability(ctx context.Context, id uuid.UUID, variantIndex, valueIndex int, available bool) (*domain.Product, error) {
	product, err := s.productRepo.Mutate(ctx, id, func(p *domain.Product) error {
		return p.Variants.SetValueAvailability(p.ID, variantIndex, valueIndex, available)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Variant availability changed",
		zap.String("product_id", id.String()),
		zap.Int("variant_index", variantIndex),
		zap.Int("value_index", valueIndex),
		zap.Bool("available", available),
		zap.Bool("in_stock", product.InStock),
	)
	return s.expand(ctx, product, everything)
}

func (s *productService) ListVariants(ctx context.Context, id uuid.UUID) (domain.Variants, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return product.Variants, nil
}

func (s *productService) AddVariant(ctx context.Context, id uuid.UUID, variant domain.Variant) (*domain.Product, error) {
	normalized, err := domain.NormalizeVariant(variant, "variant")
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.Mutate(ctx, id, func(p *domain.Product) error {
		if p.Variants.IndexOf(normalized.ID) >= 0 {
			return domain.NewConflictError("variant", "id "+normalized.ID.String()+" already exists")
		}
		variants := append(p.Variants.Clone(), normalized)
		p.SetVariants(variants)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Variant added",
		zap.String("product_id", id.String()),
		zap.String("variant_id", normalized.ID.String()),
	)
	return product, nil
}

// UpdateVariant replaces the variant with the given id, keeping its position
func (s *productService) UpdateVariant(ctx context.Context, id, variantID uuid.UUID, variant domain.Variant) (*domain.Product, error) {
	variant.ID = variantID
	normalized, err := domain.NormalizeVariant(variant, "variant")
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.Mutate(ctx, id, func(p *domain.Product) error {
		i := p.Variants.IndexOf(variantID)
		if i < 0 {
			return domain.NewNotFoundError("variant", variantID.String())
		}
		variants := p.Variants.Clone()
		variants[i] = normalized
		p.SetVariants(variants)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Variant updated",
		zap.String("product_id", id.String()),
		zap.String("variant_id", variantID.String()),
	)
	return product, nil
}

func (s *productService) DeleteVariant(ctx context.Context, id, variantID uuid.UUID) (*domain.Product, error) {
	product, err := s.productRepo.Mutate(ctx, id, func(p *domain.Product) error {
		i := p.Variants.IndexOf(variantID)
		if i < 0 {
			return domain.NewNotFoundError("variant", variantID.String())
		}
		variants := p.Variants.Clone()
		p.SetVariants(append(variants[:i], variants[i+1:]...))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Variant deleted",
		zap.String("product_id", id.String()),
		zap.String("variant_id", variantID.String()),
	)
	return product, nil
}

// checkHierarchy resolves the subcategory and brand references and enforces
// that the brand lives under the product's subcategory.
func (s *productService) checkHierarchy(ctx context.Context, p *domain.Product) error {
	if _, err := resolveSubCategory(ctx, s.subCategoryRepo, p.SubCategoryID); err != nil {
		return err
	}
	if p.BrandID == nil {
		return nil
	}
	brand, err := resolveBrand(ctx, s.brandRepo, *p.BrandID)
	if err != nil {
		return err
	}
	return domain.CheckBrandConsistency(p, brand)
}

func (s *productService) expand(ctx context.Context, p *domain.Product, e domain.Expand) (*domain.Product, error) {
	if !e.Any() {
		return p, nil
	}
	x := newExpander(s.categoryRepo, s.subCategoryRepo, s.brandRepo)
	if err := x.expandProduct(ctx, p, e); err != nil {
		return nil, err
	}
	return p, nil
}
