package service

import (
	"context"
	"errors"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/repository"

	"github.com/google/uuid"
)

// expander inlines parent entities for one read. Lookups are memoized so a
// listing touches each parent once.
type expander struct {
	categories    repository.CategoryRepository
	subCategories repository.SubCategoryRepository
	brands        repository.BrandRepository

	categoryCache    map[uuid.UUID]*domain.Category
	subCategoryCache map[uuid.UUID]*domain.SubCategory
	brandCache       map[uuid.UUID]*domain.Brand
}

func newExpander(
	categories repository.CategoryRepository,
	subCategories repository.SubCategoryRepository,
	brands repository.BrandRepository,
) *expander {
	return &expander{
		categories:       categories,
		subCategories:    subCategories,
		brands:           brands,
		categoryCache:    make(map[uuid.UUID]*domain.Category),
		subCategoryCache: make(map[uuid.UUID]*domain.SubCategory),
		brandCache:       make(map[uuid.UUID]*domain.Brand),
	}
}

// A parent that vanished between reads is left unexpanded rather than failing the read.
func ignoreNotFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}

func (x *expander) category(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	if c, ok := x.categoryCache[id]; ok {
		return c, nil
	}
	c, err := x.categories.FindByID(ctx, id)
	if err != nil {
		return nil, ignoreNotFound(err)
	}
	x.categoryCache[id] = c
	return c, nil
}

func (x *expander) subCategory(ctx context.Context, id uuid.UUID, withCategory bool) (*domain.SubCategory, error) {
	s, ok := x.subCategoryCache[id]
	if !ok {
		found, err := x.subCategories.FindByID(ctx, id)
		if err != nil {
			return nil, ignoreNotFound(err)
		}
		s = found
		x.subCategoryCache[id] = s
	}
	if withCategory && s.Category == nil {
		c, err := x.category(ctx, s.CategoryID)
		if err != nil {
			return nil, err
		}
		s.Category = c
	}
	return s, nil
}

func (x *expander) brand(ctx context.Context, id uuid.UUID) (*domain.Brand, error) {
	if b, ok := x.brandCache[id]; ok {
		return b, nil
	}
	b, err := x.brands.FindByID(ctx, id)
	if err != nil {
		return nil, ignoreNotFound(err)
	}
	x.brandCache[id] = b
	return b, nil
}

func (x *expander) expandSubCategory(ctx context.Context, s *domain.SubCategory, e domain.Expand) error {
	if !e.Category {
		return nil
	}
	c, err := x.category(ctx, s.CategoryID)
	if err != nil {
		return err
	}
	s.Category = c
	return nil
}

func (x *expander) expandBrand(ctx context.Context, b *domain.Brand, e domain.Expand) error {
	if !e.SubCategory && !e.Category {
		return nil
	}
	s, err := x.subCategory(ctx, b.SubCategoryID, e.Category)
	if err != nil {
		return err
	}
	b.SubCategory = s
	return nil
}

func (x *expander) expandProduct(ctx context.Context, p *domain.Product, e domain.Expand) error {
	if e.SubCategory || e.Category {
		s, err := x.subCategory(ctx, p.SubCategoryID, e.Category)
		if err != nil {
			return err
		}
		p.SubCategory = s
	}
	if e.Brand && p.BrandID != nil {
		b, err := x.brand(ctx, *p.BrandID)
		if err != nil {
			return err
		}
		p.Brand = b
	}
	return nil
}
