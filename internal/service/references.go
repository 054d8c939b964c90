package service

import (
	"context"
	"errors"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/repository"

	"github.com/google/uuid"
)

// The resolve helpers turn a missing parent into a ReferentialError naming
// the request field that pointed at it.

func resolveCategory(ctx context.Context, repo repository.CategoryRepository, id uuid.UUID) error {
	if _, err := repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewReferentialError("categoryId", "category", id.String())
		}
		return err
	}
	return nil
}

func resolveSubCategory(ctx context.Context, repo repository.SubCategoryRepository, id uuid.UUID) (*domain.SubCategory, error) {
	subCategory, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewReferentialError("subCategoryId", "subcategory", id.String())
		}
		return nil, err
	}
	return subCategory, nil
}

func resolveBrand(ctx context.Context, repo repository.BrandRepository, id uuid.UUID) (*domain.Brand, error) {
	brand, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewReferentialError("brandId", "brand", id.String())
		}
		return nil, err
	}
	return brand, nil
}
