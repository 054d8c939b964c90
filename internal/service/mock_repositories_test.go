package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/repository"

	"github.com/google/uuid"
)

// Mock repositories for testing. They hand out copies so that callers
// mutating a returned entity never touch the stored one, the way rows
// fetched from Postgres behave.

type mockCategoryRepository struct {
	mu         sync.Mutex
	categories map[uuid.UUID]*domain.Category
	order      []uuid.UUID
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{categories: make(map[uuid.UUID]*domain.Category)}
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.categories {
		if c.Name == category.Name {
			return domain.NewConflictError("category", fmt.Sprintf("name %q already exists", category.Name))
		}
	}
	cp := *category
	m.categories[category.ID] = &cp
	m.order = append(m.order, category.ID)
	return nil
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Category{}
	for _, id := range m.order {
		if c, ok := m.categories[id]; ok {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[id]
	if !ok {
		return nil, domain.NewNotFoundError("category", id.String())
	}
	cp := *c
	return &cp, nil
}

func (m *mockCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[category.ID]; !ok {
		return domain.NewNotFoundError("category", category.ID.String())
	}
	for id, c := range m.categories {
		if id != category.ID && c.Name == category.Name {
			return domain.NewConflictError("category", fmt.Sprintf("name %q already exists", category.Name))
		}
	}
	cp := *category
	m.categories[category.ID] = &cp
	return nil
}

func (m *mockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return domain.NewNotFoundError("category", id.String())
	}
	delete(m.categories, id)
	return nil
}

func (m *mockCategoryRepository) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.categories)
}

type mockSubCategoryRepository struct {
	mu            sync.Mutex
	subCategories map[uuid.UUID]*domain.SubCategory
	order         []uuid.UUID
}

func newMockSubCategoryRepository() *mockSubCategoryRepository {
	return &mockSubCategoryRepository{subCategories: make(map[uuid.UUID]*domain.SubCategory)}
}

func (m *mockSubCategoryRepository) Create(ctx context.Context, subCategory *domain.SubCategory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *subCategory
	cp.Category = nil
	m.subCategories[subCategory.ID] = &cp
	m.order = append(m.order, subCategory.ID)
	return nil
}

func (m *mockSubCategoryRepository) List(ctx context.Context, categoryID *uuid.UUID) ([]*domain.SubCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.SubCategory{}
	for _, id := range m.order {
		s, ok := m.subCategories[id]
		if !ok || (categoryID != nil && s.CategoryID != *categoryID) {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockSubCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.SubCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.subCategories[id]
	if !ok {
		return nil, domain.NewNotFoundError("subcategory", id.String())
	}
	cp := *s
	return &cp, nil
}

func (m *mockSubCategoryRepository) Update(ctx context.Context, subCategory *domain.SubCategory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.subCategories[subCategory.ID]; !ok {
		return domain.NewNotFoundError("subcategory", subCategory.ID.String())
	}
	cp := *subCategory
	cp.Category = nil
	m.subCategories[subCategory.ID] = &cp
	return nil
}

func (m *mockSubCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.subCategories[id]; !ok {
		return domain.NewNotFoundError("subcategory", id.String())
	}
	delete(m.subCategories, id)
	return nil
}

func (m *mockSubCategoryRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.subCategories {
		if s.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

type mockBrandRepository struct {
	mu     sync.Mutex
	brands map[uuid.UUID]*domain.Brand
	order  []uuid.UUID
}

func newMockBrandRepository() *mockBrandRepository {
	return &mockBrandRepository{brands: make(map[uuid.UUID]*domain.Brand)}
}

func (m *mockBrandRepository) Create(ctx context.Context, brand *domain.Brand) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.brands {
		if b.Slug == brand.Slug {
			return domain.NewSlugTakenError(brand.Slug)
		}
	}
	cp := *brand
	cp.SubCategory = nil
	m.brands[brand.ID] = &cp
	m.order = append(m.order, brand.ID)
	return nil
}

func (m *mockBrandRepository) List(ctx context.Context, subCategoryID *uuid.UUID) ([]*domain.Brand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Brand{}
	for _, id := range m.order {
		b, ok := m.brands[id]
		if !ok || (subCategoryID != nil && b.SubCategoryID != *subCategoryID) {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockBrandRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Brand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.brands[id]
	if !ok {
		return nil, domain.NewNotFoundError("brand", id.String())
	}
	cp := *b
	return &cp, nil
}

func (m *mockBrandRepository) Update(ctx context.Context, brand *domain.Brand) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.brands[brand.ID]; !ok {
		return domain.NewNotFoundError("brand", brand.ID.String())
	}
	for id, b := range m.brands {
		if id != brand.ID && b.Slug == brand.Slug {
			return domain.NewSlugTakenError(brand.Slug)
		}
	}
	cp := *brand
	cp.SubCategory = nil
	m.brands[brand.ID] = &cp
	return nil
}

func (m *mockBrandRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.brands[id]; !ok {
		return domain.NewNotFoundError("brand", id.String())
	}
	delete(m.brands, id)
	return nil
}

func (m *mockBrandRepository) SlugTaken(ctx context.Context, slug string, exclude uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, b := range m.brands {
		if id != exclude && b.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockBrandRepository) CountBySubCategory(ctx context.Context, subCategoryID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, b := range m.brands {
		if b.SubCategoryID == subCategoryID {
			n++
		}
	}
	return n, nil
}

type mockProductRepository struct {
	mu       sync.Mutex
	products map[uuid.UUID]*domain.Product
	order    []uuid.UUID
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{products: make(map[uuid.UUID]*domain.Product)}
}

func copyProduct(p *domain.Product) *domain.Product {
	cp := *p
	cp.Variants = p.Variants.Clone()
	cp.SubCategory = nil
	cp.Brand = nil
	if p.BrandID != nil {
		id := *p.BrandID
		cp.BrandID = &id
	}
	return &cp
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	product.InStock = domain.ComputeInStock(product.Variants)
	m.products[product.ID] = copyProduct(product)
	m.order = append(m.order, product.ID)
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, domain.NewNotFoundError("product", id.String())
	}
	return copyProduct(p), nil
}

func (m *mockProductRepository) List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Product{}
	for _, id := range m.order {
		p, ok := m.products[id]
		if !ok {
			continue
		}
		if filter.SubCategoryID != nil && p.SubCategoryID != *filter.SubCategoryID {
			continue
		}
		if filter.BrandID != nil && (p.BrandID == nil || *p.BrandID != *filter.BrandID) {
			continue
		}
		if filter.InStock != nil && p.InStock != *filter.InStock {
			continue
		}
		out = append(out, copyProduct(p))
	}
	return out, nil
}

// Mutate holds the repository lock for the whole read-modify-write, standing
// in for the row lock the Postgres implementation takes.
func (m *mockProductRepository) Mutate(ctx context.Context, id uuid.UUID, fn repository.MutateFunc) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.products[id]
	if !ok {
		return nil, domain.NewNotFoundError("product", id.String())
	}
	working := copyProduct(stored)
	if err := fn(working); err != nil {
		return nil, err
	}
	working.InStock = domain.ComputeInStock(working.Variants)
	m.products[id] = copyProduct(working)
	return working, nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return domain.NewNotFoundError("product", id.String())
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepository) CountBySubCategory(ctx context.Context, subCategoryID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, p := range m.products {
		if p.SubCategoryID == subCategoryID {
			n++
		}
	}
	return n, nil
}

func (m *mockProductRepository) CountByBrand(ctx context.Context, brandID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, p := range m.products {
		if p.BrandID != nil && *p.BrandID == brandID {
			n++
		}
	}
	return n, nil
}

func (m *mockProductRepository) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.products)
}

type mockProductImageRepository struct {
	mu     sync.Mutex
	images map[uuid.UUID]*domain.ProductImage
}

func newMockProductImageRepository() *mockProductImageRepository {
	return &mockProductImageRepository{images: make(map[uuid.UUID]*domain.ProductImage)}
}

func (m *mockProductImageRepository) Create(ctx context.Context, image *domain.ProductImage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if image.IsPrimary {
		for _, img := range m.images {
			if img.ProductID == image.ProductID {
				img.IsPrimary = false
			}
		}
	}
	cp := *image
	m.images[image.ID] = &cp
	return nil
}

func (m *mockProductImageRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.ProductImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.ProductImage{}
	for _, img := range m.images {
		if img.ProductID == productID {
			cp := *img
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *mockProductImageRepository) Delete(ctx context.Context, productID, imageID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	img, ok := m.images[imageID]
	if !ok || img.ProductID != productID {
		return domain.NewNotFoundError("product image", imageID.String())
	}
	delete(m.images, imageID)
	return nil
}

// catalog bundles the mocks with every service built on top of them
type catalog struct {
	categoryRepo    *mockCategoryRepository
	subCategoryRepo *mockSubCategoryRepository
	brandRepo       *mockBrandRepository
	productRepo     *mockProductRepository
	imageRepo       *mockProductImageRepository

	categories    CategoryService
	subCategories SubCategoryService
	brands        BrandService
	products      ProductService
	images        ProductImageService
}
