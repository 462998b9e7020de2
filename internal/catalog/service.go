package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atelier-ng/atelier-backend/pkg/db/models"
	"github.com/atelier-ng/atelier-backend/pkg/enums"
	pkgerrors "github.com/atelier-ng/atelier-backend/pkg/errors"
	"github.com/atelier-ng/atelier-backend/pkg/pagination"
	"github.com/atelier-ng/atelier-backend/pkg/types"
)

// Service exposes the catalog read paths and admin product management.
type Service interface {
	ListPublished(ctx context.Context, input ListPublishedInput) (*ProductListResult, error)
	GetPublished(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)

	AdminList(ctx context.Context, input AdminListInput) (*ProductListResult, error)
	AdminGet(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	Update(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, productID uuid.UUID) error
	SetPublished(ctx context.Context, productID uuid.UUID, published bool) (*ProductDTO, error)
	SetFeatured(ctx context.Context, productID uuid.UUID, featured bool) (*ProductDTO, error)
}

// ListPublishedInput filters the storefront catalog page.
type ListPublishedInput struct {
	Category     *enums.ProductCategory
	FeaturedOnly bool
	Pagination   pagination.Params
}

// AdminListInput filters the admin catalog page. Unpublished rows are included.
type AdminListInput struct {
	Category   *enums.ProductCategory
	Pagination pagination.Params
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Title          string
	Description    string
	Category       enums.ProductCategory
	Price          int
	CompareAtPrice *int
	Images         []string
	Colors         []string
	IsHybrid       bool
	StockLevels    types.StockLevels
	ProductionTime string
	IsPublished    bool
	IsFeatured     bool
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Title          *string
	Description    *string
	Category       *enums.ProductCategory
	Price          *int
	CompareAtPrice *int
	Images         *[]string
	Colors         *[]string
	IsHybrid       *bool
	StockLevels    *types.StockLevels
	ProductionTime *string
	IsPublished    *bool
	IsFeatured     *bool
}

type service struct {
	repo *Repository
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

// ListPublished returns the storefront page: published rows only, newest-first.
func (s *service) ListPublished(ctx context.Context, input ListPublishedInput) (*ProductListResult, error) {
	if input.Category != nil && !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product category")
	}
	result, err := s.repo.ListProducts(ctx, productListQuery{
		Pagination:    input.Pagination,
		Category:      input.Category,
		FeaturedOnly:  input.FeaturedOnly,
		PublishedOnly: true,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list published products")
	}
	return result, nil
}

// GetPublished loads a single published product for the storefront.
func (s *service) GetPublished(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindPublishedByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return NewProductDTO(product), nil
}

// AdminList returns all rows for the dashboard, including unpublished ones.
func (s *service) AdminList(ctx context.Context, input AdminListInput) (*ProductListResult, error) {
	if input.Category != nil && !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product category")
	}
	result, err := s.repo.ListProducts(ctx, productListQuery{
		Pagination: input.Pagination,
		Category:   input.Category,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return result, nil
}

// AdminGet loads a product regardless of publication state.
func (s *service) AdminGet(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return NewProductDTO(product), nil
}

// Create inserts a new catalog product.
func (s *service) Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	product := &models.Product{
		Title:          strings.TrimSpace(input.Title),
		Description:    strings.TrimSpace(input.Description),
		Category:       input.Category,
		Price:          input.Price,
		CompareAtPrice: input.CompareAtPrice,
		Images:         append([]string(nil), input.Images...),
		Colors:         append([]string(nil), input.Colors...),
		IsHybrid:       input.IsHybrid,
		StockLevels:    input.StockLevels.Clone(),
		ProductionTime: strings.TrimSpace(input.ProductionTime),
		IsPublished:    input.IsPublished,
		IsFeatured:     input.IsFeatured,
	}
	if product.StockLevels == nil {
		product.StockLevels = types.StockLevels{}
	}

	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
	}
	return NewProductDTO(created), nil
}

// Update applies the provided fields to an existing product.
func (s *service) Update(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	if err := validateUpdateInput(input); err != nil {
		return nil, err
	}

	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	applyUpdateToProduct(product, input)
	updated, err := s.repo.UpdateProduct(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
	}
	return NewProductDTO(updated), nil
}

// Delete removes a product. Existing order items keep their snapshots.
func (s *service) Delete(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if err := s.repo.DeleteProduct(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

// SetPublished toggles storefront visibility.
func (s *service) SetPublished(ctx context.Context, productID uuid.UUID, published bool) (*ProductDTO, error) {
	return s.Update(ctx, productID, UpdateProductInput{IsPublished: &published})
}

// SetFeatured toggles the featured flag.
func (s *service) SetFeatured(ctx context.Context, productID uuid.UUID, featured bool) (*ProductDTO, error) {
	return s.Update(ctx, productID, UpdateProductInput{IsFeatured: &featured})
}

func validateCreateInput(input CreateProductInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if !input.Category.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown product category")
	}
	if input.Price <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if input.CompareAtPrice != nil && *input.CompareAtPrice < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "compare_at_price must be non-negative")
	}
	return validateStockLevels(input.StockLevels)
}

func validateUpdateInput(input UpdateProductInput) error {
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
	}
	if input.Category != nil && !input.Category.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown product category")
	}
	if input.Price != nil && *input.Price <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if input.CompareAtPrice != nil && *input.CompareAtPrice < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "compare_at_price must be non-negative")
	}
	if input.StockLevels != nil {
		return validateStockLevels(*input.StockLevels)
	}
	return nil
}

func validateStockLevels(levels types.StockLevels) error {
	for size, qty := range levels {
		if !enums.Size(size).IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown size %q", size))
		}
		if qty < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("stock for size %q must be non-negative", size))
		}
	}
	return nil
}

func applyUpdateToProduct(product *models.Product, input UpdateProductInput) {
	if input.Title != nil {
		product.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		product.Description = strings.TrimSpace(*input.Description)
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.CompareAtPrice != nil {
		product.CompareAtPrice = input.CompareAtPrice
	}
	if input.Images != nil {
		product.Images = append([]string(nil), *input.Images...)
	}
	if input.Colors != nil {
		product.Colors = append([]string(nil), *input.Colors...)
	}
	if input.IsHybrid != nil {
		product.IsHybrid = *input.IsHybrid
	}
	if input.StockLevels != nil {
		product.StockLevels = input.StockLevels.Clone()
	}
	if input.ProductionTime != nil {
		product.ProductionTime = strings.TrimSpace(*input.ProductionTime)
	}
	if input.IsPublished != nil {
		product.IsPublished = *input.IsPublished
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}
}
