// Package inventory implements catalog CRUD for physical stock. Service
// products are sale-able through the sales workflow but are excluded from
// every inventory listing.
package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Gachagokimani/Cybersmarter-business-system/internal/domain"
)

// CreateProductInput are the fields accepted when adding a catalog item.
type CreateProductInput struct {
	Name        string
	Category    string
	Quantity    int
	UnitPrice   decimal.Decimal
	BuyingPrice *decimal.Decimal
}

// UpdateProductInput are the fields accepted when editing a catalog item.
type UpdateProductInput struct {
	ID          int64
	Name        string
	Category    string
	Quantity    int
	UnitPrice   decimal.Decimal
	BuyingPrice *decimal.Decimal
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns all catalog items except Service-category products.
func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := s.db.WithContext(ctx).
		Where("category <> ?", domain.CategoryService).
		Order("id").
		Find(&products).Error
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return products, nil
}

// LowStock returns non-service products at or below the given threshold.
func (s *Service) LowStock(ctx context.Context, threshold int) ([]domain.Product, error) {
	var products []domain.Product
	err := s.db.WithContext(ctx).
		Where("category <> ? AND quantity <= ?", domain.CategoryService, threshold).
		Order("quantity").
		Find(&products).Error
	if err != nil {
		return nil, errors.Wrap(err, "query low stock products")
	}
	return products, nil
}

func (s *Service) Create(ctx context.Context, in CreateProductInput) (*domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name is required")
	}
	if in.Quantity < 0 {
		return nil, domain.NewValidationError("quantity must not be negative")
	}

	now := time.Now()
	product := &domain.Product{
		Name:        name,
		Category:    strings.TrimSpace(in.Category),
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		BuyingPrice: in.BuyingPrice,
		Status:      domain.StockStatus(in.Quantity),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, errors.Wrap(err, "create product")
	}
	return product, nil
}

func (s *Service) Update(ctx context.Context, in UpdateProductInput) (*domain.Product, error) {
	var product domain.Product
	err := s.db.WithContext(ctx).First(&product, in.ID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, errors.Wrap(domain.ErrNotFound, "product not found")
	case err != nil:
		return nil, errors.Wrap(err, "query product")
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name is required")
	}
	if in.Quantity < 0 {
		return nil, domain.NewValidationError("quantity must not be negative")
	}

	product.Name = name
	product.Category = strings.TrimSpace(in.Category)
	product.Quantity = in.Quantity
	product.UnitPrice = in.UnitPrice
	product.BuyingPrice = in.BuyingPrice
	product.Status = domain.StockStatus(in.Quantity)
	product.UpdatedAt = time.Now()

	if err := s.db.WithContext(ctx).Save(&product).Error; err != nil {
		return nil, errors.Wrap(err, "update product")
	}
	return &product, nil
}

// Delete removes a catalog item. A missing id is a soft success; a product
// in an invalid state (negative quantity or empty name) is auto-deleted and
// reported as such.
func (s *Service) Delete(ctx context.Context, id int64) (domain.DeleteOutcome, error) {
	var product domain.Product
	err := s.db.WithContext(ctx).First(&product, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.DeleteOutcomeAlreadyRemoved, nil
	case err != nil:
		return "", errors.Wrap(err, "query product")
	}

	if err := s.db.WithContext(ctx).Delete(&domain.Product{}, id).Error; err != nil {
		return "", errors.Wrap(err, "delete product")
	}
	if product.Quantity < 0 || strings.TrimSpace(product.Name) == "" {
		return domain.DeleteOutcomeAutoDeleted, nil
	}
	return domain.DeleteOutcomeDeleted, nil
}
