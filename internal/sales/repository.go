package sales

import (
	"context"
	"time"

	"github.com/Gachagokimani/Cybersmarter-business-system/internal/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductRepository is the catalog access the sale workflow needs.
type ProductRepository interface {
	// GetByName retrieves a product by exact name.
	GetByName(ctx context.Context, name string) (*domain.Product, error)

	// Create inserts a new product.
	Create(ctx context.Context, product *domain.Product) error

	// UpdateUnitPrice updates the reference unit price of a product.
	UpdateUnitPrice(ctx context.Context, id int64, price decimal.Decimal) error

	// DeductStock atomically deducts quantity units and re-derives status,
	// but only when at least that many units are available. Returns false
	// without modifying the row when stock is insufficient.
	DeductStock(ctx context.Context, id int64, quantity int) (bool, error)
}

// TransactionRepository handles database operations for sale transactions.
type TransactionRepository interface {
	// Create inserts a new transaction.
	Create(ctx context.Context, tx *domain.Transaction) error

	// GetByID retrieves a transaction with its product reference loaded.
	GetByID(ctx context.Context, id int64) (*domain.Transaction, error)

	// ListSales retrieves all SALE transactions with product references.
	ListSales(ctx context.Context) ([]domain.Transaction, error)

	// Updates applies a partial update to a transaction.
	Updates(ctx context.Context, id int64, values map[string]interface{}) error

	// Delete removes a transaction.
	Delete(ctx context.Context, id int64) error
}

// GormProductRepository is the GORM implementation of ProductRepository.
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *GormProductRepository) UpdateUnitPrice(ctx context.Context, id int64, price decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"unit_price": price,
			"updated_at": time.Now(),
		}).Error
}

func (r *GormProductRepository) DeductStock(ctx context.Context, id int64, quantity int) (bool, error) {
	// Single conditional UPDATE: the availability check and the deduction
	// commit together, so two concurrent sales of the last units cannot
	// both pass the check.
	res := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ? AND quantity >= ?", id, quantity).
		Updates(map[string]interface{}{
			"quantity": gorm.Expr("quantity - ?", quantity),
			"status": gorm.Expr(
				"CASE WHEN quantity - ? <= 0 THEN ? ELSE ? END",
				quantity, domain.StockStatusOut, domain.StockStatusIn,
			),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// GormTransactionRepository is the GORM implementation of TransactionRepository.
type GormTransactionRepository struct {
	db *gorm.DB
}

func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

func (r *GormTransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	// The product reference is attached for the caller's benefit only.
	return r.db.WithContext(ctx).Omit("Product").Create(tx).Error
}

func (r *GormTransactionRepository) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	var tx domain.Transaction
	err := r.db.WithContext(ctx).Preload("Product").First(&tx, id).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *GormTransactionRepository) ListSales(ctx context.Context) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	err := r.db.WithContext(ctx).
		Where("type = ?", domain.TransactionTypeSale).
		Preload("Product").
		Order("id DESC").
		Find(&txs).Error
	return txs, err
}

func (r *GormTransactionRepository) Updates(ctx context.Context, id int64, values map[string]interface{}) error {
	values["updated_at"] = time.Now()
	return r.db.WithContext(ctx).
		Model(&domain.Transaction{}).
		Where("id = ?", id).
		Updates(values).Error
}

func (r *GormTransactionRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Transaction{}, id).Error
}
