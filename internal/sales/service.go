// Package sales implements the sale recording workflow: service items are
// sold against synthetic zero-quantity products, physical items deduct
// stock, and every mutation returns a fresh revenue snapshot.
package sales

import (
	"context"
	"strings"
	"time"

	evbus "github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Gachagokimani/Cybersmarter-business-system/internal/domain"
	"github.com/Gachagokimani/Cybersmarter-business-system/internal/revenue"
)

// DateLayout is the wire format for sale dates.
const DateLayout = "2006-01-02"

// TopicLowStock is published on the event bus when a deduction leaves a
// product at or below the configured stock threshold.
const TopicLowStock = "sales.low_stock"

// Settings provides the runtime knobs the workflow reads on each call.
type Settings interface {
	// ServiceNames returns the set of item names sold without stock.
	ServiceNames() []string
	// StockThreshold returns the low-stock alert threshold.
	StockThreshold() int
}

// LowStockEvent is the payload published on TopicLowStock.
type LowStockEvent struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Threshold int    `json:"threshold"`
	Category  string `json:"category"`
}

// SaleView is the flat representation returned to clients.
type SaleView struct {
	ID       int64           `json:"id"`
	Item     string          `json:"item"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Date     string          `json:"date"`
}

// RecordSaleInput are the fields required to record a sale.
type RecordSaleInput struct {
	Item     string
	Price    decimal.Decimal
	Quantity int
	Date     string
}

// UpdateSaleInput are the fields required to edit a sale.
type UpdateSaleInput struct {
	ID       int64
	Item     string
	Price    decimal.Decimal
	Quantity int
	Date     string
}

// Service orchestrates the catalog and transaction stores for sales.
type Service struct {
	products     ProductRepository
	transactions TransactionRepository
	aggregator   *revenue.Aggregator
	settings     Settings
	bus          evbus.Bus
}

// NewService creates the sale workflow service. bus may be nil when no
// low-stock event consumer exists (tests, one-shot tools).
func NewService(
	products ProductRepository,
	transactions TransactionRepository,
	aggregator *revenue.Aggregator,
	settings Settings,
	bus evbus.Bus,
) *Service {
	return &Service{
		products:     products,
		transactions: transactions,
		aggregator:   aggregator,
		settings:     settings,
		bus:          bus,
	}
}

// List returns all recorded sales as flat views, newest first.
func (s *Service) List(ctx context.Context) ([]SaleView, error) {
	txs, err := s.transactions.ListSales(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list sales")
	}
	views := make([]SaleView, 0, len(txs))
	for i := range txs {
		views = append(views, toView(&txs[i]))
	}
	return views, nil
}

// Record records a sale. Recognized service names resolve to (or create) a
// zero-quantity Service product; physical items must exist in the catalog
// and have enough stock, which is deducted atomically.
func (s *Service) Record(ctx context.Context, in RecordSaleInput) (*SaleView, *revenue.Summary, error) {
	if err := validateSaleInput(in.Item, in.Price, in.Quantity, in.Date); err != nil {
		return nil, nil, err
	}
	date, _ := time.Parse(DateLayout, in.Date)
	item := strings.TrimSpace(in.Item)

	var product *domain.Product
	if s.isServiceItem(item) {
		p, err := s.resolveServiceProduct(ctx, item, in.Price)
		if err != nil {
			return nil, nil, err
		}
		product = p
	} else {
		p, err := s.products.GetByName(ctx, item)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// A sale cannot be recorded against inventory that does not exist.
			return nil, nil, errors.Wrap(domain.ErrNotFound, "item not found in inventory")
		case err != nil:
			return nil, nil, errors.Wrap(err, "query product")
		}

		deducted, err := s.products.DeductStock(ctx, p.ID, in.Quantity)
		if err != nil {
			return nil, nil, errors.Wrap(err, "deduct stock")
		}
		if !deducted {
			return nil, nil, &domain.InsufficientStockError{
				Available: p.Quantity,
				Requested: in.Quantity,
			}
		}

		remaining := p.Quantity - in.Quantity
		if s.bus != nil && remaining <= s.settings.StockThreshold() {
			s.bus.Publish(TopicLowStock, LowStockEvent{
				ProductID: p.ID,
				Name:      p.Name,
				Quantity:  remaining,
				Threshold: s.settings.StockThreshold(),
				Category:  p.Category,
			})
		}
		product = p
	}

	price := in.Price
	tx := &domain.Transaction{
		ProductID:    product.ID,
		Product:      product,
		Quantity:     in.Quantity,
		ChargedPrice: &price,
		Type:         domain.TransactionTypeSale,
		Timestamp:    date,
	}
	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, nil, errors.Wrap(err, "create sale transaction")
	}

	summary, err := s.aggregator.Compute(ctx)
	if err != nil {
		return nil, nil, err
	}
	view := toView(tx)
	return &view, summary, nil
}

// Update edits an existing sale. Renaming the item repoints the transaction,
// creating a Service-category product when the name is unseen. Stock is not
// re-deducted or restored when quantity changes on an existing sale.
func (s *Service) Update(ctx context.Context, in UpdateSaleInput) error {
	if err := validateSaleInput(in.Item, in.Price, in.Quantity, in.Date); err != nil {
		return err
	}
	date, _ := time.Parse(DateLayout, in.Date)
	item := strings.TrimSpace(in.Item)

	tx, err := s.transactions.GetByID(ctx, in.ID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errors.Wrap(domain.ErrNotFound, "sale not found")
	case err != nil:
		return errors.Wrap(err, "query sale")
	}

	price := in.Price
	if tx.Product == nil || tx.Product.Name != item {
		product, err := s.findOrCreateProduct(ctx, item, in.Price)
		if err != nil {
			return err
		}
		return s.transactions.Updates(ctx, tx.ID, map[string]interface{}{
			"product_id":    product.ID,
			"quantity":      in.Quantity,
			"charged_price": price,
			"timestamp":     date,
		})
	}

	err = s.transactions.Updates(ctx, tx.ID, map[string]interface{}{
		"quantity":      in.Quantity,
		"charged_price": price,
		"timestamp":     date,
	})
	if err != nil {
		return errors.Wrap(err, "update sale")
	}

	// Keep the reference price current even though the sale keeps its own
	// charged price.
	if !tx.Product.UnitPrice.Equal(in.Price) {
		if err := s.products.UpdateUnitPrice(ctx, tx.ProductID, in.Price); err != nil {
			return errors.Wrap(err, "update reference price")
		}
	}
	return nil
}

// Delete removes a sale. A missing id is a soft success; an invalid record
// (non-positive quantity or broken product reference) is auto-deleted and
// reported as such. Deleting a sale never returns items to inventory.
func (s *Service) Delete(ctx context.Context, id int64) (domain.DeleteOutcome, error) {
	tx, err := s.transactions.GetByID(ctx, id)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.DeleteOutcomeAlreadyRemoved, nil
	case err != nil:
		return "", errors.Wrap(err, "query sale")
	}

	if err := s.transactions.Delete(ctx, id); err != nil {
		return "", errors.Wrap(err, "delete sale")
	}
	if tx.Quantity <= 0 || tx.Product == nil {
		return domain.DeleteOutcomeAutoDeleted, nil
	}
	return domain.DeleteOutcomeDeleted, nil
}

// resolveServiceProduct finds or creates the product for a service sale and
// tracks reference price drift on an existing one.
func (s *Service) resolveServiceProduct(ctx context.Context, name string, price decimal.Decimal) (*domain.Product, error) {
	product, err := s.findOrCreateProduct(ctx, name, price)
	if err != nil {
		return nil, err
	}
	if !product.UnitPrice.Equal(price) {
		if err := s.products.UpdateUnitPrice(ctx, product.ID, price); err != nil {
			return nil, errors.Wrap(err, "update reference price")
		}
		product.UnitPrice = price
	}
	return product, nil
}

// findOrCreateProduct finds a product by exact name, creating a
// zero-quantity Service product when none exists. An existing product is
// returned untouched; renaming a sale must not rewrite its reference price.
func (s *Service) findOrCreateProduct(ctx context.Context, name string, price decimal.Decimal) (*domain.Product, error) {
	product, err := s.products.GetByName(ctx, name)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		product = &domain.Product{
			Name:      name,
			Category:  domain.CategoryService,
			Quantity:  0,
			UnitPrice: price,
			Status:    domain.StockStatusIn,
		}
		if err := s.products.Create(ctx, product); err != nil {
			return nil, errors.Wrap(err, "create service product")
		}
	case err != nil:
		return nil, errors.Wrap(err, "query product")
	}
	return product, nil
}

func (s *Service) isServiceItem(name string) bool {
	for _, n := range s.settings.ServiceNames() {
		if n == name {
			return true
		}
	}
	return false
}

func validateSaleInput(item string, price decimal.Decimal, quantity int, date string) error {
	if strings.TrimSpace(item) == "" {
		return domain.NewValidationError("item is required")
	}
	if !price.IsPositive() {
		return domain.NewValidationError("price must be positive")
	}
	if quantity <= 0 {
		return domain.NewValidationError("quantity must be positive")
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return domain.NewValidationError("date must be in YYYY-MM-DD format")
	}
	return nil
}

func toView(tx *domain.Transaction) SaleView {
	view := SaleView{
		ID:       tx.ID,
		Item:     "Unknown Item",
		Quantity: tx.Quantity,
		Date:     tx.Timestamp.Format(DateLayout),
	}
	switch {
	case tx.ChargedPrice != nil:
		view.Price = *tx.ChargedPrice
	case tx.Product != nil:
		view.Price = tx.Product.UnitPrice
	}
	if tx.Product != nil {
		view.Item = tx.Product.Name
	}
	return view
}
