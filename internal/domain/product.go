package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock status values; always derived from quantity, never set directly.
const (
	StockStatusIn  = "IN_STOCK"
	StockStatusOut = "OUT_OF_STOCK"
)

// CategoryService marks non-physical offerings. Service products are
// sale-able but never appear in inventory listings and keep quantity 0.
const CategoryService = "Service"

// Product is a catalog item: either physical inventory or a synthetic
// service product created on first sale of a recognized service name.
type Product struct {
	ID          int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string           `gorm:"uniqueIndex;size:200" json:"name"`
	Category    string           `gorm:"size:64;index" json:"category"`
	Quantity    int              `json:"quantity"`
	UnitPrice   decimal.Decimal  `gorm:"type:decimal(12,2)" json:"unitPrice"`
	BuyingPrice *decimal.Decimal `gorm:"type:decimal(12,2)" json:"buyingPrice,omitempty"`
	Status      string           `gorm:"size:16" json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// StockStatus derives the status value from a quantity.
func StockStatus(quantity int) string {
	if quantity <= 0 {
		return StockStatusOut
	}
	return StockStatusIn
}

// IsService reports whether the product is a service catalog entry.
func (p *Product) IsService() bool {
	return p.Category == CategoryService
}
