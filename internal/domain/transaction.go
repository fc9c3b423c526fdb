package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionTypeSale is the only transaction type currently recorded.
const TransactionTypeSale = "SALE"

// Transaction records a sale against a catalog product. ChargedPrice is the
// price actually charged, which may be discounted from the product's
// reference unit price; when absent, reporting falls back to the unit price.
type Transaction struct {
	ID           int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID    int64            `gorm:"index" json:"productId"`
	Product      *Product         `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity     int              `json:"quantity"`
	ChargedPrice *decimal.Decimal `gorm:"type:decimal(12,2)" json:"chargedPrice,omitempty"`
	Type         string           `gorm:"size:32;index" json:"type"`
	Timestamp    time.Time        `gorm:"index" json:"timestamp"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}
