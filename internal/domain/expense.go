package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategories is the recommended category set offered by the UI.
// The category column itself is free-form.
var ExpenseCategories = []string{
	"Rent",
	"Utilities",
	"Internet",
	"Equipment",
	"Supplies",
	"Maintenance",
	"Marketing",
	"Insurance",
	"Transportation",
	"Other",
}

// Expense is an operating cost entry. Amount is per unit.
type Expense struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Item      string          `gorm:"size:200" json:"item"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Quantity  int             `gorm:"default:1" json:"quantity"`
	Date      time.Time       `gorm:"index" json:"date"`
	Category  string          `gorm:"size:64;index" json:"category"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Total returns amount multiplied by quantity.
func (e *Expense) Total() decimal.Decimal {
	return e.Amount.Mul(decimal.NewFromInt(int64(e.Quantity)))
}
