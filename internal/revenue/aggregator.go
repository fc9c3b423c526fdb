// Package revenue derives revenue figures from the transaction and expense
// stores. Figures are recomputed with a fresh full scan on every call; no
// incremental counters are maintained, so the numbers cannot drift.
package revenue

import (
	"context"

	"github.com/Gachagokimani/Cybersmarter-business-system/internal/domain"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Summary is the revenue snapshot returned alongside every mutating sale or
// expense operation.
type Summary struct {
	GrossRevenue  decimal.Decimal `json:"grossRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetRevenue    decimal.Decimal `json:"netRevenue"`
}

type Aggregator struct {
	db *gorm.DB
}

func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db}
}

// Compute scans all SALE transactions and all expenses and returns the
// current snapshot. The price of a sale is its charged price when recorded,
// falling back to the referenced product's unit price, then zero.
func (a *Aggregator) Compute(ctx context.Context) (*Summary, error) {
	var sales []domain.Transaction
	err := a.db.WithContext(ctx).
		Where("type = ?", domain.TransactionTypeSale).
		Preload("Product").
		Find(&sales).Error
	if err != nil {
		return nil, errors.Wrap(err, "query sale transactions")
	}

	gross := decimal.Zero
	for _, sale := range sales {
		price := decimal.Zero
		switch {
		case sale.ChargedPrice != nil:
			price = *sale.ChargedPrice
		case sale.Product != nil:
			price = sale.Product.UnitPrice
		}
		gross = gross.Add(price.Mul(decimal.NewFromInt(int64(sale.Quantity))))
	}

	var expenses []domain.Expense
	if err := a.db.WithContext(ctx).Find(&expenses).Error; err != nil {
		return nil, errors.Wrap(err, "query expenses")
	}

	total := decimal.Zero
	for _, expense := range expenses {
		total = total.Add(expense.Total())
	}

	return &Summary{
		GrossRevenue:  gross,
		TotalExpenses: total,
		NetRevenue:    gross.Sub(total),
	}, nil
}
