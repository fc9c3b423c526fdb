package sales

import (
	"context"
	"testing"

	evbus "github.com/asaskevich/EventBus"
	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Gachagokimani/Cybersmarter-business-system/internal/domain"
	"github.com/Gachagokimani/Cybersmarter-business-system/internal/revenue"
)

type testSettings struct {
	names     []string
	threshold int
}

func (s testSettings) ServiceNames() []string { return s.names }
func (s testSettings) StockThreshold() int    { return s.threshold }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))
	return db
}

func newTestService(t *testing.T, db *gorm.DB, bus evbus.Bus) *Service {
	t.Helper()
	return NewService(
		NewGormProductRepository(db),
		NewGormTransactionRepository(db),
		revenue.NewAggregator(db),
		testSettings{names: []string{"KRA iTax", "eCitizen"}, threshold: 5},
		bus,
	)
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func seedProduct(t *testing.T, db *gorm.DB, name string, quantity int, unitPrice string) *domain.Product {
	t.Helper()
	product := &domain.Product{
		Name:      name,
		Category:  "Electronics",
		Quantity:  quantity,
		UnitPrice: dec(t, unitPrice),
		Status:    domain.StockStatus(quantity),
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func loadProduct(t *testing.T, db *gorm.DB, id int64) *domain.Product {
	t.Helper()
	var product domain.Product
	require.NoError(t, db.First(&product, id).Error)
	return &product
}

func TestRecordPhysicalSaleDeductsStock(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, nil)
	mouse := seedProduct(t, db, "Mouse", 10, "500")

	view, summary, err := svc.Record(context.Background(), RecordSaleInput{
		Item: "Mouse", Price: dec(t, "450"), Quantity: 3, Date: "2025-01-15",
	})
	require.NoError(t, err)

	assert.Equal(t, "Mouse", view.Item)
	assert.Equal(t, 3, view.Quantity)
	assert.True(t, view.Price.Equal(dec(t, "450")))
	assert.Equal(t, "2025-01-15", view.Date)

	got := loadProduct(t, db, mouse.ID)
	assert.Equal(t, 7, got.Quantity)
	assert.Equal(t, domain.StockStatusIn, got.Status)

	assert.True(t, summary.GrossRevenue.Equal(dec(t, "1350")))
	assert.True(t, summary.NetRevenue.Equal(dec(t, "1350")))
}

func TestRecordPhysicalSaleDrainsStock(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, nil)
	cable := seedProduct(t, db, "HDMI Cable", 3, "800")

	_, _, err := svc.Record(context.Background(), RecordSaleInput{
		Item: "HDMI Cable", Price: dec(t, "800"), Quantity: 3, Date: "2025-01-15",
	})
	require.NoError(t, err)

	got := loadProduct(t, db, cable.ID)
	assert.Equal(t, 0, got.Quantity)
	assert.Equal(t, domain.StockStatusOut, got.Status)
}

func TestRecordSaleInsufficientStock(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, nil)
	kbd := seedProduct(t, db, "Keyboard", 2, "1500")

	_, _, err := svc.Record(context.Background(), RecordSaleInput{
		Item: "Keyboard", Price: dec(t, "1500"), Quantity: 5, Date: "2025-01-15",
	})
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 5, stockErr.Requested)

	// the refused deduction must not touch the row
	got := loadProduct(t, db, kbd.ID)
	assert.Equal(t, 2, got.Quantity)
	assert.Equal(t, domain.StockStatusIn, got.Status)

	var count int64
	require.NoError(t, db.Model(&domain.Transaction{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecordSaleUnknownItem(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, nil)

	_, _, err := svc.Record(context.Background(), RecordSaleInput{
		Item: "Nonexistent", Price: dec(t, "100"), Quantity: 1, Date: "2025-01-15",
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRecordServiceSaleCreatesProductOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, nil)

	for i := 0; i < 2; i++ {
		_, _, err := svc.Record(context.Background(), RecordSaleInput{
			Item: "KRA iTax", Price: dec(t, "250"), Quantity: 1, Date: "2025-01-15",
		})
		require.NoError(t, err)
	}

	var products []domain.Product
	require.NoError(t, db.Where("name = ?", "KRA iTax").Find(&products).Error)
	require.Len(t, products, 1)
	assert.Equal(t, domain.CategoryService, products[0].Category)
	assert.Equal(t, 0, products[0].Quantity)
	assert.Equal(t, domain.StockStatusIn, products[0].Status)

	var count int64
	require.NoError(t, db.Model(&domain.Transaction{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestRecordServiceSaleTracksReferencePrice(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, nil)

	_, _, err := svc.Record(context.Background(), RecordSaleInput{
		Item: "eCitizen", Price: dec(t, "300"), Quantity: 1, Date: "2025-01-15",
	})
	require.NoError(t, err)

	// discounted second sale drags the reference price along
	_, _, err = svc.Record(context.Background(), RecordSaleInput{
		Item: "eCitizen", Price: dec(t, "200"), Quantity: 1, Date: "2025-01-16",
	})
	require.NoError(t, err)

	var product domain.Product
	require.NoError(t, db.Where("name = ?", "eCitizen").First(&product).Error)
	assert.True(t, product.UnitPrice.Equal(dec(t, "200")))
}

func TestRecordSaleValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, nil)

	cases := []RecordSaleInput{
		{Item: "", Price: dec(t, "100"), Quantity: 1, Date: "2025-01-15"},
		{Item: "Mouse", Price: decimal.Zero, Quantity: 1, Date: "2025-01-15"},
		{Item: "Mouse", Price: dec(t, "100"), Quantity: 0, Date: "2025-01-15"},
		{Item: "Mouse", Price: dec(t, "100"), Quantity: 1, Date: "15/01/2025"},
	}
	for _, in := range cases {
		_, _, err := svc.Record(context.Background(), in)
		var validationErr *domain.ValidationError
		assert.True(t, errors.As(err, &validationErr), "input %+v", in)
	}
}

func TestRecordSalePublishesLowStockEvent(t *testing.T) {
	db := newTestDB(t)
	bus := evbus.New()
	svc := newTestService(t, db, bus)
	seedProduct(t, db, "Flash Drive", 6, "900")

	var events []LowStockEvent
	require.NoError(t, bus.Subscribe(TopicLowStock, func(event LowStockEvent) {
		events = append(events, event)
	}))

	_, _, err := svc.Record(context.Background(), RecordSaleInput{
		Item: "Flash Drive", Price: dec(t, "900"), Quantity: 2, Date: "2025-01-15",
	})
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, "Flash Drive", events[0].Name)
	assert.Equal(t, 4, events[0].Quantity)
	assert.Equal(t, 5, events[0].Threshold)
}

func TestUpdateSaleDoesNotAdjustStock(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, nil)
	mouse := seedProduct(t, db, "Mouse", 10, "500")

	view, _, err := svc.Record(context.Background(), RecordSaleInput{
		Item: "Mouse", Price: dec(t, "500"), Quantity: 3, Date: "2025-01-15",
	})
	require.NoError(t, err)
	require.Equal(t, 7, loadProduct(t, db, mouse.ID).Quantity)

	// editing the quantity of a recorded sale leaves inventory untouched
	err = svc.Update(context.Background(), UpdateSaleInput{
		ID: view.ID, Item: "Mouse", Price: dec(t, "500"), Quantity: 5, Date: "2025-01-15",
	})
	require.NoError(t, err)
	assert.Equal(t, 7, loadProduct(t, db, mouse.ID).Quantity)

	var tx domain.Transaction
	require.NoError(t, db.First(&tx, view.ID).Error)
	assert.Equal(t, 5, tx.Quantity)
}

func TestUpdateSaleTracksReferencePrice(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, nil)
	mouse := seedProduct(t, db, "Mouse", 10, "500")

	view, _, err := svc.Record(context.Background(), RecordSaleInput{
		Item: "Mouse", Price: dec(t, "500"), Quantity: 1, Date: "2025-01-15",
	})
	require.NoError(t, err)

	err = svc.Update(context.Background(), UpdateSaleInput{
		ID: view.ID, Item: "Mouse", Price: dec(t, "450"), Quantity: 1, Date: "2025-01-15",
	})
	require.NoError(t, err)

	assert.True(t, loadProduct(t, db, mouse.ID).UnitPrice.Equal(dec(t, "450")))

	var tx domain.Transaction
	require.NoError(t, db.First(&tx, view.ID).Error)
	require.NotNil(t, tx.ChargedPrice)
	assert.True(t, tx.ChargedPrice.Equal(dec(t, "450")))
}

func TestUpdateSaleRepointsToNewServiceProduct(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, nil)
	seedProduct(t, db, "Mouse", 10, "500")

	view, _, err := svc.Record(context.Background(), RecordSaleInput{
		Item: "Mouse", Price: dec(t, "500"), Quantity: 1, Date: "2025-01-15",
	})
	require.NoError(t, err)

	err = svc.Update(context.Background(), UpdateSaleInput{
		ID: view.ID, Item: "Unseen Offering", Price: dec(t, "700"), Quantity: 1, Date: "2025-01-15",
	})
	require.NoError(t, err)

	var product domain.Product
	require.NoError(t, db.Where("name = ?", "Unseen Offering").First(&product).Error)
	assert.Equal(t, domain.CategoryService, product.Category)
	assert.Equal(t, 0, product.Quantity)

	var tx domain.Transaction
	require.NoError(t, db.First(&tx, view.ID).Error)
	assert.Equal(t, product.ID, tx.ProductID)
}

func TestUpdateSaleRenameKeepsExistingReferencePrice(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, nil)
	seedProduct(t, db, "Mouse", 10, "500")
	keyboard := seedProduct(t, db, "Keyboard", 5, "1500")

	view, _, err := svc.Record(context.Background(), RecordSaleInput{
		Item: "Mouse", Price: dec(t, "500"), Quantity: 1, Date: "2025-01-15",
	})
	require.NoError(t, err)

	// repointing a sale at another product must not rewrite that
	// product's reference price
	err = svc.Update(context.Background(), UpdateSaleInput{
		ID: view.ID, Item: "Keyboard", Price: dec(t, "1000"), Quantity: 1, Date: "2025-01-15",
	})
	require.NoError(t, err)

	assert.True(t, loadProduct(t, db, keyboard.ID).UnitPrice.Equal(dec(t, "1500")))

	var tx domain.Transaction
	require.NoError(t, db.First(&tx, view.ID).Error)
	assert.Equal(t, keyboard.ID, tx.ProductID)
	require.NotNil(t, tx.ChargedPrice)
	assert.True(t, tx.ChargedPrice.Equal(dec(t, "1000")))
}

func TestUpdateMissingSale(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, nil)

	err := svc.Update(context.Background(), UpdateSaleInput{
		ID: 9999, Item: "Mouse", Price: dec(t, "500"), Quantity: 1, Date: "2025-01-15",
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDeleteSaleDoesNotRestoreStock(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, nil)
	mouse := seedProduct(t, db, "Mouse", 10, "500")

	view, _, err := svc.Record(context.Background(), RecordSaleInput{
		Item: "Mouse", Price: dec(t, "500"), Quantity: 4, Date: "2025-01-15",
	})
	require.NoError(t, err)
	require.Equal(t, 6, loadProduct(t, db, mouse.ID).Quantity)

	outcome, err := svc.Delete(context.Background(), view.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DeleteOutcomeDeleted, outcome)

	// deleted sales never return units to inventory
	assert.Equal(t, 6, loadProduct(t, db, mouse.ID).Quantity)

	var count int64
	require.NoError(t, db.Model(&domain.Transaction{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteMissingSaleIsSoftSuccess(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, nil)

	outcome, err := svc.Delete(context.Background(), 12345)
	require.NoError(t, err)
	assert.Equal(t, domain.DeleteOutcomeAlreadyRemoved, outcome)
}

func TestDeleteInvalidSaleAutoDeletes(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, nil)
	mouse := seedProduct(t, db, "Mouse", 10, "500")

	price := dec(t, "500")
	broken := &domain.Transaction{
		ProductID:    mouse.ID,
		Quantity:     0, // invalid
		ChargedPrice: &price,
		Type:         domain.TransactionTypeSale,
	}
	require.NoError(t, db.Create(broken).Error)

	outcome, err := svc.Delete(context.Background(), broken.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DeleteOutcomeAutoDeleted, outcome)

	var count int64
	require.NoError(t, db.Model(&domain.Transaction{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListSalesFallsBackToUnitPrice(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, nil)
	mouse := seedProduct(t, db, "Mouse", 10, "500")

	// legacy row without a charged price
	require.NoError(t, db.Create(&domain.Transaction{
		ProductID: mouse.ID,
		Quantity:  2,
		Type:      domain.TransactionTypeSale,
	}).Error)

	views, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Mouse", views[0].Item)
	assert.True(t, views[0].Price.Equal(dec(t, "500")))
}
