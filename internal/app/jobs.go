package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Gachagokimani/Cybersmarter-business-system/internal/mailer"
	"github.com/Gachagokimani/Cybersmarter-business-system/internal/sales"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	if _, err := a.sched.AddFunc("@daily", a.SchedLowStockAlertTask); err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	if err := a.bus.SubscribeAsync(sales.TopicLowStock, a.onLowStock, false); err != nil {
		zap.S().Errorf("subscribe low stock events error %s", err.Error())
	}

	a.sched.Start()
}

// onLowStock logs sale-time threshold crossings as they happen. The daily
// scan remains the source of the alert email, so a burst of sales does not
// produce a burst of mail.
func (a *Application) onLowStock(event sales.LowStockEvent) {
	zap.L().Warn("product stock at or below threshold",
		zap.Int64("product_id", event.ProductID),
		zap.String("name", event.Name),
		zap.Int("quantity", event.Quantity),
		zap.Int("threshold", event.Threshold))
}

// SchedLowStockAlertTask scans for low stock items and emails the alert to
// the configured address, when one is set.
func (a *Application) SchedLowStockAlertTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	email := a.configManager.GetString("alerts", "email")
	if email == "" {
		return
	}

	threshold := a.StockThreshold()
	products, err := a.inventoryService.LowStock(context.Background(), threshold)
	if err != nil {
		zap.L().Error("low stock scan failed", zap.Error(err))
		return
	}
	if len(products) == 0 {
		return
	}

	alerts := make([]mailer.StockAlert, 0, len(products))
	for _, p := range products {
		alerts = append(alerts, mailer.StockAlert{
			ItemName:        p.Name,
			CurrentQuantity: p.Quantity,
			Threshold:       threshold,
			Category:        p.Category,
		})
	}

	body, err := mailer.RenderInventoryAlert(alerts)
	if err != nil {
		zap.L().Error("render inventory alert failed", zap.Error(err))
		return
	}
	if err := a.mailSender.Send(email, "Inventory Alert - Low Stock Items", body); err != nil {
		zap.L().Error("send inventory alert failed", zap.Error(err))
		return
	}
	zap.L().Info("inventory alert sent",
		zap.String("email", email),
		zap.Int("items", len(alerts)))
}
