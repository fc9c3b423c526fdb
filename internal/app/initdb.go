package app

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/Gachagokimani/Cybersmarter-business-system/internal/domain"
)

// Default alert settings. The stock threshold matches the value the UI
// suggests for alert entries.
const (
	DefaultStockThreshold = 5
)

type settingSchema struct {
	Category string
	Name     string
	Default  string
	Remark   string
}

func defaultSettings() []settingSchema {
	serviceItems, _ := json.Marshal(domain.DefaultServiceNames)
	return []settingSchema{
		{"alerts", "email", "", "Destination address for low stock alert emails"},
		{"alerts", "stock_threshold", "5", "Quantity at or below which an item counts as low stock"},
		{"sales", "service_items", string(serviceItems), "Item names sold without physical stock"},
	}
}

// checkSettings initializes missing setting rows with their defaults.
func (a *Application) checkSettings() {
	for sortid, schema := range defaultSettings() {
		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? AND name = ?", schema.Category, schema.Name).
			Count(&count)

		if count == 0 {
			a.gormDB.Create(&domain.SysConfig{
				Sort:   sortid,
				Type:   schema.Category,
				Name:   schema.Name,
				Value:  schema.Default,
				Remark: schema.Remark,
			})
			zap.L().Info("initialized setting",
				zap.String("category", schema.Category),
				zap.String("name", schema.Name))
		}
	}
}

// ServiceNames returns the configured service item names, falling back to
// the built-in defaults when the setting is missing or unparseable.
func (a *Application) ServiceNames() []string {
	raw := a.configManager.GetString("sales", "service_items")
	if raw == "" {
		return domain.DefaultServiceNames
	}
	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil || len(names) == 0 {
		return domain.DefaultServiceNames
	}
	return names
}

// StockThreshold returns the configured low-stock threshold.
func (a *Application) StockThreshold() int {
	if threshold := a.configManager.GetInt("alerts", "stock_threshold"); threshold > 0 {
		return threshold
	}
	return DefaultStockThreshold
}
