package app

import (
	evbus "github.com/asaskevich/EventBus"
	"gorm.io/gorm"

	"github.com/Gachagokimani/Cybersmarter-business-system/config"
	"github.com/Gachagokimani/Cybersmarter-business-system/internal/inventory"
	"github.com/Gachagokimani/Cybersmarter-business-system/internal/mailer"
	"github.com/Gachagokimani/Cybersmarter-business-system/internal/revenue"
	"github.com/Gachagokimani/Cybersmarter-business-system/internal/sales"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SettingsProvider provides runtime settings access
type SettingsProvider interface {
	GetSettingsStringValue(category, key string) string
	GetSettingsInt64Value(category, key string) int64
	GetSettingsBoolValue(category, key string) bool
}

// BusProvider provides the process-local event bus
type BusProvider interface {
	Bus() evbus.Bus
}

// AppContext combines all provider interfaces for full application context.
// Handlers should depend on specific providers or this combined interface.
type AppContext interface {
	DBProvider
	ConfigProvider
	SettingsProvider
	BusProvider

	Mailer() *mailer.Mailer
	Sales() *sales.Service
	Inventory() *inventory.Service
	Revenue() *revenue.Aggregator

	// Application lifecycle methods
	MigrateDB(track bool) error
	InitDb()
	DropAll()
}
