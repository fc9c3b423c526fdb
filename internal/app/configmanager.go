package app

import (
	"time"

	"github.com/spf13/cast"
	"gorm.io/gorm"

	"github.com/Gachagokimani/Cybersmarter-business-system/internal/domain"
)

// ConfigManager reads and writes runtime settings stored in sys_configs.
// Values are read fresh on every call; the data volume does not justify a
// cache layer.
type ConfigManager struct {
	db *gorm.DB
}

func NewConfigManager(db *gorm.DB) *ConfigManager {
	return &ConfigManager{db: db}
}

func (m *ConfigManager) getValue(category, name string) (string, bool) {
	var cfg domain.SysConfig
	err := m.db.Where("type = ? AND name = ?", category, name).First(&cfg).Error
	if err != nil {
		return "", false
	}
	return cfg.Value, true
}

func (m *ConfigManager) GetString(category, name string) string {
	value, _ := m.getValue(category, name)
	return value
}

func (m *ConfigManager) GetInt64(category, name string) int64 {
	value, ok := m.getValue(category, name)
	if !ok {
		return 0
	}
	return cast.ToInt64(value)
}

func (m *ConfigManager) GetInt(category, name string) int {
	value, ok := m.getValue(category, name)
	if !ok {
		return 0
	}
	return cast.ToInt(value)
}

func (m *ConfigManager) GetBool(category, name string) bool {
	value, ok := m.getValue(category, name)
	if !ok {
		return false
	}
	return cast.ToBool(value)
}

// SetValue creates or updates a setting row.
func (m *ConfigManager) SetValue(category, name, value string) error {
	var count int64
	m.db.Model(&domain.SysConfig{}).
		Where("type = ? AND name = ?", category, name).
		Count(&count)
	if count == 0 {
		return m.db.Create(&domain.SysConfig{
			Type:  category,
			Name:  name,
			Value: value,
		}).Error
	}
	return m.db.Model(&domain.SysConfig{}).
		Where("type = ? AND name = ?", category, name).
		Updates(map[string]interface{}{
			"value":      value,
			"updated_at": time.Now(),
		}).Error
}
