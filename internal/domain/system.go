package domain

import "time"

// SysConfig holds runtime settings as category/name/value rows.
type SysConfig struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Sort      int       `gorm:"column:sort" json:"sort"`
	Type      string    `gorm:"size:64;index" json:"type"`
	Name      string    `gorm:"size:128;index" json:"name"`
	Value     string    `gorm:"size:4000" json:"value"`
	Remark    string    `gorm:"size:512" json:"remark"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
