package models

import "time"

// AppSetting is a typed key-value configuration row.
type AppSetting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100;not null" json:"key"`
	Value     string    `gorm:"size:500" json:"value"`
	Type      string    `gorm:"size:20;default:string" json:"type"` // string, int, bool
	Group     string    `gorm:"size:50" json:"group"`
	Label     string    `gorm:"size:200" json:"label"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AppSetting) TableName() string { return "app_settings" }

// Well-known setting keys.
const (
	SettingExpiryNoticeDays = "expiry_notice_days"
	SettingSweepTimezone    = "sweep_timezone"
)
