package models

import (
	"time"

	"gorm.io/gorm"
)

// HoldingRecord is a persisted holding.
type HoldingRecord struct {
	gorm.Model
	Symbol   string  `gorm:"uniqueIndex"`
	Quantity float64 `gorm:"not null"`
}

func (HoldingRecord) TableName() string { return "holdings" }

// SettingsRecord stores the scalar settings.
// There should only ever be one row in this table.
type SettingsRecord struct {
	gorm.Model
	FXRate        float64 `gorm:"column:fx_rate;not null"`
	TotalInvested float64 `gorm:"column:total_invested;not null"`
}

func (SettingsRecord) TableName() string { return "settings" }

// SnapshotRecord is a row of the append-only history log.
type SnapshotRecord struct {
	ID        uint      `gorm:"primaryKey"`
	Timestamp time.Time `gorm:"index;not null"`
	ValueGHS  float64   `gorm:"column:value_ghs;not null"`
}

func (SnapshotRecord) TableName() string { return "snapshots" }
