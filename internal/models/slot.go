package models

import "time"

// Slot is one named value in the sqlite-backed key-value table.
type Slot struct {
	Name      string `gorm:"primaryKey"`
	Value     string
	UpdatedAt time.Time
}
