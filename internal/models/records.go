package models

import (
	"time"

	"github.com/lib/pq"
)

// CheckinRecord is one completed daily check-in. Date is the dedup key:
// at most one record per calendar day.
type CheckinRecord struct {
	ID         int    `gorm:"primaryKey"`
	Date       string `gorm:"uniqueIndex;size:10"` // YYYY-MM-DD
	Selections pq.Int64Array `gorm:"type:integer[]"`
	Score      float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Blob is one opaque client-storage entry. Values are unstructured JSON
// or plain strings; no schema is enforced.
type Blob struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     string
	UpdatedAt time.Time
}
