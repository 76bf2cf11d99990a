package models

import "time"

// SessionEntry is one key of the terminal's durable session store.
type SessionEntry struct {
	Key       string    `gorm:"column:session_key;primaryKey;type:varchar(191)"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
