package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Codename is a display name on loan to an anonymous guest browser. A name
// stays unavailable until the holder releases it or the row is reaped.
type Codename struct {
	ID   string `gorm:"primaryKey" json:"id"`
	Name string `json:"name" gorm:"not null;uniqueIndex"`

	CreatedAt time.Time `json:"created_at"`
}

func (cn *Codename) BeforeCreate(tx *gorm.DB) error {
	if cn.ID == "" {
		cn.ID = uuid.NewString()
	}
	return nil
}
