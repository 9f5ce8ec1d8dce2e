package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Player struct {
	ID             string `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID      string `gorm:"type:uuid;not null;index" json:"session_id"`
	Name           string `gorm:"size:100;not null" json:"name"`
	Balance        int64  `gorm:"not null" json:"balance"`
	InitialBalance int64  `gorm:"not null" json:"initial_balance"`
	IsHost         bool   `gorm:"not null;default:false" json:"is_host"`
	// CreatedAt in unix nanoseconds, the stable ordering key for player lists.
	CreatedAt int64 `gorm:"autoCreateTime:nano" json:"created_at"`
}

func (p *Player) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
