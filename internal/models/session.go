package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Session struct {
	ID        string     `gorm:"type:uuid;primaryKey" json:"id"`
	Code      string     `gorm:"size:6;uniqueIndex" json:"code"`
	HostID    *string    `gorm:"type:uuid" json:"host_id,omitempty"`
	IsActive  bool       `gorm:"not null;default:true" json:"is_active"`
	Buttons   AmountList `gorm:"type:text;not null" json:"buttons"`
	CreatedAt time.Time  `json:"created_at"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

const (
	// BankSelector marks the bank as a transfer endpoint in place of a player id.
	BankSelector = "bank"

	DefaultInitialBalance = 15000

	MinButtons = 1
	MaxButtons = 8
)

// DefaultButtons returns the quick-amount configuration new sessions start with.
func DefaultButtons() AmountList {
	return AmountList{100, 200, 500, 1000, 2000, 5000}
}

// AmountList is a []int64 stored as a JSON text column so the same model works
// on postgres and sqlite.
type AmountList []int64

func (l AmountList) Value() (driver.Value, error) {
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *AmountList) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into AmountList", value)
	}
}
