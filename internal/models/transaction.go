package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction is an append-only history record. A nil player reference on
// either end means the bank; both ends are never nil. Corrections happen via
// new offsetting transactions, rows are never edited.
type Transaction struct {
	ID              string  `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID       string  `gorm:"type:uuid;not null;index" json:"session_id"`
	FromPlayerID    *string `gorm:"type:uuid" json:"from_player_id,omitempty"`
	ToPlayerID      *string `gorm:"type:uuid" json:"to_player_id,omitempty"`
	Amount          int64   `gorm:"not null" json:"amount"`
	PreviousBalance int64   `gorm:"not null" json:"previous_balance"`
	NewBalance      int64   `gorm:"not null" json:"new_balance"`
	Description     string  `gorm:"size:255" json:"description"`
	CreatedAt       int64   `gorm:"autoCreateTime:nano" json:"created_at"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// TransactionWithNames annotates a transaction with the display names of the
// referenced players. A name stays nil when the endpoint is the bank or when
// the player has since been removed from the session.
type TransactionWithNames struct {
	Transaction
	FromPlayerName *string `json:"from_player_name,omitempty"`
	ToPlayerName   *string `json:"to_player_name,omitempty"`
}
