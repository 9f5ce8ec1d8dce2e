package services

import (
	"errors"
	"fmt"

	"github.com/gabrielsaDRC/calculadora-banco-imobiliario/internal/logger"
	"github.com/gabrielsaDRC/calculadora-banco-imobiliario/internal/metrics"
	"github.com/gabrielsaDRC/calculadora-banco-imobiliario/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// balanceWriteAttempts bounds the retry loop around conditional balance
// updates before the operation surfaces ErrConflict.
const balanceWriteAttempts = 3

// errStaleBalance signals that a conditional update matched no row because the
// balance moved between read and write. Internal to the retry loop.
var errStaleBalance = errors.New("stale balance read")

// BankService is the balance engine: it validates money movements, applies
// them to player balances and appends the matching transaction records.
// Every balance write is conditional on the balance previously read and
// retried on contention.
type BankService struct {
	db           *gorm.DB
	historyLimit int
}

func NewBankService(db *gorm.DB, historyLimit int) *BankService {
	if historyLimit <= 0 {
		historyLimit = 50
	}
	return &BankService{db: db, historyLimit: historyLimit}
}

// Credit pays a player from the bank. The bank has infinite funds, so this
// never fails on amount grounds.
func (s *BankService) Credit(playerID string, amount int64) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive: %w", models.ErrValidation)
	}
	desc := fmt.Sprintf("Received %d from the bank", amount)
	return s.adjust(playerID, amount, desc, false)
}

// Pay debits a player via a quick button. Fails with ErrInsufficientFunds
// before any write when the balance cannot cover the amount. The record keeps
// the quick-action convention: to=player with a negative amount, bank on the
// from side.
func (s *BankService) Pay(playerID string, amount int64) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive: %w", models.ErrValidation)
	}
	desc := fmt.Sprintf("Balance adjustment: -%d", amount)
	return s.adjust(playerID, -amount, desc, true)
}

// SetBalance overwrites a player's balance with an arbitrary value. No floor
// applies here, negative balances are allowed on this path. The recorded
// transaction carries the signed delta. Setting the current value again
// records nothing.
func (s *BankService) SetBalance(playerID string, newBalance int64) (*models.Transaction, error) {
	for attempt := 0; attempt < balanceWriteAttempts; attempt++ {
		player, err := s.player(playerID)
		if err != nil {
			return nil, err
		}
		delta := newBalance - player.Balance
		if delta == 0 {
			return nil, nil
		}

		rec, err := s.write(player, newBalance, models.Transaction{
			SessionID:       player.SessionID,
			ToPlayerID:      &player.ID,
			Amount:          delta,
			PreviousBalance: player.Balance,
			NewBalance:      newBalance,
			Description:     fmt.Sprintf("Balance adjustment: %+d", delta),
		})
		if errors.Is(err, errStaleBalance) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return rec, nil
	}
	return nil, models.ErrConflict
}

// Transfer moves money between two endpoints, each either a player id or the
// bank. Validation and the payer-side funds check happen before any write.
// Recording follows the history view's convention: the destination player side
// always gets the +amount record; a second -amount record exists only for a
// player paying the bank. A player-to-player transfer debits the source
// without a record of its own.
func (s *BankService) Transfer(sessionID, from, to string, amount int64, description string) ([]models.Transaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive: %w", models.ErrValidation)
	}
	if from == to {
		return nil, fmt.Errorf("source and destination are the same: %w", models.ErrValidation)
	}

	for attempt := 0; attempt < balanceWriteAttempts; attempt++ {
		recs, err := s.transferOnce(sessionID, from, to, amount, description)
		if errors.Is(err, errStaleBalance) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return recs, nil
	}
	return nil, models.ErrConflict
}

func (s *BankService) transferOnce(sessionID, from, to string, amount int64, description string) ([]models.Transaction, error) {
	var fromPlayer, toPlayer *models.Player
	var err error

	if from != models.BankSelector {
		if fromPlayer, err = s.sessionPlayer(sessionID, from); err != nil {
			return nil, err
		}
		if fromPlayer.Balance < amount {
			return nil, fmt.Errorf("%s has %d, needs %d: %w",
				fromPlayer.Name, fromPlayer.Balance, amount, models.ErrInsufficientFunds)
		}
	}
	if to != models.BankSelector {
		if toPlayer, err = s.sessionPlayer(sessionID, to); err != nil {
			return nil, err
		}
	}
	if fromPlayer == nil && toPlayer == nil {
		return nil, fmt.Errorf("at least one endpoint must be a player: %w", models.ErrValidation)
	}

	if description == "" {
		description = fmt.Sprintf("Transfer from %s to %s",
			endpointName(fromPlayer), endpointName(toPlayer))
	}

	var recs []models.Transaction
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if fromPlayer != nil {
			if err := casBalance(tx, fromPlayer, fromPlayer.Balance-amount); err != nil {
				return err
			}
		}
		if toPlayer != nil {
			if err := casBalance(tx, toPlayer, toPlayer.Balance+amount); err != nil {
				return err
			}
		}

		if toPlayer != nil {
			rec := models.Transaction{
				SessionID:       sessionID,
				ToPlayerID:      &toPlayer.ID,
				Amount:          amount,
				PreviousBalance: toPlayer.Balance,
				NewBalance:      toPlayer.Balance + amount,
				Description:     description,
			}
			if fromPlayer != nil {
				rec.FromPlayerID = &fromPlayer.ID
			}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
			recs = append(recs, rec)
		}
		if fromPlayer != nil && toPlayer == nil {
			rec := models.Transaction{
				SessionID:       sessionID,
				FromPlayerID:    &fromPlayer.ID,
				Amount:          -amount,
				PreviousBalance: fromPlayer.Balance,
				NewBalance:      fromPlayer.Balance - amount,
				Description:     description,
			}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
			recs = append(recs, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.TransactionsRecorded.Add(float64(len(recs)))
	logger.Log.Info("transfer applied",
		zap.String("session_id", sessionID),
		zap.Int64("amount", amount),
	)
	return recs, nil
}

// Reset sets every player in the session back to their initial balance. Host
// only. No transactions are recorded for this bulk action, so resets are
// invisible to the history. Idempotent.
func (s *BankService) Reset(sessionID, callerID string) error {
	if err := requireHost(s.db, sessionID, callerID); err != nil {
		return err
	}
	err := s.db.Model(&models.Player{}).
		Where("session_id = ?", sessionID).
		Update("balance", gorm.Expr("initial_balance")).Error
	if err != nil {
		return err
	}
	logger.Log.Info("balances reset", zap.String("session_id", sessionID))
	return nil
}

// ListTransactions returns the session's newest transactions, most recent
// first, capped at limit (the configured history limit when limit <= 0).
func (s *BankService) ListTransactions(sessionID string, limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = s.historyLimit
	}
	var txs []models.Transaction
	if err := s.db.Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(limit).
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// ListTransactionsWithNames resolves the from/to player display names for the
// history view. References to removed players resolve to nil, not an error.
func (s *BankService) ListTransactionsWithNames(sessionID string, limit int) ([]models.TransactionWithNames, error) {
	txs, err := s.ListTransactions(sessionID, limit)
	if err != nil {
		return nil, err
	}

	var players []models.Player
	if err := s.db.Select("id", "name").
		Where("session_id = ?", sessionID).
		Find(&players).Error; err != nil {
		return nil, err
	}
	names := make(map[string]string, len(players))
	for _, p := range players {
		names[p.ID] = p.Name
	}

	out := make([]models.TransactionWithNames, len(txs))
	for i, t := range txs {
		w := models.TransactionWithNames{Transaction: t}
		if t.FromPlayerID != nil {
			if name, ok := names[*t.FromPlayerID]; ok {
				w.FromPlayerName = &name
			}
		}
		if t.ToPlayerID != nil {
			if name, ok := names[*t.ToPlayerID]; ok {
				w.ToPlayerName = &name
			}
		}
		out[i] = w
	}
	return out, nil
}

// adjust applies a single-player delta with the quick-action recording
// convention (bank on the from side, signed amount on the to side).
func (s *BankService) adjust(playerID string, delta int64, description string, enforceFloor bool) (*models.Transaction, error) {
	for attempt := 0; attempt < balanceWriteAttempts; attempt++ {
		player, err := s.player(playerID)
		if err != nil {
			return nil, err
		}
		newBalance := player.Balance + delta
		if enforceFloor && newBalance < 0 {
			return nil, fmt.Errorf("%s has %d, needs %d: %w",
				player.Name, player.Balance, -delta, models.ErrInsufficientFunds)
		}

		rec, err := s.write(player, newBalance, models.Transaction{
			SessionID:       player.SessionID,
			ToPlayerID:      &player.ID,
			Amount:          delta,
			PreviousBalance: player.Balance,
			NewBalance:      newBalance,
			Description:     description,
		})
		if errors.Is(err, errStaleBalance) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return rec, nil
	}
	return nil, models.ErrConflict
}

// write applies the conditional balance update and its transaction record as
// one unit, so a failed insert rolls the balance back.
func (s *BankService) write(player *models.Player, newBalance int64, rec models.Transaction) (*models.Transaction, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := casBalance(tx, player, newBalance); err != nil {
			return err
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		return nil, err
	}
	metrics.TransactionsRecorded.Inc()
	return &rec, nil
}

// casBalance performs the compare-and-swap balance write keyed on the balance
// the caller read. Zero rows affected means another writer got there first.
func casBalance(tx *gorm.DB, player *models.Player, newBalance int64) error {
	res := tx.Model(&models.Player{}).
		Where("id = ? AND balance = ?", player.ID, player.Balance).
		Update("balance", newBalance)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errStaleBalance
	}
	return nil
}

func (s *BankService) player(playerID string) (*models.Player, error) {
	var player models.Player
	if err := s.db.First(&player, "id = ?", playerID).Error; err != nil {
		return nil, fmt.Errorf("player: %w", models.ErrNotFound)
	}
	return &player, nil
}

func (s *BankService) sessionPlayer(sessionID, playerID string) (*models.Player, error) {
	var player models.Player
	if err := s.db.Where("id = ? AND session_id = ?", playerID, sessionID).
		First(&player).Error; err != nil {
		return nil, fmt.Errorf("player: %w", models.ErrNotFound)
	}
	return &player, nil
}

func endpointName(p *models.Player) string {
	if p == nil {
		return "the bank"
	}
	return p.Name
}
