package services

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/gabrielsaDRC/calculadora-banco-imobiliario/internal/logger"
	"github.com/gabrielsaDRC/calculadora-banco-imobiliario/internal/metrics"
	"github.com/gabrielsaDRC/calculadora-banco-imobiliario/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	codeLength      = 6
	codeCharset     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	maxCodeAttempts = 5
)

type SessionService struct {
	db      *gorm.DB
	newCode func() string
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{db: db, newCode: randomCode}
}

type SessionCreateResult struct {
	Session models.Session `json:"session"`
	Host    models.Player  `json:"host"`
}

// Create allocates a session with a fresh join code and its host player. The
// session row, host player and host back-reference are written in one
// database transaction.
func (s *SessionService) Create(hostName string, buttons []int64, hostBalance int64) (*SessionCreateResult, error) {
	hostName = strings.TrimSpace(hostName)
	if hostName == "" {
		return nil, fmt.Errorf("host name is required: %w", models.ErrValidation)
	}
	if hostBalance < 0 {
		return nil, fmt.Errorf("initial balance cannot be negative: %w", models.ErrValidation)
	}
	if len(buttons) == 0 {
		buttons = models.DefaultButtons()
	}
	if err := validateButtons(buttons); err != nil {
		return nil, err
	}

	// Code uniqueness is enforced by the index, not a pre-check: a concurrent
	// create racing for the same code loses the insert and regenerates.
	var result SessionCreateResult
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := s.newCode()
		err := s.db.Transaction(func(tx *gorm.DB) error {
			session := models.Session{
				Code:     code,
				IsActive: true,
				Buttons:  models.AmountList(buttons),
			}
			if err := tx.Create(&session).Error; err != nil {
				return err
			}

			host := models.Player{
				SessionID:      session.ID,
				Name:           hostName,
				Balance:        hostBalance,
				InitialBalance: hostBalance,
				IsHost:         true,
			}
			if err := tx.Create(&host).Error; err != nil {
				return err
			}

			if err := tx.Model(&models.Session{}).Where("id = ?", session.ID).
				Update("host_id", host.ID).Error; err != nil {
				return err
			}
			session.HostID = &host.ID

			result = SessionCreateResult{Session: session, Host: host}
			return nil
		})
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		if err != nil {
			return nil, err
		}

		metrics.SessionsCreated.Inc()
		metrics.PlayersJoined.Inc()
		logger.Log.Info("session created",
			zap.String("session_id", result.Session.ID),
			zap.String("code", result.Session.Code),
		)
		return &result, nil
	}
	return nil, fmt.Errorf("could not allocate a join code: %w", models.ErrCodeExhausted)
}

// Join looks up an active session by code and creates a non-host player in it.
func (s *SessionService) Join(code, playerName string, initialBalance int64) (*models.Session, *models.Player, error) {
	session, err := s.GetByCode(code)
	if err != nil {
		return nil, nil, err
	}

	player, err := s.createPlayer(session.ID, playerName, initialBalance)
	if err != nil {
		return nil, nil, err
	}

	logger.Log.Info("player joined",
		zap.String("session_id", session.ID),
		zap.String("player_id", player.ID),
	)
	return session, player, nil
}

// GetByCode resolves an active session by its join code, case-insensitively.
func (s *SessionService) GetByCode(code string) (*models.Session, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	var session models.Session
	if err := s.db.Where("code = ? AND is_active = ?", code, true).
		First(&session).Error; err != nil {
		return nil, fmt.Errorf("session %q: %w", code, models.ErrNotFound)
	}
	return &session, nil
}

func (s *SessionService) Get(sessionID string) (*models.Session, error) {
	var session models.Session
	if err := s.db.First(&session, "id = ?", sessionID).Error; err != nil {
		return nil, fmt.Errorf("session: %w", models.ErrNotFound)
	}
	return &session, nil
}

// Buttons returns the session's current quick-amount configuration. Clients
// poll this to pick up changes, there is no push.
func (s *SessionService) Buttons(sessionID string) ([]int64, error) {
	session, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return session.Buttons, nil
}

// ConfigureButtons replaces the session's quick amounts. Host only.
func (s *SessionService) ConfigureButtons(sessionID, callerID string, buttons []int64) error {
	if err := validateButtons(buttons); err != nil {
		return err
	}
	if err := requireHost(s.db, sessionID, callerID); err != nil {
		return err
	}
	return s.db.Model(&models.Session{}).Where("id = ?", sessionID).
		Update("buttons", models.AmountList(buttons)).Error
}

// AddPlayer creates a player directly in a known session (the host's add
// player form, as opposed to join-by-code).
func (s *SessionService) AddPlayer(sessionID, name string, initialBalance int64) (*models.Player, error) {
	if _, err := s.Get(sessionID); err != nil {
		return nil, err
	}
	return s.createPlayer(sessionID, name, initialBalance)
}

// ListPlayers returns the session's players in creation order.
func (s *SessionService) ListPlayers(sessionID string) ([]models.Player, error) {
	var players []models.Player
	if err := s.db.Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}

// RemovePlayer deletes a non-host player. Host only. Historical transactions
// keep their reference to the removed player and resolve to a nil name.
func (s *SessionService) RemovePlayer(callerID, targetID string) error {
	var target models.Player
	if err := s.db.First(&target, "id = ?", targetID).Error; err != nil {
		return fmt.Errorf("player: %w", models.ErrNotFound)
	}
	if err := requireHost(s.db, target.SessionID, callerID); err != nil {
		return err
	}
	if target.IsHost {
		return fmt.Errorf("the host cannot be removed: %w", models.ErrForbidden)
	}
	return s.db.Delete(&models.Player{}, "id = ?", target.ID).Error
}

// End hard-deletes the session with its players and transactions. Host only,
// irreversible.
func (s *SessionService) End(sessionID, callerID string) error {
	if err := requireHost(s.db, sessionID, callerID); err != nil {
		return err
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Transaction{}, "session_id = ?", sessionID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Player{}, "session_id = ?", sessionID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Session{}, "id = ?", sessionID).Error
	})
	if err != nil {
		return err
	}
	logger.Log.Info("session ended", zap.String("session_id", sessionID))
	return nil
}

func (s *SessionService) createPlayer(sessionID, name string, initialBalance int64) (*models.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("player name is required: %w", models.ErrValidation)
	}
	if initialBalance < 0 {
		return nil, fmt.Errorf("initial balance cannot be negative: %w", models.ErrValidation)
	}

	player := models.Player{
		SessionID:      sessionID,
		Name:           name,
		Balance:        initialBalance,
		InitialBalance: initialBalance,
	}
	if err := s.db.Create(&player).Error; err != nil {
		return nil, err
	}
	metrics.PlayersJoined.Inc()
	return &player, nil
}

func randomCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeCharset[rand.Intn(len(codeCharset))]
	}
	return string(b)
}

func validateButtons(buttons []int64) error {
	if len(buttons) < models.MinButtons || len(buttons) > models.MaxButtons {
		return fmt.Errorf("between %d and %d quick amounts are required: %w",
			models.MinButtons, models.MaxButtons, models.ErrValidation)
	}
	for _, v := range buttons {
		if v <= 0 {
			return fmt.Errorf("quick amounts must be positive: %w", models.ErrValidation)
		}
	}
	return nil
}

// requireHost checks that callerID identifies the host of the session. The
// caller id is an unauthenticated claim (trust by possession), the check only
// compares it against the stored host flag.
func requireHost(db *gorm.DB, sessionID, callerID string) error {
	if callerID == "" {
		return models.ErrForbidden
	}
	var caller models.Player
	if err := db.Where("id = ? AND session_id = ?", callerID, sessionID).
		First(&caller).Error; err != nil {
		return models.ErrForbidden
	}
	if !caller.IsHost {
		return models.ErrForbidden
	}
	return nil
}
