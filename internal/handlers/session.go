package handlers

import (
	"net/http"

	"github.com/gabrielsaDRC/calculadora-banco-imobiliario/internal/middleware"
	"github.com/gabrielsaDRC/calculadora-banco-imobiliario/internal/models"
	"github.com/gabrielsaDRC/calculadora-banco-imobiliario/internal/services"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessions *services.SessionService
}

func NewSessionHandler(sessions *services.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type CreateSessionRequest struct {
	HostName    string  `json:"host_name" binding:"required" example:"Gabriel"`
	Buttons     []int64 `json:"buttons"`
	HostBalance *int64  `json:"host_balance"`
}

type JoinSessionRequest struct {
	Code           string `json:"code" binding:"required" example:"X7K2P9"`
	PlayerName     string `json:"player_name" binding:"required" example:"Ana"`
	InitialBalance *int64 `json:"initial_balance"`
}

type AddPlayerRequest struct {
	Name           string `json:"name" binding:"required"`
	InitialBalance *int64 `json:"initial_balance"`
}

type UpdateButtonsRequest struct {
	Buttons []int64 `json:"buttons" binding:"required"`
}

type JoinSessionResponse struct {
	Session models.Session `json:"session"`
	Player  models.Player  `json:"player"`
}

// Create godoc
// @Summary      Create a game session
// @Description  Creates a session with a fresh join code and its host player
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        request body CreateSessionRequest true "Session data"
// @Success      201 {object} services.SessionCreateResult
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	result, err := h.sessions.Create(req.HostName, req.Buttons, balanceOrDefault(req.HostBalance))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// Join godoc
// @Summary      Join a session by code
// @Description  Looks up an active session by its join code and creates a player in it
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        request body JoinSessionRequest true "Join data"
// @Success      201 {object} JoinSessionResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/sessions/join [post]
func (h *SessionHandler) Join(c *gin.Context) {
	var req JoinSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	session, player, err := h.sessions.Join(req.Code, req.PlayerName, balanceOrDefault(req.InitialBalance))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, JoinSessionResponse{Session: *session, Player: *player})
}

// Get godoc
// @Summary      Get a session
// @Tags         sessions
// @Produce      json
// @Param        id path string true "Session id"
// @Success      200 {object} Session
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	session, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// GetConfig godoc
// @Summary      Get the quick-amount configuration
// @Description  Clients poll this to pick up button changes
// @Tags         sessions
// @Produce      json
// @Param        id path string true "Session id"
// @Success      200 {object} map[string][]int64
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/sessions/{id}/config [get]
func (h *SessionHandler) GetConfig(c *gin.Context) {
	buttons, err := h.sessions.Buttons(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"buttons": buttons})
}

// UpdateButtons godoc
// @Summary      Replace the quick-amount configuration
// @Description  Host only, 1 to 8 positive amounts
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id path string true "Session id"
// @Param        request body UpdateButtonsRequest true "New buttons"
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/sessions/{id}/buttons [put]
func (h *SessionHandler) UpdateButtons(c *gin.Context) {
	var req UpdateButtonsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if err := h.sessions.ConfigureButtons(c.Param("id"), c.GetString(middleware.PlayerIDKey), req.Buttons); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "buttons updated"})
}

// End godoc
// @Summary      End a session
// @Description  Host only. Deletes the session with its players and transactions, irreversible
// @Tags         sessions
// @Produce      json
// @Param        id path string true "Session id"
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/sessions/{id} [delete]
func (h *SessionHandler) End(c *gin.Context) {
	if err := h.sessions.End(c.Param("id"), c.GetString(middleware.PlayerIDKey)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "session ended"})
}

// ListPlayers godoc
// @Summary      List session players
// @Description  Players in creation order with current balances
// @Tags         players
// @Produce      json
// @Param        id path string true "Session id"
// @Success      200 {array} Player
// @Router       /api/v1/sessions/{id}/players [get]
func (h *SessionHandler) ListPlayers(c *gin.Context) {
	players, err := h.sessions.ListPlayers(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, players)
}

// AddPlayer godoc
// @Summary      Add a player to a session
// @Tags         players
// @Accept       json
// @Produce      json
// @Param        id path string true "Session id"
// @Param        request body AddPlayerRequest true "Player data"
// @Success      201 {object} Player
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/sessions/{id}/players [post]
func (h *SessionHandler) AddPlayer(c *gin.Context) {
	var req AddPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	player, err := h.sessions.AddPlayer(c.Param("id"), req.Name, balanceOrDefault(req.InitialBalance))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, player)
}

// RemovePlayer godoc
// @Summary      Remove a player
// @Description  Host only, the host player itself cannot be removed
// @Tags         players
// @Produce      json
// @Param        id path string true "Player id"
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/players/{id} [delete]
func (h *SessionHandler) RemovePlayer(c *gin.Context) {
	if err := h.sessions.RemovePlayer(c.GetString(middleware.PlayerIDKey), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "player removed"})
}

func balanceOrDefault(v *int64) int64 {
	if v == nil {
		return models.DefaultInitialBalance
	}
	return *v
}
