package handlers

import (
	"net/http"
	"strconv"

	"github.com/gabrielsaDRC/calculadora-banco-imobiliario/internal/services"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	sessions  *services.SessionService
	bank      *services.BankService
	analytics *services.AnalyticsService
}

func NewStatsHandler(sessions *services.SessionService, bank *services.BankService, analytics *services.AnalyticsService) *StatsHandler {
	return &StatsHandler{sessions: sessions, bank: bank, analytics: analytics}
}

type StatsResponse struct {
	Dashboard  services.DashboardStats  `json:"dashboard"`
	Evolution  []services.SeriesPoint   `json:"evolution"`
	Leadership []services.LeaderCount   `json:"leadership"`
}

// Ranking godoc
// @Summary      Current ranking
// @Description  Players by balance descending with positions and gain since start
// @Tags         stats
// @Produce      json
// @Param        id path string true "Session id"
// @Success      200 {array} services.RankingEntry
// @Router       /api/v1/sessions/{id}/ranking [get]
func (h *StatsHandler) Ranking(c *gin.Context) {
	players, err := h.sessions.ListPlayers(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.analytics.Ranking(players))
}

// Stats godoc
// @Summary      Session statistics
// @Description  Dashboard totals, balance evolution series and leadership counts, recomputed from the current snapshot
// @Tags         stats
// @Produce      json
// @Param        id path string true "Session id"
// @Param        limit query int false "Max transactions to consider"
// @Success      200 {object} StatsResponse
// @Router       /api/v1/sessions/{id}/stats [get]
func (h *StatsHandler) Stats(c *gin.Context) {
	sessionID := c.Param("id")
	players, err := h.sessions.ListPlayers(sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	transactions, err := h.bank.ListTransactions(sessionID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	series := h.analytics.BalanceEvolution(players, transactions)
	c.JSON(http.StatusOK, StatsResponse{
		Dashboard:  h.analytics.Dashboard(players, len(transactions)),
		Evolution:  series,
		Leadership: h.analytics.LeadershipCounts(players, series),
	})
}
