package handlers

import (
	"net/http"
	"strconv"

	"github.com/gabrielsaDRC/calculadora-banco-imobiliario/internal/middleware"
	"github.com/gabrielsaDRC/calculadora-banco-imobiliario/internal/services"

	"github.com/gin-gonic/gin"
)

type BankHandler struct {
	bank *services.BankService
}

func NewBankHandler(bank *services.BankService) *BankHandler {
	return &BankHandler{bank: bank}
}

type AmountRequest struct {
	Amount int64 `json:"amount" binding:"required" example:"500"`
}

type SetBalanceRequest struct {
	Balance *int64 `json:"balance" binding:"required"`
}

type TransferRequest struct {
	From        string `json:"from" binding:"required" example:"bank"`
	To          string `json:"to" binding:"required"`
	Amount      int64  `json:"amount" binding:"required"`
	Description string `json:"description"`
}

// Credit godoc
// @Summary      Credit a player from the bank
// @Tags         bank
// @Accept       json
// @Produce      json
// @Param        id path string true "Player id"
// @Param        request body AmountRequest true "Amount"
// @Success      201 {object} Transaction
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/players/{id}/credit [post]
func (h *BankHandler) Credit(c *gin.Context) {
	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	rec, err := h.bank.Credit(c.Param("id"), req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// Pay godoc
// @Summary      Debit a player via a quick button
// @Description  Fails when the balance cannot cover the amount
// @Tags         bank
// @Accept       json
// @Produce      json
// @Param        id path string true "Player id"
// @Param        request body AmountRequest true "Amount"
// @Success      201 {object} Transaction
// @Failure      422 {object} ErrorResponse
// @Router       /api/v1/players/{id}/pay [post]
func (h *BankHandler) Pay(c *gin.Context) {
	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	rec, err := h.bank.Pay(c.Param("id"), req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// SetBalance godoc
// @Summary      Overwrite a player's balance
// @Description  Free-form adjustment, negative balances allowed on this path
// @Tags         bank
// @Accept       json
// @Produce      json
// @Param        id path string true "Player id"
// @Param        request body SetBalanceRequest true "New balance"
// @Success      200 {object} Transaction
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/players/{id}/balance [put]
func (h *BankHandler) SetBalance(c *gin.Context) {
	var req SetBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	rec, err := h.bank.SetBalance(c.Param("id"), *req.Balance)
	if err != nil {
		respondError(c, err)
		return
	}
	if rec == nil {
		c.JSON(http.StatusOK, MessageResponse{Message: "balance unchanged"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Transfer godoc
// @Summary      Transfer between two endpoints
// @Description  Each endpoint is a player id or "bank"
// @Tags         bank
// @Accept       json
// @Produce      json
// @Param        id path string true "Session id"
// @Param        request body TransferRequest true "Transfer data"
// @Success      201 {array} Transaction
// @Failure      422 {object} ErrorResponse
// @Router       /api/v1/sessions/{id}/transfer [post]
func (h *BankHandler) Transfer(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	recs, err := h.bank.Transfer(c.Param("id"), req.From, req.To, req.Amount, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recs)
}

// Reset godoc
// @Summary      Reset every balance to its initial value
// @Description  Host only. Records no transactions, idempotent
// @Tags         bank
// @Produce      json
// @Param        id path string true "Session id"
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/sessions/{id}/reset [post]
func (h *BankHandler) Reset(c *gin.Context) {
	if err := h.bank.Reset(c.Param("id"), c.GetString(middleware.PlayerIDKey)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "balances reset"})
}

// ListTransactions godoc
// @Summary      List recent transactions
// @Description  Newest first, annotated with player display names
// @Tags         bank
// @Produce      json
// @Param        id path string true "Session id"
// @Param        limit query int false "Max entries"
// @Success      200 {array} models.TransactionWithNames
// @Router       /api/v1/sessions/{id}/transactions [get]
func (h *BankHandler) ListTransactions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	txs, err := h.bank.ListTransactionsWithNames(c.Param("id"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, txs)
}
