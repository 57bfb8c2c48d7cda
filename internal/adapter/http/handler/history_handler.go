package handler

import (
	"account-ledger/internal/adapter/http/dto"
	"account-ledger/internal/adapter/http/middleware"
	"account-ledger/internal/core/ports"
	"account-ledger/pkg/apperror"
	"account-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// HistoryHandler handles account history and balance endpoints.
type HistoryHandler struct {
	historySvc ports.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historySvc ports.HistoryService) *HistoryHandler {
	return &HistoryHandler{historySvc: historySvc}
}

// Transactions handles GET /api/v1/transactions. Returns the caller's
// transfers split into sent and received.
func (h *HistoryHandler) Transactions(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	sent, received, err := h.historySvc.History(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.HistoryResponse{
		Sent:     dto.NewTransactionResponses(sent),
		Received: dto.NewTransactionResponses(received),
	})
}

// Balance handles GET /api/v1/accounts/balance.
func (h *HistoryHandler) Balance(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	balance, err := h.historySvc.Balance(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BalanceResponse{
		AccountID: userID,
		Balance:   balance,
	})
}
