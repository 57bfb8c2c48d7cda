package handler

import (
	"account-ledger/internal/adapter/http/dto"
	"account-ledger/internal/core/ports"
	"account-ledger/pkg/apperror"
	"account-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// UserHandler handles user listing endpoints.
type UserHandler struct {
	userRepo ports.UserRepository
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userRepo ports.UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

// List handles GET /api/v1/users. The listing backs recipient pickers, so
// it exposes only ids and emails.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userRepo.List(c.Request.Context())
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserResponse(&users[i]))
	}
	response.OK(c, out)
}
