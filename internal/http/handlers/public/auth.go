package public

import (
	"errors"

	"github.com/zydovvn/backend/internal/http/response"
	"github.com/zydovvn/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// SellerLoginRequest 卖家登录请求
type SellerLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SellerLogin 卖家登录
func (h *Handler) SellerLogin(c *gin.Context) {
	var req SellerLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	token, user, err := h.AuthService.SellerLogin(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLoginInvalid):
			respondError(c, response.CodeUnauthorized, "error.login_invalid", nil)
		case errors.Is(err, service.ErrAccountDisabled):
			respondError(c, response.CodeForbidden, "error.account_disabled", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	response.Success(c, gin.H{
		"token": token,
		"user":  user,
	})
}
