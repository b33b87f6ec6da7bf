package admin

import (
	"errors"

	"github.com/zydovvn/backend/internal/http/response"
	"github.com/zydovvn/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminLoginRequest 管理员登录请求
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin 管理员登录
func (h *Handler) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	token, admin, err := h.AuthService.AdminLogin(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLoginInvalid):
			respondError(c, response.CodeUnauthorized, "error.login_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	response.Success(c, gin.H{
		"token": token,
		"admin": admin,
	})
}
