package public

import (
	"strconv"

	"github.com/zydovvn/backend/internal/http/response"
	"github.com/zydovvn/backend/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetMyNotifications 获取我的通知列表
func (h *Handler) GetMyNotifications(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	var isRead *bool
	if raw := c.Query("is_read"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		isRead = &parsed
	}

	notifications, total, err := h.NotificationService.ListBySeller(repository.NotificationListFilter{
		SellerID: sellerID,
		IsRead:   isRead,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.notification_fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, notifications, response.NewPagination(page, pageSize, total))
}

// MarkNotificationRead 标记通知已读
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.NotificationService.MarkRead(sellerID, uint(id)); err != nil {
		respondError(c, response.CodeInternal, "error.notification_update_failed", err)
		return
	}

	response.Success(c, gin.H{"read": true})
}

// GetMyUnreadCount 获取未读通知数
func (h *Handler) GetMyUnreadCount(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	count, err := h.NotificationService.CountUnread(sellerID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.notification_fetch_failed", err)
		return
	}

	response.Success(c, gin.H{"unread": count})
}
