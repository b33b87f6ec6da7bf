package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/zydovvn/backend/internal/constants"
	"github.com/zydovvn/backend/internal/http/response"
	"github.com/zydovvn/backend/internal/models"
	"github.com/zydovvn/backend/internal/queue"
	"github.com/zydovvn/backend/internal/repository"
	"github.com/zydovvn/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CreateVoucherRequest 创建优惠券请求
type CreateVoucherRequest struct {
	Code                 string   `json:"code" binding:"required"`
	Name                 string   `json:"name" binding:"required"`
	Type                 string   `json:"type" binding:"required"`
	Value                float64  `json:"value"`
	FreeCount            int      `json:"free_count"`
	MaxUsesGlobal        int      `json:"max_uses_global"`
	MaxUsesPerSeller     int      `json:"max_uses_per_seller"`
	MinFeeAmount         float64  `json:"min_fee_amount"`
	ApplicableCategories []uint   `json:"applicable_categories"`
	StartsAt             string   `json:"starts_at"`
	EndsAt               string   `json:"ends_at"`
	IsActive             *bool    `json:"is_active"`
	IsGlobal             *bool    `json:"is_global"`
}

// UpdateVoucherRequest 更新优惠券请求（字段缺省时不变更）
type UpdateVoucherRequest struct {
	Name                 *string  `json:"name"`
	Value                *float64 `json:"value"`
	FreeCount            *int     `json:"free_count"`
	MaxUsesGlobal        *int     `json:"max_uses_global"`
	MaxUsesPerSeller     *int     `json:"max_uses_per_seller"`
	MinFeeAmount         *float64 `json:"min_fee_amount"`
	ApplicableCategories *[]uint  `json:"applicable_categories"`
	StartsAt             *string  `json:"starts_at"`
	EndsAt               *string  `json:"ends_at"`
	IsActive             *bool    `json:"is_active"`
	IsGlobal             *bool    `json:"is_global"`
}

// IssueVoucherRequest 定向发放请求
type IssueVoucherRequest struct {
	SellerID    uint `json:"seller_id" binding:"required"`
	IssuedCount int  `json:"issued_count" binding:"required"`
}

// CreateVoucher 创建优惠券
func (h *Handler) CreateVoucher(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	var req CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	startsAt, err := parseTimeNullable(req.StartsAt)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	endsAt, err := parseTimeNullable(req.EndsAt)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	voucher, err := h.VoucherAdminService.Create(service.CreateVoucherInput{
		Code:                 req.Code,
		Name:                 req.Name,
		Type:                 req.Type,
		Value:                models.NewMoneyFromDecimal(decimal.NewFromFloat(req.Value)),
		FreeCount:            req.FreeCount,
		MaxUsesGlobal:        req.MaxUsesGlobal,
		MaxUsesPerSeller:     req.MaxUsesPerSeller,
		MinFeeAmount:         models.NewMoneyFromDecimal(decimal.NewFromFloat(req.MinFeeAmount)),
		ApplicableCategories: req.ApplicableCategories,
		StartsAt:             startsAt,
		EndsAt:               endsAt,
		IsActive:             req.IsActive,
		IsGlobal:             req.IsGlobal,
		CreatedBy:            adminID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVoucherCodeExists):
			respondError(c, response.CodeBadRequest, "error.voucher_code_exists", nil)
		case errors.Is(err, service.ErrVoucherInvalid):
			respondError(c, response.CodeBadRequest, "error.voucher_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.voucher_create_failed", err)
		}
		return
	}

	response.Success(c, voucher)
}

// UpdateVoucher 更新优惠券
func (h *Handler) UpdateVoucher(c *gin.Context) {
	voucherID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || voucherID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	var req UpdateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	input := service.UpdateVoucherInput{
		Name:                 req.Name,
		FreeCount:            req.FreeCount,
		MaxUsesGlobal:        req.MaxUsesGlobal,
		MaxUsesPerSeller:     req.MaxUsesPerSeller,
		ApplicableCategories: req.ApplicableCategories,
		IsActive:             req.IsActive,
		IsGlobal:             req.IsGlobal,
	}
	if req.Value != nil {
		value := models.NewMoneyFromDecimal(decimal.NewFromFloat(*req.Value))
		input.Value = &value
	}
	if req.MinFeeAmount != nil {
		minFee := models.NewMoneyFromDecimal(decimal.NewFromFloat(*req.MinFeeAmount))
		input.MinFeeAmount = &minFee
	}
	if req.StartsAt != nil {
		startsAt, err := parseTimeNullable(*req.StartsAt)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		input.StartsAt = startsAt
	}
	if req.EndsAt != nil {
		endsAt, err := parseTimeNullable(*req.EndsAt)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		input.EndsAt = endsAt
	}

	voucher, err := h.VoucherAdminService.Update(uint(voucherID), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVoucherNotFound):
			respondError(c, response.CodeNotFound, "error.voucher_not_found", nil)
		case errors.Is(err, service.ErrVoucherInvalid):
			respondError(c, response.CodeBadRequest, "error.voucher_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.voucher_update_failed", err)
		}
		return
	}

	response.Success(c, voucher)
}

// DeactivateVoucher 停用优惠券
func (h *Handler) DeactivateVoucher(c *gin.Context) {
	voucherID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || voucherID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.VoucherAdminService.Deactivate(uint(voucherID)); err != nil {
		switch {
		case errors.Is(err, service.ErrVoucherNotFound):
			respondError(c, response.CodeNotFound, "error.voucher_not_found", nil)
		case errors.Is(err, service.ErrVoucherInvalid):
			respondError(c, response.CodeBadRequest, "error.voucher_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.voucher_update_failed", err)
		}
		return
	}
	response.Success(c, gin.H{
		"deactivated": true,
	})
}

// IssueVoucher 向卖家定向发放优惠券
func (h *Handler) IssueVoucher(c *gin.Context) {
	voucherID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || voucherID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	var req IssueVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	issuance, err := h.VoucherAdminService.Issue(uint(voucherID), req.SellerID, req.IssuedCount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVoucherNotFound):
			respondError(c, response.CodeNotFound, "error.voucher_not_found", nil)
		case errors.Is(err, service.ErrVoucherInvalid):
			respondError(c, response.CodeBadRequest, "error.voucher_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.voucher_update_failed", err)
		}
		return
	}

	if h.QueueClient != nil {
		payload := queue.NotificationDispatchPayload{
			SellerID: issuance.SellerID,
			Type:     constants.NotificationTypeVoucherIssued,
			RefID:    issuance.VoucherID,
		}
		if err := h.QueueClient.EnqueueNotificationDispatch(payload); err != nil {
			requestLog(c).Warnw("voucher_issue_notify_enqueue_failed",
				"voucher_id", issuance.VoucherID,
				"seller_id", issuance.SellerID,
				"error", err,
			)
		}
	}

	response.Success(c, issuance)
}

// GetAdminVouchers 获取优惠券列表
func (h *Handler) GetAdminVouchers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	search := strings.TrimSpace(c.Query("search"))
	voucherType := strings.ToUpper(strings.TrimSpace(c.Query("type")))
	var isActive *bool
	if raw := c.Query("is_active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		isActive = &parsed
	}
	startsFrom, err := parseTimeNullable(c.Query("starts_from"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	endsTo, err := parseTimeNullable(c.Query("ends_to"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	vouchers, total, err := h.VoucherAdminService.List(repository.VoucherListFilter{
		Search:     search,
		Type:       voucherType,
		IsActive:   isActive,
		StartsFrom: startsFrom,
		EndsTo:     endsTo,
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.voucher_fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, vouchers, response.NewPagination(page, pageSize, total))
}

// GetVoucherRedemptions 获取优惠券核销记录
func (h *Handler) GetVoucherRedemptions(c *gin.Context) {
	voucherID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || voucherID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	redemptions, total, err := h.VoucherAdminService.Redemptions(uint(voucherID), page, pageSize)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVoucherNotFound):
			respondError(c, response.CodeNotFound, "error.voucher_not_found", nil)
		case errors.Is(err, service.ErrVoucherInvalid):
			respondError(c, response.CodeBadRequest, "error.voucher_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.voucher_fetch_failed", err)
		}
		return
	}

	response.SuccessWithPage(c, redemptions, response.NewPagination(page, pageSize, total))
}

func parseTimeNullable(raw string) (*time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
