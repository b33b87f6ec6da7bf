package admin

import (
	"errors"
	"strconv"

	"github.com/zydovvn/backend/internal/http/response"
	"github.com/zydovvn/backend/internal/models"
	"github.com/zydovvn/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// SetListingFeeRequest 设置挂牌费请求
type SetListingFeeRequest struct {
	Amount float64 `json:"amount"`
}

// GetListingFee 获取当前生效的挂牌费
func (h *Handler) GetListingFee(c *gin.Context) {
	fee, err := h.ListingFeeRepo.GetActive()
	if err != nil {
		respondError(c, response.CodeInternal, "error.listing_fee_fetch_failed", err)
		return
	}
	if fee == nil {
		amount, err := h.FeeService.GetCurrentListingFee()
		if err != nil {
			respondError(c, response.CodeInternal, "error.listing_fee_fetch_failed", err)
			return
		}
		response.Success(c, gin.H{
			"amount": amount,
		})
		return
	}
	response.Success(c, fee)
}

// SetListingFee 设置新的挂牌费并归档旧配置
func (h *Handler) SetListingFee(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	var req SetListingFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	amount := models.NewMoneyFromDecimal(decimal.NewFromFloat(req.Amount))
	fee, err := h.FeeService.SetListingFee(amount, adminID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrListingFeeInvalid):
			respondError(c, response.CodeBadRequest, "error.listing_fee_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.listing_fee_update_failed", err)
		}
		return
	}

	response.Success(c, fee)
}

// GetListingFeeHistory 获取挂牌费历史记录
func (h *Handler) GetListingFeeHistory(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	fees, total, err := h.ListingFeeRepo.ListHistory(page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.listing_fee_fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, fees, response.NewPagination(page, pageSize, total))
}
