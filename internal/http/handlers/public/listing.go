package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/zydovvn/backend/internal/http/response"
	"github.com/zydovvn/backend/internal/models"
	"github.com/zydovvn/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CreateListingRequest 创建发布请求
type CreateListingRequest struct {
	CategoryID  uint    `json:"category_id" binding:"required"`
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	PriceAmount float64 `json:"price_amount"`
	VoucherCode string  `json:"voucher_code"`
}

// CreateListing 创建发布（同一事务内核销发布费）
func (h *Handler) CreateListing(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	listing, quote, err := h.ListingService.Create(service.CreateListingInput{
		SellerID:    sellerID,
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(req.PriceAmount)),
		VoucherCode: req.VoucherCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrListingInvalid):
			respondError(c, response.CodeBadRequest, "error.listing_invalid", nil)
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, response.CodeNotFound, "error.category_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.listing_create_failed", err)
		}
		return
	}

	response.Success(c, gin.H{
		"listing": listing,
		"fee":     quote,
	})
}

// PreviewListingFee 发布费预览（提交表单前调用）
func (h *Handler) PreviewListingFee(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	var categoryID uint
	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		categoryID = uint(parsed)
	}
	voucherCode := c.Query("voucher_code")

	quote, err := h.FeeService.ComputeFee(sellerID, categoryID, voucherCode)
	if err != nil {
		respondError(c, response.CodeInternal, "error.fee_preview_failed", err)
		return
	}

	response.Success(c, quote)
}

// GetMyListings 获取我的发布列表
func (h *Handler) GetMyListings(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	status := c.Query("status")

	listings, total, err := h.ListingService.ListBySeller(sellerID, status, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.listing_fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, listings, response.NewPagination(page, pageSize, total))
}

// GetMyStats 获取我的发布统计
func (h *Handler) GetMyStats(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	stats, err := h.FeeService.GetSellerStats(sellerID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.stats_fetch_failed", err)
		return
	}

	response.Success(c, stats)
}
