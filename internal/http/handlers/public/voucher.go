package public

import (
	"github.com/zydovvn/backend/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetMyVouchers 获取我可用的优惠券（全员券 + 定向发放券）
func (h *Handler) GetMyVouchers(c *gin.Context) {
	sellerID, ok := getSellerID(c)
	if !ok {
		return
	}

	vouchers, err := h.VoucherService.ListMyVouchers(sellerID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.voucher_fetch_failed", err)
		return
	}

	response.Success(c, vouchers)
}
