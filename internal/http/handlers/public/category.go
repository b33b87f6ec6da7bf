package public

import (
	"github.com/zydovvn/backend/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCategories 获取分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryRepo.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}

	response.Success(c, categories)
}

// GetCurrentListingFee 获取当前标准发布费
func (h *Handler) GetCurrentListingFee(c *gin.Context) {
	amount, err := h.FeeService.GetCurrentListingFee()
	if err != nil {
		respondError(c, response.CodeInternal, "error.fee_preview_failed", err)
		return
	}

	response.Success(c, gin.H{"amount": amount})
}
