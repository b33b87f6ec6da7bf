package public

import (
	handlershared "github.com/zydovvn/backend/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getContextUintWithKeys(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, key, invalidKey, typeInvalidKey)
}

func getSellerID(c *gin.Context) (uint, bool) {
	return getContextUintWithKeys(c, "seller_id", "error.seller_id_invalid", "error.seller_id_type_invalid")
}
