package i18n

import (
	"fmt"
	"strings"

	"github.com/zydovvn/backend/internal/constants"

	"github.com/gin-gonic/gin"
)

// DefaultLocale 默认站点语言
const DefaultLocale = constants.LocaleViVN

var messages = map[string]map[string]string{
	constants.LocaleViVN: {
		"error.bad_request":                 "Yêu cầu không hợp lệ",
		"error.unauthorized":                "Chưa đăng nhập hoặc phiên đã hết hạn",
		"error.forbidden":                   "Không có quyền thực hiện thao tác này",
		"error.not_found":                   "Không tìm thấy dữ liệu",
		"error.internal":                    "Lỗi hệ thống, vui lòng thử lại sau",
		"error.auth_header_missing":         "Thiếu thông tin xác thực",
		"error.auth_header_invalid":         "Thông tin xác thực không hợp lệ",
		"error.token_invalid":               "Phiên đăng nhập không hợp lệ",
		"error.jwt_secret_missing":          "Hệ thống chưa cấu hình xác thực",
		"error.login_invalid":               "Tài khoản hoặc mật khẩu không đúng",
		"error.account_disabled":            "Tài khoản đã bị khóa",
		"error.login_too_many":              "Đăng nhập quá nhiều lần, thử lại sau %d giây",
		"error.rate_limited":                "Thao tác quá nhanh, thử lại sau %d giây",
		"error.rate_limit_unavailable":      "Hệ thống đang bận, vui lòng thử lại",
		"error.listing_too_many":            "Đăng tin quá nhanh, thử lại sau %d giây",
		"error.seller_id_invalid":           "Thông tin người bán không hợp lệ",
		"error.seller_id_type_invalid":      "Thông tin người bán không hợp lệ",
		"error.admin_id_invalid":            "Thông tin quản trị viên không hợp lệ",
		"error.admin_id_type_invalid":       "Thông tin quản trị viên không hợp lệ",
		"error.voucher_invalid":             "Mã giảm giá không hợp lệ",
		"error.voucher_not_found":           "Không tìm thấy mã giảm giá",
		"error.voucher_code_exists":         "Mã giảm giá đã tồn tại",
		"error.voucher_fetch_failed":        "Không tải được danh sách mã giảm giá",
		"error.voucher_create_failed":       "Tạo mã giảm giá thất bại",
		"error.voucher_update_failed":       "Cập nhật mã giảm giá thất bại",
		"error.listing_invalid":             "Thông tin tin đăng không hợp lệ",
		"error.listing_not_found":           "Không tìm thấy tin đăng",
		"error.listing_create_failed":       "Đăng tin thất bại",
		"error.listing_fetch_failed":        "Không tải được tin đăng",
		"error.category_not_found":          "Không tìm thấy danh mục",
		"error.category_fetch_failed":       "Không tải được danh mục",
		"error.listing_fee_invalid":         "Mức phí đăng tin không hợp lệ",
		"error.listing_fee_update_failed":   "Cập nhật phí đăng tin thất bại",
		"error.listing_fee_fetch_failed":    "Không thể tải phí đăng tin",
		"error.fee_preview_failed":          "Không tính được phí đăng tin",
		"error.notification_fetch_failed":   "Không tải được thông báo",
		"error.notification_update_failed":  "Cập nhật thông báo thất bại",
		"error.stats_fetch_failed":          "Không tải được thống kê",
	},
	constants.LocaleEnUS: {
		"error.bad_request":                 "Invalid request",
		"error.unauthorized":                "Not logged in or session expired",
		"error.forbidden":                   "Permission denied",
		"error.not_found":                   "Not found",
		"error.internal":                    "Internal error, please try again later",
		"error.auth_header_missing":         "Missing authorization header",
		"error.auth_header_invalid":         "Invalid authorization header",
		"error.token_invalid":               "Invalid session token",
		"error.jwt_secret_missing":          "Authentication is not configured",
		"error.login_invalid":               "Invalid account or password",
		"error.account_disabled":            "Account disabled",
		"error.login_too_many":              "Too many login attempts, retry in %d seconds",
		"error.rate_limited":                "Too many requests, retry in %d seconds",
		"error.rate_limit_unavailable":      "Service busy, please try again",
		"error.listing_too_many":            "Posting too fast, retry in %d seconds",
		"error.seller_id_invalid":           "Invalid seller identity",
		"error.seller_id_type_invalid":      "Invalid seller identity",
		"error.admin_id_invalid":            "Invalid admin identity",
		"error.admin_id_type_invalid":       "Invalid admin identity",
		"error.voucher_invalid":             "Invalid voucher",
		"error.voucher_not_found":           "Voucher not found",
		"error.voucher_code_exists":         "Voucher code already exists",
		"error.voucher_fetch_failed":        "Failed to load vouchers",
		"error.voucher_create_failed":       "Failed to create voucher",
		"error.voucher_update_failed":       "Failed to update voucher",
		"error.listing_invalid":             "Invalid listing",
		"error.listing_not_found":           "Listing not found",
		"error.listing_create_failed":       "Failed to create listing",
		"error.listing_fetch_failed":        "Failed to load listings",
		"error.category_not_found":          "Category not found",
		"error.category_fetch_failed":       "Failed to load categories",
		"error.listing_fee_invalid":         "Invalid listing fee",
		"error.listing_fee_update_failed":   "Failed to update listing fee",
		"error.listing_fee_fetch_failed":    "Failed to load listing fee",
		"error.fee_preview_failed":          "Failed to compute listing fee",
		"error.notification_fetch_failed":   "Failed to load notifications",
		"error.notification_update_failed":  "Failed to update notification",
		"error.stats_fetch_failed":          "Failed to load statistics",
	},
}

// ResolveLocale 解析请求语言（?lang= 优先，其次 Accept-Language）
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if lang := normalizeLocale(c.Query("lang")); lang != "" {
		return lang
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		tag := part
		if idx := strings.Index(tag, ";"); idx >= 0 {
			tag = tag[:idx]
		}
		if lang := normalizeLocale(tag); lang != "" {
			return lang
		}
	}
	return DefaultLocale
}

// T 按语言取消息文案，缺失时回退默认语言再回退 key 本身
func T(locale, key string) string {
	if table, ok := messages[locale]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 按语言取格式化文案
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

func normalizeLocale(raw string) string {
	tag := strings.TrimSpace(raw)
	if tag == "" {
		return ""
	}
	lowered := strings.ToLower(tag)
	switch {
	case strings.HasPrefix(lowered, "vi"):
		return constants.LocaleViVN
	case strings.HasPrefix(lowered, "en"):
		return constants.LocaleEnUS
	}
	for _, supported := range constants.SupportedLocales {
		if strings.EqualFold(tag, supported) {
			return supported
		}
	}
	return ""
}
