package constants

// 发布费免费额度常量
const (
	// FreeQuotaLimit 每个卖家前 N 条发布免收发布费
	FreeQuotaLimit = 5
)

// 优惠券类型常量
const (
	VoucherTypePercent     = "PERCENT"
	VoucherTypeAmount      = "AMOUNT"
	VoucherTypeFreeListing = "FREE_LISTING"
)

// 费用来源常量
const (
	FeeSourceFreeQuota = "FREE_QUOTA"
	FeeSourceVoucher   = "VOUCHER"
	FeeSourceNone      = "NONE"
)

// 费用校验失败原因常量（写入 FeeQuote.Error，由前端按 key 展示）
const (
	FeeErrVoucherNotFound     = "voucher_not_found"
	FeeErrVoucherInactive     = "voucher_inactive"
	FeeErrVoucherNotStarted   = "voucher_not_started"
	FeeErrVoucherExpired      = "voucher_expired"
	FeeErrVoucherMinFee       = "voucher_min_fee_not_met"
	FeeErrVoucherCategory     = "voucher_category_not_applicable"
	FeeErrVoucherNotIssued    = "voucher_not_issued"
	FeeErrVoucherGlobalLimit  = "voucher_global_limit_reached"
	FeeErrVoucherSellerLimit  = "voucher_seller_limit_reached"
	FeeErrVoucherFreeExhaust  = "voucher_free_listing_exhausted"
)

// 发布状态常量
const (
	ListingStatusActive = "active"
	ListingStatusSold   = "sold"
	ListingStatusHidden = "hidden"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 通知类型常量
const (
	NotificationTypeListingCreated  = "listing_created"
	NotificationTypeVoucherRedeemed = "voucher_redeemed"
	NotificationTypeVoucherIssued   = "voucher_issued"
)

// 队列常量
const (
	QueueDefault             = "default"
	TaskNotificationDispatch = "notification:dispatch"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "mk"
	CacheKeyListingFee = "listing_fee:active"
)

// 站点语言常量
const (
	LocaleViVN = "vi-VN"
	LocaleEnUS = "en-US"
)

// 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleViVN, LocaleEnUS}

// 币种常量
const (
	SiteCurrencyDefault = "VND"
)
