package service

import "errors"

// 业务错误定义（handler 层通过 errors.Is 映射为响应码）
var (
	ErrVoucherNotFound   = errors.New("voucher not found")
	ErrVoucherCodeExists = errors.New("voucher code already exists")
	ErrVoucherInvalid    = errors.New("voucher invalid")
	ErrListingFeeInvalid = errors.New("listing fee invalid")
	ErrListingInvalid    = errors.New("listing invalid")
	ErrListingNotFound   = errors.New("listing not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrSellerNotFound    = errors.New("seller not found")
	ErrLoginInvalid      = errors.New("login invalid")
	ErrAccountDisabled   = errors.New("account disabled")
	ErrCounterMissing    = errors.New("seller counter missing")
)
