package models

import (
	"time"
)

// VoucherIssuance 优惠券定向发放记录（管理员覆盖式更新次数）
type VoucherIssuance struct {
	ID          uint      `gorm:"primarykey" json:"id"`                                        // 主键
	VoucherID   uint      `gorm:"not null;uniqueIndex:idx_issuance_voucher_seller" json:"voucher_id"` // 优惠券ID
	SellerID    uint      `gorm:"not null;uniqueIndex:idx_issuance_voucher_seller" json:"seller_id"`  // 卖家ID
	IssuedCount int       `gorm:"not null;default:0" json:"issued_count"`                      // 发放次数
	CreatedAt   time.Time `json:"created_at"`                                                  // 创建时间
	UpdatedAt   time.Time `json:"updated_at"`                                                  // 更新时间
}

// TableName 指定表名
func (VoucherIssuance) TableName() string {
	return "voucher_issuances"
}
