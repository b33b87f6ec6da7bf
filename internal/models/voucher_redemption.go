package models

import (
	"time"
)

// VoucherRedemption 优惠券核销记录（不可变，按发布去重）
type VoucherRedemption struct {
	ID              uint      `gorm:"primarykey" json:"id"`                                                  // 主键
	VoucherID       uint      `gorm:"not null;uniqueIndex:idx_redemption_voucher_seller_post;index" json:"voucher_id"` // 优惠券ID
	SellerID        uint      `gorm:"not null;uniqueIndex:idx_redemption_voucher_seller_post;index" json:"seller_id"`  // 卖家ID
	PostID          uint      `gorm:"not null;uniqueIndex:idx_redemption_voucher_seller_post" json:"post_id"`          // 发布ID
	FeeBefore       Money     `gorm:"type:decimal(20,2);not null;default:0" json:"fee_before"`               // 折前发布费
	DiscountApplied Money     `gorm:"type:decimal(20,2);not null;default:0" json:"discount_applied"`         // 减免金额
	FeeAfter        Money     `gorm:"type:decimal(20,2);not null;default:0" json:"fee_after"`                // 实收发布费
	CreatedAt       time.Time `gorm:"index" json:"created_at"`                                               // 核销时间
}

// TableName 指定表名
func (VoucherRedemption) TableName() string {
	return "voucher_redemptions"
}
