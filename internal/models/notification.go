package models

import (
	"time"
)

// Notification 站内通知
type Notification struct {
	ID        uint      `gorm:"primarykey" json:"id"`                            // 主键
	SellerID  uint      `gorm:"not null;index" json:"seller_id"`                 // 接收的卖家ID
	Type      string    `gorm:"type:varchar(40);not null;index" json:"type"`     // 类型（listing_created/voucher_redeemed/voucher_issued）
	Payload   JSON      `gorm:"type:json" json:"payload"`                        // 通知载荷
	IsRead    bool      `gorm:"not null;default:false;index" json:"is_read"`     // 是否已读
	CreatedAt time.Time `gorm:"index" json:"created_at"`                         // 创建时间
}

// TableName 指定表名
func (Notification) TableName() string {
	return "notifications"
}
