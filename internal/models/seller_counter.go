package models

import (
	"time"
)

// SellerCounter 卖家发布计数表（惰性创建，永不删除）
type SellerCounter struct {
	ID            uint      `gorm:"primarykey" json:"id"`                           // 主键
	SellerID      uint      `gorm:"uniqueIndex;not null" json:"seller_id"`          // 卖家ID
	TotalPosts    int       `gorm:"not null;default:0" json:"total_posts"`          // 累计发布条数
	FreeQuotaUsed int       `gorm:"not null;default:0" json:"free_quota_used"`      // 已使用的免费额度
	CreatedAt     time.Time `json:"created_at"`                                     // 创建时间
	UpdatedAt     time.Time `json:"updated_at"`                                     // 更新时间
}

// TableName 指定表名
func (SellerCounter) TableName() string {
	return "seller_counters"
}
