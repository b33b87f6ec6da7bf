package models

import (
	"time"
)

// ListingFee 发布费配置表（仅一行处于启用状态）
type ListingFee struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                 // 主键
	Amount    Money     `gorm:"type:decimal(20,2);not null;default:0" json:"amount"`  // 单条发布费（VND）
	IsActive  bool      `gorm:"not null;default:true;index" json:"is_active"`         // 是否当前生效
	CreatedBy uint      `gorm:"not null;default:0" json:"created_by"`                 // 创建的管理员ID
	CreatedAt time.Time `gorm:"index" json:"created_at"`                              // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                           // 更新时间
}

// TableName 指定表名
func (ListingFee) TableName() string {
	return "listing_fees"
}
