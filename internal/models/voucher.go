package models

import (
	"time"

	"gorm.io/gorm"
)

// Voucher 发布费优惠券
type Voucher struct {
	ID                   uint           `gorm:"primarykey" json:"id"`                                          // 主键
	Code                 string         `gorm:"uniqueIndex;not null" json:"code"`                              // 优惠码
	Name                 string         `gorm:"not null" json:"name"`                                          // 名称
	Type                 string         `gorm:"type:varchar(20);not null" json:"type"`                         // 类型（PERCENT/AMOUNT/FREE_LISTING）
	Value                Money          `gorm:"type:decimal(20,2);not null;default:0" json:"value"`            // 数值（百分比或固定金额）
	FreeCount            int            `gorm:"not null;default:0" json:"free_count"`                          // FREE_LISTING 剩余可用条数（仅校验，不扣减）
	MaxUsesGlobal        int            `gorm:"not null;default:0" json:"max_uses_global"`                     // 全局使用上限（0 表示不限制）
	MaxUsesPerSeller     int            `gorm:"not null;default:0" json:"max_uses_per_seller"`                 // 每卖家使用上限（0 表示不限制）
	MinFeeAmount         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"min_fee_amount"`   // 费用门槛（0 表示无门槛）
	ApplicableCategories StringArray    `gorm:"type:json" json:"applicable_categories"`                        // 适用分类ID集合（null 表示不限分类）
	StartsAt             *time.Time     `gorm:"index" json:"starts_at"`                                        // 生效时间
	EndsAt               *time.Time     `gorm:"index" json:"ends_at"`                                          // 失效时间
	IsActive             bool           `gorm:"not null;default:true" json:"is_active"`                        // 是否启用
	IsGlobal             bool           `gorm:"not null;default:true" json:"is_global"`                        // 是否全员可用（否则需定向发放）
	CreatedBy            uint           `gorm:"not null;default:0" json:"created_by"`                          // 创建的管理员ID
	CreatedAt            time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt            time.Time      `gorm:"index" json:"updated_at"`                                       // 更新时间
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间
}

// TableName 指定表名
func (Voucher) TableName() string {
	return "vouchers"
}
