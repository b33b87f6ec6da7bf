package models

import (
	"time"

	"gorm.io/gorm"
)

// Listing 卖家发布的商品信息
type Listing struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                        // 主键
	SellerID       uint           `gorm:"not null;index" json:"seller_id"`                             // 卖家ID
	CategoryID     uint           `gorm:"not null;index" json:"category_id"`                           // 分类ID
	Title          string         `gorm:"not null" json:"title"`                                       // 标题
	Description    string         `gorm:"type:text" json:"description"`                                // 描述
	PriceAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"`   // 售价
	Status         string         `gorm:"type:varchar(20);not null;default:'active'" json:"status"`    // 状态（active/sold/hidden）
	FeeBefore      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"fee_before"`     // 折前发布费
	FeeDiscount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"fee_discount"`   // 发布费减免金额
	FeeAfter       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"fee_after"`      // 实收发布费
	FeeSource      string         `gorm:"type:varchar(20);not null;default:'NONE'" json:"fee_source"`  // 费用来源（FREE_QUOTA/VOUCHER/NONE）
	FeeVoucherCode string         `gorm:"type:varchar(64);default:''" json:"fee_voucher_code"`         // 抵扣用的优惠码
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt      time.Time      `json:"updated_at"`                                                  // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间

	// 关联
	Seller   User     `gorm:"foreignKey:SellerID" json:"seller,omitempty"`     // 卖家信息
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
}

// TableName 指定表名
func (Listing) TableName() string {
	return "listings"
}
