package repository

import (
	"errors"

	"github.com/zydovvn/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VoucherIssuanceRepository 优惠券发放记录数据访问接口
type VoucherIssuanceRepository interface {
	Upsert(issuance *models.VoucherIssuance) error
	Get(voucherID, sellerID uint) (*models.VoucherIssuance, error)
	ListBySeller(sellerID uint) ([]models.VoucherIssuance, error)
	WithTx(tx *gorm.DB) *GormVoucherIssuanceRepository
}

// GormVoucherIssuanceRepository GORM 实现
type GormVoucherIssuanceRepository struct {
	db *gorm.DB
}

// NewVoucherIssuanceRepository 创建优惠券发放记录仓库
func NewVoucherIssuanceRepository(db *gorm.DB) *GormVoucherIssuanceRepository {
	return &GormVoucherIssuanceRepository{db: db}
}

// WithTx 绑定事务
func (r *GormVoucherIssuanceRepository) WithTx(tx *gorm.DB) *GormVoucherIssuanceRepository {
	if tx == nil {
		return r
	}
	return &GormVoucherIssuanceRepository{db: tx}
}

// Upsert 写入发放记录（冲突时覆盖发放次数）
func (r *GormVoucherIssuanceRepository) Upsert(issuance *models.VoucherIssuance) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "voucher_id"}, {Name: "seller_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"issued_count", "updated_at"}),
	}).Create(issuance).Error
}

// Get 获取卖家对某优惠券的发放记录
func (r *GormVoucherIssuanceRepository) Get(voucherID, sellerID uint) (*models.VoucherIssuance, error) {
	var issuance models.VoucherIssuance
	if err := r.db.Where("voucher_id = ? AND seller_id = ?", voucherID, sellerID).
		First(&issuance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &issuance, nil
}

// ListBySeller 获取卖家的全部发放记录
func (r *GormVoucherIssuanceRepository) ListBySeller(sellerID uint) ([]models.VoucherIssuance, error) {
	var issuances []models.VoucherIssuance
	if err := r.db.Where("seller_id = ?", sellerID).Find(&issuances).Error; err != nil {
		return nil, err
	}
	return issuances, nil
}
