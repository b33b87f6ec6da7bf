package repository

import (
	"github.com/zydovvn/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VoucherRedemptionRepository 优惠券核销记录数据访问接口
type VoucherRedemptionRepository interface {
	CreateIgnoreDuplicate(redemption *models.VoucherRedemption) error
	CountByVoucher(voucherID uint) (int64, error)
	CountByVoucherSeller(voucherID, sellerID uint) (int64, error)
	ListByVoucher(filter RedemptionListFilter) ([]models.VoucherRedemption, int64, error)
	WithTx(tx *gorm.DB) *GormVoucherRedemptionRepository
}

// RedemptionListFilter 核销记录列表筛选
type RedemptionListFilter struct {
	VoucherID uint
	SellerID  uint
	Page      int
	PageSize  int
}

// GormVoucherRedemptionRepository GORM 实现
type GormVoucherRedemptionRepository struct {
	db *gorm.DB
}

// NewVoucherRedemptionRepository 创建优惠券核销记录仓库
func NewVoucherRedemptionRepository(db *gorm.DB) *GormVoucherRedemptionRepository {
	return &GormVoucherRedemptionRepository{db: db}
}

// WithTx 绑定事务
func (r *GormVoucherRedemptionRepository) WithTx(tx *gorm.DB) *GormVoucherRedemptionRepository {
	if tx == nil {
		return r
	}
	return &GormVoucherRedemptionRepository{db: tx}
}

// CreateIgnoreDuplicate 写入核销记录（同发布重复核销时静默跳过）
func (r *GormVoucherRedemptionRepository) CreateIgnoreDuplicate(redemption *models.VoucherRedemption) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "voucher_id"}, {Name: "seller_id"}, {Name: "post_id"}},
		DoNothing: true,
	}).Create(redemption).Error
}

// CountByVoucher 统计优惠券全局核销次数
func (r *GormVoucherRedemptionRepository) CountByVoucher(voucherID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.VoucherRedemption{}).
		Where("voucher_id = ?", voucherID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByVoucherSeller 统计卖家对某优惠券的核销次数
func (r *GormVoucherRedemptionRepository) CountByVoucherSeller(voucherID, sellerID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.VoucherRedemption{}).
		Where("voucher_id = ? AND seller_id = ?", voucherID, sellerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListByVoucher 获取优惠券核销记录列表
func (r *GormVoucherRedemptionRepository) ListByVoucher(filter RedemptionListFilter) ([]models.VoucherRedemption, int64, error) {
	query := r.db.Model(&models.VoucherRedemption{})

	if filter.VoucherID > 0 {
		query = query.Where("voucher_id = ?", filter.VoucherID)
	}
	if filter.SellerID > 0 {
		query = query.Where("seller_id = ?", filter.SellerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var redemptions []models.VoucherRedemption
	if err := query.Order("id desc").Find(&redemptions).Error; err != nil {
		return nil, 0, err
	}
	return redemptions, total, nil
}
