package repository

import (
	"errors"

	"github.com/zydovvn/backend/internal/models"

	"gorm.io/gorm"
)

// ListingFeeRepository 发布费配置数据访问接口
type ListingFeeRepository interface {
	GetActive() (*models.ListingFee, error)
	Create(fee *models.ListingFee) error
	DeactivateAll() error
	ListHistory(page, pageSize int) ([]models.ListingFee, int64, error)
	WithTx(tx *gorm.DB) *GormListingFeeRepository
}

// GormListingFeeRepository GORM 实现
type GormListingFeeRepository struct {
	db *gorm.DB
}

// NewListingFeeRepository 创建发布费配置仓库
func NewListingFeeRepository(db *gorm.DB) *GormListingFeeRepository {
	return &GormListingFeeRepository{db: db}
}

// WithTx 绑定事务
func (r *GormListingFeeRepository) WithTx(tx *gorm.DB) *GormListingFeeRepository {
	if tx == nil {
		return r
	}
	return &GormListingFeeRepository{db: tx}
}

// GetActive 获取当前生效的发布费
func (r *GormListingFeeRepository) GetActive() (*models.ListingFee, error) {
	var fee models.ListingFee
	if err := r.db.Where("is_active = ?", true).
		Order("id desc").
		First(&fee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &fee, nil
}

// Create 创建发布费配置行
func (r *GormListingFeeRepository) Create(fee *models.ListingFee) error {
	return r.db.Create(fee).Error
}

// DeactivateAll 停用全部配置行（换用新费率前调用）
func (r *GormListingFeeRepository) DeactivateAll() error {
	return r.db.Model(&models.ListingFee{}).
		Where("is_active = ?", true).
		Update("is_active", false).Error
}

// ListHistory 获取历史费率列表
func (r *GormListingFeeRepository) ListHistory(page, pageSize int) ([]models.ListingFee, int64, error) {
	query := r.db.Model(&models.ListingFee{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, page, pageSize)

	var fees []models.ListingFee
	if err := query.Order("id desc").Find(&fees).Error; err != nil {
		return nil, 0, err
	}
	return fees, total, nil
}
