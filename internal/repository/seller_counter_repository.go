package repository

import (
	"errors"

	"github.com/zydovvn/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SellerCounterRepository 卖家发布计数数据访问接口
type SellerCounterRepository interface {
	EnsureExists(sellerID uint) error
	GetBySellerID(sellerID uint) (*models.SellerCounter, error)
	GetBySellerIDForUpdate(sellerID uint) (*models.SellerCounter, error)
	Bump(sellerID uint, usedFreeQuota bool) error
	WithTx(tx *gorm.DB) *GormSellerCounterRepository
}

// GormSellerCounterRepository GORM 实现
type GormSellerCounterRepository struct {
	db *gorm.DB
}

// NewSellerCounterRepository 创建卖家计数仓库
func NewSellerCounterRepository(db *gorm.DB) *GormSellerCounterRepository {
	return &GormSellerCounterRepository{db: db}
}

// WithTx 绑定事务
func (r *GormSellerCounterRepository) WithTx(tx *gorm.DB) *GormSellerCounterRepository {
	if tx == nil {
		return r
	}
	return &GormSellerCounterRepository{db: tx}
}

// EnsureExists 惰性创建计数行（已存在时跳过）
func (r *GormSellerCounterRepository) EnsureExists(sellerID uint) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "seller_id"}},
		DoNothing: true,
	}).Create(&models.SellerCounter{SellerID: sellerID}).Error
}

// GetBySellerID 获取卖家计数
func (r *GormSellerCounterRepository) GetBySellerID(sellerID uint) (*models.SellerCounter, error) {
	var counter models.SellerCounter
	if err := r.db.Where("seller_id = ?", sellerID).First(&counter).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &counter, nil
}

// GetBySellerIDForUpdate 行锁获取卖家计数（须在事务内调用）
func (r *GormSellerCounterRepository) GetBySellerIDForUpdate(sellerID uint) (*models.SellerCounter, error) {
	var counter models.SellerCounter
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("seller_id = ?", sellerID).
		First(&counter).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &counter, nil
}

// Bump 累加发布计数；usedFreeQuota 为真时同步累加免费额度用量
func (r *GormSellerCounterRepository) Bump(sellerID uint, usedFreeQuota bool) error {
	updates := map[string]interface{}{
		"total_posts": gorm.Expr("total_posts + 1"),
	}
	if usedFreeQuota {
		updates["free_quota_used"] = gorm.Expr("free_quota_used + 1")
	}
	return r.db.Model(&models.SellerCounter{}).
		Where("seller_id = ?", sellerID).
		Updates(updates).Error
}
