package repository

import (
	"errors"
	"time"

	"github.com/zydovvn/backend/internal/models"

	"gorm.io/gorm"
)

// VoucherRepository 优惠券数据访问接口
type VoucherRepository interface {
	GetByID(id uint) (*models.Voucher, error)
	GetByCode(code string) (*models.Voucher, error)
	Create(voucher *models.Voucher) error
	Update(voucher *models.Voucher) error
	Deactivate(id uint) error
	List(filter VoucherListFilter) ([]models.Voucher, int64, error)
	ListActiveGlobal(now time.Time) ([]models.Voucher, error)
	ListByIDs(ids []uint) ([]models.Voucher, error)
	WithTx(tx *gorm.DB) *GormVoucherRepository
}

// VoucherListFilter 优惠券列表筛选
type VoucherListFilter struct {
	Search     string // 模糊匹配 code/name
	Type       string
	IsActive   *bool
	StartsFrom *time.Time // 有效期窗口筛选（starts_at >=）
	EndsTo     *time.Time // 有效期窗口筛选（ends_at <=）
	Page       int
	PageSize   int
}

// GormVoucherRepository GORM 实现
type GormVoucherRepository struct {
	db *gorm.DB
}

// NewVoucherRepository 创建优惠券仓库
func NewVoucherRepository(db *gorm.DB) *GormVoucherRepository {
	return &GormVoucherRepository{db: db}
}

// WithTx 绑定事务
func (r *GormVoucherRepository) WithTx(tx *gorm.DB) *GormVoucherRepository {
	if tx == nil {
		return r
	}
	return &GormVoucherRepository{db: tx}
}

// GetByID 根据ID获取优惠券
func (r *GormVoucherRepository) GetByID(id uint) (*models.Voucher, error) {
	var voucher models.Voucher
	if err := r.db.First(&voucher, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &voucher, nil
}

// GetByCode 根据优惠码精确获取优惠券（区分大小写）
func (r *GormVoucherRepository) GetByCode(code string) (*models.Voucher, error) {
	var voucher models.Voucher
	if err := r.db.Where("code = ?", code).First(&voucher).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &voucher, nil
}

// Create 创建优惠券
func (r *GormVoucherRepository) Create(voucher *models.Voucher) error {
	return r.db.Create(voucher).Error
}

// Update 更新优惠券
func (r *GormVoucherRepository) Update(voucher *models.Voucher) error {
	return r.db.Save(voucher).Error
}

// Deactivate 停用优惠券（不做物理删除）
func (r *GormVoucherRepository) Deactivate(id uint) error {
	return r.db.Model(&models.Voucher{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

// List 获取优惠券列表
func (r *GormVoucherRepository) List(filter VoucherListFilter) ([]models.Voucher, int64, error) {
	var vouchers []models.Voucher
	query := r.db.Model(&models.Voucher{})

	if filter.Search != "" {
		keyword := "%" + filter.Search + "%"
		query = query.Where("(code LIKE ? OR name LIKE ?)", keyword, keyword)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.StartsFrom != nil {
		query = query.Where("starts_at >= ?", *filter.StartsFrom)
	}
	if filter.EndsTo != nil {
		query = query.Where("ends_at <= ?", *filter.EndsTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&vouchers).Error; err != nil {
		return nil, 0, err
	}
	return vouchers, total, nil
}

// ListActiveGlobal 获取当前有效的全员优惠券
func (r *GormVoucherRepository) ListActiveGlobal(now time.Time) ([]models.Voucher, error) {
	var vouchers []models.Voucher
	if err := r.db.Where("is_active = ? AND is_global = ?", true, true).
		Where("(starts_at IS NULL OR starts_at <= ?)", now).
		Where("(ends_at IS NULL OR ends_at >= ?)", now).
		Order("id desc").
		Find(&vouchers).Error; err != nil {
		return nil, err
	}
	return vouchers, nil
}

// ListByIDs 批量获取优惠券
func (r *GormVoucherRepository) ListByIDs(ids []uint) ([]models.Voucher, error) {
	if len(ids) == 0 {
		return []models.Voucher{}, nil
	}
	var vouchers []models.Voucher
	if err := r.db.Where("id IN ?", ids).Find(&vouchers).Error; err != nil {
		return nil, err
	}
	return vouchers, nil
}
