package repository

import (
	"github.com/zydovvn/backend/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository 站内通知数据访问接口
type NotificationRepository interface {
	Create(notification *models.Notification) error
	ListBySeller(filter NotificationListFilter) ([]models.Notification, int64, error)
	MarkRead(sellerID, id uint) error
	CountUnread(sellerID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormNotificationRepository
}

// NotificationListFilter 通知列表筛选
type NotificationListFilter struct {
	SellerID uint
	IsRead   *bool
	Page     int
	PageSize int
}

// GormNotificationRepository GORM 实现
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知仓库
func NewNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// WithTx 绑定事务
func (r *GormNotificationRepository) WithTx(tx *gorm.DB) *GormNotificationRepository {
	if tx == nil {
		return r
	}
	return &GormNotificationRepository{db: tx}
}

// Create 创建通知
func (r *GormNotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// ListBySeller 获取卖家通知列表
func (r *GormNotificationRepository) ListBySeller(filter NotificationListFilter) ([]models.Notification, int64, error) {
	query := r.db.Model(&models.Notification{}).Where("seller_id = ?", filter.SellerID)

	if filter.IsRead != nil {
		query = query.Where("is_read = ?", *filter.IsRead)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var notifications []models.Notification
	if err := query.Order("id desc").Find(&notifications).Error; err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

// MarkRead 标记通知已读（仅限本人的通知）
func (r *GormNotificationRepository) MarkRead(sellerID, id uint) error {
	return r.db.Model(&models.Notification{}).
		Where("id = ? AND seller_id = ?", id, sellerID).
		Update("is_read", true).Error
}

// CountUnread 统计未读通知数
func (r *GormNotificationRepository) CountUnread(sellerID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Notification{}).
		Where("seller_id = ? AND is_read = ?", sellerID, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
