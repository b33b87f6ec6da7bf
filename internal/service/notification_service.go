package service

import (
	"github.com/zydovvn/backend/internal/models"
	"github.com/zydovvn/backend/internal/repository"
)

// NotificationService 站内通知服务
type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService 创建通知服务
func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// Dispatch 写入一条通知（由队列消费者调用）
func (s *NotificationService) Dispatch(sellerID uint, notificationType string, refID uint) (*models.Notification, error) {
	notification := &models.Notification{
		SellerID: sellerID,
		Type:     notificationType,
		Payload: models.JSON{
			"ref_id": refID,
		},
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// ListBySeller 获取卖家通知列表
func (s *NotificationService) ListBySeller(filter repository.NotificationListFilter) ([]models.Notification, int64, error) {
	return s.notificationRepo.ListBySeller(filter)
}

// MarkRead 标记通知已读
func (s *NotificationService) MarkRead(sellerID, id uint) error {
	return s.notificationRepo.MarkRead(sellerID, id)
}

// CountUnread 统计未读通知数
func (s *NotificationService) CountUnread(sellerID uint) (int64, error) {
	return s.notificationRepo.CountUnread(sellerID)
}
