package worker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/zydovvn/backend/internal/constants"
	"github.com/zydovvn/backend/internal/models"
	"github.com/zydovvn/backend/internal/provider"
	"github.com/zydovvn/backend/internal/queue"
	"github.com/zydovvn/backend/internal/repository"
	"github.com/zydovvn/backend/internal/service"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newWorkerTestConsumer(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:worker_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Notification{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	container := &provider.Container{
		NotificationService: service.NewNotificationService(repository.NewNotificationRepository(db)),
	}
	return NewConsumer(container), db
}

func TestHandleNotificationDispatch(t *testing.T) {
	consumer, db := newWorkerTestConsumer(t)

	task, err := queue.NewNotificationDispatchTask(queue.NotificationDispatchPayload{
		SellerID: 1,
		Type:     constants.NotificationTypeListingCreated,
		RefID:    42,
	})
	if err != nil {
		t.Fatalf("build task: %v", err)
	}

	if err := consumer.handleNotificationDispatch(context.Background(), task); err != nil {
		t.Fatalf("handleNotificationDispatch: %v", err)
	}

	var notifications []models.Notification
	if err := db.Find(&notifications).Error; err != nil {
		t.Fatalf("load notifications: %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifications))
	}
	if notifications[0].SellerID != 1 || notifications[0].Type != constants.NotificationTypeListingCreated {
		t.Fatalf("unexpected notification: %+v", notifications[0])
	}
}

func TestHandleNotificationDispatchInvalidPayload(t *testing.T) {
	consumer, db := newWorkerTestConsumer(t)

	// 缺少 seller_id 的任务直接跳过，不报错不落库
	task, err := queue.NewNotificationDispatchTask(queue.NotificationDispatchPayload{
		Type:  constants.NotificationTypeListingCreated,
		RefID: 42,
	})
	if err != nil {
		t.Fatalf("build task: %v", err)
	}

	if err := consumer.handleNotificationDispatch(context.Background(), task); err != nil {
		t.Fatalf("handleNotificationDispatch: %v", err)
	}

	var count int64
	if err := db.Model(&models.Notification{}).Count(&count).Error; err != nil {
		t.Fatalf("count notifications: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no notifications, got %d", count)
	}
}
