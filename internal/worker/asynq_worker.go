package worker

import (
	"context"
	"encoding/json"

	"github.com/zydovvn/backend/internal/logger"
	"github.com/zydovvn/backend/internal/provider"
	"github.com/zydovvn/backend/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskNotificationDispatch, c.handleNotificationDispatch)
}

func (c *Consumer) handleNotificationDispatch(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_notification_dispatch_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.NotificationDispatchPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_notification_dispatch_unmarshal_failed", "error", err)
		return err
	}
	if payload.SellerID == 0 || payload.Type == "" {
		logger.Debugw("worker_notification_dispatch_skip_invalid_payload",
			"seller_id", payload.SellerID,
			"type", payload.Type,
		)
		return nil
	}
	if c.NotificationService == nil {
		logger.Warnw("worker_notification_dispatch_skip_service_nil", "seller_id", payload.SellerID)
		return nil
	}
	if _, err := c.NotificationService.Dispatch(payload.SellerID, payload.Type, payload.RefID); err != nil {
		logger.Warnw("worker_notification_dispatch_failed",
			"seller_id", payload.SellerID,
			"type", payload.Type,
			"ref_id", payload.RefID,
			"error", err,
		)
		return err
	}
	return nil
}
