package queue

import (
	"encoding/json"

	"github.com/zydovvn/backend/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskNotificationDispatch 站内通知落库任务
	TaskNotificationDispatch = constants.TaskNotificationDispatch
)

// NotificationDispatchPayload 站内通知任务载荷
type NotificationDispatchPayload struct {
	SellerID uint   `json:"seller_id"`
	Type     string `json:"type"`
	RefID    uint   `json:"ref_id"`
}

// NewNotificationDispatchTask 创建站内通知任务
func NewNotificationDispatchTask(payload NotificationDispatchPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskNotificationDispatch, body), nil
}
