package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"unicourse_backend/internal/model"
	"unicourse_backend/internal/repository"
	"unicourse_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// NotificationService persists notifications and fans them out over redis
// so connected clients see them without polling. Both writes are best
// effort: the approval workflow has already committed by the time Notify
// runs, so failures are logged and swallowed.
type NotificationService struct {
	Repo  *repository.NotificationRepository
	Redis *redis.Client
}

func NewNotificationService(repo *repository.NotificationRepository, rdb *redis.Client) *NotificationService {
	return &NotificationService{Repo: repo, Redis: rdb}
}

func (s *NotificationService) Notify(n *model.Notification) {
	if err := s.Repo.Create(n); err != nil {
		logger.Log.Warn("notification write failed",
			zap.Uint("recipient", n.RecipientID),
			zap.String("type", string(n.Type)),
			zap.Error(err))
		return
	}

	if s.Redis == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	payload, _ := json.Marshal(n)
	channel := fmt.Sprintf("notifications:%d", n.RecipientID)
	if err := s.Redis.Publish(ctx, channel, payload).Err(); err != nil {
		logger.Log.Warn("notification publish failed",
			zap.String("channel", channel),
			zap.Error(err))
	}
}

func (s *NotificationService) List(recipientID uint, page, limit int) ([]model.Notification, int64, error) {
	return s.Repo.ListByRecipient(recipientID, page, limit)
}

func (s *NotificationService) MarkRead(id, recipientID uint) error {
	return s.Repo.MarkRead(id, recipientID)
}
