package service

import (
	"unicourse_backend/internal/model"
	"unicourse_backend/internal/repository"
	"unicourse_backend/pkg/logger"

	"go.uber.org/zap"
)

// AuditService writes the compliance trail. Like notifications, audit rows
// are written after the workflow transaction commits; a write failure is
// logged but never surfaces to the caller.
type AuditService struct {
	Repo *repository.AuditRepository
}

func NewAuditService(repo *repository.AuditRepository) *AuditService {
	return &AuditService{Repo: repo}
}

func (s *AuditService) Record(entry *model.AuditLog) {
	if err := s.Repo.Create(entry); err != nil {
		logger.Log.Warn("audit write failed",
			zap.String("action", entry.Action),
			zap.String("entity", entry.EntityID),
			zap.Error(err))
	}
}

func (s *AuditService) ListByEntity(entityType, entityID string, page, limit int) ([]model.AuditLog, int64, error) {
	return s.Repo.ListByEntity(entityType, entityID, page, limit)
}
