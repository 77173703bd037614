package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"pharmamart/internal/common"
	"pharmamart/internal/models"
	"pharmamart/internal/repositories"
)

const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionLogin  = "login"
)

type AuditLogsService interface {
	LogActivity(ctx context.Context, action, entity string, entityID *int, details any) error
	ListRecent(ctx context.Context, limit int) Result[[]*models.AuditLog]
}

type auditLogsService struct {
	auditLogsRepo repositories.AuditLogsRepository
}

func NewAuditLogsService(auditLogsRepo repositories.AuditLogsRepository) AuditLogsService {
	return &auditLogsService{auditLogsRepo: auditLogsRepo}
}

// LogActivity records who did what. The acting user is taken from the
// request context; entries without a user are still recorded.
func (s *auditLogsService) LogActivity(ctx context.Context, action, entity string, entityID *int, details any) error {
	if action == "" {
		return errors.New("action is required")
	}
	if entity == "" {
		return errors.New("entity is required")
	}

	entry := &models.AuditLog{
		ID:        uuid.New(),
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		CreatedAt: time.Now().UTC(),
	}
	if userID, ok := common.GetUserIDFromContext(ctx); ok {
		entry.UserID = &userID
	}
	if email, ok := common.GetUserEmailFromContext(ctx); ok {
		entry.UserEmail = &email
	}
	if details != nil {
		payload, err := json.Marshal(details)
		if err != nil {
			log.Printf("WARN: marshalling audit details for %s/%s: %v", entity, action, err)
		} else {
			entry.Details = payload
		}
	}

	return s.auditLogsRepo.Insert(ctx, entry)
}

func (s *auditLogsService) ListRecent(ctx context.Context, limit int) Result[[]*models.AuditLog] {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	entries, err := s.auditLogsRepo.ListRecent(ctx, limit)
	if err != nil {
		log.Printf("ERROR: listing audit logs: %v", err)
		return ServerError[[]*models.AuditLog]("Error retrieving audit logs")
	}
	return OK(entries)
}
