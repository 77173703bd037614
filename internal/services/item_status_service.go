package services

import (
	"context"
	"log"
	"strings"

	"pharmamart/internal/caching"
	"pharmamart/internal/common"
	"pharmamart/internal/models"
	"pharmamart/internal/repositories"
)

type ItemStatusService interface {
	GetAll(ctx context.Context) Result[[]*models.ItemStatus]
	GetByID(ctx context.Context, id int) Result[*models.ItemStatus]
	Create(ctx context.Context, status *models.ItemStatus) Result[*models.ItemStatus]
	Update(ctx context.Context, id int, status *models.ItemStatus) Result[*models.ItemStatus]
	Delete(ctx context.Context, id int) Result[bool]
}

type itemStatusService struct {
	statusRepo repositories.ItemStatusRepository
	cacheSvc   caching.CacheService
}

func NewItemStatusService(statusRepo repositories.ItemStatusRepository, cacheSvc caching.CacheService) ItemStatusService {
	return &itemStatusService{statusRepo: statusRepo, cacheSvc: cacheSvc}
}

func (s *itemStatusService) GetAll(ctx context.Context) Result[[]*models.ItemStatus] {
	if cached, err := s.cacheSvc.GetItemStatuses(ctx); err == nil && cached != nil {
		return OK(cached)
	}

	statuses, err := s.statusRepo.GetAll(ctx)
	if err != nil {
		log.Printf("ERROR: listing item statuses: %v", err)
		return ServerError[[]*models.ItemStatus]("Error retrieving item statuses")
	}

	if err := s.cacheSvc.SetItemStatuses(ctx, statuses, caching.LookupTTL); err != nil {
		log.Printf("WARN: caching item statuses: %v", err)
	}
	return OK(statuses)
}

func (s *itemStatusService) GetByID(ctx context.Context, id int) Result[*models.ItemStatus] {
	if id <= 0 {
		return Fail[*models.ItemStatus]("Invalid item status ID")
	}

	status, err := s.statusRepo.GetByID(ctx, id)
	if err != nil {
		log.Printf("ERROR: retrieving item status %d: %v", id, err)
		return ServerError[*models.ItemStatus]("Error retrieving item status")
	}
	if status == nil {
		return NotFound[*models.ItemStatus]("Item status not found")
	}
	return OK(status)
}

func (s *itemStatusService) Create(ctx context.Context, status *models.ItemStatus) Result[*models.ItemStatus] {
	if status == nil {
		return Fail[*models.ItemStatus]("Item status data is required")
	}
	status.Status = strings.TrimSpace(status.Status)
	if err := common.ValidateRequiredString(status.Status, "Status"); err != nil {
		return Fail[*models.ItemStatus](err.Error())
	}
	if err := common.ValidateMaxLength(status.Status, "Status", 100); err != nil {
		return Fail[*models.ItemStatus](err.Error())
	}

	exists, err := s.statusRepo.StatusExists(ctx, status.Status, 0)
	if err != nil {
		log.Printf("ERROR: duplicate check for item status %q: %v", status.Status, err)
		return ServerError[*models.ItemStatus]("Error creating item status")
	}
	if exists {
		return Conflict[*models.ItemStatus]("An item status with this name already exists")
	}

	if err := s.statusRepo.Create(ctx, status); err != nil {
		log.Printf("ERROR: creating item status %q: %v", status.Status, err)
		return ServerError[*models.ItemStatus]("Error creating item status")
	}

	s.invalidateCache(ctx)
	return Created(status)
}

func (s *itemStatusService) Update(ctx context.Context, id int, status *models.ItemStatus) Result[*models.ItemStatus] {
	if status == nil {
		return Fail[*models.ItemStatus]("Item status data is required")
	}
	if id <= 0 {
		return Fail[*models.ItemStatus]("Invalid item status ID")
	}
	if id != status.ID {
		return Fail[*models.ItemStatus]("ID mismatch between route and body")
	}
	status.Status = strings.TrimSpace(status.Status)
	if err := common.ValidateRequiredString(status.Status, "Status"); err != nil {
		return Fail[*models.ItemStatus](err.Error())
	}
	if err := common.ValidateMaxLength(status.Status, "Status", 100); err != nil {
		return Fail[*models.ItemStatus](err.Error())
	}

	existing, err := s.statusRepo.GetByID(ctx, id)
	if err != nil {
		log.Printf("ERROR: retrieving item status %d: %v", id, err)
		return ServerError[*models.ItemStatus]("Error updating item status")
	}
	if existing == nil {
		return NotFound[*models.ItemStatus]("Item status not found")
	}

	exists, err := s.statusRepo.StatusExists(ctx, status.Status, id)
	if err != nil {
		log.Printf("ERROR: duplicate check for item status %q: %v", status.Status, err)
		return ServerError[*models.ItemStatus]("Error updating item status")
	}
	if exists {
		return Conflict[*models.ItemStatus]("An item status with this name already exists")
	}

	existing.Status = status.Status
	if err := s.statusRepo.Update(ctx, existing); err != nil {
		log.Printf("ERROR: updating item status %d: %v", id, err)
		return ServerError[*models.ItemStatus]("Error updating item status")
	}

	s.invalidateCache(ctx)
	return OK(existing)
}

func (s *itemStatusService) Delete(ctx context.Context, id int) Result[bool] {
	if id <= 0 {
		return Fail[bool]("Invalid item status ID")
	}

	hasItems, err := s.statusRepo.HasItems(ctx, id)
	if err != nil {
		log.Printf("ERROR: checking items for status %d: %v", id, err)
		return ServerError[bool]("Error deleting item status")
	}
	if hasItems {
		return Conflict[bool]("Cannot delete item status that is assigned to items")
	}

	deleted, err := s.statusRepo.Delete(ctx, id)
	if err != nil {
		log.Printf("ERROR: deleting item status %d: %v", id, err)
		return ServerError[bool]("Error deleting item status")
	}
	if !deleted {
		return NotFound[bool]("Item status not found")
	}

	s.invalidateCache(ctx)
	return OK(true)
}

func (s *itemStatusService) invalidateCache(ctx context.Context) {
	if err := s.cacheSvc.DeleteItemStatuses(ctx); err != nil {
		log.Printf("WARN: invalidating item status cache: %v", err)
	}
}
