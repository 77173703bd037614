package services

import (
	"context"
	"log"
	"strings"
	"time"

	"pharmamart/internal/common"
	"pharmamart/internal/models"
	"pharmamart/internal/repositories"
)

type ItemService interface {
	GetAll(ctx context.Context) Result[[]*models.Item]
	GetAllByPharmacy(ctx context.Context, pharmacyID int) Result[[]*models.Item]
	GetByID(ctx context.Context, id int) Result[*models.Item]
	Create(ctx context.Context, item *models.Item, userName string) Result[*models.Item]
	Update(ctx context.Context, item *models.Item, userName string) Result[*models.Item]
	Delete(ctx context.Context, id int) Result[bool]
	ItemNameExists(ctx context.Context, name string, excludeID int) (bool, error)
	SearchByName(ctx context.Context, name string) Result[[]*models.Item]
}

type itemService struct {
	itemRepo     repositories.ItemRepository
	statusRepo   repositories.ItemStatusRepository
	pharmacyRepo repositories.PharmacyRepository
}

func NewItemService(itemRepo repositories.ItemRepository, statusRepo repositories.ItemStatusRepository,
	pharmacyRepo repositories.PharmacyRepository) ItemService {
	return &itemService{itemRepo: itemRepo, statusRepo: statusRepo, pharmacyRepo: pharmacyRepo}
}

func (s *itemService) GetAll(ctx context.Context) Result[[]*models.Item] {
	items, err := s.itemRepo.GetAll(ctx)
	if err != nil {
		log.Printf("ERROR: listing items: %v", err)
		return ServerError[[]*models.Item]("Error retrieving items")
	}
	return OK(items)
}

func (s *itemService) GetAllByPharmacy(ctx context.Context, pharmacyID int) Result[[]*models.Item] {
	if pharmacyID <= 0 {
		return Fail[[]*models.Item]("Invalid pharmacy ID")
	}

	items, err := s.itemRepo.GetAllByPharmacy(ctx, pharmacyID)
	if err != nil {
		log.Printf("ERROR: listing items for pharmacy %d: %v", pharmacyID, err)
		return ServerError[[]*models.Item]("Error retrieving items")
	}
	return OK(items)
}

func (s *itemService) GetByID(ctx context.Context, id int) Result[*models.Item] {
	if id <= 0 {
		return Fail[*models.Item]("Invalid item ID")
	}

	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		log.Printf("ERROR: retrieving item %d: %v", id, err)
		return ServerError[*models.Item]("Error retrieving item")
	}
	if item == nil {
		return NotFound[*models.Item]("Item not found")
	}
	return OK(item)
}

func (s *itemService) validate(ctx context.Context, item *models.Item) string {
	item.ItemName = strings.TrimSpace(item.ItemName)
	if err := common.ValidateRequiredString(item.ItemName, "Item name"); err != nil {
		return err.Error()
	}
	if err := common.ValidateMaxLength(item.ItemName, "Item name", 100); err != nil {
		return err.Error()
	}
	if err := common.ValidateOptionalString(item.ItemDescription, "Item description", 500); err != nil {
		return err.Error()
	}
	if err := common.ValidateOptionalString(item.ItemCode, "Item code", 50); err != nil {
		return err.Error()
	}
	if err := common.ValidatePositiveFloat(item.Price, "Price"); err != nil {
		return err.Error()
	}
	if err := common.ValidateNonNegativeInt(item.Stock, "Stock"); err != nil {
		return err.Error()
	}
	if item.ItemStatusesID <= 0 {
		return "Item status is required"
	}
	if item.PharmaciesID <= 0 {
		return "Pharmacy is required"
	}

	statusExists, err := s.statusRepo.Exists(ctx, item.ItemStatusesID)
	if err != nil {
		log.Printf("ERROR: checking item status %d: %v", item.ItemStatusesID, err)
		return "Error validating item status"
	}
	if !statusExists {
		return "Invalid item status specified"
	}

	pharmacyExists, err := s.pharmacyRepo.Exists(ctx, item.PharmaciesID)
	if err != nil {
		log.Printf("ERROR: checking pharmacy %d: %v", item.PharmaciesID, err)
		return "Error validating pharmacy"
	}
	if !pharmacyExists {
		return "Invalid pharmacy specified"
	}
	return ""
}

func (s *itemService) Create(ctx context.Context, item *models.Item, userName string) Result[*models.Item] {
	if item == nil {
		return Fail[*models.Item]("Item data is required")
	}
	if msg := s.validate(ctx, item); msg != "" {
		return Fail[*models.Item](msg)
	}

	exists, err := s.itemRepo.ItemNameExists(ctx, item.ItemName, 0)
	if err != nil {
		log.Printf("ERROR: duplicate check for item %q: %v", item.ItemName, err)
		return ServerError[*models.Item]("Error creating item")
	}
	if exists {
		return Conflict[*models.Item]("An item with this name already exists")
	}

	now := time.Now().UTC()
	item.InsertedBy = &userName
	item.InsertDate = &now

	if err := s.itemRepo.Create(ctx, item); err != nil {
		log.Printf("ERROR: creating item %q: %v", item.ItemName, err)
		return ServerError[*models.Item]("Error creating item")
	}
	return Created(item)
}

func (s *itemService) Update(ctx context.Context, item *models.Item, userName string) Result[*models.Item] {
	if item == nil {
		return Fail[*models.Item]("Item data is required")
	}
	if item.ID <= 0 {
		return Fail[*models.Item]("Invalid item ID")
	}

	existing, err := s.itemRepo.GetByID(ctx, item.ID)
	if err != nil {
		log.Printf("ERROR: retrieving item %d: %v", item.ID, err)
		return ServerError[*models.Item]("Error updating item")
	}
	if existing == nil {
		return NotFound[*models.Item]("Item not found")
	}

	if msg := s.validate(ctx, item); msg != "" {
		return Fail[*models.Item](msg)
	}

	exists, err := s.itemRepo.ItemNameExists(ctx, item.ItemName, item.ID)
	if err != nil {
		log.Printf("ERROR: duplicate check for item %q: %v", item.ItemName, err)
		return ServerError[*models.Item]("Error updating item")
	}
	if exists {
		return Conflict[*models.Item]("An item with this name already exists")
	}

	existing.ItemName = item.ItemName
	existing.ItemDescription = item.ItemDescription
	existing.Price = item.Price
	existing.ItemStatusesID = item.ItemStatusesID
	existing.ItemCode = item.ItemCode
	existing.ExpiryDate = item.ExpiryDate
	existing.IsActive = item.IsActive
	existing.Stock = item.Stock
	existing.PharmaciesID = item.PharmaciesID
	existing.UpdatedBy = &userName

	if err := s.itemRepo.Update(ctx, existing); err != nil {
		log.Printf("ERROR: updating item %d: %v", item.ID, err)
		return ServerError[*models.Item]("Error updating item")
	}
	return OK(existing)
}

func (s *itemService) Delete(ctx context.Context, id int) Result[bool] {
	if id <= 0 {
		return Fail[bool]("Invalid item ID")
	}

	deleted, err := s.itemRepo.Delete(ctx, id)
	if err != nil {
		log.Printf("ERROR: deleting item %d: %v", id, err)
		return ServerError[bool]("Error deleting item")
	}
	if !deleted {
		return NotFound[bool]("Item not found")
	}
	return OK(true)
}

func (s *itemService) ItemNameExists(ctx context.Context, name string, excludeID int) (bool, error) {
	return s.itemRepo.ItemNameExists(ctx, name, excludeID)
}

func (s *itemService) SearchByName(ctx context.Context, name string) Result[[]*models.Item] {
	if strings.TrimSpace(name) == "" {
		return s.GetAll(ctx)
	}

	items, err := s.itemRepo.SearchByName(ctx, name)
	if err != nil {
		log.Printf("ERROR: searching items for %q: %v", name, err)
		return ServerError[[]*models.Item]("Error searching items")
	}
	return OK(items)
}
