package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"pharmamart/internal/common"
	"pharmamart/internal/models"
	"pharmamart/internal/repositories"
)

type PharmacyService interface {
	GetAll(ctx context.Context) Result[[]*models.Pharmacy]
	GetByID(ctx context.Context, id int) Result[*models.Pharmacy]
	GetByUserID(ctx context.Context, userID uuid.UUID) Result[*models.Pharmacy]
	Create(ctx context.Context, pharmacy *models.Pharmacy) Result[*models.Pharmacy]
	Update(ctx context.Context, id int, pharmacy *models.Pharmacy) Result[*models.Pharmacy]
	Delete(ctx context.Context, id int) Result[bool]
}

type pharmacyService struct {
	pharmacyRepo repositories.PharmacyRepository
	locationRepo repositories.LocationRepository
	identitySvc  IdentityService
}

func NewPharmacyService(pharmacyRepo repositories.PharmacyRepository, locationRepo repositories.LocationRepository,
	identitySvc IdentityService) PharmacyService {
	return &pharmacyService{pharmacyRepo: pharmacyRepo, locationRepo: locationRepo, identitySvc: identitySvc}
}

func (s *pharmacyService) GetAll(ctx context.Context) Result[[]*models.Pharmacy] {
	pharmacies, err := s.pharmacyRepo.GetAll(ctx)
	if err != nil {
		log.Printf("ERROR: listing pharmacies: %v", err)
		return ServerError[[]*models.Pharmacy]("Error retrieving pharmacies")
	}
	return OK(pharmacies)
}

func (s *pharmacyService) GetByID(ctx context.Context, id int) Result[*models.Pharmacy] {
	if id <= 0 {
		return Fail[*models.Pharmacy]("Invalid pharmacy ID")
	}

	pharmacy, err := s.pharmacyRepo.GetByID(ctx, id)
	if err != nil {
		log.Printf("ERROR: retrieving pharmacy %d: %v", id, err)
		return ServerError[*models.Pharmacy]("Error retrieving pharmacy")
	}
	if pharmacy == nil {
		return NotFound[*models.Pharmacy]("Pharmacy not found")
	}
	return OK(pharmacy)
}

func (s *pharmacyService) GetByUserID(ctx context.Context, userID uuid.UUID) Result[*models.Pharmacy] {
	pharmacy, err := s.pharmacyRepo.GetByUserID(ctx, userID)
	if err != nil {
		log.Printf("ERROR: retrieving pharmacy for user %s: %v", userID, err)
		return ServerError[*models.Pharmacy]("Error retrieving pharmacy")
	}
	if pharmacy == nil {
		return NotFound[*models.Pharmacy]("Pharmacy not found")
	}
	return OK(pharmacy)
}

func (s *pharmacyService) validate(ctx context.Context, pharmacy *models.Pharmacy) string {
	pharmacy.PharmacyName = strings.TrimSpace(pharmacy.PharmacyName)
	pharmacy.UserName = strings.TrimSpace(pharmacy.UserName)
	if err := common.ValidateRequiredString(pharmacy.PharmacyName, "Pharmacy name"); err != nil {
		return err.Error()
	}
	if err := common.ValidateMaxLength(pharmacy.PharmacyName, "Pharmacy name", 100); err != nil {
		return err.Error()
	}
	if err := common.ValidateRequiredString(pharmacy.UserName, "Username"); err != nil {
		return err.Error()
	}
	if err := common.ValidateMaxLength(pharmacy.UserName, "Username", 50); err != nil {
		return err.Error()
	}
	if err := common.ValidateOptionalString(pharmacy.Password, "Password", 100); err != nil {
		return err.Error()
	}
	if err := common.ValidateOptionalString(pharmacy.AccountNumber, "Account number", 50); err != nil {
		return err.Error()
	}

	if pharmacy.LocationsID != nil {
		exists, err := s.locationRepo.Exists(ctx, *pharmacy.LocationsID)
		if err != nil {
			log.Printf("ERROR: checking location %d: %v", *pharmacy.LocationsID, err)
			return "Error validating location"
		}
		if !exists {
			return "Invalid location specified"
		}
	}
	return ""
}

// Create inserts a pharmacy row. When the username does not match any
// identity user, an Admin-role account is provisioned and linked first.
func (s *pharmacyService) Create(ctx context.Context, pharmacy *models.Pharmacy) Result[*models.Pharmacy] {
	if pharmacy == nil {
		return Fail[*models.Pharmacy]("Pharmacy data is required")
	}
	if msg := s.validate(ctx, pharmacy); msg != "" {
		return Fail[*models.Pharmacy](msg)
	}

	if pharmacy.UserID == uuid.Nil {
		user, err := s.identitySvc.FindUserByEmail(ctx, pharmacy.UserName)
		switch {
		case err == nil:
			pharmacy.UserID = user.ID
		case errors.Is(err, ErrUserNotFound):
			provisioned, provErr := s.identitySvc.ProvisionPharmacyUser(ctx, pharmacy.UserName)
			if provErr != nil {
				log.Printf("ERROR: provisioning user for pharmacy %q: %v", pharmacy.PharmacyName, provErr)
				return ServerError[*models.Pharmacy]("Error creating pharmacy user")
			}
			log.Printf("INFO: provisioned admin user %s for pharmacy %q", provisioned.Email, pharmacy.PharmacyName)
			pharmacy.UserID = provisioned.ID
		default:
			log.Printf("ERROR: looking up user %q: %v", pharmacy.UserName, err)
			return ServerError[*models.Pharmacy]("Error creating pharmacy")
		}
	}

	if pharmacy.CreatedAt.IsZero() {
		pharmacy.CreatedAt = time.Now().UTC()
	}

	if err := s.pharmacyRepo.Create(ctx, pharmacy); err != nil {
		log.Printf("ERROR: creating pharmacy %q: %v", pharmacy.PharmacyName, err)
		return ServerError[*models.Pharmacy]("Error creating pharmacy")
	}
	return Created(pharmacy)
}

func (s *pharmacyService) Update(ctx context.Context, id int, pharmacy *models.Pharmacy) Result[*models.Pharmacy] {
	if pharmacy == nil {
		return Fail[*models.Pharmacy]("Pharmacy data is required")
	}
	if id <= 0 {
		return Fail[*models.Pharmacy]("Invalid pharmacy ID")
	}
	if msg := s.validate(ctx, pharmacy); msg != "" {
		return Fail[*models.Pharmacy](msg)
	}

	existing, err := s.pharmacyRepo.GetByID(ctx, id)
	if err != nil {
		log.Printf("ERROR: retrieving pharmacy %d: %v", id, err)
		return ServerError[*models.Pharmacy]("Error updating pharmacy")
	}
	if existing == nil {
		return NotFound[*models.Pharmacy]("Pharmacy not found")
	}

	existing.PharmacyName = pharmacy.PharmacyName
	existing.UserName = pharmacy.UserName
	if pharmacy.Password != nil {
		existing.Password = pharmacy.Password
	}
	existing.Latitude = pharmacy.Latitude
	existing.Longitude = pharmacy.Longitude
	existing.IsActive = pharmacy.IsActive
	existing.AccountNumber = pharmacy.AccountNumber
	existing.LocationsID = pharmacy.LocationsID

	if err := s.pharmacyRepo.Update(ctx, existing); err != nil {
		log.Printf("ERROR: updating pharmacy %d: %v", id, err)
		return ServerError[*models.Pharmacy]("Error updating pharmacy")
	}
	return OK(existing)
}

func (s *pharmacyService) Delete(ctx context.Context, id int) Result[bool] {
	if id <= 0 {
		return Fail[bool]("Invalid pharmacy ID")
	}

	hasItems, err := s.pharmacyRepo.HasItems(ctx, id)
	if err != nil {
		log.Printf("ERROR: checking items for pharmacy %d: %v", id, err)
		return ServerError[bool]("Error deleting pharmacy")
	}
	if hasItems {
		return Conflict[bool]("Cannot delete pharmacy with associated items")
	}

	deleted, err := s.pharmacyRepo.Delete(ctx, id)
	if err != nil {
		log.Printf("ERROR: deleting pharmacy %d: %v", id, err)
		return ServerError[bool]("Error deleting pharmacy")
	}
	if !deleted {
		return NotFound[bool]("Pharmacy not found")
	}
	return OK(true)
}
