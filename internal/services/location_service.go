package services

import (
	"context"
	"log"
	"time"

	"pharmamart/internal/common"
	"pharmamart/internal/models"
	"pharmamart/internal/repositories"
)

type LocationService interface {
	GetAll(ctx context.Context) Result[[]*models.Location]
	GetByID(ctx context.Context, id int) Result[*models.Location]
	Create(ctx context.Context, location *models.Location) Result[*models.Location]
	Update(ctx context.Context, id int, location *models.Location) Result[*models.Location]
	Delete(ctx context.Context, id int) Result[bool]
	Search(ctx context.Context, term string) Result[[]*models.Location]
	GetByCountry(ctx context.Context, countryID int) Result[[]*models.Location]
}

type locationService struct {
	locationRepo repositories.LocationRepository
	countryRepo  repositories.CountryRepository
}

func NewLocationService(locationRepo repositories.LocationRepository, countryRepo repositories.CountryRepository) LocationService {
	return &locationService{locationRepo: locationRepo, countryRepo: countryRepo}
}

func (s *locationService) GetAll(ctx context.Context) Result[[]*models.Location] {
	locations, err := s.locationRepo.GetAll(ctx)
	if err != nil {
		log.Printf("ERROR: listing locations: %v", err)
		return ServerError[[]*models.Location]("Error retrieving locations")
	}
	return OK(locations)
}

func (s *locationService) GetByID(ctx context.Context, id int) Result[*models.Location] {
	if id <= 0 {
		return Fail[*models.Location]("Invalid location ID")
	}

	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		log.Printf("ERROR: retrieving location %d: %v", id, err)
		return ServerError[*models.Location]("Error retrieving location")
	}
	if location == nil {
		return NotFound[*models.Location]("Location not found")
	}
	return OK(location)
}

func (s *locationService) validate(location *models.Location) string {
	if err := common.ValidateRequiredString(location.Street, "Street"); err != nil {
		return err.Error()
	}
	if err := common.ValidateRequiredString(location.City, "City"); err != nil {
		return err.Error()
	}
	if err := common.ValidateMaxLength(location.Street, "Street", 200); err != nil {
		return err.Error()
	}
	if err := common.ValidateMaxLength(location.City, "City", 100); err != nil {
		return err.Error()
	}
	if err := common.ValidateOptionalString(location.State, "State", 100); err != nil {
		return err.Error()
	}
	if err := common.ValidateOptionalString(location.TimeZone, "TimeZone", 50); err != nil {
		return err.Error()
	}
	if location.CountriesID <= 0 {
		return "Valid country is required"
	}
	return ""
}

func (s *locationService) Create(ctx context.Context, location *models.Location) Result[*models.Location] {
	if location == nil {
		return Fail[*models.Location]("Location data is required")
	}
	if msg := s.validate(location); msg != "" {
		return Fail[*models.Location](msg)
	}

	countryExists, err := s.countryRepo.Exists(ctx, location.CountriesID)
	if err != nil {
		log.Printf("ERROR: checking country %d: %v", location.CountriesID, err)
		return ServerError[*models.Location]("Error creating location")
	}
	if !countryExists {
		return Fail[*models.Location]("Invalid country specified")
	}

	if location.CreatedAt.IsZero() {
		location.CreatedAt = time.Now().UTC()
	}

	if err := s.locationRepo.Create(ctx, location); err != nil {
		log.Printf("ERROR: creating location: %v", err)
		return ServerError[*models.Location]("Error creating location")
	}
	return Created(location)
}

func (s *locationService) Update(ctx context.Context, id int, location *models.Location) Result[*models.Location] {
	if location == nil {
		return Fail[*models.Location]("Location data is required")
	}
	if id <= 0 {
		return Fail[*models.Location]("Invalid location ID")
	}
	if id != location.ID {
		return Fail[*models.Location]("ID mismatch between route and body")
	}
	if msg := s.validate(location); msg != "" {
		return Fail[*models.Location](msg)
	}

	existing, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		log.Printf("ERROR: retrieving location %d: %v", id, err)
		return ServerError[*models.Location]("Error updating location")
	}
	if existing == nil {
		return NotFound[*models.Location]("Location not found")
	}

	countryExists, err := s.countryRepo.Exists(ctx, location.CountriesID)
	if err != nil {
		log.Printf("ERROR: checking country %d: %v", location.CountriesID, err)
		return ServerError[*models.Location]("Error updating location")
	}
	if !countryExists {
		return Fail[*models.Location]("Invalid country specified")
	}

	existing.Street = location.Street
	existing.City = location.City
	existing.State = location.State
	existing.CountriesID = location.CountriesID
	existing.TimeZone = location.TimeZone

	if err := s.locationRepo.Update(ctx, existing); err != nil {
		log.Printf("ERROR: updating location %d: %v", id, err)
		return ServerError[*models.Location]("Error updating location")
	}
	return OK(existing)
}

func (s *locationService) Delete(ctx context.Context, id int) Result[bool] {
	if id <= 0 {
		return Fail[bool]("Invalid location ID")
	}

	deleted, err := s.locationRepo.Delete(ctx, id)
	if err != nil {
		log.Printf("ERROR: deleting location %d: %v", id, err)
		return ServerError[bool]("Error deleting location")
	}
	if !deleted {
		return NotFound[bool]("Location not found")
	}
	return OK(true)
}

func (s *locationService) Search(ctx context.Context, term string) Result[[]*models.Location] {
	if term == "" {
		return s.GetAll(ctx)
	}

	locations, err := s.locationRepo.Search(ctx, term)
	if err != nil {
		log.Printf("ERROR: searching locations for %q: %v", term, err)
		return ServerError[[]*models.Location]("Error searching locations")
	}
	return OK(locations)
}

func (s *locationService) GetByCountry(ctx context.Context, countryID int) Result[[]*models.Location] {
	if countryID <= 0 {
		return Fail[[]*models.Location]("Invalid country ID")
	}

	locations, err := s.locationRepo.GetByCountry(ctx, countryID)
	if err != nil {
		log.Printf("ERROR: listing locations for country %d: %v", countryID, err)
		return ServerError[[]*models.Location]("Error retrieving locations")
	}
	return OK(locations)
}
