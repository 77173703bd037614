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

type CountryService interface {
	GetAll(ctx context.Context) Result[[]*models.Country]
	GetByID(ctx context.Context, id int) Result[*models.Country]
	Create(ctx context.Context, country *models.Country) Result[*models.Country]
	Update(ctx context.Context, id int, country *models.Country) Result[*models.Country]
	Delete(ctx context.Context, id int) Result[bool]
	Exists(ctx context.Context, id int) (bool, error)
	SearchByName(ctx context.Context, name string) Result[[]*models.Country]
}

type countryService struct {
	countryRepo repositories.CountryRepository
	cacheSvc    caching.CacheService
}

func NewCountryService(countryRepo repositories.CountryRepository, cacheSvc caching.CacheService) CountryService {
	return &countryService{countryRepo: countryRepo, cacheSvc: cacheSvc}
}

func (s *countryService) GetAll(ctx context.Context) Result[[]*models.Country] {
	if cached, err := s.cacheSvc.GetCountries(ctx); err == nil && cached != nil {
		return OK(cached)
	}

	countries, err := s.countryRepo.GetAll(ctx)
	if err != nil {
		log.Printf("ERROR: listing countries: %v", err)
		return ServerError[[]*models.Country]("Error retrieving countries")
	}

	if err := s.cacheSvc.SetCountries(ctx, countries, caching.LookupTTL); err != nil {
		log.Printf("WARN: caching countries: %v", err)
	}
	return OK(countries)
}

func (s *countryService) GetByID(ctx context.Context, id int) Result[*models.Country] {
	if id <= 0 {
		return Fail[*models.Country]("Invalid country ID")
	}

	country, err := s.countryRepo.GetByID(ctx, id)
	if err != nil {
		log.Printf("ERROR: retrieving country %d: %v", id, err)
		return ServerError[*models.Country]("Error retrieving country")
	}
	if country == nil {
		return NotFound[*models.Country]("Country not found")
	}
	return OK(country)
}

func (s *countryService) Create(ctx context.Context, country *models.Country) Result[*models.Country] {
	if country == nil {
		return Fail[*models.Country]("Country data is required")
	}
	country.Name = strings.TrimSpace(country.Name)
	if err := common.ValidateRequiredString(country.Name, "Country name"); err != nil {
		return Fail[*models.Country](err.Error())
	}
	if err := common.ValidateMaxLength(country.Name, "Country name", 100); err != nil {
		return Fail[*models.Country](err.Error())
	}

	if dup, res := s.nameTaken(ctx, country.Name, 0); res != nil {
		return *res
	} else if dup {
		return Conflict[*models.Country]("A country with this name already exists")
	}

	if err := s.countryRepo.Create(ctx, country); err != nil {
		log.Printf("ERROR: creating country %q: %v", country.Name, err)
		return ServerError[*models.Country]("Error creating country")
	}

	s.invalidateCache(ctx)
	return Created(country)
}

func (s *countryService) Update(ctx context.Context, id int, country *models.Country) Result[*models.Country] {
	if country == nil {
		return Fail[*models.Country]("Country data is required")
	}
	if id <= 0 {
		return Fail[*models.Country]("Invalid country ID")
	}
	if id != country.ID {
		return Fail[*models.Country]("ID mismatch between route and body")
	}
	country.Name = strings.TrimSpace(country.Name)
	if err := common.ValidateRequiredString(country.Name, "Country name"); err != nil {
		return Fail[*models.Country](err.Error())
	}
	if err := common.ValidateMaxLength(country.Name, "Country name", 100); err != nil {
		return Fail[*models.Country](err.Error())
	}

	existing, err := s.countryRepo.GetByID(ctx, id)
	if err != nil {
		log.Printf("ERROR: retrieving country %d: %v", id, err)
		return ServerError[*models.Country]("Error updating country")
	}
	if existing == nil {
		return NotFound[*models.Country]("Country not found")
	}

	if dup, res := s.nameTaken(ctx, country.Name, id); res != nil {
		return *res
	} else if dup {
		return Conflict[*models.Country]("A country with this name already exists")
	}

	existing.Name = country.Name
	if err := s.countryRepo.Update(ctx, existing); err != nil {
		log.Printf("ERROR: updating country %d: %v", id, err)
		return ServerError[*models.Country]("Error updating country")
	}

	s.invalidateCache(ctx)
	return OK(existing)
}

func (s *countryService) Delete(ctx context.Context, id int) Result[bool] {
	if id <= 0 {
		return Fail[bool]("Invalid country ID")
	}

	country, err := s.countryRepo.GetByID(ctx, id)
	if err != nil {
		log.Printf("ERROR: retrieving country %d: %v", id, err)
		return ServerError[bool]("Error deleting country")
	}
	if country == nil {
		return NotFound[bool]("Country not found")
	}

	hasLocations, err := s.countryRepo.HasLocations(ctx, id)
	if err != nil {
		log.Printf("ERROR: checking locations for country %d: %v", id, err)
		return ServerError[bool]("Error deleting country")
	}
	if hasLocations {
		return Conflict[bool]("Cannot delete country with associated locations")
	}

	deleted, err := s.countryRepo.Delete(ctx, id)
	if err != nil {
		log.Printf("ERROR: deleting country %d: %v", id, err)
		return ServerError[bool]("Error deleting country")
	}
	if !deleted {
		return NotFound[bool]("Country not found")
	}

	s.invalidateCache(ctx)
	return OK(true)
}

func (s *countryService) Exists(ctx context.Context, id int) (bool, error) {
	return s.countryRepo.Exists(ctx, id)
}

func (s *countryService) SearchByName(ctx context.Context, name string) Result[[]*models.Country] {
	if strings.TrimSpace(name) == "" {
		return s.GetAll(ctx)
	}

	countries, err := s.countryRepo.SearchByName(ctx, name)
	if err != nil {
		log.Printf("ERROR: searching countries for %q: %v", name, err)
		return ServerError[[]*models.Country]("Error searching countries")
	}
	return OK(countries)
}

// nameTaken scans existing rows for a case-insensitive duplicate, skipping
// the row identified by excludeID.
func (s *countryService) nameTaken(ctx context.Context, name string, excludeID int) (bool, *Result[*models.Country]) {
	existing, err := s.countryRepo.SearchByName(ctx, name)
	if err != nil {
		log.Printf("ERROR: duplicate check for country %q: %v", name, err)
		res := ServerError[*models.Country]("Error validating country name")
		return false, &res
	}
	for _, c := range existing {
		if common.EqualFold(c.Name, name) && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *countryService) invalidateCache(ctx context.Context) {
	if err := s.cacheSvc.DeleteCountries(ctx); err != nil {
		log.Printf("WARN: invalidating country cache: %v", err)
	}
}
