package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pharmamart/internal/models"
)

type MockCountryRepository struct {
	mock.Mock
}

func (m *MockCountryRepository) GetAll(ctx context.Context) ([]*models.Country, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Country), args.Error(1)
}

func (m *MockCountryRepository) GetByID(ctx context.Context, id int) (*models.Country, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Country), args.Error(1)
}

func (m *MockCountryRepository) Create(ctx context.Context, country *models.Country) error {
	args := m.Called(ctx, country)
	return args.Error(0)
}

func (m *MockCountryRepository) Update(ctx context.Context, country *models.Country) error {
	args := m.Called(ctx, country)
	return args.Error(0)
}

func (m *MockCountryRepository) Delete(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCountryRepository) Exists(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCountryRepository) SearchByName(ctx context.Context, name string) ([]*models.Country, error) {
	args := m.Called(ctx, name)
	return args.Get(0).([]*models.Country), args.Error(1)
}

func (m *MockCountryRepository) HasLocations(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) GetAll(ctx context.Context) ([]*models.Location, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Location), args.Error(1)
}

func (m *MockLocationRepository) GetByID(ctx context.Context, id int) (*models.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Location), args.Error(1)
}

func (m *MockLocationRepository) Create(ctx context.Context, location *models.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockLocationRepository) Update(ctx context.Context, location *models.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockLocationRepository) Delete(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockLocationRepository) Exists(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockLocationRepository) Search(ctx context.Context, term string) ([]*models.Location, error) {
	args := m.Called(ctx, term)
	return args.Get(0).([]*models.Location), args.Error(1)
}

func (m *MockLocationRepository) GetByCountry(ctx context.Context, countryID int) ([]*models.Location, error) {
	args := m.Called(ctx, countryID)
	return args.Get(0).([]*models.Location), args.Error(1)
}

type MockItemStatusRepository struct {
	mock.Mock
}

func (m *MockItemStatusRepository) GetAll(ctx context.Context) ([]*models.ItemStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.ItemStatus), args.Error(1)
}

func (m *MockItemStatusRepository) GetByID(ctx context.Context, id int) (*models.ItemStatus, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ItemStatus), args.Error(1)
}

func (m *MockItemStatusRepository) Create(ctx context.Context, status *models.ItemStatus) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

func (m *MockItemStatusRepository) Update(ctx context.Context, status *models.ItemStatus) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

func (m *MockItemStatusRepository) Delete(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockItemStatusRepository) Exists(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockItemStatusRepository) StatusExists(ctx context.Context, status string, excludeID int) (bool, error) {
	args := m.Called(ctx, status, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockItemStatusRepository) HasItems(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) GetAll(ctx context.Context) ([]*models.Item, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Item), args.Error(1)
}

func (m *MockItemRepository) GetAllByPharmacy(ctx context.Context, pharmacyID int) ([]*models.Item, error) {
	args := m.Called(ctx, pharmacyID)
	return args.Get(0).([]*models.Item), args.Error(1)
}

func (m *MockItemRepository) GetByID(ctx context.Context, id int) (*models.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockItemRepository) Create(ctx context.Context, item *models.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Update(ctx context.Context, item *models.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockItemRepository) Exists(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockItemRepository) ItemNameExists(ctx context.Context, name string, excludeID int) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockItemRepository) SearchByName(ctx context.Context, name string) ([]*models.Item, error) {
	args := m.Called(ctx, name)
	return args.Get(0).([]*models.Item), args.Error(1)
}

type MockPharmacyRepository struct {
	mock.Mock
}

func (m *MockPharmacyRepository) GetAll(ctx context.Context) ([]*models.Pharmacy, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Pharmacy), args.Error(1)
}

func (m *MockPharmacyRepository) GetByID(ctx context.Context, id int) (*models.Pharmacy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pharmacy), args.Error(1)
}

func (m *MockPharmacyRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Pharmacy, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pharmacy), args.Error(1)
}

func (m *MockPharmacyRepository) GetByUserName(ctx context.Context, userName string) (*models.Pharmacy, error) {
	args := m.Called(ctx, userName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pharmacy), args.Error(1)
}

func (m *MockPharmacyRepository) Create(ctx context.Context, pharmacy *models.Pharmacy) error {
	args := m.Called(ctx, pharmacy)
	return args.Error(0)
}

func (m *MockPharmacyRepository) Update(ctx context.Context, pharmacy *models.Pharmacy) error {
	args := m.Called(ctx, pharmacy)
	return args.Error(0)
}

func (m *MockPharmacyRepository) Delete(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPharmacyRepository) Exists(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPharmacyRepository) HasItems(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) AddToRole(ctx context.Context, userID uuid.UUID, role string) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

func (m *MockUserRepository) GetRoles(ctx context.Context, userID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) SetMustChangePassword(ctx context.Context, userID uuid.UUID, value bool) error {
	args := m.Called(ctx, userID, value)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateProfilePicture(ctx context.Context, userID uuid.UUID, objectName string) error {
	args := m.Called(ctx, userID, objectName)
	return args.Error(0)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetCountries(ctx context.Context) ([]*models.Country, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Country), args.Error(1)
}

func (m *MockCacheService) SetCountries(ctx context.Context, countries []*models.Country, ttl time.Duration) error {
	args := m.Called(ctx, countries, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteCountries(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheService) GetItemStatuses(ctx context.Context) ([]*models.ItemStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ItemStatus), args.Error(1)
}

func (m *MockCacheService) SetItemStatuses(ctx context.Context, statuses []*models.ItemStatus, ttl time.Duration) error {
	args := m.Called(ctx, statuses, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteItemStatuses(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheService) SetString(ctx context.Context, key, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetString(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheService) PurgeResetTokens(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockIdentityService struct {
	mock.Mock
}

func (m *MockIdentityService) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockIdentityService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockIdentityService) CreateUser(ctx context.Context, email, fullName, password string, roles ...string) (*models.User, error) {
	callArgs := []interface{}{ctx, email, fullName, password}
	for _, role := range roles {
		callArgs = append(callArgs, role)
	}
	args := m.Called(callArgs...)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockIdentityService) PasswordSignIn(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockIdentityService) IssueSessionToken(user *models.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *MockIdentityService) ValidateSessionToken(token string) (*SessionClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SessionClaims), args.Error(1)
}

func (m *MockIdentityService) IssueResetToken(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *MockIdentityService) ResetPassword(ctx context.Context, token, newPassword string) error {
	args := m.Called(ctx, token, newPassword)
	return args.Error(0)
}

func (m *MockIdentityService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	args := m.Called(ctx, userID, currentPassword, newPassword)
	return args.Error(0)
}

func (m *MockIdentityService) UpdateProfilePicture(ctx context.Context, userID uuid.UUID, objectName string) error {
	args := m.Called(ctx, userID, objectName)
	return args.Error(0)
}

func (m *MockIdentityService) ProvisionPharmacyUser(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
