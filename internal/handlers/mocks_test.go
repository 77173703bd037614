package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pharmamart/internal/models"
	"pharmamart/internal/services"
)

type MockCountryService struct {
	mock.Mock
}

func (m *MockCountryService) GetAll(ctx context.Context) services.Result[[]*models.Country] {
	args := m.Called(ctx)
	return args.Get(0).(services.Result[[]*models.Country])
}

func (m *MockCountryService) GetByID(ctx context.Context, id int) services.Result[*models.Country] {
	args := m.Called(ctx, id)
	return args.Get(0).(services.Result[*models.Country])
}

func (m *MockCountryService) Create(ctx context.Context, country *models.Country) services.Result[*models.Country] {
	args := m.Called(ctx, country)
	return args.Get(0).(services.Result[*models.Country])
}

func (m *MockCountryService) Update(ctx context.Context, id int, country *models.Country) services.Result[*models.Country] {
	args := m.Called(ctx, id, country)
	return args.Get(0).(services.Result[*models.Country])
}

func (m *MockCountryService) Delete(ctx context.Context, id int) services.Result[bool] {
	args := m.Called(ctx, id)
	return args.Get(0).(services.Result[bool])
}

func (m *MockCountryService) Exists(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCountryService) SearchByName(ctx context.Context, name string) services.Result[[]*models.Country] {
	args := m.Called(ctx, name)
	return args.Get(0).(services.Result[[]*models.Country])
}

type MockLocationService struct {
	mock.Mock
}

func (m *MockLocationService) GetAll(ctx context.Context) services.Result[[]*models.Location] {
	args := m.Called(ctx)
	return args.Get(0).(services.Result[[]*models.Location])
}

func (m *MockLocationService) GetByID(ctx context.Context, id int) services.Result[*models.Location] {
	args := m.Called(ctx, id)
	return args.Get(0).(services.Result[*models.Location])
}

func (m *MockLocationService) Create(ctx context.Context, location *models.Location) services.Result[*models.Location] {
	args := m.Called(ctx, location)
	return args.Get(0).(services.Result[*models.Location])
}

func (m *MockLocationService) Update(ctx context.Context, id int, location *models.Location) services.Result[*models.Location] {
	args := m.Called(ctx, id, location)
	return args.Get(0).(services.Result[*models.Location])
}

func (m *MockLocationService) Delete(ctx context.Context, id int) services.Result[bool] {
	args := m.Called(ctx, id)
	return args.Get(0).(services.Result[bool])
}

func (m *MockLocationService) Search(ctx context.Context, term string) services.Result[[]*models.Location] {
	args := m.Called(ctx, term)
	return args.Get(0).(services.Result[[]*models.Location])
}

func (m *MockLocationService) GetByCountry(ctx context.Context, countryID int) services.Result[[]*models.Location] {
	args := m.Called(ctx, countryID)
	return args.Get(0).(services.Result[[]*models.Location])
}

type MockItemService struct {
	mock.Mock
}

func (m *MockItemService) GetAll(ctx context.Context) services.Result[[]*models.Item] {
	args := m.Called(ctx)
	return args.Get(0).(services.Result[[]*models.Item])
}

func (m *MockItemService) GetAllByPharmacy(ctx context.Context, pharmacyID int) services.Result[[]*models.Item] {
	args := m.Called(ctx, pharmacyID)
	return args.Get(0).(services.Result[[]*models.Item])
}

func (m *MockItemService) GetByID(ctx context.Context, id int) services.Result[*models.Item] {
	args := m.Called(ctx, id)
	return args.Get(0).(services.Result[*models.Item])
}

func (m *MockItemService) Create(ctx context.Context, item *models.Item, userName string) services.Result[*models.Item] {
	args := m.Called(ctx, item, userName)
	return args.Get(0).(services.Result[*models.Item])
}

func (m *MockItemService) Update(ctx context.Context, item *models.Item, userName string) services.Result[*models.Item] {
	args := m.Called(ctx, item, userName)
	return args.Get(0).(services.Result[*models.Item])
}

func (m *MockItemService) Delete(ctx context.Context, id int) services.Result[bool] {
	args := m.Called(ctx, id)
	return args.Get(0).(services.Result[bool])
}

func (m *MockItemService) ItemNameExists(ctx context.Context, name string, excludeID int) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockItemService) SearchByName(ctx context.Context, name string) services.Result[[]*models.Item] {
	args := m.Called(ctx, name)
	return args.Get(0).(services.Result[[]*models.Item])
}

type MockItemStatusService struct {
	mock.Mock
}

func (m *MockItemStatusService) GetAll(ctx context.Context) services.Result[[]*models.ItemStatus] {
	args := m.Called(ctx)
	return args.Get(0).(services.Result[[]*models.ItemStatus])
}

func (m *MockItemStatusService) GetByID(ctx context.Context, id int) services.Result[*models.ItemStatus] {
	args := m.Called(ctx, id)
	return args.Get(0).(services.Result[*models.ItemStatus])
}

func (m *MockItemStatusService) Create(ctx context.Context, status *models.ItemStatus) services.Result[*models.ItemStatus] {
	args := m.Called(ctx, status)
	return args.Get(0).(services.Result[*models.ItemStatus])
}

func (m *MockItemStatusService) Update(ctx context.Context, id int, status *models.ItemStatus) services.Result[*models.ItemStatus] {
	args := m.Called(ctx, id, status)
	return args.Get(0).(services.Result[*models.ItemStatus])
}

func (m *MockItemStatusService) Delete(ctx context.Context, id int) services.Result[bool] {
	args := m.Called(ctx, id)
	return args.Get(0).(services.Result[bool])
}

type MockPharmacyService struct {
	mock.Mock
}

func (m *MockPharmacyService) GetAll(ctx context.Context) services.Result[[]*models.Pharmacy] {
	args := m.Called(ctx)
	return args.Get(0).(services.Result[[]*models.Pharmacy])
}

func (m *MockPharmacyService) GetByID(ctx context.Context, id int) services.Result[*models.Pharmacy] {
	args := m.Called(ctx, id)
	return args.Get(0).(services.Result[*models.Pharmacy])
}

func (m *MockPharmacyService) GetByUserID(ctx context.Context, userID uuid.UUID) services.Result[*models.Pharmacy] {
	args := m.Called(ctx, userID)
	return args.Get(0).(services.Result[*models.Pharmacy])
}

func (m *MockPharmacyService) Create(ctx context.Context, pharmacy *models.Pharmacy) services.Result[*models.Pharmacy] {
	args := m.Called(ctx, pharmacy)
	return args.Get(0).(services.Result[*models.Pharmacy])
}

func (m *MockPharmacyService) Update(ctx context.Context, id int, pharmacy *models.Pharmacy) services.Result[*models.Pharmacy] {
	args := m.Called(ctx, id, pharmacy)
	return args.Get(0).(services.Result[*models.Pharmacy])
}

func (m *MockPharmacyService) Delete(ctx context.Context, id int) services.Result[bool] {
	args := m.Called(ctx, id)
	return args.Get(0).(services.Result[bool])
}

type MockAuditLogsService struct {
	mock.Mock
}

func (m *MockAuditLogsService) LogActivity(ctx context.Context, action, entity string, entityID *int, details any) error {
	args := m.Called(ctx, action, entity, entityID, details)
	return args.Error(0)
}

func (m *MockAuditLogsService) ListRecent(ctx context.Context, limit int) services.Result[[]*models.AuditLog] {
	args := m.Called(ctx, limit)
	return args.Get(0).(services.Result[[]*models.AuditLog])
}
