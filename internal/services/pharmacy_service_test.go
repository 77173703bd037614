package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"pharmamart/internal/models"
)

type PharmacyServiceTestSuite struct {
	suite.Suite
	pharmacyRepo *MockPharmacyRepository
	locationRepo *MockLocationRepository
	identitySvc  *MockIdentityService
	service      PharmacyService
	context      context.Context
}

func (suite *PharmacyServiceTestSuite) SetupTest() {
	suite.pharmacyRepo = new(MockPharmacyRepository)
	suite.locationRepo = new(MockLocationRepository)
	suite.identitySvc = new(MockIdentityService)
	suite.service = NewPharmacyService(suite.pharmacyRepo, suite.locationRepo, suite.identitySvc)
	suite.context = context.Background()
}

func TestPharmacyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PharmacyServiceTestSuite))
}

func (suite *PharmacyServiceTestSuite) TestCreate_LinksExistingUser() {
	userID := uuid.New()
	suite.identitySvc.On("FindUserByEmail", suite.context, "owner@pharma.test").
		Return(&models.User{ID: userID, Email: "owner@pharma.test"}, nil)
	suite.pharmacyRepo.On("Create", suite.context, mock.MatchedBy(func(p *models.Pharmacy) bool {
		return p.UserID == userID
	})).Return(nil)

	result := suite.service.Create(suite.context, &models.Pharmacy{
		PharmacyName: "Corner Pharmacy",
		UserName:     "owner@pharma.test",
	})

	assert.True(suite.T(), result.Success)
	suite.identitySvc.AssertNotCalled(suite.T(), "ProvisionPharmacyUser", mock.Anything, mock.Anything)
}

func (suite *PharmacyServiceTestSuite) TestCreate_ProvisionsAdminWhenUserMissing() {
	provisionedID := uuid.New()
	suite.identitySvc.On("FindUserByEmail", suite.context, "new-owner@pharma.test").
		Return(nil, ErrUserNotFound)
	suite.identitySvc.On("ProvisionPharmacyUser", suite.context, "new-owner@pharma.test").
		Return(&models.User{ID: provisionedID, Email: "new-owner@pharma.test"}, nil)
	suite.pharmacyRepo.On("Create", suite.context, mock.MatchedBy(func(p *models.Pharmacy) bool {
		return p.UserID == provisionedID
	})).Return(nil)

	result := suite.service.Create(suite.context, &models.Pharmacy{
		PharmacyName: "Corner Pharmacy",
		UserName:     "new-owner@pharma.test",
	})

	assert.True(suite.T(), result.Success)
	assert.Equal(suite.T(), http.StatusCreated, result.StatusCode)
	suite.identitySvc.AssertExpectations(suite.T())
}

func (suite *PharmacyServiceTestSuite) TestCreate_LookupFailureDoesNotProvision() {
	suite.identitySvc.On("FindUserByEmail", suite.context, "owner@pharma.test").
		Return(nil, errors.New("connection refused"))

	result := suite.service.Create(suite.context, &models.Pharmacy{
		PharmacyName: "Corner Pharmacy",
		UserName:     "owner@pharma.test",
	})

	assert.False(suite.T(), result.Success)
	assert.Equal(suite.T(), http.StatusInternalServerError, result.StatusCode)
	suite.identitySvc.AssertNotCalled(suite.T(), "ProvisionPharmacyUser", mock.Anything, mock.Anything)
	suite.pharmacyRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *PharmacyServiceTestSuite) TestCreate_PresetUserIDSkipsLookup() {
	userID := uuid.New()
	suite.pharmacyRepo.On("Create", suite.context, mock.Anything).Return(nil)

	result := suite.service.Create(suite.context, &models.Pharmacy{
		PharmacyName: "Corner Pharmacy",
		UserName:     "owner@pharma.test",
		UserID:       userID,
	})

	assert.True(suite.T(), result.Success)
	suite.identitySvc.AssertNotCalled(suite.T(), "FindUserByEmail", mock.Anything, mock.Anything)
}

func (suite *PharmacyServiceTestSuite) TestCreate_UnknownLocationRejected() {
	locationID := 55
	suite.locationRepo.On("Exists", suite.context, 55).Return(false, nil)

	result := suite.service.Create(suite.context, &models.Pharmacy{
		PharmacyName: "Corner Pharmacy",
		UserName:     "owner@pharma.test",
		LocationsID:  &locationID,
	})

	assert.False(suite.T(), result.Success)
	assert.Equal(suite.T(), "Invalid location specified", result.ErrorMessage)
}

func (suite *PharmacyServiceTestSuite) TestUpdate_NilPasswordKeepsStoredCredential() {
	stored := "bcrypt-hash-of-old-password"
	suite.pharmacyRepo.On("GetByID", suite.context, 7).Return(&models.Pharmacy{
		ID:           7,
		PharmacyName: "Corner Pharmacy",
		UserName:     "owner@pharma.test",
		Password:     &stored,
	}, nil)
	suite.pharmacyRepo.On("Update", suite.context, mock.MatchedBy(func(p *models.Pharmacy) bool {
		return p.Password != nil && *p.Password == stored
	})).Return(nil)

	result := suite.service.Update(suite.context, 7, &models.Pharmacy{
		PharmacyName: "Corner Pharmacy Renamed",
		UserName:     "owner@pharma.test",
	})

	assert.True(suite.T(), result.Success)
	suite.pharmacyRepo.AssertExpectations(suite.T())
}

func (suite *PharmacyServiceTestSuite) TestUpdate_NewPasswordReplacesStoredCredential() {
	stored := "old-hash"
	fresh := "new-secret"
	suite.pharmacyRepo.On("GetByID", suite.context, 7).Return(&models.Pharmacy{
		ID:           7,
		PharmacyName: "Corner Pharmacy",
		UserName:     "owner@pharma.test",
		Password:     &stored,
	}, nil)
	suite.pharmacyRepo.On("Update", suite.context, mock.MatchedBy(func(p *models.Pharmacy) bool {
		return p.Password != nil && *p.Password == fresh
	})).Return(nil)

	result := suite.service.Update(suite.context, 7, &models.Pharmacy{
		PharmacyName: "Corner Pharmacy",
		UserName:     "owner@pharma.test",
		Password:     &fresh,
	})

	assert.True(suite.T(), result.Success)
	suite.pharmacyRepo.AssertExpectations(suite.T())
}

func (suite *PharmacyServiceTestSuite) TestDelete_BlockedWhileItemsReferenceIt() {
	suite.pharmacyRepo.On("HasItems", suite.context, 3).Return(true, nil)

	result := suite.service.Delete(suite.context, 3)

	assert.False(suite.T(), result.Success)
	assert.Equal(suite.T(), http.StatusConflict, result.StatusCode)
	assert.Equal(suite.T(), "Cannot delete pharmacy with associated items", result.ErrorMessage)
	suite.pharmacyRepo.AssertNotCalled(suite.T(), "Delete", mock.Anything, mock.Anything)
}

func (suite *PharmacyServiceTestSuite) TestGetByUserID_MissingRowIsNotFound() {
	userID := uuid.New()
	suite.pharmacyRepo.On("GetByUserID", suite.context, userID).Return(nil, nil)

	result := suite.service.GetByUserID(suite.context, userID)

	assert.False(suite.T(), result.Success)
	assert.True(suite.T(), result.IsNotFound())
}
