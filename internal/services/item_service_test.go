package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"pharmamart/internal/models"
)

type ItemServiceTestSuite struct {
	suite.Suite
	itemRepo     *MockItemRepository
	statusRepo   *MockItemStatusRepository
	pharmacyRepo *MockPharmacyRepository
	service      ItemService
	context      context.Context
}

func (suite *ItemServiceTestSuite) SetupTest() {
	suite.itemRepo = new(MockItemRepository)
	suite.statusRepo = new(MockItemStatusRepository)
	suite.pharmacyRepo = new(MockPharmacyRepository)
	suite.service = NewItemService(suite.itemRepo, suite.statusRepo, suite.pharmacyRepo)
	suite.context = context.Background()
}

func TestItemServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ItemServiceTestSuite))
}

func (suite *ItemServiceTestSuite) validItem() *models.Item {
	stock := 100
	return &models.Item{
		ItemName:       "Aspirin",
		Price:          4.50,
		Stock:          &stock,
		ItemStatusesID: 1,
		PharmaciesID:   2,
	}
}

func (suite *ItemServiceTestSuite) expectReferencesValid() {
	suite.statusRepo.On("Exists", suite.context, 1).Return(true, nil)
	suite.pharmacyRepo.On("Exists", suite.context, 2).Return(true, nil)
}

func (suite *ItemServiceTestSuite) TestCreate_DuplicateNameRejected() {
	suite.expectReferencesValid()
	suite.itemRepo.On("ItemNameExists", suite.context, "Aspirin", 0).Return(true, nil)

	result := suite.service.Create(suite.context, suite.validItem(), "admin@pharma.test")

	assert.False(suite.T(), result.Success)
	assert.Equal(suite.T(), http.StatusConflict, result.StatusCode)
	assert.Equal(suite.T(), "An item with this name already exists", result.ErrorMessage)
	suite.itemRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *ItemServiceTestSuite) TestCreate_StampsInsertAudit() {
	suite.expectReferencesValid()
	suite.itemRepo.On("ItemNameExists", suite.context, "Aspirin", 0).Return(false, nil)
	suite.itemRepo.On("Create", suite.context, mock.MatchedBy(func(i *models.Item) bool {
		return i.InsertedBy != nil && *i.InsertedBy == "admin@pharma.test" && i.InsertDate != nil
	})).Return(nil)

	result := suite.service.Create(suite.context, suite.validItem(), "admin@pharma.test")

	assert.True(suite.T(), result.Success)
	assert.Equal(suite.T(), http.StatusCreated, result.StatusCode)
}

func (suite *ItemServiceTestSuite) TestCreate_UnknownStatusRejected() {
	suite.statusRepo.On("Exists", suite.context, 1).Return(false, nil)

	result := suite.service.Create(suite.context, suite.validItem(), "admin@pharma.test")

	assert.False(suite.T(), result.Success)
	assert.Equal(suite.T(), "Invalid item status specified", result.ErrorMessage)
}

func (suite *ItemServiceTestSuite) TestCreate_UnknownPharmacyRejected() {
	suite.statusRepo.On("Exists", suite.context, 1).Return(true, nil)
	suite.pharmacyRepo.On("Exists", suite.context, 2).Return(false, nil)

	result := suite.service.Create(suite.context, suite.validItem(), "admin@pharma.test")

	assert.False(suite.T(), result.Success)
	assert.Equal(suite.T(), "Invalid pharmacy specified", result.ErrorMessage)
}

func (suite *ItemServiceTestSuite) TestUpdate_KeepingOwnNameIsNotADuplicate() {
	existing := suite.validItem()
	existing.ID = 7
	suite.itemRepo.On("GetByID", suite.context, 7).Return(existing, nil)
	suite.expectReferencesValid()
	suite.itemRepo.On("ItemNameExists", suite.context, "Aspirin", 7).Return(false, nil)
	suite.itemRepo.On("Update", suite.context, mock.MatchedBy(func(i *models.Item) bool {
		return i.ID == 7 && i.UpdatedBy != nil && *i.UpdatedBy == "admin@pharma.test"
	})).Return(nil)

	updated := suite.validItem()
	updated.ID = 7
	result := suite.service.Update(suite.context, updated, "admin@pharma.test")

	assert.True(suite.T(), result.Success)
}

func (suite *ItemServiceTestSuite) TestUpdate_MissingItemIsNotFound() {
	suite.itemRepo.On("GetByID", suite.context, 7).Return(nil, nil)

	updated := suite.validItem()
	updated.ID = 7
	result := suite.service.Update(suite.context, updated, "admin@pharma.test")

	assert.False(suite.T(), result.Success)
	assert.True(suite.T(), result.IsNotFound())
}

func (suite *ItemServiceTestSuite) TestDelete_MissingRowIsNotFound() {
	suite.itemRepo.On("Delete", suite.context, 404).Return(false, nil)

	result := suite.service.Delete(suite.context, 404)

	assert.False(suite.T(), result.Success)
	assert.True(suite.T(), result.IsNotFound())
}

func (suite *ItemServiceTestSuite) TestGetAllByPharmacy_RejectsNonPositiveID() {
	result := suite.service.GetAllByPharmacy(suite.context, 0)

	assert.False(suite.T(), result.Success)
	assert.Equal(suite.T(), http.StatusBadRequest, result.StatusCode)
}
