package repositories

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"pharmamart/internal/models"
)

type CountryRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    CountryRepository
	context context.Context
}

func (suite *CountryRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewCountryRepository(mock)
	suite.context = context.Background()
}

func (suite *CountryRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestCountryRepoTestSuite(t *testing.T) {
	suite.Run(t, new(CountryRepoTestSuite))
}

func (suite *CountryRepoTestSuite) TestGetAll_ReturnsOrderedRows() {
	rows := pgxmock.NewRows([]string{"id", "name"}).
		AddRow(2, "Canada").
		AddRow(1, "India")

	suite.mock.ExpectQuery(`SELECT id, name\s+FROM countries\s+ORDER BY name`).
		WillReturnRows(rows)

	countries, err := suite.repo.GetAll(suite.context)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), countries, 2)
	assert.Equal(suite.T(), "Canada", countries[0].Name)
}

func (suite *CountryRepoTestSuite) TestGetByID_NotFoundReturnsNil() {
	suite.mock.ExpectQuery(`SELECT id, name\s+FROM countries\s+WHERE id = \$1`).
		WithArgs(42).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name"}))

	country, err := suite.repo.GetByID(suite.context, 42)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), country)
}

func (suite *CountryRepoTestSuite) TestCreate_AssignsGeneratedID() {
	country := &models.Country{Name: "Brazil"}

	suite.mock.ExpectQuery(`INSERT INTO countries \(name\)\s+VALUES \(\$1\)\s+RETURNING id`).
		WithArgs("Brazil").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(7))

	err := suite.repo.Create(suite.context, country)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 7, country.ID)
}

func (suite *CountryRepoTestSuite) TestUpdate_TouchesOnlyName() {
	country := &models.Country{ID: 3, Name: "Renamed"}

	suite.mock.ExpectExec(`UPDATE countries\s+SET name = \$1\s+WHERE id = \$2`).
		WithArgs("Renamed", 3).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(suite.T(), suite.repo.Update(suite.context, country))
}

func (suite *CountryRepoTestSuite) TestDelete_MissingRowReportsFalse() {
	suite.mock.ExpectExec(`DELETE FROM countries WHERE id = \$1`).
		WithArgs(99).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	deleted, err := suite.repo.Delete(suite.context, 99)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), deleted)
}

func (suite *CountryRepoTestSuite) TestDelete_ExistingRowReportsTrue() {
	suite.mock.ExpectExec(`DELETE FROM countries WHERE id = \$1`).
		WithArgs(3).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	deleted, err := suite.repo.Delete(suite.context, 3)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), deleted)
}

func (suite *CountryRepoTestSuite) TestHasLocations() {
	suite.mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM locations WHERE countries_id = \$1\)`).
		WithArgs(5).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	hasLocations, err := suite.repo.HasLocations(suite.context, 5)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), hasLocations)
}

func (suite *CountryRepoTestSuite) TestSearchByName_PropagatesQueryError() {
	suite.mock.ExpectQuery(`WHERE name ILIKE`).
		WithArgs("x").
		WillReturnError(errors.New("connection reset"))

	_, err := suite.repo.SearchByName(suite.context, "x")
	assert.Error(suite.T(), err)
}
