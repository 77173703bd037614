package testhelpers

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"pharmamart/internal/models"
)

// TestDB holds the database connection for integration tests.
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func()
}

// SetupTestDB connects to the test database, skipping the test when no
// database is reachable.
func SetupTestDB(t *testing.T, connString string) *TestDB {
	t.Helper()

	if connString == "" {
		connString = os.Getenv("TEST_DATABASE_URL")
		if connString == "" {
			connString = "host=localhost port=5432 user=postgres password=postgres dbname=pharmamart_test sslmode=disable"
		}
	}

	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		t.Skipf("test database unavailable: %v", err)
	}

	return &TestDB{
		Pool:    pool,
		Cleanup: pool.Close,
	}
}

// SetupTestCountry inserts a country row and returns its id.
func SetupTestCountry(t *testing.T, db *TestDB, name string) int {
	t.Helper()

	var id int
	err := db.Pool.QueryRow(context.Background(),
		`INSERT INTO countries (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test country: %v", err)
	}
	return id
}

// SetupTestLocation inserts a location row under the given country.
func SetupTestLocation(t *testing.T, db *TestDB, countryID int) *models.Location {
	t.Helper()

	location := &models.Location{
		Street:      "1 Test Street",
		City:        "Testville",
		CountriesID: countryID,
		CreatedAt:   time.Now().UTC(),
	}
	err := db.Pool.QueryRow(context.Background(),
		`INSERT INTO locations (street, city, countries_id, created_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		location.Street, location.City, location.CountriesID, location.CreatedAt).Scan(&location.ID)
	if err != nil {
		t.Fatalf("Failed to create test location: %v", err)
	}
	return location
}
