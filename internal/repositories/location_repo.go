package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"pharmamart/internal/models"
)

type LocationRepository interface {
	GetAll(ctx context.Context) ([]*models.Location, error)
	GetByID(ctx context.Context, id int) (*models.Location, error)
	Create(ctx context.Context, location *models.Location) error
	Update(ctx context.Context, location *models.Location) error
	Delete(ctx context.Context, id int) (bool, error)
	Exists(ctx context.Context, id int) (bool, error)
	Search(ctx context.Context, term string) ([]*models.Location, error)
	GetByCountry(ctx context.Context, countryID int) ([]*models.Location, error)
}

type locationRepo struct {
	db Database
}

func NewLocationRepository(db Database) LocationRepository {
	return &locationRepo{db: db}
}

const locationColumns = `
		l.id, l.street, l.city, l.state, l.countries_id, l.time_zone, l.created_at, c.name`

func scanLocations(rows pgx.Rows) ([]*models.Location, error) {
	defer rows.Close()

	var locations []*models.Location
	for rows.Next() {
		location := &models.Location{}
		if err := rows.Scan(&location.ID, &location.Street, &location.City, &location.State,
			&location.CountriesID, &location.TimeZone, &location.CreatedAt, &location.CountryName); err != nil {
			return nil, err
		}
		locations = append(locations, location)
	}
	return locations, rows.Err()
}

func (r *locationRepo) GetAll(ctx context.Context) ([]*models.Location, error) {
	query := `
		SELECT` + locationColumns + `
		FROM locations l
		JOIN countries c ON c.id = l.countries_id
		ORDER BY l.created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return scanLocations(rows)
}

func (r *locationRepo) GetByID(ctx context.Context, id int) (*models.Location, error) {
	location := &models.Location{}
	query := `
		SELECT` + locationColumns + `
		FROM locations l
		JOIN countries c ON c.id = l.countries_id
		WHERE l.id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&location.ID, &location.Street, &location.City,
		&location.State, &location.CountriesID, &location.TimeZone, &location.CreatedAt, &location.CountryName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return location, nil
}

func (r *locationRepo) Create(ctx context.Context, location *models.Location) error {
	query := `
		INSERT INTO locations (street, city, state, countries_id, time_zone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.db.QueryRow(ctx, query, location.Street, location.City, location.State,
		location.CountriesID, location.TimeZone, location.CreatedAt).Scan(&location.ID)
}

// Update overwrites the mutable columns only; created_at keeps its original value.
func (r *locationRepo) Update(ctx context.Context, location *models.Location) error {
	query := `
		UPDATE locations
		SET street = $1, city = $2, state = $3, countries_id = $4, time_zone = $5
		WHERE id = $6
	`
	_, err := r.db.Exec(ctx, query, location.Street, location.City, location.State,
		location.CountriesID, location.TimeZone, location.ID)
	return err
}

func (r *locationRepo) Delete(ctx context.Context, id int) (bool, error) {
	query := `DELETE FROM locations WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *locationRepo) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM locations WHERE id = $1)`
	err := r.db.QueryRow(ctx, query, id).Scan(&exists)
	return exists, err
}

func (r *locationRepo) Search(ctx context.Context, term string) ([]*models.Location, error) {
	query := `
		SELECT` + locationColumns + `
		FROM locations l
		JOIN countries c ON c.id = l.countries_id
		WHERE l.street ILIKE '%' || $1 || '%'
		   OR l.city ILIKE '%' || $1 || '%'
		   OR COALESCE(l.state, '') ILIKE '%' || $1 || '%'
		   OR c.name ILIKE '%' || $1 || '%'
		ORDER BY l.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, term)
	if err != nil {
		return nil, err
	}
	return scanLocations(rows)
}

func (r *locationRepo) GetByCountry(ctx context.Context, countryID int) ([]*models.Location, error) {
	query := `
		SELECT` + locationColumns + `
		FROM locations l
		JOIN countries c ON c.id = l.countries_id
		WHERE l.countries_id = $1
		ORDER BY l.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, countryID)
	if err != nil {
		return nil, err
	}
	return scanLocations(rows)
}
