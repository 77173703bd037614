package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"pharmamart/internal/models"
)

type CountryRepository interface {
	GetAll(ctx context.Context) ([]*models.Country, error)
	GetByID(ctx context.Context, id int) (*models.Country, error)
	Create(ctx context.Context, country *models.Country) error
	Update(ctx context.Context, country *models.Country) error
	Delete(ctx context.Context, id int) (bool, error)
	Exists(ctx context.Context, id int) (bool, error)
	SearchByName(ctx context.Context, name string) ([]*models.Country, error)
	HasLocations(ctx context.Context, id int) (bool, error)
}

type countryRepo struct {
	db Database
}

func NewCountryRepository(db Database) CountryRepository {
	return &countryRepo{db: db}
}

func (r *countryRepo) GetAll(ctx context.Context) ([]*models.Country, error) {
	query := `
		SELECT id, name
		FROM countries
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var countries []*models.Country
	for rows.Next() {
		country := &models.Country{}
		if err := rows.Scan(&country.ID, &country.Name); err != nil {
			return nil, err
		}
		countries = append(countries, country)
	}
	return countries, rows.Err()
}

func (r *countryRepo) GetByID(ctx context.Context, id int) (*models.Country, error) {
	country := &models.Country{}
	query := `
		SELECT id, name
		FROM countries
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&country.ID, &country.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return country, nil
}

func (r *countryRepo) Create(ctx context.Context, country *models.Country) error {
	query := `
		INSERT INTO countries (name)
		VALUES ($1)
		RETURNING id
	`
	return r.db.QueryRow(ctx, query, country.Name).Scan(&country.ID)
}

// Update overwrites only the mutable name column, never the full record.
func (r *countryRepo) Update(ctx context.Context, country *models.Country) error {
	query := `
		UPDATE countries
		SET name = $1
		WHERE id = $2
	`
	_, err := r.db.Exec(ctx, query, country.Name, country.ID)
	return err
}

// Delete reports false for a missing row instead of an error.
func (r *countryRepo) Delete(ctx context.Context, id int) (bool, error) {
	query := `DELETE FROM countries WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *countryRepo) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM countries WHERE id = $1)`
	err := r.db.QueryRow(ctx, query, id).Scan(&exists)
	return exists, err
}

func (r *countryRepo) SearchByName(ctx context.Context, name string) ([]*models.Country, error) {
	query := `
		SELECT id, name
		FROM countries
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var countries []*models.Country
	for rows.Next() {
		country := &models.Country{}
		if err := rows.Scan(&country.ID, &country.Name); err != nil {
			return nil, err
		}
		countries = append(countries, country)
	}
	return countries, rows.Err()
}

func (r *countryRepo) HasLocations(ctx context.Context, id int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM locations WHERE countries_id = $1)`
	err := r.db.QueryRow(ctx, query, id).Scan(&exists)
	return exists, err
}
