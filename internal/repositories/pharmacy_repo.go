package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"pharmamart/internal/models"
)

type PharmacyRepository interface {
	GetAll(ctx context.Context) ([]*models.Pharmacy, error)
	GetByID(ctx context.Context, id int) (*models.Pharmacy, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Pharmacy, error)
	GetByUserName(ctx context.Context, userName string) (*models.Pharmacy, error)
	Create(ctx context.Context, pharmacy *models.Pharmacy) error
	Update(ctx context.Context, pharmacy *models.Pharmacy) error
	Delete(ctx context.Context, id int) (bool, error)
	Exists(ctx context.Context, id int) (bool, error)
	HasItems(ctx context.Context, id int) (bool, error)
}

type pharmacyRepo struct {
	db Database
}

func NewPharmacyRepository(db Database) PharmacyRepository {
	return &pharmacyRepo{db: db}
}

const pharmacyColumns = `
		p.id, p.pharmacy_name, p.user_name, p.password, p.latitude, p.longitude,
		p.is_active, p.user_id, p.account_number, p.locations_id, p.created_at, p.updated_at,
		COALESCE(l.city, ''), COALESCE(u.full_name, '')`

const pharmacyFrom = `
		FROM pharmacies p
		LEFT JOIN locations l ON l.id = p.locations_id
		LEFT JOIN users u ON u.id = p.user_id`

func scanPharmacy(row pgx.Row) (*models.Pharmacy, error) {
	pharmacy := &models.Pharmacy{}
	err := row.Scan(&pharmacy.ID, &pharmacy.PharmacyName, &pharmacy.UserName, &pharmacy.Password,
		&pharmacy.Latitude, &pharmacy.Longitude, &pharmacy.IsActive, &pharmacy.UserID,
		&pharmacy.AccountNumber, &pharmacy.LocationsID, &pharmacy.CreatedAt, &pharmacy.UpdatedAt,
		&pharmacy.LocationCity, &pharmacy.OwnerName)
	if err != nil {
		return nil, err
	}
	return pharmacy, nil
}

func (r *pharmacyRepo) GetAll(ctx context.Context) ([]*models.Pharmacy, error) {
	query := `
		SELECT` + pharmacyColumns + pharmacyFrom + `
		ORDER BY p.created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pharmacies []*models.Pharmacy
	for rows.Next() {
		pharmacy, err := scanPharmacy(rows)
		if err != nil {
			return nil, err
		}
		pharmacies = append(pharmacies, pharmacy)
	}
	return pharmacies, rows.Err()
}

func (r *pharmacyRepo) GetByID(ctx context.Context, id int) (*models.Pharmacy, error) {
	query := `
		SELECT` + pharmacyColumns + pharmacyFrom + `
		WHERE p.id = $1
	`
	pharmacy, err := scanPharmacy(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return pharmacy, err
}

func (r *pharmacyRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Pharmacy, error) {
	query := `
		SELECT` + pharmacyColumns + pharmacyFrom + `
		WHERE p.user_id = $1
		ORDER BY p.created_at
		LIMIT 1
	`
	pharmacy, err := scanPharmacy(r.db.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return pharmacy, err
}

func (r *pharmacyRepo) GetByUserName(ctx context.Context, userName string) (*models.Pharmacy, error) {
	query := `
		SELECT` + pharmacyColumns + pharmacyFrom + `
		WHERE LOWER(p.user_name) = LOWER($1)
	`
	pharmacy, err := scanPharmacy(r.db.QueryRow(ctx, query, userName))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return pharmacy, err
}

func (r *pharmacyRepo) Create(ctx context.Context, pharmacy *models.Pharmacy) error {
	query := `
		INSERT INTO pharmacies (pharmacy_name, user_name, password, latitude, longitude,
			is_active, user_id, account_number, locations_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	return r.db.QueryRow(ctx, query, pharmacy.PharmacyName, pharmacy.UserName, pharmacy.Password,
		pharmacy.Latitude, pharmacy.Longitude, pharmacy.IsActive, pharmacy.UserID,
		pharmacy.AccountNumber, pharmacy.LocationsID, pharmacy.CreatedAt).Scan(&pharmacy.ID)
}

// Update overwrites the mutable columns only; user_id and created_at are not
// touched after the row exists.
func (r *pharmacyRepo) Update(ctx context.Context, pharmacy *models.Pharmacy) error {
	query := `
		UPDATE pharmacies
		SET pharmacy_name = $1, user_name = $2, password = $3, latitude = $4, longitude = $5,
			is_active = $6, account_number = $7, locations_id = $8, updated_at = $9
		WHERE id = $10
	`
	now := time.Now().UTC()
	_, err := r.db.Exec(ctx, query, pharmacy.PharmacyName, pharmacy.UserName, pharmacy.Password,
		pharmacy.Latitude, pharmacy.Longitude, pharmacy.IsActive, pharmacy.AccountNumber,
		pharmacy.LocationsID, now, pharmacy.ID)
	if err == nil {
		pharmacy.UpdatedAt = &now
	}
	return err
}

func (r *pharmacyRepo) Delete(ctx context.Context, id int) (bool, error) {
	query := `DELETE FROM pharmacies WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *pharmacyRepo) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM pharmacies WHERE id = $1)`
	err := r.db.QueryRow(ctx, query, id).Scan(&exists)
	return exists, err
}

func (r *pharmacyRepo) HasItems(ctx context.Context, id int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM items WHERE pharmacies_id = $1)`
	err := r.db.QueryRow(ctx, query, id).Scan(&exists)
	return exists, err
}
