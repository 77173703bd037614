package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"pharmamart/internal/models"
)

type ItemRepository interface {
	GetAll(ctx context.Context) ([]*models.Item, error)
	GetAllByPharmacy(ctx context.Context, pharmacyID int) ([]*models.Item, error)
	GetByID(ctx context.Context, id int) (*models.Item, error)
	Create(ctx context.Context, item *models.Item) error
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, id int) (bool, error)
	Exists(ctx context.Context, id int) (bool, error)
	ItemNameExists(ctx context.Context, name string, excludeID int) (bool, error)
	SearchByName(ctx context.Context, name string) ([]*models.Item, error)
}

type itemRepo struct {
	db Database
}

func NewItemRepository(db Database) ItemRepository {
	return &itemRepo{db: db}
}

const itemColumns = `
		i.id, i.item_name, i.item_description, i.price, i.item_statuses_id, i.item_code,
		i.inserted_by, i.insert_date, i.expiry_date, i.updated_by, i.update_date,
		i.is_active, i.stock, i.pharmacies_id, s.status, p.pharmacy_name`

const itemFrom = `
		FROM items i
		JOIN item_statuses s ON s.id = i.item_statuses_id
		JOIN pharmacies p ON p.id = i.pharmacies_id`

func scanItems(rows pgx.Rows) ([]*models.Item, error) {
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item := &models.Item{}
		if err := rows.Scan(&item.ID, &item.ItemName, &item.ItemDescription, &item.Price,
			&item.ItemStatusesID, &item.ItemCode, &item.InsertedBy, &item.InsertDate,
			&item.ExpiryDate, &item.UpdatedBy, &item.UpdateDate, &item.IsActive,
			&item.Stock, &item.PharmaciesID, &item.Status, &item.PharmacyName); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *itemRepo) GetAll(ctx context.Context) ([]*models.Item, error) {
	query := `
		SELECT` + itemColumns + itemFrom + `
		ORDER BY i.item_name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return scanItems(rows)
}

func (r *itemRepo) GetAllByPharmacy(ctx context.Context, pharmacyID int) ([]*models.Item, error) {
	query := `
		SELECT` + itemColumns + itemFrom + `
		WHERE i.pharmacies_id = $1
		ORDER BY i.item_name
	`
	rows, err := r.db.Query(ctx, query, pharmacyID)
	if err != nil {
		return nil, err
	}
	return scanItems(rows)
}

func (r *itemRepo) GetByID(ctx context.Context, id int) (*models.Item, error) {
	item := &models.Item{}
	query := `
		SELECT` + itemColumns + itemFrom + `
		WHERE i.id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&item.ID, &item.ItemName, &item.ItemDescription,
		&item.Price, &item.ItemStatusesID, &item.ItemCode, &item.InsertedBy, &item.InsertDate,
		&item.ExpiryDate, &item.UpdatedBy, &item.UpdateDate, &item.IsActive,
		&item.Stock, &item.PharmaciesID, &item.Status, &item.PharmacyName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *itemRepo) Create(ctx context.Context, item *models.Item) error {
	query := `
		INSERT INTO items (item_name, item_description, price, item_statuses_id, item_code,
			inserted_by, insert_date, expiry_date, is_active, stock, pharmacies_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	return r.db.QueryRow(ctx, query, item.ItemName, item.ItemDescription, item.Price,
		item.ItemStatusesID, item.ItemCode, item.InsertedBy, item.InsertDate,
		item.ExpiryDate, item.IsActive, item.Stock, item.PharmaciesID).Scan(&item.ID)
}

// Update overwrites the mutable columns; inserted_by/insert_date are
// write-once audit fields and keep their original values.
func (r *itemRepo) Update(ctx context.Context, item *models.Item) error {
	query := `
		UPDATE items
		SET item_name = $1, item_description = $2, price = $3, item_statuses_id = $4,
			item_code = $5, expiry_date = $6, updated_by = $7, update_date = $8,
			is_active = $9, stock = $10, pharmacies_id = $11
		WHERE id = $12
	`
	now := time.Now().UTC()
	_, err := r.db.Exec(ctx, query, item.ItemName, item.ItemDescription, item.Price,
		item.ItemStatusesID, item.ItemCode, item.ExpiryDate, item.UpdatedBy, now,
		item.IsActive, item.Stock, item.PharmaciesID, item.ID)
	if err == nil {
		item.UpdateDate = &now
	}
	return err
}

func (r *itemRepo) Delete(ctx context.Context, id int) (bool, error) {
	query := `DELETE FROM items WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *itemRepo) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM items WHERE id = $1)`
	err := r.db.QueryRow(ctx, query, id).Scan(&exists)
	return exists, err
}

// ItemNameExists performs the case-insensitive duplicate check; excludeID
// makes the row being updated invisible to its own check (pass 0 on create).
func (r *itemRepo) ItemNameExists(ctx context.Context, name string, excludeID int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM items WHERE LOWER(item_name) = LOWER($1) AND id <> $2)`
	err := r.db.QueryRow(ctx, query, name, excludeID).Scan(&exists)
	return exists, err
}

func (r *itemRepo) SearchByName(ctx context.Context, name string) ([]*models.Item, error) {
	query := `
		SELECT` + itemColumns + itemFrom + `
		WHERE i.item_name ILIKE '%' || $1 || '%'
		ORDER BY i.item_name
	`
	rows, err := r.db.Query(ctx, query, name)
	if err != nil {
		return nil, err
	}
	return scanItems(rows)
}
