package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"pharmamart/internal/models"
)

type ItemStatusRepository interface {
	GetAll(ctx context.Context) ([]*models.ItemStatus, error)
	GetByID(ctx context.Context, id int) (*models.ItemStatus, error)
	Create(ctx context.Context, status *models.ItemStatus) error
	Update(ctx context.Context, status *models.ItemStatus) error
	Delete(ctx context.Context, id int) (bool, error)
	Exists(ctx context.Context, id int) (bool, error)
	StatusExists(ctx context.Context, status string, excludeID int) (bool, error)
	HasItems(ctx context.Context, id int) (bool, error)
}

type itemStatusRepo struct {
	db Database
}

func NewItemStatusRepository(db Database) ItemStatusRepository {
	return &itemStatusRepo{db: db}
}

func (r *itemStatusRepo) GetAll(ctx context.Context) ([]*models.ItemStatus, error) {
	query := `
		SELECT id, status
		FROM item_statuses
		ORDER BY status
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []*models.ItemStatus
	for rows.Next() {
		status := &models.ItemStatus{}
		if err := rows.Scan(&status.ID, &status.Status); err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, rows.Err()
}

func (r *itemStatusRepo) GetByID(ctx context.Context, id int) (*models.ItemStatus, error) {
	status := &models.ItemStatus{}
	query := `
		SELECT id, status
		FROM item_statuses
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&status.ID, &status.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return status, nil
}

func (r *itemStatusRepo) Create(ctx context.Context, status *models.ItemStatus) error {
	query := `
		INSERT INTO item_statuses (status)
		VALUES ($1)
		RETURNING id
	`
	return r.db.QueryRow(ctx, query, status.Status).Scan(&status.ID)
}

func (r *itemStatusRepo) Update(ctx context.Context, status *models.ItemStatus) error {
	query := `
		UPDATE item_statuses
		SET status = $1
		WHERE id = $2
	`
	_, err := r.db.Exec(ctx, query, status.Status, status.ID)
	return err
}

func (r *itemStatusRepo) Delete(ctx context.Context, id int) (bool, error) {
	query := `DELETE FROM item_statuses WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *itemStatusRepo) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM item_statuses WHERE id = $1)`
	err := r.db.QueryRow(ctx, query, id).Scan(&exists)
	return exists, err
}

// StatusExists checks for a duplicate status label, optionally excluding one
// row (pass 0 to exclude nothing).
func (r *itemStatusRepo) StatusExists(ctx context.Context, status string, excludeID int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM item_statuses WHERE LOWER(status) = LOWER($1) AND id <> $2)`
	err := r.db.QueryRow(ctx, query, status, excludeID).Scan(&exists)
	return exists, err
}

func (r *itemStatusRepo) HasItems(ctx context.Context, id int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM items WHERE item_statuses_id = $1)`
	err := r.db.QueryRow(ctx, query, id).Scan(&exists)
	return exists, err
}
