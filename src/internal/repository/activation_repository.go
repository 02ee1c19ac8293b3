package repository

import (
	"context"
	"database/sql"
	"errors"

	"load-tracking-service/src/internal/entity"
	"load-tracking-service/src/pkg/databases/postgres"

	"github.com/lib/pq"
)

// ErrDuplicateActivation maps the unique index on load_activations.order_id.
// The index closes the check-then-act window of a pure existence check.
var ErrDuplicateActivation = errors.New("order already has an activation")

const pqUniqueViolation = "23505"

type ActivationRepository struct {
	DB postgres.DBInterface
}

func NewActivationRepository(db postgres.DBInterface) *ActivationRepository {
	return &ActivationRepository{
		DB: db,
	}
}

func (r *ActivationRepository) Insert(ctx context.Context, activation *entity.LoadActivation) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO load_activations (id, order_id, driver_id, location, location_address, device_info, notes, activated_at)
		VALUES (:id, :order_id, :driver_id, :location, :location_address, :device_info, :notes, :activated_at)
	`
	_, err = db.NamedExecContext(ctx, query, activation)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return ErrDuplicateActivation
		}
		return err
	}
	return nil
}

func (r *ActivationRepository) FindByOrderID(ctx context.Context, orderID string) (*entity.LoadActivation, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var activation entity.LoadActivation
	err = db.GetContext(ctx, &activation, `SELECT * FROM load_activations WHERE order_id = $1`, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &activation, nil
}
