package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"load-tracking-service/src/internal/entity"
	"load-tracking-service/src/pkg/databases/postgres"
)

type OrderRepository struct {
	DB postgres.DBInterface
}

func NewOrderRepository(db postgres.DBInterface) *OrderRepository {
	return &OrderRepository{
		DB: db,
	}
}

func (r *OrderRepository) Insert(ctx context.Context, order *entity.Order) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO orders (
			id, tenant_id, order_number, status, assigned_driver_id,
			qr_code_expires_at,
			loading_point_name, loading_point_address, loading_point,
			loading_window_start, loading_window_end,
			unloading_point_name, unloading_point_address, unloading_point,
			unloading_window_start, unloading_window_end,
			waypoints, created_at, updated_at
		) VALUES (
			:id, :tenant_id, :order_number, :status, :assigned_driver_id,
			:qr_code_expires_at,
			:loading_point_name, :loading_point_address, :loading_point,
			:loading_window_start, :loading_window_end,
			:unloading_point_name, :unloading_point_address, :unloading_point,
			:unloading_window_start, :unloading_window_end,
			:waypoints, :created_at, :updated_at
		)
	`

	_, err = db.NamedExecContext(ctx, query, order)
	return err
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var order entity.Order
	query := `SELECT * FROM orders WHERE id = $1`
	err = db.GetContext(ctx, &order, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// AssignDriver claims a pending order for a driver. The status guard makes
// concurrent first scans race safely: only one update reports ok.
func (r *OrderRepository) AssignDriver(ctx context.Context, orderID, driverID string) (bool, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return false, err
	}

	query := `
		UPDATE orders
		SET assigned_driver_id = $2, status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $4 AND assigned_driver_id IS NULL
	`
	result, err := db.ExecContext(ctx, query, orderID, driverID, entity.StatusAssigned, entity.StatusPending)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	return rows > 0, err
}

// UpdateStatus moves an order from one status to another, reporting whether
// the guarded update actually matched.
func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID string, from, to entity.OrderStatus) (bool, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return false, err
	}

	query := `
		UPDATE orders
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
	`
	result, err := db.ExecContext(ctx, query, orderID, from, to)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	return rows > 0, err
}

func (r *OrderRepository) UpdateQRBinding(ctx context.Context, orderID, qrCodeID, qrData, qrSignature string, expiresAt time.Time) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	query := `
		UPDATE orders
		SET qr_code_id = $2, qr_code_data = $3, qr_code_signature = $4,
		    qr_code_expires_at = $5, updated_at = NOW()
		WHERE id = $1
	`
	_, err = db.ExecContext(ctx, query, orderID, qrCodeID, qrData, qrSignature, expiresAt)
	return err
}

func (r *OrderRepository) UpdateLastLocation(ctx context.Context, orderID, location string, at time.Time) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	query := `
		UPDATE orders
		SET last_location = $2, last_location_update = $3, updated_at = NOW()
		WHERE id = $1
	`
	_, err = db.ExecContext(ctx, query, orderID, location, at)
	return err
}

func (r *OrderRepository) Delete(ctx context.Context, orderID string) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, orderID)
	return err
}
