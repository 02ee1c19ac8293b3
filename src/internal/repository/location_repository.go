package repository

import (
	"context"
	"time"

	"load-tracking-service/src/internal/entity"
	"load-tracking-service/src/pkg/databases/postgres"
)

type LocationRepository struct {
	DB postgres.DBInterface
}

func NewLocationRepository(db postgres.DBInterface) *LocationRepository {
	return &LocationRepository{
		DB: db,
	}
}

func (r *LocationRepository) Insert(ctx context.Context, update *entity.LocationUpdate) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO location_updates (id, order_id, driver_id, location, accuracy, speed, heading, battery, recorded_at)
		VALUES (:id, :order_id, :driver_id, :location, :accuracy, :speed, :heading, :battery, :recorded_at)
	`
	_, err = db.NamedExecContext(ctx, query, update)
	return err
}

func (r *LocationRepository) ListByOrder(ctx context.Context, orderID string, limit int) ([]entity.LocationUpdate, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var updates []entity.LocationUpdate
	query := `
		SELECT * FROM location_updates
		WHERE order_id = $1
		ORDER BY recorded_at DESC
		LIMIT $2
	`
	err = db.SelectContext(ctx, &updates, query, orderID, limit)
	if err != nil {
		return nil, err
	}

	return updates, nil
}

func (r *LocationRepository) UpdateDriverLastLocation(ctx context.Context, driverID, location string, at time.Time) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	query := `
		UPDATE users
		SET last_location = $2, last_location_update = $3, updated_at = NOW()
		WHERE user_id = $1
	`
	_, err = db.ExecContext(ctx, query, driverID, location, at)
	return err
}
