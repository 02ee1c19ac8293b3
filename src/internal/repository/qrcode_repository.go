package repository

import (
	"context"
	"database/sql"
	"errors"

	"load-tracking-service/src/internal/entity"
	"load-tracking-service/src/pkg/databases/postgres"
)

type QRCodeRepository struct {
	DB postgres.DBInterface
}

func NewQRCodeRepository(db postgres.DBInterface) *QRCodeRepository {
	return &QRCodeRepository{
		DB: db,
	}
}

func (r *QRCodeRepository) Insert(ctx context.Context, code *entity.QRCode) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO qr_codes (id, order_id, tracking_code, payload, image_url, expires_at, created_at)
		VALUES (:id, :order_id, :tracking_code, :payload, :image_url, :expires_at, :created_at)
	`
	_, err = db.NamedExecContext(ctx, query, code)
	return err
}

func (r *QRCodeRepository) UpdateImageURL(ctx context.Context, id, imageURL string) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `UPDATE qr_codes SET image_url = $2 WHERE id = $1`, id, imageURL)
	return err
}

func (r *QRCodeRepository) FindByOrderID(ctx context.Context, orderID string) (*entity.QRCode, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var code entity.QRCode
	err = db.GetContext(ctx, &code, `SELECT * FROM qr_codes WHERE order_id = $1`, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &code, nil
}

func (r *QRCodeRepository) Delete(ctx context.Context, id string) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `DELETE FROM qr_codes WHERE id = $1`, id)
	return err
}
