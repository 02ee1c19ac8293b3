package model

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

// QRPayload is the base64-encoded JSON document embedded in a QR image.
type QRPayload struct {
	OrderID   string `json:"orderId"`
	Timestamp int64  `json:"timestamp"`
	Signature string `json:"signature"`
}

var ErrMalformedQRPayload = errors.New("malformed qr code data")

func (p QRPayload) Encode() (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

func DecodeQRPayload(encoded string) (QRPayload, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return QRPayload{}, ErrMalformedQRPayload
	}
	var payload QRPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return QRPayload{}, ErrMalformedQRPayload
	}
	if payload.OrderID == "" || payload.Timestamp == 0 {
		return QRPayload{}, ErrMalformedQRPayload
	}
	return payload, nil
}

type CreateSignatureRequest struct {
	OrderID   string `json:"orderId" validate:"required"`
	Timestamp int64  `json:"timestamp" validate:"required"`
	TenantID  string `json:"tenantId"`
}

type CreateSignatureResponse struct {
	Signature string `json:"signature"`
}

type ValidateQRCodeRequest struct {
	QRCodeData string `json:"qrCodeData" validate:"required"`
}
