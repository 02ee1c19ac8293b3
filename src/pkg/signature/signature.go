package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
)

// Signer produces and checks HMAC-SHA256 signatures for QR payloads.
// The canonical string is "orderID:timestamp"; signatures are encoded as
// unpadded base64url. Sign and verify always use the same scheme.
type Signer struct {
	secret []byte
}

var ErrMissingSecret = errors.New("signature secret is not configured")

func NewSigner(secret string) (*Signer, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &Signer{secret: []byte(secret)}, nil
}

func (s *Signer) Sign(orderID string, timestamp int64) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s:%d", orderID, timestamp)
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (s *Signer) Verify(orderID string, timestamp int64, sig string) bool {
	expected := s.Sign(orderID, timestamp)
	return hmac.Equal([]byte(expected), []byte(sig))
}
