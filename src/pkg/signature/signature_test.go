package signature

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSignerRequiresSecret(t *testing.T) {
	_, err := NewSigner("")
	assert.ErrorIs(t, err, ErrMissingSecret)

	signer, err := NewSigner("test-secret")
	require.NoError(t, err)
	assert.NotNil(t, signer)
}

func TestSignVerifyRoundTrip(t *testing.T) {
	signer, err := NewSigner("test-secret")
	require.NoError(t, err)

	cases := []struct {
		orderID   string
		timestamp int64
	}{
		{"order-1", time.Now().Unix()},
		{"9b2e6c1a-5f7d-4a38-9f1e-0c3b2a1d4e5f", 1700000000},
		{"ORD-20260829-abc123", 0},
		{"", 42},
	}

	for _, tc := range cases {
		sig := signer.Sign(tc.orderID, tc.timestamp)
		assert.True(t, signer.Verify(tc.orderID, tc.timestamp, sig),
			"round trip must verify for %q", tc.orderID)
	}
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	signer, err := NewSigner("test-secret")
	require.NoError(t, err)

	sig := signer.Sign("order-1", 1700000000)

	for i := 0; i < len(sig); i++ {
		tampered := []byte(sig)
		tampered[i] ^= 0x01
		assert.False(t, signer.Verify("order-1", 1700000000, string(tampered)),
			"flipped byte %d must fail verification", i)
	}
}

func TestVerifyRejectsDifferentFields(t *testing.T) {
	signer, err := NewSigner("test-secret")
	require.NoError(t, err)

	sig := signer.Sign("order-1", 1700000000)
	assert.False(t, signer.Verify("order-2", 1700000000, sig))
	assert.False(t, signer.Verify("order-1", 1700000001, sig))
}

func TestSignersWithDifferentSecretsDisagree(t *testing.T) {
	a, err := NewSigner("secret-a")
	require.NoError(t, err)
	b, err := NewSigner("secret-b")
	require.NoError(t, err)

	sig := a.Sign("order-1", 1700000000)
	assert.False(t, b.Verify("order-1", 1700000000, sig))
}
