package config

import (
	"load-tracking-service/src/pkg/signature"

	"github.com/spf13/viper"
)

// NewSigner reads the QR signing secret. The service refuses to start
// without one, an unset secret would make every signature unverifiable.
func NewSigner(v *viper.Viper) *signature.Signer {
	signer, err := signature.NewSigner(v.GetString("qr.secret"))
	if err != nil {
		panic(err)
	}
	return signer
}
