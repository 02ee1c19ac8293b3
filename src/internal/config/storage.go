package config

import (
	"load-tracking-service/src/internal/gateway/storage"
	"load-tracking-service/src/pkg/log"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/viper"
)

func NewObjectStorage(v *viper.Viper, logger log.Log) storage.ObjectStorage {
	client, err := minio.New(v.GetString("storage.endpoint"), &minio.Options{
		Creds: credentials.NewStaticV4(
			v.GetString("storage.access_key"),
			v.GetString("storage.secret_key"),
			"",
		),
		Secure: v.GetBool("storage.use_ssl"),
	})
	if err != nil {
		panic(err)
	}

	return storage.NewMinioStorage(
		client,
		v.GetString("storage.bucket"),
		v.GetString("storage.public_base_url"),
		logger,
	)
}
