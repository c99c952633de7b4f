package providers

import (
	"context"
	"fmt"

	"github.com/samber/do/v2"

	"github.com/stickervault/stickervault-server/internal/config"
	"github.com/stickervault/stickervault-server/internal/logger"
	"github.com/stickervault/stickervault-server/internal/storage"
)

// ProvideStorageBackend provides the image storage backend.
func ProvideStorageBackend(i do.Injector) (storage.Backend, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	switch cfg.Storage.Backend {
	case config.BackendLocal:
		backend, err := storage.NewLocal(cfg.Storage.LocalPath)
		if err != nil {
			return nil, err
		}
		log.Info("Local storage initialized", "path", cfg.Storage.LocalPath)
		return backend, nil

	case config.BackendS3:
		s3cfg := storage.S3Config{
			Endpoint:      cfg.Storage.S3Endpoint,
			Region:        cfg.Storage.S3Region,
			Bucket:        cfg.Storage.S3Bucket,
			AccessKey:     cfg.Storage.S3AccessKey,
			SecretKey:     cfg.Storage.S3SecretKey,
			PublicBaseURL: cfg.Server.PublicBaseURL,
		}
		client, err := storage.NewS3Client(context.Background(), s3cfg)
		if err != nil {
			return nil, err
		}
		log.Info("S3 storage initialized", "bucket", cfg.Storage.S3Bucket, "endpoint", cfg.Storage.S3Endpoint)
		return storage.NewS3(client, s3cfg), nil

	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}
