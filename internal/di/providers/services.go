package providers

import (
	"github.com/samber/do/v2"

	"github.com/stickervault/stickervault-server/internal/config"
	"github.com/stickervault/stickervault-server/internal/logger"
	"github.com/stickervault/stickervault-server/internal/ratelimit"
	"github.com/stickervault/stickervault-server/internal/service"
	"github.com/stickervault/stickervault-server/internal/storage"
)

// ProvideStickerService provides the sticker ingestion and read service.
func ProvideStickerService(i do.Injector) (*service.StickerService, error) {
	db := do.MustInvoke[*StoreHandle](i)
	backend := do.MustInvoke[storage.Backend](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewStickerService(db.Store, backend, log.Logger), nil
}

// ProvideSeriesService provides the series read service.
func ProvideSeriesService(i do.Injector) (*service.SeriesService, error) {
	db := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSeriesService(db.Store, log.Logger), nil
}

// ProvideUploadLimiter provides the fixed window limiter for uploads.
func ProvideUploadLimiter(i do.Injector) (*ratelimit.Limiter, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return ratelimit.New(cfg.Upload.RateLimitMax, cfg.Upload.RateLimitWindow), nil
}
