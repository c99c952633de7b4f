package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/stickervault/stickervault-server/internal/api"
	"github.com/stickervault/stickervault-server/internal/config"
	"github.com/stickervault/stickervault-server/internal/logger"
	"github.com/stickervault/stickervault-server/internal/ratelimit"
	"github.com/stickervault/stickervault-server/internal/service"
)

// HTTPServerHandle wraps the HTTP server with shutdown capability.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server and starts listening.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	stickerService := do.MustInvoke[*service.StickerService](i)
	seriesService := do.MustInvoke[*service.SeriesService](i)
	limiter := do.MustInvoke[*ratelimit.Limiter](i)

	srv := api.NewServer(cfg, stickerService, seriesService, limiter, log.Logger)
	httpServer := api.NewHTTPServer(cfg, srv)

	go func() {
		log.Info("HTTP server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("HTTP server error")
		}
	}()

	return &HTTPServerHandle{Server: httpServer}, nil
}
