// Package di wires the application together with samber/do.
package di

import (
	"github.com/samber/do/v2"

	"github.com/stickervault/stickervault-server/internal/di/providers"
)

// NewContainer builds the dependency injection container.
func NewContainer() do.Injector {
	injector := do.New()

	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideStorageBackend)
	do.Provide(injector, providers.ProvideStickerService)
	do.Provide(injector, providers.ProvideSeriesService)
	do.Provide(injector, providers.ProvideUploadLimiter)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap eagerly initializes the long lived services.
func Bootstrap(injector do.Injector) error {
	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}
	return nil
}
