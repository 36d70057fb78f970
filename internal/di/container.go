// Package di provides dependency injection configuration for the QuickLib server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/quicklibapp/quicklib-server/internal/auth"
	"github.com/quicklibapp/quicklib-server/internal/config"
	"github.com/quicklibapp/quicklib-server/internal/di/providers"
	"github.com/quicklibapp/quicklib-server/internal/logger"
	"github.com/quicklibapp/quicklib-server/internal/service"
	"github.com/quicklibapp/quicklib-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideVerifier)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Business services
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideIdentityService)
	do.Provide(injector, providers.ProvideBookService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns once the server is running.
// This triggers lazy initialization of the whole graph.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*auth.Verifier](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)

	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*service.IdentityService](injector)
	_ = do.MustInvoke[*service.BookService](injector)

	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
