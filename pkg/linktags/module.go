package linktags

import (
	"context"

	i18n "github.com/goliatone/go-i18n"
	"github.com/goliatone/go-linktags/internal/di"
	"github.com/goliatone/go-linktags/pkg/activity"
	"github.com/goliatone/go-linktags/pkg/commands"
	"github.com/goliatone/go-linktags/pkg/config"
	"github.com/goliatone/go-linktags/pkg/interfaces/logger"
	"github.com/goliatone/go-linktags/pkg/links"
	"github.com/goliatone/go-linktags/pkg/links/page"
	"github.com/goliatone/go-linktags/pkg/storage"
)

// ModuleOptions configure the link tag module facade.
type ModuleOptions struct {
	Config     config.Config
	Storage    storage.Providers
	Logger     logger.Logger
	Translator i18n.Translator
	Fallbacks  i18n.FallbackResolver
	Providers  map[string]links.Provider
	URLs       page.URLGenerator
	Access     page.AccessChecker
	Activity   activity.Hooks
}

// Module bundles the container and exposes high-level accessors.
type Module struct {
	container *di.Container
}

// NewModule assembles storage, providers, the engine, and commands.
func NewModule(opts ModuleOptions) (*Module, error) {
	container, err := di.New(di.Options{
		Config:     opts.Config,
		Storage:    opts.Storage,
		Logger:     opts.Logger,
		Translator: opts.Translator,
		Fallbacks:  opts.Fallbacks,
		Providers:  opts.Providers,
		URLs:       opts.URLs,
		Access:     opts.Access,
		Activity:   opts.Activity,
	})
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// ParseAll replaces every link tag with its rendered anchor or fallback text.
func (m *Module) ParseAll(ctx context.Context, occurrences *links.Occurrences, locale string) (*links.TagMap[string], error) {
	return m.Engine().ParseAll(ctx, occurrences, locale)
}

// ValidateAll reports the link tags whose targets do not resolve.
func (m *Module) ValidateAll(ctx context.Context, occurrences *links.Occurrences, locale string) (*links.TagMap[links.ValidationResult], error) {
	return m.Engine().ValidateAll(ctx, occurrences, locale)
}

// Engine returns the link tag engine.
func (m *Module) Engine() *links.Engine {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Engine
}

// Pool returns the provider pool.
func (m *Module) Pool() *links.ProviderPool {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Pool
}

// Pages returns the page provider.
func (m *Module) Pages() *page.Provider {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Pages
}

// Commands returns the go-command registry.
func (m *Module) Commands() *commands.Registry {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Commands
}

// Config returns the effective module configuration.
func (m *Module) Config() config.Config {
	if m == nil || m.container == nil {
		return config.Config{}
	}
	return m.container.Config
}

// Close releases resources the module opened itself.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}

// Container returns the internal DI container.
// This is exposed for advanced use cases like direct storage access.
func (m *Module) Container() *di.Container {
	if m == nil {
		return nil
	}
	return m.container
}
