package di

import (
	"context"
	"reflect"

	i18n "github.com/goliatone/go-i18n"
	"github.com/goliatone/go-linktags/pkg/activity"
	"github.com/goliatone/go-linktags/pkg/commands"
	"github.com/goliatone/go-linktags/pkg/config"
	"github.com/goliatone/go-linktags/pkg/interfaces/logger"
	"github.com/goliatone/go-linktags/pkg/links"
	"github.com/goliatone/go-linktags/pkg/links/page"
	"github.com/goliatone/go-linktags/pkg/storage"
	"github.com/uptrace/bun"
)

// Options configure the DI container.
type Options struct {
	Config     config.Config
	Storage    storage.Providers
	Logger     logger.Logger
	Translator i18n.Translator
	Fallbacks  i18n.FallbackResolver
	// Providers are registered after the page provider, so a "page" entry
	// replaces it.
	Providers map[string]links.Provider
	URLs      page.URLGenerator
	Access    page.AccessChecker
	Activity  activity.Hooks
}

// Container wires repositories, providers, the engine, and commands.
type Container struct {
	Config   config.Config
	Storage  storage.Providers
	Pages    *page.Provider
	Pool     *links.ProviderPool
	Engine   *links.Engine
	Commands *commands.Registry

	db *bun.DB
}

func isZeroConfig(cfg config.Config) bool {
	return reflect.ValueOf(cfg).IsZero()
}

// New constructs the container using the supplied options.
func New(opts Options) (*Container, error) {
	cfg := opts.Config
	if isZeroConfig(cfg) {
		cfg = config.Defaults()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	lgr := opts.Logger
	if lgr == nil {
		lgr = &logger.Nop{}
	}

	var db *bun.DB
	providers := opts.Storage
	if providers.Pages == nil {
		switch cfg.Storage.Driver {
		case config.StorageSQLite:
			opened, err := storage.OpenSQLite(context.Background(), cfg.Storage.DSN)
			if err != nil {
				return nil, err
			}
			db = opened
			providers = storage.NewBunProviders(db)
		default:
			providers = storage.NewMemoryProviders()
		}
	}

	translator := opts.Translator
	if translator == nil {
		t, err := i18n.NewSimpleTranslator(
			i18n.NewStaticStore(page.Translations()),
			i18n.WithTranslatorDefaultLocale(cfg.Localization.DefaultLocale),
		)
		if err != nil {
			closeDB(db)
			return nil, err
		}
		translator = t
	}

	fallbacks := opts.Fallbacks
	if fallbacks == nil && len(cfg.Localization.Fallbacks) > 0 {
		resolver := i18n.NewStaticFallbackResolver()
		for locale, chain := range cfg.Localization.Fallbacks {
			resolver.Set(locale, chain...)
		}
		fallbacks = resolver
	}

	pageProvider, err := page.New(page.Dependencies{
		Repository:    providers.Pages,
		URLs:          opts.URLs,
		Access:        opts.Access,
		Translator:    translator,
		Fallbacks:     fallbacks,
		DefaultLocale: cfg.Localization.DefaultLocale,
		Defaults: page.URLContext{
			Environment: cfg.URLs.Environment,
			Scheme:      cfg.URLs.Scheme,
			Host:        cfg.URLs.Host,
			Absolute:    cfg.URLs.Absolute,
		},
		Webspaces: webspaceURLs(cfg.URLs.Webspaces),
		Logger:    lgr,
	})
	if err != nil {
		closeDB(db)
		return nil, err
	}

	poolOpts := []links.PoolOption{links.WithProvider(links.DefaultProviderKey, pageProvider)}
	for key, provider := range opts.Providers {
		poolOpts = append(poolOpts, links.WithProvider(key, provider))
	}
	pool, err := links.NewProviderPool(poolOpts...)
	if err != nil {
		closeDB(db)
		return nil, err
	}

	engine, err := links.New(links.Dependencies{
		Pool:                  pool,
		Logger:                lgr,
		DefaultProvider:       cfg.Links.DefaultProvider,
		MaxWorkers:            cfg.Links.MaxWorkers,
		ValidatePublishedOnly: cfg.Links.ValidatePublishedOnly,
	})
	if err != nil {
		closeDB(db)
		return nil, err
	}

	cmdRegistry, err := commands.New(commands.Dependencies{
		Pages:       providers.Pages,
		Transaction: providers.Transaction,
		Engine:      engine,
		Logger:      lgr,
		Activity:    opts.Activity,
	})
	if err != nil {
		closeDB(db)
		return nil, err
	}

	return &Container{
		Config:   cfg,
		Storage:  providers,
		Pages:    pageProvider,
		Pool:     pool,
		Engine:   engine,
		Commands: cmdRegistry,
		db:       db,
	}, nil
}

// Close releases the database opened by the container, if any. A DB passed
// in through Options.Storage is left to the caller.
func (c *Container) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

func closeDB(db *bun.DB) {
	if db != nil {
		_ = db.Close()
	}
}

func webspaceURLs(in map[string]config.WebspaceURLConfig) map[string]page.WebspaceURLs {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]page.WebspaceURLs, len(in))
	for name, ws := range in {
		out[name] = page.WebspaceURLs{Scheme: ws.Scheme, Hosts: ws.Hosts}
	}
	return out
}
