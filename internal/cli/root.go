// Package cli implements the linktag command line tool.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-linktags/pkg/config"
	"github.com/goliatone/go-linktags/pkg/interfaces/logger"
	"github.com/goliatone/go-linktags/pkg/linktags"
	"github.com/spf13/cobra"
)

// ErrInvalidLinks is returned by validate when at least one tag does not resolve.
var ErrInvalidLinks = errors.New("content has invalid links")

type options struct {
	fixture  string
	locale   string
	db       string
	logLevel string
}

type app struct {
	module  *linktags.Module
	fixture *Fixture
	ctx     context.Context
}

// NewRootCommand builds the linktag command tree writing to out and errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "linktag",
		Short:         "Resolve and validate link tags against a page fixture",
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.fixture, "fixture", "f", "", "YAML fixture with pages and tags")
	flags.StringVarP(&opts.locale, "locale", "l", "", "locale to resolve links in (defaults to localization.default_locale)")
	flags.StringVar(&opts.db, "db", "", "sqlite DSN; pages are stored in memory when empty")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newRenderCmd(opts),
		newValidateCmd(opts),
		newProvidersCmd(opts),
	)
	return root
}

// Execute runs the command tree with args.
func Execute(ctx context.Context, args []string, out, errOut io.Writer) error {
	root := NewRootCommand(out, errOut)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (o *options) open(cmd *cobra.Command, needFixture bool) (*app, error) {
	fixture := &Fixture{}
	if o.fixture != "" {
		loaded, err := LoadFixture(o.fixture)
		if err != nil {
			return nil, err
		}
		fixture = loaded
	} else if needFixture {
		return nil, errors.New("--fixture is required")
	}

	input := fixture.Config
	if input == nil {
		input = map[string]any{}
	}
	cfg, err := config.Load(input)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if o.db != "" {
		cfg.Storage = config.StorageConfig{Driver: config.StorageSQLite, DSN: o.db}
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if strings.TrimSpace(o.locale) == "" {
		o.locale = cfg.Localization.DefaultLocale
	}

	module, err := linktags.NewModule(linktags.ModuleOptions{
		Config: cfg,
		Logger: logger.NewWithWriter(cmd.ErrOrStderr(), logger.ParseLevel(cfg.Logging.Level)),
	})
	if err != nil {
		return nil, err
	}

	ctx := fixture.Context(cmd.Context())
	if err := fixture.Seed(ctx, module.Commands()); err != nil {
		_ = module.Close()
		return nil, err
	}
	return &app{module: module, fixture: fixture, ctx: ctx}, nil
}

func (a *app) Close() error {
	return a.module.Close()
}
