package commands

import (
	command "github.com/goliatone/go-command"
	internalcommands "github.com/goliatone/go-linktags/internal/commands"
	"github.com/goliatone/go-linktags/pkg/activity"
	"github.com/goliatone/go-linktags/pkg/interfaces/logger"
	"github.com/goliatone/go-linktags/pkg/interfaces/store"
	"github.com/goliatone/go-linktags/pkg/links"
)

// Re-export request types so consumers need not import internal packages.
type (
	Tag             = internalcommands.Tag
	SavePage        = internalcommands.SavePage
	PublishPage     = internalcommands.PublishPage
	UnpublishPage   = internalcommands.UnpublishPage
	ValidateContent = internalcommands.ValidateContent
)

// Occurrences converts tags into the engine input, preserving order.
func Occurrences(tags []Tag) *links.Occurrences {
	return internalcommands.Occurrences(tags)
}

// Registry exposes go-command compatible handlers backed by the module services.
type Registry struct {
	Catalog         *internalcommands.Catalog
	SavePage        command.Commander[SavePage]
	PublishPage     command.Commander[PublishPage]
	UnpublishPage   command.Commander[UnpublishPage]
	ValidateContent command.Commander[ValidateContent]
}

// Dependencies mirror the internal command dependencies but keep them public.
type Dependencies struct {
	Pages       store.PageRepository
	Transaction store.TransactionManager
	Engine      *links.Engine
	Logger      logger.Logger
	Activity    activity.Hooks
}

// New builds the registry using the provided dependencies.
func New(deps Dependencies) (*Registry, error) {
	internalDeps := internalcommands.Dependencies{
		Pages:       deps.Pages,
		Transaction: deps.Transaction,
		Logger:      deps.Logger,
		Activity:    deps.Activity,
	}
	if deps.Engine != nil {
		internalDeps.Links = deps.Engine
	}
	catalog, err := internalcommands.NewCatalog(internalDeps)
	if err != nil {
		return nil, err
	}
	return &Registry{
		Catalog:         catalog,
		SavePage:        catalog.SavePage,
		PublishPage:     catalog.PublishPage,
		UnpublishPage:   catalog.UnpublishPage,
		ValidateContent: catalog.ValidateContent,
	}, nil
}

// Commanders returns every handler so callers can register them with go-command registries.
func (r *Registry) Commanders() []any {
	if r == nil {
		return nil
	}
	return []any{
		r.SavePage,
		r.PublishPage,
		r.UnpublishPage,
		r.ValidateContent,
	}
}
