package commands

import (
	"context"
	"errors"
	"strings"
	"time"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-linktags/pkg/activity"
	"github.com/goliatone/go-linktags/pkg/domain"
	"github.com/goliatone/go-linktags/pkg/interfaces/logger"
	"github.com/goliatone/go-linktags/pkg/interfaces/store"
	"github.com/goliatone/go-linktags/pkg/links"
)

// Catalog exposes go-command compatible handlers for host transports.
type Catalog struct {
	SavePage        command.Commander[SavePage]
	PublishPage     command.Commander[PublishPage]
	UnpublishPage   command.Commander[UnpublishPage]
	ValidateContent command.Commander[ValidateContent]
}

type linkValidator interface {
	Validate(ctx context.Context, occurrences *links.Occurrences, locale string) error
}

// Dependencies wires repositories and the link engine into the command catalog.
type Dependencies struct {
	Pages       store.PageRepository
	Transaction store.TransactionManager
	Links       linkValidator
	Logger      logger.Logger
	Activity    activity.Hooks
	Now         func() time.Time
}

// NewCatalog builds the command catalog using the supplied dependencies.
func NewCatalog(deps Dependencies) (*Catalog, error) {
	if deps.Pages == nil {
		return nil, errors.New("commands: page repository is required")
	}
	if deps.Links == nil {
		return nil, errors.New("commands: link validator is required")
	}
	if deps.Transaction == nil {
		deps.Transaction = &store.NopTransactionManager{}
	}
	if deps.Logger == nil {
		deps.Logger = &logger.Nop{}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	return &Catalog{
		SavePage:        pageSaveCommand{repo: deps.Pages, tx: deps.Transaction, activity: deps.Activity},
		PublishPage:     pagePublishCommand{repo: deps.Pages, tx: deps.Transaction, links: deps.Links, logger: deps.Logger, activity: deps.Activity, now: deps.Now},
		UnpublishPage:   pageUnpublishCommand{repo: deps.Pages, activity: deps.Activity},
		ValidateContent: validateContentCommand{links: deps.Links, activity: deps.Activity},
	}, nil
}

// Tag is one link tag found in content, keyed by its raw markup.
type Tag struct {
	Raw        string            `json:"raw" yaml:"raw"`
	Attributes map[string]string `json:"attributes" yaml:"attributes"`
}

// Occurrences converts tags into the engine input, preserving order.
func Occurrences(tags []Tag) *links.Occurrences {
	out := links.NewTagMap[links.Attributes](len(tags))
	for _, tag := range tags {
		out.Set(tag.Raw, links.Attributes(tag.Attributes))
	}
	return out
}

// SavePage creates or updates one page translation.
type SavePage struct {
	PageID      string         `json:"page_id"`
	Locale      string         `json:"locale"`
	Webspace    string         `json:"webspace"`
	Title       string         `json:"title"`
	Path        string         `json:"path"`
	Permissions []string       `json:"permissions"`
	Metadata    map[string]any `json:"metadata"`
	AllowUpdate bool           `json:"allow_update"`
}

type pageSaveCommand struct {
	repo     store.PageRepository
	tx       store.TransactionManager
	activity activity.Hooks
}

func (c pageSaveCommand) Execute(ctx context.Context, msg SavePage) error {
	msg.PageID = strings.TrimSpace(msg.PageID)
	msg.Locale = strings.TrimSpace(msg.Locale)
	if msg.PageID == "" {
		return errors.New("commands: page id is required")
	}
	if msg.Locale == "" {
		return errors.New("commands: locale is required")
	}

	created := false
	err := c.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := c.repo.GetByPageID(ctx, msg.PageID, msg.Locale)
		if err == nil {
			if !msg.AllowUpdate {
				return errors.New("commands: page already exists")
			}
			existing.Webspace = msg.Webspace
			existing.Title = msg.Title
			existing.ResourceLocator = msg.Path
			existing.Permissions = domain.StringList(msg.Permissions)
			existing.Metadata = domain.JSONMap(msg.Metadata)
			return c.repo.Update(ctx, existing)
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		created = true
		return c.repo.Create(ctx, &domain.Page{
			PageID:          msg.PageID,
			Locale:          msg.Locale,
			Webspace:        msg.Webspace,
			Title:           msg.Title,
			ResourceLocator: msg.Path,
			WorkflowStage:   domain.WorkflowStageTest,
			Permissions:     domain.StringList(msg.Permissions),
			Metadata:        domain.JSONMap(msg.Metadata),
		})
	})
	if err != nil {
		return err
	}
	c.activity.Notify(ctx, pageEvent(ctx, activity.VerbPageSaved, msg.PageID, msg.Locale, map[string]any{
		"title":   msg.Title,
		"path":    msg.Path,
		"created": created,
	}))
	return nil
}

// PublishPage publishes a page translation once every link in its content
// resolves.
type PublishPage struct {
	PageID string `json:"page_id"`
	Locale string `json:"locale"`
	Links  []Tag  `json:"links"`
}

type pagePublishCommand struct {
	repo     store.PageRepository
	tx       store.TransactionManager
	links    linkValidator
	logger   logger.Logger
	activity activity.Hooks
	now      func() time.Time
}

func (c pagePublishCommand) Execute(ctx context.Context, msg PublishPage) error {
	if len(msg.Links) > 0 {
		if err := c.links.Validate(ctx, Occurrences(msg.Links), msg.Locale); err != nil {
			c.logger.Warn("page publish rejected",
				logger.Field{Key: "page_id", Value: msg.PageID},
				logger.Field{Key: "locale", Value: msg.Locale},
				logger.Field{Key: "error", Value: err},
			)
			c.activity.Notify(ctx, pageEvent(ctx, activity.VerbPublishRejected, msg.PageID, msg.Locale, map[string]any{
				"error": err.Error(),
			}))
			return err
		}
	}
	publishedAt := c.now()
	err := c.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		page, err := c.repo.GetByPageID(ctx, msg.PageID, msg.Locale)
		if err != nil {
			return err
		}
		page.Publish(publishedAt)
		return c.repo.Update(ctx, page)
	})
	if err != nil {
		return err
	}
	c.activity.Notify(ctx, pageEvent(ctx, activity.VerbPagePublished, msg.PageID, msg.Locale, map[string]any{
		"links": len(msg.Links),
	}))
	return nil
}

// UnpublishPage moves a page translation back to the test stage.
type UnpublishPage struct {
	PageID string `json:"page_id"`
	Locale string `json:"locale"`
}

type pageUnpublishCommand struct {
	repo     store.PageRepository
	activity activity.Hooks
}

func (c pageUnpublishCommand) Execute(ctx context.Context, msg UnpublishPage) error {
	page, err := c.repo.GetByPageID(ctx, msg.PageID, msg.Locale)
	if err != nil {
		return err
	}
	page.Unpublish()
	if err := c.repo.Update(ctx, page); err != nil {
		return err
	}
	c.activity.Notify(ctx, pageEvent(ctx, activity.VerbPageUnpublished, msg.PageID, msg.Locale, nil))
	return nil
}

// ValidateContent checks that every link tag of a content payload resolves.
// Invalid content yields a *links.ValidationError.
type ValidateContent struct {
	Locale string `json:"locale"`
	Tags   []Tag  `json:"tags"`
}

type validateContentCommand struct {
	links    linkValidator
	activity activity.Hooks
}

func (c validateContentCommand) Execute(ctx context.Context, msg ValidateContent) error {
	err := c.links.Validate(ctx, Occurrences(msg.Tags), msg.Locale)
	invalid := 0
	var verr *links.ValidationError
	if errors.As(err, &verr) {
		invalid = len(verr.Results)
	} else if err != nil {
		return err
	}
	c.activity.Notify(ctx, activity.Event{
		Verb:       activity.VerbContentValidated,
		ActorID:    activity.ActorFrom(ctx),
		ObjectType: "content",
		Locale:     msg.Locale,
		Metadata: map[string]any{
			"tags":    len(msg.Tags),
			"invalid": invalid,
		},
	})
	return err
}

func pageEvent(ctx context.Context, verb, pageID, locale string, metadata map[string]any) activity.Event {
	return activity.Event{
		Verb:       verb,
		ActorID:    activity.ActorFrom(ctx),
		ObjectType: "page",
		ObjectID:   pageID,
		Locale:     locale,
		Metadata:   metadata,
	}
}
