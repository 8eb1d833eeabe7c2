package page

import (
	"context"
	"errors"
	"strings"

	i18n "github.com/goliatone/go-i18n"
	"github.com/goliatone/go-linktags/pkg/domain"
	"github.com/goliatone/go-linktags/pkg/interfaces/logger"
	"github.com/goliatone/go-linktags/pkg/interfaces/store"
	"github.com/goliatone/go-linktags/pkg/links"
)

// Translation keys used by Configuration.
const (
	TitleKey     = "links.page.title"
	EmptyTextKey = "links.page.empty"
)

const (
	resourceKey      = "pages"
	icon             = "su-document"
	defaultTitle     = "Pages"
	defaultEmptyText = "No page selected"
)

// ErrMissingRepository is returned when the provider has no content repository.
var ErrMissingRepository = errors.New("page: repository is required")

// Dependencies wires the collaborators of the page provider.
type Dependencies struct {
	Repository    store.PageRepository
	URLs          URLGenerator
	Access        AccessChecker
	Translator    i18n.Translator
	Fallbacks     i18n.FallbackResolver
	DefaultLocale string
	Defaults      URLContext
	Webspaces     map[string]WebspaceURLs
	Logger        logger.Logger
}

// Provider resolves page hrefs into link items.
type Provider struct {
	repo          store.PageRepository
	urls          URLGenerator
	access        AccessChecker
	translator    i18n.Translator
	fallbacks     i18n.FallbackResolver
	defaultLocale string
	defaults      URLContext
	webspaces     map[string]WebspaceURLs
	logger        logger.Logger
}

var (
	_ links.Provider     = (*Provider)(nil)
	_ links.Previewer    = (*Provider)(nil)
	_ links.Configurable = (*Provider)(nil)
)

// New builds a page provider.
func New(deps Dependencies) (*Provider, error) {
	if deps.Repository == nil {
		return nil, ErrMissingRepository
	}
	if deps.URLs == nil {
		deps.URLs = LocalePrefixGenerator{}
	}
	if deps.Access == nil {
		deps.Access = AllowAll{}
	}
	if deps.Logger == nil {
		deps.Logger = &logger.Nop{}
	}
	if strings.TrimSpace(deps.DefaultLocale) == "" {
		deps.DefaultLocale = "en"
	}
	return &Provider{
		repo:          deps.Repository,
		urls:          deps.URLs,
		access:        deps.Access,
		translator:    deps.Translator,
		fallbacks:     deps.Fallbacks,
		defaultLocale: deps.DefaultLocale,
		defaults:      deps.Defaults,
		webspaces:     deps.Webspaces,
		logger:        deps.Logger,
	}, nil
}

// MustNew is New that panics on error, for composition roots.
func MustNew(deps Dependencies) *Provider {
	p, err := New(deps)
	if err != nil {
		panic(err)
	}
	return p
}

// Preload loads every requested page translation with one repository call.
func (p *Provider) Preload(ctx context.Context, ids []string, locale string, published bool) (map[string]links.LinkItem, error) {
	out := make(map[string]links.LinkItem, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	pages, err := p.repo.FindByPageIDs(ctx, uniqueIDs(ids), locale, store.FindOptions{OnlyPublished: published})
	if err != nil {
		return nil, err
	}
	base, err := resolveURLContext(ctx, p.defaults)
	if err != nil {
		return nil, err
	}

	contexts := make(map[string]URLContext, 1)
	for _, pg := range pages {
		uc, ok := contexts[pg.Webspace]
		if !ok {
			if uc, err = p.urlContextFor(base, pg.Webspace); err != nil {
				return nil, err
			}
			contexts[pg.Webspace] = uc
		}
		item, ok, err := p.linkItem(ctx, pg, uc)
		if err != nil {
			return nil, err
		}
		if ok {
			out[item.ID] = item
		}
	}
	return out, nil
}

// Preview resolves one page regardless of its publication state.
func (p *Provider) Preview(ctx context.Context, id, locale string) (links.LinkItem, error) {
	items, err := p.Preload(ctx, []string{id}, locale, false)
	if err != nil {
		return links.LinkItem{}, err
	}
	item, ok := items[id]
	if !ok {
		return links.LinkItem{}, store.ErrNotFound
	}
	return item, nil
}

// Configuration returns the localized display metadata of the provider.
func (p *Provider) Configuration(locale string) links.ProviderConfiguration {
	return links.ProviderConfiguration{
		Title:       p.translate(locale, TitleKey, defaultTitle),
		ResourceKey: resourceKey,
		EmptyText:   p.translate(locale, EmptyTextKey, defaultEmptyText),
		Icon:        icon,
	}
}

func (p *Provider) urlContextFor(base URLContext, webspace string) (URLContext, error) {
	urls, ok := p.webspaces[webspace]
	if !ok || webspace == "" {
		base.Webspace = webspace
		return base, nil
	}
	return webspaceURLContext(base, webspace, urls)
}

func (p *Provider) linkItem(ctx context.Context, pg domain.Page, uc URLContext) (links.LinkItem, bool, error) {
	allowed, err := p.access.CanView(ctx, pg)
	if err != nil {
		return links.LinkItem{}, false, err
	}
	if !allowed {
		p.logger.Debug("page link hidden by access checker", logger.Field{Key: "page_id", Value: pg.PageID})
		return links.LinkItem{}, false, nil
	}
	url, err := p.urls.URL(ctx, pg, uc)
	if err != nil {
		return links.LinkItem{}, false, err
	}
	if url == "" {
		return links.LinkItem{}, false, nil
	}
	return links.LinkItem{
		ID:        pg.PageID,
		Title:     pg.Title,
		URL:       url,
		Published: pg.IsPublished(),
	}, true, nil
}

func (p *Provider) translate(locale, key, fallback string) string {
	if p.translator == nil {
		return fallback
	}
	for _, candidate := range p.localeChain(locale) {
		out, err := p.translator.Translate(candidate, key)
		if err == nil && out != "" && out != key {
			return out
		}
	}
	return fallback
}

func (p *Provider) localeChain(requested string) []string {
	chain := make([]string, 0, 4)
	appendUnique := func(locale string) {
		if locale == "" {
			return
		}
		for _, existing := range chain {
			if strings.EqualFold(existing, locale) {
				return
			}
		}
		chain = append(chain, locale)
	}

	appendUnique(requested)
	if p.fallbacks != nil {
		for _, fb := range p.fallbacks.Resolve(requested) {
			appendUnique(fb)
		}
	}
	appendUnique(p.defaultLocale)
	return chain
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
