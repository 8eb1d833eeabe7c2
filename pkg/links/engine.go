package links

import (
	"context"
	"strings"
	"sync"

	"github.com/goliatone/go-linktags/pkg/interfaces/logger"
)

const defaultMaxWorkers = 4

// Dependencies groups the collaborators and knobs used by the Engine.
type Dependencies struct {
	Pool   *ProviderPool
	Logger logger.Logger
	// DefaultProvider is used for tags without a provider attribute.
	DefaultProvider string
	// MaxWorkers bounds how many provider groups preload concurrently.
	MaxWorkers int
	// ValidatePublishedOnly makes ValidateAll reject targets that exist but
	// are not published.
	ValidatePublishedOnly bool
}

// Engine rewrites link tags into anchors and validates their targets.
type Engine struct {
	pool                  *ProviderPool
	logger                logger.Logger
	defaultProvider       string
	maxWorkers            int
	validatePublishedOnly bool
}

// New builds an engine around the supplied pool.
func New(deps Dependencies) (*Engine, error) {
	if deps.Pool == nil {
		return nil, ErrMissingPool
	}
	if deps.Logger == nil {
		deps.Logger = &logger.Nop{}
	}
	deps.DefaultProvider = strings.TrimSpace(deps.DefaultProvider)
	if deps.DefaultProvider == "" {
		deps.DefaultProvider = DefaultProviderKey
	}
	if deps.MaxWorkers <= 0 {
		deps.MaxWorkers = defaultMaxWorkers
	}
	return &Engine{
		pool:                  deps.Pool,
		logger:                deps.Logger,
		defaultProvider:       deps.DefaultProvider,
		maxWorkers:            deps.MaxWorkers,
		validatePublishedOnly: deps.ValidatePublishedOnly,
	}, nil
}

// Pool returns the provider pool the engine resolves against.
func (e *Engine) Pool() *ProviderPool {
	return e.pool
}

// ParseAll returns the replacement for every occurrence, keyed by raw tag in
// input order. Resolved targets become anchors; unresolved targets degrade to
// the tag content, then its title, then the empty string.
func (e *Engine) ParseAll(ctx context.Context, occurrences *Occurrences, locale string) (*TagMap[string], error) {
	groups, err := e.resolve(ctx, occurrences, locale, true)
	if err != nil {
		return nil, err
	}

	out := NewTagMap[string](occurrences.Len())
	occurrences.Each(func(raw string, attrs Attributes) {
		item, ok := groups.lookup(attrs, e.defaultProvider)
		if !ok {
			out.Set(raw, degrade(attrs))
			return
		}
		out.Set(raw, renderAnchor(item, attrs))
	})
	return out, nil
}

// ValidateAll reports ValidationRemoved for every occurrence whose target does
// not resolve. Valid occurrences are left out of the result.
func (e *Engine) ValidateAll(ctx context.Context, occurrences *Occurrences, locale string) (*TagMap[ValidationResult], error) {
	groups, err := e.resolve(ctx, occurrences, locale, e.validatePublishedOnly)
	if err != nil {
		return nil, err
	}

	out := NewTagMap[ValidationResult](0)
	occurrences.Each(func(raw string, attrs Attributes) {
		if _, ok := groups.lookup(attrs, e.defaultProvider); !ok {
			out.Set(raw, ValidationRemoved)
		}
	})
	return out, nil
}

// Validate runs ValidateAll and returns a *ValidationError when any tag is invalid.
func (e *Engine) Validate(ctx context.Context, occurrences *Occurrences, locale string) error {
	results, err := e.ValidateAll(ctx, occurrences, locale)
	if err != nil {
		return err
	}
	if results.Len() == 0 {
		return nil
	}
	return &ValidationError{Results: results.Map()}
}

type providerGroup struct {
	key      string
	provider Provider
	ids      []string
	seen     map[string]struct{}
	items    map[string]LinkItem
}

type groupSet struct {
	order []*providerGroup
	byKey map[string]*providerGroup
}

func (s groupSet) lookup(attrs Attributes, defaultProvider string) (LinkItem, bool) {
	group, ok := s.byKey[attrs.Provider(defaultProvider)]
	if !ok {
		return LinkItem{}, false
	}
	item, ok := group.items[attrs.Href()]
	return item, ok
}

// resolve partitions occurrences by provider, looks every provider up before
// any lookup runs and preloads each group once.
func (e *Engine) resolve(ctx context.Context, occurrences *Occurrences, locale string, published bool) (groupSet, error) {
	set := groupSet{byKey: make(map[string]*providerGroup)}
	occurrences.Each(func(raw string, attrs Attributes) {
		key := attrs.Provider(e.defaultProvider)
		group, ok := set.byKey[key]
		if !ok {
			group = &providerGroup{key: key, seen: make(map[string]struct{})}
			set.byKey[key] = group
			set.order = append(set.order, group)
		}
		href := attrs.Href()
		if href == "" {
			return
		}
		if _, dup := group.seen[href]; dup {
			return
		}
		group.seen[href] = struct{}{}
		group.ids = append(group.ids, href)
	})

	for _, group := range set.order {
		provider, err := e.pool.Get(group.key)
		if err != nil {
			e.logger.Error("link tag provider not registered", logger.Field{Key: "provider", Value: group.key})
			return groupSet{}, err
		}
		group.provider = provider
	}

	if err := e.preload(ctx, set.order, locale, published); err != nil {
		return groupSet{}, err
	}
	return set, nil
}

func (e *Engine) preload(ctx context.Context, groups []*providerGroup, locale string, published bool) error {
	pending := make([]int, 0, len(groups))
	for i, group := range groups {
		if len(group.ids) == 0 {
			group.items = map[string]LinkItem{}
			continue
		}
		pending = append(pending, i)
	}
	if len(pending) == 0 {
		return nil
	}

	errs := make([]error, len(groups))
	jobs := make(chan int, len(pending))
	var wg sync.WaitGroup
	workerCount := min(e.maxWorkers, len(pending))

	for range workerCount {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				group := groups[idx]
				items, err := group.provider.Preload(ctx, group.ids, locale, published)
				if err != nil {
					errs[idx] = err
					continue
				}
				if items == nil {
					items = map[string]LinkItem{}
				}
				group.items = items
				e.logger.Debug("link tags preloaded",
					logger.Field{Key: "provider", Value: group.key},
					logger.Field{Key: "locale", Value: locale},
					logger.Field{Key: "published", Value: published},
					logger.Field{Key: "requested", Value: len(group.ids)},
					logger.Field{Key: "resolved", Value: len(items)},
				)
			}
		}()
	}

	for _, idx := range pending {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			e.logger.Warn("link tag preload failed",
				logger.Field{Key: "provider", Value: groups[i].key},
				logger.Field{Key: "error", Value: err},
			)
			return err
		}
	}
	return nil
}
