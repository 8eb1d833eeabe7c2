package links

import (
	"context"
	"strings"
)

// DefaultProviderKey is used for tags without a provider attribute.
const DefaultProviderKey = "page"

// Recognised tag attribute keys.
const (
	AttrHref     = "href"
	AttrProvider = "provider"
	AttrTitle    = "title"
	AttrContent  = "content"
	AttrTarget   = "target"
)

// LinkItem describes a resolved link target. Providers only build items for
// targets that exist in the requested locale and are visible to the caller.
type LinkItem struct {
	ID        string
	Title     string
	URL       string
	Published bool
}

// Provider batch-resolves identifiers of one target kind.
type Provider interface {
	// Preload returns the subset of ids that resolve in locale. When published
	// is true, unpublished targets are left out. Missing targets are omitted
	// rather than reported as errors.
	Preload(ctx context.Context, ids []string, locale string, published bool) (map[string]LinkItem, error)
}

// Previewer resolves a single target without the published filter.
type Previewer interface {
	Preview(ctx context.Context, id, locale string) (LinkItem, error)
}

// ProviderConfiguration carries display metadata for a provider.
type ProviderConfiguration struct {
	Title       string
	ResourceKey string
	EmptyText   string
	Icon        string
}

// Configurable providers expose localized display metadata.
type Configurable interface {
	Configuration(locale string) ProviderConfiguration
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, ids []string, locale string, published bool) (map[string]LinkItem, error)

// Preload calls f.
func (f ProviderFunc) Preload(ctx context.Context, ids []string, locale string, published bool) (map[string]LinkItem, error) {
	return f(ctx, ids, locale, published)
}

// NopProvider resolves nothing, so every tag routed to it degrades.
type NopProvider struct{}

var _ Provider = (*NopProvider)(nil)

// Preload returns an empty result.
func (NopProvider) Preload(ctx context.Context, ids []string, locale string, published bool) (map[string]LinkItem, error) {
	return map[string]LinkItem{}, nil
}

// Attributes holds the parsed attributes of one tag occurrence.
// Empty values are treated as absent.
type Attributes map[string]string

func (a Attributes) get(key string) string {
	if a == nil {
		return ""
	}
	return a[key]
}

// Href returns the target identifier.
func (a Attributes) Href() string { return a.get(AttrHref) }

// Title returns the title override.
func (a Attributes) Title() string { return a.get(AttrTitle) }

// Content returns the inner text of the tag.
func (a Attributes) Content() string { return a.get(AttrContent) }

// Target returns the link target window.
func (a Attributes) Target() string { return a.get(AttrTarget) }

// Provider returns the provider key, or def when none is set.
func (a Attributes) Provider(def string) string {
	if key := strings.TrimSpace(a.get(AttrProvider)); key != "" {
		return key
	}
	return def
}

// ValidationResult explains why a tag failed validation.
type ValidationResult string

const (
	// ValidationRemoved marks a tag whose target no longer resolves.
	ValidationRemoved ValidationResult = "removed"
)

// Occurrences is the ordered input of ParseAll and ValidateAll.
type Occurrences = TagMap[Attributes]
