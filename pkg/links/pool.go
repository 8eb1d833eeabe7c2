package links

import (
	"sort"
	"strings"
)

// ProviderPool maps provider keys to providers. Register providers while
// composing the application; the pool is read without locking afterwards.
type ProviderPool struct {
	providers map[string]Provider
}

// PoolOption configures a pool at construction time.
type PoolOption func(*ProviderPool) error

// WithProvider registers provider under key.
func WithProvider(key string, provider Provider) PoolOption {
	return func(p *ProviderPool) error {
		return p.Register(key, provider)
	}
}

// NewProviderPool builds a pool from the supplied options.
func NewProviderPool(opts ...PoolOption) (*ProviderPool, error) {
	pool := &ProviderPool{providers: make(map[string]Provider)}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(pool); err != nil {
			return nil, err
		}
	}
	return pool, nil
}

// Register stores provider under key, replacing any previous registration.
func (p *ProviderPool) Register(key string, provider Provider) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrInvalidProviderKey
	}
	if provider == nil {
		return ErrNilProvider
	}
	if p.providers == nil {
		p.providers = make(map[string]Provider)
	}
	p.providers[key] = provider
	return nil
}

// Get returns the provider registered under key or an *UnknownProviderError.
func (p *ProviderPool) Get(key string) (Provider, error) {
	key = strings.TrimSpace(key)
	if p != nil {
		if provider, ok := p.providers[key]; ok {
			return provider, nil
		}
	}
	return nil, &UnknownProviderError{Key: key}
}

// Has reports whether key is registered.
func (p *ProviderPool) Has(key string) bool {
	_, err := p.Get(key)
	return err == nil
}

// Keys returns the registered keys sorted alphabetically.
func (p *ProviderPool) Keys() []string {
	if p == nil {
		return nil
	}
	keys := make([]string, 0, len(p.providers))
	for key := range p.providers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Configurations collects display metadata from every Configurable provider.
func (p *ProviderPool) Configurations(locale string) map[string]ProviderConfiguration {
	out := make(map[string]ProviderConfiguration)
	if p == nil {
		return out
	}
	for key, provider := range p.providers {
		if cfg, ok := provider.(Configurable); ok {
			out[key] = cfg.Configuration(locale)
		}
	}
	return out
}
