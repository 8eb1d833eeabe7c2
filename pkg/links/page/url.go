package page

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-linktags/pkg/domain"
	"github.com/goliatone/go-linktags/pkg/options"
)

// URLContext describes where generated URLs will be used. Webspace is the
// webspace of the target page once the context has been resolved for it.
type URLContext struct {
	Environment string
	Webspace    string
	Scheme      string
	Host        string
	Absolute    bool
}

// WebspaceURLs lists the host a webspace is served from per environment.
type WebspaceURLs struct {
	Scheme string
	Hosts  map[string]string
}

// Host returns the host configured for environment.
func (w WebspaceURLs) Host(environment string) string {
	if host, ok := w.Hosts[environment]; ok {
		return host
	}
	for env, host := range w.Hosts {
		if strings.EqualFold(env, environment) {
			return host
		}
	}
	return ""
}

// URLGenerator turns a page translation into an address. An empty result
// means the page has no address and is left out of the preload result.
type URLGenerator interface {
	URL(ctx context.Context, page domain.Page, uc URLContext) (string, error)
}

// LocalePrefixGenerator prefixes the resource locator with the locale, e.g.
// /test in de becomes /de/test. Absolute URLs are built when the context asks
// for them and knows the host.
type LocalePrefixGenerator struct{}

func (LocalePrefixGenerator) URL(ctx context.Context, page domain.Page, uc URLContext) (string, error) {
	locator := strings.TrimSpace(page.ResourceLocator)
	if locator == "" {
		return "", nil
	}
	if !strings.HasPrefix(locator, "/") {
		locator = "/" + locator
	}
	path := "/" + page.Locale
	if locator != "/" {
		path += locator
	}
	if !uc.Absolute || uc.Host == "" {
		return path, nil
	}
	scheme := uc.Scheme
	if scheme == "" {
		scheme = "http"
	}
	return scheme + "://" + uc.Host + path, nil
}

// resolveURLContext layers request values from ctx over the configured defaults.
func resolveURLContext(ctx context.Context, defaults URLContext) (URLContext, error) {
	system := map[string]any{"absolute": defaults.Absolute}
	putString(system, "environment", defaults.Environment)
	putString(system, "scheme", defaults.Scheme)
	putString(system, "host", defaults.Host)

	request := map[string]any{}
	if req, ok := RequestFrom(ctx); ok {
		putString(request, "scheme", req.Scheme)
		putString(request, "host", req.Host)
	}

	resolver, err := options.NewResolver(options.SystemSnapshot(system), options.RequestSnapshot(request))
	if errors.Is(err, options.ErrNoSnapshots) {
		return defaults, nil
	}
	if err != nil {
		return URLContext{}, err
	}
	return URLContext{
		Environment: resolver.StringOr("environment", defaults.Environment),
		Scheme:      resolver.StringOr("scheme", defaults.Scheme),
		Host:        resolver.StringOr("host", defaults.Host),
		Absolute:    resolver.BoolOr("absolute", defaults.Absolute),
	}, nil
}

// webspaceURLContext layers the target webspace's host for the current
// environment over the request context. Links into a webspace served from
// another host become absolute.
func webspaceURLContext(base URLContext, webspace string, urls WebspaceURLs) (URLContext, error) {
	uc := base
	uc.Webspace = webspace

	layer := map[string]any{}
	putString(layer, "scheme", urls.Scheme)
	putString(layer, "host", urls.Host(base.Environment))
	if len(layer) == 0 {
		return uc, nil
	}

	system := map[string]any{}
	putString(system, "scheme", base.Scheme)
	putString(system, "host", base.Host)
	resolver, err := options.NewResolver(options.SystemSnapshot(system), options.WebspaceSnapshot(layer))
	if err != nil {
		return URLContext{}, err
	}
	uc.Scheme = resolver.StringOr("scheme", base.Scheme)
	uc.Host = resolver.StringOr("host", base.Host)
	if base.Host != "" && !strings.EqualFold(uc.Host, base.Host) {
		uc.Absolute = true
	}
	return uc, nil
}

func putString(m map[string]any, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		m[key] = value
	}
}
