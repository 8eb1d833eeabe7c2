package options

import (
	"errors"
	"testing"
)

func TestResolverRequestOverridesSystem(t *testing.T) {
	resolver, err := NewResolver(
		SystemSnapshot(map[string]any{
			"scheme":      "http",
			"host":        "localhost",
			"environment": "prod",
			"absolute":    false,
		}),
		RequestSnapshot(map[string]any{
			"scheme": "https",
			"host":   "sulu.io",
		}),
	)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}

	scheme, trace, err := resolver.ResolveString("scheme")
	if err != nil {
		t.Fatalf("resolve scheme: %v", err)
	}
	if scheme != "https" {
		t.Fatalf("expected request scheme, got %s", scheme)
	}
	if trace.Path != "scheme" || len(trace.Layers) != 2 {
		t.Fatalf("unexpected trace %+v", trace)
	}
	if got := resolver.StringOr("environment", "dev"); got != "prod" {
		t.Fatalf("expected system environment, got %s", got)
	}
	if got := resolver.StringOr("webspace", "default"); got != "default" {
		t.Fatalf("expected fallback for missing key, got %s", got)
	}
	if resolver.BoolOr("absolute", true) {
		t.Fatalf("expected absolute false from system scope")
	}
}

func TestResolverWebspaceSitsBetweenScopes(t *testing.T) {
	resolver, err := NewResolver(
		RequestSnapshot(map[string]any{"host": "example.org"}),
		SystemSnapshot(map[string]any{"host": "localhost", "scheme": "http"}),
		WebspaceSnapshot(map[string]any{"host": "sulu.io", "scheme": "https"}),
	)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	if got := resolver.StringOr("host", ""); got != "example.org" {
		t.Fatalf("expected request host, got %s", got)
	}
	if got := resolver.StringOr("scheme", ""); got != "https" {
		t.Fatalf("expected webspace scheme, got %s", got)
	}
}

func TestResolverRequiresData(t *testing.T) {
	if _, err := NewResolver(SystemSnapshot(nil)); !errors.Is(err, ErrNoSnapshots) {
		t.Fatalf("expected ErrNoSnapshots, got %v", err)
	}
}
