package page

import (
	"context"
	"errors"
	"testing"
	"time"

	i18n "github.com/goliatone/go-i18n"
	"github.com/goliatone/go-linktags/internal/storage/memory"
	"github.com/goliatone/go-linktags/pkg/domain"
	"github.com/goliatone/go-linktags/pkg/interfaces/store"
)

type countingRepo struct {
	store.PageRepository
	calls int
	ids   [][]string
	err   error
}

func (c *countingRepo) FindByPageIDs(ctx context.Context, ids []string, locale string, opts store.FindOptions) ([]domain.Page, error) {
	c.calls++
	c.ids = append(c.ids, append([]string(nil), ids...))
	if c.err != nil {
		return nil, c.err
	}
	return c.PageRepository.FindByPageIDs(ctx, ids, locale, opts)
}

func seededRepo(t *testing.T) *countingRepo {
	t.Helper()
	repo := memory.NewPageRepository()
	now := time.Now().UTC()
	pages := []domain.Page{
		{PageID: "123-123-123", Locale: "de", Title: "Pagetitle", ResourceLocator: "/test", WorkflowStage: domain.WorkflowStagePublished, PublishedAt: now},
		{PageID: "123-123-123", Locale: "en", Title: "Page", ResourceLocator: "/test", WorkflowStage: domain.WorkflowStagePublished, PublishedAt: now},
		{PageID: "312-312-312", Locale: "de", Title: "Draft", ResourceLocator: "/draft", WorkflowStage: domain.WorkflowStageTest},
		{PageID: "root", Locale: "de", Title: "Home", ResourceLocator: "/", WorkflowStage: domain.WorkflowStagePublished, PublishedAt: now},
		{PageID: "no-url", Locale: "de", Title: "Folder", WorkflowStage: domain.WorkflowStagePublished, PublishedAt: now},
		{PageID: "secret", Locale: "de", Title: "Members", ResourceLocator: "/members", WorkflowStage: domain.WorkflowStagePublished, PublishedAt: now, Permissions: domain.StringList{"member"}},
	}
	for i := range pages {
		if err := repo.Create(context.Background(), &pages[i]); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return &countingRepo{PageRepository: repo}
}

func TestProviderPreloadUsesSingleLookup(t *testing.T) {
	repo := seededRepo(t)
	provider := MustNew(Dependencies{Repository: repo})

	items, err := provider.Preload(context.Background(), []string{"123-123-123", "312-312-312", "123-123-123", "missing"}, "de", true)
	if err != nil {
		t.Fatalf("preload: %v", err)
	}
	if repo.calls != 1 {
		t.Fatalf("expected one repository call, got %d", repo.calls)
	}
	if len(repo.ids[0]) != 3 {
		t.Fatalf("expected distinct ids, got %v", repo.ids[0])
	}
	if len(items) != 1 {
		t.Fatalf("expected only the published page, got %+v", items)
	}
	item := items["123-123-123"]
	if item.Title != "Pagetitle" || item.URL != "/de/test" || !item.Published {
		t.Fatalf("unexpected item %+v", item)
	}
}

func TestProviderPreloadIncludesDraftsWhenNotPublished(t *testing.T) {
	provider := MustNew(Dependencies{Repository: seededRepo(t)})

	items, err := provider.Preload(context.Background(), []string{"123-123-123", "312-312-312"}, "de", false)
	if err != nil {
		t.Fatalf("preload: %v", err)
	}
	draft, ok := items["312-312-312"]
	if !ok || draft.Published || draft.URL != "/de/draft" {
		t.Fatalf("expected unpublished draft item, got %+v", items)
	}
}

func TestProviderPreloadLocaleAndRoot(t *testing.T) {
	provider := MustNew(Dependencies{Repository: seededRepo(t)})
	ctx := context.Background()

	items, err := provider.Preload(ctx, []string{"123-123-123"}, "en", true)
	if err != nil {
		t.Fatalf("preload: %v", err)
	}
	if items["123-123-123"].URL != "/en/test" || items["123-123-123"].Title != "Page" {
		t.Fatalf("unexpected en item %+v", items["123-123-123"])
	}

	items, err = provider.Preload(ctx, []string{"root", "no-url"}, "de", true)
	if err != nil {
		t.Fatalf("preload: %v", err)
	}
	if items["root"].URL != "/de" {
		t.Fatalf("expected locale root url, got %q", items["root"].URL)
	}
	if _, ok := items["no-url"]; ok {
		t.Fatalf("expected page without locator to be skipped")
	}
}

func TestProviderPreloadEmptyIDs(t *testing.T) {
	repo := seededRepo(t)
	provider := MustNew(Dependencies{Repository: repo})

	items, err := provider.Preload(context.Background(), nil, "de", true)
	if err != nil || len(items) != 0 {
		t.Fatalf("expected empty result, got %+v %v", items, err)
	}
	if repo.calls != 0 {
		t.Fatalf("expected no repository call")
	}
}

func TestProviderPreloadPropagatesErrors(t *testing.T) {
	boom := errors.New("database down")
	repo := seededRepo(t)
	repo.err = boom
	provider := MustNew(Dependencies{Repository: repo})

	if _, err := provider.Preload(context.Background(), []string{"a"}, "de", true); !errors.Is(err, boom) {
		t.Fatalf("expected repository error, got %v", err)
	}
}

func TestProviderAccessChecker(t *testing.T) {
	provider := MustNew(Dependencies{Repository: seededRepo(t), Access: RoleAccessChecker{}})

	items, err := provider.Preload(context.Background(), []string{"secret", "123-123-123"}, "de", true)
	if err != nil {
		t.Fatalf("preload: %v", err)
	}
	if _, ok := items["secret"]; ok {
		t.Fatalf("expected protected page to be hidden")
	}

	ctx := WithRoles(context.Background(), "MEMBER")
	items, err = provider.Preload(ctx, []string{"secret"}, "de", true)
	if err != nil {
		t.Fatalf("preload: %v", err)
	}
	if items["secret"].URL != "/de/members" {
		t.Fatalf("expected member to see page, got %+v", items)
	}
}

func TestProviderAbsoluteURLs(t *testing.T) {
	provider := MustNew(Dependencies{
		Repository: seededRepo(t),
		Defaults:   URLContext{Environment: "prod", Scheme: "https", Host: "sulu.io", Absolute: true},
	})

	items, err := provider.Preload(context.Background(), []string{"123-123-123"}, "de", true)
	if err != nil {
		t.Fatalf("preload: %v", err)
	}
	if got := items["123-123-123"].URL; got != "https://sulu.io/de/test" {
		t.Fatalf("unexpected url %q", got)
	}

	ctx := WithRequest(context.Background(), Request{Host: "preview.sulu.io", Scheme: "http"})
	items, err = provider.Preload(ctx, []string{"123-123-123"}, "de", true)
	if err != nil {
		t.Fatalf("preload: %v", err)
	}
	if got := items["123-123-123"].URL; got != "http://preview.sulu.io/de/test" {
		t.Fatalf("expected request host to win, got %q", got)
	}
}

func TestProviderWebspaceURLs(t *testing.T) {
	repo := memory.NewPageRepository()
	now := time.Now().UTC()
	for _, pg := range []domain.Page{
		{PageID: "about", Locale: "de", Webspace: "sulu_io", Title: "About", ResourceLocator: "/about", WorkflowStage: domain.WorkflowStagePublished, PublishedAt: now},
		{PageID: "post", Locale: "de", Webspace: "blog", Title: "Post", ResourceLocator: "/post", WorkflowStage: domain.WorkflowStagePublished, PublishedAt: now},
		{PageID: "legacy", Locale: "de", Webspace: "archive", Title: "Legacy", ResourceLocator: "/legacy", WorkflowStage: domain.WorkflowStagePublished, PublishedAt: now},
	} {
		if err := repo.Create(context.Background(), &pg); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	webspaces := map[string]WebspaceURLs{
		"sulu_io": {Hosts: map[string]string{"prod": "sulu.io", "dev": "sulu.lo"}},
		"blog":    {Scheme: "https", Hosts: map[string]string{"prod": "blog.sulu.io", "dev": "blog.sulu.lo"}},
	}
	ids := []string{"about", "post", "legacy"}

	cases := []struct {
		name     string
		defaults URLContext
		want     map[string]string
	}{
		{
			name:     "prod",
			defaults: URLContext{Environment: "prod", Scheme: "http", Host: "sulu.io"},
			want:     map[string]string{"about": "/de/about", "post": "https://blog.sulu.io/de/post", "legacy": "/de/legacy"},
		},
		{
			name:     "dev",
			defaults: URLContext{Environment: "dev", Scheme: "http", Host: "sulu.lo"},
			want:     map[string]string{"about": "/de/about", "post": "https://blog.sulu.lo/de/post", "legacy": "/de/legacy"},
		},
		{
			name:     "unknown host stays relative",
			defaults: URLContext{Environment: "prod"},
			want:     map[string]string{"about": "/de/about", "post": "/de/post", "legacy": "/de/legacy"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := MustNew(Dependencies{Repository: repo, Defaults: tc.defaults, Webspaces: webspaces})
			items, err := provider.Preload(context.Background(), ids, "de", true)
			if err != nil {
				t.Fatalf("preload: %v", err)
			}
			for id, want := range tc.want {
				if got := items[id].URL; got != want {
					t.Fatalf("%s: expected %q, got %q", id, want, got)
				}
			}
		})
	}
}

func TestURLGeneratorSeesWebspace(t *testing.T) {
	repo := memory.NewPageRepository()
	pg := domain.Page{PageID: "post", Locale: "de", Webspace: "blog", ResourceLocator: "/post"}
	if err := repo.Create(context.Background(), &pg); err != nil {
		t.Fatalf("seed: %v", err)
	}
	var seen URLContext
	provider := MustNew(Dependencies{
		Repository: repo,
		Defaults:   URLContext{Environment: "stage", Host: "sulu.io"},
		Webspaces:  map[string]WebspaceURLs{"blog": {Hosts: map[string]string{"Stage": "blog.stage.sulu.io"}}},
		URLs: urlFunc(func(_ context.Context, _ domain.Page, uc URLContext) (string, error) {
			seen = uc
			return "/x", nil
		}),
	})
	if _, err := provider.Preload(context.Background(), []string{"post"}, "de", false); err != nil {
		t.Fatalf("preload: %v", err)
	}
	if seen.Webspace != "blog" || seen.Environment != "stage" || seen.Host != "blog.stage.sulu.io" || !seen.Absolute {
		t.Fatalf("unexpected url context %+v", seen)
	}
}

type urlFunc func(context.Context, domain.Page, URLContext) (string, error)

func (f urlFunc) URL(ctx context.Context, page domain.Page, uc URLContext) (string, error) {
	return f(ctx, page, uc)
}

func TestProviderPreview(t *testing.T) {
	provider := MustNew(Dependencies{Repository: seededRepo(t)})

	item, err := provider.Preview(context.Background(), "312-312-312", "de")
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if item.Title != "Draft" || item.Published {
		t.Fatalf("unexpected preview %+v", item)
	}
	if _, err := provider.Preview(context.Background(), "missing", "de"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestProviderConfiguration(t *testing.T) {
	translator, err := i18n.NewSimpleTranslator(i18n.NewStaticStore(Translations()), i18n.WithTranslatorDefaultLocale("en"))
	if err != nil {
		t.Fatalf("translator: %v", err)
	}
	fallbacks := i18n.NewStaticFallbackResolver()
	fallbacks.Set("de-at", "de")

	provider := MustNew(Dependencies{
		Repository: seededRepo(t),
		Translator: translator,
		Fallbacks:  fallbacks,
	})

	cfg := provider.Configuration("de-at")
	if cfg.Title != "Seiten" || cfg.ResourceKey != "pages" || cfg.Icon != "su-document" {
		t.Fatalf("unexpected configuration %+v", cfg)
	}
	if got := provider.Configuration("fr").Title; got != "Pages" {
		t.Fatalf("expected default locale title, got %q", got)
	}

	plain := MustNew(Dependencies{Repository: seededRepo(t)})
	if got := plain.Configuration("de").EmptyText; got != "No page selected" {
		t.Fatalf("expected built-in empty text, got %q", got)
	}
}

func TestNewRequiresRepository(t *testing.T) {
	if _, err := New(Dependencies{}); !errors.Is(err, ErrMissingRepository) {
		t.Fatalf("expected ErrMissingRepository, got %v", err)
	}
}
