package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/goliatone/go-linktags/pkg/commands"
	"github.com/goliatone/go-linktags/pkg/links/page"
	"gopkg.in/yaml.v3"
)

// Fixture is the YAML document the CLI renders and validates.
type Fixture struct {
	Config  map[string]any  `yaml:"config"`
	Request *FixtureRequest `yaml:"request"`
	Pages   []FixturePage   `yaml:"pages"`
	Tags    []commands.Tag  `yaml:"tags"`
}

// FixtureRequest describes the request links are rendered for.
type FixtureRequest struct {
	Host   string `yaml:"host"`
	Scheme string `yaml:"scheme"`
}

// FixturePage seeds one page translation.
type FixturePage struct {
	PageID      string   `yaml:"page_id"`
	Locale      string   `yaml:"locale"`
	Webspace    string   `yaml:"webspace"`
	Title       string   `yaml:"title"`
	Path        string   `yaml:"path"`
	Published   bool     `yaml:"published"`
	Permissions []string `yaml:"permissions"`
}

// LoadFixture reads and decodes a fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture decodes fixture YAML.
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return &f, nil
}

// Context attaches the fixture request, if any, to ctx.
func (f *Fixture) Context(ctx context.Context) context.Context {
	if f == nil || f.Request == nil {
		return ctx
	}
	return page.WithRequest(ctx, page.Request{Host: f.Request.Host, Scheme: f.Request.Scheme})
}

// Seed stores the fixture pages through the command registry. Pages that
// already exist are updated.
func (f *Fixture) Seed(ctx context.Context, cmds *commands.Registry) error {
	for _, p := range f.Pages {
		err := cmds.SavePage.Execute(ctx, commands.SavePage{
			PageID:      p.PageID,
			Locale:      p.Locale,
			Webspace:    p.Webspace,
			Title:       p.Title,
			Path:        p.Path,
			Permissions: p.Permissions,
			AllowUpdate: true,
		})
		if err != nil {
			return fmt.Errorf("seed page %s/%s: %w", p.PageID, p.Locale, err)
		}
		if p.Published {
			err = cmds.PublishPage.Execute(ctx, commands.PublishPage{PageID: p.PageID, Locale: p.Locale})
		} else {
			err = cmds.UnpublishPage.Execute(ctx, commands.UnpublishPage{PageID: p.PageID, Locale: p.Locale})
		}
		if err != nil {
			return fmt.Errorf("seed page %s/%s: %w", p.PageID, p.Locale, err)
		}
	}
	return nil
}
