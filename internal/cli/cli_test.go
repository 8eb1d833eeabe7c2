package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testFixture = `
config:
  urls:
    host: sulu.io
request:
  host: preview.sulu.io
  scheme: https
pages:
  - page_id: 123-123-123
    locale: de
    webspace: sulu_io
    title: Pagetitle
    path: /test
    published: true
  - page_id: 312-312-312
    locale: de
    title: Draft
    path: /draft
tags:
  - raw: <sulu-link href="123-123-123" title="Test">Pagetitle</sulu-link>
    attributes:
      href: 123-123-123
      title: Test
      content: Pagetitle
  - raw: <sulu-link href="312-312-312">Draft</sulu-link>
    attributes:
      href: 312-312-312
      content: Draft
  - raw: <sulu-link href="999-999-999" title="Gone"/>
    attributes:
      href: 999-999-999
      title: Gone
`

func writeFixture(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := Execute(context.Background(), args, &out, &errOut)
	return out.String(), err
}

func TestRender(t *testing.T) {
	path := writeFixture(t, testFixture)
	out, err := run(t, "render", "--fixture", path, "--locale", "de")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected three lines, got %q", out)
	}
	want := []string{
		`<sulu-link href="123-123-123" title="Test">Pagetitle</sulu-link> => <a href="/de/test" title="Test">Pagetitle</a>`,
		`<sulu-link href="312-312-312">Draft</sulu-link> => Draft`,
		`<sulu-link href="999-999-999" title="Gone"/> => Gone`,
	}
	for i, line := range lines {
		if line != want[i] {
			t.Fatalf("line %d: got %q want %q", i, line, want[i])
		}
	}
}

func TestRenderAbsoluteFromConfigAndRequest(t *testing.T) {
	fixture := strings.Replace(testFixture, "    host: sulu.io", "    host: sulu.io\n    absolute: true", 1)
	path := writeFixture(t, fixture)
	out, err := run(t, "render", "-f", path, "-l", "de")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `href="https://preview.sulu.io/de/test"`) {
		t.Fatalf("expected request host in url, got %q", out)
	}
}

func TestRenderText(t *testing.T) {
	path := writeFixture(t, testFixture)
	out, err := run(t, "render", "--fixture", path, "--locale", "de", "--text")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(out, "<a ") {
		t.Fatalf("expected plain text output, got %q", out)
	}
	if !strings.Contains(out, "Pagetitle") {
		t.Fatalf("expected link text in output, got %q", out)
	}
}

func TestValidate(t *testing.T) {
	path := writeFixture(t, testFixture)
	out, err := run(t, "validate", "--fixture", path, "--locale", "de")
	if !errors.Is(err, ErrInvalidLinks) {
		t.Fatalf("expected ErrInvalidLinks, got %v", err)
	}
	if strings.TrimSpace(out) != `<sulu-link href="999-999-999" title="Gone"/> => removed` {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestValidateAllValid(t *testing.T) {
	fixture := testFixture[:strings.Index(testFixture, "  - raw: <sulu-link href=\"999")]
	path := writeFixture(t, fixture)
	out, err := run(t, "validate", "--fixture", path, "--locale", "de")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, "all 2 tag(s) valid") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRenderWithSQLite(t *testing.T) {
	path := writeFixture(t, testFixture)
	dsn := "file:" + filepath.Join(t.TempDir(), "links.db")
	out, err := run(t, "render", "--fixture", path, "--locale", "de", "--db", dsn)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `<a href="/de/test" title="Test">Pagetitle</a>`) {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestProviders(t *testing.T) {
	out, err := run(t, "providers", "--locale", "de")
	if err != nil {
		t.Fatalf("providers: %v", err)
	}
	if !strings.HasPrefix(out, "page\tSeiten\tpages\tsu-document\t") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRenderRequiresFixture(t *testing.T) {
	if _, err := run(t, "render"); err == nil {
		t.Fatalf("expected missing fixture error")
	}
}
