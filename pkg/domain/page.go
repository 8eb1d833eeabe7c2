package domain

import (
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// Workflow stages a page translation moves through.
const (
	WorkflowStageTest      = "test"
	WorkflowStagePublished = "published"
)

// Page is a single locale translation of a page that link tags can target.
// PageID is the identifier shared by every translation and used in tag hrefs.
type Page struct {
	bun.BaseModel `bun:"table:link_pages"`
	RecordMeta

	PageID          string     `bun:",nullzero,notnull" json:"page_id"`
	Locale          string     `bun:",nullzero,notnull" json:"locale"`
	Webspace        string     `bun:",nullzero" json:"webspace"`
	Title           string     `bun:",nullzero" json:"title"`
	ResourceLocator string     `bun:",nullzero" json:"resource_locator"`
	WorkflowStage   string     `bun:",nullzero" json:"workflow_stage"`
	PublishedAt     time.Time  `bun:",nullzero" json:"published_at,omitempty"`
	Permissions     StringList `bun:"type:jsonb,nullzero" json:"permissions,omitempty"`
	Metadata        JSONMap    `bun:"type:jsonb,nullzero" json:"metadata,omitempty"`
}

// IsPublished reports whether the translation is live.
func (p Page) IsPublished() bool {
	return strings.EqualFold(p.WorkflowStage, WorkflowStagePublished) && !p.PublishedAt.IsZero()
}

// Publish moves the translation into the published stage.
func (p *Page) Publish(at time.Time) {
	p.WorkflowStage = WorkflowStagePublished
	if p.PublishedAt.IsZero() {
		p.PublishedAt = at
	}
}

// Unpublish returns the translation to the test stage.
func (p *Page) Unpublish() {
	p.WorkflowStage = WorkflowStageTest
	p.PublishedAt = time.Time{}
}
