package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-linktags/pkg/domain"
	"github.com/goliatone/go-linktags/pkg/interfaces/store"
)

func seedPage(t *testing.T, repo *PageRepository, page domain.Page) *domain.Page {
	t.Helper()
	if err := repo.Create(context.Background(), &page); err != nil {
		t.Fatalf("seed page: %v", err)
	}
	return &page
}

func TestPageRepositoryFindByPageIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewPageRepository()
	now := time.Now().UTC()

	seedPage(t, repo, domain.Page{PageID: "a", Locale: "de", Title: "A", ResourceLocator: "/a", WorkflowStage: domain.WorkflowStagePublished, PublishedAt: now})
	seedPage(t, repo, domain.Page{PageID: "a", Locale: "en", Title: "A en", ResourceLocator: "/a", WorkflowStage: domain.WorkflowStagePublished, PublishedAt: now})
	seedPage(t, repo, domain.Page{PageID: "b", Locale: "de", Title: "B", ResourceLocator: "/b", WorkflowStage: domain.WorkflowStageTest})
	deleted := seedPage(t, repo, domain.Page{PageID: "c", Locale: "de", Title: "C", WorkflowStage: domain.WorkflowStagePublished, PublishedAt: now})
	if err := repo.SoftDelete(ctx, deleted.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	all, err := repo.FindByPageIDs(ctx, []string{"a", "b", "c", "missing"}, "de", store.FindOptions{})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected a and b in de, got %+v", all)
	}

	published, err := repo.FindByPageIDs(ctx, []string{"a", "b"}, "DE", store.FindOptions{OnlyPublished: true})
	if err != nil {
		t.Fatalf("find published: %v", err)
	}
	if len(published) != 1 || published[0].PageID != "a" || published[0].Locale != "de" {
		t.Fatalf("expected only published a/de, got %+v", published)
	}
}

func TestPageRepositoryUniqueTranslation(t *testing.T) {
	repo := NewPageRepository()
	seedPage(t, repo, domain.Page{PageID: "a", Locale: "de"})

	dup := domain.Page{PageID: "A", Locale: "DE"}
	if err := repo.Create(context.Background(), &dup); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestPageRepositoryGetByPageIDAfterUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewPageRepository()
	page := seedPage(t, repo, domain.Page{PageID: "a", Locale: "de", Title: "Before"})

	page.Title = "After"
	page.Publish(time.Now())
	if err := repo.Update(ctx, page); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetByPageID(ctx, "a", "de")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "After" || !got.IsPublished() {
		t.Fatalf("unexpected page %+v", got)
	}

	if err := repo.SoftDelete(ctx, page.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	if _, err := repo.GetByPageID(ctx, "a", "de"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	list, err := repo.List(ctx, store.ListOptions{IncludeSoftDeleted: true})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.Total != 1 {
		t.Fatalf("expected deleted page in list, got %d", list.Total)
	}
}
