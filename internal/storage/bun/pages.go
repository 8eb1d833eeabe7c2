package bunrepo

import (
	"context"
	"strings"

	"github.com/goliatone/go-linktags/pkg/domain"
	"github.com/goliatone/go-linktags/pkg/interfaces/store"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type PageRepository struct {
	base baseRepository[domain.Page]
}

var _ store.PageRepository = (*PageRepository)(nil)

func NewPageRepository(db *bun.DB) *PageRepository {
	handlers := repository.ModelHandlers[*domain.Page]{
		NewRecord:          func() *domain.Page { return &domain.Page{} },
		GetID:              func(p *domain.Page) uuid.UUID { return p.ID },
		SetID:              func(p *domain.Page, id uuid.UUID) { p.ID = id },
		GetIdentifier:      func() string { return "page_id" },
		GetIdentifierValue: func(p *domain.Page) string { return p.PageID },
	}
	return &PageRepository{
		base: newBaseRepository[domain.Page](db, handlers, func(p *domain.Page) *domain.RecordMeta { return &p.RecordMeta }),
	}
}

func (r *PageRepository) Create(ctx context.Context, page *domain.Page) error {
	return r.base.create(ctx, page)
}

func (r *PageRepository) Update(ctx context.Context, page *domain.Page) error {
	return r.base.update(ctx, page)
}

func (r *PageRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Page, error) {
	return r.base.get(ctx, withID(id))
}

func (r *PageRepository) GetByPageID(ctx context.Context, pageID, locale string) (*domain.Page, error) {
	return r.base.get(ctx,
		func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("LOWER(page_id) = ?", strings.ToLower(pageID))
		},
		withLocale(locale),
	)
}

// FindByPageIDs issues a single SELECT for every requested id.
func (r *PageRepository) FindByPageIDs(ctx context.Context, ids []string, locale string, opts store.FindOptions) ([]domain.Page, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var pages []domain.Page
	q := r.base.idb(ctx).NewSelect().Model(&pages)
	for _, criteria := range []repository.SelectCriteria{
		withPageIDs(ids),
		withLocale(locale),
		withPublished(opts.OnlyPublished),
		withoutDeleted(),
	} {
		q = criteria(q)
	}
	if err := q.Order("created_at ASC").Scan(ctx); err != nil {
		return nil, mapError(err)
	}
	return pages, nil
}

func (r *PageRepository) List(ctx context.Context, opts store.ListOptions) (store.ListResult[domain.Page], error) {
	return r.base.list(ctx, opts)
}

func (r *PageRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.base.softDelete(ctx, id)
}
