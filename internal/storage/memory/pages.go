package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/goliatone/go-linktags/pkg/domain"
	"github.com/goliatone/go-linktags/pkg/interfaces/store"
	"github.com/google/uuid"
)

// PageRepository keeps page translations in memory.
type PageRepository struct {
	base baseMemoryRepo[domain.Page]

	mu    sync.RWMutex
	byKey map[string]uuid.UUID
}

var _ store.PageRepository = (*PageRepository)(nil)

func NewPageRepository() *PageRepository {
	return &PageRepository{
		base:  newBaseMemoryRepo(func(p *domain.Page) *domain.RecordMeta { return &p.RecordMeta }),
		byKey: make(map[string]uuid.UUID),
	}
}

func pageKey(pageID, locale string) string {
	return strings.ToLower(pageID + "|" + locale)
}

func (r *PageRepository) Create(ctx context.Context, page *domain.Page) error {
	if page == nil {
		return store.ErrNotFound
	}
	key := pageKey(page.PageID, page.Locale)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byKey[key]; ok {
		return store.ErrConflict
	}
	if err := r.base.create(ctx, page); err != nil {
		return err
	}
	r.byKey[key] = page.ID
	return nil
}

func (r *PageRepository) Update(ctx context.Context, page *domain.Page) error {
	if page == nil {
		return store.ErrNotFound
	}
	current, err := r.base.getByID(ctx, page.ID, false)
	if err != nil {
		return err
	}
	oldKey := pageKey(current.PageID, current.Locale)
	newKey := pageKey(page.PageID, page.Locale)

	r.mu.Lock()
	defer r.mu.Unlock()
	if oldKey != newKey {
		if _, taken := r.byKey[newKey]; taken {
			return store.ErrConflict
		}
	}
	if err := r.base.update(ctx, page); err != nil {
		return err
	}
	delete(r.byKey, oldKey)
	r.byKey[newKey] = page.ID
	return nil
}

func (r *PageRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Page, error) {
	return r.base.getByID(ctx, id, false)
}

func (r *PageRepository) GetByPageID(ctx context.Context, pageID, locale string) (*domain.Page, error) {
	r.mu.RLock()
	id, ok := r.byKey[pageKey(pageID, locale)]
	r.mu.RUnlock()
	if !ok {
		return nil, store.ErrNotFound
	}
	return r.base.getByID(ctx, id, false)
}

func (r *PageRepository) FindByPageIDs(ctx context.Context, ids []string, locale string, opts store.FindOptions) ([]domain.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	return r.base.find(func(p *domain.Page) bool {
		if _, ok := wanted[p.PageID]; !ok {
			return false
		}
		if !strings.EqualFold(p.Locale, locale) {
			return false
		}
		return !opts.OnlyPublished || p.IsPublished()
	}), nil
}

func (r *PageRepository) List(ctx context.Context, opts store.ListOptions) (store.ListResult[domain.Page], error) {
	return r.base.list(ctx, opts)
}

func (r *PageRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	page, err := r.base.softDelete(ctx, id)
	if err != nil {
		return err
	}
	r.mu.Lock()
	delete(r.byKey, pageKey(page.PageID, page.Locale))
	r.mu.Unlock()
	return nil
}
