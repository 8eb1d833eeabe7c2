package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/goliatone/go-linktags/pkg/domain"
	"github.com/goliatone/go-linktags/pkg/interfaces/store"
	"github.com/google/uuid"
)

type baseMemoryRepo[T any] struct {
	mu      sync.RWMutex
	records map[uuid.UUID]T
	extract func(*T) *domain.RecordMeta
}

func newBaseMemoryRepo[T any](extract func(*T) *domain.RecordMeta) baseMemoryRepo[T] {
	return baseMemoryRepo[T]{
		records: make(map[uuid.UUID]T),
		extract: extract,
	}
}

func (r *baseMemoryRepo[T]) create(ctx context.Context, record *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	base := r.extract(record)
	base.EnsureID()
	now := time.Now().UTC()
	if base.CreatedAt.IsZero() {
		base.CreatedAt = now
	}
	base.UpdatedAt = now
	r.records[base.ID] = *record
	return nil
}

func (r *baseMemoryRepo[T]) update(ctx context.Context, record *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	base := r.extract(record)
	if base.ID == uuid.Nil {
		return store.ErrNotFound
	}
	if _, ok := r.records[base.ID]; !ok {
		return store.ErrNotFound
	}
	base.UpdatedAt = time.Now().UTC()
	r.records[base.ID] = *record
	return nil
}

func (r *baseMemoryRepo[T]) getByID(ctx context.Context, id uuid.UUID, includeDeleted bool) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if !includeDeleted && !r.extract(&record).DeletedAt.IsZero() {
		return nil, store.ErrNotFound
	}
	out := record
	return &out, nil
}

// find returns live records accepted by match, oldest first.
func (r *baseMemoryRepo[T]) find(match func(*T) bool) []T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []T
	for _, record := range r.records {
		if !r.extract(&record).DeletedAt.IsZero() {
			continue
		}
		if match != nil && !match(&record) {
			continue
		}
		out = append(out, record)
	}
	r.sortByCreated(out)
	return out
}

func (r *baseMemoryRepo[T]) list(ctx context.Context, opts store.ListOptions) (store.ListResult[T], error) {
	r.mu.RLock()
	var filtered []T
	for _, record := range r.records {
		base := r.extract(&record)
		if !opts.IncludeSoftDeleted && !base.DeletedAt.IsZero() {
			continue
		}
		if !opts.Since.IsZero() && base.CreatedAt.Before(opts.Since) {
			continue
		}
		if !opts.Until.IsZero() && base.CreatedAt.After(opts.Until) {
			continue
		}
		filtered = append(filtered, record)
	}
	r.mu.RUnlock()

	r.sortByCreated(filtered)

	total := len(filtered)
	start := min(opts.Offset, total)
	end := total
	if opts.Limit > 0 && start+opts.Limit < end {
		end = start + opts.Limit
	}
	return store.ListResult[T]{Items: filtered[start:end], Total: total}, nil
}

func (r *baseMemoryRepo[T]) softDelete(ctx context.Context, id uuid.UUID) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	base := r.extract(&record)
	if base.DeletedAt.IsZero() {
		base.DeletedAt = time.Now().UTC()
	}
	r.records[id] = record
	out := record
	return &out, nil
}

func (r *baseMemoryRepo[T]) sortByCreated(records []T) {
	sort.SliceStable(records, func(i, j int) bool {
		return r.extract(&records[i]).CreatedAt.Before(r.extract(&records[j]).CreatedAt)
	})
}
