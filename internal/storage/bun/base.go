package bunrepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/goliatone/go-linktags/pkg/domain"
	"github.com/goliatone/go-linktags/pkg/interfaces/store"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type baseRepository[T any] struct {
	repo    repository.Repository[*T]
	db      *bun.DB
	extract func(*T) *domain.RecordMeta
}

func newBaseRepository[T any](db *bun.DB, handlers repository.ModelHandlers[*T], extract func(*T) *domain.RecordMeta) baseRepository[T] {
	return baseRepository[T]{
		repo:    repository.MustNewRepository[*T](db, handlers),
		db:      db,
		extract: extract,
	}
}

// idb returns the transaction carried by ctx, or the shared DB.
func (r baseRepository[T]) idb(ctx context.Context) bun.IDB {
	return conn(ctx, r.db)
}

func (r baseRepository[T]) create(ctx context.Context, record *T) error {
	base := r.extract(record)
	base.EnsureID()
	now := time.Now().UTC()
	if base.CreatedAt.IsZero() {
		base.CreatedAt = now
	}
	base.UpdatedAt = now
	_, err := r.repo.CreateTx(ctx, r.idb(ctx), record)
	return mapError(err)
}

func (r baseRepository[T]) update(ctx context.Context, record *T) error {
	r.extract(record).UpdatedAt = time.Now().UTC()
	_, err := r.repo.UpdateTx(ctx, r.idb(ctx), record)
	return mapError(err)
}

func (r baseRepository[T]) get(ctx context.Context, criteria ...repository.SelectCriteria) (*T, error) {
	record, err := r.repo.GetTx(ctx, r.idb(ctx), append(criteria, withoutDeleted())...)
	if err != nil {
		return nil, mapError(err)
	}
	return record, nil
}

func (r baseRepository[T]) list(ctx context.Context, opts store.ListOptions) (store.ListResult[T], error) {
	records, total, err := r.repo.ListTx(ctx, r.idb(ctx), withListOptions(opts))
	if err != nil {
		return store.ListResult[T]{}, mapError(err)
	}
	items := make([]T, len(records))
	for i, rec := range records {
		items[i] = *rec
	}
	return store.ListResult[T]{Items: items, Total: total}, nil
}

// softDelete relies on the bun soft_delete tag on RecordMeta.DeletedAt.
func (r baseRepository[T]) softDelete(ctx context.Context, id uuid.UUID) error {
	record, err := r.get(ctx, withID(id))
	if err != nil {
		return err
	}
	_, err = r.idb(ctx).NewDelete().Model(record).Where("id = ?", id).Exec(ctx)
	return mapError(err)
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if repository.IsRecordNotFound(err) {
		return store.ErrNotFound
	}
	if repository.IsDuplicatedKey(err) || isUniqueViolation(err) {
		return store.ErrConflict
	}
	return err
}

// isUniqueViolation matches driver messages the repository error mapper
// does not categorize, such as the pure Go sqlite driver.
func isUniqueViolation(err error) bool {
	for ; err != nil; err = errors.Unwrap(err) {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key") {
			return true
		}
	}
	return false
}
