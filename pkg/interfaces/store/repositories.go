package store

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-linktags/pkg/domain"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a record cannot be located.
var ErrNotFound = errors.New("store: not found")

// ErrConflict is returned when a unique key is already taken.
var ErrConflict = errors.New("store: conflict")

// ListOptions capture pagination and filtering knobs common to repositories.
type ListOptions struct {
	Limit              int
	Offset             int
	Since              time.Time
	Until              time.Time
	IncludeSoftDeleted bool
}

// ListResult bundles records and totals.
type ListResult[T any] struct {
	Items []T
	Total int
}

// Repository defines base CRUD helpers reused by entity-specific interfaces.
type Repository[T any] interface {
	Create(ctx context.Context, record *T) error
	Update(ctx context.Context, record *T) error
	GetByID(ctx context.Context, id uuid.UUID) (*T, error)
	List(ctx context.Context, opts ListOptions) (ListResult[T], error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// FindOptions narrow bulk page lookups.
type FindOptions struct {
	OnlyPublished bool
}

// PageRepository is the content repository link providers resolve targets from.
type PageRepository interface {
	Repository[domain.Page]
	// GetByPageID returns the translation of pageID in locale.
	GetByPageID(ctx context.Context, pageID, locale string) (*domain.Page, error)
	// FindByPageIDs returns every translation in locale whose PageID is in ids,
	// in a single lookup. Unknown ids are skipped.
	FindByPageIDs(ctx context.Context, ids []string, locale string, opts FindOptions) ([]domain.Page, error)
}
