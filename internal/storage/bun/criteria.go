package bunrepo

import (
	"strings"

	"github.com/goliatone/go-linktags/pkg/domain"
	"github.com/goliatone/go-linktags/pkg/interfaces/store"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func withID(id uuid.UUID) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("id = ?", id)
	}
}

func withoutDeleted() repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("deleted_at IS NULL")
	}
}

func withPageIDs(ids []string) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("page_id IN (?)", bun.In(ids))
	}
}

func withLocale(locale string) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("LOWER(locale) = ?", strings.ToLower(locale))
	}
}

func withPublished(onlyPublished bool) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		if !onlyPublished {
			return q
		}
		return q.Where("workflow_stage = ?", domain.WorkflowStagePublished).
			Where("published_at IS NOT NULL")
	}
}

func withListOptions(opts store.ListOptions) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		if opts.Limit > 0 {
			q = q.Limit(opts.Limit)
		}
		if opts.Offset > 0 {
			q = q.Offset(opts.Offset)
		}
		if opts.IncludeSoftDeleted {
			q = q.WhereAllWithDeleted()
		}
		if !opts.Since.IsZero() {
			q = q.Where("created_at >= ?", opts.Since)
		}
		if !opts.Until.IsZero() {
			q = q.Where("created_at <= ?", opts.Until)
		}
		return q.Order("created_at ASC")
	}
}
