package bunrepo

import (
	"context"

	"github.com/goliatone/go-linktags/pkg/domain"
	"github.com/uptrace/bun"
)

// PageLocaleIndex keeps one live translation per (page_id, locale), compared
// case-insensitively. Soft-deleted rows fall outside the index so a
// translation can be recreated.
const PageLocaleIndex = "link_pages_page_locale_live_idx"

// CreateSchema creates the tables and indexes used by the repositories.
func CreateSchema(ctx context.Context, db bun.IDB) error {
	if _, err := db.NewCreateTable().Model((*domain.Page)(nil)).IfNotExists().Exec(ctx); err != nil {
		return err
	}
	_, err := db.NewCreateIndex().
		Model((*domain.Page)(nil)).
		Index(PageLocaleIndex).
		Unique().
		IfNotExists().
		ColumnExpr("LOWER(page_id)").
		ColumnExpr("LOWER(locale)").
		Where("deleted_at IS NULL").
		Exec(ctx)
	return err
}
