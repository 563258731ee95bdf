package model

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
)

// DedupIndex backs the duplicate guard: a racing second insert of the same
// (category, name, start date, start time) fails on this index.
const DedupIndex = "events_dedup_idx"

func CreateSchema(ctx context.Context, db *bun.DB) error {
	if err := db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		for _, model := range []interface{}{
			(*Event)(nil),
			(*Organization)(nil),
		} {
			if _, err := tx.
				NewCreateTable().
				Model(model).
				IfNotExists().
				Exec(ctx); err != nil {
				return err
			}
		}

		if _, err := tx.
			NewCreateIndex().
			Model((*Event)(nil)).
			Unique().
			IfNotExists().
			Index(DedupIndex).
			Column("category", "name", "start_date").
			ColumnExpr("COALESCE(start_time, '')").
			Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.
			NewCreateIndex().
			Model((*Event)(nil)).
			IfNotExists().
			Index("events_category_start_idx").
			Column("category", "start_date").
			Exec(ctx); err != nil {
			return err
		}
		return nil
	}); err != nil {
		return fmt.Errorf("CreateSchema: %w", err)
	}

	return nil
}
