package store

import (
	"context"
	"fmt"
	"strings"

	"rebelcal/src-server/model"
	"rebelcal/src-server/normalize"

	"github.com/go-ap/errors"
	"github.com/uptrace/bun"
)

// CheckDuplicate parses the raw dates with the category's layout and looks
// for an event with the same key. A missing end date defaults to the start.
// The name is compared in its normalize.Text form. Date and time format
// errors are returned as is; a match is a Conflict.
//
// The check is not atomic with the insert that follows it. The unique index
// on events rejects whichever writer loses that race.
func CheckDuplicate(
	ctx context.Context,
	db bun.IDB,
	category model.Category,
	startRaw string,
	endRaw *string,
	name string,
	startTimeRaw *string,
) (start, end normalize.Date, err error) {
	if start, end, err = parseRange(category, startRaw, endRaw); err != nil {
		return normalize.Date{}, normalize.Date{}, err
	}

	startTime, err := normalize.FormatTimePtr(startTimeRaw)
	if err != nil {
		return normalize.Date{}, normalize.Date{}, err
	}

	name = normalize.Text(name)
	exists, err := keyExists(ctx, db, category, name, start, startTime)
	if err != nil {
		return normalize.Date{}, normalize.Date{}, fmt.Errorf("CheckDuplicate: %w", err)
	}
	if exists {
		return normalize.Date{}, normalize.Date{}, duplicateError(category, name, start)
	}
	return start, end, nil
}

func parseRange(category model.Category, startRaw string, endRaw *string) (start, end normalize.Date, err error) {
	if !category.Valid() {
		return start, end, errors.BadRequestf("unknown category %q", string(category))
	}
	src := category.Source()

	if start, err = src.ParseDate(startRaw); err != nil {
		return normalize.Date{}, normalize.Date{}, err
	}
	end = start
	if endRaw != nil && strings.TrimSpace(*endRaw) != "" {
		if end, err = src.ParseDate(*endRaw); err != nil {
			return normalize.Date{}, normalize.Date{}, err
		}
	}
	return start, end, nil
}

func keyExists(
	ctx context.Context,
	db bun.IDB,
	category model.Category,
	name string,
	start normalize.Date,
	startTime *string,
) (bool, error) {
	q := db.NewSelect().
		Model((*model.Event)(nil)).
		Where("category = ?", category).
		Where("name = ?", name).
		Where("start_date = ?", start.String())
	if category.Source().KeyHasTime() {
		if startTime == nil {
			q = q.Where("start_time IS NULL")
		} else {
			q = q.Where("start_time = ?", *startTime)
		}
	}
	return q.Exists(ctx)
}

func duplicateError(category model.Category, name string, start normalize.Date) error {
	return errors.Conflictf("%s event %q on %s already exists", category.Source().Label(), name, start)
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
