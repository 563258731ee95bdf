package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"rebelcal/src-server/model"

	"github.com/go-ap/errors"
	"github.com/uptrace/bun"
)

type OrganizationStore struct {
	db  bun.IDB
	obs Observer
}

func NewOrganizationStore(db bun.IDB, obs Observer) *OrganizationStore {
	if obs == nil {
		obs = nopObserver{}
	}
	return &OrganizationStore{db: db, obs: obs}
}

// Insert rejects a name already present with a Conflict.
func (s *OrganizationStore) Insert(ctx context.Context, o *model.Organization) error {
	if err := o.Validate(); err != nil {
		return err
	}
	exists, err := s.db.NewSelect().
		Model((*model.Organization)(nil)).
		Where("name = ?", o.Name).
		Exists(ctx)
	if err != nil {
		return fmt.Errorf("(*OrganizationStore).Insert: %w", err)
	}
	if exists {
		return errors.Conflictf("organization %q already exists", o.Name)
	}

	start := time.Now()
	if _, err := s.db.NewInsert().
		Model(o).
		Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return errors.Conflictf("organization %q already exists", o.Name)
		}
		return fmt.Errorf("(*OrganizationStore).Insert: %w", err)
	}
	s.obs.ObserveDatabaseWrite(time.Since(start))
	return nil
}

func (s *OrganizationStore) Get(ctx context.Context, id int64) (*model.Organization, error) {
	start := time.Now()
	o := new(model.Organization)
	if err := s.db.NewSelect().
		Model(o).
		Where("id = ?", id).
		Scan(ctx); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			observeRead(s.obs, start, 0)
			return nil, errors.NotFoundf("could not find organization with id %d", id)
		}
		return nil, fmt.Errorf("(*OrganizationStore).Get: %w", err)
	}
	observeRead(s.obs, start, 1)
	return o, nil
}

// List is ordered by name.
func (s *OrganizationStore) List(ctx context.Context) ([]*model.Organization, error) {
	start := time.Now()
	orgs := []*model.Organization{}
	if err := s.db.NewSelect().
		Model(&orgs).
		Order("name ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("(*OrganizationStore).List: %w", err)
	}
	observeRead(s.obs, start, len(orgs))
	return orgs, nil
}

func (s *OrganizationStore) DeleteAll(ctx context.Context) (int64, error) {
	start := time.Now()
	res, err := s.db.NewDelete().
		Model((*model.Organization)(nil)).
		Where("1 = 1").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("(*OrganizationStore).DeleteAll: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("(*OrganizationStore).DeleteAll: %w", err)
	}
	s.obs.ObserveDatabaseWrite(time.Since(start))
	return n, nil
}
