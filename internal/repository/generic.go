package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lib/pq"
	"github.com/uptrace/bun"

	"uconnect/internal/domain"
)

// Generic is a stateless CRUD repository over a single entity type T, backed
// by a Bun DB handle. Specialized repositories compose it and add their own
// query shapes. Lookups return (nil, nil) when no row matches; uniqueness
// violations surfaced by the storage layer are translated to
// domain.ErrConflict.
type Generic[T any] struct {
	db *bun.DB
}

// NewGeneric returns a generic repository for T bound to db.
func NewGeneric[T any](db *bun.DB) *Generic[T] {
	return &Generic[T]{db: db}
}

// DB exposes the underlying Bun handle for entity-specific queries.
func (r *Generic[T]) DB() *bun.DB { return r.db }

// Create inserts the entity and populates its generated identifier.
func (r *Generic[T]) Create(ctx context.Context, entity *T) error {
	if _, err := r.db.NewInsert().Model(entity).Exec(ctx); err != nil {
		return translateConstraint(err)
	}
	return nil
}

// GetByID returns the entity with the given id, or (nil, nil) if absent.
func (r *Generic[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	var entity T
	err := r.db.NewSelect().Model(&entity).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get by id: %w", err)
	}
	return &entity, nil
}

// List returns a page of entities. Ordering follows params.OrderBy with id
// ascending as tie-breaker, so consecutive pages never overlap.
func (r *Generic[T]) List(ctx context.Context, params domain.ListParams) ([]*T, error) {
	params = params.Normalize()
	var entities []*T
	q := r.db.NewSelect().Model(&entities)
	if params.OrderBy != "" {
		dir := "ASC"
		if params.Reverse {
			dir = "DESC"
		}
		q = q.OrderExpr("? ?", bun.Ident(params.OrderBy), bun.Safe(dir))
	}
	q = q.OrderExpr("id ASC").Offset(params.Skip).Limit(params.Limit)
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	if entities == nil {
		entities = []*T{}
	}
	return entities, nil
}

// Update applies a partial update and returns the updated entity, or
// (nil, nil) if no entity with that id exists. An empty field map returns the
// entity unchanged.
func (r *Generic[T]) Update(ctx context.Context, id int64, fields map[string]any) (*T, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}
	if len(fields) == 0 {
		return existing, nil
	}
	q := r.db.NewUpdate().Model((*T)(nil)).Where("id = ?", id)
	for _, col := range sortedKeys(fields) {
		q = q.Set("? = ?", bun.Ident(col), fields[col])
	}
	if _, err := q.Exec(ctx); err != nil {
		return nil, translateConstraint(err)
	}
	return r.GetByID(ctx, id)
}

// Delete removes the entity and reports whether it existed. A second call on
// the same id returns false, not an error.
func (r *Generic[T]) Delete(ctx context.Context, id int64) (bool, error) {
	var entity T
	res, err := r.db.NewDelete().Model(&entity).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete rows affected: %w", err)
	}
	return n > 0, nil
}

// Exists reports whether a row matching all filters exists.
func (r *Generic[T]) Exists(ctx context.Context, filters map[string]any) (bool, error) {
	q := r.db.NewSelect().Model((*T)(nil))
	q = applyFilters(q, filters)
	ok, err := q.Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("exists: %w", err)
	}
	return ok, nil
}

// FindByFilter returns the first entity matching all filters, ordered by id,
// or (nil, nil) when none matches.
func (r *Generic[T]) FindByFilter(ctx context.Context, filters map[string]any) (*T, error) {
	var entity T
	q := r.db.NewSelect().Model(&entity)
	q = applyFilters(q, filters)
	err := q.OrderExpr("id ASC").Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find by filter: %w", err)
	}
	return &entity, nil
}

// FindAllByFilter returns a page of entities matching all filters, ordered by
// id ascending.
func (r *Generic[T]) FindAllByFilter(ctx context.Context, skip, limit int, filters map[string]any) ([]*T, error) {
	params := domain.ListParams{Skip: skip, Limit: limit}.Normalize()
	var entities []*T
	q := r.db.NewSelect().Model(&entities)
	q = applyFilters(q, filters)
	err := q.OrderExpr("id ASC").Offset(params.Skip).Limit(params.Limit).Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("find all by filter: %w", err)
	}
	if entities == nil {
		entities = []*T{}
	}
	return entities, nil
}

// Count returns the number of rows matching all filters.
func (r *Generic[T]) Count(ctx context.Context, filters map[string]any) (int, error) {
	q := r.db.NewSelect().Model((*T)(nil))
	q = applyFilters(q, filters)
	n, err := q.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// applyFilters ANDs equality predicates onto the query. Keys are applied in
// sorted order so generated SQL is deterministic.
func applyFilters(q *bun.SelectQuery, filters map[string]any) *bun.SelectQuery {
	for _, col := range sortedKeys(filters) {
		q = q.Where("? = ?", bun.Ident(col), filters[col])
	}
	return q
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// translateConstraint maps storage-level unique violations onto the conflict
// taxonomy used by the services' pre-checks. Postgres reports class 23505;
// the sqlite driver only exposes the violation through its message.
func translateConstraint(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%w: %s", domain.ErrConflict, pqErr.Constraint)
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%w: %v", domain.ErrConflict, err)
	}
	return err
}
