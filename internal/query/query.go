// Package query builds read-only descriptors over the store: immutable
// queries, foreign-key traversals, grouped counts and id-set algebra.
package query

import (
	"context"
	"slices"

	"gorm.io/gorm"
)

// Model is any entity with a fixed table name.
type Model interface {
	TableName() string
}

// Scope narrows a gorm statement. It has the shape gorm.DB.Scopes expects.
type Scope func(*gorm.DB) *gorm.DB

// Cond is a raw SQL predicate with its bind arguments.
type Cond struct {
	SQL  string
	Args []any
}

// C builds a Cond.
func C(sql string, args ...any) Cond {
	return Cond{SQL: sql, Args: args}
}

// Where turns conditions into a scope.
func Where(conds ...Cond) Scope {
	return func(db *gorm.DB) *gorm.DB {
		for _, c := range conds {
			db = db.Where(c.SQL, c.Args...)
		}
		return db
	}
}

type preload struct {
	name string
	args []any
}

// Query is an immutable descriptor. Every builder method returns a new value
// and leaves the receiver usable, so a Query can be shared and re-executed.
type Query[T Model] struct {
	scopes   []Scope
	orders   []string
	preloads []preload
	limit    int
}

// New returns a query over every row of T.
func New[T Model]() Query[T] {
	return Query[T]{}
}

// Table is the table T is stored in.
func (q Query[T]) Table() string {
	var zero T
	return zero.TableName()
}

func (q Query[T]) Where(sql string, args ...any) Query[T] {
	return q.Scope(Where(C(sql, args...)))
}

// Joins adds a join. Only to-one joins belong here; a join that repeats
// rows would repeat results.
func (q Query[T]) Joins(sql string, args ...any) Query[T] {
	return q.Scope(func(db *gorm.DB) *gorm.DB {
		return db.Joins(sql, args...)
	})
}

func (q Query[T]) Scope(scopes ...Scope) Query[T] {
	q.scopes = append(slices.Clip(q.scopes), scopes...)
	return q
}

func (q Query[T]) Preload(name string, args ...any) Query[T] {
	q.preloads = append(slices.Clip(q.preloads), preload{name: name, args: args})
	return q
}

// OrderBy adds a sort expression ahead of the primary key tie-breaker.
func (q Query[T]) OrderBy(expr string) Query[T] {
	q.orders = append(slices.Clip(q.orders), expr)
	return q
}

// Limit caps the result; zero or less means unlimited.
func (q Query[T]) Limit(n int) Query[T] {
	q.limit = n
	return q
}

func (q Query[T]) filtered(ctx context.Context, db *gorm.DB) *gorm.DB {
	tx := db.WithContext(ctx).Model(new(T))
	for _, s := range q.scopes {
		tx = s(tx)
	}
	return tx
}

func (q Query[T]) ordered(tx *gorm.DB) *gorm.DB {
	for _, o := range q.orders {
		tx = tx.Order(o)
	}
	tx = tx.Order(q.Table() + ".id ASC")
	if q.limit > 0 {
		tx = tx.Limit(q.limit)
	}
	return tx
}

// Execute runs the query and returns every matching row.
func (q Query[T]) Execute(ctx context.Context, db *gorm.DB) ([]T, error) {
	tx := q.ordered(q.filtered(ctx, db).Select(q.Table() + ".*"))
	for _, p := range q.preloads {
		tx = tx.Preload(p.name, p.args...)
	}

	out := []T{}
	if err := tx.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// First returns the first row in query order, or nil when nothing matches.
func (q Query[T]) First(ctx context.Context, db *gorm.DB) (*T, error) {
	rows, err := q.Limit(1).Execute(ctx, db)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return &rows[0], nil
}

// Count returns the number of distinct matching rows; ordering and limit are
// ignored.
func (q Query[T]) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := q.filtered(ctx, db).Distinct(q.Table() + ".id").Count(&n).Error
	return n, err
}

// IDs returns the primary keys of the matching rows in query order.
func (q Query[T]) IDs(ctx context.Context, db *gorm.DB) (IDSet, error) {
	var ids []int64
	if err := q.ordered(q.filtered(ctx, db)).Pluck(q.Table()+".id", &ids).Error; err != nil {
		return IDSet{}, err
	}
	return NewIDSet(ids...), nil
}
