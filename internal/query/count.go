package query

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// CountSpec describes a grouped count over one or more integer keys.
type CountSpec struct {
	From   string
	Keys   []string
	Joins  []Cond
	Where  []Cond
	Scopes []Scope
	// Count is the counted column; NULLs from outer joins are not counted.
	Count    string
	Distinct bool
	Having   *Threshold
	// Descending orders by count first; keys always break ties ascending.
	Descending bool
	Limit      int
}

// Row is one group of a CountSpec result.
type Row struct {
	Keys  []int64
	Count int64
}

func (s CountSpec) aggregate() string {
	if s.Distinct {
		return "COUNT(DISTINCT " + s.Count + ")"
	}
	return "COUNT(" + s.Count + ")"
}

// CountRows runs the grouped count described by cs.
func CountRows(ctx context.Context, db *gorm.DB, cs CountSpec) ([]Row, error) {
	agg := cs.aggregate()
	selects := append(cloneKeys(cs.Keys), agg+" AS total")

	tx := db.WithContext(ctx).Table(cs.From).Select(strings.Join(selects, ", "))
	for _, j := range cs.Joins {
		tx = tx.Joins(j.SQL, j.Args...)
	}
	tx = Where(cs.Where...)(tx)
	for _, s := range cs.Scopes {
		tx = s(tx)
	}
	tx = tx.Group(strings.Join(cs.Keys, ", "))
	if cs.Having != nil {
		h := cs.Having.Cond(agg)
		tx = tx.Having(h.SQL, h.Args...)
	}
	if cs.Descending {
		tx = tx.Order("total DESC")
	}
	for _, k := range cs.Keys {
		tx = tx.Order(k + " ASC")
	}
	if cs.Limit > 0 {
		tx = tx.Limit(cs.Limit)
	}

	rows, err := tx.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Row{}
	for rows.Next() {
		r := Row{Keys: make([]int64, len(cs.Keys))}
		dest := make([]any, 0, len(cs.Keys)+1)
		for i := range r.Keys {
			dest = append(dest, &r.Keys[i])
		}
		dest = append(dest, &r.Count)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func cloneKeys(s []string) []string {
	out := make([]string, len(s), len(s)+1)
	copy(out, s)
	return out
}

// TallySpec groups a text column.
type TallySpec struct {
	Table  string
	Column string
	// Distinct counts distinct values of this column instead of rows.
	Distinct string
	Where    []Cond
	Having   *Threshold
	Limit    int
}

// Tally is one text group. FirstID is the smallest row id in the group and
// orders ties by first occurrence.
type Tally struct {
	Value   string `gorm:"column:value"`
	Count   int64  `gorm:"column:total"`
	FirstID int64  `gorm:"column:first_id"`
}

// TallyRows counts rows per value of a text column, NULL folded into "",
// ordered by count descending then first occurrence.
func TallyRows(ctx context.Context, db *gorm.DB, cs TallySpec) ([]Tally, error) {
	value := "COALESCE(" + cs.Column + ", '')"
	agg := "COUNT(*)"
	if cs.Distinct != "" {
		agg = "COUNT(DISTINCT " + cs.Distinct + ")"
	}

	tx := db.WithContext(ctx).Table(cs.Table).
		Select(value + " AS value, " + agg + " AS total, MIN(" + cs.Table + ".id) AS first_id")
	tx = Where(cs.Where...)(tx)
	tx = tx.Group(value)
	if cs.Having != nil {
		h := cs.Having.Cond(agg)
		tx = tx.Having(h.SQL, h.Args...)
	}
	tx = tx.Order("total DESC").Order("first_id ASC")
	if cs.Limit > 0 {
		tx = tx.Limit(cs.Limit)
	}

	out := []Tally{}
	if err := tx.Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
