package query

import (
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params carries the list-endpoint knobs shared by every collection:
// 1-indexed page, page size, free-text search and sort key/direction.
type Params struct {
	Page    int
	Limit   int
	Query   string
	SortBy  string
	SortDir string
}

// Parse builds Params from raw query-string values. Malformed or
// non-positive page/limit values fall back to the defaults instead of
// being treated as errors.
func Parse(page, limit, q, sortBy, sortDir string) Params {
	p := Params{
		Page:    DefaultPage,
		Limit:   DefaultLimit,
		Query:   strings.TrimSpace(q),
		SortBy:  sortBy,
		SortDir: sortDir,
	}
	if n, err := strconv.Atoi(page); err == nil && n > 0 {
		p.Page = n
	}
	if n, err := strconv.Atoi(limit); err == nil && n > 0 {
		p.Limit = n
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Paginate applies skip/limit for a 1-indexed page.
func Paginate(p Params) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset()).Limit(p.Limit)
	}
}

// Sort orders by a whitelisted column, defaulting to created_at DESC.
// allowed maps API sort keys to column names; anything not in the map is
// ignored. Ties are broken on id so page boundaries are deterministic.
func Sort(allowed map[string]string, sortBy, sortDir string) func(*gorm.DB) *gorm.DB {
	column, ok := allowed[sortBy]
	if !ok {
		column = "created_at"
		sortDir = "desc"
	}
	dir := "DESC"
	if strings.EqualFold(sortDir, "asc") {
		dir = "ASC"
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(fmt.Sprintf("%s %s, id %s", column, dir, dir))
	}
}

// Search filters on a case-insensitive substring match over one or more
// columns. An empty query leaves the statement untouched.
func Search(q string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + escapeLike(q) + "%"
		clauses := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			clauses[i] = col + " ILIKE ?"
			args[i] = pattern
		}
		return db.Where(strings.Join(clauses, " OR "), args...)
	}
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
