package repository

import (
	"strings"

	"gorm.io/gorm"
)

// FlagScope keeps only rows whose boolean column is true, e.g. the active
// customers or the available products.
func FlagScope(column string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" = ?", true)
	}
}

// SearchScope matches term as a case-insensitive substring of any of the
// columns. Postgres uses ILIKE; other dialects (sqlite in tests) compare
// lowercased values.
func SearchScope(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + strings.ToLower(term) + "%"
		clauses := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, c := range columns {
			if db.Dialector.Name() == "postgres" {
				clauses[i] = c + " ILIKE ?"
			} else {
				clauses[i] = "LOWER(" + c + ") LIKE ?"
			}
			args[i] = pattern
		}
		return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
}
