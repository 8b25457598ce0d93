// Package option carries reusable gorm query modifiers.
package option

import (
	"time"

	"github.com/ryokf/pos-pengeboran-sumur-sub000/pkg/db/pagination"
	"gorm.io/gorm"
)

type QueryOption interface {
	Apply(*gorm.DB) *gorm.DB
}

type queryOptionFunc func(*gorm.DB) *gorm.DB

func (f queryOptionFunc) Apply(db *gorm.DB) *gorm.DB { return f(db) }

// WithLimit caps the number of rows returned.
func WithLimit(limit int) QueryOption {
	return queryOptionFunc(func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return db
		}
		return db.Limit(limit)
	})
}

// WithOrder appends an ORDER BY clause.
func WithOrder(order string) QueryOption {
	return queryOptionFunc(func(db *gorm.DB) *gorm.DB {
		if order == "" {
			return db
		}
		return db.Order(order)
	})
}

// ApplyPagination decodes the cursor token and applies a keyset filter plus a
// limit of page size + 1 so callers can detect whether more rows exist.
func ApplyPagination(page pagination.Pagination) QueryOption {
	return queryOptionFunc(func(db *gorm.DB) *gorm.DB {
		size := page.PageSize
		if size <= 0 {
			size = 10
		}

		if page.PageToken != "" {
			cursor, err := pagination.DecodeCursor(page.PageToken)
			if err == nil && cursor != nil && cursor.CreatedAt != "" {
				if at, perr := time.Parse(time.RFC3339, cursor.CreatedAt); perr == nil {
					db = db.Where("(created_at, id) < (?, ?)", at, cursor.ID)
				}
			}
		}

		return db.Limit(size + 1)
	})
}
