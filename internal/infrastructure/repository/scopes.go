package repository

import (
	"github.com/google/uuid"
	"github.com/sangkips/retailpos-api/pkg/pagination"
	"gorm.io/gorm"
)

// Paginate applies offset and limit for p. A nil p returns the query unchanged.
func Paginate(p *pagination.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p == nil {
			return db
		}
		p.Validate()
		return db.Offset(p.Offset()).Limit(p.PerPage)
	}
}

// BillingDateBetween keeps rows whose billing_date lies in [from, to]. Empty bounds are open.
func BillingDateBetween(from, to string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if from != "" {
			db = db.Where("billing_date >= ?", from)
		}
		if to != "" {
			db = db.Where("billing_date <= ?", to)
		}
		return db
	}
}

func likePattern(s string) string {
	return "%" + s + "%"
}

// validID reports whether id can be compared against a uuid column. Postgres
// rejects anything else with a cast error instead of matching no rows.
func validID(id string) bool {
	return uuid.Validate(id) == nil
}

func validIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			out = append(out, id)
		}
	}
	return out
}
