package postgres

import (
	"strings"

	"gorm.io/gorm"
)

// SharedHelpers holds query building shared by the postgres repositories.
type SharedHelpers struct {
	db *gorm.DB
}

func NewSharedHelpers(db *gorm.DB) *SharedHelpers {
	return &SharedHelpers{db: db}
}

// ApplyPaginationAndSort orders by sortBy and applies limit/offset when set.
// sortBy must come from a fixed column list, never from user input.
func (h *SharedHelpers) ApplyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, limit, offset int) *gorm.DB {
	if sortBy != "" {
		order := "ASC"
		if strings.EqualFold(sortOrder, "desc") {
			order = "DESC"
		}
		query = query.Order(sortBy + " " + order)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}

func getDB(db, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}
