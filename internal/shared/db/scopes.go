package db

import (
	"gorm.io/gorm"
)

// Paginate applies limit/offset. A zero limit means no upper bound.
//
//	db.Model(&models.ComputerModel{}).Scopes(db.Paginate(limit, offset)).Find(&rows)
func Paginate(limit, offset int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if offset > 0 {
			db = db.Offset(offset)
		}
		if limit > 0 {
			db = db.Limit(limit)
		}
		return db
	}
}

// OrderDesc orders by column descending. column must be a trusted identifier.
func OrderDesc(column string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(column + " DESC")
	}
}
