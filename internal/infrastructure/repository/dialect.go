package repository

import "gorm.io/gorm"

// castText renders a dialect specific integer-to-text cast of column.
func castText(db *gorm.DB, column string) string {
	if db.Dialector.Name() == "mysql" {
		return "CAST(" + column + " AS CHAR)"
	}
	return "CAST(" + column + " AS TEXT)"
}
