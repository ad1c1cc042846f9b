// Package models holds the gorm table definitions.
package models

// All returns every model managed by AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&ComputerModel{},
		&EntryModel{},
		&OperatorModel{},
		&TicketModel{},
	}
}
