package http

import (
	"gorm.io/gorm"

	"fleetdesk/internal/infrastructure/repository"
)

type repositories struct {
	computerRepo *repository.ComputerRepository
	entryRepo    *repository.EntryRepository
	operatorRepo *repository.OperatorRepository
	ticketRepo   *repository.TicketRepository
}

// newRepositories creates all repository instances from the database connection.
func newRepositories(gdb *gorm.DB) *repositories {
	return &repositories{
		computerRepo: repository.NewComputerRepository(gdb),
		entryRepo:    repository.NewEntryRepository(gdb),
		operatorRepo: repository.NewOperatorRepository(gdb),
		ticketRepo:   repository.NewTicketRepository(gdb),
	}
}
