package mappers

import (
	"fleetdesk/internal/domain/ticket"
	"fleetdesk/internal/infrastructure/persistence/models"
)

func TicketToModel(t *ticket.Ticket) *models.TicketModel {
	return &models.TicketModel{
		ID:           t.ID,
		CreatedBy:    t.CreatedBy,
		CreatedAt:    t.CreatedAt,
		Status:       t.Status.String(),
		Priority:     t.Priority,
		Division:     t.Division,
		OfficeNumber: t.OfficeNumber,
		Phone:        t.Phone,
		ClientName:   t.ClientName,
		Descr:        t.Descr,
		Title:        t.Title,
	}
}

func TicketToEntity(m *models.TicketModel) *ticket.Ticket {
	return &ticket.Ticket{
		ID:           m.ID,
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
		Status:       ticket.Status(m.Status),
		Priority:     m.Priority,
		Division:     m.Division,
		OfficeNumber: m.OfficeNumber,
		Phone:        m.Phone,
		ClientName:   m.ClientName,
		Descr:        m.Descr,
		Title:        m.Title,
	}
}

func TicketsToEntities(ms []models.TicketModel) []*ticket.Ticket {
	out := make([]*ticket.Ticket, 0, len(ms))
	for i := range ms {
		out = append(out, TicketToEntity(&ms[i]))
	}
	return out
}
