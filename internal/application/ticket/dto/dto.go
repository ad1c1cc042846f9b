package dto

import (
	"html/template"
	"time"

	"fleetdesk/internal/domain/ticket"
)

type TicketDTO struct {
	ID           int       `json:"id"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	Status       string    `json:"status"`
	Priority     string    `json:"priority"`
	Division     *string   `json:"division"`
	OfficeNumber *string   `json:"office_number"`
	Phone        *string   `json:"phone"`
	ClientName   *string   `json:"client_name"`
	Descr        *string   `json:"descr"`
	Title        string    `json:"title"`
}

// TicketView is a ticket prepared for the ticket page.
type TicketView struct {
	TicketDTO
	DescrHTML template.HTML
}

type CreateTicketRequest struct {
	CreatedBy    string  `json:"created_by" form:"created_by" binding:"required,max=100"`
	Priority     string  `json:"priority" form:"priority" binding:"required"`
	Title        string  `json:"title" form:"title" binding:"required,max=100"`
	Division     *string `json:"division" form:"division" binding:"omitempty,max=30"`
	OfficeNumber *string `json:"office_number" form:"office_number" binding:"omitempty,max=30"`
	Phone        *string `json:"phone" form:"phone" binding:"omitempty,max=10"`
	ClientName   *string `json:"client_name" form:"client_name" binding:"omitempty,max=100"`
	Descr        *string `json:"descr" form:"descr" binding:"omitempty,max=500"`
}

type UpdateTicketRequest struct {
	Priority     string  `json:"priority" binding:"required"`
	Status       *string `json:"status" binding:"omitempty,max=20,oneof=open closed in-progress awaiting"`
	Title        *string `json:"title" binding:"omitempty,max=100"`
	Division     *string `json:"division" binding:"omitempty,max=30"`
	OfficeNumber *string `json:"office_number" binding:"omitempty,max=30"`
	Phone        *string `json:"phone" binding:"omitempty,max=10"`
	ClientName   *string `json:"client_name" binding:"omitempty,max=100"`
	Descr        *string `json:"descr" binding:"omitempty,max=500"`
}

// ListQuery is bound from the ticket list query string.
type ListQuery struct {
	Status []string `form:"status"`
}

func ToTicketDTO(t *ticket.Ticket) TicketDTO {
	return TicketDTO{
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

func ToTicketDTOs(ts []*ticket.Ticket) []TicketDTO {
	out := make([]TicketDTO, 0, len(ts))
	for _, t := range ts {
		out = append(out, ToTicketDTO(t))
	}
	return out
}
