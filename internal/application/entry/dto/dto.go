package dto

import (
	"time"

	"fleetdesk/internal/domain/entry"
)

// TrafficDateLayout is the day format of traffic histogram points.
const TrafficDateLayout = "2006-01-02"

type EntryDTO struct {
	UUID      int        `json:"uuid"`
	UUIDLabel int        `json:"uuid_label"`
	CreatedBy string     `json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
	Reason    string     `json:"reason"`
	Status    string     `json:"status"`
	SignedBy  *string    `json:"signed_by"`
	SignedAt  *time.Time `json:"signed_at"`
}

type JobDTO struct {
	EntryDTO
	HostName string `json:"host_name"`
}

type PolicyDTO struct {
	UUIDLabel      int     `json:"uuid_label"`
	HostName       string  `json:"host_name"`
	MACAddress     string  `json:"mac_address"`
	IPv4Address    string  `json:"ipv4_address"`
	UserName       *string `json:"user_name"`
	OfficeLocation *string `json:"office_location"`
	Telephone      *string `json:"telephone"`
}

type TrafficDTO struct {
	Date    string `json:"date"`
	Network string `json:"network"`
	Count   int64  `json:"count"`
}

// HistoryDTO is a page of a computer's entries.
type HistoryDTO struct {
	Count   int        `json:"count"`
	History []EntryDTO `json:"history"`
}

type CreateEntryRequest struct {
	UUIDLabel *int    `json:"uuid_label" binding:"required"`
	CreatedBy string  `json:"created_by" binding:"required,max=100"`
	Reason    string  `json:"reason" binding:"required,max=100"`
	Status    *string `json:"status" binding:"omitempty,max=100"`
	SignedBy  *string `json:"signed_by" binding:"omitempty,max=100"`
}

// SignEntryRequest holds the fields applied when a job is signed off.
type SignEntryRequest struct {
	UUIDLabel *int    `json:"uuid_label"`
	CreatedBy *string `json:"created_by" binding:"omitempty,max=100"`
	Reason    *string `json:"reason" binding:"omitempty,max=100"`
	Status    *string `json:"status" binding:"omitempty,max=100"`
	SignedBy  *string `json:"signed_by" binding:"omitempty,max=100"`
}

// JobsQuery is bound from the query string of the jobs endpoints.
type JobsQuery struct {
	Filter string `form:"filter" binding:"omitempty,oneof=all recent"`
	Sort   string `form:"sort" binding:"omitempty,oneof=signed_at created_at"`
}

func ToEntryDTO(e *entry.Entry) EntryDTO {
	return EntryDTO{
		UUID:      e.ID,
		UUIDLabel: e.Label,
		CreatedBy: e.CreatedBy,
		CreatedAt: e.CreatedAt,
		Reason:    e.Reason,
		Status:    e.Status,
		SignedBy:  e.SignedBy,
		SignedAt:  e.SignedAt,
	}
}

func ToEntryDTOs(entries []*entry.Entry) []EntryDTO {
	out := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, ToEntryDTO(e))
	}
	return out
}

func ToJobDTOs(jobs []*entry.Job) []JobDTO {
	out := make([]JobDTO, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, JobDTO{EntryDTO: ToEntryDTO(&j.Entry), HostName: j.HostName})
	}
	return out
}

func ToPolicyDTO(p *entry.Policy) *PolicyDTO {
	if p == nil {
		return nil
	}
	return &PolicyDTO{
		UUIDLabel:      p.Label,
		HostName:       p.HostName,
		MACAddress:     p.MACAddress,
		IPv4Address:    p.IPv4Address,
		UserName:       p.UserName,
		OfficeLocation: p.OfficeLocation,
		Telephone:      p.Telephone,
	}
}

func ToTrafficDTOs(points []entry.TrafficPoint) []TrafficDTO {
	out := make([]TrafficDTO, 0, len(points))
	for _, p := range points {
		out = append(out, TrafficDTO{
			Date:    p.Date.Format(TrafficDateLayout),
			Network: p.Network,
			Count:   p.Count,
		})
	}
	return out
}
