package mappers

import (
	"fleetdesk/internal/domain/entry"
	"fleetdesk/internal/infrastructure/persistence/models"
)

func EntryToModel(e *entry.Entry) *models.EntryModel {
	return &models.EntryModel{
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

func EntryToEntity(m *models.EntryModel) *entry.Entry {
	return &entry.Entry{
		ID:        m.UUID,
		Label:     m.UUIDLabel,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
		Reason:    m.Reason,
		Status:    m.Status,
		SignedBy:  m.SignedBy,
		SignedAt:  m.SignedAt,
	}
}

func EntriesToEntities(ms []models.EntryModel) []*entry.Entry {
	out := make([]*entry.Entry, 0, len(ms))
	for i := range ms {
		out = append(out, EntryToEntity(&ms[i]))
	}
	return out
}

func JobsToEntities(rows []models.JobRow) []*entry.Job {
	out := make([]*entry.Job, 0, len(rows))
	for i := range rows {
		out = append(out, &entry.Job{
			Entry:    *EntryToEntity(&rows[i].EntryModel),
			HostName: rows[i].HostName,
		})
	}
	return out
}

func PolicyToEntity(r *models.PolicyRow) *entry.Policy {
	return &entry.Policy{
		Label:          r.UUIDLabel,
		HostName:       r.HostName,
		MACAddress:     r.MACAddress,
		IPv4Address:    r.IPv4Address,
		UserName:       r.UserName,
		OfficeLocation: r.OfficeLocation,
		Telephone:      r.Telephone,
	}
}
