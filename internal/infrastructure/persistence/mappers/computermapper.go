package mappers

import (
	"fleetdesk/internal/domain/computer"
	"fleetdesk/internal/infrastructure/persistence/models"
)

func ComputerToModel(c *computer.Computer) *models.ComputerModel {
	return &models.ComputerModel{
		UUIDLabel:              c.Label,
		HostName:               c.HostName,
		MACAddress:             c.MACAddress,
		IPv4Address:            c.IPv4Address,
		Network:                c.Network,
		OS:                     c.OS,
		NetworkAdapter:         c.NetworkAdapter,
		Secseal:                c.Secseal,
		Make:                   c.Make,
		Model:                  c.Model,
		PCSerialNumber:         c.PCSerialNumber,
		NetAdapterSerialNumber: c.NetAdapterSerialNumber,
		UserName:               c.UserName,
		YAT:                    c.YAT,
		OfficeNumber:           c.OfficeNumber,
		Telephone:              c.Telephone,
		OfficeLocation:         c.OfficeLocation,
	}
}

func ComputerToEntity(m *models.ComputerModel) *computer.Computer {
	if m == nil {
		return nil
	}
	return &computer.Computer{
		Label:                  m.UUIDLabel,
		HostName:               m.HostName,
		MACAddress:             m.MACAddress,
		IPv4Address:            m.IPv4Address,
		Network:                m.Network,
		OS:                     m.OS,
		NetworkAdapter:         m.NetworkAdapter,
		Secseal:                m.Secseal,
		Make:                   m.Make,
		Model:                  m.Model,
		PCSerialNumber:         m.PCSerialNumber,
		NetAdapterSerialNumber: m.NetAdapterSerialNumber,
		UserName:               m.UserName,
		YAT:                    m.YAT,
		OfficeNumber:           m.OfficeNumber,
		Telephone:              m.Telephone,
		OfficeLocation:         m.OfficeLocation,
	}
}

func ComputersToEntities(ms []models.ComputerModel) []*computer.Computer {
	out := make([]*computer.Computer, 0, len(ms))
	for i := range ms {
		out = append(out, ComputerToEntity(&ms[i]))
	}
	return out
}
