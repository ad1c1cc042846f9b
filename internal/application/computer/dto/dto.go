package dto

import (
	entrydto "fleetdesk/internal/application/entry/dto"
	"fleetdesk/internal/domain/computer"
)

type ComputerDTO struct {
	UUIDLabel              int     `json:"uuid_label"`
	HostName               string  `json:"host_name"`
	MACAddress             string  `json:"mac_address"`
	IPv4Address            string  `json:"ipv4_address"`
	Network                string  `json:"network"`
	OS                     string  `json:"os"`
	NetworkAdapter         string  `json:"network_adapter"`
	Secseal                int     `json:"secseal"`
	Make                   *string `json:"make"`
	Model                  *string `json:"model"`
	PCSerialNumber         *string `json:"pc_serialnumber"`
	NetAdapterSerialNumber *string `json:"net_adapter_serialnumber"`
	UserName               *string `json:"user_name"`
	YAT                    *string `json:"yat"`
	OfficeNumber           *string `json:"office_number"`
	Telephone              *string `json:"telephone"`
	OfficeLocation         *string `json:"office_location"`
}

// ComputerDetailDTO is a computer with a page of its history.
type ComputerDetailDTO struct {
	Computer ComputerDTO         `json:"computer"`
	Entries  entrydto.HistoryDTO `json:"entries"`
}

type NetworkCountDTO struct {
	Network string `json:"network"`
	Count   int64  `json:"count"`
}

type CreateComputerResult struct {
	Computer int `json:"computer"`
	Entry    int `json:"entry"`
}

// RegistrationRequest is the body of both computer create and full update.
type RegistrationRequest struct {
	CreatedBy              string  `json:"created_by" form:"created_by" binding:"required,max=50"`
	UUIDLabel              *int    `json:"uuid_label" form:"uuid_label" binding:"omitempty,min=100"`
	HostName               string  `json:"host_name" form:"host_name" binding:"required,max=30"`
	MACAddress             string  `json:"mac_address" form:"mac_address" binding:"required,len=17,macaddr"`
	IPv4Address            string  `json:"ipv4_address" form:"ipv4_address" binding:"required,ipv4"`
	Network                string  `json:"network" form:"network" binding:"required,max=20"`
	OS                     string  `json:"os" form:"os" binding:"required,max=20"`
	NetworkAdapter         string  `json:"network_adapter" form:"network_adapter" binding:"required,max=20"`
	Secseal                *int    `json:"secseal" form:"secseal" binding:"required"`
	Make                   *string `json:"make" form:"make" binding:"omitempty,max=20"`
	Model                  *string `json:"model" form:"model" binding:"omitempty,max=50"`
	PCSerialNumber         *string `json:"pc_serialnumber" form:"pc_serialnumber" binding:"omitempty,max=50"`
	NetAdapterSerialNumber *string `json:"net_adapter_serialnumber" form:"net_adapter_serialnumber" binding:"omitempty,max=50"`
	UserName               *string `json:"user_name" form:"user_name" binding:"omitempty,max=50"`
	YAT                    *string `json:"yat" form:"yat" binding:"omitempty,max=50"`
	OfficeNumber           *string `json:"office_number" form:"office_number" binding:"omitempty,max=20"`
	Telephone              *string `json:"telephone" form:"telephone" binding:"omitempty,max=20"`
	OfficeLocation         *string `json:"office_location" form:"office_location" binding:"omitempty,max=20"`
}

// SearchQuery is bound from the generic search query string.
type SearchQuery struct {
	Search string `form:"search"`
}

// RegistrationForm feeds the new computer page.
type RegistrationForm struct {
	NextLabel    int
	NextHostName string
	Operators    []string
}

// ToComputer builds the entity; label is decided by the caller.
func (r *RegistrationRequest) ToComputer(label int) *computer.Computer {
	return &computer.Computer{
		Label:                  label,
		HostName:               r.HostName,
		MACAddress:             r.MACAddress,
		IPv4Address:            r.IPv4Address,
		Network:                r.Network,
		OS:                     r.OS,
		NetworkAdapter:         r.NetworkAdapter,
		Secseal:                *r.Secseal,
		Make:                   r.Make,
		Model:                  r.Model,
		PCSerialNumber:         r.PCSerialNumber,
		NetAdapterSerialNumber: r.NetAdapterSerialNumber,
		UserName:               r.UserName,
		YAT:                    r.YAT,
		OfficeNumber:           r.OfficeNumber,
		Telephone:              r.Telephone,
		OfficeLocation:         r.OfficeLocation,
	}
}

func ToComputerDTO(c *computer.Computer) ComputerDTO {
	return ComputerDTO{
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

func ToComputerDTOs(cs []*computer.Computer) []ComputerDTO {
	out := make([]ComputerDTO, 0, len(cs))
	for _, c := range cs {
		out = append(out, ToComputerDTO(c))
	}
	return out
}

func ToNetworkCountDTOs(counts []computer.NetworkCount) []NetworkCountDTO {
	out := make([]NetworkCountDTO, 0, len(counts))
	for _, nc := range counts {
		out = append(out, NetworkCountDTO{Network: nc.Network, Count: nc.Count})
	}
	return out
}
