package models

type ComputerModel struct {
	UUIDLabel              int     `gorm:"column:uuid_label;primaryKey;autoIncrement:false"`
	HostName               string  `gorm:"column:host_name;size:50;uniqueIndex;not null"`
	MACAddress             string  `gorm:"column:mac_address;size:20;uniqueIndex;not null"`
	IPv4Address            string  `gorm:"column:ipv4_address;size:20;uniqueIndex;not null"`
	Network                string  `gorm:"column:network;size:20;not null;index"`
	OS                     string  `gorm:"column:os;size:20;not null"`
	NetworkAdapter         string  `gorm:"column:network_adapter;size:20;not null"`
	Secseal                int     `gorm:"column:secseal;uniqueIndex;not null"`
	Make                   *string `gorm:"column:make;size:20"`
	Model                  *string `gorm:"column:model;size:50"`
	PCSerialNumber         *string `gorm:"column:pc_serialnumber;size:50"`
	NetAdapterSerialNumber *string `gorm:"column:net_adapter_serialnumber;size:50"`
	UserName               *string `gorm:"column:user_name;size:100"`
	YAT                    *string `gorm:"column:yat;size:100"`
	OfficeNumber           *string `gorm:"column:office_number;size:20"`
	Telephone              *string `gorm:"column:telephone;size:20"`
	OfficeLocation         *string `gorm:"column:office_location;size:20"`
}

func (ComputerModel) TableName() string {
	return "computers"
}
