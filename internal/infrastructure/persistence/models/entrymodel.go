package models

import "time"

type EntryModel struct {
	UUID      int        `gorm:"column:uuid;primaryKey;autoIncrement"`
	UUIDLabel int        `gorm:"column:uuid_label;not null;index"`
	CreatedBy string     `gorm:"column:created_by;size:100;not null"`
	CreatedAt time.Time  `gorm:"column:created_at;not null;autoCreateTime;index"`
	Reason    string     `gorm:"column:reason;size:100;not null"`
	Status    string     `gorm:"column:status;size:100;not null;default:open;index"`
	SignedBy  *string    `gorm:"column:signed_by;size:100"`
	SignedAt  *time.Time `gorm:"column:signed_at"`

	// Note: uuid_label is not a foreign key; history outlives deleted computers.
}

func (EntryModel) TableName() string {
	return "entries"
}

// JobRow is an entry joined with the host name of its computer.
type JobRow struct {
	EntryModel
	HostName string `gorm:"column:host_name"`
}

// PolicyRow is the computer side of a job.
type PolicyRow struct {
	UUIDLabel      int     `gorm:"column:uuid_label"`
	HostName       string  `gorm:"column:host_name"`
	MACAddress     string  `gorm:"column:mac_address"`
	IPv4Address    string  `gorm:"column:ipv4_address"`
	UserName       *string `gorm:"column:user_name"`
	OfficeLocation *string `gorm:"column:office_location"`
	Telephone      *string `gorm:"column:telephone"`
}
