package models

import "time"

type TicketModel struct {
	ID           int       `gorm:"column:id;primaryKey;autoIncrement"`
	CreatedBy    string    `gorm:"column:created_by;size:100;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;not null;autoCreateTime;index"`
	Status       string    `gorm:"column:status;size:20;not null;default:open;index"`
	Priority     string    `gorm:"column:priority;size:20;not null"`
	Division     *string   `gorm:"column:division;size:30"`
	OfficeNumber *string   `gorm:"column:office_number;size:30"`
	Phone        *string   `gorm:"column:phone;size:10"`
	ClientName   *string   `gorm:"column:client_name;size:100"`
	Descr        *string   `gorm:"column:descr;size:500"`
	Title        string    `gorm:"column:title;size:100;not null"`
}

func (TicketModel) TableName() string {
	return "tickets"
}
