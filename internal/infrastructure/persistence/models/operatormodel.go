package models

type OperatorModel struct {
	ID    int    `gorm:"column:id;primaryKey;autoIncrement"`
	Rank  string `gorm:"column:rank;size:100;not null"`
	FName string `gorm:"column:fname;size:100;not null"`
	LName string `gorm:"column:lname;size:100;not null"`
}

func (OperatorModel) TableName() string {
	return "operators"
}
