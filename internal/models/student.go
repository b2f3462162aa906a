package models

import "time"

// StudentRecord is one saved report card. Rows are written once and never updated.
type StudentRecord struct {
	ID                   uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name                 string    `gorm:"type:text;not null" json:"name"`
	RollNumber           string    `gorm:"column:roll_number;type:text;uniqueIndex;not null" json:"roll_number"`
	Midterm              float64   `gorm:"not null" json:"midterm"`
	Endterm              float64   `gorm:"not null" json:"endterm"`
	Internal             float64   `gorm:"not null" json:"internal"`
	MidtermContribution  float64   `gorm:"not null" json:"midterm_contribution"`
	EndtermContribution  float64   `gorm:"not null" json:"endterm_contribution"`
	InternalContribution float64   `gorm:"not null" json:"internal_contribution"`
	FinalScore           float64   `gorm:"not null" json:"final_score"`
	RecordedAt           time.Time `gorm:"not null;index" json:"recorded_at"`
}

// TableName keeps the table name stable regardless of GORM naming strategy.
func (StudentRecord) TableName() string {
	return "students"
}
