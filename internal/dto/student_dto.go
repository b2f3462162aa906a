package dto

import (
	"time"

	"github.com/noah-isme/gema-reportcard/internal/models"
	"github.com/noah-isme/gema-reportcard/internal/scoring"
)

// ReportCardRequest carries the raw marks entered for one student.
type ReportCardRequest struct {
	Name       string  `json:"name" validate:"required"`
	RollNumber string  `json:"roll_number" validate:"required"`
	Midterm    float64 `json:"midterm" validate:"gte=0,lte=50"`
	Endterm    float64 `json:"endterm" validate:"gte=0,lte=100"`
	Internal   float64 `json:"internal" validate:"gte=0,lte=100"`
}

// ReportCard is a computed, not yet persisted, report card.
type ReportCard struct {
	Name          string                `json:"name"`
	RollNumber    string                `json:"roll_number"`
	Midterm       float64               `json:"midterm"`
	Endterm       float64               `json:"endterm"`
	Internal      float64               `json:"internal"`
	Contributions scoring.Contributions `json:"contributions"`
}

// StudentRecordResponse is a persisted report card as shown to callers.
type StudentRecordResponse struct {
	ID         uint      `json:"id"`
	RecordedAt time.Time `json:"recorded_at"`
	ReportCard
}

// NewStudentRecordResponse maps a stored record into its response form.
func NewStudentRecordResponse(record models.StudentRecord) StudentRecordResponse {
	return StudentRecordResponse{
		ID:         record.ID,
		RecordedAt: record.RecordedAt,
		ReportCard: ReportCard{
			Name:       record.Name,
			RollNumber: record.RollNumber,
			Midterm:    record.Midterm,
			Endterm:    record.Endterm,
			Internal:   record.Internal,
			Contributions: scoring.Contributions{
				Midterm:  record.MidtermContribution,
				Endterm:  record.EndtermContribution,
				Internal: record.InternalContribution,
				Final:    record.FinalScore,
			},
		},
	}
}

// NewStudentRecordResponses maps a listing, preserving order.
func NewStudentRecordResponses(records []models.StudentRecord) []StudentRecordResponse {
	responses := make([]StudentRecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, NewStudentRecordResponse(record))
	}
	return responses
}
