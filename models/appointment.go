package models

// Appointment statuses. Only the transition into Scheduled is handled
// by this backend; Completed and Cancelled are set by later workflow.
const (
	StatusScheduled = "Scheduled"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

type Appointment struct {
	ID              int    `gorm:"primaryKey" json:"id"`
	ClientID        *int   `gorm:"index" json:"client_id"`
	ServiceID       int    `gorm:"index;not null" json:"service_id"`
	ProfessionalID  int    `gorm:"index;not null" json:"professional_id"`
	Date            string `gorm:"type:varchar(10);index;not null" json:"date"` // YYYY-MM-DD
	StartTime       string `gorm:"type:varchar(8);not null" json:"start_time"`  // HH:MM:SS
	DurationMinutes int    `gorm:"default:30" json:"duration_minutes"`
	Status          string `gorm:"type:varchar(20);default:'Scheduled'" json:"status"`
}
