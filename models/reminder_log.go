// models/reminder_log.go
package models

type ReminderLog struct {
	ID            int    `gorm:"primaryKey" json:"id"`
	AppointmentID int    `gorm:"index;not null" json:"appointment_id"`
	ClientID      int    `gorm:"index" json:"client_id"`
	Channel       string `gorm:"type:varchar(20)" json:"channel"` // whatsapp, sms
	Message       string `gorm:"type:text" json:"message"`
	Status        string `gorm:"type:varchar(20)" json:"status"` // sent, failed, skipped
	ErrorMessage  string `gorm:"type:text" json:"error_message"`
	SentAt        string `json:"sent_at"`
}
