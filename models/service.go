package models

type Service struct {
	ID              int     `gorm:"primaryKey" json:"id"`
	Name            string  `gorm:"not null" json:"name"`
	Price           float64 `gorm:"type:decimal(10,2)" json:"price"`
	DurationMinutes int     `gorm:"default:30" json:"duration_minutes"`
	IsActive        bool    `gorm:"default:true" json:"is_active"`
}
