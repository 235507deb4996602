package models

type Client struct {
	ID    int    `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"not null" json:"name"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}
