package models

// Purchase records a stock intake: products arriving from a supplier.
type Purchase struct {
	ID        int     `gorm:"primaryKey" json:"id"`
	ProductID int     `gorm:"index;not null" json:"product_id"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	TotalCost float64 `gorm:"type:decimal(10,2)" json:"total_cost"`
	Supplier  string  `json:"supplier"`
	Date      string  `gorm:"type:varchar(10)" json:"date"` // YYYY-MM-DD
}
