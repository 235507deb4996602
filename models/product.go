package models

type Product struct {
	ID            int     `gorm:"primaryKey" json:"id"`
	Name          string  `gorm:"not null" json:"name"`
	UnitPrice     float64 `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	StockQuantity int     `gorm:"default:0;check:stock_quantity >= 0" json:"stock_quantity"`
}
