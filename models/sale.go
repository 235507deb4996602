package models

// Payment methods accepted at the counter.
const (
	PaymentPix      = "Pix"
	PaymentCash     = "Cash"
	PaymentCard     = "Card"
	PaymentInvoice  = "Invoice"
	PaymentDonation = "Donation"
)

// Sale origins.
const (
	OriginCounter     = "Counter"
	OriginAppointment = "Appointment"
)

type Sale struct {
	ID            int     `gorm:"primaryKey" json:"id"`
	Number        string  `gorm:"uniqueIndex;not null" json:"number"`
	ClientID      *int    `gorm:"index" json:"client_id"`
	Total         float64 `gorm:"type:decimal(10,2);not null" json:"total"`
	PaymentMethod string  `gorm:"type:varchar(20);not null" json:"payment_method"`
	Origin        string  `gorm:"type:varchar(20);default:'Counter'" json:"origin"`
	Timestamp     string  `gorm:"not null" json:"timestamp"` // ISO datetime

	Items []SaleItem `gorm:"foreignKey:SaleID" json:"items"`
}

type SaleItem struct {
	ID        int     `gorm:"primaryKey" json:"id"`
	SaleID    int     `gorm:"index;not null" json:"sale_id"`
	ProductID int     `gorm:"index;not null" json:"product_id"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	UnitPrice float64 `gorm:"type:decimal(10,2);not null" json:"unit_price"`
}
