// services/sales_service.go
package services

import (
	"fmt"
	"strings"
	"time"

	"pharmaflow-backend/models"
	"pharmaflow-backend/store"

	"github.com/google/uuid"
)

const (
	tableSales     = "sales"
	tableSaleItems = "sale_items"
)

var paymentMethods = map[string]bool{
	models.PaymentPix:      true,
	models.PaymentCash:     true,
	models.PaymentCard:     true,
	models.PaymentInvoice:  true,
	models.PaymentDonation: true,
}

// SaleInput is a counter sale supplied by the caller: one product, its
// quantity and the payment taken. Client is optional (walk-in sale).
type SaleInput struct {
	ClientID      *int    `json:"client_id"`
	ProductID     int     `json:"product_id"`
	Quantity      int     `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
	PaymentMethod string  `json:"payment_method"`
	Origin        string  `json:"origin"`
	Date          string  `json:"date"`
}

// SalesService composes a sale header, its line item and the stock
// decrement into one logical operation. The store gives no cross-call
// transaction, so on a late-step failure the rows already inserted are
// deleted again before the error is returned.
type SalesService struct {
	store     store.Store
	inventory *InventoryService
}

func NewSalesService(st store.Store) *SalesService {
	return &SalesService{store: st, inventory: NewInventoryService(st)}
}

// Sell validates the input, double-checks live stock, then persists
// header, line item and stock decrement in that order. It returns the
// completed Sale only when all three steps succeeded; otherwise it
// rolls the partial writes back and returns the failure.
func (s *SalesService) Sell(input SaleInput) (models.Sale, error) {
	var sale models.Sale

	if input.ProductID == 0 {
		return sale, validationf("product is required")
	}
	if input.Quantity < 1 {
		return sale, validationf("quantity must be at least 1")
	}
	if !paymentMethods[input.PaymentMethod] {
		return sale, validationf("unknown payment method %q", input.PaymentMethod)
	}
	origin := input.Origin
	if origin == "" {
		origin = models.OriginCounter
	}
	if origin != models.OriginCounter && origin != models.OriginAppointment {
		return sale, validationf("unknown sale origin %q", input.Origin)
	}

	product, err := s.product(input.ProductID)
	if err != nil {
		return sale, err
	}

	// Live stock check before anything is written. The ledger repeats
	// it under a conditional write, this one just avoids inserting a
	// header for a sale that cannot complete.
	if product.StockQuantity < input.Quantity {
		return sale, &InsufficientStockError{
			ProductID: input.ProductID,
			Requested: input.Quantity,
			Available: product.StockQuantity,
		}
	}

	unitPrice := input.UnitPrice
	if input.PaymentMethod == models.PaymentDonation {
		unitPrice = 0
	} else if unitPrice == 0 {
		unitPrice = product.UnitPrice
	}
	total := unitPrice * float64(input.Quantity)
	timestamp := saleTimestamp(input.Date)
	number := saleNumber()

	headerRec := store.Record{
		"number":         number,
		"client_id":      nil,
		"total":          total,
		"payment_method": input.PaymentMethod,
		"origin":         origin,
		"timestamp":      timestamp,
	}
	if input.ClientID != nil {
		headerRec["client_id"] = *input.ClientID
	}

	created, err := s.store.Insert(tableSales, headerRec)
	if err != nil {
		return sale, err
	}
	if err := store.Decode(created, &sale); err != nil {
		return sale, &store.PersistenceError{Op: "decode", Table: tableSales, Err: err}
	}

	itemRec, err := s.store.Insert(tableSaleItems, store.Record{
		"sale_id":    sale.ID,
		"product_id": input.ProductID,
		"quantity":   input.Quantity,
		"unit_price": unitPrice,
	})
	if err != nil {
		s.rollback(sale.ID, 0)
		return models.Sale{}, err
	}
	var item models.SaleItem
	if err := store.Decode(itemRec, &item); err != nil {
		s.rollback(sale.ID, 0)
		return models.Sale{}, &store.PersistenceError{Op: "decode", Table: tableSaleItems, Err: err}
	}

	if _, err := s.inventory.Decrement(input.ProductID, input.Quantity); err != nil {
		s.rollback(sale.ID, item.ID)
		return models.Sale{}, err
	}

	sale.Items = []models.SaleItem{item}
	return sale, nil
}

// Receipt renders a plain-text proof of sale for the counter.
func (s *SalesService) Receipt(sale models.Sale) string {
	clientName := "Walk-in Customer"
	if sale.ClientID != nil {
		if name, err := s.name(tableClients, *sale.ClientID); err == nil && name != "" {
			clientName = name
		}
	}

	var b strings.Builder
	line := strings.Repeat("=", 32)
	thin := strings.Repeat("-", 32)
	fmt.Fprintln(&b, line)
	fmt.Fprintln(&b, "         PHARMAFLOW")
	fmt.Fprintln(&b, line)
	fmt.Fprintf(&b, "Receipt: %s\n", sale.Number)
	fmt.Fprintf(&b, "Date: %s\n", sale.Timestamp)
	fmt.Fprintf(&b, "Client: %s\n", clientName)
	fmt.Fprintln(&b, thin)
	for _, item := range sale.Items {
		productName, err := s.name(tableProducts, item.ProductID)
		if err != nil || productName == "" {
			productName = fmt.Sprintf("product %d", item.ProductID)
		}
		fmt.Fprintf(&b, "Product: %s\n", productName)
		fmt.Fprintf(&b, "Qty: %d x %.2f\n", item.Quantity, item.UnitPrice)
	}
	fmt.Fprintln(&b, thin)
	fmt.Fprintf(&b, "Total: %.2f\n", sale.Total)
	fmt.Fprintf(&b, "Payment: %s\n", sale.PaymentMethod)
	fmt.Fprintln(&b, line)
	return b.String()
}

// rollback deletes the rows a failed sale left behind. Best effort;
// the caller of Sell sees the primary failure either way.
func (s *SalesService) rollback(saleID, itemID int) {
	if itemID != 0 {
		_ = s.store.Delete(tableSaleItems, itemID)
	}
	if saleID != 0 {
		_ = s.store.Delete(tableSales, saleID)
	}
}

func (s *SalesService) product(id int) (models.Product, error) {
	var product models.Product
	rows, err := s.store.Select(tableProducts, store.Filters{"id": id})
	if err != nil {
		return product, err
	}
	if len(rows) == 0 {
		return product, validationf("products: no row with id %d", id)
	}
	if err := store.Decode(rows[0], &product); err != nil {
		return product, &store.PersistenceError{Op: "decode", Table: tableProducts, Err: err}
	}
	return product, nil
}

func (s *SalesService) name(table string, id int) (string, error) {
	rows, err := s.store.Select(table, store.Filters{"id": id})
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", nil
	}
	name, _ := rows[0]["name"].(string)
	return name, nil
}

func saleNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return "SAL-" + time.Now().Format("20060102") + "-" + suffix
}

// saleTimestamp combines the caller's sale date, when given, with the
// current clock time.
func saleTimestamp(date string) string {
	now := time.Now()
	if date != "" {
		if day, err := time.Parse(dateLayout, date); err == nil {
			now = time.Date(day.Year(), day.Month(), day.Day(),
				now.Hour(), now.Minute(), now.Second(), 0, now.Location())
		}
	}
	return now.Format(time.RFC3339)
}
