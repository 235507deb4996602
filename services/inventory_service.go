// services/inventory_service.go
package services

import (
	"errors"
	"time"

	"pharmaflow-backend/models"
	"pharmaflow-backend/store"
)

const (
	tableProducts  = "products"
	tablePurchases = "purchases"

	// stockRetries bounds the compare-and-swap loop on stock writes.
	stockRetries = 3
)

// InventoryService is the only writer of product stock. Both mutations
// follow the same shape: read the live stock immediately before
// deciding, then write with a guard on the value just read, retrying
// from a fresh read when a concurrent writer got there first.
type InventoryService struct {
	store store.Store
}

func NewInventoryService(st store.Store) *InventoryService {
	return &InventoryService{store: st}
}

// Decrement removes quantity units from the product's stock and
// returns the new stock level. The check and the write are tied
// together by a conditional update, so concurrent sales cannot drive
// the stock negative.
func (s *InventoryService) Decrement(productID, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, validationf("quantity must be positive")
	}
	return s.adjust(productID, -quantity)
}

// Increment adds quantity units to the product's stock and returns the
// new stock level.
func (s *InventoryService) Increment(productID, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, validationf("quantity must be positive")
	}
	return s.adjust(productID, quantity)
}

func (s *InventoryService) adjust(productID, delta int) (int, error) {
	if productID == 0 {
		return 0, validationf("product is required")
	}

	for attempt := 0; attempt < stockRetries; attempt++ {
		live, err := s.liveStock(productID)
		if err != nil {
			return 0, err
		}
		next := live + delta
		if next < 0 {
			return 0, &InsufficientStockError{
				ProductID: productID,
				Requested: -delta,
				Available: live,
			}
		}

		// Guarded on the stock we just read: if another writer moved
		// it in between, the write misses and we re-read.
		ok, err := s.store.UpdateWhere(tableProducts,
			store.Record{"stock_quantity": next},
			productID,
			store.Filters{"stock_quantity": live})
		if err != nil {
			return 0, err
		}
		if ok {
			return next, nil
		}
	}

	return 0, &store.PersistenceError{
		Op:    "update",
		Table: tableProducts,
		Err:   errors.New("stock contention: conditional write kept missing"),
	}
}

// PurchaseInput is a stock intake reported by the caller.
type PurchaseInput struct {
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	TotalCost float64 `json:"total_cost"`
	Supplier  string  `json:"supplier"`
	Date      string  `json:"date"`
}

// RecordPurchase persists the purchase row and then increments the
// product's stock, returning the purchase and the new stock level. If
// the increment fails the purchase row is deleted again so no intake
// is recorded without its stock adjustment.
func (s *InventoryService) RecordPurchase(input PurchaseInput) (models.Purchase, int, error) {
	var purchase models.Purchase

	if input.ProductID == 0 {
		return purchase, 0, validationf("product is required")
	}
	if input.Quantity <= 0 {
		return purchase, 0, validationf("quantity must be positive")
	}
	if _, err := s.liveStock(input.ProductID); err != nil {
		return purchase, 0, err
	}

	date := input.Date
	if date == "" {
		date = time.Now().Format(dateLayout)
	}

	created, err := s.store.Insert(tablePurchases, store.Record{
		"product_id": input.ProductID,
		"quantity":   input.Quantity,
		"total_cost": input.TotalCost,
		"supplier":   input.Supplier,
		"date":       date,
	})
	if err != nil {
		return purchase, 0, err
	}
	if err := store.Decode(created, &purchase); err != nil {
		return purchase, 0, &store.PersistenceError{Op: "decode", Table: tablePurchases, Err: err}
	}

	stock, err := s.Increment(input.ProductID, input.Quantity)
	if err != nil {
		if delErr := s.store.Delete(tablePurchases, purchase.ID); delErr != nil {
			return purchase, 0, delErr
		}
		return models.Purchase{}, 0, err
	}
	return purchase, stock, nil
}

// liveStock reads the product's current stock straight from the store.
func (s *InventoryService) liveStock(productID int) (int, error) {
	rows, err := s.store.Select(tableProducts, store.Filters{"id": productID})
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, validationf("products: no row with id %d", productID)
	}
	var product models.Product
	if err := store.Decode(rows[0], &product); err != nil {
		return 0, &store.PersistenceError{Op: "decode", Table: tableProducts, Err: err}
	}
	return product.StockQuantity, nil
}
