// controllers/purchase.go
package controllers

import (
	"net/http"

	"pharmaflow-backend/config"
	"pharmaflow-backend/services"
	"pharmaflow-backend/utils"

	"github.com/gin-gonic/gin"
)

// CreatePurchaseInput defines the expected JSON structure for a stock
// intake
type CreatePurchaseInput struct {
	ProductID int     `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	TotalCost float64 `json:"total_cost" binding:"min=0"`
	Supplier  string  `json:"supplier"`
	Date      string  `json:"date"`
}

// CreatePurchase records a purchase and increments the product's
// stock.
func CreatePurchase(c *gin.Context) {
	var input CreatePurchaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	inventory := services.NewInventoryService(config.Records)
	purchase, stock, err := inventory.RecordPurchase(services.PurchaseInput{
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
		TotalCost: input.TotalCost,
		Supplier:  input.Supplier,
		Date:      input.Date,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"purchase":       purchase,
		"stock_quantity": stock,
	})
}
