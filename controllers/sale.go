// controllers/sale.go
package controllers

import (
	"net/http"

	"pharmaflow-backend/config"
	"pharmaflow-backend/services"
	"pharmaflow-backend/utils"

	"github.com/gin-gonic/gin"
)

// CreateSaleInput defines the expected JSON structure for a counter
// sale
type CreateSaleInput struct {
	ClientID      *int    `json:"client_id"`
	ProductID     int     `json:"product_id" binding:"required"`
	Quantity      int     `json:"quantity" binding:"required,min=1"`
	UnitPrice     float64 `json:"unit_price" binding:"min=0"`
	PaymentMethod string  `json:"payment_method" binding:"required"`
	Origin        string  `json:"origin"`
	Date          string  `json:"date"`
}

// CreateSale registers a sale: header, line item and stock decrement.
func CreateSale(c *gin.Context) {
	var input CreateSaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	sales := services.NewSalesService(config.Records)
	sale, err := sales.Sell(services.SaleInput{
		ClientID:      input.ClientID,
		ProductID:     input.ProductID,
		Quantity:      input.Quantity,
		UnitPrice:     input.UnitPrice,
		PaymentMethod: input.PaymentMethod,
		Origin:        input.Origin,
		Date:          input.Date,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"sale":    sale,
		"receipt": sales.Receipt(sale),
	})
}
