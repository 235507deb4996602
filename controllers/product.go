// controllers/product.go
package controllers

import (
	"net/http"
	"strconv"

	"pharmaflow-backend/config"
	"pharmaflow-backend/models"
	"pharmaflow-backend/store"
	"pharmaflow-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetProducts lists every product with its live stock, for the selling
// screen. Read-only; stock mutations only happen through sales and
// purchases.
func GetProducts(c *gin.Context) {
	rows, err := config.Records.Select("products", nil)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}

	products := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		var product models.Product
		if err := store.Decode(row, &product); err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to decode product")
			return
		}
		products = append(products, product)
	}

	c.JSON(http.StatusOK, products)
}

// GetProduct retrieves a single product by ID.
func GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	rows, err := config.Records.Select("products", store.Filters{"id": id})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if len(rows) == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		return
	}

	var product models.Product
	if err := store.Decode(rows[0], &product); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to decode product")
		return
	}

	c.JSON(http.StatusOK, product)
}
