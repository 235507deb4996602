// controllers/helpers.go
package controllers

import (
	"errors"
	"net/http"

	"pharmaflow-backend/services"
	"pharmaflow-backend/store"
	"pharmaflow-backend/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the service error taxonomy onto HTTP
// statuses. Anything unrecognized is treated as a server fault.
func respondServiceError(c *gin.Context, err error) {
	var validation *services.ValidationError
	var conflict *services.ConflictError
	var stock *services.InsufficientStockError
	var persistence *store.PersistenceError

	switch {
	case errors.As(err, &validation):
		utils.RespondWithError(c, http.StatusBadRequest, validation.Message)
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":                   err.Error(),
			"conflicting_appointment": conflict.Existing,
		})
	case errors.As(err, &stock):
		c.JSON(http.StatusConflict, gin.H{
			"error":           err.Error(),
			"available_stock": stock.Available,
		})
	case errors.As(err, &persistence):
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Unexpected error")
	}
}
