// controllers/appointment.go
package controllers

import (
	"net/http"
	"strconv"

	"pharmaflow-backend/config"
	"pharmaflow-backend/services"
	"pharmaflow-backend/utils"

	"github.com/gin-gonic/gin"
)

// BookAppointmentInput defines the expected JSON structure for booking
// an appointment
type BookAppointmentInput struct {
	ClientID       *int   `json:"client_id"`
	ServiceID      int    `json:"service_id" binding:"required"`
	ProfessionalID int    `json:"professional_id" binding:"required"`
	Date           string `json:"date" binding:"required"`
	StartTime      string `json:"start_time" binding:"required"`
}

// BookAppointment books a new appointment if the requested interval is
// free for the professional
func BookAppointment(c *gin.Context) {
	var input BookAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	schedule := services.NewScheduleService(config.Records)
	appointment, err := schedule.Book(services.BookingInput{
		ClientID:       input.ClientID,
		ServiceID:      input.ServiceID,
		ProfessionalID: input.ProfessionalID,
		Date:           input.Date,
		StartTime:      input.StartTime,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, appointment)
}

// GetDayGrid returns the fixed-bucket occupancy grid for a
// professional and day. Display only; booking always goes through
// BookAppointment.
func GetDayGrid(c *gin.Context) {
	professionalID, err := strconv.Atoi(c.Query("professional_id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid professional_id")
		return
	}
	date := c.Query("date")
	if date == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "date is required")
		return
	}

	schedule := services.NewScheduleService(config.Records)
	grid, err := schedule.DayGrid(professionalID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"professional_id": professionalID,
		"date":            date,
		"slots":           grid,
	})
}
