package routes

import (
	"pharmaflow-backend/config"
	"pharmaflow-backend/controllers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	api := r.Group("/api")
	{
		// Appointment routes
		appointments := api.Group("/appointments")
		{
			appointments.POST("", controllers.BookAppointment)
			appointments.GET("/grid", controllers.GetDayGrid)
		}

		// Sale routes
		api.POST("/sales", controllers.CreateSale)

		// Purchase (stock intake) routes
		api.POST("/purchases", controllers.CreatePurchase)

		// Product routes (read-only)
		products := api.Group("/products")
		{
			products.GET("", controllers.GetProducts)
			products.GET("/:id", controllers.GetProduct)
		}
	}

	return r
}
