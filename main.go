package main

import (
	"fmt"
	"log"
	"os"

	"pharmaflow-backend/config"
	"pharmaflow-backend/models"
	"pharmaflow-backend/routes"
	"pharmaflow-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Client{},
		&models.Professional{},
		&models.Service{},
		&models.Product{},
		&models.Appointment{},
		&models.Sale{},
		&models.SaleItem{},
		&models.Purchase{},
		&models.ReminderLog{},
	)
}

func main() {
	reminders := services.NewReminderService(config.Records)
	reminders.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
