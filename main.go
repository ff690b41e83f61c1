package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/fadhlanhapp/dinetab-backend/models"
	"github.com/fadhlanhapp/dinetab-backend/repository"
	"github.com/fadhlanhapp/dinetab-backend/routes"
	"github.com/fadhlanhapp/dinetab-backend/utils"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Initialize New Relic
	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName("DineTab API"),
		newrelic.ConfigLicense(os.Getenv("NEW_RELIC_LICENSE_KEY")),
		newrelic.ConfigDistributedTracerEnabled(true),
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize New Relic: %v", err)
	}

	// Initialize store; the database is an optional write-through behind it
	store := repository.NewStore()
	if err := repository.InitDB(); err != nil {
		log.Printf("Warning: database unavailable, running memory-only: %v", err)
	} else {
		defer repository.CloseDB()
		orderRepo := repository.NewOrderRepository()
		txRepo := repository.NewTransactionRepository()
		shiftRepo := repository.NewShiftRepository()
		if err := store.LoadPersisted(orderRepo, txRepo, shiftRepo); err != nil {
			log.Printf("Warning: could not restore saved state: %v", err)
		}
		store.AttachPersistence(orderRepo, txRepo, shiftRepo)
	}

	seedTables(store)

	// Set up Gin router
	router := gin.Default()

	// Add New Relic middleware
	if app != nil {
		router.Use(nrgin.Middleware(app))
	}

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Change to your frontend URL in production
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Set up routes
	routes.SetupRoutes(router, store)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Start server
	log.Printf("Server starting on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// seedTables lays out the default floor plan on an empty store.
func seedTables(store *repository.Store) {
	if len(store.Tables.List()) > 0 {
		return
	}
	sections := map[string]int{"Main": 8, "Patio": 4, "Bar": 4}
	n := 1
	for _, section := range []string{"Main", "Patio", "Bar"} {
		for i := 0; i < sections[section]; i++ {
			store.Tables.Create(&models.Table{
				Name:     fmt.Sprintf("T%d", n),
				Section:  section,
				Status:   utils.TableStatusAvailable,
				Capacity: 4,
			})
			n++
		}
	}
}
