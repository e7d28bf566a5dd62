package main

import (
	"log"
	"net/http"
	"time"

	"github.com/F-Parkar/price-tracker/config"
	"github.com/F-Parkar/price-tracker/database"
	"github.com/F-Parkar/price-tracker/handlers"
	"github.com/F-Parkar/price-tracker/middleware"
	"github.com/F-Parkar/price-tracker/repository"
	"github.com/F-Parkar/price-tracker/scheduler"
	"github.com/F-Parkar/price-tracker/scraper"
	"github.com/F-Parkar/price-tracker/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	// Initialize database
	if err := database.InitDatabase(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDatabase()

	if err := database.CreateTables(); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	// Initialize repositories and services
	productRepo := repository.NewProductRepository()
	mailer := services.NewEmailService(cfg)

	fetcher := scraper.NewPriceFetcher(scraper.FetchConfig{
		StaticTimeout: cfg.StaticTimeout,
		BodyWait:      cfg.BodyWait,
		SettleDelay:   cfg.SettleDelay,
	})

	// Initialize handlers
	h := handlers.NewHandlers(productRepo, fetcher)

	// Initialize and start price checker
	priceChecker := scheduler.NewPriceChecker(cfg.CheckInterval, fetcher, mailer)
	priceChecker.Start()
	defer priceChecker.Stop()

	// Setup router
	r := mux.NewRouter()

	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.RateLimitMiddleware(cfg.RateLimit))

	r.HandleFunc("/health", healthCheck).Methods("GET")

	apiV1 := r.PathPrefix("/api/v1").Subrouter()
	apiV1.HandleFunc("/products", h.AddProduct).Methods("POST")
	apiV1.HandleFunc("/products", h.GetProducts).Methods("GET")
	apiV1.HandleFunc("/products/{id}", h.GetProduct).Methods("GET")
	apiV1.HandleFunc("/products/{id}", h.DeleteProduct).Methods("DELETE")
	apiV1.HandleFunc("/products/{id}/check", h.CheckPriceNow).Methods("POST")
	apiV1.HandleFunc("/products/{id}/history", h.GetPriceHistory).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigins},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	log.Printf("Server starting on %s:%s", cfg.Host, cfg.Port)
	log.Printf("   GET    /health - Health check")
	log.Printf("   POST   /api/v1/products - Add product to track")
	log.Printf("   GET    /api/v1/products - List tracked products")
	log.Printf("   POST   /api/v1/products/{id}/check - Check price now")
	log.Printf("   GET    /api/v1/products/{id}/history - Price history")

	log.Fatal(http.ListenAndServe(cfg.Host+":"+cfg.Port, c.Handler(r)))
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"service":"price-tracker","status":"healthy","timestamp":"` +
		time.Now().Format(time.RFC3339) + `"}`))
}
