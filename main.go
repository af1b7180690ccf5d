package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"reservation-backend/config"
	"reservation-backend/controllers"
	"reservation-backend/routes"
	"reservation-backend/services"
	"reservation-backend/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	// Required token secret (fatal if missing)
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("❌ ERROR: JWT_SECRET environment variable is not set. Cannot issue access tokens.")
	}

	db, err := config.ConnectDatabase()
	if err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	log.Println("✅ Database connection established and migrations applied.")

	rdb, err := config.ConnectRedis()
	if err != nil {
		log.Fatalf("❌ Redis connect failed: %v", err)
	}
	if rdb != nil {
		log.Println("✅ Redis connected; logout revocation enabled.")
	}

	// Initialize services
	authService, err := services.NewAuthService(db, rdb, []byte(secret))
	if err != nil {
		log.Fatalf("❌ Auth service init failed: %v", err)
	}
	roomService := services.NewRoomService(db)
	reservationService := services.NewReservationService(db)
	availabilityService := services.NewAvailabilityService(db)
	workflow := services.NewReservationWorkflow(db, roomService, reservationService, availabilityService)

	// Initialize controllers
	authController := controllers.NewAuthController(authService)
	roomController := controllers.NewRoomController(roomService)
	reservationController := controllers.NewReservationController(workflow, reservationService)
	adminController := controllers.NewAdminController(reservationService, db)

	router := routes.SetupRouter(authService, authController, roomController, reservationController, adminController)

	port := utils.EnvOrDefault("PORT", "8080")
	addr := ":" + port

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
