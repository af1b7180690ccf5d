package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"reservation-backend/controllers"
	"reservation-backend/middleware"
	"reservation-backend/services"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	auth *services.AuthService,
	ac *controllers.AuthController,
	rc *controllers.RoomController,
	resc *controllers.ReservationController,
	adc *controllers.AdminController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", ac.Register)
			authRoutes.POST("/login", ac.Login)
			authRoutes.POST("/logout", ac.Logout)
			authRoutes.POST("/forgot-password", ac.ForgotPassword)
			authRoutes.POST("/reset-password", ac.ResetPassword)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.GetRooms)
			rooms.GET("/:id", rc.GetRoom)

			adminRooms := rooms.Group("", middleware.RequireAuth(auth), middleware.RequireAdmin())
			{
				adminRooms.POST("", rc.CreateRoom)
				adminRooms.PATCH("/:id", rc.UpdateRoom)
				adminRooms.DELETE("/:id", rc.DeleteRoom)
			}
		}

		reservations := api.Group("/reservations", middleware.RequireAuth(auth))
		{
			reservations.GET("", resc.ListMyReservations)
			reservations.POST("", resc.CreateReservation)
			reservations.GET("/:id", resc.GetReservation)
			reservations.PUT("/:id", resc.UpdateReservation)
			reservations.DELETE("/:id", resc.CancelReservation)
		}

		admin := api.Group("/admin", middleware.RequireAuth(auth), middleware.RequireAdmin())
		{
			admin.GET("/reservations", adc.ListReservations)
			admin.GET("/users", adc.ListUsers)
		}
	}

	return r
}
