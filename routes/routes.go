package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"studyroom-backend/controllers"
	"studyroom-backend/middleware"
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

// SetupRouter wires the public booking surface and the token-protected
// admin API.
func SetupRouter(
	rc *controllers.RoomController,
	resc *controllers.ReservationController,
	ac *controllers.AdminController,
	db *gorm.DB,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

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
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "X-Admin-Token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public surface
	r.GET("/", rc.Index)
	r.GET("/room/:id", rc.Detail)
	r.POST("/room/:id/reserve", resc.Reserve)
	r.GET("/contact", rc.Contact)

	api := r.Group("/api")
	{
		admin := api.Group("/admin")
		{
			admin.POST("/login", ac.Login)

			protected := admin.Group("")
			protected.Use(middleware.RequireAdmin(db))
			{
				rooms := protected.Group("/rooms")
				{
					rooms.GET("", ac.ListRooms)
					rooms.POST("", ac.CreateRoom)

					// bulk routes must come before /:id
					rooms.PATCH("/enable", ac.EnableRooms)
					rooms.PATCH("/disable", ac.DisableRooms)

					rooms.PUT("/:id", ac.UpdateRoom)
					rooms.PATCH("/:id", ac.UpdateRoom)
					rooms.DELETE("/:id", ac.DeleteRoom)
				}

				reservations := protected.Group("/reservations")
				{
					reservations.GET("", ac.ListReservations)
					reservations.POST("/purge", ac.PurgeReservations)
				}
			}
		}
	}

	return r
}
