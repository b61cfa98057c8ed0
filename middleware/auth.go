package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"studyroom-backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func tokenFromRequest(c *gin.Context) string {
	if token := strings.TrimSpace(c.GetHeader("X-Admin-Token")); token != "" {
		return token
	}
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}

// RequireAdmin rejects requests that do not carry a valid, unexpired admin
// session token.
func RequireAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin token required"})
			return
		}

		var record models.AdminToken
		err := db.Where("token = ? AND expires_at > ?", token, time.Now()).First(&record).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
				return
			}
			log.Printf("❌ Admin token lookup failed: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to verify token"})
			return
		}

		c.Set("adminId", record.AdminID)
		c.Next()
	}
}
