package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

const AdminRole = "admin"

// RequireAdmin vérifie que l'utilisateur a le rôle "admin"
func RequireAdmin(c *gin.Context) {
	role, exists := c.Get("role")
	if !exists || role != AdminRole {
		log.Printf("🚫 Accès admin refusé pour %s", c.GetString("user_id"))
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux administrateurs"})
		return
	}
	c.Next()
}
