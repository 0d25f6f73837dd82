package admin

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"storefront_back_end/internal/middleware"
	"storefront_back_end/internal/utils"
)

type AuthHandler struct {
	email        string
	passwordHash string
	secret       []byte
	ttl          time.Duration
}

func NewAuthHandler(email, passwordHash string, secret []byte, ttl time.Duration) *AuthHandler {
	return &AuthHandler{email: email, passwordHash: passwordHash, secret: secret, ttl: ttl}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login POST /api/admin/login
func (h *AuthHandler) Login(c *gin.Context) {
	if h.passwordHash == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Connexion admin désactivée"})
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email et mot de passe requis"})
		return
	}

	ok, err := utils.VerifyPassword(req.Password, h.passwordHash)
	if err != nil {
		log.Printf("❌ ADMIN_PASSWORD_HASH invalide: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}
	if !ok || !strings.EqualFold(req.Email, h.email) {
		log.Printf("🚫 Échec connexion admin pour %s depuis %s", req.Email, c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Identifiants invalides"})
		return
	}

	token, err := utils.GenerateJWT(h.secret, h.email, h.email, middleware.AdminRole, h.ttl)
	if err != nil {
		log.Printf("❌ Erreur génération token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	log.Printf("✅ Connexion admin: %s", h.email)
	c.JSON(http.StatusOK, gin.H{"token": token, "expires_in": int(h.ttl.Seconds())})
}
