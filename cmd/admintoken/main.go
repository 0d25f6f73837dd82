// Commande admintoken : génère un JWT administrateur pour l'API /api/admin,
// ou avec -hash le hash argon2id à placer dans ADMIN_PASSWORD_HASH
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"storefront_back_end/internal/config"
	"storefront_back_end/internal/middleware"
	"storefront_back_end/internal/utils"
)

func main() {
	userID := flag.String("user", "admin", "identifiant de l'utilisateur")
	email := flag.String("email", "admin@localhost", "email de l'utilisateur")
	ttl := flag.Duration("ttl", 24*time.Hour, "durée de validité")
	password := flag.String("hash", "", "mot de passe à hasher")
	flag.Parse()

	if *password != "" {
		hash, err := utils.HashPassword(*password)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		fmt.Println(hash)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Configuration invalide: %v", err)
	}

	token, err := utils.GenerateJWT([]byte(cfg.JWTSecret), *userID, *email, middleware.AdminRole, *ttl)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	fmt.Println(token)
}
