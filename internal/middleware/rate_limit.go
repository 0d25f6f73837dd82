package middleware

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	// Estimations de livraison : appels transporteur payants
	ShippingEstimateMaxRequests = 30
	ShippingEstimateWindow      = 1 * time.Minute

	// Paiements refusés avant blocage de l'IP (test de cartes)
	PaymentMaxFailures = 5
	PaymentCooldown    = 15 * time.Minute

	LoginMaxFailures = 5
	LoginCooldown    = 15 * time.Minute
)

// RateLimit limite le nombre de requêtes par IP sur une fenêtre fixe
func RateLimit(client redis.Cmdable, prefix string, max int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := prefix + ":" + c.ClientIP()

		requests, err := client.Get(ctx, key).Int()
		if err != nil && err != redis.Nil {
			// Redis indisponible : on laisse passer
			log.Printf("⚠️ Rate limit %s indisponible: %v", prefix, err)
			c.Next()
			return
		}
		if requests >= max {
			ttl := client.TTL(ctx, key).Val()
			if ttl <= 0 {
				ttl = window
			}
			c.Header("Retry-After", strconv.Itoa(int(ttl.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Trop de requêtes. Réessayez plus tard",
				"retry_after": int(ttl.Seconds()),
			})
			return
		}

		pipe := client.TxPipeline()
		pipe.Incr(ctx, key)
		if requests == 0 {
			pipe.Expire(ctx, key, window)
		}
		if _, err := pipe.Exec(ctx); err != nil {
			log.Printf("⚠️ Rate limit %s: %v", prefix, err)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(max-requests-1))
		c.Next()
	}
}

// FailureLimit compte les réponses failureStatus par IP ; au-delà de
// maxFailures l'IP est bloquée pendant cooldown. Un succès remet le compteur à zéro.
func FailureLimit(client redis.Cmdable, prefix string, maxFailures int, cooldown time.Duration, failureStatus int) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		ip := c.ClientIP()
		key := prefix + "_attempts:" + ip
		cooldownKey := prefix + "_cooldown:" + ip

		if client.Exists(ctx, cooldownKey).Val() > 0 {
			ttl := client.TTL(ctx, cooldownKey).Val()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de tentatives échouées. Réessayez dans %d minutes", int(ttl.Minutes())),
				"retry_after": int(ttl.Seconds()),
			})
			return
		}

		c.Next()

		switch c.Writer.Status() {
		case failureStatus:
			attempts, err := client.Incr(ctx, key).Result()
			if err != nil {
				log.Printf("⚠️ Compteur d'échecs %s: %v", prefix, err)
				return
			}
			client.Expire(ctx, key, cooldown)
			if attempts >= int64(maxFailures) {
				client.Set(ctx, cooldownKey, "1", cooldown)
				client.Del(ctx, key)
				log.Printf("🚫 IP %s bloquée (%s) pendant %s", ip, prefix, cooldown)
			}
		case http.StatusOK:
			client.Del(ctx, key)
		}
	}
}
