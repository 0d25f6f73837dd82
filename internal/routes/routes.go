package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"storefront_back_end/internal/handlers/admin"
	"storefront_back_end/internal/handlers/shippingapi"
	"storefront_back_end/internal/middleware"
	"storefront_back_end/internal/plugins"
	"storefront_back_end/internal/plugins/payments/carddirect"
	"storefront_back_end/internal/plugins/shipping/canadapost"
	"storefront_back_end/internal/utils"
)

// Deps regroupe les handlers construits dans main
type Deps struct {
	JWTSecret   []byte
	CORSOrigins []string
	Redis       redis.Cmdable
	Plugins     *plugins.Registry
	Audit       *utils.AuditLogger

	Auth       *admin.AuthHandler
	Stores     *admin.StoreHandler
	PluginsAPI *admin.PluginHandler
	Campaigns  *admin.CampaignHandler
	AuditLogs  *admin.AuditHandler
	Shipping   *shippingapi.Handler
	CanadaPost *canadapost.Controller
	CardDirect *carddirect.Controller
}

// requirePlugin répond 404 tant que le plugin n'est pas installé
func requirePlugin(registry *plugins.Registry, systemName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !registry.IsInstalled(systemName) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Plugin non installé"})
			return
		}
		c.Next()
	}
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = d.CORSOrigins
	if len(d.CORSOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowCredentials = true
	}
	corsConfig.AddAllowHeaders("Authorization")
	corsConfig.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Public
	api.POST("/shipping/estimate",
		middleware.RateLimit(d.Redis, "shipping_estimate", middleware.ShippingEstimateMaxRequests, middleware.ShippingEstimateWindow),
		d.Shipping.Estimate)
	api.GET("/shipping/track/:tracking_number", d.Shipping.Track)

	checkout := api.Group("/checkout", requirePlugin(d.Plugins, carddirect.SystemName))
	{
		checkout.GET("/payment-info", d.CardDirect.PaymentInfo)
		checkout.POST("/payment-info/validate", d.CardDirect.ValidatePaymentInfo)
		checkout.POST("/payment",
			middleware.AuthRequired(d.JWTSecret),
			middleware.FailureLimit(d.Redis, "payment", middleware.PaymentMaxFailures, middleware.PaymentCooldown, http.StatusPaymentRequired),
			d.CardDirect.ProcessPayment)
	}

	// Admin
	api.POST("/admin/login",
		middleware.FailureLimit(d.Redis, "admin_login", middleware.LoginMaxFailures, middleware.LoginCooldown, http.StatusUnauthorized),
		d.Auth.Login)

	adminGroup := api.Group("/admin", middleware.AuthRequired(d.JWTSecret), middleware.RequireAdmin)
	{
		adminGroup.GET("/stores", d.Stores.ListStores)
		adminGroup.POST("/store-scope", d.Stores.SetStoreScope)

		adminGroup.GET("/plugins", d.PluginsAPI.ListPlugins)
		adminGroup.POST("/plugins/:system_name/install",
			middleware.AuditActions(d.Audit, utils.ACTION_PLUGIN_INSTALL, utils.RESOURCE_PLUGIN, "system_name"),
			d.PluginsAPI.InstallPlugin)
		adminGroup.POST("/plugins/:system_name/uninstall",
			middleware.AuditActions(d.Audit, utils.ACTION_PLUGIN_UNINSTALL, utils.RESOURCE_PLUGIN, "system_name"),
			d.PluginsAPI.UninstallPlugin)

		canadaPost := adminGroup.Group("/plugins/shipping/canadapost", requirePlugin(d.Plugins, canadapost.SystemName))
		canadaPost.GET("/configure", d.CanadaPost.Configure)
		canadaPost.POST("/configure", d.CanadaPost.SaveConfiguration)

		cardDirect := adminGroup.Group("/plugins/payments/carddirect", requirePlugin(d.Plugins, carddirect.SystemName))
		cardDirect.GET("/configure", d.CardDirect.Configure)
		cardDirect.POST("/configure", d.CardDirect.SaveConfiguration)

		adminGroup.GET("/campaigns", d.Campaigns.ListCampaigns)
		adminGroup.POST("/campaigns", d.Campaigns.CreateCampaign)
		adminGroup.POST("/campaigns/:id/send-test", d.Campaigns.SendTestEmail)

		adminGroup.GET("/audit-logs", d.AuditLogs.GetAuditLogs)
	}
}
