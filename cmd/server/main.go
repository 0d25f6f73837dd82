package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"

	"storefront_back_end/internal/cache"
	"storefront_back_end/internal/config"
	"storefront_back_end/internal/database"
	"storefront_back_end/internal/directory"
	"storefront_back_end/internal/handlers/admin"
	"storefront_back_end/internal/handlers/shippingapi"
	"storefront_back_end/internal/localization"
	"storefront_back_end/internal/messages"
	"storefront_back_end/internal/plugins"
	"storefront_back_end/internal/plugins/payments/carddirect"
	"storefront_back_end/internal/plugins/shipping/canadapost"
	"storefront_back_end/internal/plugins/shipping/fixedrate"
	"storefront_back_end/internal/routes"
	"storefront_back_end/internal/settings"
	"storefront_back_end/internal/shipping"
	"storefront_back_end/internal/stores"
	"storefront_back_end/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Configuration invalide: %v", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	session, err := database.ConnectScylla(cfg.Scylla)
	if err != nil {
		log.Fatalf("❌ Erreur connexion ScyllaDB: %v", err)
	}
	defer session.Close()

	redisClient, err := database.ConnectRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("❌ Erreur connexion Redis: %v", err)
	}
	defer redisClient.Close()

	// Paramètres, ressources, magasins
	settingService := settings.NewService(database.NewSettingRepository(session), cache.NewSettingsCache(redisClient, cfg.SettingsCacheTTL))
	locales := localization.NewService(database.NewLocaleRepository(session))
	storeRepo := database.NewStoreRepository(session)

	cookieStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	cookieStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}
	scopes := stores.NewScopeResolver(storeRepo, cookieStore)

	currencies := directory.NewCurrencyService(database.NewCurrencyRepository(session), settingService)
	measures := directory.NewMeasureService(database.NewMeasureRepository(session), settingService)

	auditRepo := database.NewAuditRepository(session)
	audit := utils.NewAuditLogger(auditRepo)

	// Plugins
	canadaPost := canadapost.NewComputationMethod(canadapost.NewHTTPClient(10*time.Second), settingService, locales, currencies, measures)
	fixedRate := fixedrate.NewMethod(settingService)
	cardDirect := carddirect.NewProcessor(settingService, locales, nil)

	registry := plugins.NewRegistry()
	registry.SetStateStore(plugins.NewSettingsState(settingService))
	for _, p := range []plugins.Plugin{canadaPost, fixedRate, cardDirect} {
		if err := registry.RegisterFromState(ctx, p); err != nil {
			log.Fatalf("❌ %v", err)
		}
	}
	log.Printf("✅ %d plugins enregistrés", len(registry.List()))

	shippingService := shipping.NewService(canadaPost, fixedRate)
	shippingService.SetActiveFilter(registry.IsInstalled)

	campaigns := messages.NewService(
		database.NewCampaignRepository(session),
		storeRepo,
		database.NewCustomerRoleRepository(session),
		locales,
		messages.NewSMTPSender(cfg.SMTP),
	)

	r := gin.Default()
	routes.RegisterRoutes(r, routes.Deps{
		JWTSecret:   []byte(cfg.JWTSecret),
		CORSOrigins: cfg.CORSOrigins,
		Redis:       redisClient,
		Plugins:     registry,
		Audit:       audit,

		Auth:       admin.NewAuthHandler(cfg.AdminEmail, cfg.AdminPasswordHash, []byte(cfg.JWTSecret), cfg.AdminTokenTTL),
		Stores:     admin.NewStoreHandler(storeRepo, scopes, audit),
		PluginsAPI: admin.NewPluginHandler(registry),
		Campaigns:  admin.NewCampaignHandler(campaigns, locales, audit),
		AuditLogs:  admin.NewAuditHandler(auditRepo),
		Shipping:   shippingapi.NewHandler(shippingService, settingService),
		CanadaPost: canadapost.NewController(settingService, scopes, locales, audit),
		CardDirect: carddirect.NewController(
			settingService, scopes, locales,
			carddirect.NewPaymentInfoValidator(locales, time.Now),
			cardDirect, audit,
		),
	})

	log.Println("🚀 Serveur lancé sur le port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ %v", err)
	}
}
