package canadapost

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront_back_end/internal/settings"
	"storefront_back_end/internal/utils"
)

type ConfigurationModel struct {
	ActiveStoreScopeConfiguration int `json:"active_store_scope_configuration"`

	CustomerNumber                 string `json:"customer_number" binding:"max=20"`
	CustomerNumberOverrideForStore bool   `json:"customer_number_override_for_store"`
	APIKey                         string `json:"api_key"`
	APIKeyOverrideForStore         bool   `json:"api_key_override_for_store"`
	UseSandbox                     bool   `json:"use_sandbox"`
	UseSandboxOverrideForStore     bool   `json:"use_sandbox_override_for_store"`
}

type configStore interface {
	LoadSetting(ctx context.Context, g settings.Group, storeID int) error
	ApplyScoped(ctx context.Context, g settings.Group, storeScope int, overrides map[string]bool) error
	OverrideFlags(ctx context.Context, g settings.Group, storeScope int) (map[string]bool, error)
}

type scopeResolver interface {
	ActiveStoreScope(req *http.Request) (int, error)
}

type resourceReader interface {
	GetResource(ctx context.Context, name string) string
}

type auditor interface {
	LogAction(c *gin.Context, action, resource, resourceID string, oldValue, newValue any)
}

type Controller struct {
	settings configStore
	scopes   scopeResolver
	locales  resourceReader
	audit    auditor
}

func NewController(settings configStore, scopes scopeResolver, locales resourceReader, audit auditor) *Controller {
	return &Controller{settings: settings, scopes: scopes, locales: locales, audit: audit}
}

func (ctl *Controller) model(c *gin.Context) (*ConfigurationModel, error) {
	scope, err := ctl.scopes.ActiveStoreScope(c.Request)
	if err != nil {
		return nil, err
	}
	var cps Settings
	if err := ctl.settings.LoadSetting(c.Request.Context(), &cps, scope); err != nil {
		return nil, err
	}
	overrides, err := ctl.settings.OverrideFlags(c.Request.Context(), &cps, scope)
	if err != nil {
		return nil, err
	}
	return &ConfigurationModel{
		ActiveStoreScopeConfiguration:  scope,
		CustomerNumber:                 cps.CustomerNumber,
		CustomerNumberOverrideForStore: overrides["CustomerNumber"],
		APIKey:                         cps.APIKey,
		APIKeyOverrideForStore:         overrides["APIKey"],
		UseSandbox:                     cps.UseSandbox,
		UseSandboxOverrideForStore:     overrides["UseSandbox"],
	}, nil
}

// Configure GET /api/admin/plugins/shipping/canadapost/configure
func (ctl *Controller) Configure(c *gin.Context) {
	model, err := ctl.model(c)
	if err != nil {
		log.Printf("❌ Configuration Canada Post: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur chargement configuration"})
		return
	}
	c.JSON(http.StatusOK, model)
}

// SaveConfiguration POST /api/admin/plugins/shipping/canadapost/configure
func (ctl *Controller) SaveConfiguration(c *gin.Context) {
	var input ConfigurationModel
	if err := c.ShouldBindJSON(&input); err != nil {
		model, loadErr := ctl.model(c)
		if loadErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur chargement configuration"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "model": model})
		return
	}

	scope, err := ctl.scopes.ActiveStoreScope(c.Request)
	if err != nil {
		log.Printf("❌ Portée boutique: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur portée boutique"})
		return
	}

	ctx := c.Request.Context()
	var cps Settings
	if err := ctl.settings.LoadSetting(ctx, &cps, scope); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur chargement configuration"})
		return
	}
	before := cps

	cps.CustomerNumber = input.CustomerNumber
	cps.APIKey = input.APIKey
	cps.UseSandbox = input.UseSandbox

	overrides := map[string]bool{
		"CustomerNumber": input.CustomerNumberOverrideForStore,
		"APIKey":         input.APIKeyOverrideForStore,
		"UseSandbox":     input.UseSandboxOverrideForStore,
	}
	if err := ctl.settings.ApplyScoped(ctx, &cps, scope, overrides); err != nil {
		// enregistrement partiel : les autres champs sont déjà écrits
		log.Printf("⚠️ Settings Canada Post partiellement enregistrés: %v", err)
	}
	if ctl.audit != nil {
		ctl.audit.LogAction(c, utils.ACTION_SETTINGS_UPDATE, utils.RESOURCE_SETTINGS, cps.SettingPrefix()+":"+strconv.Itoa(scope), redact(before), redact(cps))
	}

	model, err := ctl.model(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur chargement configuration"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": ctl.locales.GetResource(ctx, "Admin.Plugins.Saved"),
		"model":   model,
	})
}

func redact(s Settings) Settings {
	if s.APIKey != "" {
		s.APIKey = "***"
	}
	return s
}
