package carddirect

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"storefront_back_end/internal/payments"
	"storefront_back_end/internal/settings"
	"storefront_back_end/internal/utils"
)

type configStore interface {
	LoadSetting(ctx context.Context, g settings.Group, storeID int) error
	ApplyScoped(ctx context.Context, g settings.Group, storeScope int, overrides map[string]bool) error
	OverrideFlags(ctx context.Context, g settings.Group, storeScope int) (map[string]bool, error)
}

type scopeResolver interface {
	ActiveStoreScope(req *http.Request) (int, error)
}

type auditor interface {
	LogAction(c *gin.Context, action, resource, resourceID string, oldValue, newValue any)
}

type Controller struct {
	settings  configStore
	scopes    scopeResolver
	locales   resourceReader
	validator *PaymentInfoValidator
	processor payments.PaymentMethod
	audit     auditor
	now       func() time.Time
}

func NewController(settings configStore, scopes scopeResolver, locales resourceReader, validator *PaymentInfoValidator, processor payments.PaymentMethod, audit auditor) *Controller {
	return &Controller{
		settings:  settings,
		scopes:    scopes,
		locales:   locales,
		validator: validator,
		processor: processor,
		audit:     audit,
		now:       time.Now,
	}
}

func (ctl *Controller) configurationModel(c *gin.Context) (*ConfigurationModel, error) {
	scope, err := ctl.scopes.ActiveStoreScope(c.Request)
	if err != nil {
		return nil, err
	}
	ctx := c.Request.Context()
	s := defaultSettings()
	if err := ctl.settings.LoadSetting(ctx, s, scope); err != nil {
		return nil, err
	}
	overrides, err := ctl.settings.OverrideFlags(ctx, s, scope)
	if err != nil {
		return nil, err
	}
	return &ConfigurationModel{
		ActiveStoreScopeConfiguration:           scope,
		ClientID:                                s.ClientID,
		ClientIDOverrideForStore:                overrides["ClientID"],
		ClientSecret:                            s.ClientSecret,
		ClientSecretOverrideForStore:            overrides["ClientSecret"],
		UseSandbox:                              s.UseSandbox,
		UseSandboxOverrideForStore:              overrides["UseSandbox"],
		TransactModeID:                          int(s.TransactMode),
		TransactModeIDOverrideForStore:          overrides["TransactMode"],
		TransactModeValues:                      TransactModeValues(s.TransactMode),
		AdditionalFee:                           s.AdditionalFee,
		AdditionalFeeOverrideForStore:           overrides["AdditionalFee"],
		AdditionalFeePercentage:                 s.AdditionalFeePercentage,
		AdditionalFeePercentageOverrideForStore: overrides["AdditionalFeePercentage"],
	}, nil
}

// Configure GET /api/admin/plugins/payments/carddirect/configure
func (ctl *Controller) Configure(c *gin.Context) {
	model, err := ctl.configurationModel(c)
	if err != nil {
		log.Printf("❌ Configuration paiement carte: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur chargement configuration"})
		return
	}
	c.JSON(http.StatusOK, model)
}

// SaveConfiguration POST /api/admin/plugins/payments/carddirect/configure
func (ctl *Controller) SaveConfiguration(c *gin.Context) {
	var input ConfigurationModel
	if err := c.ShouldBindJSON(&input); err != nil {
		model, loadErr := ctl.configurationModel(c)
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
	s := defaultSettings()
	if err := ctl.settings.LoadSetting(ctx, s, scope); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur chargement configuration"})
		return
	}
	before := *s

	s.ClientID = input.ClientID
	s.ClientSecret = input.ClientSecret
	s.UseSandbox = input.UseSandbox
	s.TransactMode = TransactMode(input.TransactModeID)
	s.AdditionalFee = input.AdditionalFee
	s.AdditionalFeePercentage = input.AdditionalFeePercentage

	overrides := map[string]bool{
		"ClientID":                input.ClientIDOverrideForStore,
		"ClientSecret":            input.ClientSecretOverrideForStore,
		"UseSandbox":              input.UseSandboxOverrideForStore,
		"TransactMode":            input.TransactModeIDOverrideForStore,
		"AdditionalFee":           input.AdditionalFeeOverrideForStore,
		"AdditionalFeePercentage": input.AdditionalFeePercentageOverrideForStore,
	}
	if err := ctl.settings.ApplyScoped(ctx, s, scope, overrides); err != nil {
		log.Printf("⚠️ Settings paiement carte partiellement enregistrés: %v", err)
	}
	if ctl.audit != nil {
		ctl.audit.LogAction(c, utils.ACTION_SETTINGS_UPDATE, utils.RESOURCE_SETTINGS, s.SettingPrefix()+":"+strconv.Itoa(scope), redact(before), redact(*s))
	}

	model, err := ctl.configurationModel(c)
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
	if s.ClientSecret != "" {
		s.ClientSecret = "***"
	}
	return s
}

// PaymentInfo GET /api/checkout/payment-info
func (ctl *Controller) PaymentInfo(c *gin.Context) {
	var form PaymentInfoForm
	// valeurs déjà postées, toutes optionnelles
	_ = c.ShouldBindQuery(&form)
	c.JSON(http.StatusOK, NewPaymentInfoModel(form, ctl.now()))
}

// ValidatePaymentInfo POST /api/checkout/payment-info/validate
func (ctl *Controller) ValidatePaymentInfo(c *gin.Context) {
	var form PaymentInfoForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Formulaire invalide"})
		return
	}
	warnings := ctl.validator.Validate(c.Request.Context(), form)
	if warnings == nil {
		warnings = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"valid": len(warnings) == 0, "warnings": warnings})
}

type paymentInput struct {
	PaymentInfoForm
	StoreID      int             `json:"store_id" binding:"min=0"`
	OrderTotal   decimal.Decimal `json:"order_total"`
	CurrencyCode string          `json:"currency_code"`
}

// ProcessPayment POST /api/checkout/payment
func (ctl *Controller) ProcessPayment(c *gin.Context) {
	var input paymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Formulaire invalide"})
		return
	}
	if !input.OrderTotal.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Montant de commande invalide"})
		return
	}

	ctx := c.Request.Context()
	if warnings := ctl.validator.Validate(ctx, input.PaymentInfoForm); len(warnings) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"warnings": warnings})
		return
	}

	req, err := GetPaymentInfo(input.PaymentInfoForm)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.StoreID = input.StoreID
	req.CustomerID = c.GetString("user_id")
	req.CurrencyCode = input.CurrencyCode

	fee, err := ctl.processor.GetAdditionalHandlingFee(ctx, input.StoreID, input.OrderTotal)
	if err != nil {
		log.Printf("❌ Frais additionnels: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur calcul des frais"})
		return
	}
	req.OrderTotal = input.OrderTotal.Add(fee)

	result, err := ctl.processor.ProcessPayment(ctx, req)
	if err != nil {
		log.Printf("❌ Paiement %s: %v", req.OrderGUID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur traitement du paiement"})
		return
	}
	status := http.StatusOK
	if !result.Success() {
		status = http.StatusPaymentRequired
	}
	c.JSON(status, gin.H{
		"order_guid":     req.OrderGUID,
		"order_total":    req.OrderTotal,
		"additional_fee": fee,
		"result":         result,
	})
}
