// Package shippingapi expose l'estimation des frais de port et le suivi des colis.
package shippingapi

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront_back_end/internal/settings"
	"storefront_back_end/internal/shipping"
)

type settingsLoader interface {
	LoadSetting(ctx context.Context, g settings.Group, storeID int) error
}

type Handler struct {
	shipping *shipping.Service
	settings settingsLoader
}

func NewHandler(svc *shipping.Service, settings settingsLoader) *Handler {
	return &Handler{shipping: svc, settings: settings}
}

type estimateInput struct {
	shipping.GetShippingOptionRequest
	SystemName string `json:"system_name"`
}

// Estimate POST /api/shipping/estimate
func (h *Handler) Estimate(c *gin.Context) {
	var input estimateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}
	if input.StoreID < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Boutique invalide"})
		return
	}

	ctx := c.Request.Context()
	req := input.GetShippingOptionRequest
	if req.ZipPostalCodeFrom == "" {
		var s shipping.Settings
		if err := h.settings.LoadSetting(ctx, &s, req.StoreID); err != nil {
			log.Printf("❌ Settings d'expédition: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
			return
		}
		req.ZipPostalCodeFrom = s.ShippingOriginZipPostalCode
	}

	resp, err := h.shipping.GetShippingOptions(ctx, &req, input.SystemName)
	if errors.Is(err, shipping.ErrMethodNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Méthode de livraison inconnue"})
		return
	}
	if err != nil {
		log.Printf("❌ Estimation livraison: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur calcul des frais de port"})
		return
	}
	if resp.ShippingOptions == nil {
		resp.ShippingOptions = []shipping.ShippingOption{}
	}
	if resp.Errors == nil {
		resp.Errors = []string{}
	}
	c.JSON(http.StatusOK, resp)
}

// Track GET /api/shipping/track/:tracking_number
func (h *Handler) Track(c *gin.Context) {
	number := c.Param("tracking_number")
	storeID, err := strconv.Atoi(c.DefaultQuery("store_id", "0"))
	if err != nil || storeID < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Boutique invalide"})
		return
	}

	method, tracker, ok := h.shipping.Tracker(number)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Numéro de suivi non reconnu"})
		return
	}

	events, err := tracker.GetShipmentEvents(c.Request.Context(), storeID, number)
	if err != nil {
		// le lien de suivi reste utilisable
		log.Printf("⚠️ Suivi %s (%s): %v", number, method.SystemName(), err)
	}
	if events == nil {
		events = []shipping.ShipmentStatusEvent{}
	}
	c.JSON(http.StatusOK, gin.H{
		"tracking_number": number,
		"carrier":         method.SystemName(),
		"url":             tracker.GetURL(number),
		"events":          events,
	})
}
