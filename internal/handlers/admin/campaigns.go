package admin

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"storefront_back_end/internal/messages"
	"storefront_back_end/internal/models"
	"storefront_back_end/internal/utils"
)

type resourceReader interface {
	GetResource(ctx context.Context, name string) string
}

type CampaignHandler struct {
	campaigns *messages.Service
	locales   resourceReader
	audit     auditor
}

func NewCampaignHandler(campaigns *messages.Service, locales resourceReader, audit auditor) *CampaignHandler {
	return &CampaignHandler{campaigns: campaigns, locales: locales, audit: audit}
}

// ListCampaigns GET /api/admin/campaigns?store_id=&customer_role_id=
func (h *CampaignHandler) ListCampaigns(c *gin.Context) {
	var filter models.CampaignListModel
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Filtres invalides"})
		return
	}

	ctx := c.Request.Context()
	model, err := h.campaigns.PrepareListModel(ctx, filter)
	if err != nil {
		log.Printf("❌ Erreur préparation liste campagnes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}
	list, err := h.campaigns.Search(ctx, *model)
	if err != nil {
		log.Printf("❌ Erreur récupération campagnes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"model":     model,
		"campaigns": list,
		"total":     len(list),
	})
}

// CreateCampaign POST /api/admin/campaigns
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var input models.Campaign
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	campaign, err := h.campaigns.Create(c.Request.Context(), input)
	if err != nil {
		log.Printf("❌ %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création de la campagne"})
		return
	}
	if h.audit != nil {
		h.audit.LogAction(c, utils.ACTION_CAMPAIGN_CREATE, utils.RESOURCE_CAMPAIGN, campaign.ID.String(), nil, campaign)
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Campagne créée avec succès",
		"campaign": campaign,
	})
}

// SendTestEmail POST /api/admin/campaigns/:id/send-test
func (h *CampaignHandler) SendTestEmail(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID campagne invalide"})
		return
	}
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email requis"})
		return
	}

	ctx := c.Request.Context()
	err = h.campaigns.SendTest(ctx, id, req.Email)
	if errors.Is(err, messages.ErrCampaignNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campagne non trouvée"})
		return
	}
	if err != nil {
		log.Printf("❌ %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur lors de l'envoi de l'e-mail"})
		return
	}
	if h.audit != nil {
		h.audit.LogAction(c, utils.ACTION_CAMPAIGN_TEST, utils.RESOURCE_CAMPAIGN, id.String(), nil, gin.H{"email": req.Email})
	}
	c.JSON(http.StatusOK, gin.H{"message": h.locales.GetResource(ctx, "Admin.Promotions.Campaigns.TestEmail")})
}
