package admin

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront_back_end/internal/stores"
	"storefront_back_end/internal/utils"
)

type scopeStore interface {
	ActiveStoreScope(req *http.Request) (int, error)
	SetActiveStoreScope(w http.ResponseWriter, req *http.Request, storeID int) error
}

type auditor interface {
	LogAction(c *gin.Context, action, resource, resourceID string, oldValue, newValue any)
}

type StoreHandler struct {
	stores stores.Repository
	scopes scopeStore
	audit  auditor
}

func NewStoreHandler(repo stores.Repository, scopes scopeStore, audit auditor) *StoreHandler {
	return &StoreHandler{stores: repo, scopes: scopes, audit: audit}
}

// ListStores GET /api/admin/stores
func (h *StoreHandler) ListStores(c *gin.Context) {
	all, err := h.stores.List(c.Request.Context())
	if err != nil {
		log.Printf("❌ Erreur récupération boutiques: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}
	scope, err := h.scopes.ActiveStoreScope(c.Request)
	if err != nil {
		log.Printf("❌ Portée boutique: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}
	if all == nil {
		all = []stores.Store{}
	}
	c.JSON(http.StatusOK, gin.H{
		"stores":             all,
		"total":              len(all),
		"active_store_scope": scope,
	})
}

// SetStoreScope POST /api/admin/store-scope
func (h *StoreHandler) SetStoreScope(c *gin.Context) {
	var req struct {
		StoreID *int `json:"store_id" binding:"required,min=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	previous, _ := h.scopes.ActiveStoreScope(c.Request)
	err := h.scopes.SetActiveStoreScope(c.Writer, c.Request, *req.StoreID)
	if errors.Is(err, stores.ErrStoreNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Boutique non trouvée"})
		return
	}
	if err != nil {
		log.Printf("❌ Erreur changement de portée: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	if h.audit != nil {
		h.audit.LogAction(c, utils.ACTION_STORE_SCOPE, utils.RESOURCE_SETTINGS, strconv.Itoa(*req.StoreID),
			gin.H{"store_id": previous}, gin.H{"store_id": *req.StoreID})
	}
	c.JSON(http.StatusOK, gin.H{"active_store_scope": *req.StoreID})
}
