package admin

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_back_end/internal/plugins"
)

type PluginHandler struct {
	registry *plugins.Registry
}

func NewPluginHandler(registry *plugins.Registry) *PluginHandler {
	return &PluginHandler{registry: registry}
}

// ListPlugins GET /api/admin/plugins
func (h *PluginHandler) ListPlugins(c *gin.Context) {
	list := h.registry.List()
	c.JSON(http.StatusOK, gin.H{"plugins": list, "total": len(list)})
}

// InstallPlugin POST /api/admin/plugins/:system_name/install
func (h *PluginHandler) InstallPlugin(c *gin.Context) {
	h.change(c, h.registry.Install, "Plugin installé")
}

// UninstallPlugin POST /api/admin/plugins/:system_name/uninstall
func (h *PluginHandler) UninstallPlugin(c *gin.Context) {
	h.change(c, h.registry.Uninstall, "Plugin désinstallé")
}

func (h *PluginHandler) change(c *gin.Context, action func(ctx context.Context, systemName string) error, message string) {
	systemName := c.Param("system_name")
	err := action(c.Request.Context(), systemName)
	if errors.Is(err, plugins.ErrPluginNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plugin non trouvé"})
		return
	}
	if err != nil {
		log.Printf("❌ %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "system_name": systemName})
}
