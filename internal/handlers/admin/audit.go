package admin

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront_back_end/internal/database"
	"storefront_back_end/internal/models"
)

type auditReader interface {
	ListAuditLogs(ctx context.Context, f database.AuditFilter) ([]models.AuditLog, error)
}

type AuditHandler struct {
	logs auditReader
}

func NewAuditHandler(logs auditReader) *AuditHandler {
	return &AuditHandler{logs: logs}
}

// GetAuditLogs GET /api/admin/audit-logs?action=&resource=&resource_id=&limit=
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	filter := database.AuditFilter{
		Action:     c.Query("action"),
		Resource:   c.Query("resource"),
		ResourceID: c.Query("resource_id"),
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 {
		limit = 100
	}
	if limit > 500 {
		limit = 500
	}
	filter.Limit = limit

	logs, err := h.logs.ListAuditLogs(c.Request.Context(), filter)
	if err != nil {
		log.Printf("❌ Erreur récupération logs audit: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":  logs,
		"total": len(logs),
		"filters": gin.H{
			"action":      filter.Action,
			"resource":    filter.Resource,
			"resource_id": filter.ResourceID,
			"limit":       limit,
		},
	})
}
