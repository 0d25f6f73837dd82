package middleware

import (
	"github.com/gin-gonic/gin"
)

type auditor interface {
	LogAction(c *gin.Context, action, resource, resourceID string, oldValue, newValue any)
	LogFailedAction(c *gin.Context, action, resource, resourceID, errorMsg string)
}

// AuditActions audite la requête après traitement ; l'identifiant de la
// ressource est lu dans le paramètre de route param
func AuditActions(audit auditor, action, resource, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		resourceID := c.Param(param)

		c.Next()

		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			audit.LogAction(c, action, resource, resourceID, nil, nil)
		} else {
			audit.LogFailedAction(c, action, resource, resourceID, "Action échouée")
		}
	}
}
