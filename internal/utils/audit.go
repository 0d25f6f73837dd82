package utils

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"storefront_back_end/internal/models"
)

// AuditWriter persiste une entrée du journal d'audit
type AuditWriter interface {
	InsertAuditLog(ctx context.Context, entry models.AuditLog) error
}

type AuditLogger struct {
	writer  AuditWriter
	timeout time.Duration
	now     func() time.Time
	// done est appelé après chaque écriture (tests)
	done func(models.AuditLog, error)
}

func NewAuditLogger(writer AuditWriter) *AuditLogger {
	return &AuditLogger{writer: writer, timeout: 5 * time.Second, now: time.Now}
}

// LogAction enregistre une action dans les logs d'audit
func (a *AuditLogger) LogAction(c *gin.Context, action, resource, resourceID string, oldValue, newValue any) {
	a.record(a.entry(c, action, resource, resourceID, oldValue, newValue, true, ""))
}

// LogFailedAction enregistre une action échouée dans les logs d'audit
func (a *AuditLogger) LogFailedAction(c *gin.Context, action, resource, resourceID, errorMsg string) {
	a.record(a.entry(c, action, resource, resourceID, nil, nil, false, errorMsg))
}

// entry lit le contexte gin tout de suite : il n'est plus valide une fois
// la requête terminée
func (a *AuditLogger) entry(c *gin.Context, action, resource, resourceID string, oldValue, newValue any, success bool, errorMsg string) models.AuditLog {
	return models.AuditLog{
		ID:         gocql.TimeUUID(),
		UserID:     c.GetString("user_id"),
		UserEmail:  c.GetString("email"),
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		OldValue:   toJSON(oldValue),
		NewValue:   toJSON(newValue),
		IPAddress:  c.ClientIP(),
		UserAgent:  c.GetHeader("User-Agent"),
		Success:    success,
		ErrorMsg:   errorMsg,
		Timestamp:  a.now(),
		SessionID:  c.GetHeader("X-Session-ID"),
	}
}

func (a *AuditLogger) record(entry models.AuditLog) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()
		err := a.writer.InsertAuditLog(ctx, entry)
		if err != nil {
			log.Printf("❌ Erreur enregistrement log audit: %v", err)
		}
		if a.done != nil {
			a.done(entry, err)
		}
	}()
}

func toJSON(v any) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Actions d'audit prédéfinies
const (
	ACTION_SETTINGS_UPDATE  = "settings.update"
	ACTION_STORE_SCOPE      = "settings.store_scope"
	ACTION_PLUGIN_INSTALL   = "plugin.install"
	ACTION_PLUGIN_UNINSTALL = "plugin.uninstall"
	ACTION_CAMPAIGN_CREATE  = "campaign.create"
	ACTION_CAMPAIGN_TEST    = "campaign.send_test"
)

// Resources d'audit
const (
	RESOURCE_SETTINGS = "settings"
	RESOURCE_PLUGIN   = "plugin"
	RESOURCE_CAMPAIGN = "campaign"
)
