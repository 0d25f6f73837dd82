package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/gocql/gocql"

	"storefront_back_end/internal/models"
)

type AuditRepository struct {
	session *gocql.Session
}

func NewAuditRepository(session *gocql.Session) *AuditRepository {
	return &AuditRepository{session: session}
}

func (r *AuditRepository) InsertAuditLog(ctx context.Context, e models.AuditLog) error {
	return r.session.Query(stmtInsertAuditLog,
		e.ID, e.UserID, e.UserEmail, e.Action, e.Resource, e.ResourceID,
		e.OldValue, e.NewValue, e.IPAddress, e.UserAgent, e.Success, e.ErrorMsg, e.Timestamp, e.SessionID,
	).WithContext(ctx).Exec()
}

// AuditFilter restreint la liste ; les champs vides sont ignorés
type AuditFilter struct {
	Action     string
	Resource   string
	ResourceID string
	Limit      int
}

func (r *AuditRepository) ListAuditLogs(ctx context.Context, f AuditFilter) ([]models.AuditLog, error) {
	var conditions []string
	var args []interface{}
	if f.Action != "" {
		conditions = append(conditions, "action = ?")
		args = append(args, f.Action)
	}
	if f.Resource != "" {
		conditions = append(conditions, "resource = ?")
		args = append(args, f.Resource)
	}
	if f.ResourceID != "" {
		conditions = append(conditions, "resource_id = ?")
		args = append(args, f.ResourceID)
	}

	query := stmtSelectAuditLogs
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " LIMIT ?"
	args = append(args, f.Limit)
	if len(conditions) > 0 {
		query += " ALLOW FILTERING"
	}

	iter := r.session.Query(query, args...).WithContext(ctx).Iter()
	var logs []models.AuditLog
	var e models.AuditLog
	for iter.Scan(&e.ID, &e.UserID, &e.UserEmail, &e.Action, &e.Resource, &e.ResourceID,
		&e.OldValue, &e.NewValue, &e.IPAddress, &e.UserAgent, &e.Success, &e.ErrorMsg,
		&e.Timestamp, &e.SessionID) {
		logs = append(logs, e)
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("lecture logs audit: %w", err)
	}
	return logs, nil
}
