package database

import (
	"context"
	"fmt"
	"time"

	"github.com/gocql/gocql"

	"storefront_back_end/internal/settings"
)

// SettingRepository stocke les settings, une ligne par (nom, boutique)
type SettingRepository struct {
	session *gocql.Session
}

func NewSettingRepository(session *gocql.Session) *SettingRepository {
	return &SettingRepository{session: session}
}

func (r *SettingRepository) All(ctx context.Context) ([]settings.Setting, error) {
	iter := r.session.Query(stmtSelectSettings).WithContext(ctx).Iter()

	var out []settings.Setting
	var s settings.Setting
	for iter.Scan(&s.Name, &s.StoreID, &s.Value, &s.UpdatedAt) {
		out = append(out, s)
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("lecture settings: %w", err)
	}
	return out, nil
}

func (r *SettingRepository) Upsert(ctx context.Context, s settings.Setting) error {
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = time.Now().UTC()
	}
	return r.session.Query(stmtUpsertSetting, s.Name, s.StoreID, s.Value, s.UpdatedAt).WithContext(ctx).Exec()
}

func (r *SettingRepository) Delete(ctx context.Context, name string, storeID int) error {
	return r.session.Query(stmtDeleteSetting, name, storeID).WithContext(ctx).Exec()
}

// LocaleRepository stocke les ressources de texte
type LocaleRepository struct {
	session *gocql.Session
}

func NewLocaleRepository(session *gocql.Session) *LocaleRepository {
	return &LocaleRepository{session: session}
}

func (r *LocaleRepository) All(ctx context.Context) (map[string]string, error) {
	iter := r.session.Query(stmtSelectLocaleResources).WithContext(ctx).Iter()

	out := make(map[string]string)
	var name, value string
	for iter.Scan(&name, &value) {
		out[name] = value
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("lecture ressources: %w", err)
	}
	return out, nil
}

func (r *LocaleRepository) Upsert(ctx context.Context, name, value string) error {
	return r.session.Query(stmtUpsertLocaleResource, name, value).WithContext(ctx).Exec()
}

func (r *LocaleRepository) Delete(ctx context.Context, name string) error {
	return r.session.Query(stmtDeleteLocaleResource, name).WithContext(ctx).Exec()
}
