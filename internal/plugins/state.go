package plugins

import (
	"context"
	"errors"
	"strconv"

	"storefront_back_end/internal/settings"
)

// StateStore garde l'état installé des plugins entre deux démarrages
type StateStore interface {
	IsInstalled(ctx context.Context, systemName string) (bool, error)
	SetInstalled(ctx context.Context, systemName string, installed bool) error
}

type settingKV interface {
	GetByKey(ctx context.Context, key string, storeID int, loadShared bool) (string, error)
	SetSetting(ctx context.Context, key, value string, storeID int, clearCache bool) error
}

// SettingsState range l'état dans les settings globaux, clé
// "installedplugins.<system name>"
type SettingsState struct {
	settings settingKV
}

func NewSettingsState(settings settingKV) *SettingsState {
	return &SettingsState{settings: settings}
}

func stateKey(systemName string) string { return "installedplugins." + key(systemName) }

func (s *SettingsState) IsInstalled(ctx context.Context, systemName string) (bool, error) {
	v, err := s.settings.GetByKey(ctx, stateKey(systemName), 0, false)
	if errors.Is(err, settings.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return strconv.ParseBool(v)
}

func (s *SettingsState) SetInstalled(ctx context.Context, systemName string, installed bool) error {
	return s.settings.SetSetting(ctx, stateKey(systemName), strconv.FormatBool(installed), 0, true)
}
