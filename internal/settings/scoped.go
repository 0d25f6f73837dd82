package settings

import (
	"context"
	"errors"
)

// ApplyScoped enregistre un groupe édité depuis l'admin pour la portée active.
//
// Pour chaque champ : si la surcharge est cochée ou si la portée est globale,
// la valeur est enregistrée à cette portée ; sinon la valeur propre à la
// boutique est supprimée et le champ retombe sur la valeur globale.
// Chaque champ est traité indépendamment (pas de rollback) et le cache n'est
// vidé qu'une seule fois, à la fin.
func (s *Service) ApplyScoped(ctx context.Context, g Group, storeScope int, overrides map[string]bool) error {
	var errs []error
	for _, name := range Fields(g) {
		switch {
		case overrides[name] || storeScope == 0:
			if err := s.SaveSettingField(ctx, g, name, storeScope, false); err != nil {
				errs = append(errs, err)
			}
		case storeScope > 0:
			if err := s.DeleteSettingField(ctx, g, name, storeScope, false); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if err := s.ClearCache(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// OverrideFlags indique, pour chaque champ, si la boutique a sa propre valeur.
// Toujours faux en portée globale.
func (s *Service) OverrideFlags(ctx context.Context, g Group, storeScope int) (map[string]bool, error) {
	flags := make(map[string]bool)
	for _, name := range Fields(g) {
		flags[name] = false
		if storeScope <= 0 {
			continue
		}
		exists, err := s.SettingFieldExists(ctx, g, name, storeScope)
		if err != nil {
			return nil, err
		}
		flags[name] = exists
	}
	return flags, nil
}
