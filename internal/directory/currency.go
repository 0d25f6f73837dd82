// Package directory contient les devises et les unités de mesure du catalogue.
package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"storefront_back_end/internal/settings"
)

var ErrCurrencyNotFound = errors.New("currency not found")

type Currency struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	CurrencyCode string          `json:"currency_code"`
	Rate         decimal.Decimal `json:"rate"`
	Published    bool            `json:"published"`
	DisplayOrder int             `json:"display_order"`
}

// CurrencySettings désigne la devise d'affichage et la devise pivot des taux
type CurrencySettings struct {
	PrimaryStoreCurrencyID        int
	PrimaryExchangeRateCurrencyID int
}

func (CurrencySettings) SettingPrefix() string { return "currencysettings" }

type CurrencyRepository interface {
	List(ctx context.Context) ([]Currency, error)
}

type settingsLoader interface {
	LoadSetting(ctx context.Context, g settings.Group, storeID int) error
}

type CurrencyService struct {
	repo     CurrencyRepository
	settings settingsLoader
}

func NewCurrencyService(repo CurrencyRepository, settings settingsLoader) *CurrencyService {
	return &CurrencyService{repo: repo, settings: settings}
}

// GetCurrencyByCode cherche une devise par code ISO (insensible à la casse)
func (s *CurrencyService) GetCurrencyByCode(ctx context.Context, code string) (*Currency, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("chargement des devises: %w", err)
	}
	for i := range all {
		if strings.EqualFold(all[i].CurrencyCode, code) {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrCurrencyNotFound, code)
}

// GetCurrencyByID cherche une devise par identifiant
func (s *CurrencyService) GetCurrencyByID(ctx context.Context, id int) (*Currency, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("chargement des devises: %w", err)
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("%w: id %d", ErrCurrencyNotFound, id)
}

func (s *CurrencyService) currencySettings(ctx context.Context) (CurrencySettings, error) {
	var cs CurrencySettings
	if err := s.settings.LoadSetting(ctx, &cs, 0); err != nil {
		return cs, err
	}
	return cs, nil
}

// GetPrimaryStoreCurrency renvoie la devise dans laquelle les prix sont affichés
func (s *CurrencyService) GetPrimaryStoreCurrency(ctx context.Context) (*Currency, error) {
	cs, err := s.currencySettings(ctx)
	if err != nil {
		return nil, err
	}
	primary, err := s.GetCurrencyByID(ctx, cs.PrimaryStoreCurrencyID)
	if err != nil {
		return nil, fmt.Errorf("devise principale de la boutique: %w", err)
	}
	return primary, nil
}

// ConvertToPrimaryStoreCurrency convertit un montant exprimé dans source
// vers la devise principale de la boutique
func (s *CurrencyService) ConvertToPrimaryStoreCurrency(ctx context.Context, amount decimal.Decimal, source *Currency) (decimal.Decimal, error) {
	if source == nil {
		return decimal.Zero, errors.New("devise source manquante")
	}
	cs, err := s.currencySettings(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	primary, err := s.GetCurrencyByID(ctx, cs.PrimaryStoreCurrencyID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("devise principale de la boutique: %w", err)
	}
	return ConvertCurrency(amount, source, primary, cs.PrimaryExchangeRateCurrencyID)
}

// ConvertCurrency passe par la devise pivot : montant / taux source * taux cible
func ConvertCurrency(amount decimal.Decimal, source, target *Currency, exchangeRateCurrencyID int) (decimal.Decimal, error) {
	if source.ID == target.ID || amount.IsZero() {
		return amount, nil
	}

	result := amount
	if source.ID != exchangeRateCurrencyID {
		if source.Rate.IsZero() {
			return decimal.Zero, fmt.Errorf("taux de change nul pour la devise %s", source.CurrencyCode)
		}
		result = result.Div(source.Rate)
	}
	if target.ID != exchangeRateCurrencyID {
		if target.Rate.IsZero() {
			return decimal.Zero, fmt.Errorf("taux de change nul pour la devise %s", target.CurrencyCode)
		}
		result = result.Mul(target.Rate)
	}
	return result, nil
}
