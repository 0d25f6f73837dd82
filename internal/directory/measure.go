package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrMeasureNotFound = errors.New("measure not found")

// MeasureWeight est une unité de poids ; Ratio convertit depuis l'unité de base
type MeasureWeight struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	SystemKeyword string          `json:"system_keyword"`
	Ratio         decimal.Decimal `json:"ratio"`
	DisplayOrder  int             `json:"display_order"`
}

// MeasureDimension est une unité de longueur ; Ratio convertit depuis l'unité de base
type MeasureDimension struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	SystemKeyword string          `json:"system_keyword"`
	Ratio         decimal.Decimal `json:"ratio"`
	DisplayOrder  int             `json:"display_order"`
}

type MeasureSettings struct {
	BaseDimensionID int
	BaseWeightID    int
}

func (MeasureSettings) SettingPrefix() string { return "measuresettings" }

type MeasureRepository interface {
	Weights(ctx context.Context) ([]MeasureWeight, error)
	Dimensions(ctx context.Context) ([]MeasureDimension, error)
}

type MeasureService struct {
	repo     MeasureRepository
	settings settingsLoader
}

func NewMeasureService(repo MeasureRepository, settings settingsLoader) *MeasureService {
	return &MeasureService{repo: repo, settings: settings}
}

func (s *MeasureService) GetMeasureWeightBySystemKeyword(ctx context.Context, keyword string) (*MeasureWeight, error) {
	all, err := s.repo.Weights(ctx)
	if err != nil {
		return nil, fmt.Errorf("chargement des unités de poids: %w", err)
	}
	for i := range all {
		if strings.EqualFold(all[i].SystemKeyword, keyword) {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("%w: poids %q", ErrMeasureNotFound, keyword)
}

func (s *MeasureService) GetMeasureDimensionBySystemKeyword(ctx context.Context, keyword string) (*MeasureDimension, error) {
	all, err := s.repo.Dimensions(ctx)
	if err != nil {
		return nil, fmt.Errorf("chargement des unités de dimension: %w", err)
	}
	for i := range all {
		if strings.EqualFold(all[i].SystemKeyword, keyword) {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("%w: dimension %q", ErrMeasureNotFound, keyword)
}

func (s *MeasureService) measureSettings(ctx context.Context) (MeasureSettings, error) {
	var ms MeasureSettings
	err := s.settings.LoadSetting(ctx, &ms, 0)
	return ms, err
}

// ConvertFromPrimaryMeasureWeight convertit un poids exprimé dans l'unité de base
func (s *MeasureService) ConvertFromPrimaryMeasureWeight(ctx context.Context, value decimal.Decimal, target *MeasureWeight) (decimal.Decimal, error) {
	if target == nil {
		return decimal.Zero, errors.New("unité de poids cible manquante")
	}
	if value.IsZero() {
		return value, nil
	}
	ms, err := s.measureSettings(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if target.ID == ms.BaseWeightID {
		return value, nil
	}
	if target.Ratio.IsZero() {
		return decimal.Zero, fmt.Errorf("ratio nul pour l'unité de poids %s", target.Name)
	}
	return value.Mul(target.Ratio), nil
}

// ConvertFromPrimaryMeasureDimension convertit une longueur exprimée dans l'unité de base
func (s *MeasureService) ConvertFromPrimaryMeasureDimension(ctx context.Context, value decimal.Decimal, target *MeasureDimension) (decimal.Decimal, error) {
	if target == nil {
		return decimal.Zero, errors.New("unité de dimension cible manquante")
	}
	if value.IsZero() {
		return value, nil
	}
	ms, err := s.measureSettings(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if target.ID == ms.BaseDimensionID {
		return value, nil
	}
	if target.Ratio.IsZero() {
		return decimal.Zero, fmt.Errorf("ratio nul pour l'unité de dimension %s", target.Name)
	}
	return value.Mul(target.Ratio), nil
}
