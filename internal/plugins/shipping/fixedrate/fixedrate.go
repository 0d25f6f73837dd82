// Package fixedrate propose des tarifs de livraison fixes (standard, express,
// 24h) avec livraison standard offerte au-delà d'un seuil.
package fixedrate

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"storefront_back_end/internal/plugins"
	"storefront_back_end/internal/settings"
	"storefront_back_end/internal/shipping"
)

const SystemName = "Shipping.FixedRate"

type Settings struct {
	StandardRate decimal.Decimal
	ExpressRate  decimal.Decimal
	NextDayRate  decimal.Decimal
	// FreeShippingThreshold à 0 désactive la livraison offerte
	FreeShippingThreshold decimal.Decimal
}

func (Settings) SettingPrefix() string { return "fixedrateshippingsettings" }

func defaultSettings() *Settings {
	return &Settings{
		StandardRate:          decimal.RequireFromString("5.99"),
		ExpressRate:           decimal.RequireFromString("12.99"),
		NextDayRate:           decimal.RequireFromString("19.99"),
		FreeShippingThreshold: decimal.NewFromInt(50),
	}
}

type settingStore interface {
	LoadSetting(ctx context.Context, g settings.Group, storeID int) error
	SaveSetting(ctx context.Context, g settings.Group, storeID int) error
	DeleteSettings(ctx context.Context, g settings.Group) error
}

type Method struct {
	settings settingStore
}

func NewMethod(settings settingStore) *Method {
	return &Method{settings: settings}
}

func (m *Method) SystemName() string { return SystemName }

func (m *Method) Type() shipping.RateComputationMethodType { return shipping.Offline }

func (m *Method) Descriptor() plugins.Descriptor {
	return plugins.Descriptor{SystemName: SystemName, FriendlyName: "Fixed rate shipping", Group: "Shipping"}
}

func (m *Method) ShipmentTracker() shipping.ShipmentTracker { return nil }

func (m *Method) load(ctx context.Context, storeID int) (*Settings, error) {
	s := defaultSettings()
	if err := m.settings.LoadSetting(ctx, s, storeID); err != nil {
		return nil, fmt.Errorf("fixedrate: chargement des settings: %w", err)
	}
	return s, nil
}

func (m *Method) free(s *Settings, req *shipping.GetShippingOptionRequest) bool {
	return s.FreeShippingThreshold.IsPositive() && req.SubTotal.GreaterThanOrEqual(s.FreeShippingThreshold)
}

func (m *Method) GetShippingOptions(ctx context.Context, req *shipping.GetShippingOptionRequest) (*shipping.GetShippingOptionResponse, error) {
	if req == nil {
		return nil, errors.New("fixedrate: requête manquante")
	}
	if len(req.Items) == 0 {
		return shipping.ErrorResponse("No shipment items"), nil
	}
	if req.ShippingAddress == nil {
		return shipping.ErrorResponse("Shipping address is not set"), nil
	}
	if req.ShippingAddress.Country == nil {
		return shipping.ErrorResponse("Shipping country is not set"), nil
	}
	s, err := m.load(ctx, req.StoreID)
	if err != nil {
		return nil, err
	}

	standard := shipping.ShippingOption{Name: "Standard", Description: "5-7 business days", Rate: s.StandardRate}
	if m.free(s, req) {
		standard.Name = "Free standard shipping"
		standard.Rate = decimal.Zero
	}
	return &shipping.GetShippingOptionResponse{ShippingOptions: []shipping.ShippingOption{
		standard,
		{Name: "Express", Description: "2-3 business days", Rate: s.ExpressRate},
		{Name: "Next day", Description: "Next business day", Rate: s.NextDayRate},
	}}, nil
}

// GetFixedRate renvoie le tarif standard, connu avant l'adresse de livraison
func (m *Method) GetFixedRate(ctx context.Context, req *shipping.GetShippingOptionRequest) (*decimal.Decimal, error) {
	if req == nil {
		return nil, errors.New("fixedrate: requête manquante")
	}
	s, err := m.load(ctx, req.StoreID)
	if err != nil {
		return nil, err
	}
	rate := s.StandardRate
	if m.free(s, req) {
		rate = decimal.Zero
	}
	return &rate, nil
}

func (m *Method) Install(ctx context.Context) error {
	return m.settings.SaveSetting(ctx, defaultSettings(), 0)
}

func (m *Method) Uninstall(ctx context.Context) error {
	return m.settings.DeleteSettings(ctx, &Settings{})
}
