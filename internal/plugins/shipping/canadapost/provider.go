package canadapost

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"storefront_back_end/internal/directory"
	"storefront_back_end/internal/plugins"
	"storefront_back_end/internal/settings"
	"storefront_back_end/internal/shipping"
)

type settingStore interface {
	LoadSetting(ctx context.Context, g settings.Group, storeID int) error
	SaveSetting(ctx context.Context, g settings.Group, storeID int) error
	DeleteSettings(ctx context.Context, g settings.Group) error
}

type localeStore interface {
	AddOrUpdatePluginLocaleResource(ctx context.Context, name, value string) error
	DeletePluginLocaleResource(ctx context.Context, name string) error
}

type currencyConverter interface {
	GetCurrencyByCode(ctx context.Context, code string) (*directory.Currency, error)
	ConvertToPrimaryStoreCurrency(ctx context.Context, amount decimal.Decimal, source *directory.Currency) (decimal.Decimal, error)
}

type measureConverter interface {
	GetMeasureWeightBySystemKeyword(ctx context.Context, keyword string) (*directory.MeasureWeight, error)
	GetMeasureDimensionBySystemKeyword(ctx context.Context, keyword string) (*directory.MeasureDimension, error)
	ConvertFromPrimaryMeasureWeight(ctx context.Context, value decimal.Decimal, target *directory.MeasureWeight) (decimal.Decimal, error)
	ConvertFromPrimaryMeasureDimension(ctx context.Context, value decimal.Decimal, target *directory.MeasureDimension) (decimal.Decimal, error)
}

// ComputationMethod est le transporteur Postes Canada
type ComputationMethod struct {
	client     RateClient
	settings   settingStore
	locales    localeStore
	currencies currencyConverter
	measures   measureConverter
}

func NewComputationMethod(client RateClient, settings settingStore, locales localeStore, currencies currencyConverter, measures measureConverter) *ComputationMethod {
	return &ComputationMethod{
		client:     client,
		settings:   settings,
		locales:    locales,
		currencies: currencies,
		measures:   measures,
	}
}

func (m *ComputationMethod) SystemName() string { return SystemName }

func (m *ComputationMethod) Type() shipping.RateComputationMethodType { return shipping.Realtime }

func (m *ComputationMethod) Descriptor() plugins.Descriptor {
	return plugins.Descriptor{SystemName: SystemName, FriendlyName: "Canada Post", Group: "Shipping"}
}

func (m *ComputationMethod) ShipmentTracker() shipping.ShipmentTracker {
	return &Tracker{client: m.client, settings: m.settings}
}

// GetFixedRate : pas de tarif fixe, il faut appeler l'API
func (m *ComputationMethod) GetFixedRate(ctx context.Context, req *shipping.GetShippingOptionRequest) (*decimal.Decimal, error) {
	return nil, nil
}

func (m *ComputationMethod) GetShippingOptions(ctx context.Context, req *shipping.GetShippingOptionRequest) (*shipping.GetShippingOptionResponse, error) {
	if req == nil {
		return nil, errors.New("canadapost: requête de livraison manquante")
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
	if req.ZipPostalCodeFrom == "" {
		return shipping.ErrorResponse("Origin postal code is not set"), nil
	}

	var cps Settings
	if err := m.settings.LoadSetting(ctx, &cps, req.StoreID); err != nil {
		return nil, fmt.Errorf("canadapost: chargement des settings: %w", err)
	}

	dims, err := m.dimensions(ctx, req)
	if err != nil {
		return nil, err
	}
	weight, err := m.weight(ctx, req)
	if err != nil {
		return nil, err
	}

	scenario := &MailingScenario{
		CustomerNumber: cps.CustomerNumber,
		ParcelCharacteristics: ParcelCharacteristics{
			Weight:     weight,
			Dimensions: dims,
		},
		OriginPostalCode: req.ZipPostalCodeFrom,
		Destination:      destination(req.ShippingAddress),
	}

	result := &shipping.GetShippingOptionResponse{}
	quotes, err := m.client.GetRates(ctx, scenario, cps.APIKey, cps.UseSandbox)
	if err != nil {
		log.Printf("⚠️ Canada Post: %v", err)
		result.AddError(err.Error())
		return result, nil
	}

	for _, q := range quotes.Quotes {
		rate, err := m.toPrimaryStoreCurrency(ctx, q.PriceDetails.Due)
		if err != nil {
			return nil, err
		}
		opt := shipping.ShippingOption{Name: q.ServiceName, Rate: rate}
		if q.ServiceStandard.ExpectedTransitTime != "" {
			opt.Description = fmt.Sprintf("%s days", q.ServiceStandard.ExpectedTransitTime)
		}
		result.ShippingOptions = append(result.ShippingOptions, opt)
	}
	return result, nil
}

func destination(addr *shipping.Address) Destination {
	code := addr.Country.TwoLetterISOCode
	switch strings.ToLower(code) {
	case "us":
		return Destination{UnitedStates: &UnitedStatesDestination{ZipCode: addr.ZipPostalCode}}
	case "ca":
		return Destination{Domestic: &DomesticDestination{PostalCode: addr.ZipPostalCode}}
	default:
		return Destination{International: &InternationalDestination{CountryCode: code}}
	}
}

// weight renvoie le poids du colis en kg, 3 décimales
func (m *ComputationMethod) weight(ctx context.Context, req *shipping.GetShippingOptionRequest) (decimal.Decimal, error) {
	kg, err := m.measures.GetMeasureWeightBySystemKeyword(ctx, "kg")
	if err != nil {
		return decimal.Zero, fmt.Errorf("canadapost: unité \"kg\" introuvable: %w", err)
	}
	w, err := m.measures.ConvertFromPrimaryMeasureWeight(ctx, shipping.GetTotalWeight(req), kg)
	if err != nil {
		return decimal.Zero, err
	}
	return w.RoundBank(3), nil
}

// dimensions renvoie le colis en cm, 1 décimale. Postes Canada attend la
// plus grande dimension en longueur et la plus petite en hauteur.
func (m *ComputationMethod) dimensions(ctx context.Context, req *shipping.GetShippingOptionRequest) (*Dimensions, error) {
	meters, err := m.measures.GetMeasureDimensionBySystemKeyword(ctx, "meters")
	if err != nil {
		return nil, fmt.Errorf("canadapost: unité \"meters\" introuvable: %w", err)
	}

	width, length, height := shipping.GetDimensions(req.Items)
	sorted := []decimal.Decimal{length, width, height}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	cm := make([]decimal.Decimal, len(sorted))
	for i, v := range sorted {
		converted, err := m.measures.ConvertFromPrimaryMeasureDimension(ctx, v, meters)
		if err != nil {
			return nil, err
		}
		cm[i] = converted.Mul(decimal.NewFromInt(100)).RoundBank(1)
	}
	return &Dimensions{Length: cm[2], Width: cm[1], Height: cm[0]}, nil
}

func (m *ComputationMethod) toPrimaryStoreCurrency(ctx context.Context, price decimal.Decimal) (decimal.Decimal, error) {
	cad, err := m.currencies.GetCurrencyByCode(ctx, "CAD")
	if err != nil {
		return decimal.Zero, fmt.Errorf("canadapost: devise CAD introuvable: %w", err)
	}
	return m.currencies.ConvertToPrimaryStoreCurrency(ctx, price, cad)
}

func (m *ComputationMethod) Install(ctx context.Context) error {
	if err := m.settings.SaveSetting(ctx, &Settings{UseSandbox: true}, 0); err != nil {
		return err
	}
	for name, value := range localeResources {
		if err := m.locales.AddOrUpdatePluginLocaleResource(ctx, name, value); err != nil {
			return err
		}
	}
	return nil
}

func (m *ComputationMethod) Uninstall(ctx context.Context) error {
	if err := m.settings.DeleteSettings(ctx, &Settings{}); err != nil {
		return err
	}
	for name := range localeResources {
		if err := m.locales.DeletePluginLocaleResource(ctx, name); err != nil {
			return err
		}
	}
	return nil
}
