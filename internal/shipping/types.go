// Package shipping définit les demandes de tarifs de livraison et les
// interfaces des méthodes de calcul (transporteurs).
package shipping

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Country struct {
	Name               string `json:"name"`
	TwoLetterISOCode   string `json:"two_letter_iso_code"`
	ThreeLetterISOCode string `json:"three_letter_iso_code,omitempty"`
}

type Address struct {
	FirstName     string   `json:"first_name,omitempty"`
	LastName      string   `json:"last_name,omitempty"`
	Address1      string   `json:"address1,omitempty"`
	City          string   `json:"city,omitempty"`
	StateProvince string   `json:"state_province,omitempty"`
	ZipPostalCode string   `json:"zip_postal_code"`
	Country       *Country `json:"country"`
}

// PackageItem est une ligne du colis ; poids et dimensions sont dans les
// unités de base de la boutique
type PackageItem struct {
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Weight      decimal.Decimal `json:"weight"`
	Length      decimal.Decimal `json:"length"`
	Width       decimal.Decimal `json:"width"`
	Height      decimal.Decimal `json:"height"`
}

type GetShippingOptionRequest struct {
	StoreID           int           `json:"store_id"`
	Items             []PackageItem `json:"items"`
	ShippingAddress   *Address      `json:"shipping_address"`
	ZipPostalCodeFrom string        `json:"zip_postal_code_from"`
	// SubTotal est le sous-total du panier, utilisé par les tarifs fixes
	SubTotal decimal.Decimal `json:"sub_total"`
}

type ShippingOption struct {
	Name                                    string          `json:"name"`
	Description                             string          `json:"description,omitempty"`
	Rate                                    decimal.Decimal `json:"rate"`
	ShippingRateComputationMethodSystemName string          `json:"shipping_rate_computation_method_system_name"`
}

type GetShippingOptionResponse struct {
	ShippingOptions []ShippingOption `json:"shipping_options"`
	Errors          []string         `json:"errors"`
}

func (r *GetShippingOptionResponse) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// Success est vrai quand la réponse ne contient aucune erreur
func (r *GetShippingOptionResponse) Success() bool {
	return len(r.Errors) == 0
}

// ErrorResponse construit une réponse d'échec avec un seul message
func ErrorResponse(msg string) *GetShippingOptionResponse {
	return &GetShippingOptionResponse{Errors: []string{msg}}
}

type RateComputationMethodType int

const (
	Offline  RateComputationMethodType = 10
	Realtime RateComputationMethodType = 20
)

func (t RateComputationMethodType) String() string {
	switch t {
	case Offline:
		return "offline"
	case Realtime:
		return "realtime"
	default:
		return "unknown"
	}
}

// RateComputationMethod est implémentée par chaque plugin transporteur.
// Les préconditions non remplies donnent une réponse avec erreurs ; un error
// renvoyé signale un problème de configuration.
type RateComputationMethod interface {
	SystemName() string
	Type() RateComputationMethodType
	GetShippingOptions(ctx context.Context, req *GetShippingOptionRequest) (*GetShippingOptionResponse, error)
	// GetFixedRate renvoie nil quand aucun tarif fixe n'est calculable avant le checkout
	GetFixedRate(ctx context.Context, req *GetShippingOptionRequest) (*decimal.Decimal, error)
	ShipmentTracker() ShipmentTracker
}

type ShipmentStatusEvent struct {
	EventName   string    `json:"event_name"`
	Location    string    `json:"location"`
	CountryCode string    `json:"country_code,omitempty"`
	Date        time.Time `json:"date"`
}

type ShipmentTracker interface {
	IsMatch(trackingNumber string) bool
	GetURL(trackingNumber string) string
	GetShipmentEvents(ctx context.Context, storeID int, trackingNumber string) ([]ShipmentStatusEvent, error)
}
