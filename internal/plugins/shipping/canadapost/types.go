package canadapost

import (
	"encoding/xml"

	"github.com/shopspring/decimal"
)

// MailingScenario est la requête de tarification (rate-v3)
type MailingScenario struct {
	XMLName               xml.Name              `xml:"http://www.canadapost.ca/ws/ship/rate-v3 mailing-scenario"`
	CustomerNumber        string                `xml:"customer-number,omitempty"`
	ParcelCharacteristics ParcelCharacteristics `xml:"parcel-characteristics"`
	OriginPostalCode      string                `xml:"origin-postal-code"`
	Destination           Destination           `xml:"destination"`
}

type ParcelCharacteristics struct {
	Weight     decimal.Decimal `xml:"weight"`
	Dimensions *Dimensions     `xml:"dimensions,omitempty"`
}

// Dimensions en centimètres ; Length est toujours la plus grande
type Dimensions struct {
	Length decimal.Decimal `xml:"length"`
	Width  decimal.Decimal `xml:"width"`
	Height decimal.Decimal `xml:"height"`
}

// Destination ne porte qu'une seule des trois variantes
type Destination struct {
	Domestic      *DomesticDestination      `xml:"domestic,omitempty"`
	UnitedStates  *UnitedStatesDestination  `xml:"united-states,omitempty"`
	International *InternationalDestination `xml:"international,omitempty"`
}

type DomesticDestination struct {
	PostalCode string `xml:"postal-code"`
}

type UnitedStatesDestination struct {
	ZipCode string `xml:"zip-code"`
}

type InternationalDestination struct {
	CountryCode string `xml:"country-code"`
}

type PriceQuotes struct {
	XMLName xml.Name     `xml:"price-quotes"`
	Quotes  []PriceQuote `xml:"price-quote"`
}

type PriceQuote struct {
	ServiceCode     string          `xml:"service-code"`
	ServiceName     string          `xml:"service-name"`
	PriceDetails    PriceDetails    `xml:"price-details"`
	ServiceStandard ServiceStandard `xml:"service-standard"`
}

type PriceDetails struct {
	Base decimal.Decimal `xml:"base"`
	Due  decimal.Decimal `xml:"due"`
}

type ServiceStandard struct {
	AmDelivery           bool   `xml:"am-delivery"`
	GuaranteedDelivery   bool   `xml:"guaranteed-delivery"`
	ExpectedTransitTime  string `xml:"expected-transit-time"`
	ExpectedDeliveryDate string `xml:"expected-delivery-date"`
}

// Messages est le corps renvoyé par l'API en cas d'erreur
type Messages struct {
	XMLName  xml.Name  `xml:"messages"`
	Messages []Message `xml:"message"`
}

type Message struct {
	Code        string `xml:"code"`
	Description string `xml:"description"`
}

type TrackingDetail struct {
	XMLName           xml.Name        `xml:"tracking-detail"`
	PIN               string          `xml:"pin"`
	SignificantEvents []TrackingEvent `xml:"significant-events>occurrence"`
}

type TrackingEvent struct {
	Identifier  string `xml:"event-identifier"`
	Date        string `xml:"event-date"`
	Time        string `xml:"event-time"`
	TimeZone    string `xml:"event-time-zone"`
	Description string `xml:"event-description"`
	Site        string `xml:"event-site"`
	Province    string `xml:"event-province"`
}
