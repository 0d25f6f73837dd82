package canadapost

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"
	"time"

	"storefront_back_end/internal/shipping"
)

var (
	pinPattern = regexp.MustCompile(`^\d{16}$`)
	s10Pattern = regexp.MustCompile(`^[A-Z]{2}\d{9}[A-Z]{2}$`)
)

const trackingPageURL = "https://www.canadapost-postescanada.ca/track-reperage/en#/search?searchFor="

type Tracker struct {
	client   RateClient
	settings settingStore
}

func normalizeTrackingNumber(n string) string {
	return strings.ToUpper(strings.TrimSpace(n))
}

// IsMatch reconnaît les PIN domestiques (16 chiffres) et les numéros S10 internationaux
func (t *Tracker) IsMatch(trackingNumber string) bool {
	n := normalizeTrackingNumber(trackingNumber)
	return pinPattern.MatchString(n) || s10Pattern.MatchString(n)
}

func (t *Tracker) GetURL(trackingNumber string) string {
	return trackingPageURL + url.QueryEscape(normalizeTrackingNumber(trackingNumber))
}

func (t *Tracker) GetShipmentEvents(ctx context.Context, storeID int, trackingNumber string) ([]shipping.ShipmentStatusEvent, error) {
	var cps Settings
	if err := t.settings.LoadSetting(ctx, &cps, storeID); err != nil {
		return nil, fmt.Errorf("canadapost: chargement des settings: %w", err)
	}

	detail, err := t.client.GetTrackingDetail(ctx, normalizeTrackingNumber(trackingNumber), cps.APIKey, cps.UseSandbox)
	if err != nil {
		return nil, err
	}

	events := make([]shipping.ShipmentStatusEvent, 0, len(detail.SignificantEvents))
	for _, e := range detail.SignificantEvents {
		date, err := time.Parse("2006-01-02 15:04:05", e.Date+" "+e.Time)
		if err != nil {
			log.Printf("⚠️ Canada Post: date d'événement invalide %q %q", e.Date, e.Time)
		}
		location := e.Site
		if e.Province != "" {
			location = strings.TrimSpace(location + ", " + e.Province)
		}
		events = append(events, shipping.ShipmentStatusEvent{
			EventName:   e.Description,
			Location:    strings.TrimPrefix(location, ", "),
			CountryCode: "CA",
			Date:        date,
		})
	}
	return events, nil
}
