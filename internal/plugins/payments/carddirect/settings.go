// Package carddirect est le moyen de paiement par carte saisie directement
// sur la boutique, débitée via l'API Stripe.
package carddirect

import (
	"strconv"

	"github.com/shopspring/decimal"

	"storefront_back_end/internal/models"
)

const SystemName = "Payments.CardDirect"

type TransactMode int

const (
	Authorize           TransactMode = 1
	AuthorizeAndCapture TransactMode = 2
)

func (m TransactMode) String() string {
	switch m {
	case Authorize:
		return "Authorize"
	case AuthorizeAndCapture:
		return "Authorize and capture"
	default:
		return "Unknown"
	}
}

// TransactModeValues construit la liste déroulante avec le mode courant coché
func TransactModeValues(selected TransactMode) []models.SelectListItem {
	items := make([]models.SelectListItem, 0, 2)
	for _, m := range []TransactMode{Authorize, AuthorizeAndCapture} {
		items = append(items, models.SelectListItem{
			Text:     m.String(),
			Value:    strconv.Itoa(int(m)),
			Selected: m == selected,
		})
	}
	return items
}

type Settings struct {
	// ClientID est la clé publiable, ClientSecret la clé secrète
	ClientID                string
	ClientSecret            string
	UseSandbox              bool
	TransactMode            TransactMode
	AdditionalFee           decimal.Decimal
	AdditionalFeePercentage bool
}

func (Settings) SettingPrefix() string { return "carddirectpaymentsettings" }

func defaultSettings() *Settings {
	return &Settings{UseSandbox: true, TransactMode: Authorize}
}

var localeResources = map[string]string{
	"Plugins.Payments.CardDirect.Fields.ClientId":                     "Client ID",
	"Plugins.Payments.CardDirect.Fields.ClientId.Hint":                "Specify the publishable key.",
	"Plugins.Payments.CardDirect.Fields.ClientSecret":                 "Client secret",
	"Plugins.Payments.CardDirect.Fields.ClientSecret.Hint":            "Specify the secret key.",
	"Plugins.Payments.CardDirect.Fields.UseSandbox":                   "Use Sandbox",
	"Plugins.Payments.CardDirect.Fields.UseSandbox.Hint":              "Check to enable Sandbox (testing environment).",
	"Plugins.Payments.CardDirect.Fields.TransactMode":                 "Transaction mode",
	"Plugins.Payments.CardDirect.Fields.TransactMode.Hint":            "Specify transaction mode.",
	"Plugins.Payments.CardDirect.Fields.AdditionalFee":                "Additional fee",
	"Plugins.Payments.CardDirect.Fields.AdditionalFee.Hint":           "Enter additional fee to charge your customers.",
	"Plugins.Payments.CardDirect.Fields.AdditionalFeePercentage":      "Additional fee. Use percentage",
	"Plugins.Payments.CardDirect.Fields.AdditionalFeePercentage.Hint": "Determines whether to apply a percentage additional fee to the order total.",
	"Plugins.Payments.CardDirect.SandboxRequiresTestKey":              "Sandbox mode requires a test secret key.",
}
