// Package canadapost calcule les tarifs de livraison en temps réel via
// l'API "rating" de Postes Canada et suit les colis.
package canadapost

const SystemName = "Shipping.CanadaPost"

type Settings struct {
	CustomerNumber string
	// APIKey au format "utilisateur:mot_de_passe"
	APIKey     string
	UseSandbox bool
}

func (Settings) SettingPrefix() string { return "canadapostsettings" }

var localeResources = map[string]string{
	"Plugins.Shipping.CanadaPost.Fields.Api":                 "API key",
	"Plugins.Shipping.CanadaPost.Fields.Api.Hint":            "Specify Canada Post API key.",
	"Plugins.Shipping.CanadaPost.Fields.CustomerNumber":      "Customer number",
	"Plugins.Shipping.CanadaPost.Fields.CustomerNumber.Hint": "Specify customer number.",
	"Plugins.Shipping.CanadaPost.Fields.UseSandbox":          "Use Sandbox",
	"Plugins.Shipping.CanadaPost.Fields.UseSandbox.Hint":     "Check to enable Sandbox (testing environment).",
}
