package shipping

// Settings regroupe les paramètres d'expédition communs aux transporteurs
type Settings struct {
	// ShippingOriginZipPostalCode est le code postal de l'entrepôt d'expédition
	ShippingOriginZipPostalCode string
}

func (Settings) SettingPrefix() string { return "shippingsettings" }
