package models

// CustomerRole regroupe des clients (cible des campagnes)
type CustomerRole struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	SystemName string `json:"system_name"`
	Active     bool   `json:"active"`
}
