package models

import "strings"

// SelectListItem est une option de liste déroulante
type SelectListItem struct {
	Text     string `json:"text"`
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
}

// SelectValue coche l'option dont la valeur correspond (sans tenir compte
// de la casse). Une seule option reste cochée.
func SelectValue(items []SelectListItem, value string) {
	if value == "" {
		return
	}
	found := -1
	for i := range items {
		if found < 0 && strings.EqualFold(items[i].Value, value) {
			found = i
		}
	}
	if found < 0 {
		return
	}
	for i := range items {
		items[i].Selected = i == found
	}
}

// AllOption est l'entrée "Tous" (valeur 0) en tête des filtres
func AllOption(text string) SelectListItem {
	return SelectListItem{Text: text, Value: "0"}
}
