// Package stores gère la liste des boutiques et la portée de configuration
// choisie par l'administrateur.
package stores

import (
	"context"
	"errors"
)

var ErrStoreNotFound = errors.New("store not found")

type Store struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	URL          string `json:"url"`
	DisplayOrder int    `json:"display_order"`
}

type Repository interface {
	List(ctx context.Context) ([]Store, error)
}

// Find renvoie la boutique d'identifiant id dans la liste
func Find(all []Store, id int) (Store, bool) {
	for _, s := range all {
		if s.ID == id {
			return s, true
		}
	}
	return Store{}, false
}
