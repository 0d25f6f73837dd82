package stores

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	scopeSessionName = "storefront_admin"
	scopeSessionKey  = "active_store_scope"
)

// ScopeResolver retrouve la boutique en cours d'édition dans l'admin.
// La valeur est gardée dans la session cookie de l'administrateur.
type ScopeResolver struct {
	stores   Repository
	sessions sessions.Store
}

func NewScopeResolver(repo Repository, store sessions.Store) *ScopeResolver {
	return &ScopeResolver{stores: repo, sessions: store}
}

// ActiveStoreScope renvoie 0 (global) s'il y a moins de deux boutiques,
// sinon l'identifiant choisi en session s'il correspond à une boutique existante
func (r *ScopeResolver) ActiveStoreScope(req *http.Request) (int, error) {
	all, err := r.stores.List(req.Context())
	if err != nil {
		return 0, fmt.Errorf("chargement des boutiques: %w", err)
	}
	if len(all) < 2 {
		return 0, nil
	}

	// Get renvoie une session neuve si le cookie est illisible
	sess, err := r.sessions.Get(req, scopeSessionName)
	if err != nil {
		log.Printf("⚠️ Session admin illisible: %v", err)
	}
	if sess == nil {
		return 0, nil
	}

	storeID, ok := sess.Values[scopeSessionKey].(int)
	if !ok {
		return 0, nil
	}
	if _, exists := Find(all, storeID); !exists {
		return 0, nil
	}
	return storeID, nil
}

// SetActiveStoreScope enregistre la portée choisie (0 = toutes les boutiques)
func (r *ScopeResolver) SetActiveStoreScope(w http.ResponseWriter, req *http.Request, storeID int) error {
	if storeID != 0 {
		all, err := r.stores.List(req.Context())
		if err != nil {
			return fmt.Errorf("chargement des boutiques: %w", err)
		}
		if _, exists := Find(all, storeID); !exists {
			return ErrStoreNotFound
		}
	}

	sess, err := r.sessions.Get(req, scopeSessionName)
	if err != nil {
		log.Printf("⚠️ Session admin illisible, une nouvelle session est créée: %v", err)
	}
	sess.Values[scopeSessionKey] = storeID
	return sess.Save(req, w)
}
