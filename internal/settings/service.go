// Package settings stocke la configuration par clé, avec une surcharge
// optionnelle par boutique. La boutique 0 porte la valeur globale.
package settings

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

// ErrNotFound est renvoyée quand une clé n'existe ni pour la boutique ni globalement
var ErrNotFound = errors.New("setting not found")

// Setting est une ligne de la table settings
type Setting struct {
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	StoreID   int       `json:"store_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repository persiste les settings (ScyllaDB en production)
type Repository interface {
	All(ctx context.Context) ([]Setting, error)
	Upsert(ctx context.Context, s Setting) error
	Delete(ctx context.Context, name string, storeID int) error
}

// Cache conserve l'ensemble des settings, indexés par "nom:boutique".
// Load renvoie ok=false quand le cache est vide ou a été invalidé.
type Cache interface {
	Load(ctx context.Context) (values map[string]string, ok bool, err error)
	Store(ctx context.Context, values map[string]string) error
	Clear(ctx context.Context) error
}

type Service struct {
	repo  Repository
	cache Cache
	now   func() time.Time
}

// NewService crée le service. cache peut être nil (pas de cache).
func NewService(repo Repository, cache Cache) *Service {
	return &Service{repo: repo, cache: cache, now: time.Now}
}

// CacheKey construit la clé d'index utilisée par le cache
func CacheKey(name string, storeID int) string {
	return fmt.Sprintf("%s:%d", normalize(name), storeID)
}

func normalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

func (s *Service) all(ctx context.Context) (map[string]string, error) {
	if s.cache != nil {
		values, ok, err := s.cache.Load(ctx)
		if err != nil {
			log.Printf("⚠️ Cache settings indisponible: %v", err)
		} else if ok {
			return values, nil
		}
	}

	rows, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("chargement des settings: %w", err)
	}

	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[CacheKey(row.Name, row.StoreID)] = row.Value
	}

	if s.cache != nil {
		if err := s.cache.Store(ctx, values); err != nil {
			log.Printf("⚠️ Impossible de mettre les settings en cache: %v", err)
		}
	}
	return values, nil
}

// GetByKey renvoie la valeur de key pour la boutique. Si elle n'existe pas et
// que loadShared est vrai, la valeur globale (boutique 0) est utilisée.
func (s *Service) GetByKey(ctx context.Context, key string, storeID int, loadShared bool) (string, error) {
	values, err := s.all(ctx)
	if err != nil {
		return "", err
	}
	if v, ok := values[CacheKey(key, storeID)]; ok {
		return v, nil
	}
	if loadShared && storeID > 0 {
		if v, ok := values[CacheKey(key, 0)]; ok {
			return v, nil
		}
	}
	return "", ErrNotFound
}

// SettingExists vérifie l'existence exacte pour la boutique, sans repli global
func (s *Service) SettingExists(ctx context.Context, key string, storeID int) (bool, error) {
	_, err := s.GetByKey(ctx, key, storeID, false)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// SetSetting enregistre une valeur. Avec clearCache=false, le cache reste en
// l'état jusqu'au prochain ClearCache.
func (s *Service) SetSetting(ctx context.Context, key, value string, storeID int, clearCache bool) error {
	err := s.repo.Upsert(ctx, Setting{
		Name:      normalize(key),
		Value:     value,
		StoreID:   storeID,
		UpdatedAt: s.now(),
	})
	if err != nil {
		return fmt.Errorf("enregistrement setting %s (boutique %d): %w", key, storeID, err)
	}
	if clearCache {
		return s.ClearCache(ctx)
	}
	return nil
}

// DeleteSetting supprime la valeur propre à une boutique (la valeur globale reste)
func (s *Service) DeleteSetting(ctx context.Context, key string, storeID int, clearCache bool) error {
	if err := s.repo.Delete(ctx, normalize(key), storeID); err != nil {
		return fmt.Errorf("suppression setting %s (boutique %d): %w", key, storeID, err)
	}
	if clearCache {
		return s.ClearCache(ctx)
	}
	return nil
}

// ClearCache invalide le cache des settings
func (s *Service) ClearCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Clear(ctx); err != nil {
		return fmt.Errorf("invalidation cache settings: %w", err)
	}
	return nil
}

// AllSettings renvoie toutes les lignes, directement depuis la base
func (s *Service) AllSettings(ctx context.Context) ([]Setting, error) {
	return s.repo.All(ctx)
}
