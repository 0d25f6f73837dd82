// Package localization gère les ressources de texte (libellés, messages)
// ajoutées par les plugins.
package localization

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
)

// Repository persiste les ressources ; les noms sont stockés en minuscules
type Repository interface {
	All(ctx context.Context) (map[string]string, error)
	Upsert(ctx context.Context, name, value string) error
	Delete(ctx context.Context, name string) error
}

var defaults = map[string]string{
	"admin.plugins.saved":                  "The plugin settings have been saved.",
	"payment.cardnumber.wrong":             "Wrong card number",
	"payment.cardcode.wrong":               "Wrong card code",
	"payment.expirationdate.expired":       "Card is expired",
	"payment.expirationmonth.required":     "Expiration month is required",
	"payment.expirationyear.required":      "Expiration year is required",
	"admin.common.all":                     "All",
	"admin.promotions.campaigns.testemail": "Test e-mail has been successfully sent.",
}

// DefaultRefresh : délai avant relecture des ressources écrites par les
// autres instances
const DefaultRefresh = time.Minute

type Service struct {
	repo    Repository
	refresh time.Duration
	now     func() time.Time

	mu        sync.RWMutex
	resources map[string]string
	loadedAt  time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, refresh: DefaultRefresh, now: time.Now, resources: map[string]string{}}
}

func (s *Service) load(ctx context.Context) {
	if s.repo == nil {
		return
	}
	s.mu.RLock()
	loadedAt := s.loadedAt
	s.mu.RUnlock()
	if !loadedAt.IsZero() && s.now().Sub(loadedAt) < s.refresh {
		return
	}

	all, err := s.repo.All(ctx)
	if err != nil {
		log.Printf("⚠️ Chargement des ressources de langue impossible: %v", err)
		return
	}
	resources := make(map[string]string, len(all))
	for k, v := range all {
		resources[strings.ToLower(k)] = v
	}
	s.mu.Lock()
	s.resources = resources
	s.loadedAt = s.now()
	s.mu.Unlock()
}

// GetResource renvoie le texte pour name, ou name lui-même s'il est inconnu
func (s *Service) GetResource(ctx context.Context, name string) string {
	s.load(ctx)
	key := strings.ToLower(name)

	s.mu.RLock()
	v, ok := s.resources[key]
	s.mu.RUnlock()
	if ok {
		return v
	}
	if v, ok := defaults[key]; ok {
		return v
	}
	return name
}

func (s *Service) AddOrUpdatePluginLocaleResource(ctx context.Context, name, value string) error {
	key := strings.ToLower(name)
	if s.repo != nil {
		if err := s.repo.Upsert(ctx, key, value); err != nil {
			return fmt.Errorf("ressource %s: %w", name, err)
		}
	}
	s.mu.Lock()
	s.resources[key] = value
	s.mu.Unlock()
	return nil
}

func (s *Service) DeletePluginLocaleResource(ctx context.Context, name string) error {
	key := strings.ToLower(name)
	if s.repo != nil {
		if err := s.repo.Delete(ctx, key); err != nil {
			return fmt.Errorf("ressource %s: %w", name, err)
		}
	}
	s.mu.Lock()
	delete(s.resources, key)
	s.mu.Unlock()
	return nil
}
