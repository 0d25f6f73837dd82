// Package settingstest fournit un stockage de settings en mémoire pour les tests.
package settingstest

import (
	"context"
	"sort"
	"sync"

	"storefront_back_end/internal/settings"
)

// Repository implémente settings.Repository en mémoire
type Repository struct {
	mu      sync.Mutex
	rows    map[string]settings.Setting
	Upserts int
	Deletes int
	// FailOn fait échouer Upsert/Delete pour ces clés de cache ("nom:boutique")
	FailOn map[string]error
}

func NewRepository(rows ...settings.Setting) *Repository {
	r := &Repository{rows: make(map[string]settings.Setting)}
	for _, row := range rows {
		r.rows[settings.CacheKey(row.Name, row.StoreID)] = row
	}
	return r
}

func (r *Repository) All(ctx context.Context) ([]settings.Setting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]settings.Setting, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].StoreID < out[j].StoreID
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *Repository) Upsert(ctx context.Context, s settings.Setting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := settings.CacheKey(s.Name, s.StoreID)
	if err := r.FailOn[key]; err != nil {
		return err
	}
	r.Upserts++
	r.rows[key] = s
	return nil
}

func (r *Repository) Delete(ctx context.Context, name string, storeID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := settings.CacheKey(name, storeID)
	if err := r.FailOn[key]; err != nil {
		return err
	}
	r.Deletes++
	delete(r.rows, key)
	return nil
}

// Value renvoie la valeur brute stockée pour (nom, boutique)
func (r *Repository) Value(name string, storeID int) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[settings.CacheKey(name, storeID)]
	return row.Value, ok
}

// Cache implémente settings.Cache en mémoire et compte les invalidations
type Cache struct {
	mu     sync.Mutex
	values map[string]string
	Loads  int
	Clears int
}

func (c *Cache) Load(ctx context.Context) (map[string]string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.values == nil {
		return nil, false, nil
	}
	c.Loads++
	out := make(map[string]string, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out, true, nil
}

func (c *Cache) Store(ctx context.Context, values map[string]string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = make(map[string]string, len(values))
	for k, v := range values {
		c.values[k] = v
	}
	return nil
}

func (c *Cache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Clears++
	c.values = nil
	return nil
}

// NewService construit un settings.Service sur un stockage mémoire
func NewService(rows ...settings.Setting) (*settings.Service, *Repository, *Cache) {
	repo := NewRepository(rows...)
	cache := &Cache{}
	return settings.NewService(repo, cache), repo, cache
}
