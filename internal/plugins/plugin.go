// Package plugins tient le registre des plugins installables (transporteurs,
// moyens de paiement).
package plugins

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"
)

var ErrPluginNotFound = errors.New("plugin not found")

const stateTimeout = 2 * time.Second

type Descriptor struct {
	SystemName   string `json:"system_name"`
	FriendlyName string `json:"friendly_name"`
	Group        string `json:"group"`
	Installed    bool   `json:"installed"`
}

type Plugin interface {
	Descriptor() Descriptor
	Install(ctx context.Context) error
	Uninstall(ctx context.Context) error
}

type Registry struct {
	mu        sync.RWMutex
	plugins   map[string]Plugin
	installed map[string]bool
	state     StateStore
}

func NewRegistry() *Registry {
	return &Registry{plugins: map[string]Plugin{}, installed: map[string]bool{}}
}

func key(systemName string) string { return strings.ToLower(systemName) }

func (r *Registry) Register(p Plugin, installed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key(p.Descriptor().SystemName)
	r.plugins[k] = p
	r.installed[k] = installed
}

// SetStateStore persiste l'état installé à chaque Install/Uninstall
func (r *Registry) SetStateStore(state StateStore) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = state
}

// RegisterFromState enregistre p avec l'état installé lu dans le StateStore
func (r *Registry) RegisterFromState(ctx context.Context, p Plugin) error {
	r.mu.RLock()
	state := r.state
	r.mu.RUnlock()
	installed := false
	if state != nil {
		var err error
		installed, err = state.IsInstalled(ctx, p.Descriptor().SystemName)
		if err != nil {
			return fmt.Errorf("état du plugin %s: %w", p.Descriptor().SystemName, err)
		}
	}
	r.Register(p, installed)
	return nil
}

// IsInstalled lit l'état dans le StateStore, partagé entre les instances ;
// la valeur en mémoire sert de repli si le store ne répond pas
func (r *Registry) IsInstalled(systemName string) bool {
	k := key(systemName)
	r.mu.RLock()
	_, registered := r.plugins[k]
	local := r.installed[k]
	state := r.state
	r.mu.RUnlock()
	if !registered || state == nil {
		return local
	}

	ctx, cancel := context.WithTimeout(context.Background(), stateTimeout)
	defer cancel()
	installed, err := state.IsInstalled(ctx, systemName)
	if err != nil {
		log.Printf("⚠️ État du plugin %s indisponible: %v", systemName, err)
		return local
	}
	if installed != local {
		r.mu.Lock()
		r.installed[k] = installed
		r.mu.Unlock()
	}
	return installed
}

func (r *Registry) setInstalled(ctx context.Context, systemName string, installed bool) error {
	r.mu.Lock()
	r.installed[key(systemName)] = installed
	state := r.state
	r.mu.Unlock()
	if state == nil {
		return nil
	}
	return state.SetInstalled(ctx, systemName, installed)
}

func (r *Registry) Get(systemName string) (Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[key(systemName)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPluginNotFound, systemName)
	}
	return p, nil
}

// List renvoie les descripteurs triés par groupe puis par nom
func (r *Registry) List() []Descriptor {
	r.mu.RLock()
	out := make([]Descriptor, 0, len(r.plugins))
	for _, p := range r.plugins {
		out = append(out, p.Descriptor())
	}
	r.mu.RUnlock()
	for i := range out {
		out[i].Installed = r.IsInstalled(out[i].SystemName)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Group != out[j].Group {
			return out[i].Group < out[j].Group
		}
		return out[i].SystemName < out[j].SystemName
	})
	return out
}

func (r *Registry) Install(ctx context.Context, systemName string) error {
	p, err := r.Get(systemName)
	if err != nil {
		return err
	}
	if err := p.Install(ctx); err != nil {
		return fmt.Errorf("installation de %s: %w", systemName, err)
	}
	if err := r.setInstalled(ctx, systemName, true); err != nil {
		return fmt.Errorf("enregistrement de l'état de %s: %w", systemName, err)
	}
	log.Printf("✅ Plugin installé: %s", systemName)
	return nil
}

func (r *Registry) Uninstall(ctx context.Context, systemName string) error {
	p, err := r.Get(systemName)
	if err != nil {
		return err
	}
	if err := p.Uninstall(ctx); err != nil {
		return fmt.Errorf("désinstallation de %s: %w", systemName, err)
	}
	if err := r.setInstalled(ctx, systemName, false); err != nil {
		return fmt.Errorf("enregistrement de l'état de %s: %w", systemName, err)
	}
	log.Printf("🗑️ Plugin désinstallé: %s", systemName)
	return nil
}
