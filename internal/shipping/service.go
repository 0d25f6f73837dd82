package shipping

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

var ErrMethodNotFound = errors.New("shipping rate computation method not found")

// GetTotalWeight additionne poids × quantité de chaque ligne
func GetTotalWeight(req *GetShippingOptionRequest) decimal.Decimal {
	total := decimal.Zero
	if req == nil {
		return total
	}
	for _, item := range req.Items {
		total = total.Add(item.Weight.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// GetDimensions calcule la boîte englobante des articles empilés :
// longueur et largeur maximales, hauteurs additionnées
func GetDimensions(items []PackageItem) (width, length, height decimal.Decimal) {
	for _, item := range items {
		if item.Length.GreaterThan(length) {
			length = item.Length
		}
		if item.Width.GreaterThan(width) {
			width = item.Width
		}
		height = height.Add(item.Height.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return width, length, height
}

// Service regroupe les méthodes de calcul enregistrées
type Service struct {
	mu      sync.RWMutex
	methods []RateComputationMethod
	active  func(systemName string) bool
}

func NewService(methods ...RateComputationMethod) *Service {
	return &Service{methods: methods}
}

func (s *Service) Register(m RateComputationMethod) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.methods = append(s.methods, m)
}

// SetActiveFilter restreint les méthodes utilisées (plugins installés)
func (s *Service) SetActiveFilter(active func(systemName string) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

// Methods renvoie les méthodes actives
func (s *Service) Methods() []RateComputationMethod {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]RateComputationMethod, 0, len(s.methods))
	for _, m := range s.methods {
		if s.active == nil || s.active(m.SystemName()) {
			out = append(out, m)
		}
	}
	return out
}

func (s *Service) Method(systemName string) (RateComputationMethod, error) {
	for _, m := range s.Methods() {
		if strings.EqualFold(m.SystemName(), systemName) {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrMethodNotFound, systemName)
}

// Tracker renvoie le suivi du premier transporteur qui reconnaît le numéro
func (s *Service) Tracker(trackingNumber string) (RateComputationMethod, ShipmentTracker, bool) {
	for _, m := range s.Methods() {
		t := m.ShipmentTracker()
		if t != nil && t.IsMatch(trackingNumber) {
			return m, t, true
		}
	}
	return nil, nil, false
}

// GetShippingOptions interroge toutes les méthodes (ou seulement systemName
// s'il est renseigné). Les erreurs des méthodes sont ignorées dès qu'au
// moins une option a été trouvée.
func (s *Service) GetShippingOptions(ctx context.Context, req *GetShippingOptionRequest, systemName string) (*GetShippingOptionResponse, error) {
	methods := s.Methods()
	if systemName != "" {
		m, err := s.Method(systemName)
		if err != nil {
			return nil, err
		}
		methods = []RateComputationMethod{m}
	}

	result := &GetShippingOptionResponse{}
	for _, m := range methods {
		resp, err := m.GetShippingOptions(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.SystemName(), err)
		}
		if resp.Success() {
			for _, opt := range resp.ShippingOptions {
				opt.ShippingRateComputationMethodSystemName = m.SystemName()
				result.ShippingOptions = append(result.ShippingOptions, opt)
			}
			continue
		}
		for _, e := range resp.Errors {
			log.Printf("⚠️ Livraison (%s): %s", m.SystemName(), e)
			// même précondition manquante pour chaque méthode : un seul message
			if !slices.Contains(result.Errors, e) {
				result.AddError(e)
			}
		}
	}

	if len(result.ShippingOptions) > 0 {
		result.Errors = nil
	} else if len(result.Errors) == 0 {
		result.AddError("Shipping options could not be loaded")
	}
	return result, nil
}
