// Package messages gère les campagnes e-mail de l'admin.
package messages

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gocql/gocql"

	"storefront_back_end/internal/models"
	"storefront_back_end/internal/stores"
)

var ErrCampaignNotFound = errors.New("campaign not found")

type CampaignRepository interface {
	ListCampaigns(ctx context.Context) ([]models.Campaign, error)
	GetCampaign(ctx context.Context, id gocql.UUID) (*models.Campaign, error)
	InsertCampaign(ctx context.Context, c models.Campaign) error
}

type RoleRepository interface {
	ListCustomerRoles(ctx context.Context) ([]models.CustomerRole, error)
}

type resourceReader interface {
	GetResource(ctx context.Context, name string) string
}

type Service struct {
	campaigns CampaignRepository
	stores    stores.Repository
	roles     RoleRepository
	locales   resourceReader
	mailer    Mailer
	now       func() time.Time
}

func NewService(campaigns CampaignRepository, storeRepo stores.Repository, roles RoleRepository, locales resourceReader, mailer Mailer) *Service {
	return &Service{
		campaigns: campaigns,
		stores:    storeRepo,
		roles:     roles,
		locales:   locales,
		mailer:    mailer,
		now:       time.Now,
	}
}

// PrepareListModel remplit les listes de filtres ; chacune commence par
// l'entrée "Tous" de valeur 0
func (s *Service) PrepareListModel(ctx context.Context, filter models.CampaignListModel) (*models.CampaignListModel, error) {
	model := models.NewCampaignListModel()
	model.StoreID = filter.StoreID
	model.CustomerRoleID = filter.CustomerRoleID

	all := s.locales.GetResource(ctx, "Admin.Common.All")

	storeList, err := s.stores.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("chargement des boutiques: %w", err)
	}
	model.AvailableStores = append(model.AvailableStores, models.AllOption(all))
	for _, st := range storeList {
		model.AvailableStores = append(model.AvailableStores, models.SelectListItem{Text: st.Name, Value: strconv.Itoa(st.ID)})
	}

	roles, err := s.roles.ListCustomerRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("chargement des rôles clients: %w", err)
	}
	model.AvailableCustomerRoles = append(model.AvailableCustomerRoles, models.AllOption(all))
	for _, r := range roles {
		if !r.Active {
			continue
		}
		model.AvailableCustomerRoles = append(model.AvailableCustomerRoles, models.SelectListItem{Text: r.Name, Value: strconv.Itoa(r.ID)})
	}

	models.SelectValue(model.AvailableStores, strconv.Itoa(model.StoreID))
	models.SelectValue(model.AvailableCustomerRoles, strconv.Itoa(model.CustomerRoleID))
	return model, nil
}

// Search renvoie les campagnes correspondant aux filtres, les plus récentes d'abord
func (s *Service) Search(ctx context.Context, filter models.CampaignListModel) ([]models.Campaign, error) {
	all, err := s.campaigns.ListCampaigns(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Campaign, 0, len(all))
	for _, c := range all {
		if filter.Matches(c) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Service) Create(ctx context.Context, c models.Campaign) (models.Campaign, error) {
	c.ID = gocql.TimeUUID()
	c.CreatedAt = s.now().UTC()
	if err := s.campaigns.InsertCampaign(ctx, c); err != nil {
		return models.Campaign{}, fmt.Errorf("création campagne: %w", err)
	}
	log.Printf("✅ Campagne créée: %s", c.Name)
	return c, nil
}

// SendTest envoie la campagne à une seule adresse, jetons remplacés
func (s *Service) SendTest(ctx context.Context, id gocql.UUID, email string) error {
	c, err := s.campaigns.GetCampaign(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrCampaignNotFound
	}

	storeList, err := s.stores.List(ctx)
	if err != nil {
		return fmt.Errorf("chargement des boutiques: %w", err)
	}
	store, ok := stores.Find(storeList, c.StoreID)
	if !ok && len(storeList) > 0 {
		store = storeList[0]
	}

	tokens := Tokens(store, email)
	if err := s.mailer.Send(ctx, email, ReplaceTokens(c.Subject, tokens), ReplaceTokens(c.Body, tokens)); err != nil {
		return fmt.Errorf("envoi e-mail de test: %w", err)
	}
	log.Printf("📧 Campagne %s envoyée en test à %s", c.Name, email)
	return nil
}

// Tokens construit les jetons %Store.*% et %Customer.*% d'un envoi
func Tokens(store stores.Store, email string) map[string]string {
	return map[string]string{
		"%Store.Name%":     store.Name,
		"%Store.URL%":      store.URL,
		"%Customer.Email%": email,
	}
}

func ReplaceTokens(text string, tokens map[string]string) string {
	pairs := make([]string, 0, len(tokens)*2)
	for k, v := range tokens {
		pairs = append(pairs, k, v)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
