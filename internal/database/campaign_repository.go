package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/gocql/gocql"

	"storefront_back_end/internal/models"
)

type CampaignRepository struct {
	session *gocql.Session
}

func NewCampaignRepository(session *gocql.Session) *CampaignRepository {
	return &CampaignRepository{session: session}
}

func (r *CampaignRepository) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	iter := r.session.Query(stmtSelectCampaigns).WithContext(ctx).Iter()

	var out []models.Campaign
	for {
		var c models.Campaign
		if !iter.Scan(&c.ID, &c.Name, &c.Subject, &c.Body, &c.StoreID, &c.CustomerRoleID, &c.CreatedAt, &c.DontSendBefore) {
			break
		}
		out = append(out, c)
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("lecture campagnes: %w", err)
	}
	return out, nil
}

// GetCampaign renvoie nil, nil si la campagne n'existe pas
func (r *CampaignRepository) GetCampaign(ctx context.Context, id gocql.UUID) (*models.Campaign, error) {
	var c models.Campaign
	err := r.session.Query(stmtSelectCampaign, id).WithContext(ctx).
		Scan(&c.ID, &c.Name, &c.Subject, &c.Body, &c.StoreID, &c.CustomerRoleID, &c.CreatedAt, &c.DontSendBefore)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lecture campagne %s: %w", id, err)
	}
	return &c, nil
}

func (r *CampaignRepository) InsertCampaign(ctx context.Context, c models.Campaign) error {
	return r.session.Query(stmtInsertCampaign,
		c.ID, c.Name, c.Subject, c.Body, c.StoreID, c.CustomerRoleID, c.CreatedAt, c.DontSendBefore,
	).WithContext(ctx).Exec()
}
