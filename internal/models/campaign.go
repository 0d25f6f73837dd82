package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Campaign est une campagne e-mail. StoreID et CustomerRoleID à 0 ciblent
// toutes les boutiques et tous les rôles.
type Campaign struct {
	ID             gocql.UUID `json:"id"`
	Name           string     `json:"name" binding:"required,max=200"`
	Subject        string     `json:"subject" binding:"required,max=500"`
	Body           string     `json:"body" binding:"required"`
	StoreID        int        `json:"store_id" binding:"min=0"`
	CustomerRoleID int        `json:"customer_role_id" binding:"min=0"`
	CreatedAt      time.Time  `json:"created_at"`
	DontSendBefore *time.Time `json:"dont_send_before,omitempty"`
}

// CampaignListModel alimente les filtres de la liste des campagnes
type CampaignListModel struct {
	StoreID                int              `json:"store_id" form:"store_id"`
	AvailableStores        []SelectListItem `json:"available_stores"`
	CustomerRoleID         int              `json:"customer_role_id" form:"customer_role_id"`
	AvailableCustomerRoles []SelectListItem `json:"available_customer_roles"`
}

func NewCampaignListModel() *CampaignListModel {
	return &CampaignListModel{
		AvailableStores:        []SelectListItem{},
		AvailableCustomerRoles: []SelectListItem{},
	}
}

// Matches applique les filtres de la liste ; 0 accepte tout
func (m CampaignListModel) Matches(c Campaign) bool {
	if m.StoreID > 0 && c.StoreID != m.StoreID {
		return false
	}
	if m.CustomerRoleID > 0 && c.CustomerRoleID != m.CustomerRoleID {
		return false
	}
	return true
}
