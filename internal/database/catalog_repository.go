package database

import (
	"context"
	"fmt"
	"sort"

	"github.com/gocql/gocql"
	"github.com/shopspring/decimal"

	"storefront_back_end/internal/directory"
	"storefront_back_end/internal/models"
	"storefront_back_end/internal/stores"
)

// StoreRepository lit la table stores, triée par display_order
type StoreRepository struct {
	session *gocql.Session
}

func NewStoreRepository(session *gocql.Session) *StoreRepository {
	return &StoreRepository{session: session}
}

func (r *StoreRepository) List(ctx context.Context) ([]stores.Store, error) {
	iter := r.session.Query(stmtSelectStores).WithContext(ctx).Iter()

	var out []stores.Store
	var s stores.Store
	for iter.Scan(&s.ID, &s.Name, &s.URL, &s.DisplayOrder) {
		out = append(out, s)
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("lecture boutiques: %w", err)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// CurrencyRepository lit les devises ; les taux sont stockés en texte
type CurrencyRepository struct {
	session *gocql.Session
}

func NewCurrencyRepository(session *gocql.Session) *CurrencyRepository {
	return &CurrencyRepository{session: session}
}

func (r *CurrencyRepository) List(ctx context.Context) ([]directory.Currency, error) {
	iter := r.session.Query(stmtSelectCurrencies).WithContext(ctx).Iter()

	var out []directory.Currency
	var c directory.Currency
	var rate string
	for iter.Scan(&c.ID, &c.Name, &c.CurrencyCode, &rate, &c.Published, &c.DisplayOrder) {
		d, err := decimal.NewFromString(rate)
		if err != nil {
			_ = iter.Close()
			return nil, fmt.Errorf("taux invalide pour %s: %w", c.CurrencyCode, err)
		}
		c.Rate = d
		out = append(out, c)
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("lecture devises: %w", err)
	}
	return out, nil
}

// MeasureRepository lit les unités de poids et de dimension
type MeasureRepository struct {
	session *gocql.Session
}

func NewMeasureRepository(session *gocql.Session) *MeasureRepository {
	return &MeasureRepository{session: session}
}

type measureRow struct {
	id, order     int
	name, keyword string
	ratio         decimal.Decimal
}

func (r *MeasureRepository) rows(ctx context.Context, stmt string) ([]measureRow, error) {
	iter := r.session.Query(stmt).WithContext(ctx).Iter()

	var out []measureRow
	var row measureRow
	var ratio string
	for iter.Scan(&row.id, &row.name, &row.keyword, &ratio, &row.order) {
		d, err := decimal.NewFromString(ratio)
		if err != nil {
			_ = iter.Close()
			return nil, fmt.Errorf("ratio invalide pour %s: %w", row.keyword, err)
		}
		row.ratio = d
		out = append(out, row)
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("lecture mesures: %w", err)
	}
	return out, nil
}

func (r *MeasureRepository) Weights(ctx context.Context) ([]directory.MeasureWeight, error) {
	rows, err := r.rows(ctx, stmtSelectMeasureWeights)
	if err != nil {
		return nil, err
	}
	out := make([]directory.MeasureWeight, 0, len(rows))
	for _, row := range rows {
		out = append(out, directory.MeasureWeight{ID: row.id, Name: row.name, SystemKeyword: row.keyword, Ratio: row.ratio, DisplayOrder: row.order})
	}
	return out, nil
}

func (r *MeasureRepository) Dimensions(ctx context.Context) ([]directory.MeasureDimension, error) {
	rows, err := r.rows(ctx, stmtSelectMeasureDimensions)
	if err != nil {
		return nil, err
	}
	out := make([]directory.MeasureDimension, 0, len(rows))
	for _, row := range rows {
		out = append(out, directory.MeasureDimension{ID: row.id, Name: row.name, SystemKeyword: row.keyword, Ratio: row.ratio, DisplayOrder: row.order})
	}
	return out, nil
}

type CustomerRoleRepository struct {
	session *gocql.Session
}

func NewCustomerRoleRepository(session *gocql.Session) *CustomerRoleRepository {
	return &CustomerRoleRepository{session: session}
}

func (r *CustomerRoleRepository) ListCustomerRoles(ctx context.Context) ([]models.CustomerRole, error) {
	iter := r.session.Query(stmtSelectCustomerRoles).WithContext(ctx).Iter()

	var out []models.CustomerRole
	var role models.CustomerRole
	for iter.Scan(&role.ID, &role.Name, &role.SystemName, &role.Active) {
		out = append(out, role)
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("lecture rôles clients: %w", err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
