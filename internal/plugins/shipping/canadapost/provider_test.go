package canadapost

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_back_end/internal/directory"
	"storefront_back_end/internal/localization"
	"storefront_back_end/internal/settings"
	"storefront_back_end/internal/settings/settingstest"
	"storefront_back_end/internal/shipping"
)

type currencyList []directory.Currency

func (c currencyList) List(ctx context.Context) ([]directory.Currency, error) { return c, nil }

type measureList struct {
	weights    []directory.MeasureWeight
	dimensions []directory.MeasureDimension
}

func (m measureList) Weights(ctx context.Context) ([]directory.MeasureWeight, error) {
	return m.weights, nil
}

func (m measureList) Dimensions(ctx context.Context) ([]directory.MeasureDimension, error) {
	return m.dimensions, nil
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var (
	defaultCurrencies = currencyList{
		{ID: 1, Name: "US Dollar", CurrencyCode: "USD", Rate: d("1")},
		{ID: 2, Name: "Canadian Dollar", CurrencyCode: "CAD", Rate: d("1.25")},
	}
	defaultMeasures = measureList{
		weights: []directory.MeasureWeight{
			{ID: 1, Name: "lb(s)", SystemKeyword: "lb", Ratio: d("1")},
			{ID: 2, Name: "kg(s)", SystemKeyword: "kg", Ratio: d("0.45359237")},
		},
		dimensions: []directory.MeasureDimension{
			{ID: 1, Name: "inch(es)", SystemKeyword: "inches", Ratio: d("1")},
			{ID: 2, Name: "meter(s)", SystemKeyword: "meters", Ratio: d("0.0254")},
		},
	}
)

type fixture struct {
	method   *ComputationMethod
	client   *MockRateClient
	repo     *settingstest.Repository
	locales  *localization.Service
	settings *settings.Service
}

func newFixture(t *testing.T, currencies currencyList, measures measureList) *fixture {
	ctrl := gomock.NewController(t)
	client := NewMockRateClient(ctrl)

	svc, repo, _ := settingstest.NewService(
		settings.Setting{Name: "canadapostsettings.customernumber", Value: "2004381"},
		settings.Setting{Name: "canadapostsettings.apikey", Value: "user:secret"},
		settings.Setting{Name: "canadapostsettings.usesandbox", Value: "true"},
		settings.Setting{Name: "currencysettings.primarystorecurrencyid", Value: "1"},
		settings.Setting{Name: "currencysettings.primaryexchangeratecurrencyid", Value: "1"},
		settings.Setting{Name: "measuresettings.baseweightid", Value: "1"},
		settings.Setting{Name: "measuresettings.basedimensionid", Value: "1"},
	)
	locales := localization.NewService(nil)

	method := NewComputationMethod(client, svc, locales,
		directory.NewCurrencyService(currencies, svc),
		directory.NewMeasureService(measures, svc))

	return &fixture{method: method, client: client, repo: repo, locales: locales, settings: svc}
}

func validRequest() *shipping.GetShippingOptionRequest {
	return &shipping.GetShippingOptionRequest{
		Items: []shipping.PackageItem{
			{ProductName: "Mug", Quantity: 2, Weight: d("1.5"), Length: d("10"), Width: d("4"), Height: d("2")},
		},
		ShippingAddress: &shipping.Address{
			ZipPostalCode: "K1A0B1",
			Country:       &shipping.Country{Name: "Canada", TwoLetterISOCode: "CA"},
		},
		ZipPostalCodeFrom: "H2X1Y4",
	}
}

func TestGetShippingOptions_NilRequest(t *testing.T) {
	f := newFixture(t, defaultCurrencies, defaultMeasures)
	_, err := f.method.GetShippingOptions(context.Background(), nil)
	assert.Error(t, err)
}

func TestGetShippingOptions_Preconditions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *shipping.GetShippingOptionRequest)
		want   string
	}{
		{"no items", func(r *shipping.GetShippingOptionRequest) { r.Items = nil }, "No shipment items"},
		{"no address", func(r *shipping.GetShippingOptionRequest) { r.ShippingAddress = nil }, "Shipping address is not set"},
		{"no country", func(r *shipping.GetShippingOptionRequest) { r.ShippingAddress.Country = nil }, "Shipping country is not set"},
		{"no origin", func(r *shipping.GetShippingOptionRequest) { r.ZipPostalCodeFrom = "" }, "Origin postal code is not set"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, defaultCurrencies, defaultMeasures)
			req := validRequest()
			tt.mutate(req)

			resp, err := f.method.GetShippingOptions(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, []string{tt.want}, resp.Errors)
			assert.Empty(t, resp.ShippingOptions)
		})
	}
}

func TestGetShippingOptions_BuildsScenarioAndConvertsRates(t *testing.T) {
	f := newFixture(t, defaultCurrencies, defaultMeasures)

	var sent *MailingScenario
	f.client.EXPECT().
		GetRates(gomock.Any(), gomock.Any(), "user:secret", true).
		DoAndReturn(func(ctx context.Context, s *MailingScenario, apiKey string, sandbox bool) (*PriceQuotes, error) {
			sent = s
			return &PriceQuotes{Quotes: []PriceQuote{
				{
					ServiceCode:     "DOM.EP",
					ServiceName:     "Expedited Parcel",
					PriceDetails:    PriceDetails{Due: d("12.50")},
					ServiceStandard: ServiceStandard{ExpectedTransitTime: "2"},
				},
				{
					ServiceCode:  "DOM.RP",
					ServiceName:  "Regular Parcel",
					PriceDetails: PriceDetails{Due: d("10")},
				},
			}}, nil
		})

	resp, err := f.method.GetShippingOptions(context.Background(), validRequest())
	require.NoError(t, err)
	require.True(t, resp.Success())

	require.NotNil(t, sent)
	assert.Equal(t, "2004381", sent.CustomerNumber)
	assert.Equal(t, "H2X1Y4", sent.OriginPostalCode)
	// 3 lb -> 1.36077711 kg
	assert.Equal(t, "1.361", sent.ParcelCharacteristics.Weight.String())
	// 10 x 4 x 4 inches
	assert.Equal(t, "25.4", sent.ParcelCharacteristics.Dimensions.Length.String())
	assert.Equal(t, "10.2", sent.ParcelCharacteristics.Dimensions.Width.String())
	assert.Equal(t, "10.2", sent.ParcelCharacteristics.Dimensions.Height.String())
	require.NotNil(t, sent.Destination.Domestic)
	assert.Equal(t, "K1A0B1", sent.Destination.Domestic.PostalCode)

	require.Len(t, resp.ShippingOptions, 2)
	assert.Equal(t, "Expedited Parcel", resp.ShippingOptions[0].Name)
	assert.True(t, d("10").Equal(resp.ShippingOptions[0].Rate))
	assert.Equal(t, "2 days", resp.ShippingOptions[0].Description)
	assert.True(t, d("8").Equal(resp.ShippingOptions[1].Rate))
	assert.Empty(t, resp.ShippingOptions[1].Description)
}

func TestGetShippingOptions_CarrierErrorIsSingleResponseError(t *testing.T) {
	f := newFixture(t, defaultCurrencies, defaultMeasures)
	f.client.EXPECT().
		GetRates(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, &APIError{StatusCode: 400, Messages: []Message{{Code: "9111", Description: "Invalid postal code"}}})

	resp, err := f.method.GetShippingOptions(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, []string{"Invalid postal code"}, resp.Errors)
	assert.Empty(t, resp.ShippingOptions)
}

func TestGetShippingOptions_MissingCADIsHardError(t *testing.T) {
	f := newFixture(t, currencyList{{ID: 1, CurrencyCode: "USD", Rate: d("1")}}, defaultMeasures)
	f.client.EXPECT().
		GetRates(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&PriceQuotes{Quotes: []PriceQuote{{ServiceName: "Priority", PriceDetails: PriceDetails{Due: d("20")}}}}, nil)

	_, err := f.method.GetShippingOptions(context.Background(), validRequest())
	assert.ErrorIs(t, err, directory.ErrCurrencyNotFound)
}

func TestGetShippingOptions_MissingMeasuresAreHardErrors(t *testing.T) {
	noKg := measureList{weights: defaultMeasures.weights[:1], dimensions: defaultMeasures.dimensions}
	f := newFixture(t, defaultCurrencies, noKg)
	_, err := f.method.GetShippingOptions(context.Background(), validRequest())
	assert.ErrorIs(t, err, directory.ErrMeasureNotFound)

	noMeters := measureList{weights: defaultMeasures.weights, dimensions: defaultMeasures.dimensions[:1]}
	f = newFixture(t, defaultCurrencies, noMeters)
	_, err = f.method.GetShippingOptions(context.Background(), validRequest())
	assert.ErrorIs(t, err, directory.ErrMeasureNotFound)
}

func TestDestination(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"US", "united-states"},
		{"us", "united-states"},
		{"CA", "domestic"},
		{"Ca", "domestic"},
		{"FR", "international"},
		{"", "international"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			dest := destination(&shipping.Address{
				ZipPostalCode: "12345",
				Country:       &shipping.Country{TwoLetterISOCode: tt.code},
			})
			switch tt.want {
			case "united-states":
				require.NotNil(t, dest.UnitedStates)
				assert.Equal(t, "12345", dest.UnitedStates.ZipCode)
				assert.Nil(t, dest.Domestic)
				assert.Nil(t, dest.International)
			case "domestic":
				require.NotNil(t, dest.Domestic)
				assert.Equal(t, "12345", dest.Domestic.PostalCode)
				assert.Nil(t, dest.UnitedStates)
				assert.Nil(t, dest.International)
			default:
				require.NotNil(t, dest.International)
				assert.Equal(t, tt.code, dest.International.CountryCode)
				assert.Nil(t, dest.UnitedStates)
				assert.Nil(t, dest.Domestic)
			}
		})
	}
}

func TestWeight_MonotonicAndIdempotent(t *testing.T) {
	f := newFixture(t, defaultCurrencies, defaultMeasures)
	ctx := context.Background()

	prev := decimal.Zero
	for _, w := range []string{"0", "0.001", "0.5", "1.5", "2.2", "10", "55.125"} {
		req := &shipping.GetShippingOptionRequest{Items: []shipping.PackageItem{{Quantity: 1, Weight: d(w)}}}

		first, err := f.method.weight(ctx, req)
		require.NoError(t, err)
		second, err := f.method.weight(ctx, req)
		require.NoError(t, err)

		assert.True(t, first.Equal(second), "same input, same weight")
		assert.True(t, first.GreaterThanOrEqual(prev), "%s kg < %s kg", first, prev)
		assert.True(t, first.Equal(first.RoundBank(3)))
		prev = first
	}
}

func TestDimensions_SortedLongestFirst(t *testing.T) {
	f := newFixture(t, defaultCurrencies, defaultMeasures)
	ctx := context.Background()

	cases := [][]shipping.PackageItem{
		{{Quantity: 1, Length: d("2"), Width: d("30"), Height: d("5")}},
		{{Quantity: 6, Length: d("4"), Width: d("3"), Height: d("2")}},
		{{Quantity: 1, Length: d("1"), Width: d("1"), Height: d("1")}},
		{{Quantity: 1, Length: d("12.34"), Width: d("0"), Height: d("7.77")}},
	}
	for _, items := range cases {
		dims, err := f.method.dimensions(ctx, &shipping.GetShippingOptionRequest{Items: items})
		require.NoError(t, err)
		assert.True(t, dims.Length.GreaterThanOrEqual(dims.Width))
		assert.True(t, dims.Width.GreaterThanOrEqual(dims.Height))
		assert.True(t, dims.Length.Equal(dims.Length.RoundBank(1)))
	}
}

func TestFixedRateAndType(t *testing.T) {
	f := newFixture(t, defaultCurrencies, defaultMeasures)
	rate, err := f.method.GetFixedRate(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Nil(t, rate)
	assert.Equal(t, shipping.Realtime, f.method.Type())
	assert.Equal(t, "Shipping.CanadaPost", f.method.SystemName())
}

func TestInstallUninstall(t *testing.T) {
	f := newFixture(t, defaultCurrencies, defaultMeasures)
	ctx := context.Background()

	require.NoError(t, f.method.Install(ctx))
	v, ok := f.repo.Value("canadapostsettings.usesandbox", 0)
	require.True(t, ok)
	assert.Equal(t, "true", v)
	assert.Equal(t, "Customer number", f.locales.GetResource(ctx, "Plugins.Shipping.CanadaPost.Fields.CustomerNumber"))

	require.NoError(t, f.method.Uninstall(ctx))
	_, ok = f.repo.Value("canadapostsettings.usesandbox", 0)
	assert.False(t, ok)
	_, ok = f.repo.Value("canadapostsettings.apikey", 0)
	assert.False(t, ok)
	assert.Equal(t, "Plugins.Shipping.CanadaPost.Fields.CustomerNumber",
		f.locales.GetResource(ctx, "Plugins.Shipping.CanadaPost.Fields.CustomerNumber"))
}
