package carddirect

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_back_end/internal/localization"
	"storefront_back_end/internal/payments"
	"storefront_back_end/internal/settings"
	"storefront_back_end/internal/settings/settingstest"
)

type fixedScope int

func (s fixedScope) ActiveStoreScope(req *http.Request) (int, error) { return int(s), nil }

type fakeMethod struct {
	fee     decimal.Decimal
	decline string
	got     *payments.ProcessPaymentRequest
}

func (f *fakeMethod) SystemName() string { return SystemName }

func (f *fakeMethod) ProcessPayment(ctx context.Context, req *payments.ProcessPaymentRequest) (*payments.ProcessPaymentResult, error) {
	f.got = req
	result := &payments.ProcessPaymentResult{NewPaymentStatus: payments.Authorized, AuthorizationTransactionID: "pi_1"}
	if f.decline != "" {
		result.NewPaymentStatus = payments.Pending
		result.AuthorizationTransactionID = ""
		result.AddError(f.decline)
	}
	return result, nil
}

func (f *fakeMethod) GetAdditionalHandlingFee(ctx context.Context, storeID int, subtotal decimal.Decimal) (decimal.Decimal, error) {
	return f.fee, nil
}

func newRouter(scope int, method *fakeMethod, rows ...settings.Setting) (*gin.Engine, *settingstest.Repository, *settingstest.Cache) {
	gin.SetMode(gin.TestMode)
	svc, repo, cache := settingstest.NewService(rows...)
	locales := localization.NewService(nil)
	ctl := NewController(svc, fixedScope(scope), locales, NewPaymentInfoValidator(locales, fixedNow), method, nil)
	ctl.now = fixedNow

	r := gin.New()
	r.GET("/configure", ctl.Configure)
	r.POST("/configure", ctl.SaveConfiguration)
	r.GET("/payment-info", ctl.PaymentInfo)
	r.POST("/payment-info/validate", ctl.ValidatePaymentInfo)
	r.POST("/payment", ctl.ProcessPayment)
	return r, repo, cache
}

var globalRows = []settings.Setting{
	{Name: "carddirectpaymentsettings.clientid", Value: "pk_test_1"},
	{Name: "carddirectpaymentsettings.clientsecret", Value: "sk_test_1"},
	{Name: "carddirectpaymentsettings.transactmode", Value: "1"},
	{Name: "carddirectpaymentsettings.usesandbox", Value: "true"},
}

func TestConfigure_StoreScope(t *testing.T) {
	rows := append([]settings.Setting{{Name: "carddirectpaymentsettings.transactmode", Value: "2", StoreID: 4}}, globalRows...)
	r, _, _ := newRouter(4, &fakeMethod{}, rows...)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/configure", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var model ConfigurationModel
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &model))
	assert.Equal(t, 4, model.ActiveStoreScopeConfiguration)
	assert.Equal(t, 2, model.TransactModeID)
	assert.True(t, model.TransactModeIDOverrideForStore)
	assert.False(t, model.ClientIDOverrideForStore)
	assert.Equal(t, "pk_test_1", model.ClientID)
	require.Len(t, model.TransactModeValues, 2)
	assert.True(t, model.TransactModeValues[1].Selected)
}

func TestSaveConfiguration_StoreScopeOverrides(t *testing.T) {
	r, repo, cache := newRouter(4, &fakeMethod{}, globalRows...)

	body := `{"client_id":"pk_test_1","client_secret":"sk_test_store","client_secret_override_for_store":true,
		"use_sandbox":true,"transact_mode_id":2,"additional_fee":"1.25","additional_fee_override_for_store":true}`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/configure", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code)

	v, ok := repo.Value("carddirectpaymentsettings.clientsecret", 4)
	require.True(t, ok)
	assert.Equal(t, "sk_test_store", v)
	v, ok = repo.Value("carddirectpaymentsettings.additionalfee", 4)
	require.True(t, ok)
	assert.Equal(t, "1.25", v)
	_, ok = repo.Value("carddirectpaymentsettings.transactmode", 4)
	assert.False(t, ok, "no override, no store value")

	v, _ = repo.Value("carddirectpaymentsettings.clientsecret", 0)
	assert.Equal(t, "sk_test_1", v)
	assert.Equal(t, 1, cache.Clears)
}

func TestSaveConfiguration_RejectsUnknownTransactMode(t *testing.T) {
	r, repo, cache := newRouter(0, &fakeMethod{}, globalRows...)
	upserts := repo.Upserts

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/configure", strings.NewReader(`{"transact_mode_id":7}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, upserts, repo.Upserts)
	assert.Zero(t, cache.Clears)
	assert.Contains(t, w.Body.String(), `"model"`)
}

func TestPaymentInfo_RestoresQuery(t *testing.T) {
	r, _, _ := newRouter(0, &fakeMethod{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payment-info?credit_card_type=Amex&expire_month=3&expire_year=2027", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var model PaymentInfoModel
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &model))
	assert.True(t, model.CreditCardTypes[3].Selected)
	assert.True(t, model.ExpireMonths[2].Selected)
	assert.True(t, model.ExpireYears[1].Selected)
}

func TestValidatePaymentInfo(t *testing.T) {
	r, _, _ := newRouter(0, &fakeMethod{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payment-info/validate",
		strings.NewReader(`{"card_number":"4111111111111111","card_code":"1","expire_month":"1","expire_year":"2026"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Valid    bool     `json:"valid"`
		Warnings []string `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.Equal(t, []string{"Wrong card code", "Card is expired"}, resp.Warnings)
}

func paymentBody() string {
	return `{"store_id":2,"order_total":"10.50","currency_code":"CAD","credit_card_type":"visa",
		"card_number":"4111111111111111","card_code":"123","expire_month":"12","expire_year":"2028"}`
}

func TestProcessPayment_AddsFee(t *testing.T) {
	method := &fakeMethod{fee: decimal.NewFromInt(1)}
	r, _, _ := newRouter(0, method)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/payment", strings.NewReader(paymentBody())))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NotNil(t, method.got)
	assert.Equal(t, 2, method.got.StoreID)
	assert.Equal(t, "CAD", method.got.CurrencyCode)
	assert.True(t, decimal.RequireFromString("11.50").Equal(method.got.OrderTotal))

	var resp struct {
		OrderTotal decimal.Decimal `json:"order_total"`
		Result     map[string]any  `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, decimal.RequireFromString("11.5").Equal(resp.OrderTotal))
	assert.Equal(t, "authorized", resp.Result["new_payment_status"])
}

func TestProcessPayment_Declined(t *testing.T) {
	r, _, _ := newRouter(0, &fakeMethod{decline: "Your card was declined."})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/payment", strings.NewReader(paymentBody())))
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Contains(t, w.Body.String(), "Your card was declined.")
}

func TestProcessPayment_InvalidCardNeverCharged(t *testing.T) {
	method := &fakeMethod{}
	r, _, _ := newRouter(0, method)

	body := strings.Replace(paymentBody(), "4111111111111111", "1234", 1)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/payment", strings.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Wrong card number")
	assert.Nil(t, method.got)
}
