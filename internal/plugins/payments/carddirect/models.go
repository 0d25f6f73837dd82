package carddirect

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"storefront_back_end/internal/models"
)

type ConfigurationModel struct {
	ActiveStoreScopeConfiguration int `json:"active_store_scope_configuration"`

	ClientID                                string                  `json:"client_id" binding:"max=255"`
	ClientIDOverrideForStore                bool                    `json:"client_id_override_for_store"`
	ClientSecret                            string                  `json:"client_secret" binding:"max=255"`
	ClientSecretOverrideForStore            bool                    `json:"client_secret_override_for_store"`
	UseSandbox                              bool                    `json:"use_sandbox"`
	UseSandboxOverrideForStore              bool                    `json:"use_sandbox_override_for_store"`
	TransactModeID                          int                     `json:"transact_mode_id" binding:"oneof=1 2"`
	TransactModeIDOverrideForStore          bool                    `json:"transact_mode_id_override_for_store"`
	TransactModeValues                      []models.SelectListItem `json:"transact_mode_values"`
	AdditionalFee                           decimal.Decimal         `json:"additional_fee"`
	AdditionalFeeOverrideForStore           bool                    `json:"additional_fee_override_for_store"`
	AdditionalFeePercentage                 bool                    `json:"additional_fee_percentage"`
	AdditionalFeePercentageOverrideForStore bool                    `json:"additional_fee_percentage_override_for_store"`
}

// PaymentInfoForm est le formulaire carte posté au checkout
type PaymentInfoForm struct {
	CreditCardType string `json:"credit_card_type" form:"credit_card_type"`
	CardNumber     string `json:"card_number" form:"card_number" validate:"required,credit_card"`
	CardCode       string `json:"card_code" form:"card_code" validate:"required,cvv"`
	ExpireMonth    string `json:"expire_month" form:"expire_month" validate:"required"`
	ExpireYear     string `json:"expire_year" form:"expire_year" validate:"required"`
}

type PaymentInfoModel struct {
	CreditCardTypes []models.SelectListItem `json:"credit_card_types"`
	CreditCardType  string                  `json:"credit_card_type"`
	CardNumber      string                  `json:"card_number"`
	CardCode        string                  `json:"card_code"`
	ExpireMonths    []models.SelectListItem `json:"expire_months"`
	ExpireMonth     string                  `json:"expire_month"`
	ExpireYears     []models.SelectListItem `json:"expire_years"`
	ExpireYear      string                  `json:"expire_year"`
}

// NewPaymentInfoModel remplit les listes et recoche les valeurs déjà postées
func NewPaymentInfoModel(form PaymentInfoForm, now time.Time) *PaymentInfoModel {
	model := &PaymentInfoModel{
		CreditCardTypes: []models.SelectListItem{
			{Text: "Visa", Value: "visa"},
			{Text: "Master card", Value: "MasterCard"},
			{Text: "Discover", Value: "Discover"},
			{Text: "Amex", Value: "Amex"},
		},
		CreditCardType: form.CreditCardType,
		CardNumber:     form.CardNumber,
		CardCode:       form.CardCode,
		ExpireMonth:    form.ExpireMonth,
		ExpireYear:     form.ExpireYear,
	}

	for i := 0; i < 15; i++ {
		year := strconv.Itoa(now.Year() + i)
		model.ExpireYears = append(model.ExpireYears, models.SelectListItem{Text: year, Value: year})
	}
	for i := 1; i <= 12; i++ {
		model.ExpireMonths = append(model.ExpireMonths, models.SelectListItem{
			Text:  twoDigits(i),
			Value: strconv.Itoa(i),
		})
	}

	models.SelectValue(model.CreditCardTypes, form.CreditCardType)
	models.SelectValue(model.ExpireMonths, form.ExpireMonth)
	models.SelectValue(model.ExpireYears, form.ExpireYear)
	return model
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
