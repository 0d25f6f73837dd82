package carddirect

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"storefront_back_end/internal/localization"
)

func fixedNow() time.Time { return time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC) }

func newValidator() *PaymentInfoValidator {
	return NewPaymentInfoValidator(localization.NewService(nil), fixedNow)
}

func validForm() PaymentInfoForm {
	return PaymentInfoForm{
		CreditCardType: "visa",
		CardNumber:     "4111111111111111",
		CardCode:       "123",
		ExpireMonth:    "12",
		ExpireYear:     "2028",
	}
}

func TestValidate_ValidForm(t *testing.T) {
	assert.Empty(t, newValidator().Validate(context.Background(), validForm()))
}

func TestValidate_AccumulatesAllErrors(t *testing.T) {
	form := PaymentInfoForm{CardNumber: "4111111111111112", CardCode: "12"}

	warnings := newValidator().Validate(context.Background(), form)
	assert.Equal(t, []string{
		"Wrong card number",
		"Wrong card code",
		"Expiration month is required",
		"Expiration year is required",
	}, warnings)
}

func TestValidate_CardCode(t *testing.T) {
	v := newValidator()
	for code, ok := range map[string]bool{"123": true, "1234": true, "12": false, "12345": false, "12a": false, "": false} {
		form := validForm()
		form.CardCode = code
		warnings := v.Validate(context.Background(), form)
		if ok {
			assert.Empty(t, warnings, code)
		} else {
			assert.Equal(t, []string{"Wrong card code"}, warnings, code)
		}
	}
}

func TestValidate_Expiry(t *testing.T) {
	v := newValidator()

	form := validForm()
	form.ExpireMonth, form.ExpireYear = "10", "2026"
	assert.Empty(t, v.Validate(context.Background(), form), "current month is still valid")

	form.ExpireMonth = "9"
	assert.Equal(t, []string{"Card is expired"}, v.Validate(context.Background(), form))

	form.ExpireMonth, form.ExpireYear = "12", "2025"
	assert.Equal(t, []string{"Card is expired"}, v.Validate(context.Background(), form))
}

func TestNewPaymentInfoModel_Lists(t *testing.T) {
	model := NewPaymentInfoModel(PaymentInfoForm{}, fixedNow())

	assert.Len(t, model.ExpireYears, 15)
	assert.Equal(t, "2026", model.ExpireYears[0].Value)
	assert.Equal(t, "2040", model.ExpireYears[14].Value)

	assert.Len(t, model.ExpireMonths, 12)
	assert.Equal(t, "01", model.ExpireMonths[0].Text)
	assert.Equal(t, "1", model.ExpireMonths[0].Value)
	assert.Equal(t, "12", model.ExpireMonths[11].Text)
	for _, m := range model.ExpireMonths {
		assert.Len(t, m.Text, 2)
		assert.False(t, m.Selected)
	}

	assert.Len(t, model.CreditCardTypes, 4)
	assert.Equal(t, "Master card", model.CreditCardTypes[1].Text)
	assert.Equal(t, "MasterCard", model.CreditCardTypes[1].Value)
}

func TestNewPaymentInfoModel_RestoresPostedValues(t *testing.T) {
	form := PaymentInfoForm{
		CreditCardType: "mastercard",
		CardNumber:     "5555555555554444",
		CardCode:       "321",
		ExpireMonth:    "7",
		ExpireYear:     "2030",
	}
	model := NewPaymentInfoModel(form, fixedNow())

	assert.True(t, model.CreditCardTypes[1].Selected)
	assert.True(t, model.ExpireMonths[6].Selected)
	assert.True(t, model.ExpireYears[4].Selected)
	assert.Equal(t, "5555555555554444", model.CardNumber)
	assert.Equal(t, "321", model.CardCode)
}

func TestGetPaymentInfo(t *testing.T) {
	req, err := GetPaymentInfo(validForm())
	assert.NoError(t, err)
	assert.Equal(t, 12, req.CreditCardExpireMonth)
	assert.Equal(t, 2028, req.CreditCardExpireYear)
	assert.Equal(t, "4111111111111111", req.CreditCardNumber)
	assert.Equal(t, "123", req.CreditCardCvv2)
	assert.Equal(t, "visa", req.CreditCardType)
	assert.NotEqual(t, [16]byte{}, [16]byte(req.OrderGUID))

	form := validForm()
	form.ExpireYear = "20xx"
	_, err = GetPaymentInfo(form)
	assert.Error(t, err)
}
