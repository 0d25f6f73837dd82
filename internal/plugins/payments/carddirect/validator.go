package carddirect

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

var cvvPattern = regexp.MustCompile(`^[0-9]{3,4}$`)

type resourceReader interface {
	GetResource(ctx context.Context, name string) string
}

// PaymentInfoValidator vérifie le formulaire carte et renvoie des messages
// localisés
type PaymentInfoValidator struct {
	validate *validator.Validate
	locales  resourceReader
	now      func() time.Time
}

func NewPaymentInfoValidator(locales resourceReader, now func() time.Time) *PaymentInfoValidator {
	if now == nil {
		now = time.Now
	}
	v := &PaymentInfoValidator{validate: validator.New(), locales: locales, now: now}
	// l'enregistrement ne peut échouer qu'avec un nom de tag vide
	_ = v.validate.RegisterValidation("cvv", func(fl validator.FieldLevel) bool {
		return cvvPattern.MatchString(fl.Field().String())
	})
	v.validate.RegisterStructValidation(v.expiry, PaymentInfoForm{})
	return v
}

// expiry refuse une carte dont le mois d'expiration est passé
func (v *PaymentInfoValidator) expiry(sl validator.StructLevel) {
	form := sl.Current().Interface().(PaymentInfoForm)
	month, errM := strconv.Atoi(form.ExpireMonth)
	year, errY := strconv.Atoi(form.ExpireYear)
	if errM != nil || errY != nil {
		return
	}
	now := v.now()
	if year < now.Year() || (year == now.Year() && month < int(now.Month())) {
		sl.ReportError(form.ExpireMonth, "expire_month", "ExpireMonth", "expiry", "")
	}
}

var messageKeys = map[string]string{
	"CardNumber":  "Payment.CardNumber.Wrong",
	"CardCode":    "Payment.CardCode.Wrong",
	"ExpireMonth": "Payment.ExpirationMonth.Required",
	"ExpireYear":  "Payment.ExpirationYear.Required",
}

// Validate renvoie tous les messages d'erreur, sans s'arrêter au premier
func (v *PaymentInfoValidator) Validate(ctx context.Context, form PaymentInfoForm) []string {
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}

	warnings := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		key := messageKeys[fe.StructField()]
		if fe.Tag() == "expiry" {
			key = "Payment.ExpirationDate.Expired"
		}
		if key == "" {
			warnings = append(warnings, fe.Error())
			continue
		}
		warnings = append(warnings, v.locales.GetResource(ctx, key))
	}
	return warnings
}
