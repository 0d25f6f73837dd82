// Package payments définit les requêtes et résultats de paiement communs à
// tous les moyens de paiement.
package payments

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrInvalidForm = errors.New("invalid payment form")

type PaymentStatus int

const (
	Pending           PaymentStatus = 10
	Authorized        PaymentStatus = 20
	Paid              PaymentStatus = 30
	PartiallyRefunded PaymentStatus = 35
	Refunded          PaymentStatus = 40
	Voided            PaymentStatus = 50
)

func (s PaymentStatus) String() string {
	switch s {
	case Pending:
		return "pending"
	case Authorized:
		return "authorized"
	case Paid:
		return "paid"
	case PartiallyRefunded:
		return "partially_refunded"
	case Refunded:
		return "refunded"
	case Voided:
		return "voided"
	default:
		return "unknown"
	}
}

func (s PaymentStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ProcessPaymentRequest porte les données carte pour une seule requête ;
// elles ne sont jamais persistées
type ProcessPaymentRequest struct {
	StoreID      int             `json:"store_id"`
	CustomerID   string          `json:"customer_id,omitempty"`
	OrderGUID    uuid.UUID       `json:"order_guid"`
	OrderTotal   decimal.Decimal `json:"order_total"`
	CurrencyCode string          `json:"currency_code"`

	CreditCardType        string `json:"-"`
	CreditCardName        string `json:"-"`
	CreditCardNumber      string `json:"-"`
	CreditCardExpireMonth int    `json:"-"`
	CreditCardExpireYear  int    `json:"-"`
	CreditCardCvv2        string `json:"-"`
}

type ProcessPaymentResult struct {
	Errors                         []string      `json:"errors"`
	NewPaymentStatus               PaymentStatus `json:"new_payment_status"`
	AuthorizationTransactionID     string        `json:"authorization_transaction_id,omitempty"`
	AuthorizationTransactionResult string        `json:"authorization_transaction_result,omitempty"`
	CaptureTransactionID           string        `json:"capture_transaction_id,omitempty"`
	CaptureTransactionResult       string        `json:"capture_transaction_result,omitempty"`
}

func (r *ProcessPaymentResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

func (r *ProcessPaymentResult) Success() bool {
	return len(r.Errors) == 0
}

// PaymentMethod est implémentée par chaque plugin de paiement
type PaymentMethod interface {
	SystemName() string
	ProcessPayment(ctx context.Context, req *ProcessPaymentRequest) (*ProcessPaymentResult, error)
	GetAdditionalHandlingFee(ctx context.Context, storeID int, subtotal decimal.Decimal) (decimal.Decimal, error)
}

// CalculateAdditionalFee renvoie un montant fixe ou un pourcentage du
// sous-total, arrondi au centime
func CalculateAdditionalFee(subtotal, fee decimal.Decimal, usePercentage bool) decimal.Decimal {
	if fee.IsZero() {
		return decimal.Zero
	}
	result := fee
	if usePercentage {
		result = subtotal.Mul(fee).Div(decimal.NewFromInt(100))
	}
	return result.Round(2)
}
