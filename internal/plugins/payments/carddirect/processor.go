package carddirect

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
	"github.com/stripe/stripe-go/v83/paymentmethod"

	"storefront_back_end/internal/payments"
	"storefront_back_end/internal/plugins"
	"storefront_back_end/internal/settings"
)

type settingStore interface {
	LoadSetting(ctx context.Context, g settings.Group, storeID int) error
	SaveSetting(ctx context.Context, g settings.Group, storeID int) error
	DeleteSettings(ctx context.Context, g settings.Group) error
}

type localeStore interface {
	GetResource(ctx context.Context, name string) string
	AddOrUpdatePluginLocaleResource(ctx context.Context, name, value string) error
	DeletePluginLocaleResource(ctx context.Context, name string) error
}

// Processor débite les cartes via Stripe (PaymentMethod puis PaymentIntent)
type Processor struct {
	settings settingStore
	locales  localeStore
	backend  stripe.Backend
	now      func() time.Time
}

// NewProcessor ; backend nil utilise l'API Stripe publique
func NewProcessor(settings settingStore, locales localeStore, backend stripe.Backend) *Processor {
	if backend == nil {
		backend = stripe.GetBackend(stripe.APIBackend)
	}
	return &Processor{settings: settings, locales: locales, backend: backend, now: time.Now}
}

func (p *Processor) SystemName() string { return SystemName }

func (p *Processor) Descriptor() plugins.Descriptor {
	return plugins.Descriptor{SystemName: SystemName, FriendlyName: "Credit card (direct)", Group: "Payments"}
}

func (p *Processor) loadSettings(ctx context.Context, storeID int) (*Settings, error) {
	s := defaultSettings()
	if err := p.settings.LoadSetting(ctx, s, storeID); err != nil {
		return nil, fmt.Errorf("carddirect: chargement des settings: %w", err)
	}
	return s, nil
}

// GetPaymentInfo construit la requête de paiement à partir du formulaire brut.
// Le formulaire doit avoir été validé : un mois ou une année non numérique
// est renvoyé en erreur.
func GetPaymentInfo(form PaymentInfoForm) (*payments.ProcessPaymentRequest, error) {
	month, err := strconv.Atoi(form.ExpireMonth)
	if err != nil {
		return nil, fmt.Errorf("%w: mois d'expiration %q", payments.ErrInvalidForm, form.ExpireMonth)
	}
	year, err := strconv.Atoi(form.ExpireYear)
	if err != nil {
		return nil, fmt.Errorf("%w: année d'expiration %q", payments.ErrInvalidForm, form.ExpireYear)
	}
	return &payments.ProcessPaymentRequest{
		OrderGUID:             uuid.New(),
		CreditCardType:        form.CreditCardType,
		CreditCardNumber:      form.CardNumber,
		CreditCardExpireMonth: month,
		CreditCardExpireYear:  year,
		CreditCardCvv2:        form.CardCode,
	}, nil
}

func (p *Processor) GetAdditionalHandlingFee(ctx context.Context, storeID int, subtotal decimal.Decimal) (decimal.Decimal, error) {
	s, err := p.loadSettings(ctx, storeID)
	if err != nil {
		return decimal.Zero, err
	}
	return payments.CalculateAdditionalFee(subtotal, s.AdditionalFee, s.AdditionalFeePercentage), nil
}

// ProcessPayment autorise (et capture selon le mode) le montant de la
// commande. Les refus de la banque sont des erreurs du résultat, pas un error.
func (p *Processor) ProcessPayment(ctx context.Context, req *payments.ProcessPaymentRequest) (*payments.ProcessPaymentResult, error) {
	if req == nil {
		return nil, errors.New("carddirect: requête de paiement manquante")
	}
	s, err := p.loadSettings(ctx, req.StoreID)
	if err != nil {
		return nil, err
	}

	result := &payments.ProcessPaymentResult{NewPaymentStatus: payments.Pending}
	if s.ClientSecret == "" {
		return nil, errors.New("carddirect: clé secrète non configurée")
	}
	if s.UseSandbox && strings.HasPrefix(s.ClientSecret, "sk_live_") {
		result.AddError(p.locales.GetResource(ctx, "Plugins.Payments.CardDirect.SandboxRequiresTestKey"))
		return result, nil
	}

	pmClient := paymentmethod.Client{B: p.backend, Key: s.ClientSecret}
	pmParams := &stripe.PaymentMethodParams{
		Type: stripe.String(string(stripe.PaymentMethodTypeCard)),
		Card: &stripe.PaymentMethodCardParams{
			Number:   stripe.String(req.CreditCardNumber),
			ExpMonth: stripe.Int64(int64(req.CreditCardExpireMonth)),
			ExpYear:  stripe.Int64(int64(req.CreditCardExpireYear)),
			CVC:      stripe.String(req.CreditCardCvv2),
		},
	}
	pmParams.Context = ctx
	pm, err := pmClient.New(pmParams)
	if err != nil {
		return declined(result, err)
	}

	captureMethod := stripe.PaymentIntentCaptureMethodAutomatic
	if s.TransactMode == Authorize {
		captureMethod = stripe.PaymentIntentCaptureMethodManual
	}
	currency := strings.ToLower(req.CurrencyCode)
	if currency == "" {
		currency = "usd"
	}

	piClient := paymentintent.Client{B: p.backend, Key: s.ClientSecret}
	piParams := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(req.OrderTotal.Mul(decimal.NewFromInt(100)).Round(0).IntPart()),
		Currency:           stripe.String(currency),
		PaymentMethod:      stripe.String(pm.ID),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		CaptureMethod:      stripe.String(string(captureMethod)),
		Confirm:            stripe.Bool(true),
	}
	piParams.Context = ctx
	piParams.AddMetadata("order_guid", req.OrderGUID.String())
	if req.CustomerID != "" {
		piParams.AddMetadata("customer_id", req.CustomerID)
	}
	piParams.SetIdempotencyKey(req.OrderGUID.String())

	intent, err := piClient.New(piParams)
	if err != nil {
		return declined(result, err)
	}

	switch intent.Status {
	case stripe.PaymentIntentStatusRequiresCapture:
		result.NewPaymentStatus = payments.Authorized
		result.AuthorizationTransactionID = intent.ID
		result.AuthorizationTransactionResult = string(intent.Status)
	case stripe.PaymentIntentStatusSucceeded:
		result.NewPaymentStatus = payments.Paid
		result.CaptureTransactionID = intent.ID
		result.CaptureTransactionResult = string(intent.Status)
	case stripe.PaymentIntentStatusProcessing:
		result.AuthorizationTransactionID = intent.ID
		result.AuthorizationTransactionResult = string(intent.Status)
	default:
		result.AddError(fmt.Sprintf("Payment could not be completed (%s)", intent.Status))
	}
	log.Printf("💳 Paiement %s: %s (%s)", req.OrderGUID, intent.ID, intent.Status)
	return result, nil
}

func declined(result *payments.ProcessPaymentResult, err error) (*payments.ProcessPaymentResult, error) {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		log.Printf("❌ Stripe: %s (%s)", stripeErr.Msg, stripeErr.Code)
		result.AddError(stripeErr.Msg)
		return result, nil
	}
	return nil, fmt.Errorf("carddirect: appel Stripe: %w", err)
}

func (p *Processor) Install(ctx context.Context) error {
	if err := p.settings.SaveSetting(ctx, defaultSettings(), 0); err != nil {
		return err
	}
	for name, value := range localeResources {
		if err := p.locales.AddOrUpdatePluginLocaleResource(ctx, name, value); err != nil {
			return err
		}
	}
	return nil
}

func (p *Processor) Uninstall(ctx context.Context) error {
	if err := p.settings.DeleteSettings(ctx, &Settings{}); err != nil {
		return err
	}
	for name := range localeResources {
		if err := p.locales.DeletePluginLocaleResource(ctx, name); err != nil {
			return err
		}
	}
	return nil
}
