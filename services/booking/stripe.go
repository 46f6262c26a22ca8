package booking

import (
	"context"
	"encoding/json"
	"fmt"

	"docassist/config"
	"docassist/models"
	"docassist/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// StripeGateway implements CheckoutGateway against Stripe Checkout.
type StripeGateway struct {
	WebhookSecret string
	FrontendURL   string
}

// NewStripeGateway configures the global Stripe key and returns the gateway.
func NewStripeGateway() *StripeGateway {
	stripe.Key = config.AppConfig.StripeKey
	return &StripeGateway{
		WebhookSecret: config.AppConfig.StripeWebhookSecret,
		FrontendURL:   config.AppConfig.FrontendURL,
	}
}

// CreateSession opens a Stripe Checkout session priced from the doctor's
// fee, with the booking intent attached as session metadata.
func (g *StripeGateway) CreateSession(ctx context.Context, doctor *models.Doctor, md models.BookingMetadata) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String("usd"),
					UnitAmount: stripe.Int64(int64(doctor.Fee * 100)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(fmt.Sprintf("Appointment with Dr. %s", doctor.Name)),
						Description: stripe.String(fmt.Sprintf("%s consultation on %s at %s", doctor.Specialty, md.Date, md.Time)),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(g.FrontendURL + "/appointments/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(g.FrontendURL + "/appointments/cancel"),
	}
	params.Context = ctx
	for k, v := range md.ToMap() {
		params.AddMetadata(k, v)
	}

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe session create: %w", err)
	}
	return fromStripeSession(sess), nil
}

// GetSession retrieves a checkout session by id.
func (g *StripeGateway) GetSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	sess, err := session.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe session retrieve: %w", err)
	}
	return fromStripeSession(sess), nil
}

// ParseWebhook validates the delivery signature when a webhook secret is
// configured; without one the raw JSON payload is trusted (dev mode).
// Event types other than checkout.session.completed are ignored.
func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (*CheckoutSession, error) {
	var event stripe.Event
	if g.WebhookSecret != "" {
		var err error
		event, err = webhook.ConstructEvent(payload, signature, g.WebhookSecret)
		if err != nil {
			return nil, fmt.Errorf("webhook signature verification failed: %w", err)
		}
	} else {
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, fmt.Errorf("invalid webhook payload: %w", err)
		}
	}

	if event.Type != "checkout.session.completed" {
		utils.GetLogger().Debug("ignoring webhook event", zap.String("type", string(event.Type)))
		return nil, nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, fmt.Errorf("invalid session object in webhook: %w", err)
	}
	out := fromStripeSession(&sess)
	// A completed session is paid by definition of the event.
	out.Paid = true
	return out, nil
}

func fromStripeSession(sess *stripe.CheckoutSession) *CheckoutSession {
	return &CheckoutSession{
		ID:       sess.ID,
		URL:      sess.URL,
		Paid:     sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		Metadata: sess.Metadata,
	}
}
