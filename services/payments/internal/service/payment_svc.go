package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/kormo-mela/kormo-services/services/payments/internal/domain"
)

const EventPaymentSucceeded = "payment.succeeded"

var ErrMissingBookingID = errors.New("missing booking_id")

// BookingStore advances a booking through the payment status chain.
type BookingStore interface {
	AdvanceOnPayment(ctx context.Context, id int64) (domain.Status, error)
}

// WebhookEvent is the payment-provider callback body.
type WebhookEvent struct {
	Type string `json:"type" binding:"required"`
	Data struct {
		BookingID int64 `json:"booking_id"`
	} `json:"data"`
}

type WebhookResult struct {
	Received    bool          `json:"received"`
	Ignored     bool          `json:"ignored,omitempty"`
	BookingID   int64         `json:"booking_id,omitempty"`
	FinalStatus domain.Status `json:"final_status,omitempty"`
}

type PaymentSvc struct {
	store  BookingStore
	secret []byte
}

func NewPaymentSvc(store BookingStore, webhookSecret string) *PaymentSvc {
	return &PaymentSvc{store: store, secret: []byte(webhookSecret)}
}

// VerifySignature compares the shared-secret header in constant time.
func (s *PaymentSvc) VerifySignature(sig string) bool {
	return subtle.ConstantTimeCompare([]byte(sig), s.secret) == 1
}

// HandleWebhook advances the booking for a payment.succeeded event. Other
// event types are accepted as no-ops for forward compatibility.
func (s *PaymentSvc) HandleWebhook(ctx context.Context, evt WebhookEvent) (WebhookResult, error) {
	if evt.Type != EventPaymentSucceeded {
		return WebhookResult{Received: true, Ignored: true}, nil
	}
	if evt.Data.BookingID == 0 {
		return WebhookResult{}, ErrMissingBookingID
	}

	final, err := s.store.AdvanceOnPayment(ctx, evt.Data.BookingID)
	if err != nil {
		return WebhookResult{}, err
	}
	return WebhookResult{Received: true, BookingID: evt.Data.BookingID, FinalStatus: final}, nil
}

// IntentReq creates a fake client secret; a real gateway integration would
// create a payment intent upstream instead.
type IntentReq struct {
	BookingID   int64  `json:"booking_id" binding:"required"`
	AmountMinor int64  `json:"amount_minor" binding:"required"` // e.g. 80000 = 800.00
	Currency    string `json:"currency"`
}

type IntentResult struct {
	ClientSecret string `json:"client_secret"`
	BookingID    int64  `json:"booking_id"`
	AmountMinor  int64  `json:"amount_minor"`
	Currency     string `json:"currency"`
}

func (s *PaymentSvc) CreateIntent(req IntentReq) IntentResult {
	if req.Currency == "" {
		req.Currency = "BDT"
	}
	return IntentResult{
		ClientSecret: fmt.Sprintf("pi_test_%d", req.BookingID),
		BookingID:    req.BookingID,
		AmountMinor:  req.AmountMinor,
		Currency:     req.Currency,
	}
}
