package model

import (
	"encoding/json"
	"strings"
)

// PaymentEventKind is the closed routing decision for inbound provider
// events. Anything the pipeline does not handle maps to KindIgnored and is
// acknowledged without side effects.
type PaymentEventKind int

const (
	PaymentEventIgnored PaymentEventKind = iota
	PaymentEventSuccess
	PaymentEventFailure
)

const (
	eventCheckoutCompleted = "checkout.session.completed"
	eventPaymentSucceeded  = "payment_intent.succeeded"
	eventPaymentFailed     = "payment_intent.payment_failed"
)

// PaymentEvent is the parsed form of a provider webhook delivery.
// AmountMinor is in minor currency units (cents); zero means the provider
// did not report a captured amount and the subscription's stored amount
// should be used instead.
type PaymentEvent struct {
	ID          string
	Type        string
	Kind        PaymentEventKind
	Email       string
	AmountMinor int64
	Currency    string
}

type eventEnvelope struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object eventObject `json:"object"`
	} `json:"data"`
}

type eventObject struct {
	CustomerEmail  string `json:"customer_email"`
	ReceiptEmail   string `json:"receipt_email"`
	BillingDetails struct {
		Email string `json:"email"`
	} `json:"billing_details"`
	CustomerDetails struct {
		Email string `json:"email"`
	} `json:"customer_details"`
	AmountReceived int64  `json:"amount_received"`
	Currency       string `json:"currency"`
}

// ParsePaymentEvent decodes a raw webhook body into a PaymentEvent. It only
// fails on malformed JSON; unknown event types parse fine as ignored.
func ParsePaymentEvent(body []byte) (*PaymentEvent, error) {
	var env eventEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}

	ev := &PaymentEvent{
		ID:          env.ID,
		Type:        env.Type,
		Email:       firstNonEmpty(env.Data.Object.CustomerEmail, env.Data.Object.ReceiptEmail, env.Data.Object.BillingDetails.Email, env.Data.Object.CustomerDetails.Email),
		AmountMinor: env.Data.Object.AmountReceived,
		Currency:    strings.ToUpper(env.Data.Object.Currency),
	}
	switch env.Type {
	case eventCheckoutCompleted, eventPaymentSucceeded:
		ev.Kind = PaymentEventSuccess
	case eventPaymentFailed:
		ev.Kind = PaymentEventFailure
	default:
		ev.Kind = PaymentEventIgnored
	}
	return ev, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
