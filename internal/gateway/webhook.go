package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingSignature = errors.New("signature header missing")
	ErrInvalidSignature = errors.New("signature verification failed")
)

// SignatureHeader is the header the gateway signs webhook deliveries
// with: "t=<unix timestamp>,v1=<hex hmac>".
const SignatureHeader = "Gateway-Signature"

type EventType string

const (
	EventCheckoutCompleted EventType = "checkout.session.completed"
	EventCheckoutExpired   EventType = "checkout.session.expired"
	EventPaymentFailed     EventType = "payment_intent.payment_failed"
)

// Event is a verified webhook notification. Data holds the raw event
// object; only completed-checkout events are ever inspected further.
type Event struct {
	ID   string          `json:"id"`
	Type EventType       `json:"type"`
	Data json.RawMessage `json:"data"`
}

// SessionHandle extracts the checkout session handle from the event
// payload.
func (e *Event) SessionHandle() (string, error) {
	var data struct {
		Object struct {
			ID string `json:"id"`
		} `json:"object"`
	}
	if err := json.Unmarshal(e.Data, &data); err != nil {
		return "", fmt.Errorf("parse event data failed: %w", err)
	}
	if data.Object.ID == "" {
		return "", errors.New("event data has no session id")
	}
	return data.Object.ID, nil
}

// VerifyWebhook recomputes the delivery signature over
// timestamp + "." + body and parses the event only when it matches.
// An unverified payload's contents are never touched.
func VerifyWebhook(body []byte, header, secret string) (*Event, error) {
	if header == "" {
		return nil, ErrMissingSignature
	}

	timestamp, signature, err := parseSignatureHeader(header)
	if err != nil {
		return nil, err
	}

	expected := ComputeSignature(body, timestamp, secret)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return nil, ErrInvalidSignature
	}

	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("parse verified event failed: %w", err)
	}
	return &event, nil
}

// ComputeSignature returns the hex HMAC-SHA256 of timestamp+"."+body.
// Exported so tests and local gateway stubs can sign deliveries.
func ComputeSignature(body []byte, timestamp, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func parseSignatureHeader(header string) (timestamp, signature string, err error) {
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			timestamp = value
		case "v1":
			signature = value
		}
	}
	if timestamp == "" || signature == "" {
		return "", "", ErrInvalidSignature
	}
	return timestamp, signature, nil
}
