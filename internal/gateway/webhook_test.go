package gateway

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_test_secret"

func signedHeader(body []byte, secret string) string {
	ts := fmt.Sprint(time.Now().Unix())
	return fmt.Sprintf("t=%s,v1=%s", ts, ComputeSignature(body, ts, secret))
}

func completedEventBody() []byte {
	return []byte(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_test_abc123"}}}`)
}

func TestVerifyWebhook_ValidSignature(t *testing.T) {
	body := completedEventBody()

	event, err := VerifyWebhook(body, signedHeader(body, testSecret), testSecret)
	require.NoError(t, err)

	assert.Equal(t, "evt_1", event.ID)
	assert.Equal(t, EventCheckoutCompleted, event.Type)

	handle, err := event.SessionHandle()
	require.NoError(t, err)
	assert.Equal(t, "cs_test_abc123", handle)
}

func TestVerifyWebhook_MissingHeader(t *testing.T) {
	_, err := VerifyWebhook(completedEventBody(), "", testSecret)
	assert.ErrorIs(t, err, ErrMissingSignature)
}

func TestVerifyWebhook_WrongSecret(t *testing.T) {
	body := completedEventBody()

	_, err := VerifyWebhook(body, signedHeader(body, "whsec_forged"), testSecret)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyWebhook_TamperedBody(t *testing.T) {
	body := completedEventBody()
	header := signedHeader(body, testSecret)

	tampered := []byte(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_attacker"}}}`)
	_, err := VerifyWebhook(tampered, header, testSecret)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyWebhook_MalformedHeader(t *testing.T) {
	_, err := VerifyWebhook(completedEventBody(), "v1=deadbeef", testSecret)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	_, err = VerifyWebhook(completedEventBody(), "garbage", testSecret)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestSessionHandle_MissingID(t *testing.T) {
	event := &Event{Data: []byte(`{"object":{}}`)}
	_, err := event.SessionHandle()
	assert.Error(t, err)
}
