package httpserver_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	httpserver "github.com/0x-m1cro/mv-travel/internal/adapters/http_server"
)

const secret = "wh-secret"

func post(t *testing.T, h *httpserver.WebhookHandler, body []byte, sig string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/supplier", bytes.NewReader(body))
	if sig != "" {
		req.Header.Set(httpserver.SignatureHeader, sig)
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestWebhook_ValidSignatureAccepted(t *testing.T) {
	h := httpserver.NewWebhookHandler(secret, "prod")
	body := []byte(`{"type":"booking.confirmed","data":{"bookingId":"bk1"}}`)

	rec := post(t, h, body, httpserver.Sign(secret, body))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
}

func TestWebhook_TamperedBodyRejected(t *testing.T) {
	h := httpserver.NewWebhookHandler(secret, "prod")
	body := []byte(`{"type":"booking.confirmed","data":{"bookingId":"bk1"}}`)
	sig := httpserver.Sign(secret, body)

	tampered := []byte(`{"type":"booking.confirmed","data":{"bookingId":"bk2"}}`)
	rec := post(t, h, tampered, sig)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for tampered body, got %d", rec.Code)
	}

	// The same tampered payload with a recomputed signature is accepted.
	rec = post(t, h, tampered, httpserver.Sign(secret, tampered))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with recomputed signature, got %d", rec.Code)
	}
}

func TestWebhook_MissingSignatureRejected(t *testing.T) {
	h := httpserver.NewWebhookHandler(secret, "prod")
	rec := post(t, h, []byte(`{"type":"booking.cancelled"}`), "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestWebhook_UnknownEventAcknowledged(t *testing.T) {
	h := httpserver.NewWebhookHandler(secret, "prod")
	body := []byte(`{"type":"rate.updated","data":{}}`)

	rec := post(t, h, body, httpserver.Sign(secret, body))
	if rec.Code != http.StatusOK {
		t.Fatalf("unknown events must be acknowledged, got %d", rec.Code)
	}
}

func TestWebhook_NoSecret(t *testing.T) {
	// Outside production a missing secret disables verification.
	dev := httpserver.NewWebhookHandler("", "dev")
	rec := post(t, dev, []byte(`{"type":"booking.confirmed"}`), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("dev without secret should accept, got %d", rec.Code)
	}

	// Production without a secret rejects everything.
	prod := httpserver.NewWebhookHandler("", "prod")
	rec = post(t, prod, []byte(`{"type":"booking.confirmed"}`), "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("prod without secret must reject, got %d", rec.Code)
	}
}
