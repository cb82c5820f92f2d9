package liteapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/0x-m1cro/mv-travel/internal/adapters/liteapi"
	"github.com/0x-m1cro/mv-travel/internal/domain"
)

func testClient(base string) *liteapi.Client {
	return liteapi.New(base, "test-key", liteapi.Options{RPS: 1000, RetryBase: time.Millisecond})
}

func TestGetHotel_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			w.WriteHeader(http.StatusInternalServerError)
		default:
			_ = json.NewEncoder(w).Encode(liteapi.HotelDetailsResponse{
				Data: liteapi.StaticHotel{ID: "lp1", Name: "Kuramathi"},
			})
		}
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	got, err := testClient(ts.URL).GetHotel(ctx, "lp1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Data.Name != "Kuramathi" {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if n := atomic.LoadInt32(&hits); n != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", n)
	}
}

func TestGetHotel_AllAttemptsFail(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, `{"error":{"message":"upstream down"}}`, http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := testClient(ts.URL).GetHotel(context.Background(), "lp1")
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if code := domain.CodeOf(err); code != domain.CodeRequestFailed {
		t.Fatalf("expected REQUEST_FAILED, got %s", code)
	}
	if n := atomic.LoadInt32(&hits); n != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", n)
	}
}

func TestMissingAPIKey_ConfigError(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer ts.Close()

	cl := liteapi.New(ts.URL, "", liteapi.Options{RetryBase: time.Millisecond})
	_, err := cl.GetHotel(context.Background(), "lp1")
	if code := domain.CodeOf(err); code != domain.CodeConfigError {
		t.Fatalf("expected CONFIG_ERROR, got %v", err)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Fatal("missing configuration must not reach the supplier")
	}
}

func TestGetHotel_404NotRetried(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	_, err := testClient(ts.URL).GetHotel(context.Background(), "nope")
	if code := domain.CodeOf(err); code != domain.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Fatalf("404 must not be retried, got %d attempts", n)
	}
}

func TestBook_SingleAttemptWithIdempotencyKey(t *testing.T) {
	var hits int32
	var idemKey string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		idemKey = r.Header.Get("X-Idempotency-Key")
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	_, err := testClient(ts.URL).Book(context.Background(), liteapi.BookRequest{PrebookID: "pb1"})
	if err == nil {
		t.Fatal("expected error")
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Fatalf("booking mutation must run exactly once, got %d attempts", n)
	}
	if idemKey == "" {
		t.Fatal("booking request missing idempotency key")
	}
}

func TestSearchRates_PostBodyAndAuth(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-Key") != "test-key" {
			t.Errorf("missing api key header")
		}
		var req liteapi.RatesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.HotelIDs) != 1 || req.HotelIDs[0] != "lp1" || req.Checkin != "2026-02-01" {
			t.Errorf("unexpected request body: %+v", req)
		}
		_ = json.NewEncoder(w).Encode(liteapi.RatesResponse{Data: []liteapi.HotelRates{{HotelID: "lp1", Currency: "USD"}}})
	}))
	defer ts.Close()

	got, err := testClient(ts.URL).SearchRates(context.Background(), liteapi.RatesRequest{
		HotelIDs:         []string{"lp1"},
		Checkin:          "2026-02-01",
		Checkout:         "2026-02-05",
		Occupancies:      []liteapi.WireOccupancy{{Adults: 2}},
		GuestNationality: "US",
		Currency:         "USD",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got.Data) != 1 || got.Data[0].HotelID != "lp1" {
		t.Fatalf("unexpected response: %+v", got)
	}
}

func TestBadRequest_NotRetried(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, `{"message":"invalid offer"}`, http.StatusBadRequest)
	}))
	defer ts.Close()

	_, err := testClient(ts.URL).Prebook(context.Background(), liteapi.PrebookRequest{OfferID: "bad"})
	if err == nil {
		t.Fatal("expected error")
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Fatalf("4xx must not be retried, got %d attempts", n)
	}
}
