package liteapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/0x-m1cro/mv-travel/internal/adapters/observability"
	"github.com/0x-m1cro/mv-travel/internal/domain"
)

// Client is the supplier request executor: authenticated HTTP with
// client-side rate limiting, a circuit breaker, and bounded retry with
// linear backoff. It performs no caching; cache-aside lives in the app layer.
type Client struct {
	base      string
	key       string
	hc        *http.Client
	rl        *rate.Limiter
	cb        *gobreaker.CircuitBreaker
	retryBase time.Duration
}

type Options struct {
	RPS       int           // client-side rate limit, default 5
	Timeout   time.Duration // per-request timeout, default 20s
	RetryBase time.Duration // linear backoff base, default 1s
}

// New constructs a client. An empty API key is allowed here: each call fails
// fast with CONFIG_ERROR instead, so a misconfigured deploy still serves
// every other route.
func New(base, key string, opts Options) *Client {
	if opts.RPS <= 0 {
		opts.RPS = 5
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}
	if opts.RetryBase <= 0 {
		opts.RetryBase = time.Second
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "liteapi",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// 4xx answers are the supplier working as intended; only transport
		// errors and 5xx should push the breaker open.
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var nr *nonRetryable
			if errors.As(err, &nr) {
				return true
			}
			de, ok := err.(*domain.Error)
			return ok && de.Code == domain.CodeNotFound
		},
	})
	return &Client{
		base:      strings.TrimRight(base, "/"),
		key:       key,
		hc:        &http.Client{Timeout: opts.Timeout},
		rl:        rate.NewLimiter(rate.Limit(opts.RPS), opts.RPS),
		cb:        cb,
		retryBase: opts.RetryBase,
	}
}

// retryPolicy is the per-operation attempt budget. Reads get the standard
// three attempts; booking mutations run exactly once so a transport timeout
// can never turn into a duplicate reservation.
type retryPolicy struct{ attempts int }

var (
	readPolicy     = retryPolicy{attempts: 3}
	mutationPolicy = retryPolicy{attempts: 1}
)

// ---- static data ----

func (c *Client) ListHotelsByCountry(ctx context.Context, countryCode string, limit, offset int) (HotelListResponse, error) {
	q := url.Values{}
	q.Set("countryCode", countryCode)
	q.Set("limit", fmt.Sprint(limit))
	q.Set("offset", fmt.Sprint(offset))
	var out HotelListResponse
	err := c.do(ctx, http.MethodGet, "/data/hotels", q, nil, &out, readPolicy, nil)
	return out, err
}

func (c *Client) ListHotelsByCity(ctx context.Context, cityName, countryCode string, limit int) (HotelListResponse, error) {
	q := url.Values{}
	q.Set("cityName", cityName)
	q.Set("countryCode", countryCode)
	q.Set("limit", fmt.Sprint(limit))
	var out HotelListResponse
	err := c.do(ctx, http.MethodGet, "/data/hotels", q, nil, &out, readPolicy, nil)
	return out, err
}

func (c *Client) GetHotel(ctx context.Context, hotelID string) (HotelDetailsResponse, error) {
	q := url.Values{}
	q.Set("hotelId", hotelID)
	var out HotelDetailsResponse
	err := c.do(ctx, http.MethodGet, "/data/hotel", q, nil, &out, readPolicy, nil)
	return out, err
}

func (c *Client) ListCities(ctx context.Context, countryCode string) (CitiesResponse, error) {
	q := url.Values{}
	q.Set("countryCode", countryCode)
	var out CitiesResponse
	err := c.do(ctx, http.MethodGet, "/data/cities", q, nil, &out, readPolicy, nil)
	return out, err
}

// ---- rates ----

func (c *Client) SearchRates(ctx context.Context, req RatesRequest) (RatesResponse, error) {
	var out RatesResponse
	err := c.do(ctx, http.MethodPost, "/hotels/rates", nil, req, &out, readPolicy, nil)
	return out, err
}

func (c *Client) MinRates(ctx context.Context, req RatesRequest) (MinRatesResponse, error) {
	var out MinRatesResponse
	err := c.do(ctx, http.MethodPost, "/hotels", nil, req, &out, readPolicy, nil)
	return out, err
}

// ---- booking ----

func (c *Client) Prebook(ctx context.Context, req PrebookRequest) (PrebookResponse, error) {
	var out PrebookResponse
	err := c.do(ctx, http.MethodPost, "/rates/prebook", nil, req, &out, readPolicy, nil)
	return out, err
}

// Book runs single-attempt and carries an idempotency key so a supplier-side
// replay of the same request is detectable.
func (c *Client) Book(ctx context.Context, req BookRequest) (BookingResponse, error) {
	var out BookingResponse
	hdr := map[string]string{"X-Idempotency-Key": uuid.NewString()}
	err := c.do(ctx, http.MethodPost, "/rates/book", nil, req, &out, mutationPolicy, hdr)
	return out, err
}

func (c *Client) GetBooking(ctx context.Context, bookingID string) (BookingResponse, error) {
	var out BookingResponse
	err := c.do(ctx, http.MethodGet, "/bookings/"+url.PathEscape(bookingID), nil, nil, &out, readPolicy, nil)
	return out, err
}

func (c *Client) ListBookings(ctx context.Context, guestID string) (BookingListResponse, error) {
	var q url.Values
	if guestID != "" {
		q = url.Values{}
		q.Set("guestId", guestID)
	}
	var out BookingListResponse
	err := c.do(ctx, http.MethodGet, "/bookings", q, nil, &out, readPolicy, nil)
	return out, err
}

func (c *Client) CancelBooking(ctx context.Context, bookingID string) (BookingResponse, error) {
	var out BookingResponse
	body := map[string]string{"status": "cancelled"}
	err := c.do(ctx, http.MethodPut, "/bookings/"+url.PathEscape(bookingID), nil, body, &out, mutationPolicy, nil)
	return out, err
}

// ---- executor ----

// do performs one supplier call under the retry policy. Failed attempts wait
// attempt_index × retryBase before the next; the final attempt never waits.
// 404 and other 4xx stop immediately: repeating a rejected request cannot
// change the answer.
func (c *Client) do(ctx context.Context, method, path string, q url.Values, body, out any, pol retryPolicy, hdr map[string]string) error {
	if c.key == "" {
		return domain.NewError(domain.CodeConfigError, "hotel data service is not configured")
	}
	if err := c.rl.Wait(ctx); err != nil {
		return domain.AsError(err)
	}

	u := c.base + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return domain.AsError(err)
		}
		payload = b
	}

	var lastErr error
	for i := 0; i < pol.attempts; i++ {
		if i > 0 {
			observability.ObserveSupplierRetry(path)
		}
		err, retryable := c.attempt(ctx, method, u, path, payload, out, hdr)
		if err == nil {
			return nil
		}
		if !retryable {
			return domain.AsError(err)
		}
		if ctx.Err() != nil {
			return domain.AsError(ctx.Err())
		}
		lastErr = err
		if i < pol.attempts-1 {
			if !sleepCtx(ctx, time.Duration(i+1)*c.retryBase) {
				return domain.AsError(ctx.Err())
			}
		}
	}
	return domain.AsError(lastErr)
}

// attempt is one round trip through the circuit breaker. retryable is false
// for outcomes a repeat cannot change (4xx, open breaker, cancellation).
func (c *Client) attempt(ctx context.Context, method, fullURL, endpoint string, payload []byte, out any, hdr map[string]string) (error, bool) {
	_, err := c.cb.Execute(func() (any, error) {
		var rdr io.Reader
		if payload != nil {
			rdr = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, fullURL, rdr)
		if err != nil {
			return nil, domain.AsError(err)
		}
		req.Header.Set("X-API-Key", c.key)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "mv-travel/1.0")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		for k, v := range hdr {
			req.Header.Set(k, v)
		}

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveSupplier(endpoint, 0, time.Since(start))
			return nil, domain.Errorf(domain.CodeRequestFailed, "supplier request failed: %v", err)
		}
		defer resp.Body.Close()
		observability.ObserveSupplier(endpoint, resp.StatusCode, time.Since(start))

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			if out == nil || resp.StatusCode == http.StatusNoContent {
				io.Copy(io.Discard, resp.Body)
				return nil, nil
			}
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return nil, domain.Errorf(domain.CodeRequestFailed, "decode supplier response: %v", err)
			}
			return nil, nil

		case resp.StatusCode == http.StatusNotFound:
			return nil, domain.NewError(domain.CodeNotFound, "not found")

		case resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests:
			return nil, &nonRetryable{domain.Errorf(domain.CodeRequestFailed, "supplier rejected request: %s", supplierMessage(resp))}

		default: // 429 and 5xx
			return nil, domain.Errorf(domain.CodeRequestFailed, "supplier status %d: %s", resp.StatusCode, supplierMessage(resp))
		}
	})
	if err == nil {
		return nil, false
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return domain.NewError(domain.CodeRequestFailed, "supplier temporarily unavailable"), false
	}
	var nr *nonRetryable
	if errors.As(err, &nr) {
		return nr.err, false
	}
	if de, ok := err.(*domain.Error); ok && de.Code == domain.CodeNotFound {
		return de, false
	}
	return err, true
}

// nonRetryable marks 4xx rejections so the retry loop stops and the breaker
// counts the round trip as successful (the supplier answered; it said no).
type nonRetryable struct{ err *domain.Error }

func (n *nonRetryable) Error() string { return n.err.Error() }

// supplierMessage pulls a human-readable message out of an error body,
// falling back to the raw (truncated) text.
func supplierMessage(resp *http.Response) string {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var se supplierError
	if err := json.Unmarshal(b, &se); err == nil {
		if se.Error != nil && se.Error.Message != "" {
			return se.Error.Message
		}
		if se.Message != "" {
			return se.Message
		}
	}
	s := strings.TrimSpace(string(b))
	if s == "" {
		return http.StatusText(resp.StatusCode)
	}
	return s
}

// sleepCtx waits for d or returns false if ctx is done first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
