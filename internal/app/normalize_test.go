package app

import (
	"testing"
	"time"

	"github.com/0x-m1cro/mv-travel/internal/adapters/liteapi"
	"github.com/0x-m1cro/mv-travel/internal/domain"
)

func TestNormalizeHotel_TotalOnSparseRecord(t *testing.T) {
	h := NormalizeHotel(liteapi.StaticHotel{ID: "lp9", Name: "Barefoot Island"}, nil)

	if h.StarRating != 0 {
		t.Fatalf("absent stars must normalize to 0, got %d", h.StarRating)
	}
	if h.Images == nil || len(h.Images) != 0 {
		t.Fatalf("absent photo must normalize to empty image list, got %v", h.Images)
	}
	if h.Amenities == nil || len(h.Amenities) != 0 {
		t.Fatalf("absent facilities must normalize to empty amenities, got %v", h.Amenities)
	}
	if h.MinRate != nil {
		t.Fatalf("no min rate expected, got %+v", h.MinRate)
	}
}

func TestNormalizeHotel_PrimaryImageRoundTrip(t *testing.T) {
	const photo = "https://img.example/kuramathi.jpg"
	h := NormalizeHotel(liteapi.StaticHotel{ID: "lp1", Name: "Kuramathi", MainPhoto: photo, Stars: 4}, nil)

	if len(h.Images) != 1 {
		t.Fatalf("expected exactly one image, got %d", len(h.Images))
	}
	if !h.Images[0].IsPrimary || h.Images[0].URL != photo {
		t.Fatalf("unexpected image: %+v", h.Images[0])
	}
	img, ok := h.PrimaryImage()
	if !ok || img.URL != photo {
		t.Fatalf("PrimaryImage mismatch: %+v ok=%v", img, ok)
	}
	if h.StarRating != 4 {
		t.Fatalf("stars lost in normalization: %d", h.StarRating)
	}
}

func TestNormalizeHotel_MinRateAttached(t *testing.T) {
	mr := &domain.Money{Amount: 420, Currency: "USD"}
	h := NormalizeHotel(liteapi.StaticHotel{ID: "lp1", Name: "X"}, mr)
	if h.MinRate == nil || h.MinRate.Amount != 420 {
		t.Fatalf("min rate not attached: %+v", h.MinRate)
	}
}

func TestNormalizeRate_RefundableOnlyOnExactTag(t *testing.T) {
	cases := []struct {
		tag  string
		want bool
	}{
		{"refundable", true},
		{"REFUNDABLE", false},
		{"non_refundable", false},
		{"", false},
	}
	for _, tc := range cases {
		r := normalizeRate(liteapi.WireRate{
			RateID:               "r1",
			CancellationPolicies: &liteapi.CancellationPolicy{RefundableTag: tc.tag},
		}, "USD")
		if r.CancellationPolicy.Refundable != tc.want {
			t.Errorf("tag %q: refundable=%v, want %v", tc.tag, r.CancellationPolicy.Refundable, tc.want)
		}
	}

	// absent policy block defaults to non-refundable
	r := normalizeRate(liteapi.WireRate{RateID: "r2"}, "USD")
	if r.CancellationPolicy.Refundable {
		t.Fatal("absent cancellation policy must default to non-refundable")
	}
}

func TestNormalizeRate_PriceFallbacks(t *testing.T) {
	// no retail rate at all: amount 0 in the fallback currency
	r := normalizeRate(liteapi.WireRate{RateID: "r1"}, "EUR")
	if r.Price.Amount != 0 || r.Price.Currency != "EUR" {
		t.Fatalf("expected 0 EUR fallback, got %+v", r.Price)
	}

	// total entry without currency keeps the fallback currency
	r = normalizeRate(liteapi.WireRate{
		RateID:     "r2",
		RetailRate: &liteapi.RetailRate{Total: []liteapi.TotalPrice{{Amount: 350}}},
	}, "USD")
	if r.Price.Amount != 350 || r.Price.Currency != "USD" {
		t.Fatalf("expected 350 USD, got %+v", r.Price)
	}

	// first total entry wins
	r = normalizeRate(liteapi.WireRate{
		RateID: "r3",
		RetailRate: &liteapi.RetailRate{Total: []liteapi.TotalPrice{
			{Amount: 500, Currency: "USD"},
			{Amount: 460, Currency: "EUR"},
		}},
	}, "USD")
	if r.Price.Amount != 500 || r.Price.Currency != "USD" {
		t.Fatalf("expected first total entry, got %+v", r.Price)
	}
}

func TestNormalizeRate_BoardDefaultsAndPassthrough(t *testing.T) {
	if r := normalizeRate(liteapi.WireRate{RateID: "r1"}, "USD"); r.BoardType != domain.BoardRoomOnly {
		t.Fatalf("absent board must default to room_only, got %q", r.BoardType)
	}
	if r := normalizeRate(liteapi.WireRate{RateID: "r2", Board: "dine_around"}, "USD"); r.BoardType != "dine_around" {
		t.Fatalf("unrecognized board must pass through, got %q", r.BoardType)
	}
}

func TestNormalizeRooms(t *testing.T) {
	hr := liteapi.HotelRates{
		HotelID:  "lp1",
		Currency: "USD",
		RoomTypes: []liteapi.RoomType{
			{
				OfferID: "offer-1",
				Rates: []liteapi.WireRate{{
					RateID:       "r1",
					MaxOccupancy: 3,
					Board:        domain.BoardAllInclusive,
				}},
			},
			{OfferID: "offer-2", RoomName: "Water Villa"},
		},
	}
	rooms := normalizeRooms(hr, 2)
	if len(rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(rooms))
	}
	if rooms[0].Name != "Room" {
		t.Fatalf("missing room name must default, got %q", rooms[0].Name)
	}
	if rooms[0].MaxOccupancy != 3 {
		t.Fatalf("max occupancy should come from first rate, got %d", rooms[0].MaxOccupancy)
	}
	if rooms[1].MaxOccupancy != 2 {
		t.Fatalf("absent max occupancy should fall back to requested adults, got %d", rooms[1].MaxOccupancy)
	}
	if rooms[1].Name != "Water Villa" {
		t.Fatalf("room name lost: %q", rooms[1].Name)
	}
}

func TestNormalizePrebook_ExpiryDefaultsAndParse(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	s := normalizePrebook(liteapi.PrebookData{PrebookID: "pb1"}, "offer-1", now)
	if !s.ExpiresAt.Equal(now.Add(defaultPrebookWindow)) {
		t.Fatalf("expected default expiry window, got %v", s.ExpiresAt)
	}
	if s.OfferID != "offer-1" {
		t.Fatalf("offer id lost: %q", s.OfferID)
	}

	supplied := now.Add(10 * time.Minute)
	s = normalizePrebook(liteapi.PrebookData{
		PrebookID: "pb2",
		ExpiresAt: supplied.Format(time.RFC3339),
		Price:     &liteapi.TotalPrice{Amount: 900, Currency: "USD"},
	}, "offer-2", now)
	if !s.ExpiresAt.Equal(supplied) {
		t.Fatalf("supplier expiry should win, got %v", s.ExpiresAt)
	}
	if s.Price.Amount != 900 {
		t.Fatalf("locked price lost: %+v", s.Price)
	}

	if s.Expired(now) {
		t.Fatal("session should be live before expiry")
	}
	if !s.Expired(supplied.Add(time.Second)) {
		t.Fatal("session should be expired past ExpiresAt")
	}
}

func TestNormalizeBooking(t *testing.T) {
	b := normalizeBooking(liteapi.BookingData{
		BookingID:             "bk1",
		Status:                "confirmed",
		HotelConfirmationCode: "HC-42",
		Hotel:                 &liteapi.BookedHotel{HotelID: "lp1", Name: "Kuramathi"},
		Checkin:               "2026-02-01",
		Checkout:              "2026-02-05",
		GuestInfo:             &liteapi.WireGuest{GuestFirstName: "Aishath", GuestLastName: "Ali", GuestEmail: "a@example.com"},
		Price:                 &liteapi.TotalPrice{Amount: 1800, Currency: "USD"},
		CreatedAt:             "2026-01-20T10:00:00Z",
	})
	if b.Status != domain.BookingConfirmed {
		t.Fatalf("status mismatch: %s", b.Status)
	}
	if b.HotelName != "Kuramathi" || b.HotelID != "lp1" {
		t.Fatalf("hotel snapshot lost: %+v", b)
	}
	if b.Guest.FirstName != "Aishath" || b.Price.Amount != 1800 {
		t.Fatalf("guest/price snapshot lost: %+v", b)
	}
	if b.Status.Terminal() {
		t.Fatal("confirmed is not terminal")
	}
	if !domain.BookingCancelled.Terminal() {
		t.Fatal("cancelled must be terminal")
	}
}
