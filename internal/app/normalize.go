package app

import (
	"time"

	"github.com/0x-m1cro/mv-travel/internal/adapters/liteapi"
	"github.com/0x-m1cro/mv-travel/internal/domain"
)

// Normalization of supplier wire payloads into the canonical model. All
// functions here are total: absent optional supplier fields become zero
// values or empty collections, never an error.

// refundableTag is the only supplier value that counts as refundable.
// Anything else, including absent, normalizes to non-refundable so uncertain
// cancellation terms are never overpromised.
const refundableTag = "refundable"

// defaultPrebookWindow bounds a session lifetime when the supplier response
// carries no expiry of its own.
const defaultPrebookWindow = 20 * time.Minute

// NormalizeHotel maps one static supplier record to the canonical Hotel.
// minRate may be nil for date-less listings.
func NormalizeHotel(h liteapi.StaticHotel, minRate *domain.Money) domain.Hotel {
	images := []domain.Image{}
	if h.MainPhoto != "" {
		images = append(images, domain.Image{URL: h.MainPhoto, IsPrimary: true})
	}
	amenities := h.HotelFacilities
	if amenities == nil {
		amenities = []string{}
	}
	var reviews *domain.ReviewScore
	if h.ReviewCount > 0 {
		reviews = &domain.ReviewScore{Rating: h.Rating, Count: h.ReviewCount}
	}
	return domain.Hotel{
		ID:          h.ID,
		Name:        h.Name,
		StarRating:  max(h.Stars, 0),
		Description: h.HotelDescription,
		Address: domain.Address{
			Line1:      h.Address,
			City:       h.City,
			Country:    h.Country,
			PostalCode: h.Zip,
		},
		Location:  domain.Location{Latitude: h.Latitude, Longitude: h.Longitude},
		Images:    images,
		Amenities: amenities,
		Reviews:   reviews,
		MinRate:   minRate,
	}
}

// normalizeRooms maps a supplier per-hotel rate block to canonical rooms.
// fallbackOccupancy fills maxOccupancy when the supplier omits it.
func normalizeRooms(hr liteapi.HotelRates, fallbackOccupancy int) []domain.Room {
	rooms := make([]domain.Room, 0, len(hr.RoomTypes))
	for _, rt := range hr.RoomTypes {
		name := rt.RoomName
		if name == "" {
			name = "Room"
		}
		maxOcc := fallbackOccupancy
		if len(rt.Rates) > 0 && rt.Rates[0].MaxOccupancy > 0 {
			maxOcc = rt.Rates[0].MaxOccupancy
		}
		rates := make([]domain.Rate, 0, len(rt.Rates))
		for _, r := range rt.Rates {
			rates = append(rates, normalizeRate(r, hr.Currency))
		}
		rooms = append(rooms, domain.Room{
			OfferID:      rt.OfferID,
			Name:         name,
			MaxOccupancy: maxOcc,
			Rates:        rates,
		})
	}
	return rooms
}

// normalizeRate converts one supplier rate. The price is the first retail
// total; when absent it becomes 0 in the fallback currency so sorting and
// filtering stay total downstream.
func normalizeRate(r liteapi.WireRate, fallbackCurrency string) domain.Rate {
	board := r.Board
	if board == "" {
		board = domain.BoardRoomOnly
	}
	price := domain.Money{Amount: 0, Currency: fallbackCurrency}
	if r.RetailRate != nil && len(r.RetailRate.Total) > 0 {
		t := r.RetailRate.Total[0]
		price.Amount = t.Amount
		if t.Currency != "" {
			price.Currency = t.Currency
		}
	}
	return domain.Rate{
		RateID:             r.RateID,
		BoardType:          board,
		BoardName:          r.BoardName,
		CancellationPolicy: normalizeCancellation(r.CancellationPolicies),
		Price:              price,
	}
}

func normalizeCancellation(cp *liteapi.CancellationPolicy) domain.CancellationPolicy {
	out := domain.CancellationPolicy{}
	if cp == nil {
		return out
	}
	out.Refundable = cp.RefundableTag == refundableTag
	if len(cp.CancelPolicyInfos) > 0 {
		out.Description = cp.CancelPolicyInfos[0].Type
		out.Deadline = cp.CancelPolicyInfos[0].CancelTime
	}
	return out
}

// normalizePrebook builds the session snapshot returned by a prebook call.
// A supplier-provided expiry wins; otherwise the default window applies.
func normalizePrebook(d liteapi.PrebookData, offerID string, now time.Time) domain.PrebookSession {
	s := domain.PrebookSession{
		PrebookID: d.PrebookID,
		OfferID:   offerID,
		HotelID:   d.HotelID,
		RoomName:  d.RoomName,
		ExpiresAt: now.Add(defaultPrebookWindow),
	}
	if d.ExpiresAt != "" {
		if t, err := time.Parse(time.RFC3339, d.ExpiresAt); err == nil {
			s.ExpiresAt = t
		}
	}
	if d.Price != nil {
		s.Price = domain.Money{Amount: d.Price.Amount, Currency: d.Price.Currency}
	} else if d.Rate != nil {
		s.Price = normalizeRate(*d.Rate, "").Price
	}
	s.CancellationPolicy = normalizeCancellation(d.CancellationPolicies)
	return s
}

// normalizeBooking maps a supplier booking record to the canonical Booking.
func normalizeBooking(d liteapi.BookingData) domain.Booking {
	b := domain.Booking{
		BookingID:             d.BookingID,
		Status:                domain.BookingStatus(d.Status),
		HotelConfirmationCode: d.HotelConfirmationCode,
		CheckIn:               d.Checkin,
		CheckOut:              d.Checkout,
		CreatedAt:             d.CreatedAt,
		CancellationPolicy:    normalizeCancellation(d.CancellationPolicies),
	}
	if d.Hotel != nil {
		b.HotelID = d.Hotel.HotelID
		b.HotelName = d.Hotel.Name
	}
	if d.GuestInfo != nil {
		b.Guest = domain.GuestInfo{
			FirstName: d.GuestInfo.GuestFirstName,
			LastName:  d.GuestInfo.GuestLastName,
			Email:     d.GuestInfo.GuestEmail,
			Phone:     d.GuestInfo.GuestPhone,
		}
	}
	if d.Price != nil {
		b.Price = domain.Money{Amount: d.Price.Amount, Currency: d.Price.Currency}
	}
	if d.Rate != nil {
		b.BoardType = d.Rate.Board
		if b.Price.Amount == 0 && d.Rate.RetailRate != nil && len(d.Rate.RetailRate.Total) > 0 {
			t := d.Rate.RetailRate.Total[0]
			b.Price = domain.Money{Amount: t.Amount, Currency: t.Currency}
		}
	}
	return b
}

func normalizeCities(in liteapi.CitiesResponse) []domain.City {
	out := make([]domain.City, 0, len(in.Data))
	for _, c := range in.Data {
		out = append(out, domain.City{Name: c.City, Country: c.Country, CountryCode: c.CountryCode})
	}
	return out
}
