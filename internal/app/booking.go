package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/0x-m1cro/mv-travel/internal/adapters/liteapi"
	"github.com/0x-m1cro/mv-travel/internal/domain"
)

// BookingService sequences the two-phase booking protocol: prebook mints a
// price-lock session, create commits it. Nothing here touches the cache —
// sessions and bookings are supplier-owned state that must always be fresh.
type BookingService struct {
	supplier Supplier
	now      func() time.Time
}

func NewBookingService(s Supplier) *BookingService {
	return &BookingService{supplier: s, now: time.Now}
}

// Prebook locks a price for the given offer. Each call mints a fresh session;
// a response without a prebookId is PREBOOK_FAILED, distinct from transport
// failure, so callers know re-prebooking is the fix.
func (b *BookingService) Prebook(ctx context.Context, offerID string, usePaymentSDK bool) (domain.PrebookSession, error) {
	if offerID == "" {
		return domain.PrebookSession{}, domain.NewError(domain.CodeInvalidParams, "offer ID is required")
	}
	resp, err := b.supplier.Prebook(ctx, liteapi.PrebookRequest{OfferID: offerID, UsePaymentSDK: usePaymentSDK})
	if err != nil {
		return domain.PrebookSession{}, err
	}
	if resp.Data.PrebookID == "" {
		return domain.PrebookSession{}, domain.NewError(domain.CodePrebookFailed, "failed to pre-book the rate")
	}
	return normalizePrebook(resp.Data, offerID, b.now()), nil
}

// PaymentDetails are passed through to the supplier unmodified.
type PaymentDetails struct {
	Method     string
	HolderName string
	Info       *liteapi.PaymentInfo
}

// CreateBooking commits a live prebook session. An expired session is
// rejected before any supplier call; a supplier rejection leaves the session
// as it was, so the caller may retry against it until expiry or re-prebook.
func (b *BookingService) CreateBooking(ctx context.Context, session domain.PrebookSession, guest domain.GuestInfo, payment PaymentDetails) (domain.Booking, error) {
	if session.PrebookID == "" {
		return domain.Booking{}, domain.NewError(domain.CodeInvalidParams, "prebook session is required")
	}
	if guest.FirstName == "" || guest.LastName == "" || guest.Email == "" {
		return domain.Booking{}, domain.NewError(domain.CodeInvalidParams, "guest first name, last name and email are required")
	}
	if session.Expired(b.now()) {
		return domain.Booking{}, domain.NewError(domain.CodePrebookFailed, "prebook session has expired, request a new price lock")
	}
	resp, err := b.supplier.Book(ctx, liteapi.BookRequest{
		PrebookID: session.PrebookID,
		GuestInfo: liteapi.WireGuest{
			GuestFirstName: guest.FirstName,
			GuestLastName:  guest.LastName,
			GuestEmail:     guest.Email,
			GuestPhone:     guest.Phone,
		},
		PaymentMethod: payment.Method,
		HolderName:    payment.HolderName,
		PaymentInfo:   payment.Info,
	})
	if err != nil {
		return domain.Booking{}, err
	}
	booking := normalizeBooking(resp.Data)
	log.Info().
		Str("bookingId", booking.BookingID).
		Str("status", string(booking.Status)).
		Msg("booking created")
	return booking, nil
}

// GetBooking is a read-through: booking status can change at any moment, so
// staleness is unacceptable on a confirmation page.
func (b *BookingService) GetBooking(ctx context.Context, bookingID string) (domain.Booking, error) {
	if bookingID == "" {
		return domain.Booking{}, domain.NewError(domain.CodeInvalidParams, "booking ID is required")
	}
	resp, err := b.supplier.GetBooking(ctx, bookingID)
	if err != nil {
		return domain.Booking{}, err
	}
	if resp.Data.BookingID == "" {
		return domain.Booking{}, domain.NewError(domain.CodeNotFound, "booking not found")
	}
	return normalizeBooking(resp.Data), nil
}

// ListBookings passes an optional guest filter through to the supplier.
func (b *BookingService) ListBookings(ctx context.Context, guestID string) ([]domain.Booking, error) {
	resp, err := b.supplier.ListBookings(ctx, guestID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Booking, 0, len(resp.Data))
	for _, d := range resp.Data {
		out = append(out, normalizeBooking(d))
	}
	return out, nil
}

// CancelBooking issues the status update. Idempotency is the supplier's call:
// cancelling an already-cancelled booking is passed through, not validated
// locally.
func (b *BookingService) CancelBooking(ctx context.Context, bookingID string) (domain.Booking, error) {
	if bookingID == "" {
		return domain.Booking{}, domain.NewError(domain.CodeInvalidParams, "booking ID is required")
	}
	resp, err := b.supplier.CancelBooking(ctx, bookingID)
	if err != nil {
		return domain.Booking{}, err
	}
	booking := normalizeBooking(resp.Data)
	log.Info().Str("bookingId", booking.BookingID).Msg("booking cancelled")
	return booking, nil
}
