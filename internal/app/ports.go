package app

import (
	"context"
	"time"

	"github.com/0x-m1cro/mv-travel/internal/adapters/liteapi"
)

// Supplier is the slice of the LiteAPI client the orchestration services
// consume. Tests substitute fakes; production wires *liteapi.Client.
type Supplier interface {
	ListHotelsByCountry(ctx context.Context, countryCode string, limit, offset int) (liteapi.HotelListResponse, error)
	ListHotelsByCity(ctx context.Context, cityName, countryCode string, limit int) (liteapi.HotelListResponse, error)
	GetHotel(ctx context.Context, hotelID string) (liteapi.HotelDetailsResponse, error)
	ListCities(ctx context.Context, countryCode string) (liteapi.CitiesResponse, error)
	SearchRates(ctx context.Context, req liteapi.RatesRequest) (liteapi.RatesResponse, error)
	MinRates(ctx context.Context, req liteapi.RatesRequest) (liteapi.MinRatesResponse, error)
	Prebook(ctx context.Context, req liteapi.PrebookRequest) (liteapi.PrebookResponse, error)
	Book(ctx context.Context, req liteapi.BookRequest) (liteapi.BookingResponse, error)
	GetBooking(ctx context.Context, bookingID string) (liteapi.BookingResponse, error)
	ListBookings(ctx context.Context, guestID string) (liteapi.BookingListResponse, error)
	CancelBooking(ctx context.Context, bookingID string) (liteapi.BookingResponse, error)
}

// TTLPolicy is the per-operation cache freshness budget. Listings move
// slowly, prices don't.
type TTLPolicy struct {
	Search       time.Duration // hotel search pages
	Availability time.Duration // rates and room inventory
	HotelDetails time.Duration // static descriptive content
	Static       time.Duration // reference data (cities, country listings)
}

func DefaultTTLPolicy() TTLPolicy {
	return TTLPolicy{
		Search:       5 * time.Minute,
		Availability: 2 * time.Minute,
		HotelDetails: 30 * time.Minute,
		Static:       time.Hour,
	}
}
