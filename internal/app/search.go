package app

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/0x-m1cro/mv-travel/internal/adapters/liteapi"
	"github.com/0x-m1cro/mv-travel/internal/adapters/memcache"
	"github.com/0x-m1cro/mv-travel/internal/domain"
)

// CountryCode scopes the storefront: Maldives only.
const CountryCode = "MV"

const (
	defaultCurrency    = "USD"
	defaultNationality = "US"
	defaultAdults      = 2
	defaultPageSize    = 50
)

// SearchService composes the supplier client, cache and normalizer into the
// read-side operations. Cache-aside with per-operation TTLs; concurrent
// identical misses are collapsed to one supplier call.
type SearchService struct {
	supplier Supplier
	cache    domain.Cache
	ttl      TTLPolicy
	sf       singleflight.Group
}

func NewSearchService(s Supplier, c domain.Cache, ttl TTLPolicy) *SearchService {
	return &SearchService{supplier: s, cache: c, ttl: ttl}
}

// SearchQuery are the listing-page inputs. A zero StayWindow means a
// date-less listing with no rate enrichment.
type SearchQuery struct {
	Stay      domain.StayWindow
	Occupancy domain.Occupancy
	Limit     int
	Offset    int
}

// GetMaldivesHotels returns one page of normalized Maldives hotels. When a
// stay window is given, bulk minimum rates are merged in by hotel id; a
// failing rate call degrades to hotels without minRate rather than failing
// the listing.
func (s *SearchService) GetMaldivesHotels(ctx context.Context, q SearchQuery) (domain.HotelPage, error) {
	if q.Limit <= 0 {
		q.Limit = defaultPageSize
	}
	if q.Occupancy.Adults <= 0 {
		q.Occupancy.Adults = defaultAdults
	}
	if !q.Stay.IsZero() && !q.Stay.Valid() {
		return domain.HotelPage{}, domain.NewError(domain.CodeInvalidParams, "check-out must be after check-in")
	}

	key := memcache.Key("search", map[string]any{
		"country":  CountryCode,
		"checkIn":  q.Stay.CheckIn,
		"checkOut": q.Stay.CheckOut,
		"adults":   q.Occupancy.Adults,
		"limit":    q.Limit,
		"offset":   q.Offset,
	})
	var cached domain.HotelPage
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return cached, nil
	}

	v, err, _ := s.sf.Do(key, func() (any, error) {
		page, err := s.fetchMaldivesHotels(ctx, q)
		if err != nil {
			return domain.HotelPage{}, err
		}
		_ = s.cache.Set(ctx, key, page, s.ttl.Search)
		return page, nil
	})
	if err != nil {
		return domain.HotelPage{}, err
	}
	return v.(domain.HotelPage), nil
}

func (s *SearchService) fetchMaldivesHotels(ctx context.Context, q SearchQuery) (domain.HotelPage, error) {
	listing, err := s.supplier.ListHotelsByCountry(ctx, CountryCode, q.Limit, q.Offset)
	if err != nil {
		return domain.HotelPage{}, err
	}

	var rates map[string]domain.Money
	if q.Stay.Valid() && len(listing.Data) > 0 {
		ids := make([]string, 0, len(listing.Data))
		for _, h := range listing.Data {
			ids = append(ids, h.ID)
		}
		m, err := s.MinRates(ctx, ids, q.Stay, q.Occupancy)
		if err != nil {
			// Partial data beats no data for a listing page.
			log.Warn().Err(err).Msg("bulk rate lookup failed, serving hotels without rates")
		} else {
			rates = m
		}
	}

	hotels := make([]domain.Hotel, 0, len(listing.Data))
	for _, h := range listing.Data {
		var mr *domain.Money
		if rates != nil {
			if r, ok := rates[h.ID]; ok {
				mr = &r
			}
		}
		hotels = append(hotels, NormalizeHotel(h, mr))
	}

	total := listing.Total
	if total == 0 {
		total = len(hotels)
	}
	return domain.HotelPage{Hotels: hotels, Total: total}, nil
}

// SearchByCity is the static listing variant scoped to one city.
func (s *SearchService) SearchByCity(ctx context.Context, cityName string, limit int) (domain.HotelPage, error) {
	if cityName == "" {
		return domain.HotelPage{}, domain.NewError(domain.CodeInvalidParams, "city name is required")
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	key := memcache.Key("hotels-city", map[string]any{"city": cityName, "country": CountryCode, "limit": limit})
	var cached domain.HotelPage
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return cached, nil
	}
	listing, err := s.supplier.ListHotelsByCity(ctx, cityName, CountryCode, limit)
	if err != nil {
		return domain.HotelPage{}, err
	}
	hotels := make([]domain.Hotel, 0, len(listing.Data))
	for _, h := range listing.Data {
		hotels = append(hotels, NormalizeHotel(h, nil))
	}
	total := listing.Total
	if total == 0 {
		total = len(hotels)
	}
	page := domain.HotelPage{Hotels: hotels, Total: total}
	_ = s.cache.Set(ctx, key, page, s.ttl.Static)
	return page, nil
}

// GetHotelDetails returns one hotel's normalized static data. A supplier 404
// or an empty record surfaces as NOT_FOUND with no partial data.
func (s *SearchService) GetHotelDetails(ctx context.Context, hotelID string) (domain.Hotel, error) {
	if hotelID == "" {
		return domain.Hotel{}, domain.NewError(domain.CodeInvalidParams, "hotel ID is required")
	}
	key := memcache.Key("hotel-details", map[string]any{"hotelId": hotelID})
	var cached domain.Hotel
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return cached, nil
	}

	v, err, _ := s.sf.Do(key, func() (any, error) {
		resp, err := s.supplier.GetHotel(ctx, hotelID)
		if err != nil {
			return domain.Hotel{}, err
		}
		if resp.Data.ID == "" {
			return domain.Hotel{}, domain.NewError(domain.CodeNotFound, "hotel not found")
		}
		h := NormalizeHotel(resp.Data, nil)
		_ = s.cache.Set(ctx, key, h, s.ttl.HotelDetails)
		return h, nil
	})
	if err != nil {
		return domain.Hotel{}, err
	}
	return v.(domain.Hotel), nil
}

// MinRates is the bulk cheapest-price lookup. Always fresh: it is a derived
// quantity layered under the listing cache, never cached on its own.
func (s *SearchService) MinRates(ctx context.Context, hotelIDs []string, stay domain.StayWindow, occ domain.Occupancy) (map[string]domain.Money, error) {
	if occ.Adults <= 0 {
		occ.Adults = defaultAdults
	}
	resp, err := s.supplier.MinRates(ctx, liteapi.RatesRequest{
		HotelIDs:         hotelIDs,
		Checkin:          stay.CheckIn,
		Checkout:         stay.CheckOut,
		Occupancies:      []liteapi.WireOccupancy{occupancyWire(occ)},
		GuestNationality: defaultNationality,
		Currency:         defaultCurrency,
	})
	if err != nil {
		return nil, err
	}
	out := make(map[string]domain.Money, len(resp.Data))
	for _, r := range resp.Data {
		out[r.HotelID] = domain.Money{Amount: r.Price, Currency: r.Currency}
	}
	return out, nil
}

// AvailabilityQuery identifies one hotel/stay/occupancy/currency combination.
type AvailabilityQuery struct {
	HotelID          string
	Stay             domain.StayWindow
	Occupancy        domain.Occupancy
	Currency         string
	GuestNationality string
}

// CheckAvailability fetches rates for one hotel and maps room types to
// canonical rooms. A rates response without this hotel is NO_AVAILABILITY,
// a legitimate negative result rather than a transport failure.
func (s *SearchService) CheckAvailability(ctx context.Context, q AvailabilityQuery) (domain.Availability, error) {
	if q.HotelID == "" {
		return domain.Availability{}, domain.NewError(domain.CodeInvalidParams, "hotel ID is required")
	}
	if !q.Stay.Valid() {
		return domain.Availability{}, domain.NewError(domain.CodeInvalidParams, "check-in and check-out dates are required")
	}
	if q.Occupancy.Adults <= 0 {
		q.Occupancy.Adults = defaultAdults
	}
	if q.Currency == "" {
		q.Currency = defaultCurrency
	}
	if q.GuestNationality == "" {
		q.GuestNationality = defaultNationality
	}

	key := memcache.Key("availability", map[string]any{
		"hotelId":     q.HotelID,
		"checkIn":     q.Stay.CheckIn,
		"checkOut":    q.Stay.CheckOut,
		"adults":      q.Occupancy.Adults,
		"children":    q.Occupancy.Children,
		"currency":    q.Currency,
		"nationality": q.GuestNationality,
	})
	var cached domain.Availability
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return cached, nil
	}

	v, err, _ := s.sf.Do(key, func() (any, error) {
		resp, err := s.supplier.SearchRates(ctx, liteapi.RatesRequest{
			HotelIDs:         []string{q.HotelID},
			Checkin:          q.Stay.CheckIn,
			Checkout:         q.Stay.CheckOut,
			Occupancies:      []liteapi.WireOccupancy{occupancyWire(q.Occupancy)},
			GuestNationality: q.GuestNationality,
			Currency:         q.Currency,
		})
		if err != nil {
			return domain.Availability{}, err
		}
		var match *liteapi.HotelRates
		for i := range resp.Data {
			if resp.Data[i].HotelID == q.HotelID {
				match = &resp.Data[i]
				break
			}
		}
		if match == nil {
			return domain.Availability{}, domain.NewError(domain.CodeNoAvailability, "no rooms available for this hotel")
		}
		currency := match.Currency
		if currency == "" {
			currency = q.Currency
		}
		av := domain.Availability{
			HotelID:  q.HotelID,
			CheckIn:  q.Stay.CheckIn,
			CheckOut: q.Stay.CheckOut,
			Currency: currency,
			Rooms:    normalizeRooms(*match, q.Occupancy.Adults),
		}
		_ = s.cache.Set(ctx, key, av, s.ttl.Availability)
		return av, nil
	})
	if err != nil {
		return domain.Availability{}, err
	}
	return v.(domain.Availability), nil
}

// GetCities lists Maldives atoll/city reference data, cached at the longest
// TTL class.
func (s *SearchService) GetCities(ctx context.Context) ([]domain.City, error) {
	key := memcache.Key("cities", map[string]any{"country": CountryCode})
	var cached []domain.City
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return cached, nil
	}
	resp, err := s.supplier.ListCities(ctx, CountryCode)
	if err != nil {
		return nil, err
	}
	cities := normalizeCities(resp)
	_ = s.cache.Set(ctx, key, cities, s.ttl.Static)
	return cities, nil
}

func occupancyWire(o domain.Occupancy) liteapi.WireOccupancy {
	w := liteapi.WireOccupancy{Adults: o.Adults}
	if o.Children > 0 {
		w.Children = []int{o.Children}
	}
	return w
}
