package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/0x-m1cro/mv-travel/internal/app"
	"github.com/0x-m1cro/mv-travel/internal/domain"
)

type Handlers struct {
	Search  *app.SearchService
	Booking *app.BookingService
	Webhook *WebhookHandler
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	s.mux.Get("/v1/search", h.search)
	s.mux.Get("/v1/availability", h.availability)
	s.mux.Post("/v1/book", h.book)
	s.mux.Put("/v1/book", h.prebook)
	s.mux.Get("/v1/bookings", h.listBookings)
	s.mux.Get("/v1/bookings/{id}", h.getBooking)
	s.mux.Delete("/v1/bookings/{id}", h.cancelBooking)
	s.mux.Get("/v1/hotels/{hotelId}", h.getHotel)
	s.mux.Get("/v1/cities", h.cities)
	if h.Webhook != nil {
		s.mux.Post("/v1/webhooks/supplier", h.Webhook.Handle)
	}
}

// ---- uniform response envelope ----

type envelope struct {
	Success bool          `json:"success"`
	Data    any           `json:"data,omitempty"`
	Error   *domain.Error `json:"error,omitempty"`
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data}); err != nil {
		log.Error().Err(err).Msg("write response failed")
	}
}

func writeErr(w http.ResponseWriter, err error) {
	writeErrStatus(w, err, statusFor(domain.CodeOf(err)))
}

func writeErrStatus(w http.ResponseWriter, err error, status int) {
	de := domain.AsError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(envelope{Success: false, Error: de}); encErr != nil {
		log.Error().Err(encErr).Msg("write error response failed")
	}
}

func statusFor(code string) int {
	switch code {
	case domain.CodeInvalidParams, domain.CodeConfigError, domain.CodePrebookFailed:
		return http.StatusBadRequest
	case domain.CodeNotFound, domain.CodeNoAvailability:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ---- handlers ----

type searchData struct {
	Hotels     []domain.Hotel `json:"hotels"`
	TotalCount int            `json:"totalCount"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
}

func (h *Handlers) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := intParam(q.Get("limit"), 50)
	offset := intParam(q.Get("offset"), 0)

	// A city filter switches to the static by-city listing.
	if city := q.Get("city"); city != "" {
		page, err := h.Search.SearchByCity(r.Context(), city, limit)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeData(w, http.StatusOK, searchData{
			Hotels:     page.Hotels,
			TotalCount: page.Total,
			Page:       1,
			PageSize:   limit,
		})
		return
	}

	page, err := h.Search.GetMaldivesHotels(r.Context(), app.SearchQuery{
		Stay:      domain.StayWindow{CheckIn: q.Get("checkIn"), CheckOut: q.Get("checkOut")},
		Occupancy: domain.Occupancy{Adults: intParam(q.Get("adults"), 2)},
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, searchData{
		Hotels:     page.Hotels,
		TotalCount: page.Total,
		Page:       offset/limit + 1,
		PageSize:   limit,
	})
}

func (h *Handlers) availability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	av, err := h.Search.CheckAvailability(r.Context(), app.AvailabilityQuery{
		HotelID:          q.Get("hotelId"),
		Stay:             domain.StayWindow{CheckIn: q.Get("checkIn"), CheckOut: q.Get("checkOut")},
		Occupancy:        domain.Occupancy{Adults: intParam(q.Get("adults"), 2), Children: intParam(q.Get("children"), 0)},
		Currency:         q.Get("currency"),
		GuestNationality: q.Get("guestNationality"),
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, av)
}

type bookRequest struct {
	OfferID       string           `json:"offerId"`
	UsePaymentSDK bool             `json:"usePaymentSdk"`
	GuestInfo     domain.GuestInfo `json:"guestInfo"`
	PaymentMethod string           `json:"paymentMethod"`
	HolderName    string           `json:"holderName"`
}

// book runs the full prebook→book sequence. A price-lock leg failure answers
// 400 with that leg's error: the offer is the thing the client can change.
func (h *Handlers) book(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, domain.NewError(domain.CodeInvalidParams, "invalid request body"))
		return
	}
	session, err := h.Booking.Prebook(r.Context(), req.OfferID, req.UsePaymentSDK)
	if err != nil {
		writeErrStatus(w, err, http.StatusBadRequest)
		return
	}
	booking, err := h.Booking.CreateBooking(r.Context(), session, req.GuestInfo, app.PaymentDetails{
		Method:     req.PaymentMethod,
		HolderName: req.HolderName,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusCreated, booking)
}

// prebook is the price-lock-only leg; failures answer 400 like the composite
// route's prebook leg.
func (h *Handlers) prebook(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, domain.NewError(domain.CodeInvalidParams, "invalid request body"))
		return
	}
	if req.OfferID == "" {
		writeErr(w, domain.NewError(domain.CodeInvalidParams, "offer ID is required"))
		return
	}
	session, err := h.Booking.Prebook(r.Context(), req.OfferID, req.UsePaymentSDK)
	if err != nil {
		writeErrStatus(w, err, http.StatusBadRequest)
		return
	}
	writeData(w, http.StatusOK, session)
}

func (h *Handlers) getBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.Booking.GetBooking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, booking)
}

func (h *Handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Booking.ListBookings(r.Context(), r.URL.Query().Get("guestId"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, bookings)
}

func (h *Handlers) cancelBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.Booking.CancelBooking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, booking)
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	hotel, err := h.Search.GetHotelDetails(r.Context(), chi.URLParam(r, "hotelId"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, hotel)
}

func (h *Handlers) cities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.Search.GetCities(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, cities)
}

// intParam parses a positive query integer, falling back to def for anything
// absent, malformed or non-positive so paging math never divides by zero.
func intParam(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
