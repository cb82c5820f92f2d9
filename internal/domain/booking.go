package domain

import "time"

// Board types we recognize. Unknown supplier values are passed through
// verbatim so new meal plans render without a code change.
const (
	BoardRoomOnly     = "room_only"
	BoardBreakfast    = "breakfast"
	BoardHalfBoard    = "half_board"
	BoardFullBoard    = "full_board"
	BoardAllInclusive = "all_inclusive"
)

type Rate struct {
	RateID             string             `json:"rateId"`
	BoardType          string             `json:"boardType"`
	BoardName          string             `json:"boardName,omitempty"`
	CancellationPolicy CancellationPolicy `json:"cancellationPolicy"`
	Price              Money              `json:"price"`
}

type CancellationPolicy struct {
	Refundable  bool   `json:"refundable"`
	Deadline    string `json:"deadline,omitempty"`
	Description string `json:"description,omitempty"`
}

// Room is one bookable room type within an availability response. OfferID is
// the opaque supplier token a prebook must reference.
type Room struct {
	OfferID      string   `json:"offerId"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	MaxOccupancy int      `json:"maxOccupancy"`
	BedType      string   `json:"bedType,omitempty"`
	Amenities    []string `json:"amenities,omitempty"`
	Rates        []Rate   `json:"rates"`
}

// Availability is built fresh per check and never mutated afterwards.
type Availability struct {
	HotelID  string `json:"hotelId"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Currency string `json:"currency"`
	Rooms    []Room `json:"rooms"`
}

// PrebookSession is a supplier-issued price lock. It is single-use and
// time-limited; ExpiresAt is checked at the moment of use, not by a timer.
type PrebookSession struct {
	PrebookID          string             `json:"prebookId"`
	OfferID            string             `json:"offerId"`
	HotelID            string             `json:"hotelId,omitempty"`
	RoomName           string             `json:"roomName,omitempty"`
	Price              Money              `json:"price"`
	CancellationPolicy CancellationPolicy `json:"cancellationPolicy"`
	ExpiresAt          time.Time          `json:"expiresAt"`
}

func (s PrebookSession) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingPending   BookingStatus = "pending"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
	BookingFailed    BookingStatus = "failed"
)

// Terminal reports whether the status can never transition again.
func (s BookingStatus) Terminal() bool {
	switch s {
	case BookingCancelled, BookingCompleted, BookingFailed:
		return true
	}
	return false
}

type GuestInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

// Booking mirrors supplier-owned booking state for the duration of a request.
// The supplier system is authoritative; nothing here is persisted locally.
type Booking struct {
	BookingID             string             `json:"bookingId"`
	Status                BookingStatus      `json:"status"`
	HotelConfirmationCode string             `json:"hotelConfirmationCode,omitempty"`
	HotelID               string             `json:"hotelId,omitempty"`
	HotelName             string             `json:"hotelName,omitempty"`
	CheckIn               string             `json:"checkIn,omitempty"`
	CheckOut              string             `json:"checkOut,omitempty"`
	Guest                 GuestInfo          `json:"guestInfo"`
	RoomName              string             `json:"roomName,omitempty"`
	BoardType             string             `json:"boardType,omitempty"`
	Price                 Money              `json:"price"`
	CancellationPolicy    CancellationPolicy `json:"cancellationPolicy"`
	CreatedAt             string             `json:"createdAt,omitempty"`
}

// StayWindow is a check-in/check-out date pair (ISO dates, checkout after
// checkin).
type StayWindow struct {
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
}

func (w StayWindow) IsZero() bool { return w.CheckIn == "" && w.CheckOut == "" }

// Valid requires both dates present and checkout strictly after checkin.
// ISO dates compare correctly as strings.
func (w StayWindow) Valid() bool {
	return w.CheckIn != "" && w.CheckOut != "" && w.CheckOut > w.CheckIn
}

type Occupancy struct {
	Adults   int `json:"adults"`
	Children int `json:"children,omitempty"`
}
