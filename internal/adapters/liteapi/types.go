package liteapi

// Supplier wire contracts for the LiteAPI v3.0 surface this service consumes.
// These shapes stay at the boundary: everything crossing into the rest of the
// service goes through the normalizer in internal/app first.

// ---- static data ----

type StaticHotel struct {
	ID                        string   `json:"id"`
	Name                      string   `json:"name"`
	HotelDescription          string   `json:"hotelDescription,omitempty"`
	Currency                  string   `json:"currency,omitempty"`
	Country                   string   `json:"country,omitempty"`
	City                      string   `json:"city,omitempty"`
	Latitude                  float64  `json:"latitude,omitempty"`
	Longitude                 float64  `json:"longitude,omitempty"`
	Address                   string   `json:"address,omitempty"`
	Zip                       string   `json:"zip,omitempty"`
	MainPhoto                 string   `json:"main_photo,omitempty"`
	Stars                     int      `json:"stars,omitempty"`
	HotelImportantInformation string   `json:"hotelImportantInformation,omitempty"`
	HotelFacilities           []string `json:"hotelFacilities,omitempty"`
	Rating                    float64  `json:"rating,omitempty"`
	ReviewCount               int      `json:"reviewCount,omitempty"`
}

type HotelListResponse struct {
	Data  []StaticHotel `json:"data"`
	Total int           `json:"total,omitempty"`
}

type HotelDetailsResponse struct {
	Data StaticHotel `json:"data"`
}

type WireCity struct {
	City        string `json:"city"`
	Country     string `json:"country,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
}

type CitiesResponse struct {
	Data []WireCity `json:"data"`
}

// ---- rates ----

type WireOccupancy struct {
	Adults   int   `json:"adults"`
	Children []int `json:"children,omitempty"`
}

type RatesRequest struct {
	HotelIDs         []string        `json:"hotelIds"`
	Checkin          string          `json:"checkin"`
	Checkout         string          `json:"checkout"`
	Occupancies      []WireOccupancy `json:"occupancies"`
	GuestNationality string          `json:"guestNationality"`
	Currency         string          `json:"currency"`
}

type RatesResponse struct {
	Data []HotelRates `json:"data"`
}

type HotelRates struct {
	HotelID   string     `json:"hotelId"`
	Currency  string     `json:"currency"`
	RoomTypes []RoomType `json:"roomTypes"`
}

type RoomType struct {
	OfferID  string     `json:"offerId"`
	RoomName string     `json:"roomName,omitempty"`
	Rates    []WireRate `json:"rates"`
}

type WireRate struct {
	RateID               string              `json:"rateId"`
	RateType             string              `json:"rateType,omitempty"`
	Board                string              `json:"board,omitempty"`
	BoardName            string              `json:"boardName,omitempty"`
	MaxOccupancy         int                 `json:"maxOccupancy,omitempty"`
	RetailRate           *RetailRate         `json:"retailRate,omitempty"`
	CancellationPolicies *CancellationPolicy `json:"cancellationPolicies,omitempty"`
}

type RetailRate struct {
	Total []TotalPrice `json:"total"`
}

type TotalPrice struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type CancellationPolicy struct {
	CancelPolicyInfos []CancelPolicyInfo `json:"cancelPolicyInfos,omitempty"`
	RefundableTag     string             `json:"refundableTag,omitempty"`
}

type CancelPolicyInfo struct {
	CancelTime string  `json:"cancelTime,omitempty"`
	Amount     float64 `json:"amount,omitempty"`
	Currency   string  `json:"currency,omitempty"`
	Type       string  `json:"type,omitempty"`
}

// MinRatesResponse is the bulk cheapest-price response (POST /hotels).
type MinRatesResponse struct {
	Data []MinRate `json:"data"`
}

type MinRate struct {
	HotelID  string  `json:"hotelId"`
	Currency string  `json:"currency"`
	Price    float64 `json:"price"`
}

// ---- booking ----

type PrebookRequest struct {
	OfferID       string `json:"offerId"`
	UsePaymentSDK bool   `json:"usePaymentSdk,omitempty"`
}

type PrebookResponse struct {
	Data PrebookData `json:"data"`
}

type PrebookData struct {
	PrebookID            string              `json:"prebookId"`
	HotelID              string              `json:"hotelId,omitempty"`
	RoomName             string              `json:"roomName,omitempty"`
	Rate                 *WireRate           `json:"rate,omitempty"`
	Price                *TotalPrice         `json:"price,omitempty"`
	CancellationPolicies *CancellationPolicy `json:"cancellationPolicies,omitempty"`
	ExpiresAt            string              `json:"expiresAt,omitempty"`
}

type WireGuest struct {
	GuestFirstName string `json:"guestFirstName"`
	GuestLastName  string `json:"guestLastName"`
	GuestEmail     string `json:"guestEmail"`
	GuestPhone     string `json:"guestPhone,omitempty"`
}

type PaymentInfo struct {
	CardNumber string `json:"card_number,omitempty"`
	ExpMonth   string `json:"exp_month,omitempty"`
	ExpYear    string `json:"exp_year,omitempty"`
	CVC        string `json:"cvc,omitempty"`
}

type BookRequest struct {
	PrebookID     string       `json:"prebookId"`
	GuestInfo     WireGuest    `json:"guestInfo"`
	PaymentMethod string       `json:"paymentMethod,omitempty"`
	HolderName    string       `json:"holderName,omitempty"`
	PaymentInfo   *PaymentInfo `json:"paymentInfo,omitempty"`
}

type BookingResponse struct {
	Data BookingData `json:"data"`
}

type BookingData struct {
	BookingID             string              `json:"bookingId"`
	Status                string              `json:"status"`
	HotelConfirmationCode string              `json:"hotelConfirmationCode,omitempty"`
	Hotel                 *BookedHotel        `json:"hotel,omitempty"`
	Checkin               string              `json:"checkin,omitempty"`
	Checkout              string              `json:"checkout,omitempty"`
	GuestInfo             *WireGuest          `json:"guestInfo,omitempty"`
	Rate                  *WireRate           `json:"rate,omitempty"`
	Price                 *TotalPrice         `json:"price,omitempty"`
	CancellationPolicies  *CancellationPolicy `json:"cancellationPolicies,omitempty"`
	CreatedAt             string              `json:"createdAt,omitempty"`
}

type BookedHotel struct {
	HotelID string `json:"hotelId"`
	Name    string `json:"name"`
}

type BookingListResponse struct {
	Data []BookingData `json:"data"`
}

// supplierError is the error body shape LiteAPI returns on non-2xx.
type supplierError struct {
	Message string `json:"message,omitempty"`
	Error   *struct {
		Code    string `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"error,omitempty"`
}
