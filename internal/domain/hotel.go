package domain

// Hotel is the canonical, supplier-independent hotel shape served to the
// presentation layer. StarRating is always set (0 when the supplier omits
// stars) so rendering never has to branch on nil.
type Hotel struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	StarRating  int          `json:"starRating"`
	Description string       `json:"description,omitempty"`
	Address     Address      `json:"address"`
	Location    Location     `json:"location"`
	Images      []Image      `json:"images"`
	Amenities   []string     `json:"amenities"`
	Reviews     *ReviewScore `json:"reviews,omitempty"`
	MinRate     *Money       `json:"minRate,omitempty"`
}

type Address struct {
	Line1      string `json:"line1,omitempty"`
	City       string `json:"city,omitempty"`
	Country    string `json:"country,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Image struct {
	URL       string `json:"url"`
	Caption   string `json:"caption,omitempty"`
	IsPrimary bool   `json:"isPrimary,omitempty"`
}

// PrimaryImage returns the image flagged primary, falling back to the first
// image when none is flagged. ok is false for an empty list.
func (h Hotel) PrimaryImage() (Image, bool) {
	for _, img := range h.Images {
		if img.IsPrimary {
			return img, true
		}
	}
	if len(h.Images) > 0 {
		return h.Images[0], true
	}
	return Image{}, false
}

type ReviewScore struct {
	Rating float64 `json:"rating"`
	Count  int     `json:"count"`
}

type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// HotelPage is one page of canonical hotels plus the supplier-reported total.
type HotelPage struct {
	Hotels []Hotel `json:"hotels"`
	Total  int     `json:"total"`
}

type City struct {
	Name        string `json:"city"`
	Country     string `json:"country,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
}
