package estimate

import (
	"fmt"
	"strings"
)

// Offer describes a contractor and the ratio applied to the estimate total
// to obtain its comparison bid.
type Offer struct {
	Contractor string  `json:"contractor" yaml:"contractor"`
	Rating     float64 `json:"rating" yaml:"rating"`
	Reviews    int     `json:"reviews" yaml:"reviews"`
	Experience string  `json:"experience" yaml:"experience"`
	Ratio      float64 `json:"ratio" yaml:"ratio"`
}

// Bid is an offer priced against a concrete total
type Bid struct {
	Offer
	Price float64
}

// DefaultOffers are illustrative contractors. Their ratios are placeholders,
// not derived from real contractor pricing.
func DefaultOffers() []Offer {
	return []Offer{
		{Contractor: "СтройЭксперт", Rating: 4.8, Reviews: 127, Experience: "12 лет", Ratio: 1.0},
		{Contractor: "РемонтПро", Rating: 4.6, Reviews: 89, Experience: "8 лет", Ratio: 1.15},
		{Contractor: "МастерДом", Rating: 4.9, Reviews: 234, Experience: "15 лет", Ratio: 0.95},
	}
}

// Bids prices every offer against total, keeping the offer order
func Bids(total float64, offers []Offer) []Bid {
	bids := make([]Bid, 0, len(offers))
	for _, o := range offers {
		bids = append(bids, Bid{Offer: o, Price: total * o.Ratio})
	}
	return bids
}

// Cheapest returns the lowest bid, or false for an empty list
func Cheapest(bids []Bid) (Bid, bool) {
	if len(bids) == 0 {
		return Bid{}, false
	}
	best := bids[0]
	for _, b := range bids[1:] {
		if b.Price < best.Price {
			best = b
		}
	}
	return best, true
}

// Urgency is how fast the work has to be done
type Urgency string

const (
	UrgencyNormal   Urgency = "normal"
	UrgencyFast     Urgency = "fast"
	UrgencyVeryFast Urgency = "very-fast"
)

// ParseUrgency accepts the urgency names, an empty string meaning normal
func ParseUrgency(s string) (Urgency, error) {
	switch u := Urgency(strings.ToLower(strings.TrimSpace(s))); u {
	case "", UrgencyNormal:
		return UrgencyNormal, nil
	case UrgencyFast, UrgencyVeryFast:
		return u, nil
	default:
		return "", fmt.Errorf("unknown urgency %q (want normal, fast or very-fast)", s)
	}
}

// Factor is the multiplier applied to the total: +20% fast, +40% very fast
func (u Urgency) Factor() float64 {
	switch u {
	case UrgencyFast:
		return 1.2
	case UrgencyVeryFast:
		return 1.4
	default:
		return 1.0
	}
}

// Label returns the Russian display name of the urgency
func (u Urgency) Label() string {
	switch u {
	case UrgencyFast:
		return "Срочно (+20%)"
	case UrgencyVeryFast:
		return "Очень срочно (+40%)"
	default:
		return "Обычные сроки"
	}
}

// Quote is a summary with urgency applied and contractor bids priced
type Quote struct {
	Summary
	Urgency Urgency
	Total   float64
	Bids    []Bid
}

// NewQuote aggregates items and prices offers against the total after the
// urgency surcharge.
func NewQuote(items []LineItem, urgency Urgency, offers []Offer) Quote {
	summary := Aggregate(items)
	total := summary.GrandTotal * urgency.Factor()
	return Quote{
		Summary: summary,
		Urgency: urgency,
		Total:   total,
		Bids:    Bids(total, offers),
	}
}
