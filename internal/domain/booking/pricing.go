package booking

import (
	"math"

	"github.com/highwaydelite/service-booking-web/pkg/domain"
)

// TaxPercent is the flat tax applied to one unit of the experience price.
const TaxPercent = 6

// Quote is the price breakdown for a quantity of an experience.
type Quote struct {
	UnitPrice int64 `json:"unit_price"`
	Quantity  int   `json:"quantity"`
	Subtotal  int64 `json:"subtotal"`
	Taxes     int64 `json:"taxes"`
	Total     int64 `json:"total"`
}

// NewQuote prices quantity units. Tax is charged on the unit price, rounded
// half up to the nearest currency unit, and is not multiplied by quantity.
// Quantities below one are priced as one. Quantity has no upper bound, but a
// total that does not fit in an int64 is refused with a validation error.
func NewQuote(price int64, quantity int) (Quote, error) {
	if quantity < 1 {
		quantity = 1
	}
	taxes := Tax(price)
	if price > 0 && int64(quantity) > (math.MaxInt64-taxes)/price {
		return Quote{}, domain.NewValidationError("quantity is too large")
	}
	subtotal := price * int64(quantity)
	return Quote{
		UnitPrice: price,
		Quantity:  quantity,
		Subtotal:  subtotal,
		Taxes:     taxes,
		Total:     subtotal + taxes,
	}, nil
}

// Tax returns round(price * 6%) using integer arithmetic.
func Tax(price int64) int64 {
	if price <= 0 {
		return 0
	}
	if price > (math.MaxInt64-50)/TaxPercent {
		return price/100*TaxPercent + (price%100*TaxPercent+50)/100
	}
	return (price*TaxPercent + 50) / 100
}
