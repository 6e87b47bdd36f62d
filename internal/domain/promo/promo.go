package promo

import (
	"fmt"
	"math"
	"strings"
)

// DiscountType represents the type of discount.
type DiscountType string

const (
	DiscountTypePercent DiscountType = "percent"
	DiscountTypeFlat    DiscountType = "flat"
)

// Promo is a discount confirmed by the booking API for a code.
type Promo struct {
	code         string
	discountType DiscountType
	value        float64 // percentage (0-100) or flat amount in currency units
}

// NewPromo validates an upstream promo. Values the calculator cannot apply
// sensibly are rejected so the caller can treat the code as invalid.
func NewPromo(code string, discountType DiscountType, value float64) (*Promo, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("promo code is required")
	}
	if discountType != DiscountTypePercent && discountType != DiscountTypeFlat {
		return nil, fmt.Errorf("invalid discount type: %s", discountType)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return nil, fmt.Errorf("discount value must be a non-negative number")
	}
	if discountType == DiscountTypePercent && value > 100 {
		return nil, fmt.Errorf("percentage discount cannot exceed 100")
	}
	return &Promo{code: code, discountType: discountType, value: value}, nil
}

// Apply returns the discounted total. Percent discounts round half up; flat
// discounts never drive the total below zero.
func (p *Promo) Apply(total int64) int64 {
	switch p.discountType {
	case DiscountTypePercent:
		return roundAmount(float64(total) * (1 - p.value/100))
	case DiscountTypeFlat:
		discounted := float64(total) - p.value
		if discounted < 0 {
			return 0
		}
		return roundAmount(discounted)
	}
	return total
}

// Label describes the discount for display, e.g. "10% off" or "₹200 off".
func (p *Promo) Label(currency string) string {
	if p.discountType == DiscountTypePercent {
		return fmt.Sprintf("%s%% off", formatValue(p.value))
	}
	return fmt.Sprintf("%s%s off", currency, formatValue(p.value))
}

// Getters.
func (p *Promo) Code() string               { return p.code }
func (p *Promo) DiscountType() DiscountType { return p.discountType }
func (p *Promo) Value() float64             { return p.value }

// roundAmount rounds half up. Amounts here are never negative, where
// math.Round's half-away-from-zero is the same thing.
func roundAmount(v float64) int64 {
	return int64(math.Round(v))
}

func formatValue(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
