package promo

// Outcome is the result of applying a promo lookup to a total. It is derived
// from the original total every time, so applying a second code replaces the
// first instead of stacking on it.
type Outcome struct {
	Code            string
	Applied         bool
	Promo           *Promo
	OriginalTotal   int64
	DiscountedTotal int64
}

// Evaluate applies p to total. A nil promo (invalid or unknown code) leaves
// the total unchanged and marks nothing applied.
func Evaluate(code string, total int64, p *Promo) Outcome {
	if p == nil {
		return Outcome{Code: code, OriginalTotal: total, DiscountedTotal: total}
	}
	return Outcome{
		Code:            p.Code(),
		Applied:         true,
		Promo:           p,
		OriginalTotal:   total,
		DiscountedTotal: p.Apply(total),
	}
}

// None is the outcome before any code was tried.
func None(total int64) Outcome {
	return Outcome{OriginalTotal: total, DiscountedTotal: total}
}

// Discount is how much the promo took off.
func (o Outcome) Discount() int64 {
	return o.OriginalTotal - o.DiscountedTotal
}
