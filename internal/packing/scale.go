package packing

import "math"

// Per-day need rates of the base clothing items.
const (
	RateTShirts   = 1.0
	RatePants     = 0.5
	RateUnderwear = 1.0
	RateSocks     = 1.0
)

// base is the quantity floor a pack style starts from.
func (s PackStyle) base() float64 {
	switch s {
	case PackLight, PackMedium:
		return 1
	case PackHeavy:
		return 2
	}
	panic("packing: unknown pack style " + string(s))
}

// slope is how fast a pack style's quantities grow per day of need.
func (s PackStyle) slope() float64 {
	switch s {
	case PackLight:
		return 0.35
	case PackMedium:
		return 0.6
	case PackHeavy:
		return 1.0
	}
	panic("packing: unknown pack style " + string(s))
}

// Quantity scales a per-day need rate over the trip length:
// max(1, round(base + slope*perDay*days)).
func Quantity(style PackStyle, perDay float64, days int) int {
	// Explicit conversion forbids fusing into a multiply-add.
	growth := float64(style.slope() * perDay * float64(days))
	qty := int(math.Round(style.base() + growth))
	return max(1, qty)
}

// ShoeQuantity is 2 pairs for heavy packers and 1 otherwise.
func ShoeQuantity(style PackStyle) int {
	if style == PackHeavy {
		return 2
	}
	return 1
}
