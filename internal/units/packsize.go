package units

import (
	"regexp"
	"strconv"
	"strings"
)

// PackSize is a parsed (quantity, unit) pair from a product size string.
// For Each-unit packs the quantity is the piece count.
type PackSize struct {
	Quantity float64
	Unit     Unit
}

// Label renders the pack size the way it appeared on the package,
// e.g. "12 oz" or "6 ct".
func (p PackSize) Label() string {
	q := strconv.FormatFloat(p.Quantity, 'f', -1, 64)
	if p.Unit == Each {
		return q + " ct"
	}
	return q + " " + string(p.Unit)
}

// packSizeRe matches a leading numeric quantity followed by a known unit
// token. Multi-word tokens ("fl oz") must come before their prefixes
// ("oz") so the longest alternative wins.
var packSizeRe = regexp.MustCompile(`(?i)([\d.]+)\s*(fl\s*\.?\s*oz|floz|fluid ounces?|ounces?|oz|pounds?|lbs?|kilograms?|kg|grams?|g|milliliters?|ml|liters?|l|cups?|tablespoons?|tbsp|teaspoons?|tsp|ct|count|each|pcs?|pieces?)\b`)

// ParsePackSize extracts a (quantity, unit) pair from a free-text package
// size string such as "12 oz", "1.5 l" or "6 ct". Returns ok=false if no
// recognizable pair is found; callers fall back to flat per-unit costing.
func ParsePackSize(sizeText string) (PackSize, bool) {
	m := packSizeRe.FindStringSubmatch(sizeText)
	if m == nil {
		return PackSize{}, false
	}
	qty, err := strconv.ParseFloat(m[1], 64)
	if err != nil || qty <= 0 {
		return PackSize{}, false
	}

	rawUnit := strings.ToLower(strings.Join(strings.Fields(m[2]), " "))
	var u Unit
	if strings.HasPrefix(rawUnit, "fl") {
		u = FluidOunce
	} else {
		var ok bool
		u, ok = Normalize(rawUnit)
		if !ok {
			return PackSize{}, false
		}
	}

	// Count packs hold at least one piece.
	if u == Each && qty < 1 {
		qty = 1
	}
	return PackSize{Quantity: qty, Unit: u}, true
}
