// Package units canonicalizes free-text measurement units and converts
// amounts between them. Conversions go through a common base (grams for
// weight, milliliters for volume); volume units are bridged to grams using
// a water-density approximation of 1 g/ml, which is an explicit
// simplification rather than a physically exact figure.
package units

import (
	"strings"
)

// Unit is a canonical measurement unit.
type Unit string

const (
	Gram       Unit = "g"
	Kilogram   Unit = "kg"
	Ounce      Unit = "oz"
	Pound      Unit = "lb"
	Milliliter Unit = "ml"
	Liter      Unit = "l"
	Cup        Unit = "cup"
	Tablespoon Unit = "tbsp"
	Teaspoon   Unit = "tsp"
	FluidOunce Unit = "floz"
	Each       Unit = "each"
)

// Domain groups units by what they measure.
type Domain int

const (
	DomainUnknown Domain = iota
	DomainWeight
	DomainVolume
	DomainCount
)

// Domain returns the measurement domain of a unit.
func (u Unit) Domain() Domain {
	switch u {
	case Gram, Kilogram, Ounce, Pound:
		return DomainWeight
	case Milliliter, Liter, Cup, Tablespoon, Teaspoon, FluidOunce:
		return DomainVolume
	case Each:
		return DomainCount
	default:
		return DomainUnknown
	}
}

// aliases maps common singular/plural/abbreviated spellings onto canonical units.
var aliases = map[string]Unit{
	"g": Gram, "gram": Gram, "grams": Gram, "gr": Gram,
	"kg": Kilogram, "kilogram": Kilogram, "kilograms": Kilogram,
	"oz": Ounce, "ounce": Ounce, "ounces": Ounce,
	"lb": Pound, "lbs": Pound, "pound": Pound, "pounds": Pound,
	"ml": Milliliter, "milliliter": Milliliter, "milliliters": Milliliter,
	"l": Liter, "liter": Liter, "liters": Liter, "litre": Liter, "litres": Liter,
	"cup": Cup, "cups": Cup,
	"tbsp": Tablespoon, "tbsp.": Tablespoon, "tablespoon": Tablespoon, "tablespoons": Tablespoon,
	"tsp": Teaspoon, "tsp.": Teaspoon, "teaspoon": Teaspoon, "teaspoons": Teaspoon,
	"fl oz": FluidOunce, "floz": FluidOunce, "fl. oz": FluidOunce,
	"fluid ounce": FluidOunce, "fluid ounces": FluidOunce,
	"each": Each, "ea": Each, "unit": Each, "units": Each,
	"piece": Each, "pieces": Each, "pc": Each, "pcs": Each, "ct": Each, "count": Each,
}

// Normalize maps a free-text unit string onto the canonical set.
// Unrecognized strings return ok=false; callers treat that as "no
// conversion possible", not an error.
func Normalize(raw string) (Unit, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.Join(strings.Fields(key), " ")
	u, ok := aliases[key]
	return u, ok
}

// gramsEquivalent maps each convertible unit to its weight in grams.
// Volume units are expressed via water density (1 g/ml). Each-count
// units are deliberately absent: pieces have no mass.
var gramsEquivalent = map[Unit]float64{
	Gram:       1,
	Kilogram:   1000,
	Ounce:      28.3495,
	Pound:      453.592,
	Milliliter: 1,
	Liter:      1000,
	Cup:        240,
	Tablespoon: 15,
	Teaspoon:   5,
	FluidOunce: 29.5735,
}

// Convert converts an amount between two canonical units through the gram
// base. Cross-domain conversions (weight<->volume) use the water-density
// approximation. Converting to or from a count unit returns ok=false.
func Convert(amount float64, from, to Unit) (float64, bool) {
	if from == to {
		return amount, true
	}
	ff, okFrom := gramsEquivalent[from]
	tf, okTo := gramsEquivalent[to]
	if !okFrom || !okTo {
		return 0, false
	}
	return amount * ff / tf, true
}

// ToGrams converts an amount in a weight unit to grams. Volume and count
// units return ok=false; the caller should fall through to the volume or
// count path instead of estimating.
func ToGrams(amount float64, u Unit) (float64, bool) {
	switch u {
	case Gram:
		return amount, true
	case Kilogram:
		return amount * 1000, true
	case Ounce:
		return amount * 28.3495, true
	case Pound:
		return amount * 453.592, true
	default:
		return 0, false
	}
}

// ToMilliliters converts an amount in a volume unit to milliliters.
//
// Ambiguous "oz" is treated as a fluid ounce on this path. Recipe lines
// and product size strings routinely write "oz" for both domains and the
// catalog carries no unit-of-measure metadata to disambiguate, so the
// weight path claims "oz" first and this path picks it up only when the
// weight interpretation was not applicable.
func ToMilliliters(amount float64, u Unit) (float64, bool) {
	switch u {
	case Milliliter:
		return amount, true
	case Liter:
		return amount * 1000, true
	case Cup:
		return amount * 240, true
	case Tablespoon:
		return amount * 15, true
	case Teaspoon:
		return amount * 5, true
	case FluidOunce, Ounce:
		return amount * 29.5735, true
	default:
		return 0, false
	}
}
