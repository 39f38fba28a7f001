// Package convert evaluates "<expression> <unit> > <unit>" queries such as
// "3*2 km > mi" or "21 c > f".
package convert

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	units "github.com/bcicen/go-units"
	"github.com/expr-lang/expr"
)

// The library knows calories but not kilocalories
var kiloCalorie = units.Kilo(units.Calorie)

var (
	ErrFormat   = errors.New("expected `<value> <unit> > <unit>`")
	ErrNoUnit   = errors.New("no unit")
	ErrNotValue = errors.New("expression is not a number")
)

// Short tokens people type in chat, mapped to the unit names the
// conversion library knows. Anything else is looked up as is.
var aliases = map[string]string{
	"ns":    "nanosecond",
	"ms":    "millisecond",
	"s":     "second",
	"sec":   "second",
	"min":   "minute",
	"h":     "hour",
	"d":     "day",
	"y":     "year",
	"mm":    "millimeter",
	"cm":    "centimeter",
	"dm":    "decimeter",
	"m":     "meter",
	"km":    "kilometer",
	"in":    "inch",
	"ft":    "foot",
	"yd":    "yard",
	"mi":    "mile",
	"ml":    "milliliter",
	"cl":    "centiliter",
	"dl":    "deciliter",
	"l":     "liter",
	"fl oz": "customary fluid ounce",
	"mg":    "milligram",
	"g":     "gram",
	"kg":    "kilogram",
	"t":     "megagram",
	"oz":    "ounce",
	"lb":    "pound",
	"st":    "stone",
	"j":     "joule",
	"kj":    "kilojoule",
	"cal":   "calorie",
	"kcal":  "kilocalorie",
	"w":     "watt",
	"kw":    "kilowatt",
	"pa":    "pascal",
	"kpa":   "kilopascal",
	"atm":   "standard atmosphere",
	"b":     "bar",
	"psi":   "pound-force per square inch",
	"k":     "kelvin",
	"c":     "celsius",
	"f":     "fahrenheit",
}

type Result struct {
	Value float64
	From  string
	To    string
}

func (r Result) String() string {
	return fmt.Sprintf("%.5f%s", r.Value, r.To)
}

// Convert evaluates the numeric expression on the left of '>' and converts it
// from the unit written after it to the unit on the right
func Convert(query string) (Result, error) {
	left, to, found := strings.Cut(query, ">")
	if !found {
		return Result{}, ErrFormat
	}
	to = strings.TrimSpace(to)
	left = strings.TrimSpace(left)

	value, fromUnit, from, err := splitQuantity(left)
	if err != nil {
		return Result{}, err
	}
	toUnit, err := Lookup(to)
	if err != nil {
		return Result{}, err
	}

	converted, err := units.ConvertFloat(value, fromUnit, toUnit)
	if err != nil {
		return Result{}, err
	}
	return Result{Value: converted.Float(), From: from, To: to}, nil
}

// splitQuantity separates "<expression> <unit>". The unit may start at any
// letter that follows a non-letter, so "1e3 m" is tried as "e3 m" first and
// then as "m". The first split where both halves make sense wins.
func splitQuantity(left string) (float64, units.Unit, string, error) {
	var firstErr error
	for index, r := range left {
		if !unicode.IsLetter(r) {
			continue
		}
		if index > 0 {
			previous, _ := utf8.DecodeLastRuneInString(left[:index])
			if unicode.IsLetter(previous) {
				continue
			}
		}
		from := strings.TrimSpace(left[index:])
		unit, err := Lookup(from)
		if err == nil {
			var value float64
			if value, err = Evaluate(left[:index]); err == nil {
				return value, unit, from, nil
			}
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = fmt.Errorf("%w: missing source unit", ErrNoUnit)
	}
	return 0, units.Unit{}, "", firstErr
}

// Evaluate computes a plain arithmetic expression such as "2*(3+1.5)"
func Evaluate(expression string) (float64, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return 0, ErrNotValue
	}
	out, err := expr.Eval(expression, nil)
	if err != nil {
		return 0, fmt.Errorf("could not evaluate %q: %w", expression, err)
	}
	switch v := out.(type) {
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrNotValue, out)
	}
}

// Lookup resolves a unit token, returning ErrNoUnit for anything unknown
func Lookup(token string) (unit units.Unit, err error) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return unit, ErrNoUnit
	}
	if name, ok := aliases[token]; ok {
		token = name
	}
	if unit, err = units.Find(token); err != nil {
		return unit, fmt.Errorf("%w: %s", ErrNoUnit, token)
	}
	return unit, nil
}
