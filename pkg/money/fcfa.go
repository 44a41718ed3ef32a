// Package money formatea montos en francos CFA (FCFA), moneda sin decimales.
package money

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Symbol símbolo de la moneda.
const Symbol = "FCFA"

var printer = message.NewPrinter(language.French)

// Format devuelve "<entero agrupado fr-FR> FCFA" redondeando a 0 decimales.
// El separador de miles es el del locale francés (espacio fino insecable).
func Format(amount decimal.Decimal) string {
	return group(amount) + " " + Symbol
}

// FormatPlain igual que Format pero con espacios normales como separador de miles
// (las fuentes estándar del PDF no tienen el espacio fino).
func FormatPlain(amount decimal.Decimal) string {
	return plainSpaces(group(amount)) + " " + Symbol
}

// FormatShort versión compacta para tarjetas: 1.5M FCFA, 250K FCFA.
func FormatShort(amount decimal.Decimal) string {
	million := decimal.NewFromInt(1_000_000)
	thousand := decimal.NewFromInt(1_000)
	switch {
	case amount.GreaterThanOrEqual(million):
		return amount.Div(million).StringFixed(1) + "M " + Symbol
	case amount.GreaterThanOrEqual(thousand):
		return amount.Div(thousand).StringFixed(0) + "K " + Symbol
	default:
		return Format(amount)
	}
}

// FromInt atajo para montos enteros.
func FromInt(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func group(amount decimal.Decimal) string {
	n := amount.Round(0).IntPart()
	if n < 0 {
		return "-" + printer.Sprintf("%d", -n)
	}
	return printer.Sprintf("%d", n)
}

func plainSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Zs, r) {
			return ' '
		}
		return r
	}, s)
}
