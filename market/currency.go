// Package market binds cashflows to market data: a snapshot store of curves,
// indices and FX rates, the request/data pair that couples cashflows to the
// store positionally, and the model that resolves requests into data.
package market

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency is a closed set of supported currencies. Equality is by
// enumerant.
type Currency int

const (
	NoCurrency Currency = iota
	USD
	EUR
	GBP
	CHF
	JPY
	KRW
	CLP
	CLF
	BRL
	MXN
	COP
	PEN
	NOK
	SEK
	AUD
	CAD
)

type currencyInfo struct {
	code      string
	name      string
	symbol    string
	precision int32
	numeric   int
}

var currencyTable = map[Currency]currencyInfo{
	USD: {"USD", "US Dollar", "$", 2, 840},
	EUR: {"EUR", "Euro", "€", 2, 978},
	GBP: {"GBP", "Pound Sterling", "£", 2, 826},
	CHF: {"CHF", "Swiss Franc", "Fr", 2, 756},
	JPY: {"JPY", "Japanese Yen", "¥", 0, 392},
	KRW: {"KRW", "South Korean Won", "₩", 0, 410},
	CLP: {"CLP", "Chilean Peso", "$", 0, 152},
	CLF: {"CLF", "Unidad de Fomento", "UF", 4, 990},
	BRL: {"BRL", "Brazilian Real", "R$", 2, 986},
	MXN: {"MXN", "Mexican Peso", "$", 2, 484},
	COP: {"COP", "Colombian Peso", "$", 2, 170},
	PEN: {"PEN", "Peruvian Sol", "S/", 2, 604},
	NOK: {"NOK", "Norwegian Krone", "kr", 2, 578},
	SEK: {"SEK", "Swedish Krona", "kr", 2, 752},
	AUD: {"AUD", "Australian Dollar", "A$", 2, 36},
	CAD: {"CAD", "Canadian Dollar", "C$", 2, 124},
}

func (c Currency) Code() string {
	if info, ok := currencyTable[c]; ok {
		return info.code
	}
	return "???"
}

func (c Currency) Name() string {
	if info, ok := currencyTable[c]; ok {
		return info.name
	}
	return "unknown"
}

func (c Currency) Symbol() string {
	if info, ok := currencyTable[c]; ok {
		return info.symbol
	}
	return "?"
}

// Precision is the number of decimal places amounts are quoted to.
func (c Currency) Precision() int32 {
	if info, ok := currencyTable[c]; ok {
		return info.precision
	}
	return 2
}

// NumericCode is the ISO 4217 numeric code.
func (c Currency) NumericCode() int {
	if info, ok := currencyTable[c]; ok {
		return info.numeric
	}
	return 0
}

func (c Currency) String() string {
	return c.Code()
}

// Round rounds an amount to the currency's precision using half-up decimal
// rounding, avoiding float artifacts at the cent boundary.
func (c Currency) Round(amount float64) float64 {
	v, _ := decimal.NewFromFloat(amount).Round(c.Precision()).Float64()
	return v
}

// Format renders an amount with the currency code at the currency's
// precision.
func (c Currency) Format(amount float64) string {
	return fmt.Sprintf("%s %s", decimal.NewFromFloat(amount).StringFixed(c.Precision()), c.Code())
}

// CurrencyFromCode resolves an ISO code to its enumerant.
func CurrencyFromCode(code string) (Currency, error) {
	for c, info := range currencyTable {
		if info.code == code {
			return c, nil
		}
	}
	return NoCurrency, fmt.Errorf("CurrencyFromCode: unknown currency %q", code)
}
