// Package shipping estimates flat delivery fees from a Brazilian postal code (CEP).
package shipping

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidPostalCode = errors.New("postal code must have 8 digits")

// FallbackFee applies to codes outside every known region.
var FallbackFee = decimal.RequireFromString("35.00")

const FallbackRegion = "Outras regiões"

type Range struct {
	From, To int
	Region   string
	Fee      decimal.Decimal
}

// Ranges are checked in order; the first inclusive match wins.
var Ranges = []Range{
	{From: 1000000, To: 19999999, Region: "SP", Fee: decimal.RequireFromString("15.00")},
	{From: 20000000, To: 29999999, Region: "RJ/ES", Fee: decimal.RequireFromString("20.00")},
	{From: 30000000, To: 39999999, Region: "MG", Fee: decimal.RequireFromString("22.00")},
	{From: 40000000, To: 49999999, Region: "BA/SE", Fee: decimal.RequireFromString("28.00")},
	{From: 70000000, To: 79999999, Region: "Centro-Oeste", Fee: decimal.RequireFromString("30.00")},
	{From: 80000000, To: 89999999, Region: "PR/SC", Fee: decimal.RequireFromString("22.00")},
	{From: 90000000, To: 99999999, Region: "RS", Fee: decimal.RequireFromString("25.00")},
}

type Quote struct {
	PostalCode string          `json:"postal_code"`
	Region     string          `json:"region"`
	Fee        decimal.Decimal `json:"fee"`
}

// Normalize strips every non-digit and requires exactly 8 digits.
func Normalize(postalCode string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, postalCode)
	if len(digits) != 8 {
		return "", ErrInvalidPostalCode
	}
	return digits, nil
}

// Estimate returns the fee for a postal code.
func Estimate(postalCode string) (Quote, error) {
	digits, err := Normalize(postalCode)
	if err != nil {
		return Quote{}, err
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return Quote{}, ErrInvalidPostalCode
	}

	for _, r := range Ranges {
		if n >= r.From && n <= r.To {
			return Quote{PostalCode: digits, Region: r.Region, Fee: r.Fee}, nil
		}
	}
	return Quote{PostalCode: digits, Region: FallbackRegion, Fee: FallbackFee}, nil
}
