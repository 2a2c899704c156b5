// Package numwords spells whole rupee amounts in English using the Indian
// numbering scale (crore, lakh, thousand, hundred), as required for the
// "amount in words" line of a tax invoice.
package numwords

import (
	"strings"

	"gstbill/internal/domain"
)

const (
	crore    = 10_000_000
	lakh     = 100_000
	thousand = 1_000
)

// MaxAmount is the largest amount Convert accepts. The crore band is spelled
// by the same 0-999 routine as the other bands, so anything at or beyond
// 1000 crore cannot be expressed.
const MaxAmount int64 = 999*crore + crore - 1

var ones = [...]string{
	"", "ONE", "TWO", "THREE", "FOUR", "FIVE", "SIX", "SEVEN", "EIGHT", "NINE",
	"TEN", "ELEVEN", "TWELVE", "THIRTEEN", "FOURTEEN", "FIFTEEN", "SIXTEEN",
	"SEVENTEEN", "EIGHTEEN", "NINETEEN",
}

var tens = [...]string{
	"", "", "TWENTY", "THIRTY", "FORTY", "FIFTY", "SIXTY", "SEVENTY", "EIGHTY", "NINETY",
}

type band struct {
	size  int64
	scale string
}

var bands = []band{
	{crore, "CRORE"},
	{lakh, "LAKH"},
	{thousand, "THOUSAND"},
}

// Convert returns the words for amount followed by "ONLY", e.g.
// 1234567 -> "TWELVE LAKH THIRTY FOUR THOUSAND FIVE HUNDRED SIXTY SEVEN ONLY".
func Convert(amount int64) (string, error) {
	switch {
	case amount < 0:
		return "", domain.ErrNegativeAmount
	case amount > MaxAmount:
		return "", domain.ErrAmountOutOfRange
	case amount == 0:
		return "ZERO ONLY", nil
	}

	words := make([]string, 0, 12)
	rest := amount
	for _, b := range bands {
		n := rest / b.size
		rest %= b.size
		if n > 0 {
			words = appendHundreds(words, int(n))
			words = append(words, b.scale)
		}
	}
	words = appendHundreds(words, int(rest))

	return strings.Join(words, " ") + " ONLY", nil
}

// appendHundreds spells n (0-999). Teens are emitted as one word.
func appendHundreds(words []string, n int) []string {
	if n >= 100 {
		words = append(words, ones[n/100], "HUNDRED")
		n %= 100
	}
	switch {
	case n >= 20:
		words = append(words, tens[n/10])
		if n%10 > 0 {
			words = append(words, ones[n%10])
		}
	case n > 0:
		words = append(words, ones[n])
	}
	return words
}
