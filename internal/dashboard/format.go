package dashboard

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// notANumber is shown in place of an amount that is infinite or NaN.
const notANumber = "n/a"

var (
	ghs = money.GetCurrency(money.GHS)
	usd = money.GetCurrency(money.USD)
)

// formatDigits rounds v to the currency's fraction digits and groups the integer part
// with the currency's separators. The sign is returned apart from the digits.
func formatDigits(v float64, c *money.Currency) (digits string, negative bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return notANumber, false
	}

	d := decimal.NewFromFloat(v).Round(int32(c.Fraction))
	whole, frac, _ := strings.Cut(d.Abs().StringFixed(int32(c.Fraction)), ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(c.Thousand)
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteString(c.Decimal)
		b.WriteString(frac)
	}
	return b.String(), d.IsNegative()
}

// FormatGHS renders v as "GHS 1,234.56". The sign follows the code: "GHS -12.50".
func FormatGHS(v float64) string {
	digits, negative := formatDigits(v, ghs)
	if negative {
		digits = "-" + digits
	}
	return ghs.Code + " " + digits
}

// FormatUSD renders v as "$1,234.56", or "-$1,234.56" when negative.
func FormatUSD(v float64) string {
	digits, negative := formatDigits(v, usd)
	s := strings.Replace(strings.Replace(usd.Template, "1", digits, 1), "$", usd.Grapheme, 1)
	if negative {
		s = "-" + s
	}
	return s
}

// FormatPercent renders v with two decimals and a trailing "%".
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// FormatAmount renders a coin quantity without rounding.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
