package viewmodel

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Veraticus/finyo-console/internal/insight"
	"github.com/Veraticus/finyo-console/internal/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NotAvailable stands in for any missing value.
const NotAvailable = insight.NotAvailable

// DateTimeLayout is used for every timestamp shown in the console.
const DateTimeLayout = "2006-01-02 15:04"

var printer = message.NewPrinter(language.English)

// FormatAED formats an amount as a grouped currency value, e.g. "AED 1,500.00".
func FormatAED(amount float64) string {
	return printer.Sprintf("AED %.2f", amount)
}

// FormatGrouped formats a number with thousands separators and up to two
// decimals, dropping trailing zeros.
func FormatGrouped(v float64) string {
	text := printer.Sprintf("%.2f", v)
	if strings.Contains(text, ".") {
		text = strings.TrimRight(strings.TrimRight(text, "0"), ".")
	}
	return text
}

// FormatFixed formats v to the given decimals, or N/A when missing.
func FormatFixed(v *float64, decimals int) string {
	if v == nil {
		return NotAvailable
	}
	return strconv.FormatFloat(*v, 'f', decimals, 64)
}

// FormatRaw formats v as the shortest exact decimal, or N/A when missing.
func FormatRaw(v *float64) string {
	return FormatFixed(v, -1)
}

// FormatPercent formats v followed by a percent sign, or N/A when missing.
func FormatPercent(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return FormatRaw(v) + "%"
}

// FormatTimestamp formats ts with DateTimeLayout in UTC, or N/A when missing.
func FormatTimestamp(ts *model.Timestamp) string {
	if ts == nil || ts.IsZero() {
		return NotAvailable
	}
	return ts.UTC().Format(DateTimeLayout)
}

// FormatOffer renders an offer as "1500 AED for 12 months".
func FormatOffer(o *model.Offer) string {
	if o == nil {
		return NotAvailable
	}
	return strconv.FormatFloat(o.Amount, 'f', -1, 64) + " AED for " + strconv.Itoa(o.TenureMonths) + " months"
}

// FormatID renders an id with a leading hash.
func FormatID(id int64) string {
	return "#" + strconv.FormatInt(id, 10)
}

// Or returns s, or N/A when s is blank.
func Or(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}

// CleanReasoning strips the quote and brace characters the scorer leaves
// in its reasoning text.
func CleanReasoning(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '\'', '{', '}':
			return -1
		}
		return r
	}, s)
	return Or(SanitizeForDisplay(s))
}

// TruncateString truncates a string to maxLen runes with an ellipsis.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// SanitizeForDisplay removes potentially problematic characters for terminal display.
func SanitizeForDisplay(s string) string {
	// Remove control characters and normalize whitespace
	s = strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' {
			return ' '
		}
		return r
	}, s)

	// Collapse multiple spaces
	return strings.Join(strings.Fields(s), " ")
}

// Bar returns a text bar of width cells filled in proportion to value/maxValue.
func Bar(value, maxValue float64, width int) string {
	if width <= 0 {
		return ""
	}
	ratio := 0.0
	if maxValue > 0 {
		ratio = value / maxValue
	}
	if ratio < 0 {
		ratio = 0
	} else if ratio > 1 {
		ratio = 1
	}

	filled := int(ratio * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
