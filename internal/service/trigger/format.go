package trigger

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	dayLayout     = "2006-01-02"
	displayLayout = "1/2/2006"
)

var errUnparseableDate = errors.New("unparseable date")

var printer = message.NewPrinter(language.English)

// formatCurrency renders an amount with a dollar sign, grouping and two
// decimals.
func formatCurrency(amount float64) string {
	if amount < 0 {
		return "-" + printer.Sprintf("$%.2f", -amount)
	}
	return printer.Sprintf("$%.2f", amount)
}

func formatDate(t time.Time) string {
	return t.Format(displayLayout)
}

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// parseDate accepts a bare YYYY-MM-DD (midnight in loc) or a full timestamp.
// Timestamps without an offset are read in loc.
func parseDate(raw string, loc *time.Location) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errUnparseableDate
	}
	if len(raw) == len(dayLayout) {
		t, err := time.ParseInLocation(dayLayout, raw, loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", errUnparseableDate, raw)
		}
		return t, nil
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", errUnparseableDate, raw)
}

func pluralUnits(n int) string {
	if n == 1 {
		return "unit"
	}
	return "units"
}
