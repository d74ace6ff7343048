package normalize

import (
	"fmt"
	"strings"
	"time"

	dps "github.com/markusmobius/go-dateparser"
)

// DateLayout is the canonical output layout for recognized dates.
const DateLayout = "2006-01-02"

const compactDateLayout = "20060102"

// DateParser recognizes a cleaned value as a calendar date.
type DateParser interface {
	ParseDate(text string) (time.Time, bool)
}

// DateParserFunc adapts a function to DateParser.
type DateParserFunc func(text string) (time.Time, bool)

// ParseDate calls f(text).
func (f DateParserFunc) ParseDate(text string) (time.Time, bool) {
	return f(text)
}

// DateMode selects how eagerly values are treated as dates.
type DateMode string

const (
	// DatePermissive accepts anything the natural-language parser accepts,
	// including bare numbers and partial dates.
	DatePermissive DateMode = "permissive"
	// DateStrict only accepts values naming a day, a month and a year.
	DateStrict DateMode = "strict"
	// DateOff disables date recognition.
	DateOff DateMode = "off"
)

// ParseDateMode validates a textual date mode. Empty selects DatePermissive.
func ParseDateMode(value string) (DateMode, error) {
	switch mode := DateMode(strings.ToLower(strings.TrimSpace(value))); mode {
	case "":
		return DatePermissive, nil
	case DatePermissive, DateStrict, DateOff:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid date mode %q (expected permissive|strict|off)", value)
	}
}

// NewDateParser returns the date parser for a mode. Relative and partial
// dates are resolved against now so repeated runs agree.
func NewDateParser(mode DateMode, now time.Time) DateParser {
	if mode == DateOff {
		return DateParserFunc(func(string) (time.Time, bool) { return time.Time{}, false })
	}
	cfg := &dps.Configuration{CurrentTime: now}
	if mode == DateStrict {
		cfg.StrictParsing = true
		cfg.RequiredParts = []string{"day", "month", "year"}
	}
	return &naturalDateParser{cfg: cfg}
}

type naturalDateParser struct {
	cfg *dps.Configuration
}

func (p *naturalDateParser) ParseDate(text string) (parsed time.Time, ok bool) {
	if text == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(compactDateLayout, text); err == nil {
		return t, true
	}
	defer func() {
		if recover() != nil {
			parsed, ok = time.Time{}, false
		}
	}()
	dt, err := dps.Parse(p.cfg, text)
	if err != nil || dt.Time.IsZero() {
		return time.Time{}, false
	}
	return dt.Time, true
}
