package literal

import (
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf16"

	"github.com/teranos/implgen/errors"
)

// printable reports whether a UTF-16 unit may appear inside a quoted literal.
// Surrogate halves never may; they are emitted one ChrW per unit so astral
// characters and unpaired surrogates both survive exactly.
func printable(u uint16) bool {
	r := rune(u)
	if utf16.IsSurrogate(r) {
		return false
	}
	return unicode.IsPrint(r)
}

func chrW(u uint16) string {
	return "ChrW(" + strconv.Itoa(int(u)) + ")"
}

// renderString renders a string default as quoted runs joined with ChrW calls.
func renderString(units []uint16) string {
	if len(units) == 0 {
		return `""`
	}

	var parts []string
	var run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			parts = append(parts, `"`+run.String()+`"`)
			run.Reset()
		}
	}

	for _, u := range units {
		if !printable(u) {
			flush()
			parts = append(parts, chrW(u))
			continue
		}
		if u == '"' {
			run.WriteString(`""`)
			continue
		}
		run.WriteRune(rune(u))
	}
	flush()

	return strings.Join(parts, " & ")
}

// renderChar renders a single UTF-16 unit as a Char literal.
func renderChar(units []uint16) (string, error) {
	if len(units) != 1 {
		return "", errors.NewInvalidRequestf("Char constant must be one UTF-16 unit, got %d", len(units))
	}
	u := units[0]
	switch {
	case !printable(u):
		return chrW(u), nil
	case u == '"':
		return `""""c`, nil
	}
	return `"` + string(rune(u)) + `"c`, nil
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// renderDate renders an ISO-8601 date as a #M/d/yyyy# literal, adding the
// time of day only when it is not midnight.
func renderDate(text string) (string, error) {
	text = strings.TrimSpace(text)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, text)
		if err != nil {
			continue
		}
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
			return "#" + t.Format("1/2/2006") + "#", nil
		}
		return "#" + t.Format("1/2/2006 3:04:05 PM") + "#", nil
	}
	return "", errors.NewInvalidRequestf("invalid Date constant %q", text)
}
