// Package dateutils parses the transaction dates found in statement exports.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Date layouts accepted for transaction dates.
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutSlash    = "2006/01/02"
	DateLayoutDot      = "2006.01.02"
	DateLayoutJapanese = "2006年1月2日"
	DateLayoutFull     = "2006-01-02 15:04:05"
)

// CommonFormats are tried in order by ParseDate.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutSlash,
	"2006/1/2",
	DateLayoutDot,
	DateLayoutJapanese,
	DateLayoutFull,
	time.RFC3339,
}

// ParseDate parses dateStr with the first matching layout of CommonFormats
// and returns the layout that matched.
func ParseDate(dateStr string) (time.Time, string, error) {
	cleaned := CleanDateString(dateStr)
	for _, layout := range CommonFormats {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, layout, nil
		}
	}
	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// ParseOptionalDate is ParseDate for optional columns and flags: blank
// input yields nil.
func ParseOptionalDate(dateStr string) (*time.Time, error) {
	if strings.TrimSpace(dateStr) == "" {
		return nil, nil
	}
	t, _, err := ParseDate(dateStr)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CleanDateString trims the string and collapses inner whitespace.
func CleanDateString(dateStr string) string {
	return strings.Join(strings.Fields(dateStr), " ")
}

// ToISODate formats date as YYYY-MM-DD, or "" for the zero time.
func ToISODate(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.Format(DateLayoutISO)
}
