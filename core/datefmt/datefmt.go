// Package datefmt formats article timestamps as long localized dates
// (full year, month name, day).
package datefmt

import (
	"fmt"
	"time"

	"golang.org/x/text/language"

	"github.com/gaurav-prasanna/articlepipe/core"
)

// DefaultLocale is the regional convention used when none is configured.
const DefaultLocale = "zh-CN"

// InvalidDate is shown for timestamps that could not be parsed.
const InvalidDate = "Invalid Date"

var englishMonths = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Formatter renders dates in one locale and time zone.
type Formatter struct {
	tag language.Tag
	loc *time.Location
}

// New creates a Formatter for the given BCP 47 locale. Dates are shown in
// UTC unless loc is non-nil.
func New(locale string, loc *time.Location) (*Formatter, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parsing locale %q: %w", locale, err)
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Formatter{tag: tag, loc: loc}, nil
}

// Locale returns the canonical locale tag.
func (f *Formatter) Locale() string {
	return f.tag.String()
}

// Format implements core.DateFormatter.
func (f *Formatter) Format(ts core.Timestamp) string {
	if !ts.Valid {
		return InvalidDate
	}
	t := ts.Time.In(f.loc)

	base, _ := f.tag.Base()
	switch base.String() {
	case "zh", "ja":
		return fmt.Sprintf("%d年%d月%d日", t.Year(), int(t.Month()), t.Day())
	case "ko":
		return fmt.Sprintf("%d년 %d월 %d일", t.Year(), int(t.Month()), t.Day())
	case "en":
		if region, _ := f.tag.Region(); region.String() == "GB" {
			return fmt.Sprintf("%d %s %d", t.Day(), englishMonths[t.Month()-1], t.Year())
		}
		return fmt.Sprintf("%s %d, %d", englishMonths[t.Month()-1], t.Day(), t.Year())
	default:
		return t.Format("2006-01-02")
	}
}
