package posts

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/goodsign/monday"
)

// DefaultLocale is used by FormatDate when no locale is configured.
const DefaultLocale = "zh-CN"

// ParseDate parses a pubDate value. Loose forms such as "2024-3-5",
// "March 5, 2024" and RFC1123 are accepted. The calendar date is kept as
// written: a value with an offset is not converted to another zone.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil || t.Year() == 0 {
		return time.Time{}, false
	}
	return t, true
}

// DatePath joins a date and a final path element as /YYYY/MM/DD/name.
func DatePath(t time.Time, name string) string {
	return fmt.Sprintf("/%04d/%02d/%02d/%s", t.Year(), int(t.Month()), t.Day(), name)
}

// PostURL returns the canonical /YYYY/MM/DD/slug URL for a post, or "" when
// pubDate cannot be parsed.
func PostURL(pubDate, slug string) string {
	t, ok := ParseDate(pubDate)
	if !ok {
		return ""
	}
	return DatePath(t, slug)
}

type dateStyle struct {
	locale monday.Locale
	layout string
}

var dateStyles = map[string]dateStyle{
	"zh-CN": {monday.LocaleZhCN, "2006年1月2日"},
	"ja-JP": {monday.LocaleJaJP, "2006年1月2日"},
	"en-US": {monday.LocaleEnUS, "January 2, 2006"},
	"de-DE": {monday.LocaleDeDE, "2. January 2006"},
	"fr-FR": {monday.LocaleFrFR, "2 January 2006"},
}

// KnownLocale reports whether FormatDate has a layout for locale.
func KnownLocale(locale string) bool {
	_, ok := dateStyles[locale]
	return ok
}

// FormatDate renders pubDate in long form (year, month name, day) for
// display. Unknown locales fall back to en-US; an unparseable date renders
// as "".
func FormatDate(pubDate, locale string) string {
	t, ok := ParseDate(pubDate)
	if !ok {
		return ""
	}
	if locale == "" {
		locale = DefaultLocale
	}
	style, ok := dateStyles[locale]
	if !ok {
		style = dateStyles["en-US"]
	}
	return monday.Format(t, style.layout, style.locale)
}
