package i18n

import (
	"fmt"
	"strings"
)

type Locale string

const (
	KO Locale = "ko"
	EN Locale = "en"
	JA Locale = "ja"
	VI Locale = "vi"
	ZH Locale = "zh"
)

const Default = KO

var Supported = []Locale{KO, EN, JA, VI, ZH}

// Parse accepts a bare language code or a tag such as "zh-CN" / "en_US".
func Parse(raw string) (Locale, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return "", false
	}
	if i := strings.IndexAny(raw, "-_"); i > 0 {
		raw = raw[:i]
	}
	for _, l := range Supported {
		if Locale(raw) == l {
			return l, true
		}
	}
	return "", false
}

// Resolve picks the request locale: query first, then cookie, then the
// Accept-Language header in listed order, then the default.
func Resolve(query, cookie, acceptLanguage string) Locale {
	if l, ok := Parse(query); ok {
		return l
	}
	if l, ok := Parse(cookie); ok {
		return l
	}
	for _, part := range strings.Split(acceptLanguage, ",") {
		tag := part
		if i := strings.Index(tag, ";"); i >= 0 {
			tag = tag[:i]
		}
		if l, ok := Parse(tag); ok {
			return l
		}
	}
	return Default
}

type Localizer struct {
	locale Locale
}

func New(l Locale) Localizer {
	return Localizer{locale: l}
}

func (l Localizer) Locale() Locale {
	if l.locale == "" {
		return Default
	}
	return l.locale
}

// T looks the key up in the request locale, falling back to Korean and
// finally to the key itself.
func (l Localizer) T(key string, args ...any) string {
	msg, ok := lookup(l.Locale(), key)
	if !ok {
		msg, ok = lookup(Default, key)
	}
	if !ok {
		msg = key
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

func lookup(l Locale, key string) (string, bool) {
	m, ok := catalog[l]
	if !ok {
		return "", false
	}
	s, ok := m[key]
	return s, ok
}
