// Package search expands free-text job search keywords into variants that
// cover the Korean and English terms used by postings.
package search

import (
	"strings"
	"unicode"
)

const MaxVariants = 10

// Synonyms maps a normalized term to equivalent terms. Lookups are symmetric
// through the index built in init.
var Synonyms = map[string][]string{
	"백엔드":   {"backend", "back end", "서버 개발"},
	"프론트엔드": {"frontend", "front end", "웹 퍼블리셔"},
	"개발자":   {"developer", "engineer", "엔지니어"},
	"통역":    {"interpreter", "translator", "번역"},
	"생산직":   {"manufacturing", "production", "제조"},
	"사무직":   {"office", "administration", "사무"},
	"디자이너":  {"designer", "디자인"},
	"인턴":    {"intern", "internship"},
	"영업":    {"sales", "marketing"},
}

var index map[string][]string

func init() {
	index = make(map[string][]string, len(Synonyms)*4)
	for k, syns := range Synonyms {
		group := append([]string{k}, syns...)
		for _, term := range group {
			for _, other := range group {
				if other != term {
					index[term] = append(index[term], other)
				}
			}
		}
	}
}

// NormalizeQuery lowercases input, drops punctuation and collapses spaces.
func NormalizeQuery(input string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return ""
	}

	b := strings.Builder{}
	b.Grow(len(input))
	for _, r := range input {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// ExpandQuery returns the normalized query first, followed by synonym
// variants of the whole query and of each word. At most MaxVariants are
// returned.
func ExpandQuery(input string) []string {
	normalized := NormalizeQuery(input)
	if normalized == "" {
		return []string{}
	}

	out := make([]string, 0, MaxVariants)
	seen := make(map[string]struct{}, MaxVariants)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || len(out) >= MaxVariants {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	add(normalized)
	for _, syn := range index[normalized] {
		add(syn)
	}

	words := strings.Fields(normalized)
	if len(words) < 2 {
		return out
	}
	for i, w := range words {
		for _, syn := range index[w] {
			variant := make([]string, len(words))
			copy(variant, words)
			variant[i] = syn
			add(strings.Join(variant, " "))
		}
	}
	return out
}
