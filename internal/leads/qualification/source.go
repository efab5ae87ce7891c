package qualification

import (
	"strings"
	"unicode"
)

// Source is the acquisition channel a lead arrived through.
type Source string

const (
	SourceWebsite  Source = "website"
	SourceCall     Source = "call"
	SourceWhatsApp Source = "whatsapp"
	SourceEvent    Source = "event"
	SourceReferral Source = "referral"
)

// sourceLabels maps each known source to its display label.
var sourceLabels = map[Source]string{
	SourceWebsite:  "Website",
	SourceCall:     "Call",
	SourceWhatsApp: "Whatsapp",
	SourceEvent:    "Event",
	SourceReferral: "Referral",
}

// KnownSources lists the recognised sources in form order.
func KnownSources() []Source {
	return []Source{SourceWebsite, SourceCall, SourceWhatsApp, SourceEvent, SourceReferral}
}

// ParseSource normalises raw form input. Unknown values are kept so they can be
// stored and displayed, they just never trigger a source rule.
func ParseSource(raw string) Source {
	return Source(strings.ToLower(strings.TrimSpace(raw)))
}

// IsKnown reports whether s is one of the recognised sources.
func (s Source) IsKnown() bool {
	_, ok := sourceLabels[s]
	return ok
}

// Label returns the display name of the source. Unknown values are title-cased
// word by word.
func (s Source) Label() string {
	if label, ok := sourceLabels[s]; ok {
		return label
	}
	return titleWords(string(s))
}

func titleWords(s string) string {
	runes := []rune(s)
	startOfWord := true
	for i, r := range runes {
		isWordRune := unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
		if isWordRune && startOfWord {
			runes[i] = unicode.ToUpper(r)
		}
		startOfWord = !isWordRune
	}
	return string(runes)
}
