package qualification

import "testing"

func TestParseSource(t *testing.T) {
	cases := map[string]Source{
		"website":    SourceWebsite,
		" WhatsApp ": SourceWhatsApp,
		"CALL":       SourceCall,
		"":           "",
		"trade show": "trade show",
	}
	for raw, want := range cases {
		if got := ParseSource(raw); got != want {
			t.Fatalf("ParseSource(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestSourceLabel(t *testing.T) {
	cases := map[Source]string{
		SourceWebsite:  "Website",
		SourceCall:     "Call",
		SourceWhatsApp: "Whatsapp",
		SourceEvent:    "Event",
		SourceReferral: "Referral",
		"trade show":   "Trade Show",
		"":             "",
	}
	for src, want := range cases {
		if got := src.Label(); got != want {
			t.Fatalf("%q.Label() = %q, want %q", src, got, want)
		}
	}
}

func TestSourceIsKnown(t *testing.T) {
	for _, src := range KnownSources() {
		if !src.IsKnown() {
			t.Fatalf("expected %q to be known", src)
		}
	}
	if Source("fax").IsKnown() {
		t.Fatalf("expected fax to be unknown")
	}
}
