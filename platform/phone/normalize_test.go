package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	cases := map[string]string{
		"":               "",
		"  ":             "",
		"06 12345678":    "+31612345678",
		"+31 6 12345678": "+31612345678",
		"not a number":   "not a number",
		" 12 ":           "12",
	}
	for in, want := range cases {
		if got := NormalizeE164(in); got != want {
			t.Fatalf("NormalizeE164(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeE164InRegionKeepsInternationalNumbers(t *testing.T) {
	if got := NormalizeE164InRegion("+31 6 12345678", "US"); got != "+31612345678" {
		t.Fatalf("expected explicit country code to win over region, got %q", got)
	}
}
