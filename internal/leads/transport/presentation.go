package transport

// ExplanationCutoff is the number of characters summary rows show.
const ExplanationCutoff = 30

const (
	ellipsis     = "..."
	missingPhone = "N/A"
)

// TruncateExplanation shortens s to ExplanationCutoff characters and appends an
// ellipsis. Strings at or under the cutoff are returned unchanged.
func TruncateExplanation(s string) string {
	runes := []rune(s)
	if len(runes) <= ExplanationCutoff {
		return s
	}
	return string(runes[:ExplanationCutoff]) + ellipsis
}

// DisplayPhone returns the phone number or a placeholder when none was given.
func DisplayPhone(phone string) string {
	if phone == "" {
		return missingPhone
	}
	return phone
}
