package email

const (
	subjectHotLeadFmt = "Hot lead: %s (score %d)"
)
