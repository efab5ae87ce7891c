package email

import "context"

// HotLeadAlert is the content of the alert sent when a lead reaches the hot tier.
type HotLeadAlert struct {
	LeadID      string
	Name        string
	Email       string
	Phone       string
	Source      string
	Score       int
	Explanation string
	Actions     []string
}

type Sender interface {
	SendHotLeadAlert(ctx context.Context, toEmail string, alert HotLeadAlert) error
}

type NoopSender struct{}

func (NoopSender) SendHotLeadAlert(ctx context.Context, toEmail string, alert HotLeadAlert) error {
	return nil
}
