// Package notification provides event handlers for sending notifications
// in response to domain events.
// This module subscribes to events and inverts the dependency: domain modules
// no longer need to know about email providers or templates.
package notification

import (
	"context"
	"fmt"

	"lead_qualification_backend/internal/email"
	"lead_qualification_backend/internal/events"
	"lead_qualification_backend/internal/leads/qualification"
	"lead_qualification_backend/platform/config"
	"lead_qualification_backend/platform/logger"
)

// Module routes lead events to the configured sender.
type Module struct {
	sender email.Sender
	cfg    config.NotificationConfig
	log    *logger.Logger
}

// New creates the notification module.
func New(sender email.Sender, cfg config.NotificationConfig, log *logger.Logger) *Module {
	if sender == nil {
		sender = email.NoopSender{}
	}
	return &Module{sender: sender, cfg: cfg, log: log}
}

// NewSender picks the SMTP sender when SMTP is configured and a no-op sender otherwise.
func NewSender(cfg config.SMTPConfig) email.Sender {
	if !cfg.IsSMTPEnabled() {
		return email.NoopSender{}
	}
	return email.NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetSMTPFromAddress(),
		cfg.GetSMTPFromName(),
	)
}

func (m *Module) Name() string { return "notification" }

// RegisterHandlers subscribes the module to the events it reacts to.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.LeadScored{}.EventName(), m)
}

// Handle implements events.Handler.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.LeadScored:
		return m.handleLeadScored(ctx, e)
	default:
		m.log.Warn("unhandled event type", "event", event.EventName())
		return nil
	}
}

func (m *Module) handleLeadScored(ctx context.Context, e events.LeadScored) error {
	if !e.BecameHot() {
		return nil
	}

	to := ""
	if m.cfg != nil {
		to = m.cfg.GetHotLeadNotifyEmail()
	}
	if to == "" {
		m.log.Debug("hot lead alert skipped, no recipient configured", "leadId", e.LeadID)
		return nil
	}

	alert := email.HotLeadAlert{
		LeadID:      e.LeadID.String(),
		Name:        e.Name,
		Email:       e.Email,
		Phone:       e.Phone,
		Source:      qualification.ParseSource(e.Source).Label(),
		Score:       e.Score,
		Explanation: e.Explanation,
		Actions:     e.Actions,
	}
	if err := m.sender.SendHotLeadAlert(ctx, to, alert); err != nil {
		return fmt.Errorf("send hot lead alert for %s: %w", e.LeadID, err)
	}

	m.log.Info("hot lead alert sent", "leadId", e.LeadID, "score", e.Score)
	return nil
}

var _ events.Handler = (*Module)(nil)
