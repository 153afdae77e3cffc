package payments

import (
	"context"
	"fmt"
	"log/slog"

	"inscricaoflow/internal/domain"
	"inscricaoflow/internal/format"
)

// Notifier emails the treasury when an order is confirmed paid. Usable as a
// PaidHook; a Notifier without a destination address is a no-op.
type Notifier struct {
	renderer domain.EmailTemplateRenderer
	mailer   domain.Mailer
	to       string
	event    *domain.Event
	logger   *slog.Logger

	buyerCPF string
}

// NewNotifier builds a notifier for the event, sending to the given address.
func NewNotifier(renderer domain.EmailTemplateRenderer, mailer domain.Mailer, to string, event *domain.Event, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		renderer: renderer,
		mailer:   mailer,
		to:       to,
		event:    event,
		logger:   logger,
	}
}

// SetBuyerCPF records the buyer CPF shown in the notification.
func (n *Notifier) SetBuyerCPF(cpf string) {
	n.buyerCPF = cpf
}

// Notify renders and sends the payment-confirmed email for the order.
func (n *Notifier) Notify(ctx context.Context, order *domain.Order) error {
	if n.to == "" || n.mailer == nil || order == nil {
		return nil
	}
	participants := make([]string, 0, len(order.Participants))
	for _, p := range order.Participants {
		participants = append(participants, p.FullName)
	}
	if len(participants) == 0 {
		for _, r := range order.Receipts {
			participants = append(participants, r.FullName)
		}
	}
	count := order.ParticipantCount
	if count == 0 {
		count = len(participants)
	}

	title := ""
	if n.event != nil {
		title = n.event.Title
	}
	subject, html, text, err := n.renderer.Render("payment_confirmed", map[string]any{
		"EventTitle":       title,
		"OrderID":          order.OrderID,
		"BuyerCPF":         n.buyerCPF,
		"PaymentMethod":    order.PaymentMethod.Label(),
		"Total":            format.Currency(order.TotalCents),
		"ParticipantCount": count,
		"Participants":     participants,
	})
	if err != nil {
		return fmt.Errorf("failed to render payment notification: %w", err)
	}
	if err := n.mailer.Send(n.to, subject, html, text); err != nil {
		return fmt.Errorf("failed to send payment notification: %w", err)
	}
	n.logger.Info("payment notification sent", "order_id", order.OrderID, "to", n.to)
	return nil
}
