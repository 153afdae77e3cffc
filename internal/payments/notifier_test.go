package payments

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"inscricaoflow/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRenderer captures the template data it was asked to render.
type fakeRenderer struct {
	name string
	data any
	err  error
}

func (f *fakeRenderer) Render(templateName string, data interface{}) (string, string, string, error) {
	f.name = templateName
	f.data = data
	if f.err != nil {
		return "", "", "", f.err
	}
	return "subject", "<html>", "text", nil
}

// fakeMailer records sent messages.
type fakeMailer struct {
	to      string
	subject string
	sends   int
}

func (f *fakeMailer) Send(to, subject, html, text string) error {
	f.to = to
	f.subject = subject
	f.sends++
	return nil
}

func TestNotifier_Notify(t *testing.T) {
	renderer := &fakeRenderer{}
	mailer := &fakeMailer{}
	event := &domain.Event{ID: "ev-1", Title: "Congresso 2026"}
	n := NewNotifier(renderer, mailer, "tesouraria@example.com", event, slog.New(slog.NewTextHandler(io.Discard, nil)))
	n.SetBuyerCPF("529.982.247-25")

	order := &domain.Order{
		OrderID:       "ord-1",
		Status:        domain.StatusPaid,
		TotalCents:    24000,
		PaymentMethod: domain.PaymentPixMP,
		Participants: []domain.OrderParticipant{
			{ID: "reg-1", FullName: "Ana Silva", Status: domain.StatusPaid},
			{ID: "reg-2", FullName: "Bruno Costa", Status: domain.StatusPaid},
		},
	}
	require.NoError(t, n.Notify(context.Background(), order))

	assert.Equal(t, "payment_confirmed", renderer.name)
	data, ok := renderer.data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Congresso 2026", data["EventTitle"])
	assert.Equal(t, "529.982.247-25", data["BuyerCPF"])
	assert.Equal(t, "R$ 240,00", data["Total"])
	assert.Equal(t, 2, data["ParticipantCount"])
	assert.Equal(t, []string{"Ana Silva", "Bruno Costa"}, data["Participants"])

	assert.Equal(t, 1, mailer.sends)
	assert.Equal(t, "tesouraria@example.com", mailer.to)
}

func TestNotifier_NoAddressIsNoop(t *testing.T) {
	mailer := &fakeMailer{}
	n := NewNotifier(&fakeRenderer{}, mailer, "", nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, n.Notify(context.Background(), &domain.Order{OrderID: "ord-1"}))
	assert.Zero(t, mailer.sends)
}
