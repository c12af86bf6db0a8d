package mail

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/skriptnetworks/siteapi/internal/model"
)

// recordingSender captures messages and can be told to reject from a
// given send onward.
type recordingSender struct {
	sent    []Message
	failAt  int // 1-based index of the first send to reject, 0 = never
	rejectE error
}

func (s *recordingSender) Send(_ context.Context, m Message) error {
	attempt := len(s.sent) + 1
	if s.failAt != 0 && attempt >= s.failAt {
		return s.rejectE
	}
	s.sent = append(s.sent, m)

	return nil
}

func validForm() model.ContactSubmission {
	return model.ContactSubmission{
		Name:    "Jo Lim",
		Email:   "jo@example.com",
		Message: "We need a full network audit for our office.",
	}
}

func newRelay(s Sender) *Relay {
	return NewRelay(s, "info@skriptnetworks.com", "mg.skriptnetworks.com", zap.NewNop().Sugar())
}

func TestRelaySendsNotificationThenAck(t *testing.T) {
	sender := &recordingSender{}
	relay := newRelay(sender)

	form := validForm()
	form.Phone = "+60 12-345 6789"
	form.Company = "Example Sdn Bhd"
	form.ServiceType = "Cybersecurity"

	require.NoError(t, relay.Submit(context.Background(), form))
	require.Len(t, sender.sent, 2)

	notification := sender.sent[0]
	assert.Equal(t, "info@skriptnetworks.com", notification.To)
	assert.Equal(t, "noreply@mg.skriptnetworks.com", notification.From)
	assert.Equal(t, "New Contact Form Submission from Jo Lim", notification.Subject)
	assert.Contains(t, notification.Text, "Email: jo@example.com")
	assert.Contains(t, notification.Text, "Phone: +60 12-345 6789")
	assert.Contains(t, notification.Text, "Company: Example Sdn Bhd")
	assert.Contains(t, notification.Text, "Service Interest: Cybersecurity")
	assert.Contains(t, notification.Text, form.Message)

	ack := sender.sent[1]
	assert.Equal(t, "jo@example.com", ack.To)
	assert.Equal(t, "info@mg.skriptnetworks.com", ack.From)
	assert.Equal(t, "Thank you for contacting Skript Networks", ack.Subject)
	assert.Contains(t, ack.Text, "Dear Jo Lim")
	assert.Contains(t, ack.HTML, "<br>")
}

func TestRelayOmitsAbsentOptionalFields(t *testing.T) {
	sender := &recordingSender{}
	relay := newRelay(sender)

	require.NoError(t, relay.Submit(context.Background(), validForm()))
	require.Len(t, sender.sent, 2)

	assert.NotContains(t, sender.sent[0].Text, "Phone:")
	assert.NotContains(t, sender.sent[0].Text, "Company:")
	assert.NotContains(t, sender.sent[0].Text, "Service Interest:")
}

func TestRelayEscapesUserHTML(t *testing.T) {
	sender := &recordingSender{}
	relay := newRelay(sender)

	form := validForm()
	form.Name = "Jo <script>"
	form.Message = "hello <b>there</b>\nsecond line"

	require.NoError(t, relay.Submit(context.Background(), form))
	require.Len(t, sender.sent, 2)

	assert.NotContains(t, sender.sent[0].HTML, "<script>")
	assert.Contains(t, sender.sent[0].HTML, "&lt;b&gt;there&lt;/b&gt;")
	assert.Contains(t, sender.sent[0].HTML, "second line")
}

func TestRelayFailsWhenNotificationRejected(t *testing.T) {
	sender := &recordingSender{failAt: 1, rejectE: errors.New("boom")}
	relay := newRelay(sender)

	err := relay.Submit(context.Background(), validForm())
	require.Error(t, err)
	assert.Empty(t, sender.sent, "nothing sent, the ack is never attempted")
}

func TestRelayFailsWhenAckRejected(t *testing.T) {
	sender := &recordingSender{failAt: 2, rejectE: errors.New("boom")}
	relay := newRelay(sender)

	err := relay.Submit(context.Background(), validForm())
	require.Error(t, err)
	// The notification already went out; the submission still fails as
	// a whole and a client retry will re-send it.
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "info@skriptnetworks.com", sender.sent[0].To)
}

func TestRelayUnconfiguredTransportRejects(t *testing.T) {
	relay := newRelay(DisabledSender{})

	err := relay.Submit(context.Background(), validForm())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestRelayValidatesBeforeSending(t *testing.T) {
	sender := &recordingSender{}
	relay := newRelay(sender)

	form := validForm()
	form.Message = "short"

	err := relay.Submit(context.Background(), form)
	require.Error(t, err)

	var ve *model.ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Empty(t, sender.sent, "validation failure must precede any send")
}

func TestSenderFor(t *testing.T) {
	assert.IsType(t, DisabledSender{}, SenderFor("", "key"))
	assert.IsType(t, DisabledSender{}, SenderFor("mg.example.com", ""))
	assert.IsType(t, &MailgunSender{}, SenderFor("mg.example.com", "key"))
}
