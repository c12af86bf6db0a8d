package mail

import (
	"context"
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"

	"github.com/skriptnetworks/siteapi/internal/model"
)

// Relay turns a validated contact submission into two emails: an
// internal notification to the business inbox and an acknowledgement
// back to the submitter.
type Relay struct {
	sender Sender
	inbox  string // business inbox receiving notifications
	domain string // verified sending domain for the From addresses
	log    *zap.SugaredLogger
}

func NewRelay(sender Sender, inbox, domain string, log *zap.SugaredLogger) *Relay {
	return &Relay{sender: sender, inbox: inbox, domain: domain, log: log}
}

// Submit validates the form and sends both messages sequentially,
// notification first. The submission succeeds only when both sends are
// accepted. A rejection after the first send still fails the whole
// submission even though the notification is already out; a client
// retry can therefore duplicate it.
func (r *Relay) Submit(ctx context.Context, form model.ContactSubmission) error {
	if err := form.Validate(); err != nil {
		return err
	}

	notification, ack := r.buildMessages(form)

	if err := r.sender.Send(ctx, notification); err != nil {
		r.log.Errorw("contact notification send failed", "to", notification.To, "error", err)

		return fmt.Errorf("sending contact notification: %w", err)
	}

	if err := r.sender.Send(ctx, ack); err != nil {
		r.log.Errorw("contact acknowledgement send failed", "to", ack.To, "error", err)

		return fmt.Errorf("sending contact acknowledgement: %w", err)
	}

	r.log.Infow("contact form relayed", "from", form.Email, "inbox", r.inbox)

	return nil
}

func (r *Relay) buildMessages(form model.ContactSubmission) (notification, ack Message) {
	notification = Message{
		To:      r.inbox,
		From:    "noreply@" + r.domain,
		Subject: fmt.Sprintf("New Contact Form Submission from %s", form.Name),
		Text:    notificationText(form),
		HTML:    notificationHTML(form),
	}
	ack = Message{
		To:      form.Email,
		From:    "info@" + r.domain,
		Subject: "Thank you for contacting Skript Networks",
		Text:    ackText(form),
		HTML:    ackHTML(form),
	}

	return notification, ack
}

func notificationText(form model.ContactSubmission) string {
	var b strings.Builder
	b.WriteString("New Contact Form Submission\n\n")
	b.WriteString("Contact Information:\n")
	fmt.Fprintf(&b, "Name: %s\n", form.Name)
	fmt.Fprintf(&b, "Email: %s\n", form.Email)
	if form.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", form.Phone)
	}
	if form.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", form.Company)
	}
	if form.ServiceType != "" {
		fmt.Fprintf(&b, "Service Interest: %s\n", form.ServiceType)
	}
	b.WriteString("\nMessage:\n")
	b.WriteString(form.Message)
	b.WriteString("\n\n---\nThis email was sent from the Skript Networks contact form.\n")

	return b.String()
}

func notificationHTML(form model.ContactSubmission) string {
	var b strings.Builder
	b.WriteString("<h2>New Contact Form Submission</h2>")
	b.WriteString("<h3>Contact Information:</h3>")
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s</p>", html.EscapeString(form.Name))
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>", html.EscapeString(form.Email))
	if form.Phone != "" {
		fmt.Fprintf(&b, "<p><strong>Phone:</strong> %s</p>", html.EscapeString(form.Phone))
	}
	if form.Company != "" {
		fmt.Fprintf(&b, "<p><strong>Company:</strong> %s</p>", html.EscapeString(form.Company))
	}
	if form.ServiceType != "" {
		fmt.Fprintf(&b, "<p><strong>Service Interest:</strong> %s</p>", html.EscapeString(form.ServiceType))
	}
	b.WriteString("<h3>Message:</h3>")
	fmt.Fprintf(&b, "<p>%s</p>", htmlParagraph(form.Message))
	b.WriteString("<hr><p><em>This email was sent from the Skript Networks contact form.</em></p>")

	return b.String()
}

func ackText(form model.ContactSubmission) string {
	var b strings.Builder
	b.WriteString("Thank you for contacting Skript Networks!\n\n")
	fmt.Fprintf(&b, "Dear %s,\n\n", form.Name)
	b.WriteString("We have received your inquiry and appreciate your interest in our IT consultancy and technology solutions.\n\n")
	b.WriteString("Our team will review your message and get back to you within 24 hours. If you need immediate assistance, please call us at +60 12-345 6789 during business hours (Mon-Fri 9AM-6PM).\n\n")
	b.WriteString("Your Message:\n")
	b.WriteString(form.Message)
	b.WriteString("\n\nBest regards,\nSkript Networks Team\nProfessional IT Consultancy & Technology Solutions\nEmail: info@skriptnetworks.com\nPhone: +60 12-345 6789\nLocation: Kuala Lumpur, Malaysia\n")

	return b.String()
}

func ackHTML(form model.ContactSubmission) string {
	var b strings.Builder
	b.WriteString("<h2>Thank you for contacting Skript Networks!</h2>")
	fmt.Fprintf(&b, "<p>Dear %s,</p>", html.EscapeString(form.Name))
	b.WriteString("<p>We have received your inquiry and appreciate your interest in our IT consultancy and technology solutions.</p>")
	b.WriteString("<p>Our team will review your message and get back to you within 24 hours. If you need immediate assistance, please call us at <strong>+60 12-345 6789</strong> during business hours (Mon-Fri 9AM-6PM).</p>")
	b.WriteString("<h3>Your Message:</h3>")
	fmt.Fprintf(&b, "<p>%s</p>", htmlParagraph(form.Message))
	b.WriteString("<p>Best regards,<br><strong>Skript Networks Team</strong><br>Professional IT Consultancy &amp; Technology Solutions<br>info@skriptnetworks.com<br>+60 12-345 6789<br>Kuala Lumpur, Malaysia</p>")

	return b.String()
}

// htmlParagraph escapes the user-supplied text and keeps its line
// breaks visible.
func htmlParagraph(s string) string {
	return strings.ReplaceAll(html.EscapeString(s), "\n", "<br>")
}
