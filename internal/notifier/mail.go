package notifier

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/wneessen/go-mail"

	"MarketSweep/internal/model"
)

// Sender delivers composed messages. *mail.Client satisfies it.
type Sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// MailNotifier sends report mails through an SMTP relay.
type MailNotifier struct {
	From   string
	To     string
	Client Sender
}

// NewMailNotifier creates a notifier for an SMTP server that requires
// STARTTLS and PLAIN auth. The sender address doubles as the username.
func NewMailNotifier(host string, port int, from, password, to string) (*MailNotifier, error) {
	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(from),
		mail.WithPassword(password),
		mail.WithTimeout(30*time.Second),
	)
	if err != nil {
		return nil, &model.ConfigurationError{Op: "create mail client", Err: err}
	}
	return &MailNotifier{From: from, To: to, Client: client}, nil
}

// Compose builds the message. attachment may be empty.
func (n *MailNotifier) Compose(subject, body, attachment string) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(n.From); err != nil {
		return nil, &model.ConfigurationError{Op: "set sender", Err: err}
	}
	if err := m.To(n.To); err != nil {
		return nil, &model.ConfigurationError{Op: "set recipient", Err: err}
	}
	m.Subject(subject)
	m.SetDate()
	m.SetBodyString(mail.TypeTextPlain, body)
	if attachment != "" {
		if _, err := os.Stat(attachment); err != nil {
			return nil, fmt.Errorf("attachment: %w", err)
		}
		m.AttachFile(attachment)
	}
	return m, nil
}

// Send composes and delivers one message. Delivery failures, including
// rejected credentials, come back as UpstreamError and are not retried.
func (n *MailNotifier) Send(ctx context.Context, subject, body, attachment string) error {
	m, err := n.Compose(subject, body, attachment)
	if err != nil {
		return err
	}
	if err := n.Client.DialAndSendWithContext(ctx, m); err != nil {
		return &model.UpstreamError{Source: "smtp", Err: fmt.Errorf("send mail: %w", err)}
	}
	log.Printf("[INFO] Mail %q sent to %s", subject, n.To)
	return nil
}

// SendDailyReport mails the highlights with the exported CSV attached.
func (n *MailNotifier) SendDailyReport(ctx context.Context, h model.Highlights, csvPath string) error {
	return n.Send(ctx, DailySubject, FormatDailyReport(h), csvPath)
}
