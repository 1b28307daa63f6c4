package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/galleryhaus/gallery-backend/pkg/config"
	gomail "github.com/wneessen/go-mail"
)

var (
	errHostRequired   = errors.New("smtp host is required")
	errSenderRequired = errors.New("smtp sending mailbox is required")
)

// Message is one relay email addressed to the gallery operator. ReplyTo
// carries the shopper's address; the envelope sender is always the
// configured mailbox so SMTP sender authentication holds.
type Message struct {
	Subject string
	HTML    string
	Text    string
	ReplyTo string
}

// Sender is the transport surface handlers depend on, so tests can swap in
// a double.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Client sends mail over SMTP. Each Send dials a fresh connection; relay
// volume is low enough that pooling buys nothing.
type Client struct {
	smtp     *gomail.Client
	from     string
	operator string
}

// NewClient validates the transport settings and builds the SMTP client.
func NewClient(cfg config.SMTPConfig) (*Client, error) {
	if cfg.Host == "" {
		return nil, errHostRequired
	}
	if cfg.From == "" {
		return nil, errSenderRequired
	}

	operator := cfg.Operator
	if operator == "" {
		operator = cfg.From
	}
	username := cfg.Username
	if username == "" {
		username = cfg.From
	}

	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(username),
		gomail.WithPassword(cfg.Password),
	}
	if cfg.SendTimeout > 0 {
		opts = append(opts, gomail.WithTimeout(cfg.SendTimeout))
	}
	if cfg.SSL {
		opts = append(opts, gomail.WithSSL())
	}

	smtp, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	return &Client{
		smtp:     smtp,
		from:     cfg.From,
		operator: operator,
	}, nil
}

// Send delivers the message to the operator mailbox and waits for the
// transport acknowledgment.
func (c *Client) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMsg()
	if err := m.From(c.from); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := m.To(c.operator); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	if msg.ReplyTo != "" {
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			return fmt.Errorf("set reply-to: %w", err)
		}
	}
	m.Subject(msg.Subject)

	switch {
	case msg.HTML != "" && msg.Text != "":
		m.SetBodyString(gomail.TypeTextHTML, msg.HTML)
		m.AddAlternativeString(gomail.TypeTextPlain, msg.Text)
	case msg.HTML != "":
		m.SetBodyString(gomail.TypeTextHTML, msg.HTML)
	default:
		m.SetBodyString(gomail.TypeTextPlain, msg.Text)
	}

	if err := c.smtp.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// Ping dials the SMTP server and hangs up, for readiness checks.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.smtp == nil {
		return errors.New("mail client not initialized")
	}
	if err := c.smtp.DialWithContext(ctx); err != nil {
		return err
	}
	return c.smtp.Close()
}

// Operator returns the configured destination mailbox.
func (c *Client) Operator() string {
	return c.operator
}
