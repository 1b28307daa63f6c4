package inquiry

import (
	"context"
	"strings"

	"github.com/galleryhaus/gallery-backend/internal/cart"
	"github.com/galleryhaus/gallery-backend/pkg/logger"
	"github.com/galleryhaus/gallery-backend/pkg/mail"
	pkgerrors "github.com/galleryhaus/gallery-backend/pkg/errors"
)

// Mailer is the transport the service hands rendered messages to.
type Mailer interface {
	Send(ctx context.Context, msg mail.Message) error
}

// CartInquiry is a shopper's cart hand-off: contact details plus the
// summary built from their cart. Message is optional.
type CartInquiry struct {
	Email   string
	Name    string
	Message string
	Items   []cart.SummaryItem
}

// ContactMessage is a plain contact-form submission; all fields required.
type ContactMessage struct {
	Email   string
	Name    string
	Message string
}

// Service relays validated inquiries to the gallery operator over the
// injected mail transport.
type Service interface {
	RelayCartInquiry(ctx context.Context, in CartInquiry) error
	RelayContactMessage(ctx context.Context, in ContactMessage) error
}

type service struct {
	mailer Mailer
	logg   *logger.Logger
}

// NewService wires the relay dependencies.
func NewService(mailer Mailer, logg *logger.Logger) (Service, error) {
	if mailer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "mail transport required")
	}
	return &service{mailer: mailer, logg: logg}, nil
}

func (s *service) RelayCartInquiry(ctx context.Context, in CartInquiry) error {
	if !validEmail(in.Email) || strings.TrimSpace(in.Name) == "" || in.Items == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "Missing required fields")
	}

	body, err := renderCartInquiryHTML(in)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render inquiry email")
	}

	msg := mail.Message{
		Subject: cartInquirySubject(in.Email),
		HTML:    body,
		ReplyTo: strings.TrimSpace(in.Email),
	}
	return s.send(ctx, msg, len(in.Items))
}

func (s *service) RelayContactMessage(ctx context.Context, in ContactMessage) error {
	if !validEmail(in.Email) || strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Message) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "Missing required fields")
	}

	msg := mail.Message{
		Subject: contactSubject(in.Name, in.Email),
		Text:    renderContactText(in),
		ReplyTo: strings.TrimSpace(in.Email),
	}
	return s.send(ctx, msg, 0)
}

func (s *service) send(ctx context.Context, msg mail.Message, itemCount int) error {
	if err := s.mailer.Send(ctx, msg); err != nil {
		if s.logg != nil {
			logCtx := s.logg.WithFields(ctx, map[string]any{
				"subject":    msg.Subject,
				"item_count": itemCount,
			})
			s.logg.Error(logCtx, "inquiry.send_failed", err)
		}
		// The transport detail stays server-side; the wire only ever sees
		// the generic mail transport message.
		return pkgerrors.Wrap(pkgerrors.CodeMailTransport, err, "relay inquiry email")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "item_count", itemCount), "inquiry.sent")
	}
	return nil
}

// validEmail mirrors the storefront's loose check: non-empty and contains
// an @. Real verification happens when the operator replies.
func validEmail(email string) bool {
	email = strings.TrimSpace(email)
	return email != "" && strings.Contains(email, "@")
}
