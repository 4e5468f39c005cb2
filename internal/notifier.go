package internal

import (
	"context"
	"fmt"
	"log/slog"
)

const (
	confirmationBody    = "Thank you for your payment."
	confirmationSubject = "Payment Confirmation"
	confirmationSender  = "no-reply@example.com"
)

// Notifier sends a payment confirmation through exactly one channel per
// call, chosen by presence, email taking priority over phone.
type Notifier struct {
	email MessageTransport
	sms   MessageTransport
}

func NewNotifier(email, sms MessageTransport) *Notifier {
	return &Notifier{
		email: email,
		sms:   sms,
	}
}

func (n *Notifier) SendConfirmation(ctx context.Context, customer CustomerData) error {
	switch {
	case customer.ContactInfo.Email != "":
		msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
			confirmationSender, customer.ContactInfo.Email, confirmationSubject, confirmationBody)
		if err := n.email.Send(ctx, msg, customer.ContactInfo.Email); err != nil {
			return fmt.Errorf("failed to send the confirmation email: %w", err)
		}
		slog.Debug("confirmation email sent", "to", customer.ContactInfo.Email)
		return nil

	case customer.ContactInfo.Phone != "":
		if err := n.sms.Send(ctx, confirmationBody, customer.ContactInfo.Phone); err != nil {
			return fmt.Errorf("failed to send the confirmation sms: %w", err)
		}
		slog.Debug("confirmation sms sent", "to", customer.ContactInfo.Phone)
		return nil

	default:
		// No channel means no notification, silently. Callers must not
		// assume a confirmation went out.
		slog.Debug("customer has no contact channel, skipping confirmation", "name", customer.Name)
		return nil
	}
}
