package app

import (
	"context"
	"errors"
	"strings"

	"github.com/gympro/gympro-client/internal/api"
	"github.com/gympro/gympro-client/internal/auth"
	"github.com/gympro/gympro-client/internal/cart"
	"github.com/gympro/gympro-client/internal/checkout"
	"github.com/gympro/gympro-client/internal/domain/attendance"
	"github.com/gympro/gympro-client/internal/domain/members"
	"github.com/gympro/gympro-client/internal/domain/orders"
	"github.com/gympro/gympro-client/internal/domain/payments"
	"github.com/gympro/gympro-client/internal/domain/plans"
	"github.com/gympro/gympro-client/internal/domain/reminders"
	"github.com/gympro/gympro-client/internal/domain/settings"
	"github.com/gympro/gympro-client/internal/domain/supplements"
	"github.com/gympro/gympro-client/internal/screen"
)

var plain = []error{
	members.ErrInvalidForm,
	plans.ErrInvalidForm,
	supplements.ErrInvalidForm,
	settings.ErrInvalid,
	payments.ErrInvalidAmount,
	orders.ErrEmptyOrder,
	reminders.ErrNoRecipients,
	attendance.ErrAlreadyCheckedOut,
	cart.ErrOutOfStock,
	cart.ErrNotInCart,
}

// Notice is the one line shown to the user for err. It never exposes
// internals beyond the server supplied message.
func Notice(err error) string {
	var verr *auth.ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, api.ErrUnauthorized):
		return "Your session has expired. Please sign in again."
	case errors.Is(err, ErrNotAllowed):
		return "You do not have access to that page."
	case errors.Is(err, screen.ErrDeclined):
		return "Cancelled."
	case errors.Is(err, context.Canceled), errors.Is(err, screen.ErrClosed):
		return "Interrupted."
	case errors.Is(err, checkout.ErrNothingDue):
		return "There is nothing to pay."
	case errors.Is(err, checkout.ErrDismissed):
		return "Payment cancelled. Your dues are unchanged."
	case errors.Is(err, checkout.ErrPaymentFailed):
		return "Payment failed. Your dues are unchanged."
	case errors.Is(err, checkout.ErrVerificationFailed):
		return "We could not confirm your payment. Support has been notified."
	case errors.Is(err, checkout.ErrCouldNotStart):
		return "Could not start the payment. Please try again."
	}
	for _, p := range plain {
		if errors.Is(err, p) {
			msg := p.Error()
			if i := strings.Index(msg, ": "); i >= 0 {
				msg = msg[i+2:]
			}
			return strings.ToUpper(msg[:1]) + msg[1:] + "."
		}
	}
	return api.Message(err)
}
