package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/gympro/gympro-client/internal/api"
	"github.com/gympro/gympro-client/internal/infra/logger"
	"github.com/gympro/gympro-client/internal/infra/metrics"
	"github.com/gympro/gympro-client/internal/notify"
)

var (
	ErrNothingDue         = errors.New("checkout: nothing due")
	ErrCouldNotStart      = errors.New("checkout: payment could not be started")
	ErrDismissed          = errors.New("checkout: payment window closed")
	ErrPaymentFailed      = errors.New("checkout: payment failed")
	ErrVerificationFailed = errors.New("checkout: payment could not be verified")
)

// Order is the gateway payment intent. Amount is in paise.
type Order struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"keyId"`
}

type orderRequest struct {
	MemberID api.ID          `json:"memberId"`
	Amount   decimal.Decimal `json:"amount"`
}

type verifyRequest struct {
	RazorpayOrderID   string `json:"razorpayOrderId"`
	RazorpayPaymentID string `json:"razorpayPaymentId"`
	RazorpaySignature string `json:"razorpaySignature"`
	MemberID          api.ID `json:"memberId"`
}

type verifyResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type Payer struct {
	ID    api.ID
	Name  string
	Email string
	Phone string
}

type Receipt struct {
	OrderID   string
	PaymentID string
	Amount    decimal.Decimal
}

// Opener shows a page to the user, normally by starting a browser.
type Opener interface {
	Open(url string) error
}

type OpenerFunc func(url string) error

func (f OpenerFunc) Open(url string) error { return f(url) }

type Flow struct {
	api     *api.Client
	loader  *Loader
	server  *Server
	opener  Opener
	support notify.Notifier
	log     *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Flow)

// WithSupport sets who hears about payments the backend refused to verify.
func WithSupport(n notify.Notifier) Option  { return func(f *Flow) { f.support = n } }
func WithLogger(l *slog.Logger) Option      { return func(f *Flow) { f.log = l } }
func WithMetrics(m *metrics.Metrics) Option { return func(f *Flow) { f.metrics = m } }

func NewFlow(c *api.Client, loader *Loader, srv *Server, opener Opener, opts ...Option) *Flow {
	f := &Flow{
		api:     c,
		loader:  loader,
		server:  srv,
		opener:  opener,
		support: notify.Nop{},
		log:     logger.Discard(),
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// PayDues charges amount rupees for the member and blocks until the
// gateway reports back or ctx ends. The due amount only changes on the
// backend after a verified success.
func (f *Flow) PayDues(ctx context.Context, p Payer, amount decimal.Decimal) (Receipt, error) {
	if !amount.IsPositive() {
		return Receipt{}, ErrNothingDue
	}
	rc, outcome, err := f.pay(ctx, p, amount)
	f.metrics.CheckoutOutcome(outcome)
	if err != nil {
		f.log.Warn("checkout ended", "member", p.ID, "outcome", outcome, "err", err)
	} else {
		f.log.Info("checkout paid", "member", p.ID, "order", rc.OrderID, "payment", rc.PaymentID)
	}
	return rc, err
}

func (f *Flow) pay(ctx context.Context, p Payer, amount decimal.Decimal) (Receipt, string, error) {
	var o Order
	if err := f.api.Post(ctx, "/razorpay/create-membership-order", orderRequest{MemberID: p.ID, Amount: amount}, &o); err != nil {
		return Receipt{}, "not_started", fmt.Errorf("%w: %w", ErrCouldNotStart, err)
	}
	if err := f.loader.Ensure(ctx); err != nil {
		return Receipt{}, "not_started", fmt.Errorf("%w: %w", ErrCouldNotStart, err)
	}

	path, done, forget := f.server.Open(o, Prefill{Name: p.Name, Email: p.Email, Phone: p.Phone})
	defer forget()
	if err := f.opener.Open(f.server.BaseURL() + path); err != nil {
		return Receipt{}, "not_started", fmt.Errorf("%w: %w", ErrCouldNotStart, err)
	}

	var cb Callback
	select {
	case <-ctx.Done():
		return Receipt{}, "abandoned", ctx.Err()
	case cb = <-done:
	}

	switch cb.Outcome {
	case Dismissed:
		return Receipt{}, "dismissed", ErrDismissed
	case Failed:
		if cb.Reason != "" {
			return Receipt{}, "failed", fmt.Errorf("%w: %s", ErrPaymentFailed, cb.Reason)
		}
		return Receipt{}, "failed", ErrPaymentFailed
	}

	if cb.OrderID != o.OrderID {
		return Receipt{}, "failed", fmt.Errorf("%w: callback for order %q, expected %q", ErrPaymentFailed, cb.OrderID, o.OrderID)
	}

	rc := Receipt{OrderID: o.OrderID, PaymentID: cb.PaymentID, Amount: amount}
	var v verifyResponse
	err := f.api.Post(ctx, "/razorpay/verify-membership-payment", verifyRequest{
		RazorpayOrderID:   o.OrderID,
		RazorpayPaymentID: cb.PaymentID,
		RazorpaySignature: cb.Signature,
		MemberID:          p.ID,
	}, &v)
	if err == nil && !v.Success {
		err = errors.New(v.Message)
		if v.Message == "" {
			err = errors.New("rejected by backend")
		}
	}
	if err != nil {
		alert := fmt.Sprintf("Payment %s (order %s) by %s for Rs. %s was charged but not verified: %s",
			cb.PaymentID, o.OrderID, p.Name, amount.StringFixed(0), err)
		if nerr := f.support.Notify(context.WithoutCancel(ctx), alert); nerr != nil {
			f.log.Error("support alert failed", "err", nerr)
		}
		return rc, "unverified", fmt.Errorf("%w: %w", ErrVerificationFailed, err)
	}
	return rc, "paid", nil
}
