package payments

import (
	"github.com/shopspring/decimal"

	"github.com/gympro/gympro-client/internal/api"
)

type Status string

const (
	StatusPaid    Status = "paid"
	StatusPending Status = "pending"
	StatusOverdue Status = "overdue"
)

// Payment is an append-only ledger entry. Amount is in whole rupees.
type Payment struct {
	ID                api.ID          `json:"id"`
	MemberID          api.ID          `json:"memberId"`
	MemberName        *string         `json:"memberName,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	Date              string          `json:"date"`
	Status            Status          `json:"status"`
	PlanID            api.ID          `json:"planId"`
	Method            string          `json:"method"`
	InvoiceID         *string         `json:"invoiceId,omitempty"`
	RazorpayOrderID   *string         `json:"razorpayOrderId,omitempty"`
	RazorpayPaymentID *string         `json:"razorpayPaymentId,omitempty"`
}

// Form records an offline (cash, card at desk) payment.
type Form struct {
	MemberID api.ID          `json:"memberId"`
	Amount   decimal.Decimal `json:"amount"`
	PlanID   api.ID          `json:"planId"`
	Method   string          `json:"method"`
	Date     string          `json:"date,omitempty"`
}
