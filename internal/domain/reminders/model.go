package reminders

import (
	"github.com/shopspring/decimal"

	"github.com/gympro/gympro-client/internal/api"
)

type Kind string

const (
	KindExpiry Kind = "expiry"
	KindDue    Kind = "due"
)

// Pending is a member that qualifies for a reminder right now.
type Pending struct {
	MemberID   api.ID          `json:"memberId"`
	MemberName string          `json:"memberName"`
	Email      string          `json:"email"`
	Phone      *string         `json:"phone,omitempty"`
	Type       Kind            `json:"type"`
	ExpiryDate *string         `json:"expiryDate,omitempty"`
	DueAmount  decimal.Decimal `json:"dueAmount"`
	DaysLeft   *int            `json:"daysLeft,omitempty"`
}

type EmailRequest struct {
	MemberIDs []api.ID `json:"memberIds"`
	Subject   string   `json:"subject"`
	Message   string   `json:"message"`
	HTML      string   `json:"html,omitempty"`
}

type EmailResult struct {
	Sent   int      `json:"sent"`
	Failed int      `json:"failed"`
	Errors []string `json:"errors,omitempty"`
}
