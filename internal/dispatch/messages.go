package dispatch

import (
	"fmt"

	"github.com/gympro/gympro-client/internal/domain/reminders"
)

func DefaultBody(brand string) string {
	return fmt.Sprintf(`Hello,

This is a friendly reminder from **%s** about your membership.
Please renew your plan or clear any outstanding dues at the front desk or in the member portal.

Thank you for training with us!`, brand)
}

// Text is the SMS for one pending member.
func Text(brand string, p reminders.Pending) string {
	if p.Type == reminders.KindDue {
		return fmt.Sprintf("%s: Hi %s, you have Rs. %s due. Please clear it at the front desk.",
			brand, p.MemberName, p.DueAmount.StringFixed(0))
	}
	when := "soon"
	if p.ExpiryDate != nil {
		when = "on " + *p.ExpiryDate
	}
	if p.DaysLeft != nil {
		return fmt.Sprintf("%s: Hi %s, your membership expires %s (%d days left). Renew to keep training.",
			brand, p.MemberName, when, *p.DaysLeft)
	}
	return fmt.Sprintf("%s: Hi %s, your membership expires %s. Renew to keep training.",
		brand, p.MemberName, when)
}
