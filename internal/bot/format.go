package bot

import (
	"fmt"
	"strings"

	"github.com/gympro/gympro-client/internal/domain/dashboard"
	"github.com/gympro/gympro-client/internal/domain/reminders"
	"github.com/gympro/gympro-client/internal/report"
)

const maxPendingLines = 20

func formatStats(s dashboard.Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Members: %d total, %d active, %d expired, %d pending\n",
		s.TotalMembers, s.ActiveMembers, s.ExpiredMembers, s.PendingMembers)
	fmt.Fprintf(&b, "Revenue this month: %s\n", report.Money(s.MonthlyRevenue.InexactFloat64()))
	fmt.Fprintf(&b, "Pending dues: %s\n", report.Money(s.PendingDues.InexactFloat64()))
	fmt.Fprintf(&b, "Checked in today: %d\n", s.TodayAttendance)
	fmt.Fprintf(&b, "Expiring soon: %d", s.ExpiringSoon)
	return b.String()
}

func formatPending(ps []reminders.Pending) string {
	if len(ps) == 0 {
		return "No pending reminders."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d pending reminders:\n", len(ps))
	for i, p := range ps {
		if i == maxPendingLines {
			fmt.Fprintf(&b, "... and %d more", len(ps)-i)
			break
		}
		switch p.Type {
		case reminders.KindDue:
			fmt.Fprintf(&b, "- %s: dues %s\n", p.MemberName, report.Money(p.DueAmount.InexactFloat64()))
		default:
			line := "- " + p.MemberName + ": expiring"
			if p.ExpiryDate != nil {
				line += " on " + *p.ExpiryDate
			}
			if p.DaysLeft != nil {
				line += fmt.Sprintf(" (%d days left)", *p.DaysLeft)
			}
			b.WriteString(line + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
