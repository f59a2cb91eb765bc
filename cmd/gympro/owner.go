package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gympro/gympro-client/internal/api"
	"github.com/gympro/gympro-client/internal/domain/members"
	"github.com/gympro/gympro-client/internal/domain/payments"
	"github.com/gympro/gympro-client/internal/domain/settings"
	"github.com/gympro/gympro-client/internal/router"
	"github.com/gympro/gympro-client/internal/screen"
)

func cmdDashboard(ctx context.Context, c *cli, _ []string) error {
	owner, err := c.enterFor(router.OwnerDashboard, router.MemberDashboard)
	if err != nil {
		return err
	}
	if !owner {
		return memberDashboard(ctx, c)
	}
	d := screen.NewOwnerDashboard(ctx, c.a.Dashboard, c.a.Log)
	defer d.Close()
	if err := d.Load(); err != nil {
		return err
	}
	s := d.Stats
	tw := c.table("metric", "value")
	row(tw, "Total members", s.TotalMembers)
	row(tw, "Active", s.ActiveMembers)
	row(tw, "Expired", s.ExpiredMembers)
	row(tw, "Pending", s.PendingMembers)
	row(tw, "Monthly revenue", "Rs. "+s.MonthlyRevenue.StringFixed(0))
	row(tw, "Pending dues", "Rs. "+s.PendingDues.StringFixed(0))
	row(tw, "Today's attendance", s.TodayAttendance)
	row(tw, "Expiring soon", s.ExpiringSoon)
	return tw.Flush()
}

func cmdMembers(ctx context.Context, c *cli, args []string) error {
	action, args := sub(args, "list")
	m := screen.NewMembers(ctx, c.a.Members, c.a.Plans, c.a.Log)
	defer m.Close()

	switch action {
	case "list":
		fs := flags("members list")
		query := fs.StringP("query", "q", "", "match name, email or phone")
		status := fs.String("status", "", "active, expired or pending")
		if err := parse(fs, args); err != nil {
			return err
		}
		if err := m.Load(); err != nil {
			return err
		}
		tw := c.table("id", "name", "email", "phone", "plan", "status", "expires", "due")
		for _, r := range m.Search(*query, members.Status(*status)) {
			row(tw, r.ID, r.Name, r.Email, r.Phone, r.PlanName, r.Status, r.ExpiryDate, r.DueAmount.StringFixed(0))
		}
		return tw.Flush()

	case "add", "update":
		fs := flags("members " + action)
		id := fs.String("id", "", "member id (update only)")
		var f members.Form
		var plan, password string
		fs.StringVar(&f.Name, "name", "", "full name")
		fs.StringVar(&f.Email, "email", "", "email")
		fs.StringVar(&f.Phone, "phone", "", "phone")
		fs.StringVar(&f.Address, "address", "", "address")
		fs.StringVar(&f.JoiningDate, "joined", time.Now().Format(time.DateOnly), "joining date YYYY-MM-DD")
		fs.StringVar(&plan, "plan", "", "plan id")
		fs.StringVar(&password, "password", "", "initial password for the member portal")
		if err := parse(fs, args); err != nil {
			return err
		}
		f.PlanID = api.ID(plan)
		if password != "" {
			f.Password = &password
		}
		if action == "update" && *id == "" {
			return notice("--id is required")
		}
		if err := m.Save(api.ID(*id), f); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Saved. %d members.\n", len(m.Items()))
		return nil

	case "delete":
		fs := flags("members delete")
		yes := fs.BoolP("yes", "y", false, "do not ask")
		if err := parse(fs, args); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return notice("usage: gympro members delete <id>")
		}
		if err := m.Load(); err != nil {
			return err
		}
		id := api.ID(fs.Arg(0))
		name := string(id)
		if mem, ok := m.Find(id); ok {
			name = mem.Name
		}
		if err := m.Delete(id, c.confirm(*yes), "Delete member "+name+"?"); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "Member deleted.")
		return nil
	}
	return notice("unknown members action " + action)
}

func cmdPlans(ctx context.Context, c *cli, args []string) error {
	action, args := sub(args, "list")
	p := screen.NewPlans(ctx, c.a.Plans, c.a.Log)
	defer p.Close()
	if err := p.Load(); err != nil {
		return err
	}
	switch action {
	case "list":
		tw := c.table("id", "name", "months", "price", "features")
		for _, pl := range p.Items() {
			row(tw, pl.ID, pl.Name, pl.Duration, pl.Price.StringFixed(0), len(pl.Features))
		}
		return tw.Flush()
	case "delete":
		fs := flags("plans delete")
		yes := fs.BoolP("yes", "y", false, "do not ask")
		if err := parse(fs, args); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return notice("usage: gympro plans delete <id>")
		}
		if err := p.Delete(api.ID(fs.Arg(0)), c.confirm(*yes), "Delete this plan? Members on it keep their record."); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "Plan deleted.")
		return nil
	}
	return notice("unknown plans action " + action)
}

func cmdSupplements(ctx context.Context, c *cli, args []string) error {
	_, args = sub(args, "list")
	fs := flags("supplements")
	query := fs.StringP("query", "q", "", "match name")
	category := fs.String("category", "", "category")
	if err := parse(fs, args); err != nil {
		return err
	}
	s := screen.NewSupplements(ctx, c.a.Supplements, c.a.Log)
	defer s.Close()
	if err := s.Load(); err != nil {
		return err
	}
	tw := c.table("id", "name", "category", "price", "stock")
	for _, it := range s.Filter(*query, *category) {
		row(tw, it.ID, it.Name, it.Category, it.Price.StringFixed(0), it.Stock)
	}
	return tw.Flush()
}

func cmdPayments(ctx context.Context, c *cli, args []string) error {
	owner, err := c.enterFor(router.OwnerPayments, router.MemberPayments)
	if err != nil {
		return err
	}
	action, args := sub(args, "list")
	if !owner {
		if action != "list" {
			return notice("members can only list their payments")
		}
		mine, err := c.a.Payments.Mine(ctx)
		if err != nil {
			return err
		}
		return printPayments(c, mine)
	}

	p := screen.NewPayments(ctx, c.a.Payments, c.a.Members, c.a.Log)
	defer p.Close()
	if err := p.Load(); err != nil {
		return err
	}
	switch action {
	case "list":
		fs := flags("payments list")
		status := fs.String("status", "", "paid, pending or overdue")
		if err := parse(fs, args); err != nil {
			return err
		}
		if err := printPayments(c, p.Rows(payments.Status(*status))); err != nil {
			return err
		}
		for st, total := range p.Totals() {
			fmt.Fprintf(c.out, "%s: Rs. %s\n", st, total.StringFixed(0))
		}
		return nil
	case "record":
		fs := flags("payments record")
		var member, plan, amount string
		f := payments.Form{}
		fs.StringVar(&member, "member", "", "member id")
		fs.StringVar(&plan, "plan", "", "plan id")
		fs.StringVar(&amount, "amount", "", "amount in rupees")
		fs.StringVar(&f.Method, "method", "cash", "cash, card or upi")
		fs.StringVar(&f.Date, "date", "", "payment date YYYY-MM-DD")
		if err := parse(fs, args); err != nil {
			return err
		}
		v, err := decimal.NewFromString(amount)
		if err != nil {
			return notice("--amount must be a number")
		}
		f.MemberID, f.PlanID, f.Amount = api.ID(member), api.ID(plan), v
		if err := p.Record(f); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "Payment recorded.")
		return nil
	}
	return notice("unknown payments action " + action)
}

func printPayments(c *cli, ps []payments.Payment) error {
	tw := c.table("id", "member", "amount", "date", "status", "method")
	for _, p := range ps {
		name := string(p.MemberID)
		if p.MemberName != nil {
			name = *p.MemberName
		}
		row(tw, p.ID, name, p.Amount.StringFixed(0), p.Date, p.Status, p.Method)
	}
	return tw.Flush()
}

func cmdAttendance(ctx context.Context, c *cli, args []string) error {
	owner, err := c.enterFor(router.OwnerAttendance, router.MemberAttendance)
	if err != nil {
		return err
	}
	action, args := sub(args, "today")
	if !owner {
		visits, err := c.a.Attendance.Mine(ctx)
		if err != nil {
			return err
		}
		tw := c.table("date", "in", "out")
		for _, v := range visits {
			out := "-"
			if !v.Open() {
				out = *v.CheckOut
			}
			row(tw, v.Date, v.CheckIn, out)
		}
		return tw.Flush()
	}

	fs := flags("attendance " + action)
	day := fs.String("date", time.Now().Format(time.DateOnly), "day YYYY-MM-DD")
	if err := parse(fs, args); err != nil {
		return err
	}
	at := screen.NewAttendance(ctx, c.a.Attendance, c.a.Members, *day, c.a.Log)
	defer at.Close()
	if err := at.Load(); err != nil {
		return err
	}

	switch action {
	case "today":
		p := at.Presence()
		fmt.Fprintf(c.out, "Present %d of %d active (%d%%), absent %d\n", p.Present, p.Active, p.Rate, p.Absent)
		tw := c.table("id", "member", "in", "out")
		for _, r := range at.Records() {
			name, out := string(r.MemberID), "-"
			if r.MemberName != nil {
				name = *r.MemberName
			}
			if !r.Open() {
				out = *r.CheckOut
			}
			row(tw, r.ID, name, r.CheckIn, out)
		}
		return tw.Flush()
	case "checkin":
		if fs.NArg() != 1 {
			return notice("usage: gympro attendance checkin <member-id>")
		}
		if err := at.CheckIn(api.ID(fs.Arg(0))); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "Checked in.")
		return nil
	case "checkout":
		if fs.NArg() != 1 {
			return notice("usage: gympro attendance checkout <record-id>")
		}
		if err := at.CheckOut(api.ID(fs.Arg(0))); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "Checked out.")
		return nil
	}
	return notice("unknown attendance action " + action)
}

func cmdSettings(ctx context.Context, c *cli, args []string) error {
	action, args := sub(args, "show")
	s := screen.NewSettings(ctx, c.a.Settings, c.a.Log)
	defer s.Close()
	if err := s.Load(); err != nil {
		return err
	}
	cur := s.Current()

	switch action {
	case "show":
		printSettings(c, cur)
		return nil
	case "set":
		fs := flags("settings set")
		hours := ""
		if cur.OpeningHours != nil {
			hours = *cur.OpeningHours
		}
		fs.StringVar(&cur.GymName, "gym-name", cur.GymName, "gym name")
		fs.StringVar(&cur.Email, "email", cur.Email, "contact email")
		fs.StringVar(&cur.Phone, "phone", cur.Phone, "contact phone")
		fs.StringVar(&cur.Address, "address", cur.Address, "address")
		fs.StringVar(&cur.Currency, "currency", cur.Currency, "currency code")
		fs.IntVar(&cur.ReminderDaysBefore, "reminder-days", cur.ReminderDaysBefore, "days before expiry to remind")
		fs.StringVar(&hours, "hours", hours, "opening hours")
		fs.BoolVar(&cur.EmailNotifications, "email-notifications", cur.EmailNotifications, "send email notifications")
		if err := parse(fs, args); err != nil {
			return err
		}
		if hours != "" {
			cur.OpeningHours = &hours
		}
		if err := s.Save(cur); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "Settings saved.")
		printSettings(c, s.Current())
		return nil
	}
	return notice("unknown settings action " + action)
}

func printSettings(c *cli, s settings.Settings) {
	tw := c.table("setting", "value")
	row(tw, "Gym name", s.GymName)
	row(tw, "Email", s.Email)
	row(tw, "Phone", s.Phone)
	row(tw, "Address", s.Address)
	row(tw, "Currency", s.Currency)
	row(tw, "Reminder days", s.ReminderDaysBefore)
	if s.OpeningHours != nil {
		row(tw, "Opening hours", *s.OpeningHours)
	}
	row(tw, "Email notifications", s.EmailNotifications)
	_ = tw.Flush()
}
