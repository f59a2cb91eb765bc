package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gympro/gympro-client/internal/api"
	"github.com/gympro/gympro-client/internal/checkout"
	"github.com/gympro/gympro-client/internal/screen"
)

func memberDashboard(ctx context.Context, c *cli) error {
	d := screen.NewMemberDashboard(ctx, c.a.Members, c.a.Payments, c.a.Attendance, c.a.Log)
	defer d.Close()
	if err := d.Load(); err != nil {
		return err
	}
	me := d.Me
	fmt.Fprintf(c.out, "%s (%s)\nstatus: %s, expires %s\ndue: Rs. %s, paid: Rs. %s\n",
		me.Name, me.Email, me.Status, me.ExpiryDate, me.DueAmount.StringFixed(0), me.PaidAmount.StringFixed(0))
	fmt.Fprintf(c.out, "visits: %d, payments: %d\n", len(d.Visits), len(d.Payments))
	return nil
}

func cmdStore(ctx context.Context, c *cli, args []string) error {
	action, args := sub(args, "list")
	s := screen.NewStore(ctx, c.a.Supplements, c.a.Orders, c.a.Log)
	defer s.Close()
	if err := s.Load(); err != nil {
		return err
	}

	switch action {
	case "list":
		tw := c.table("id", "name", "category", "price", "in stock")
		for _, it := range s.Catalog() {
			row(tw, it.ID, it.Name, it.Category, it.Price.StringFixed(0), it.Stock)
		}
		return tw.Flush()
	case "buy":
		if len(args) == 0 {
			return notice("usage: gympro store buy <id>[:qty] ...")
		}
		for _, a := range args {
			id, qty, err := item(a)
			if err != nil {
				return err
			}
			for i := 0; i < qty; i++ {
				if err := s.Add(id); err != nil {
					return err
				}
			}
		}
		me, err := c.a.Members.Me(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "%d items, total Rs. %s\n", s.Cart.Count(), s.Cart.Total().StringFixed(0))
		o, err := s.PlaceOrder(me.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Order %s placed, status %s.\n", o.ID, o.Status)
		return nil
	}
	return notice("unknown store action " + action)
}

func item(arg string) (api.ID, int, error) {
	id, qty, found := strings.Cut(arg, ":")
	if !found {
		return api.ID(id), 1, nil
	}
	n, err := strconv.Atoi(qty)
	if err != nil || n < 1 {
		return "", 0, notice("bad quantity in " + arg)
	}
	return api.ID(id), n, nil
}

func cmdPayDues(ctx context.Context, c *cli, _ []string) error {
	me, err := c.a.Members.Me(ctx)
	if err != nil {
		return err
	}
	flow, stop, err := c.a.Checkout(nil)
	if err != nil {
		return err
	}
	defer stop()

	fmt.Fprintf(c.out, "Opening the payment page for Rs. %s...\n", me.DueAmount.StringFixed(0))
	rc, err := flow.PayDues(ctx, checkout.Payer{ID: me.ID, Name: me.Name, Email: me.Email, Phone: me.Phone}, me.DueAmount)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Payment %s confirmed. Thank you!\n", rc.PaymentID)
	return nil
}
