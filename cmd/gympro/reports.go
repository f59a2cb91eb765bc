package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gympro/gympro-client/internal/api"
	"github.com/gympro/gympro-client/internal/dispatch"
	"github.com/gympro/gympro-client/internal/domain/reminders"
	"github.com/gympro/gympro-client/internal/report"
	"github.com/gympro/gympro-client/internal/screen"
)

func cmdReport(ctx context.Context, c *cli, args []string) error {
	fs := flags("report")
	format := fs.String("format", "pdf", "pdf or xlsx")
	sink := fs.String("sink", "dir", "dir, s3 or telegram")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return notice("usage: gympro report <revenue|membership|attendance|products|complete>")
	}
	t, err := report.ParseType(fs.Arg(0))
	if err != nil {
		return notice(err.Error())
	}
	f, err := report.ParseFormat(*format)
	if err != nil {
		return notice(err.Error())
	}

	e, err := c.a.Exporter(ctx, *sink)
	if err != nil {
		return notice("Export failed: " + err.Error())
	}
	res, err := e.Export(ctx, t, f)
	if err != nil {
		c.a.Log.Error("export failed", "type", t, "err", err)
		return notice("Export failed. Please try again.")
	}
	fmt.Fprintf(c.out, "Saved %s (%d bytes)\n", res.Location, res.Size)
	return nil
}

func cmdReminders(ctx context.Context, c *cli, args []string) error {
	action, args := sub(args, "pending")
	if action == "schedule" {
		return c.a.Daemon(ctx)
	}

	r := screen.NewReminders(ctx, c.a.Reminders, c.a.Dispatcher(), c.a.Log)
	defer r.Close()
	if err := r.Load(); err != nil {
		return err
	}

	switch action {
	case "pending":
		fs := flags("reminders pending")
		kind := fs.String("type", "", "expiry or due")
		if err := parse(fs, args); err != nil {
			return err
		}
		tw := c.table("member", "name", "email", "type", "expires", "due")
		for _, p := range r.Pending(reminders.Kind(*kind)) {
			exp := "-"
			if p.ExpiryDate != nil {
				exp = *p.ExpiryDate
			}
			row(tw, p.MemberID, p.MemberName, p.Email, p.Type, exp, p.DueAmount.StringFixed(0))
		}
		return tw.Flush()

	case "send":
		fs := flags("reminders send")
		all := fs.Bool("all", false, "every pending member")
		subject := fs.String("subject", "Membership reminder", "email subject")
		file := fs.String("message-file", "", "markdown body")
		if err := parse(fs, args); err != nil {
			return err
		}
		body := dispatch.DefaultBody(c.a.Brand())
		if *file != "" {
			data, err := os.ReadFile(*file)
			if err != nil {
				return notice("cannot read " + *file)
			}
			body = string(data)
		}
		if *all {
			r.SelectAll()
		}
		for _, id := range fs.Args() {
			r.Toggle(api.ID(id))
		}
		res, err := r.Send(*subject, body)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Sent %d, failed %d\n", res.Sent, res.Failed)
		for _, e := range res.Errors {
			fmt.Fprintln(c.out, "  ", e)
		}
		return nil
	}
	return notice("unknown reminders action " + action)
}
