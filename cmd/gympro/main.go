package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/gympro/gympro-client/internal/app"
	"github.com/gympro/gympro-client/internal/auth"
	"github.com/gympro/gympro-client/internal/config"
	"github.com/gympro/gympro-client/internal/router"
)

// notice is an error whose text is already meant for the user.
type notice string

func (n notice) Error() string { return string(n) }

type cli struct {
	a   *app.App
	out io.Writer
	in  *bufio.Reader
}

type command struct {
	help  string
	route string // entered through the role gate before run, "" for public
	run   func(ctx context.Context, c *cli, args []string) error
}

var commands = map[string]command{
	"login":           {"sign in", "", cmdLogin},
	"logout":          {"sign out", "", cmdLogout},
	"whoami":          {"show the signed in user", "", cmdWhoami},
	"register":        {"create a member account", router.Register, cmdRegister},
	"forgot-password": {"request a password reset link", router.ForgotPassword, cmdForgotPassword},
	"reset-password":  {"set a new password with a reset token", router.ResetPassword, cmdResetPassword},
	"change-password": {"change your password", "", cmdChangePassword},
	"dashboard":       {"show the dashboard for your role", "", cmdDashboard},
	"members":         {"members [list|add|update|delete]", router.OwnerMembers, cmdMembers},
	"plans":           {"plans [list|delete]", router.OwnerPlans, cmdPlans},
	"supplements":     {"supplements list", router.OwnerSupplements, cmdSupplements},
	"payments":        {"payments [list|record]", "", cmdPayments},
	"attendance":      {"attendance [today|checkin|checkout]", "", cmdAttendance},
	"store":           {"store [list|buy id[:qty]...]", router.MemberStore, cmdStore},
	"pay-dues":        {"pay your outstanding dues online", router.MemberPayments, cmdPayDues},
	"reminders":       {"reminders [pending|send|schedule]", router.OwnerReminders, cmdReminders},
	"report":          {"report <type> [--format pdf|xlsx] [--sink dir|s3|telegram]", router.OwnerReports, cmdReport},
	"settings":        {"settings [show|set]", router.OwnerSettings, cmdSettings},
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: gympro [--config file] <command> [args]")
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, n := range names {
		fmt.Fprintf(tw, "  %s\t%s\n", n, commands[n].help)
	}
	_ = tw.Flush()
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("gympro", pflag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.SetOutput(stderr)
	cfgPath := fs.StringP("config", "c", "config/example.yaml", "config file")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	args := fs.Args()
	if len(args) == 0 {
		usage(stderr)
		return 2
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		usage(stderr)
		return 2
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(stderr, "config:", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		fmt.Fprintln(stderr, app.Notice(err))
		return 1
	}
	defer a.Close()

	c := &cli{a: a, out: stdout, in: bufio.NewReader(stdin)}
	if cmd.route != "" {
		err = a.Enter(cmd.route)
	}
	if err == nil {
		err = cmd.run(ctx, c, args[1:])
	}
	if err != nil {
		var n notice
		if errors.As(err, &n) {
			fmt.Fprintln(stderr, string(n))
		} else {
			fmt.Fprintln(stderr, app.Notice(err))
		}
		a.Log.Debug("command failed", "command", args[0], "err", err)
		return 1
	}
	return 0
}

func (c *cli) prompt(label string) string {
	fmt.Fprint(c.out, label+": ")
	line, _ := c.in.ReadString('\n')
	return strings.TrimSpace(line)
}

// confirm asks on the terminal unless --yes was given.
func (c *cli) confirm(yes bool) func(string) bool {
	return func(question string) bool {
		if yes {
			return true
		}
		ans := strings.ToLower(c.prompt(question + " [y/N]"))
		return ans == "y" || ans == "yes"
	}
}

func (c *cli) table(header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	return tw
}

func row(tw io.Writer, cols ...any) {
	parts := make([]string, len(cols))
	for i, v := range cols {
		parts[i] = fmt.Sprint(v)
	}
	fmt.Fprintln(tw, strings.Join(parts, "\t"))
}

func sub(args []string, def string) (string, []string) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return def, args
	}
	return args[0], args[1:]
}

func flags(name string) *pflag.FlagSet {
	return pflag.NewFlagSet(name, pflag.ContinueOnError)
}

func (c *cli) requireLogin() error {
	u := c.a.Session.Current()
	if u == nil {
		c.a.Nav.Navigate(router.Login)
		return notice("Please sign in first: gympro login")
	}
	return nil
}

// enterFor picks the owner or member route for commands both roles use.
func (c *cli) enterFor(owner, member string) (bool, error) {
	if err := c.requireLogin(); err != nil {
		return false, err
	}
	isOwner := c.a.Session.Current().Role == auth.RoleOwner
	route := member
	if isOwner {
		route = owner
	}
	return isOwner, c.a.Enter(route)
}

func parse(fs *pflag.FlagSet, args []string) error {
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		return notice(err.Error())
	}
	return nil
}
