package main

import (
	"context"
	"fmt"

	"github.com/gympro/gympro-client/internal/auth"
	"github.com/gympro/gympro-client/internal/router"
)

func cmdLogin(ctx context.Context, c *cli, args []string) error {
	fs := flags("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "password (prompted when empty)")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *email == "" {
		*email = c.prompt("Email")
	}
	if *password == "" {
		*password = c.prompt("Password")
	}

	ok, err := c.a.Session.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	if !ok {
		return notice("Invalid email or password")
	}
	u := c.a.Session.Current()
	c.a.Nav.Navigate(router.Landing(u.Role))
	fmt.Fprintf(c.out, "Signed in as %s (%s)\n", u.Name, u.Role)
	return nil
}

func cmdLogout(ctx context.Context, c *cli, _ []string) error {
	if err := c.a.Session.Logout(ctx); err != nil {
		return err
	}
	c.a.Nav.Navigate(router.Login)
	fmt.Fprintln(c.out, "Signed out")
	return nil
}

func cmdWhoami(_ context.Context, c *cli, _ []string) error {
	if err := c.requireLogin(); err != nil {
		return err
	}
	u := c.a.Session.Current()
	fmt.Fprintf(c.out, "%s <%s>\nrole: %s\nid: %s\n", u.Name, u.Email, u.Role, u.ID)
	if u.Phone != nil {
		fmt.Fprintf(c.out, "phone: %s\n", *u.Phone)
	}
	return nil
}

func cmdRegister(ctx context.Context, c *cli, args []string) error {
	fs := flags("register")
	var f auth.RegisterForm
	fs.StringVar(&f.Name, "name", "", "full name")
	fs.StringVar(&f.Email, "email", "", "email")
	fs.StringVar(&f.Phone, "phone", "", "phone")
	fs.StringVar(&f.Password, "password", "", "password")
	fs.StringVar(&f.ConfirmPassword, "confirm", "", "password again")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := c.a.Session.Register(ctx, f); err != nil {
		return err
	}
	c.a.Nav.Navigate(router.Login)
	fmt.Fprintln(c.out, "Account created. Sign in with: gympro login --email", f.Email)
	return nil
}

func cmdForgotPassword(ctx context.Context, c *cli, args []string) error {
	fs := flags("forgot-password")
	email := fs.String("email", "", "account email")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := c.a.Session.ForgotPassword(ctx, *email); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "If that address has an account, a reset link is on its way.")
	return nil
}

func cmdResetPassword(ctx context.Context, c *cli, args []string) error {
	fs := flags("reset-password")
	token := fs.String("token", "", "token from the reset link")
	password := fs.String("password", "", "new password")
	confirm := fs.String("confirm", "", "new password again")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := c.a.Session.ResetPassword(ctx, *token, *password, *confirm); err != nil {
		return err
	}
	c.a.Nav.Navigate(router.Login)
	fmt.Fprintln(c.out, "Password updated. You can sign in now.")
	return nil
}

func cmdChangePassword(ctx context.Context, c *cli, args []string) error {
	if _, err := c.enterFor(router.OwnerSettings, router.MemberProfile); err != nil {
		return err
	}
	fs := flags("change-password")
	current := fs.String("current", "", "current password")
	password := fs.String("password", "", "new password")
	confirm := fs.String("confirm", "", "new password again")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := c.a.Session.ChangePassword(ctx, *current, *password, *confirm); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Password changed.")
	return nil
}
