// Package router holds the client routes and the role gates in front of
// them.
package router

import (
	"strings"
	"sync"

	"github.com/gympro/gympro-client/internal/auth"
)

const (
	Login          = "/login"
	Register       = "/register"
	ForgotPassword = "/forgot-password"
	ResetPassword  = "/reset-password"

	OwnerDashboard   = "/owner/dashboard"
	OwnerMembers     = "/owner/members"
	OwnerPlans       = "/owner/plans"
	OwnerPayments    = "/owner/payments"
	OwnerAttendance  = "/owner/attendance"
	OwnerSupplements = "/owner/supplements"
	OwnerReminders   = "/owner/reminders"
	OwnerReports     = "/owner/reports"
	OwnerSettings    = "/owner/settings"

	MemberDashboard  = "/member/dashboard"
	MemberPayments   = "/member/payments"
	MemberAttendance = "/member/attendance"
	MemberStore      = "/member/store"
	MemberProfile    = "/member/profile"
)

// Navigator moves the client to another route.
type Navigator interface {
	Navigate(route string)
}

type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) { f(route) }

// Recorder is a Navigator that remembers where it was sent.
type Recorder struct {
	mu      sync.Mutex
	current string
	history []string
}

func NewRecorder(start string) *Recorder { return &Recorder{current: start} }

func (r *Recorder) Navigate(route string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = route
	r.history = append(r.history, route)
}

func (r *Recorder) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *Recorder) History() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.history...)
}

// Landing is the home route for a role.
func Landing(role auth.Role) string {
	if role == auth.RoleOwner {
		return OwnerDashboard
	}
	return MemberDashboard
}

// Gate decides whether u may see a screen that requires role. When not,
// redirect is where the visitor should go instead.
func Gate(u *auth.User, role auth.Role) (ok bool, redirect string) {
	if u == nil {
		return false, Login
	}
	if u.Role != role {
		return false, Landing(u.Role)
	}
	return true, ""
}

// Required maps a route to the role it needs; public routes need none.
func Required(route string) (auth.Role, bool) {
	switch {
	case strings.HasPrefix(route, "/owner/"):
		return auth.RoleOwner, true
	case strings.HasPrefix(route, "/member/"):
		return auth.RoleMember, true
	default:
		return "", false
	}
}

// Guard applies Gate to route ahead of navigating there and returns the
// route that was actually entered. A signed in user asking for a public
// auth screen is sent to their landing route.
func Guard(nav Navigator, u *auth.User, route string) string {
	role, gated := Required(route)
	if !gated {
		if u != nil && isAuthScreen(route) {
			route = Landing(u.Role)
		}
		nav.Navigate(route)
		return route
	}
	if ok, redirect := Gate(u, role); !ok {
		route = redirect
	}
	nav.Navigate(route)
	return route
}

func isAuthScreen(route string) bool {
	switch route {
	case Login, Register, ForgotPassword, ResetPassword:
		return true
	}
	return false
}
