package services

import "github.com/messmate/mess-client/internal/core/domain"

// Well-known paths the guard routes between.
const (
	PathLogin     = "/login"
	PathRegister  = "/register"
	PathProfile   = "/profile"
	PathDashboard = "/dashboard"
)

type GuardAction int

const (
	// ActionShowLoading blocks rendering until the startup probe settles.
	ActionShowLoading GuardAction = iota
	// ActionRender lets the requested view through unmodified.
	ActionRender
	// ActionRedirect sends the user elsewhere, optionally with a notice.
	ActionRedirect
)

// Notice is the user-facing explanation attached to a forced redirect.
type Notice struct {
	Kind  domain.NotificationKind
	Title string
	Body  string
}

// Decision is the guard's verdict for a single navigation.
type Decision struct {
	Action GuardAction
	// To is the redirect target when Action is ActionRedirect.
	To string
	// From remembers the originally requested path so the user can be
	// returned there after the condition clears.
	From string
	// Notice explains the redirect. Nil for the default not-logged-in
	// case, which stays silent so cold loads don't spam the user.
	Notice *Notice
}

// Decide maps session state and the requested path to a render, redirect,
// or loading verdict. It is a pure function: no hidden state, identical
// inputs always produce identical decisions. Rules are evaluated in
// order; the first match wins.
func Decide(loading bool, ident *domain.Identity, path string) Decision {
	if loading {
		return Decision{Action: ActionShowLoading}
	}
	if ident == nil {
		return Decision{Action: ActionRedirect, To: PathLogin, From: path}
	}

	switch ident.Status {
	case domain.StatusUnverified:
		if path != PathRegister && path != PathLogin {
			return Decision{
				Action: ActionRedirect,
				To:     PathRegister,
				From:   path,
				Notice: &Notice{
					Kind:  domain.NoticeWarning,
					Title: "OTP Not Verified",
					Body:  "Please complete OTP verification to activate your account.",
				},
			}
		}
	case domain.StatusRegistrationComplete:
		if path != PathProfile {
			return Decision{
				Action: ActionRedirect,
				To:     PathProfile,
				From:   path,
				Notice: &Notice{
					Kind:  domain.NoticeInfo,
					Title: "Profile Incomplete",
					Body:  "Please complete your profile to continue.",
				},
			}
		}
	}

	return Decision{Action: ActionRender}
}

// EntryRedirect handles the login and registration entry points: a user
// who already has an identity is bounced to the dashboard instead of
// being allowed to re-authenticate. This rule belongs to the routing
// layer and is evaluated before Decide.
func EntryRedirect(ident *domain.Identity, path string) (string, bool) {
	if ident != nil && (path == PathLogin || path == PathRegister) {
		return PathDashboard, true
	}
	return "", false
}
