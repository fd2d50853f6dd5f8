package auth

import "errors"

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNotAuthorized    = errors.New("not authorized")
)

// Requirement tags an operation with the access it needs.
type Requirement int

const (
	RequireNone Requirement = iota
	// RequireLogin covers borrowing, returning, reviewing and personal listings.
	RequireLogin
	// RequireAdmin covers the administrative data views.
	RequireAdmin
)

func (r Requirement) String() string {
	switch r {
	case RequireLogin:
		return "login"
	case RequireAdmin:
		return "admin"
	default:
		return "none"
	}
}

// Check returns nil when p may perform an operation tagged r, and
// ErrNotAuthenticated or ErrNotAuthorized otherwise. A nil principal is
// treated as anonymous.
func Check(p *Principal, r Requirement) error {
	if p == nil {
		p = Anonymous()
	}
	switch r {
	case RequireLogin:
		if p.IsAnonymous() {
			return ErrNotAuthenticated
		}
	case RequireAdmin:
		if p.IsAnonymous() || !p.IsAdmin {
			return ErrNotAuthorized
		}
	}
	return nil
}
