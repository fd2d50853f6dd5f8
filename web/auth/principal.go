// Package auth holds the request principal and the authorization guard that
// decides whether a principal may perform an operation.
package auth

import "github.com/raimis707/bookshelf/database/model"

// Principal is the actor behind a request. The zero Id marks the anonymous
// placeholder, which is never an administrator.
type Principal struct {
	Id           int    `json:"id"`
	EmailAddress string `json:"emailAddress"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	IsAdmin      bool   `json:"isAdmin"`
}

// Anonymous returns the placeholder principal for requests without a valid
// session.
func Anonymous() *Principal {
	return &Principal{}
}

// FromUser builds the principal for an authenticated user.
func FromUser(u *model.User) *Principal {
	return &Principal{
		Id:           u.Id,
		EmailAddress: u.EmailAddress,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsAdmin:      u.IsAdmin,
	}
}

func (p *Principal) IsAnonymous() bool {
	return p == nil || p.Id == 0
}

func (p *Principal) IsAuthenticated() bool {
	return !p.IsAnonymous()
}
