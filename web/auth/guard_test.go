package auth

import (
	"testing"

	"github.com/raimis707/bookshelf/database/model"

	"github.com/stretchr/testify/assert"
)

func TestCheck(t *testing.T) {
	reader := FromUser(&model.User{Id: 3, EmailAddress: "a@x.com", FirstName: "A"})
	admin := FromUser(&model.User{Id: 1, EmailAddress: "root@x.com", IsAdmin: true})

	cases := []struct {
		name      string
		principal *Principal
		req       Requirement
		want      error
	}{
		{"anonymous open route", Anonymous(), RequireNone, nil},
		{"anonymous login route", Anonymous(), RequireLogin, ErrNotAuthenticated},
		{"anonymous admin route", Anonymous(), RequireAdmin, ErrNotAuthorized},
		{"nil principal", nil, RequireLogin, ErrNotAuthenticated},
		{"reader login route", reader, RequireLogin, nil},
		{"reader admin route", reader, RequireAdmin, ErrNotAuthorized},
		{"admin login route", admin, RequireLogin, nil},
		{"admin admin route", admin, RequireAdmin, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Check(tc.principal, tc.req)
			if tc.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}

func TestAnonymousIsNeverAdmin(t *testing.T) {
	p := Anonymous()
	assert.True(t, p.IsAnonymous())
	assert.False(t, p.IsAuthenticated())
	assert.False(t, p.IsAdmin)

	// An admin flag on a principal without identity grants nothing.
	forged := &Principal{IsAdmin: true}
	assert.ErrorIs(t, Check(forged, RequireAdmin), ErrNotAuthorized)
}
