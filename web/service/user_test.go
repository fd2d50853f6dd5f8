package service

import (
	"strings"
	"testing"

	"github.com/raimis707/bookshelf/database/model"
	"github.com/raimis707/bookshelf/web/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignUpStoresHashedPassword(t *testing.T) {
	setupDB(t)
	s := UserService{}

	user := signUp(t, "  a@x.com ", "p1")
	assert.Equal(t, "a@x.com", user.EmailAddress)
	assert.NotEqual(t, "p1", user.Password)
	assert.False(t, user.IsAdmin)

	stored, err := s.GetUser(user.Id)
	require.NoError(t, err)
	assert.Equal(t, user.EmailAddress, stored.EmailAddress)
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	setupDB(t)
	s := UserService{}
	signUp(t, "a@x.com", "p1")

	_, err := s.SignUp(entity.SignUpForm{
		EmailAddress: "a@x.com",
		FirstName:    "Other",
		Password1:    "p2",
		Password2:    "p2",
	})
	ve, ok := IsValidation(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, "email_address", ve.Field)
	assert.Equal(t, "pages.signUp.emailExists", ve.Key)
	assert.EqualValues(t, 1, count(t, &model.User{}))
}

func TestSignUpRejectsPasswordMismatch(t *testing.T) {
	setupDB(t)
	s := UserService{}

	_, err := s.SignUp(entity.SignUpForm{
		EmailAddress: "a@x.com",
		FirstName:    "A",
		Password1:    "p1",
		Password2:    "p2",
	})
	ve, ok := IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "password2", ve.Field)
	assert.EqualValues(t, 0, count(t, &model.User{}))
}

func TestSignUpWithUnhashablePasswordInsertsNothing(t *testing.T) {
	setupDB(t)
	s := UserService{}

	_, err := s.SignUp(entity.SignUpForm{EmailAddress: "a@x.com", FirstName: "A"})
	assert.Error(t, err)
	assert.EqualValues(t, 0, count(t, &model.User{}))

	long := strings.Repeat("a", 73)
	_, err = s.SignUp(entity.SignUpForm{EmailAddress: "a@x.com", FirstName: "A", Password1: long, Password2: long})
	ve, ok := IsValidation(err)
	require.True(t, ok, "%v", err)
	assert.Equal(t, "password1", ve.Field)
	assert.Equal(t, "pages.signUp.passwordTooLong", ve.Key)
	assert.EqualValues(t, 0, count(t, &model.User{}))
}

func TestSignUpIsAudited(t *testing.T) {
	setupDB(t)
	user := signUp(t, "a@x.com", "p1")

	audit := AuditLogService{}
	logs, total, err := audit.GetAuditLogs(user.Id, ActionSignUp, "", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "a@x.com", logs[0].Username)
}

func TestCheckUser(t *testing.T) {
	setupDB(t)
	s := UserService{}
	user := signUp(t, "a@x.com", "p1")

	got := s.CheckUser("a@x.com", "p1")
	require.NotNil(t, got)
	assert.Equal(t, user.Id, got.Id)

	assert.Nil(t, s.CheckUser("a@x.com", "p1x"))
	assert.Nil(t, s.CheckUser("b@x.com", "p1"))
	assert.Nil(t, s.CheckUser("a@x.com", ""))
}

func TestGetUserMissing(t *testing.T) {
	setupDB(t)
	s := UserService{}

	_, err := s.GetUser(42)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetUserByEmail("nobody@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateAccount(t *testing.T) {
	setupDB(t)
	s := UserService{}
	a := signUp(t, "a@x.com", "p1")
	signUp(t, "b@x.com", "p1")

	updated, err := s.UpdateAccount(a.Id, entity.UpdateAccountForm{
		EmailAddress: "a@x.com",
		FirstName:    "Alice",
		LastName:     "Smith",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.FirstName)

	_, err = s.UpdateAccount(a.Id, entity.UpdateAccountForm{EmailAddress: "b@x.com", FirstName: "Alice"})
	ve, ok := IsValidation(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, "email_address", ve.Field)

	stored, err := s.GetUser(a.Id)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", stored.EmailAddress)

	updated, err = s.UpdateAccount(a.Id, entity.UpdateAccountForm{EmailAddress: "c@x.com", FirstName: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "c@x.com", updated.EmailAddress)
	assert.NotNil(t, s.CheckUser("c@x.com", "p1"))
}

func TestUpdateAccountUnknownUser(t *testing.T) {
	setupDB(t)
	s := UserService{}

	_, err := s.UpdateAccount(7, entity.UpdateAccountForm{EmailAddress: "a@x.com", FirstName: "A"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEnsureAdmin(t *testing.T) {
	setupDB(t)
	s := UserService{}

	admin, err := s.EnsureAdmin("root@x.com", "secret", "", "")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
	assert.Equal(t, "Admin", admin.FirstName)
	assert.NotNil(t, s.CheckUser("root@x.com", "secret"))

	a := signUp(t, "a@x.com", "p1")
	promoted, err := s.EnsureAdmin("a@x.com", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, a.Id, promoted.Id)
	assert.True(t, promoted.IsAdmin)
	assert.NotNil(t, s.CheckUser("a@x.com", "p1"))

	_, err = s.EnsureAdmin("new@x.com", "", "", "")
	assert.Error(t, err)
}

func TestUpdatePassword(t *testing.T) {
	setupDB(t)
	s := UserService{}
	a := signUp(t, "a@x.com", "p1")

	require.NoError(t, s.UpdatePassword(a.Id, "p2"))
	assert.Nil(t, s.CheckUser("a@x.com", "p1"))
	assert.NotNil(t, s.CheckUser("a@x.com", "p2"))
	assert.ErrorIs(t, s.UpdatePassword(99, "p3"), ErrNotFound)
}
