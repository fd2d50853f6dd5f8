package service

import (
	"path/filepath"
	"testing"

	"github.com/raimis707/bookshelf/config"
	"github.com/raimis707/bookshelf/database"
	"github.com/raimis707/bookshelf/database/model"
	"github.com/raimis707/bookshelf/web/entity"

	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "bookshelf.db")
	require.NoError(t, database.InitDB(config.SQLiteDatabaseConfig(dbPath)))
	settingCache.Flush()
	t.Cleanup(func() { _ = database.CloseDB() })
}

func signUp(t *testing.T, email, password string) *model.User {
	t.Helper()
	s := UserService{}
	user, err := s.SignUp(entity.SignUpForm{
		EmailAddress: email,
		FirstName:    "First",
		LastName:     "Last",
		Password1:    password,
		Password2:    password,
	})
	require.NoError(t, err)
	return user
}

func count(t *testing.T, m any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, database.GetDB().Model(m).Count(&n).Error)
	return n
}
