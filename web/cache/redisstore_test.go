package cache

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rc.Close() })
	return NewRedisStore(rc, []byte("0123456789abcdef0123456789abcdef")), mr
}

func requestWith(cookies ...*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, mr := newTestStore(t)

	session, err := store.New(requestWith(), "bookshelf")
	require.NoError(t, err)
	assert.True(t, session.IsNew)
	session.Values["LOGIN_USER"] = 7

	w := httptest.NewRecorder()
	require.NoError(t, store.Save(requestWith(), w, session))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.NotContains(t, cookies[0].Value, session.ID)
	assert.True(t, mr.Exists(keyPrefix+session.ID))

	loaded, err := store.New(requestWith(cookies[0]), "bookshelf")
	require.NoError(t, err)
	assert.False(t, loaded.IsNew)
	assert.Equal(t, session.ID, loaded.ID)
	assert.Equal(t, 7, loaded.Values["LOGIN_USER"])
}

func TestRedisStoreDeleteRevokesCookie(t *testing.T) {
	store, mr := newTestStore(t)

	session, err := store.New(requestWith(), "bookshelf")
	require.NoError(t, err)
	session.Values["LOGIN_USER"] = 7
	w := httptest.NewRecorder()
	require.NoError(t, store.Save(requestWith(), w, session))
	cookie := w.Result().Cookies()[0]

	id := session.ID
	session.Options.MaxAge = -1
	w = httptest.NewRecorder()
	require.NoError(t, store.Save(requestWith(), w, session))
	assert.False(t, mr.Exists(keyPrefix+id))
	assert.Empty(t, session.ID)

	// Saving again after the delete starts a new session.
	session.Options.MaxAge = 60
	session.Values["LOGIN_USER"] = 8
	require.NoError(t, store.Save(requestWith(), httptest.NewRecorder(), session))
	assert.NotEqual(t, id, session.ID)
	assert.False(t, mr.Exists(keyPrefix+id))

	// The old cookie no longer resolves to any values.
	reused, err := store.New(requestWith(cookie), "bookshelf")
	require.NoError(t, err)
	assert.True(t, reused.IsNew)
	assert.Empty(t, reused.Values)
}

func TestRedisStoreIgnoresForgedCookie(t *testing.T) {
	store, _ := newTestStore(t)

	session, err := store.New(requestWith(&http.Cookie{Name: "bookshelf", Value: "forged"}), "bookshelf")
	require.NoError(t, err)
	assert.True(t, session.IsNew)
	assert.Empty(t, session.ID)
}

func TestRedisStoreExpiresWithMaxAge(t *testing.T) {
	store, mr := newTestStore(t)

	session, err := store.New(requestWith(), "bookshelf")
	require.NoError(t, err)
	session.Options.MaxAge = 60
	require.NoError(t, store.Save(requestWith(), httptest.NewRecorder(), session))

	assert.Equal(t, int64(60), int64(mr.TTL(keyPrefix+session.ID).Seconds()))
}
