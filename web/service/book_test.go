package service

import (
	"testing"

	"github.com/raimis707/bookshelf/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBorrowAndReturn(t *testing.T) {
	setupDB(t)
	s := BookService{}
	a := signUp(t, "a@x.com", "p1")
	book, err := s.AddBook("Dune", nil, a.Id)
	require.NoError(t, err)
	assert.False(t, book.IsBorrowed())
	assert.Equal(t, model.DefaultImageFile, book.ImageFile)

	require.NoError(t, s.Borrow(book.Id, a.Id))
	got, err := s.GetBook(book.Id)
	require.NoError(t, err)
	require.NotNil(t, got.UserId)
	assert.Equal(t, a.Id, *got.UserId)
	require.NotNil(t, got.User)
	assert.Equal(t, "a@x.com", got.User.EmailAddress)

	require.NoError(t, s.Return(book.Id, a.Id))
	got, err = s.GetBook(book.Id)
	require.NoError(t, err)
	assert.Nil(t, got.UserId)
}

func TestBorrowOverwritesHolder(t *testing.T) {
	setupDB(t)
	s := BookService{}
	a := signUp(t, "a@x.com", "p1")
	b := signUp(t, "b@x.com", "p1")
	book, err := s.AddBook("Dune", nil, a.Id)
	require.NoError(t, err)

	require.NoError(t, s.Borrow(book.Id, a.Id))
	require.NoError(t, s.Borrow(book.Id, b.Id))
	got, err := s.GetBook(book.Id)
	require.NoError(t, err)
	assert.Equal(t, b.Id, *got.UserId)

	// anyone may return a book
	require.NoError(t, s.Return(book.Id, a.Id))
	got, err = s.GetBook(book.Id)
	require.NoError(t, err)
	assert.Nil(t, got.UserId)
}

func TestBorrowUnknownBook(t *testing.T) {
	setupDB(t)
	s := BookService{}
	a := signUp(t, "a@x.com", "p1")
	book, err := s.AddBook("Dune", nil, a.Id)
	require.NoError(t, err)

	assert.ErrorIs(t, s.Borrow(book.Id+1, a.Id), ErrNotFound)
	assert.ErrorIs(t, s.Return(book.Id+1, a.Id), ErrNotFound)

	got, err := s.GetBook(book.Id)
	require.NoError(t, err)
	assert.Nil(t, got.UserId)

	audit := AuditLogService{}
	_, total, err := audit.GetAuditLogs(0, ActionBorrow, "", 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestAddBookConflict(t *testing.T) {
	setupDB(t)
	s := BookService{}

	_, err := s.AddBook("Dune", nil, 0)
	require.NoError(t, err)
	_, err = s.AddBook(" Dune ", nil, 0)
	assert.ErrorIs(t, err, ErrConflict)
	assert.EqualValues(t, 1, count(t, &model.Book{}))
}

func TestAddBookValidation(t *testing.T) {
	setupDB(t)
	s := BookService{}

	_, err := s.AddBook("   ", nil, 0)
	ve, ok := IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "book_name", ve.Field)

	missing := 12
	_, err = s.AddBook("Dune", &missing, 0)
	ve, ok = IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "author", ve.Field)
	assert.EqualValues(t, 0, count(t, &model.Book{}))
}

func TestAddBookWithAuthor(t *testing.T) {
	setupDB(t)
	s := BookService{}

	author, err := s.AddAuthor("Frank Herbert", 0)
	require.NoError(t, err)
	book, err := s.AddBook("Dune", &author.Id, 0)
	require.NoError(t, err)

	got, err := s.GetBook(book.Id)
	require.NoError(t, err)
	require.NotNil(t, got.Author)
	assert.Equal(t, "Frank Herbert", got.Author.Name)

	_, err = s.AddAuthor(" ", 0)
	_, ok := IsValidation(err)
	assert.True(t, ok)

	authors, err := s.ListAuthors()
	require.NoError(t, err)
	assert.Len(t, authors, 1)
}

func TestListAvailableAndMine(t *testing.T) {
	setupDB(t)
	s := BookService{}
	a := signUp(t, "a@x.com", "p1")

	books, err := s.ListAvailable()
	require.NoError(t, err)
	assert.Empty(t, books)

	for _, name := range []string{"Dune", "Emma", "Ulysses"} {
		_, err := s.AddBook(name, nil, 0)
		require.NoError(t, err)
	}
	require.NoError(t, s.Borrow(2, a.Id))

	books, err = s.ListAvailable()
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, "Dune", books[0].BookName)
	assert.True(t, books[1].IsBorrowed())

	mine, err := s.ListMine(a.Id)
	require.NoError(t, err)
	assert.Len(t, mine, 3)
}

func TestGetBookMissing(t *testing.T) {
	setupDB(t)
	s := BookService{}

	_, err := s.GetBook(1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLendingHistory(t *testing.T) {
	setupDB(t)
	s := BookService{}
	a := signUp(t, "a@x.com", "p1")
	book, err := s.AddBook("Dune", nil, 0)
	require.NoError(t, err)

	require.NoError(t, s.Borrow(book.Id, a.Id))
	require.NoError(t, s.Return(book.Id, a.Id))

	audit := AuditLogService{}
	history, err := audit.LendingHistory(book.Id)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, ActionBorrow, history[0].Action)
	assert.Equal(t, ActionReturn, history[1].Action)
	assert.Equal(t, a.Id, history[1].UserID)
}
