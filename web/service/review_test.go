package service

import (
	"testing"

	"github.com/raimis707/bookshelf/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddReview(t *testing.T) {
	setupDB(t)
	books := BookService{}
	reviews := ReviewService{}
	a := signUp(t, "a@x.com", "p1")
	book, err := books.AddBook("Dune", nil, 0)
	require.NoError(t, err)

	first, err := reviews.AddReview(book.Id, a.Id, "Great book")
	require.NoError(t, err)
	assert.False(t, first.DatePosted.IsZero())
	_, err = reviews.AddReview(book.Id, a.Id, "Read it twice")
	require.NoError(t, err)

	got, list, err := reviews.ReadReviewsForBook(book.Id)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.BookName)
	require.Len(t, list, 2)
	assert.Equal(t, "Great book", list[0].Content)
	assert.Equal(t, "Read it twice", list[1].Content)
	require.NotNil(t, list[0].User)
	assert.Equal(t, "a@x.com", list[0].User.EmailAddress)
}

func TestAddReviewRejectsEmptyContent(t *testing.T) {
	setupDB(t)
	books := BookService{}
	reviews := ReviewService{}
	a := signUp(t, "a@x.com", "p1")
	book, err := books.AddBook("Dune", nil, 0)
	require.NoError(t, err)

	_, err = reviews.AddReview(book.Id, a.Id, " \n\t")
	ve, ok := IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "content", ve.Field)
	assert.EqualValues(t, 0, count(t, &model.Review{}))
}

func TestAddReviewUnknownBook(t *testing.T) {
	setupDB(t)
	reviews := ReviewService{}
	a := signUp(t, "a@x.com", "p1")

	_, err := reviews.AddReview(3, a.Id, "Great book")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualValues(t, 0, count(t, &model.Review{}))
}

func TestReadReviewsForMissingBook(t *testing.T) {
	setupDB(t)
	reviews := ReviewService{}

	_, _, err := reviews.ReadReviewsForBook(1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReviewsAreScopedToBook(t *testing.T) {
	setupDB(t)
	books := BookService{}
	reviews := ReviewService{}
	a := signUp(t, "a@x.com", "p1")
	dune, err := books.AddBook("Dune", nil, 0)
	require.NoError(t, err)
	emma, err := books.AddBook("Emma", nil, 0)
	require.NoError(t, err)

	_, err = reviews.AddReview(dune.Id, a.Id, "Great book")
	require.NoError(t, err)

	_, list, err := reviews.ReadReviewsForBook(emma.Id)
	require.NoError(t, err)
	assert.Empty(t, list)
	n, err := reviews.CountReviews(dune.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestLibraryScenario(t *testing.T) {
	setupDB(t)
	users := UserService{}
	books := BookService{}
	reviews := ReviewService{}

	a := signUp(t, "a@x.com", "p1")
	signedIn := users.CheckUser("a@x.com", "p1")
	require.NotNil(t, signedIn)
	assert.Equal(t, a.Id, signedIn.Id)

	admin, err := users.EnsureAdmin("admin@x.com", "admin", "", "")
	require.NoError(t, err)
	dune, err := books.AddBook("Dune", nil, admin.Id)
	require.NoError(t, err)

	require.NoError(t, books.Borrow(dune.Id, a.Id))
	got, err := books.GetBook(dune.Id)
	require.NoError(t, err)
	require.NotNil(t, got.UserId)
	assert.Equal(t, a.Id, *got.UserId)

	require.NoError(t, books.Return(dune.Id, a.Id))
	got, err = books.GetBook(dune.Id)
	require.NoError(t, err)
	assert.Nil(t, got.UserId)

	_, err = reviews.AddReview(dune.Id, a.Id, "Great book")
	require.NoError(t, err)

	_, list, err := reviews.ReadReviewsForBook(dune.Id)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Great book", list[0].Content)
	assert.Equal(t, a.Id, list[0].UserId)
}
