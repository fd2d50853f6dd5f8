package entity

import (
	"testing"

	"github.com/raimis707/bookshelf/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignUpFormPasswordMismatch(t *testing.T) {
	f := SignUpForm{EmailAddress: " a@x.com ", FirstName: "A", Password1: "p1", Password2: "p2"}
	f.Normalize()
	assert.Equal(t, "a@x.com", f.EmailAddress)

	err := f.Validate()
	var fe *ValidationError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "password2", fe.Field)

	f.Password2 = "p1"
	assert.NoError(t, f.Validate())
}

func TestAddNewBookFormAuthorChoice(t *testing.T) {
	authors := []model.Author{{Id: 1, Name: "Frank Herbert"}, {Id: 2, Name: "Stanislaw Lem"}}

	f := AddNewBookForm{BookName: "  Dune ", AuthorId: 1}
	id, err := f.Validate(authors)
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, 1, *id)
	assert.Equal(t, "Dune", f.BookName)

	f = AddNewBookForm{BookName: "Dune"}
	id, err = f.Validate(authors)
	require.NoError(t, err)
	assert.Nil(t, id)

	f = AddNewBookForm{BookName: "Dune", AuthorId: 9}
	_, err = f.Validate(authors)
	var fe *ValidationError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "author", fe.Field)

	f = AddNewBookForm{BookName: "   "}
	_, err = f.Validate(authors)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "book_name", fe.Field)
}

func TestAddNewReviewFormValidate(t *testing.T) {
	books := []model.Book{{Id: 4, BookName: "Dune"}}

	assert.NoError(t, (&AddNewReviewForm{BookId: 4, Content: "Great book"}).Validate(books))

	var fe *ValidationError
	require.ErrorAs(t, (&AddNewReviewForm{BookId: 4, Content: " "}).Validate(books), &fe)
	assert.Equal(t, "content", fe.Field)

	require.ErrorAs(t, (&AddNewReviewForm{BookId: 5, Content: "x"}).Validate(books), &fe)
	assert.Equal(t, "book_name", fe.Field)
}

func TestAllSettingCheckValid(t *testing.T) {
	s := AllSetting{WebPort: 5000, WebBasePath: "library", SessionMaxAge: 60}
	require.NoError(t, s.CheckValid())
	assert.Equal(t, "/library/", s.WebBasePath)

	s.WebListen = "not-an-ip"
	assert.Error(t, s.CheckValid())

	s = AllSetting{WebPort: 70000, WebBasePath: "/", SessionMaxAge: 60}
	assert.Error(t, s.CheckValid())

	s = AllSetting{WebPort: 5000, WebBasePath: "/", SessionMaxAge: 0}
	assert.Error(t, s.CheckValid())
}
