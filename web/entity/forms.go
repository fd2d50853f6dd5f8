package entity

import (
	"strings"

	"github.com/raimis707/bookshelf/database/model"
)

// ValidationError reports bad or duplicate form input. Key is the message
// id shown next to Field.
type ValidationError struct {
	Field string
	Key   string
}

func NewValidationError(field, key string) *ValidationError {
	return &ValidationError{Field: field, Key: key}
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Key
}

type SignUpForm struct {
	EmailAddress string `json:"email_address" form:"email_address" binding:"required"`
	FirstName    string `json:"first_name" form:"first_name" binding:"required"`
	LastName     string `json:"last_name" form:"last_name"`
	Password1    string `json:"password1" form:"password1" binding:"required"`
	Password2    string `json:"password2" form:"password2" binding:"required"`
}

// Normalize trims the identity fields. Passwords are left untouched.
func (f *SignUpForm) Normalize() {
	f.EmailAddress = strings.TrimSpace(f.EmailAddress)
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
}

// Validate checks the rules that need no storage access.
func (f *SignUpForm) Validate() error {
	if f.Password1 != f.Password2 {
		return &ValidationError{Field: "password2", Key: "pages.signUp.passwordMismatch"}
	}
	return nil
}

type SignInForm struct {
	EmailAddress string `json:"email_address" form:"email_address"`
	Password     string `json:"password" form:"password"`
}

type UpdateAccountForm struct {
	EmailAddress string `json:"email_address" form:"email_address" binding:"required"`
	FirstName    string `json:"first_name" form:"first_name" binding:"required"`
	LastName     string `json:"last_name" form:"last_name"`
}

func (f *UpdateAccountForm) Normalize() {
	f.EmailAddress = strings.TrimSpace(f.EmailAddress)
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
}

// AddNewBookForm picks the author from a list the handler loaded beforehand.
// A zero AuthorId leaves the book without an author.
type AddNewBookForm struct {
	BookName string `json:"book_name" form:"book_name" binding:"required"`
	AuthorId int    `json:"author" form:"author"`
}

// Validate resolves the author choice against authors. It returns the chosen
// author id, or nil for a blank choice.
func (f *AddNewBookForm) Validate(authors []model.Author) (*int, error) {
	f.BookName = strings.TrimSpace(f.BookName)
	if f.BookName == "" {
		return nil, &ValidationError{Field: "book_name", Key: "pages.forms.required"}
	}
	if f.AuthorId == 0 {
		return nil, nil
	}
	for i := range authors {
		if authors[i].Id == f.AuthorId {
			id := authors[i].Id
			return &id, nil
		}
	}
	return nil, &ValidationError{Field: "author", Key: "pages.books.unknownAuthor"}
}

// AddNewReviewForm picks the reviewed book from a list the handler loaded
// beforehand.
type AddNewReviewForm struct {
	BookId  int    `json:"book_name" form:"book_name"`
	Content string `json:"content" form:"content"`
}

func (f *AddNewReviewForm) Validate(books []model.Book) error {
	if strings.TrimSpace(f.Content) == "" {
		return &ValidationError{Field: "content", Key: "pages.forms.required"}
	}
	for i := range books {
		if books[i].Id == f.BookId {
			return nil
		}
	}
	return &ValidationError{Field: "book_name", Key: "pages.reviews.unknownBook"}
}

// Choice is one option of a select field.
type Choice struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

func AuthorChoices(authors []model.Author) []Choice {
	choices := make([]Choice, 0, len(authors))
	for _, a := range authors {
		choices = append(choices, Choice{Value: a.Id, Label: a.Name})
	}
	return choices
}

func BookChoices(books []model.Book) []Choice {
	choices := make([]Choice, 0, len(books))
	for _, b := range books {
		choices = append(choices, Choice{Value: b.Id, Label: b.BookName})
	}
	return choices
}
