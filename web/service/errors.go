// Package service implements the bookshelf business operations on top of the
// gorm database: accounts, the lending ledger, reviews, settings and history.
package service

import (
	"errors"

	"github.com/raimis707/bookshelf/web/entity"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// IsValidation reports whether err is a form validation failure and returns it.
func IsValidation(err error) (*entity.ValidationError, bool) {
	var ve *entity.ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
