package service

import (
	"errors"
	"strings"

	"github.com/raimis707/bookshelf/database"
	"github.com/raimis707/bookshelf/database/model"
	"github.com/raimis707/bookshelf/logger"
	"github.com/raimis707/bookshelf/util/crypto"
	"github.com/raimis707/bookshelf/web/entity"

	"gorm.io/gorm"
)

// dummyHash is compared against when the email is unknown so that a failed
// sign-in takes the same time either way.
var dummyHash, _ = crypto.HashPasswordAsBcrypt("bookshelf-dummy-password")

type UserService struct {
	auditService AuditLogService
}

func (s *UserService) GetUser(id int) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("id = ?", id).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUserByEmail(email string) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("email_address = ?", strings.TrimSpace(email)).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

// CheckUser returns the user whose email and password match, or nil.
func (s *UserService) CheckUser(email string, password string) *model.User {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("email_address = ?", strings.TrimSpace(email)).
		First(user).
		Error
	if database.IsNotFound(err) {
		crypto.CheckPasswordHash(dummyHash, password)
		return nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}

	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil
	}
	return user
}

// SignUp registers a new user. A taken email address is reported as a
// validation error on the email field and nothing is inserted.
func (s *UserService) SignUp(form entity.SignUpForm) (*model.User, error) {
	form.Normalize()
	if err := form.Validate(); err != nil {
		return nil, err
	}

	hashedPassword, err := crypto.HashPasswordAsBcrypt(form.Password1)
	if err != nil {
		return nil, passwordError("password1", err)
	}

	user := &model.User{
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		EmailAddress: form.EmailAddress,
		Password:     hashedPassword,
	}
	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		taken, err := emailTaken(tx, form.EmailAddress, 0)
		if err != nil {
			return err
		}
		if taken {
			return entity.NewValidationError("email_address", "pages.signUp.emailExists")
		}
		if err := tx.Create(user).Error; err != nil {
			if database.IsDuplicate(err) {
				return entity.NewValidationError("email_address", "pages.signUp.emailExists")
			}
			return err
		}
		return s.auditService.logTx(tx, AuditEntry{
			UserID:     user.Id,
			Username:   user.EmailAddress,
			Action:     ActionSignUp,
			Resource:   ResourceUser,
			ResourceID: user.Id,
		})
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateAccount changes the name and email of a user. The email is checked
// for uniqueness only when it actually changes.
func (s *UserService) UpdateAccount(userId int, form entity.UpdateAccountForm) (*model.User, error) {
	form.Normalize()
	if form.EmailAddress == "" {
		return nil, entity.NewValidationError("email_address", "pages.forms.required")
	}
	if form.FirstName == "" {
		return nil, entity.NewValidationError("first_name", "pages.forms.required")
	}

	user := &model.User{}
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ?", userId).First(user).Error
		if database.IsNotFound(err) {
			return ErrNotFound
		} else if err != nil {
			return err
		}

		if user.EmailAddress != form.EmailAddress {
			taken, err := emailTaken(tx, form.EmailAddress, userId)
			if err != nil {
				return err
			}
			if taken {
				return entity.NewValidationError("email_address", "pages.signUp.emailExists")
			}
		}

		err = tx.Model(user).Updates(map[string]any{
			"email_address": form.EmailAddress,
			"first_name":    form.FirstName,
			"last_name":     form.LastName,
		}).Error
		if database.IsDuplicate(err) {
			return entity.NewValidationError("email_address", "pages.signUp.emailExists")
		} else if err != nil {
			return err
		}
		return s.auditService.logTx(tx, AuditEntry{
			UserID:     user.Id,
			Username:   user.EmailAddress,
			Action:     ActionUpdateAccount,
			Resource:   ResourceUser,
			ResourceID: user.Id,
		})
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// EnsureAdmin makes the account with the given email an administrator,
// creating it first when it does not exist. password is only needed for a
// new account.
func (s *UserService) EnsureAdmin(email, password, firstName, lastName string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, entity.NewValidationError("email_address", "pages.forms.required")
	}

	user := &model.User{}
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		err := tx.Where("email_address = ?", email).First(user).Error
		if err == nil {
			return tx.Model(user).Update("is_admin", true).Error
		}
		if !database.IsNotFound(err) {
			return err
		}

		if firstName == "" {
			firstName = "Admin"
		}
		hashedPassword, err := crypto.HashPasswordAsBcrypt(password)
		if err != nil {
			return err
		}
		*user = model.User{
			FirstName:    firstName,
			LastName:     lastName,
			EmailAddress: email,
			Password:     hashedPassword,
			IsAdmin:      true,
		}
		return tx.Create(user).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdatePassword(userId int, password string) error {
	hashedPassword, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return passwordError("password", err)
	}
	result := database.GetDB().Model(model.User{}).
		Where("id = ?", userId).
		Update("password", hashedPassword)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func emailTaken(tx *gorm.DB, email string, exceptId int) (bool, error) {
	var count int64
	query := tx.Model(model.User{}).Where("email_address = ?", email)
	if exceptId > 0 {
		query = query.Where("id <> ?", exceptId)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}


// passwordError turns a password bcrypt refuses into a form error on field.
func passwordError(field string, err error) error {
	switch {
	case errors.Is(err, crypto.ErrEmptyPassword):
		return entity.NewValidationError(field, "pages.forms.required")
	case errors.Is(err, crypto.ErrPasswordTooLong):
		return entity.NewValidationError(field, "pages.signUp.passwordTooLong")
	}
	return err
}
