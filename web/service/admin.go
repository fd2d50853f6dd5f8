package service

import (
	"github.com/raimis707/bookshelf/database"
	"github.com/raimis707/bookshelf/database/model"
	"github.com/raimis707/bookshelf/web/entity"

	"gorm.io/gorm"
)

// UserAdminService backs the administrator views of registered accounts.
type UserAdminService struct {
	auditService AuditLogService
}

type UserDTO struct {
	Id           int    `json:"id"`
	EmailAddress string `json:"emailAddress"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	IsAdmin      bool   `json:"isAdmin"`
}

func toDTO(u *model.User) UserDTO {
	return UserDTO{
		Id:           u.Id,
		EmailAddress: u.EmailAddress,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsAdmin:      u.IsAdmin,
	}
}

func (s *UserAdminService) ListUsers() ([]UserDTO, error) {
	var users []model.User
	if err := database.GetDB().Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	out := make([]UserDTO, 0, len(users))
	for i := range users {
		out = append(out, toDTO(&users[i]))
	}
	return out, nil
}

// SetAdmin grants or revokes the administrator flag of user id. An
// administrator cannot revoke their own flag.
func (s *UserAdminService) SetAdmin(actorId int, id int, isAdmin bool) (UserDTO, error) {
	if actorId == id && !isAdmin {
		return UserDTO{}, entity.NewValidationError("isAdmin", "pages.admin.selfDemote")
	}
	var u model.User
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ?", id).First(&u).Error
		if database.IsNotFound(err) {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		if err := tx.Model(&u).Update("is_admin", isAdmin).Error; err != nil {
			return err
		}
		return s.auditService.logTx(tx, AuditEntry{
			UserID:     actorId,
			Action:     ActionSetAdmin,
			Resource:   ResourceUser,
			ResourceID: id,
			Details:    map[string]any{"isAdmin": isAdmin},
		})
	})
	if err != nil {
		return UserDTO{}, err
	}
	return toDTO(&u), nil
}
