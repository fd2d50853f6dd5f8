package service

import (
	"time"

	"github.com/raimis707/bookshelf/database"
	"github.com/raimis707/bookshelf/database/model"
	"github.com/raimis707/bookshelf/logger"

	"github.com/goccy/go-json"
	"gorm.io/gorm"
)

const (
	ActionSignUp        = "SIGN_UP"
	ActionSignIn        = "SIGN_IN"
	ActionSignOut       = "SIGN_OUT"
	ActionUpdateAccount = "UPDATE_ACCOUNT"
	ActionSetAdmin      = "SET_ADMIN"
	ActionAddAuthor     = "ADD_AUTHOR"
	ActionAddBook       = "ADD_BOOK"
	ActionBorrow        = "BORROW"
	ActionReturn        = "RETURN"
	ActionAddReview     = "ADD_REVIEW"

	ResourceUser   = "user"
	ResourceAuthor = "author"
	ResourceBook   = "book"
	ResourceReview = "review"
)

// AuditLogService appends to and reads the history of ledger and account
// changes.
type AuditLogService struct{}

// AuditEntry describes one change. IP and UserAgent are only known to the web
// layer and may be empty.
type AuditEntry struct {
	UserID     int
	Username   string
	Action     string
	Resource   string
	ResourceID int
	IP         string
	UserAgent  string
	Details    map[string]any
}

// LogAction stores e outside of any running transaction.
func (s *AuditLogService) LogAction(e AuditEntry) error {
	return s.logTx(database.GetDB(), e)
}

// logTx stores e with tx so the entry commits or rolls back together with
// the change it describes.
func (s *AuditLogService) logTx(tx *gorm.DB, e AuditEntry) error {
	detailsJSON := ""
	if e.Details != nil {
		data, err := json.Marshal(e.Details)
		if err != nil {
			logger.Warning("Failed to marshal audit log details:", err)
		} else {
			detailsJSON = string(data)
		}
	}

	auditLog := model.AuditLog{
		UserID:     e.UserID,
		Username:   e.Username,
		Action:     e.Action,
		Resource:   e.Resource,
		ResourceID: e.ResourceID,
		IP:         e.IP,
		UserAgent:  e.UserAgent,
		Details:    detailsJSON,
		Timestamp:  time.Now().UTC(),
	}
	if err := tx.Create(&auditLog).Error; err != nil {
		logger.Warningf("Failed to create audit log: user=%d, action=%s, resource=%s, error=%v", e.UserID, e.Action, e.Resource, err)
		return err
	}
	return nil
}

// GetAuditLogs returns matching entries newest first together with the total
// number of matches. Zero userID and empty action or resource match anything.
func (s *AuditLogService) GetAuditLogs(userID int, action, resource string, limit, offset int) ([]model.AuditLog, int64, error) {
	query := database.GetDB().Model(&model.AuditLog{})
	if userID > 0 {
		query = query.Where("user_id = ?", userID)
	}
	if action != "" {
		query = query.Where("action = ?", action)
	}
	if resource != "" {
		query = query.Where("resource = ?", resource)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 50
	}
	logs := make([]model.AuditLog, 0)
	if err := query.Order("timestamp DESC").Order("id DESC").Limit(limit).Offset(offset).Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// LendingHistory returns the borrow and return entries of a book, oldest first.
func (s *AuditLogService) LendingHistory(bookId int) ([]model.AuditLog, error) {
	logs := make([]model.AuditLog, 0)
	err := database.GetDB().
		Where("resource = ? AND resource_id = ?", ResourceBook, bookId).
		Where("action IN ?", []string{ActionBorrow, ActionReturn}).
		Order("id ASC").
		Find(&logs).Error
	return logs, err
}
