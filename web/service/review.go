package service

import (
	"strings"
	"time"

	"github.com/raimis707/bookshelf/database"
	"github.com/raimis707/bookshelf/database/model"
	"github.com/raimis707/bookshelf/web/entity"

	"gorm.io/gorm"
)

// ReviewService keeps the review ledger. Reviews are never edited or removed.
type ReviewService struct {
	auditService AuditLogService
}

func (s *ReviewService) AddReview(bookId int, userId int, content string) (*model.Review, error) {
	if strings.TrimSpace(content) == "" {
		return nil, entity.NewValidationError("content", "pages.forms.required")
	}

	review := &model.Review{
		DatePosted: time.Now().UTC(),
		Content:    content,
		UserId:     userId,
		BooksId:    &bookId,
	}
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		err := tx.Model(model.Book{}).Where("id = ?", bookId).First(&model.Book{}).Error
		if database.IsNotFound(err) {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		if err := tx.Create(review).Error; err != nil {
			return err
		}
		return s.auditService.logTx(tx, AuditEntry{
			UserID:     userId,
			Action:     ActionAddReview,
			Resource:   ResourceReview,
			ResourceID: review.Id,
			Details:    map[string]any{"bookId": bookId},
		})
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

// ReadReviewsForBook returns the book and its reviews, oldest first, each with
// its author loaded.
func (s *ReviewService) ReadReviewsForBook(bookId int) (*model.Book, []model.Review, error) {
	db := database.GetDB()
	book := &model.Book{}
	err := db.Model(model.Book{}).Preload("Author").Where("id = ?", bookId).First(book).Error
	if database.IsNotFound(err) {
		return nil, nil, ErrNotFound
	} else if err != nil {
		return nil, nil, err
	}

	reviews := make([]model.Review, 0)
	err = db.Model(model.Review{}).
		Preload("User").
		Where("books_id = ?", bookId).
		Order("date_posted ASC").
		Order("id ASC").
		Find(&reviews).Error
	if err != nil {
		return nil, nil, err
	}
	return book, reviews, nil
}

func (s *ReviewService) CountReviews(bookId int) (int64, error) {
	var count int64
	err := database.GetDB().Model(model.Review{}).Where("books_id = ?", bookId).Count(&count).Error
	return count, err
}
