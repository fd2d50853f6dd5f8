package service

import (
	"strings"

	"github.com/raimis707/bookshelf/database"
	"github.com/raimis707/bookshelf/database/model"
	"github.com/raimis707/bookshelf/web/entity"

	"gorm.io/gorm"
)

// BookService keeps the lending ledger: which books exist and who holds them.
type BookService struct {
	auditService AuditLogService
}

func (s *BookService) GetBook(id int) (*model.Book, error) {
	db := database.GetDB()
	book := &model.Book{}
	err := db.Model(model.Book{}).
		Preload("Author").
		Preload("User").
		Where("id = ?", id).
		First(book).Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return book, nil
}

// ListAvailable returns every book, borrowed or not, in insertion order.
func (s *BookService) ListAvailable() ([]model.Book, error) {
	db := database.GetDB()
	books := make([]model.Book, 0)
	err := db.Model(model.Book{}).
		Preload("Author").
		Preload("User").
		Order("id ASC").
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

// ListMine returns the same list as ListAvailable. The borrower is not used
// as a filter.
func (s *BookService) ListMine(userId int) ([]model.Book, error) {
	return s.ListAvailable()
}

// Borrow records userId as the holder of the book, replacing any previous
// holder. An unknown book id changes nothing and yields ErrNotFound.
func (s *BookService) Borrow(bookId int, userId int) error {
	return s.setBorrower(bookId, userId, ActionBorrow)
}

// Return puts the book back on the shelf whoever holds it. userId only goes
// into the history.
func (s *BookService) Return(bookId int, userId int) error {
	return s.setBorrower(bookId, userId, ActionReturn)
}

func (s *BookService) setBorrower(bookId int, userId int, action string) error {
	var borrower any = userId
	if action == ActionReturn {
		borrower = gorm.Expr("NULL")
	}
	return database.GetDB().Transaction(func(tx *gorm.DB) error {
		result := tx.Model(model.Book{}).
			Where("id = ?", bookId).
			Update("user_id", borrower)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return s.auditService.logTx(tx, AuditEntry{
			UserID:     userId,
			Action:     action,
			Resource:   ResourceBook,
			ResourceID: bookId,
		})
	})
}

// AddBook creates a book with a unique name. authorId may be nil.
func (s *BookService) AddBook(name string, authorId *int, actorId int) (*model.Book, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, entity.NewValidationError("book_name", "pages.forms.required")
	}

	book := &model.Book{
		BookName:  name,
		ImageFile: model.DefaultImageFile,
		AuthorId:  authorId,
	}
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(model.Book{}).Where("book_name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrConflict
		}

		if authorId != nil {
			err := tx.Model(model.Author{}).Where("id = ?", *authorId).First(&model.Author{}).Error
			if database.IsNotFound(err) {
				return entity.NewValidationError("author", "pages.books.unknownAuthor")
			} else if err != nil {
				return err
			}
		}

		if err := tx.Create(book).Error; err != nil {
			if database.IsDuplicate(err) {
				return ErrConflict
			}
			return err
		}
		return s.auditService.logTx(tx, AuditEntry{
			UserID:     actorId,
			Action:     ActionAddBook,
			Resource:   ResourceBook,
			ResourceID: book.Id,
			Details:    map[string]any{"bookName": book.BookName},
		})
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}

func (s *BookService) ListAuthors() ([]model.Author, error) {
	db := database.GetDB()
	authors := make([]model.Author, 0)
	err := db.Model(model.Author{}).Order("name ASC").Order("id ASC").Find(&authors).Error
	if err != nil {
		return nil, err
	}
	return authors, nil
}

func (s *BookService) AddAuthor(name string, actorId int) (*model.Author, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, entity.NewValidationError("name", "pages.forms.required")
	}
	author := &model.Author{Name: name}
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(author).Error; err != nil {
			return err
		}
		return s.auditService.logTx(tx, AuditEntry{
			UserID:     actorId,
			Action:     ActionAddAuthor,
			Resource:   ResourceAuthor,
			ResourceID: author.Id,
			Details:    map[string]any{"name": author.Name},
		})
	})
	if err != nil {
		return nil, err
	}
	return author, nil
}
