package controller

import (
	"errors"

	"github.com/raimis707/bookshelf/logger"
	"github.com/raimis707/bookshelf/web/entity"
	"github.com/raimis707/bookshelf/web/middleware"
	"github.com/raimis707/bookshelf/web/service"

	"github.com/gin-gonic/gin"
)

// BookController serves the lending ledger: listings, borrowing, returning
// and adding books.
type BookController struct {
	BaseController

	bookService    service.BookService
	reviewService  service.ReviewService
	settingService service.SettingService

	adminRequired gin.HandlerFunc
}

func NewBookController(g *gin.RouterGroup) *BookController {
	a := &BookController{adminRequired: middleware.AdminRequired()}
	a.initRouter(g)
	return a
}

func (a *BookController) initRouter(g *gin.RouterGroup) {
	g.GET("/:books_id/", a.book)

	loggedIn := g.Group("", middleware.LoginRequired())
	loggedIn.GET("/available_books", a.availableBooks)
	loggedIn.POST("/available_books", a.availableBooks)
	loggedIn.GET("/borrow/:id", a.borrow)
	loggedIn.GET("/return/:id", a.returnBook)
	loggedIn.GET("/my_books", a.myBooks)
	loggedIn.GET("/read_review/:id", a.readReview)

	catalog := g.Group("", a.catalogGuard)
	catalog.GET("/add_new_book", a.addNewBookForm)
	catalog.POST("/add_new_book", a.addNewBook)
}

// catalogGuard lets only administrators add books unless the open catalog
// setting is on.
func (a *BookController) catalogGuard(c *gin.Context) {
	open, err := a.settingService.GetOpenBookCatalog()
	if err != nil {
		logger.Warning("Unable to read openBookCatalog:", err)
	}
	if open {
		c.Next()
		return
	}
	a.adminRequired(c)
}

// availableBooks lists every book. A failed lookup shows an empty shelf.
func (a *BookController) availableBooks(c *gin.Context) {
	books, err := a.bookService.ListAvailable()
	if err != nil {
		logger.Warning("list available books failed:", err)
		books = nil
	}
	jsonObj(c, gin.H{"books": nonNil(books)}, nil)
}

func (a *BookController) myBooks(c *gin.Context) {
	books, err := a.bookService.ListMine(a.principal(c).Id)
	if err != nil {
		logger.Warning("list my books failed:", err)
		books = nil
	}
	jsonObj(c, gin.H{"books": nonNil(books)}, nil)
}

func (a *BookController) borrow(c *gin.Context) {
	a.lend(c, true)
}

func (a *BookController) returnBook(c *gin.Context) {
	a.lend(c, false)
}

func (a *BookController) lend(c *gin.Context, borrow bool) {
	id, ok := idParam(c, "id")
	if !ok {
		handleError(c, service.ErrNotFound)
		return
	}
	book, err := a.bookService.GetBook(id)
	if err != nil {
		handleError(c, err)
		return
	}

	userId := a.principal(c).Id
	if borrow {
		err = a.bookService.Borrow(id, userId)
	} else {
		err = a.bookService.Return(id, userId)
	}
	if err != nil {
		handleError(c, err)
		return
	}

	if borrow {
		respondRedirect(c, "/available_books", I18nWeb(c, "pages.books.borrowed", "Book=="+book.BookName))
	} else {
		respondRedirect(c, "/my_books", I18nWeb(c, "pages.books.returned", "Book=="+book.BookName))
	}
}

func (a *BookController) readReview(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		handleError(c, service.ErrNotFound)
		return
	}
	book, reviews, err := a.reviewService.ReadReviewsForBook(id)
	if err != nil {
		handleError(c, err)
		return
	}
	jsonObj(c, gin.H{"book": book, "reviews": reviews}, nil)
}

func (a *BookController) book(c *gin.Context) {
	id, ok := idParam(c, "books_id")
	if !ok {
		handleError(c, service.ErrNotFound)
		return
	}
	book, err := a.bookService.GetBook(id)
	if err != nil {
		handleError(c, err)
		return
	}
	jsonObj(c, book, nil)
}

func (a *BookController) addNewBookForm(c *gin.Context) {
	authors, err := a.bookService.ListAuthors()
	if err != nil {
		handleError(c, err)
		return
	}
	jsonObj(c, gin.H{"authors": entity.AuthorChoices(authors)}, nil)
}

func (a *BookController) addNewBook(c *gin.Context) {
	var form entity.AddNewBookForm
	if err := c.ShouldBind(&form); err != nil {
		formError(c, "book_name", "pages.forms.required")
		return
	}
	authors, err := a.bookService.ListAuthors()
	if err != nil {
		handleError(c, err)
		return
	}
	authorId, err := form.Validate(authors)
	if err != nil {
		handleError(c, err)
		return
	}

	book, err := a.bookService.AddBook(form.BookName, authorId, a.principal(c).Id)
	if errors.Is(err, service.ErrConflict) {
		formError(c, "book_name", "pages.books.exists")
		return
	} else if err != nil {
		handleError(c, err)
		return
	}
	logger.Infof("book %q added by %q", book.BookName, a.principal(c).EmailAddress)
	respondRedirect(c, "/add_new_book", I18nWeb(c, "pages.books.added"))
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

