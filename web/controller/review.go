package controller

import (
	"errors"

	"github.com/raimis707/bookshelf/web/entity"
	"github.com/raimis707/bookshelf/web/middleware"
	"github.com/raimis707/bookshelf/web/service"

	"github.com/gin-gonic/gin"
)

// ReviewController lets signed-in users post reviews.
type ReviewController struct {
	BaseController

	bookService   service.BookService
	reviewService service.ReviewService
}

func NewReviewController(g *gin.RouterGroup) *ReviewController {
	a := &ReviewController{}
	a.initRouter(g)
	return a
}

func (a *ReviewController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/review", middleware.LoginRequired())

	g.GET("", a.reviewForm)
	g.POST("", a.addReview)
}

func (a *ReviewController) reviewForm(c *gin.Context) {
	books, err := a.bookService.ListAvailable()
	if err != nil {
		handleError(c, err)
		return
	}
	jsonObj(c, gin.H{"books": entity.BookChoices(books)}, nil)
}

func (a *ReviewController) addReview(c *gin.Context) {
	var form entity.AddNewReviewForm
	if err := c.ShouldBind(&form); err != nil {
		formError(c, "", "pages.forms.invalid")
		return
	}
	books, err := a.bookService.ListAvailable()
	if err != nil {
		handleError(c, err)
		return
	}
	if err := form.Validate(books); err != nil {
		handleError(c, err)
		return
	}

	_, err = a.reviewService.AddReview(form.BookId, a.principal(c).Id, form.Content)
	if errors.Is(err, service.ErrNotFound) {
		formError(c, "book_name", "pages.reviews.unknownBook")
		return
	} else if err != nil {
		handleError(c, err)
		return
	}
	respondRedirect(c, "/review", I18nWeb(c, "pages.reviews.added"))
}
