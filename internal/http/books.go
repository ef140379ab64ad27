package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marhild/booksmanager/internal/entities"
	"github.com/marhild/booksmanager/internal/pagination"
	"github.com/marhild/booksmanager/internal/services"
	"github.com/marhild/booksmanager/internal/session"
)

// view templates
const (
	bookListView = "books/list"
	bookView     = "books/show"
	bookNewView  = "books/new"
	bookEditView = "books/edit"
)

// messages
const (
	msgFieldErrors = "Please correct the field errors."

	msgBookCreated        = "New Book has been added."
	msgBookUpdated        = "Book has been updated."
	msgBookDeleted        = "Book has been deleted."
	msgBookLeftCategory   = "Book has been removed from the Category."
	msgNoBooks            = "There are no Books in the Database."
	msgNeedAuthorsAndCats = "First, create at least one Category and one Author to add a new Book."
	msgLastCategory       = "Couldn't remove Book. A Book must have at least one Category."
	msgNotInCategory      = "The Book is not in this Category."
	msgBookExists         = "A Book of this title already exists. Please choose another title."
)

// BookForm is the HTML form payload for creating and editing books. A book
// needs at least one author and one category.
type BookForm struct {
	Title       string `form:"title" binding:"required"`
	Year        string `form:"year" binding:"required"`
	Description string `form:"description" binding:"required"`
	AuthorIDs   []uint `form:"author_ids" binding:"required"`
	CategoryIDs []uint `form:"category_ids" binding:"required"`
}

// draft converts the form into an unsaved Book. Associations are id stubs,
// enough to re-render the form with the user's selection intact.
func (f BookForm) draft() *entities.Book {
	book := &entities.Book{
		Title:       f.Title,
		Year:        f.Year,
		Description: f.Description,
	}
	for _, id := range f.AuthorIDs {
		book.Authors = append(book.Authors, entities.Author{ID: id})
	}
	for _, id := range f.CategoryIDs {
		book.Categories = append(book.Categories, entities.Category{ID: id})
	}
	return book
}

// BookCatalog is the book-service surface the controller consumes.
type BookCatalog interface {
	FindByID(id uint) (*entities.Book, error)
	Create(draft *entities.Book) (*entities.Book, error)
	Update(id uint, draft *entities.Book) error
	Delete(id uint) error
	TitleIsValid(title string, excludeID uint) (bool, error)
	FindAll(offset, limit int) ([]entities.Book, int64, error)
	RemoveFromCategory(bookID, categoryID uint) error
}

type BooksController struct {
	books      BookCatalog
	authors    AuthorCatalog
	categories CategoryCatalog
	sessions   *session.Manager
}

func NewBooksController(books BookCatalog, authors AuthorCatalog,
	categories CategoryCatalog, sessions *session.Manager) *BooksController {
	return &BooksController{
		books:      books,
		authors:    authors,
		categories: categories,
		sessions:   sessions,
	}
}

// List renders the paginated book listing.
func (ct *BooksController) List(c *gin.Context) {
	view, err := pagination.FromQuery(ct.books.FindAll, queryInt(c, "pageSize"), queryInt(c, "page"))
	if err != nil {
		renderServiceError(c, err, "list books")
		return
	}

	message := ct.sessions.PopFlash(c.Request.Context())
	if view.Page.TotalItems == 0 && message.IsEmpty() {
		message = session.InfoMessage(msgNoBooks)
	}

	render(c, http.StatusOK, bookListView, gin.H{
		"View":    view,
		"Message": message,
	})
}

// Show renders a single book. After a redirect from a mutating action the
// session carries the message to display.
func (ct *BooksController) Show(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	book, err := ct.books.FindByID(id)
	if err != nil {
		renderServiceError(c, err, "show book")
		return
	}

	render(c, http.StatusOK, bookView, gin.H{
		"Book":    book,
		"Message": ct.sessions.PopFlash(c.Request.Context()),
	})
}

// NewForm renders the creation form.
func (ct *BooksController) NewForm(c *gin.Context) {
	ct.renderForm(c, http.StatusOK, bookNewView, &entities.Book{}, ct.sessions.PopFlash(c.Request.Context()))
}

// Create validates the submitted draft and persists it. Validation
// failures re-render the form carrying the draft and an error message;
// success redirects to the created book with a success flash.
func (ct *BooksController) Create(c *gin.Context) {
	var form BookForm
	if err := c.ShouldBind(&form); err != nil {
		ct.renderForm(c, http.StatusBadRequest, bookNewView, form.draft(), session.ErrorMessage(msgFieldErrors))
		return
	}

	valid, err := ct.books.TitleIsValid(form.Title, 0)
	if err != nil {
		renderServiceError(c, err, "validate book title")
		return
	}
	if !valid {
		ct.renderForm(c, http.StatusUnprocessableEntity, bookNewView, form.draft(), session.ErrorMessage(msgBookExists))
		return
	}

	draft, ok := ct.resolveAssociations(c, form, bookNewView)
	if !ok {
		return
	}

	created, err := ct.books.Create(draft)
	if err != nil {
		renderServiceError(c, err, "create book")
		return
	}

	ct.sessions.PutFlash(c.Request.Context(), session.SuccessMessage(msgBookCreated))
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/book/%d", created.ID))
}

// EditForm renders the edit form for an existing book.
func (ct *BooksController) EditForm(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	book, err := ct.books.FindByID(id)
	if err != nil {
		renderServiceError(c, err, "edit book form")
		return
	}
	ct.renderForm(c, http.StatusOK, bookEditView, book, ct.sessions.PopFlash(c.Request.Context()))
}

// Update replaces the stored book's fields and associations with the
// submitted draft.
func (ct *BooksController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var form BookForm
	if err := c.ShouldBind(&form); err != nil {
		draft := form.draft()
		draft.ID = id
		ct.renderForm(c, http.StatusBadRequest, bookEditView, draft, session.ErrorMessage(msgFieldErrors))
		return
	}

	valid, err := ct.books.TitleIsValid(form.Title, id)
	if err != nil {
		renderServiceError(c, err, "validate book title")
		return
	}
	if !valid {
		draft := form.draft()
		draft.ID = id
		ct.renderForm(c, http.StatusUnprocessableEntity, bookEditView, draft, session.ErrorMessage(msgBookExists))
		return
	}

	draft, ok := ct.resolveAssociations(c, form, bookEditView)
	if !ok {
		return
	}

	if err := ct.books.Update(id, draft); err != nil {
		renderServiceError(c, err, "update book")
		return
	}

	ct.sessions.PutFlash(c.Request.Context(), session.SuccessMessage(msgBookUpdated))
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/book/%d", id))
}

// Delete removes the book and returns to the listing.
func (ct *BooksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ct.books.Delete(id); err != nil {
		renderServiceError(c, err, "delete book")
		return
	}
	ct.sessions.PutFlash(c.Request.Context(), session.SuccessMessage(msgBookDeleted))
	c.Redirect(http.StatusSeeOther, "/books")
}

// RemoveFromCategory disassociates the book from one of its categories.
// The removal is refused when it would leave the book categoryless.
func (ct *BooksController) RemoveFromCategory(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	categoryID, ok := parseIDParam(c, "catID")
	if !ok {
		return
	}

	err := ct.books.RemoveFromCategory(bookID, categoryID)
	switch {
	case errors.Is(err, services.ErrLastCategory):
		ct.sessions.PutFlash(c.Request.Context(), session.ErrorMessage(msgLastCategory))
	case errors.Is(err, services.ErrNotInCategory):
		ct.sessions.PutFlash(c.Request.Context(), session.ErrorMessage(msgNotInCategory))
	case err != nil:
		renderServiceError(c, err, "remove book from category")
		return
	default:
		ct.sessions.PutFlash(c.Request.Context(), session.SuccessMessage(msgBookLeftCategory))
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/book/%d", bookID))
}

// renderForm renders the new/edit form with the author and category
// choices. Without at least one of each no book can be created, so the
// form points that out.
func (ct *BooksController) renderForm(c *gin.Context, status int, view string, book *entities.Book, message session.Message) {
	allAuthors, err := ct.authors.GetAll()
	if err != nil {
		renderServiceError(c, err, "load authors for book form")
		return
	}
	allCategories, err := ct.categories.GetAll()
	if err != nil {
		renderServiceError(c, err, "load categories for book form")
		return
	}

	if message.IsEmpty() && (len(allAuthors) == 0 || len(allCategories) == 0) {
		message = session.InfoMessage(msgNeedAuthorsAndCats)
	}

	render(c, status, view, gin.H{
		"Book":          book,
		"AllAuthors":    allAuthors,
		"AllCategories": allCategories,
		"Message":       message,
	})
}

// resolveAssociations loads the selected authors and categories, so the
// draft references existing entities. A vanished id re-renders the form.
func (ct *BooksController) resolveAssociations(c *gin.Context, form BookForm, view string) (*entities.Book, bool) {
	draft := &entities.Book{
		Title:       form.Title,
		Year:        form.Year,
		Description: form.Description,
	}

	for _, id := range form.AuthorIDs {
		author, err := ct.authors.FindByID(id)
		if err != nil {
			ct.renderForm(c, http.StatusBadRequest, view, form.draft(), session.ErrorMessage(msgFieldErrors))
			return nil, false
		}
		draft.Authors = append(draft.Authors, *author)
	}
	for _, id := range form.CategoryIDs {
		category, err := ct.categories.FindByID(id)
		if err != nil {
			ct.renderForm(c, http.StatusBadRequest, view, form.draft(), session.ErrorMessage(msgFieldErrors))
			return nil, false
		}
		draft.Categories = append(draft.Categories, *category)
	}

	return draft, true
}
