package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marhild/booksmanager/internal/entities"
	"github.com/marhild/booksmanager/internal/pagination"
	"github.com/marhild/booksmanager/internal/session"
)

// view templates
const (
	authorListView = "authors/list"
	authorView     = "authors/show"
	authorNewView  = "authors/new"
	authorEditView = "authors/edit"
)

// messages
const (
	msgAuthorCreated = "New Author has been added."
	msgAuthorUpdated = "Author has been updated."
	msgAuthorDeleted = "Author has been deleted."
	msgNoAuthors     = "There are no Authors in the Database."
	msgNoAuthorBooks = "There are no Books by this Author."
	msgAuthorExists  = "An Author with this name already exists. Please choose another name."
)

// AuthorForm is the HTML form payload for creating and editing authors.
type AuthorForm struct {
	FirstName string `form:"first_name" binding:"required"`
	LastName  string `form:"last_name" binding:"required"`
	Bio       string `form:"bio"`
}

func (f AuthorForm) draft() *entities.Author {
	return &entities.Author{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Bio:       f.Bio,
	}
}

// AuthorCatalog is the author-service surface the controllers consume.
// GetAll feeds the book form's author picker.
type AuthorCatalog interface {
	GetAll() ([]entities.Author, error)
	FindByID(id uint) (*entities.Author, error)
	Create(draft *entities.Author) (*entities.Author, error)
	Update(id uint, draft *entities.Author) error
	Delete(id uint) error
	NameIsValid(draft *entities.Author, excludeID uint) (bool, error)
	FindAll(offset, limit int) ([]entities.Author, int64, error)
	BooksBy(authorID uint) ([]entities.Book, error)
}

type AuthorsController struct {
	authors  AuthorCatalog
	sessions *session.Manager
}

func NewAuthorsController(authors AuthorCatalog, sessions *session.Manager) *AuthorsController {
	return &AuthorsController{authors: authors, sessions: sessions}
}

// List renders the paginated author listing.
func (ct *AuthorsController) List(c *gin.Context) {
	view, err := pagination.FromQuery(ct.authors.FindAll, queryInt(c, "pageSize"), queryInt(c, "page"))
	if err != nil {
		renderServiceError(c, err, "list authors")
		return
	}

	message := ct.sessions.PopFlash(c.Request.Context())
	if view.Page.TotalItems == 0 && message.IsEmpty() {
		message = session.InfoMessage(msgNoAuthors)
	}

	render(c, http.StatusOK, authorListView, gin.H{
		"View":    view,
		"Message": message,
	})
}

// Show renders a single author with a paginated list of their books.
func (ct *AuthorsController) Show(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	author, err := ct.authors.FindByID(id)
	if err != nil {
		renderServiceError(c, err, "show author")
		return
	}

	books, err := ct.authors.BooksBy(id)
	if err != nil {
		renderServiceError(c, err, "books by author")
		return
	}
	view := pagination.FromSlice(books, queryInt(c, "pageSize"), queryInt(c, "page"))

	message := ct.sessions.PopFlash(c.Request.Context())
	if len(books) == 0 && message.IsEmpty() {
		message = session.InfoMessage(msgNoAuthorBooks)
	}

	render(c, http.StatusOK, authorView, gin.H{
		"Author":  author,
		"View":    view,
		"Message": message,
	})
}

// NewForm renders the creation form.
func (ct *AuthorsController) NewForm(c *gin.Context) {
	render(c, http.StatusOK, authorNewView, gin.H{
		"Author":  &entities.Author{},
		"Message": ct.sessions.PopFlash(c.Request.Context()),
	})
}

// Create validates the draft and persists it, redirecting to the created
// author on success.
func (ct *AuthorsController) Create(c *gin.Context) {
	var form AuthorForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, authorNewView, gin.H{
			"Author":  form.draft(),
			"Message": session.ErrorMessage(msgFieldErrors),
		})
		return
	}

	draft := form.draft()
	valid, err := ct.authors.NameIsValid(draft, 0)
	if err != nil {
		renderServiceError(c, err, "validate author name")
		return
	}
	if !valid {
		render(c, http.StatusUnprocessableEntity, authorNewView, gin.H{
			"Author":  draft,
			"Message": session.ErrorMessage(msgAuthorExists),
		})
		return
	}

	created, err := ct.authors.Create(draft)
	if err != nil {
		renderServiceError(c, err, "create author")
		return
	}

	ct.sessions.PutFlash(c.Request.Context(), session.SuccessMessage(msgAuthorCreated))
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/author/%d", created.ID))
}

// EditForm renders the edit form for an existing author.
func (ct *AuthorsController) EditForm(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	author, err := ct.authors.FindByID(id)
	if err != nil {
		renderServiceError(c, err, "edit author form")
		return
	}
	render(c, http.StatusOK, authorEditView, gin.H{
		"Author":  author,
		"Message": ct.sessions.PopFlash(c.Request.Context()),
	})
}

// Update replaces the stored author's fields with the submitted draft.
func (ct *AuthorsController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var form AuthorForm
	if err := c.ShouldBind(&form); err != nil {
		draft := form.draft()
		draft.ID = id
		render(c, http.StatusBadRequest, authorEditView, gin.H{
			"Author":  draft,
			"Message": session.ErrorMessage(msgFieldErrors),
		})
		return
	}

	draft := form.draft()
	valid, err := ct.authors.NameIsValid(draft, id)
	if err != nil {
		renderServiceError(c, err, "validate author name")
		return
	}
	if !valid {
		draft.ID = id
		render(c, http.StatusUnprocessableEntity, authorEditView, gin.H{
			"Author":  draft,
			"Message": session.ErrorMessage(msgAuthorExists),
		})
		return
	}

	if err := ct.authors.Update(id, draft); err != nil {
		renderServiceError(c, err, "update author")
		return
	}

	ct.sessions.PutFlash(c.Request.Context(), session.SuccessMessage(msgAuthorUpdated))
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/author/%d", id))
}

// Delete removes the author and returns to the listing. The author's book
// associations are cascade-cleaned by the storage layer.
func (ct *AuthorsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ct.authors.Delete(id); err != nil {
		renderServiceError(c, err, "delete author")
		return
	}
	ct.sessions.PutFlash(c.Request.Context(), session.SuccessMessage(msgAuthorDeleted))
	c.Redirect(http.StatusSeeOther, "/authors")
}
