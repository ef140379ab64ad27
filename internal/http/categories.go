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
	categoryListView = "categories/list"
	categoryView     = "categories/show"
	categoryNewView  = "categories/new"
	categoryEditView = "categories/edit"
)

// messages
const (
	msgCategoryCreated = "New Category has been added."
	msgCategoryUpdated = "Category has been updated."
	msgCategoryDeleted = "Category has been deleted."
	msgNoCategories    = "There are no Categories in the Database."
	msgNoCategoryBooks = "There are no Books in this Category."
	msgCategoryExists  = "A Category with this name already exists. Please choose another name."
	msgCategoryInUse   = "Couldn't delete Category. Some Books have no other Category."
)

// CategoryForm is the HTML form payload for creating and editing
// categories.
type CategoryForm struct {
	Name string `form:"name" binding:"required"`
}

// CategoryCatalog is the category-service surface the controllers
// consume. GetAll feeds the book form's category picker.
type CategoryCatalog interface {
	GetAll() ([]entities.Category, error)
	FindByID(id uint) (*entities.Category, error)
	Create(draft *entities.Category) (*entities.Category, error)
	Update(id uint, draft *entities.Category) error
	Delete(id uint) error
	NameIsValid(name string, excludeID uint) (bool, error)
	FindAll(offset, limit int) ([]entities.Category, int64, error)
	BooksIn(categoryID uint) ([]entities.Book, error)
}

type CategoriesController struct {
	categories CategoryCatalog
	sessions   *session.Manager
}

func NewCategoriesController(categories CategoryCatalog, sessions *session.Manager) *CategoriesController {
	return &CategoriesController{categories: categories, sessions: sessions}
}

// List renders the paginated category listing.
func (ct *CategoriesController) List(c *gin.Context) {
	view, err := pagination.FromQuery(ct.categories.FindAll, queryInt(c, "pageSize"), queryInt(c, "page"))
	if err != nil {
		renderServiceError(c, err, "list categories")
		return
	}

	message := ct.sessions.PopFlash(c.Request.Context())
	if view.Page.TotalItems == 0 && message.IsEmpty() {
		message = session.InfoMessage(msgNoCategories)
	}

	render(c, http.StatusOK, categoryListView, gin.H{
		"View":    view,
		"Message": message,
	})
}

// Show renders a single category with a paginated list of its books.
func (ct *CategoriesController) Show(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	category, err := ct.categories.FindByID(id)
	if err != nil {
		renderServiceError(c, err, "show category")
		return
	}

	books, err := ct.categories.BooksIn(id)
	if err != nil {
		renderServiceError(c, err, "books in category")
		return
	}
	view := pagination.FromSlice(books, queryInt(c, "pageSize"), queryInt(c, "page"))

	message := ct.sessions.PopFlash(c.Request.Context())
	if len(books) == 0 && message.IsEmpty() {
		message = session.InfoMessage(msgNoCategoryBooks)
	}

	render(c, http.StatusOK, categoryView, gin.H{
		"Category": category,
		"View":     view,
		"Message":  message,
	})
}

// NewForm renders the creation form.
func (ct *CategoriesController) NewForm(c *gin.Context) {
	render(c, http.StatusOK, categoryNewView, gin.H{
		"Category": &entities.Category{},
		"Message":  ct.sessions.PopFlash(c.Request.Context()),
	})
}

// Create validates the name for uniqueness and persists the category.
func (ct *CategoriesController) Create(c *gin.Context) {
	var form CategoryForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, categoryNewView, gin.H{
			"Category": &entities.Category{},
			"Message":  session.ErrorMessage(msgFieldErrors),
		})
		return
	}

	valid, err := ct.categories.NameIsValid(form.Name, 0)
	if err != nil {
		renderServiceError(c, err, "validate category name")
		return
	}
	if !valid {
		render(c, http.StatusUnprocessableEntity, categoryNewView, gin.H{
			"Category": &entities.Category{Name: form.Name},
			"Message":  session.ErrorMessage(msgCategoryExists),
		})
		return
	}

	created, err := ct.categories.Create(&entities.Category{Name: form.Name})
	if err != nil {
		renderServiceError(c, err, "create category")
		return
	}

	ct.sessions.PutFlash(c.Request.Context(), session.SuccessMessage(msgCategoryCreated))
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/category/%d", created.ID))
}

// EditForm renders the edit form for an existing category.
func (ct *CategoriesController) EditForm(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	category, err := ct.categories.FindByID(id)
	if err != nil {
		renderServiceError(c, err, "edit category form")
		return
	}
	render(c, http.StatusOK, categoryEditView, gin.H{
		"Category": category,
		"Message":  ct.sessions.PopFlash(c.Request.Context()),
	})
}

// Update renames the category. The uniqueness check excludes the
// category's own id, so saving an unchanged name succeeds.
func (ct *CategoriesController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var form CategoryForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, categoryEditView, gin.H{
			"Category": &entities.Category{ID: id},
			"Message":  session.ErrorMessage(msgFieldErrors),
		})
		return
	}

	valid, err := ct.categories.NameIsValid(form.Name, id)
	if err != nil {
		renderServiceError(c, err, "validate category name")
		return
	}
	if !valid {
		render(c, http.StatusUnprocessableEntity, categoryEditView, gin.H{
			"Category": &entities.Category{ID: id, Name: form.Name},
			"Message":  session.ErrorMessage(msgCategoryExists),
		})
		return
	}

	if err := ct.categories.Update(id, &entities.Category{Name: form.Name}); err != nil {
		renderServiceError(c, err, "update category")
		return
	}

	ct.sessions.PutFlash(c.Request.Context(), session.SuccessMessage(msgCategoryUpdated))
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/category/%d", id))
}

// Delete removes the category unless it is some book's only category.
func (ct *CategoriesController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := ct.categories.Delete(id)
	switch {
	case errors.Is(err, services.ErrLastCategory):
		ct.sessions.PutFlash(c.Request.Context(), session.ErrorMessage(msgCategoryInUse))
		c.Redirect(http.StatusSeeOther, fmt.Sprintf("/category/%d", id))
		return
	case err != nil:
		renderServiceError(c, err, "delete category")
		return
	}

	ct.sessions.PutFlash(c.Request.Context(), session.SuccessMessage(msgCategoryDeleted))
	c.Redirect(http.StatusSeeOther, "/categories")
}
