package http

import (
	"html/template"

	"github.com/gin-gonic/gin"

	"github.com/marhild/booksmanager/internal/database"
	"github.com/marhild/booksmanager/internal/entities"
	"github.com/marhild/booksmanager/internal/session"
)

// RouterConfig carries all dependencies of the HTTP layer, so the router
// is constructed the same way in main and in tests.
type RouterConfig struct {
	Database   *database.Database
	Authors    AuthorCatalog
	Books      BookCatalog
	Categories CategoryCatalog
	Sessions   *session.Manager

	CSRFSecret    []byte
	SecureCookies bool
	TemplatesPath string
	StaticPath    string
	Version       string
}

// hasAuthor reports whether the book references the author, used by the
// edit form to pre-select checkboxes.
func hasAuthor(book *entities.Book, authorID uint) bool {
	for _, a := range book.Authors {
		if a.ID == authorID {
			return true
		}
	}
	return false
}

// hasCategory reports whether the book references the category.
func hasCategory(book *entities.Book, categoryID uint) bool {
	for _, cat := range book.Categories {
		if cat.ID == categoryID {
			return true
		}
	}
	return false
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	if cfg.Sessions != nil {
		router.Use(cfg.Sessions.LoadSave())
	}

	// Template functions for the list and form views
	funcMap := template.FuncMap{
		"inc": func(i int) int {
			return i + 1
		},
		"hasAuthor":   hasAuthor,
		"hasCategory": hasCategory,
	}

	tmpl := template.Must(template.New("").Funcs(funcMap).ParseGlob(cfg.TemplatesPath + "/*.html"))
	router.SetHTMLTemplate(tmpl)

	router.Static("/static", cfg.StaticPath)

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)

	books := NewBooksController(cfg.Books, cfg.Authors, cfg.Categories, cfg.Sessions)
	router.GET("/", books.List)
	router.GET("/books", books.List)
	router.GET("/book/new", books.NewForm)
	router.POST("/book/create", books.Create)
	router.GET("/book/:id", books.Show)
	router.GET("/book/:id/edit", books.EditForm)
	router.POST("/book/:id/update", books.Update)
	router.POST("/book/:id/delete", books.Delete)
	router.POST("/book/:id/removeFromCategory/:catID", books.RemoveFromCategory)

	authors := NewAuthorsController(cfg.Authors, cfg.Sessions)
	router.GET("/authors", authors.List)
	router.GET("/author/new", authors.NewForm)
	router.POST("/author/create", authors.Create)
	router.GET("/author/:id", authors.Show)
	router.GET("/author/:id/edit", authors.EditForm)
	router.POST("/author/:id/update", authors.Update)
	router.POST("/author/:id/delete", authors.Delete)

	categories := NewCategoriesController(cfg.Categories, cfg.Sessions)
	router.GET("/categories", categories.List)
	router.GET("/category/new", categories.NewForm)
	router.POST("/category/create", categories.Create)
	router.GET("/category/:id", categories.Show)
	router.GET("/category/:id/edit", categories.EditForm)
	router.POST("/category/:id/update", categories.Update)
	router.POST("/category/:id/delete", categories.Delete)

	return router
}
