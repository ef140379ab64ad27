package services

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/marhild/booksmanager/internal/database/authors"
	"github.com/marhild/booksmanager/internal/database/books"
	"github.com/marhild/booksmanager/internal/database/categories"
	"github.com/marhild/booksmanager/internal/entities"
)

type testServices struct {
	authors    *AuthorService
	books      *BookService
	categories *CategoryService
}

func setupTestDB(t *testing.T) (testServices, func()) {
	dbPath := "./test_services_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.Author{},
		&entities.Category{},
		&entities.Book{},
	)
	require.NoError(t, err)

	svcs := testServices{
		authors:    NewAuthorService(authors.NewRepository(db)),
		books:      NewBookService(books.NewRepository(db)),
		categories: NewCategoryService(categories.NewRepository(db)),
	}

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return svcs, cleanup
}

func mustCreateAuthor(t *testing.T, svc *AuthorService, first, last string) *entities.Author {
	t.Helper()
	author, err := svc.Create(&entities.Author{FirstName: first, LastName: last})
	require.NoError(t, err)
	return author
}

func mustCreateCategory(t *testing.T, svc *CategoryService, name string) *entities.Category {
	t.Helper()
	category, err := svc.Create(&entities.Category{Name: name})
	require.NoError(t, err)
	return category
}

func mustCreateBook(t *testing.T, svc *BookService, title string,
	author *entities.Author, cats ...*entities.Category) *entities.Book {
	t.Helper()
	draft := &entities.Book{
		Title:   title,
		Year:    "1900",
		Authors: []entities.Author{*author},
	}
	for _, cat := range cats {
		draft.Categories = append(draft.Categories, *cat)
	}
	book, err := svc.Create(draft)
	require.NoError(t, err)
	return book
}
