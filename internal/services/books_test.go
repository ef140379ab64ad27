package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marhild/booksmanager/internal/entities"
)

func TestBookService_Create_ReturnsPersistedRow(t *testing.T) {
	svcs, cleanup := setupTestDB(t)
	defer cleanup()

	author := mustCreateAuthor(t, svcs.authors, "Mary", "Shelley")
	category := mustCreateCategory(t, svcs.categories, "Gothic")

	created, err := svcs.books.Create(&entities.Book{
		Title:      "Frankenstein",
		Year:       "1818",
		Authors:    []entities.Author{*author},
		Categories: []entities.Category{*category},
	})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, "Frankenstein", created.Title)
	require.Len(t, created.Authors, 1)
	assert.Equal(t, "Mary Shelley", created.Authors[0].FullName)
	require.Len(t, created.Categories, 1)
}

func TestBookService_Update_ReplacesAssociations(t *testing.T) {
	svcs, cleanup := setupTestDB(t)
	defer cleanup()

	shelley := mustCreateAuthor(t, svcs.authors, "Mary", "Shelley")
	verne := mustCreateAuthor(t, svcs.authors, "Jules", "Verne")
	gothic := mustCreateCategory(t, svcs.categories, "Gothic")
	adventure := mustCreateCategory(t, svcs.categories, "Adventure")
	book := mustCreateBook(t, svcs.books, "Frankenstein", shelley, gothic)

	err := svcs.books.Update(book.ID, &entities.Book{
		Title:       "Frankenstein",
		Year:        "1823",
		Description: "Second edition.",
		Authors:     []entities.Author{*verne},
		Categories:  []entities.Category{*adventure},
	})
	require.NoError(t, err)

	updated, err := svcs.books.FindByID(book.ID)
	require.NoError(t, err)
	assert.Equal(t, "1823", updated.Year)
	assert.Equal(t, "Second edition.", updated.Description)
	require.Len(t, updated.Authors, 1)
	assert.Equal(t, "Jules Verne", updated.Authors[0].FullName)
	require.Len(t, updated.Categories, 1)
	assert.Equal(t, "Adventure", updated.Categories[0].Name)
}

func TestBookService_Update_NotFound(t *testing.T) {
	svcs, cleanup := setupTestDB(t)
	defer cleanup()

	err := svcs.books.Update(42, &entities.Book{Title: "Ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookService_TitleIsValid(t *testing.T) {
	svcs, cleanup := setupTestDB(t)
	defer cleanup()

	author := mustCreateAuthor(t, svcs.authors, "Jane", "Austen")
	romance := mustCreateCategory(t, svcs.categories, "Romance")
	book := mustCreateBook(t, svcs.books, "Emma", author, romance)

	valid, err := svcs.books.TitleIsValid("Emma", 0)
	require.NoError(t, err)
	assert.False(t, valid)

	// The book's own title is not its own conflict
	valid, err = svcs.books.TitleIsValid("Emma", book.ID)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = svcs.books.TitleIsValid("Persuasion", 0)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestBookService_RemoveFromCategory(t *testing.T) {
	svcs, cleanup := setupTestDB(t)
	defer cleanup()

	author := mustCreateAuthor(t, svcs.authors, "Mary", "Shelley")
	gothic := mustCreateCategory(t, svcs.categories, "Gothic")
	scifi := mustCreateCategory(t, svcs.categories, "Science Fiction")
	book := mustCreateBook(t, svcs.books, "Frankenstein", author, gothic, scifi)

	require.NoError(t, svcs.books.RemoveFromCategory(book.ID, gothic.ID))

	updated, err := svcs.books.FindByID(book.ID)
	require.NoError(t, err)
	require.Len(t, updated.Categories, 1)
	assert.Equal(t, "Science Fiction", updated.Categories[0].Name)

	// Now science fiction is the last category and must stay
	err = svcs.books.RemoveFromCategory(book.ID, scifi.ID)
	assert.ErrorIs(t, err, ErrLastCategory)

	// Removing an unassociated category is reported as such
	err = svcs.books.RemoveFromCategory(book.ID, gothic.ID)
	assert.ErrorIs(t, err, ErrNotInCategory)
}

func TestBookService_RemoveFromCategory_NotFound(t *testing.T) {
	svcs, cleanup := setupTestDB(t)
	defer cleanup()

	err := svcs.books.RemoveFromCategory(42, 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookService_GetLatestEntry(t *testing.T) {
	svcs, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := svcs.books.GetLatestEntry()
	assert.ErrorIs(t, err, ErrNotFound)

	author := mustCreateAuthor(t, svcs.authors, "Jules", "Verne")
	category := mustCreateCategory(t, svcs.categories, "Adventure")
	mustCreateBook(t, svcs.books, "Five Weeks in a Balloon", author, category)
	second := mustCreateBook(t, svcs.books, "The Mysterious Island", author, category)

	latest, err := svcs.books.GetLatestEntry()
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
}

func TestBookService_Delete(t *testing.T) {
	svcs, cleanup := setupTestDB(t)
	defer cleanup()

	author := mustCreateAuthor(t, svcs.authors, "Jane", "Austen")
	romance := mustCreateCategory(t, svcs.categories, "Romance")
	book := mustCreateBook(t, svcs.books, "Pride and Prejudice", author, romance)

	require.NoError(t, svcs.books.Delete(book.ID))

	_, err := svcs.books.FindByID(book.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Author and category keep existing
	_, err = svcs.authors.FindByID(author.ID)
	require.NoError(t, err)
	_, err = svcs.categories.FindByID(romance.ID)
	require.NoError(t, err)
}
