package database

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marhild/booksmanager/internal/entities"
)

func setupTestDB(t *testing.T) (*Database, func()) {
	dbPath := "./test_db_" + t.Name() + ".db"

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return db, cleanup
}

func TestNewDatabase_MigratesJoinTables(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	assert.True(t, db.DB.Migrator().HasTable("authors"))
	assert.True(t, db.DB.Migrator().HasTable("books"))
	assert.True(t, db.DB.Migrator().HasTable("categories"))
	assert.True(t, db.DB.Migrator().HasTable("author_books"))
	assert.True(t, db.DB.Migrator().HasTable("book_categories"))
}

func TestDeleteOrphanAssociations(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	author := entities.Author{FirstName: "Mary", LastName: "Shelley"}
	author.ComputeFullName()
	require.NoError(t, db.DB.Create(&author).Error)
	category := entities.Category{Name: "Gothic"}
	require.NoError(t, db.DB.Create(&category).Error)
	book := entities.Book{
		Title:      "Frankenstein",
		Year:       "1818",
		Authors:    []entities.Author{author},
		Categories: []entities.Category{category},
	}
	require.NoError(t, db.DB.Create(&book).Error)

	// Plant orphan rows pointing at ids that never existed
	require.NoError(t, db.DB.Exec(
		"INSERT INTO author_books (author_id, book_id) VALUES (?, ?)", 999, book.ID).Error)
	require.NoError(t, db.DB.Exec(
		"INSERT INTO book_categories (book_id, category_id) VALUES (?, ?)", 888, category.ID).Error)

	removed, err := db.DeleteOrphanAssociations()
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)

	// The intact rows stay
	var count int64
	require.NoError(t, db.DB.Table("author_books").Count(&count).Error)
	assert.EqualValues(t, 1, count)
	require.NoError(t, db.DB.Table("book_categories").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeleteOrphanAssociations_CleanDatabase(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	removed, err := db.DeleteOrphanAssociations()
	require.NoError(t, err)
	assert.Zero(t, removed)
}
