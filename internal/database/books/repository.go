// Package books provides database operations for book management,
// including the Book↔Author and Book↔Category associations.
package books

import (
	"errors"

	"gorm.io/gorm"

	"github.com/marhild/booksmanager/internal/entities"
)

var (
	// ErrLastCategory is returned when a removal would leave a book
	// without any category.
	ErrLastCategory = errors.New("book must have at least one category")

	// ErrNotInCategory is returned when the book and category are not
	// associated in the first place.
	ErrNotInCategory = errors.New("book is not in this category")
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new book together with its association rows. The
// Authors and Categories slices must reference existing entities by id.
func (r *Repository) Create(book *entities.Book) error {
	return r.db.Create(book).Error
}

// GetByID retrieves a book with its authors and categories.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Authors").Preload("Categories").First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetAll retrieves all books with their associations.
func (r *Repository) GetAll() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Preload("Authors").Preload("Categories").Find(&books).Error
	return books, err
}

// SaveWithAssociations persists the book's scalar fields and replaces both
// association sets in one transaction.
func (r *Repository) SaveWithAssociations(book *entities.Book, authors []entities.Author, categories []entities.Category) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Authors", "Categories").Save(book).Error; err != nil {
			return err
		}
		if err := tx.Model(book).Association("Authors").Replace(&authors); err != nil {
			return err
		}
		return tx.Model(book).Association("Categories").Replace(&categories)
	})
}

// DeleteByID removes a book and its join rows in a single transaction.
func (r *Repository) DeleteByID(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM author_books WHERE book_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM book_categories WHERE book_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Book{}, id).Error
	})
}

// FindAll returns one page of books ordered by id plus the total count.
func (r *Repository) FindAll(offset, limit int) ([]entities.Book, int64, error) {
	var total int64
	if err := r.db.Model(&entities.Book{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var books []entities.Book
	err := r.db.
		Preload("Authors").
		Preload("Categories").
		Order("id").Offset(offset).Limit(limit).
		Find(&books).Error
	return books, total, err
}

// FindByTitle returns books holding the given title, excluding the book
// with excludeID so that an update against an unchanged title does not
// conflict with itself.
func (r *Repository) FindByTitle(title string, excludeID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Where("title = ? AND id <> ?", title, excludeID).Find(&books).Error
	return books, err
}

// LatestID returns the highest book id. Returns gorm.ErrRecordNotFound
// when the table is empty.
func (r *Repository) LatestID() (uint, error) {
	var id uint
	err := r.db.Model(&entities.Book{}).Select("COALESCE(MAX(id), 0)").Scan(&id).Error
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return id, nil
}

// RemoveCategory disassociates a book from a category. The precondition
// checks, the join-row deletion and both UpdatedAt stamps run inside one
// transaction so a failure cannot leave the association half-removed.
//
// Returns ErrNotInCategory when no association exists and ErrLastCategory
// when the removal would leave the book without categories.
func (r *Repository) RemoveCategory(bookID, categoryID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, bookID).Error; err != nil {
			return err
		}
		var category entities.Category
		if err := tx.First(&category, categoryID).Error; err != nil {
			return err
		}

		var associated int64
		err := tx.Table("book_categories").
			Where("book_id = ? AND category_id = ?", bookID, categoryID).
			Count(&associated).Error
		if err != nil {
			return err
		}
		if associated == 0 {
			return ErrNotInCategory
		}

		var categoryCount int64
		err = tx.Table("book_categories").Where("book_id = ?", bookID).Count(&categoryCount).Error
		if err != nil {
			return err
		}
		if categoryCount < 2 {
			return ErrLastCategory
		}

		err = tx.Exec("DELETE FROM book_categories WHERE book_id = ? AND category_id = ?",
			bookID, categoryID).Error
		if err != nil {
			return err
		}

		if err := tx.Model(&book).UpdateColumn("updated_at", tx.NowFunc()).Error; err != nil {
			return err
		}
		return tx.Model(&category).UpdateColumn("updated_at", tx.NowFunc()).Error
	})
}
