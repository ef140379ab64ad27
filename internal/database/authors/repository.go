// Package authors provides database operations for author management.
package authors

import (
	"gorm.io/gorm"

	"github.com/marhild/booksmanager/internal/entities"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new author row.
func (r *Repository) Create(author *entities.Author) error {
	return r.db.Create(author).Error
}

// GetByID retrieves an author by ID.
func (r *Repository) GetByID(id uint) (*entities.Author, error) {
	var author entities.Author
	if err := r.db.First(&author, id).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

// GetAll retrieves all authors.
func (r *Repository) GetAll() ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.Find(&authors).Error
	return authors, err
}

// Save persists changes to an existing author.
func (r *Repository) Save(author *entities.Author) error {
	return r.db.Save(author).Error
}

// DeleteByID removes an author and its author_books join rows in a single
// transaction. Books keep existing without the deleted author.
func (r *Repository) DeleteByID(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM author_books WHERE author_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Author{}, id).Error
	})
}

// FindAll returns one page of authors ordered by id plus the total count.
func (r *Repository) FindAll(offset, limit int) ([]entities.Author, int64, error) {
	var total int64
	if err := r.db.Model(&entities.Author{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var authors []entities.Author
	err := r.db.Order("id").Offset(offset).Limit(limit).Find(&authors).Error
	return authors, total, err
}

// FindByFullName returns authors holding the given full name, excluding the
// author with excludeID so that an update against an unchanged name does not
// conflict with itself.
func (r *Repository) FindByFullName(fullName string, excludeID uint) ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.Where("full_name = ? AND id <> ?", fullName, excludeID).Find(&authors).Error
	return authors, err
}

// LatestID returns the highest author id. Returns gorm.ErrRecordNotFound
// when the table is empty.
func (r *Repository) LatestID() (uint, error) {
	var id uint
	err := r.db.Model(&entities.Author{}).Select("COALESCE(MAX(id), 0)").Scan(&id).Error
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return id, nil
}

// BooksByAuthor resolves the reverse side of the author_books relation.
func (r *Repository) BooksByAuthor(authorID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.
		Preload("Authors").
		Preload("Categories").
		Joins("JOIN author_books ON author_books.book_id = books.id").
		Where("author_books.author_id = ?", authorID).
		Order("books.id").
		Find(&books).Error
	return books, err
}
