// Package categories provides database operations for category management.
package categories

import (
	"gorm.io/gorm"

	"github.com/marhild/booksmanager/internal/database/books"
	"github.com/marhild/booksmanager/internal/entities"
)

// Repository handles all category database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new categories repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new category row.
func (r *Repository) Create(category *entities.Category) error {
	return r.db.Create(category).Error
}

// GetByID retrieves a category by ID.
func (r *Repository) GetByID(id uint) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// GetAll retrieves all categories.
func (r *Repository) GetAll() ([]entities.Category, error) {
	var categories []entities.Category
	err := r.db.Find(&categories).Error
	return categories, err
}

// Save persists changes to an existing category.
func (r *Repository) Save(category *entities.Category) error {
	return r.db.Save(category).Error
}

// DeleteByID removes a category and its book_categories join rows in a
// single transaction. The delete is refused with books.ErrLastCategory
// while the category is some book's only category, mirroring the guard on
// Book↔Category removal.
func (r *Repository) DeleteByID(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var singleCategoryBooks int64
		err := tx.Table("book_categories").
			Where("category_id = ?", id).
			Where(`book_id IN (
				SELECT book_id FROM book_categories
				GROUP BY book_id HAVING COUNT(*) = 1
			)`).
			Count(&singleCategoryBooks).Error
		if err != nil {
			return err
		}
		if singleCategoryBooks > 0 {
			return books.ErrLastCategory
		}

		if err := tx.Exec("DELETE FROM book_categories WHERE category_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Category{}, id).Error
	})
}

// FindAll returns one page of categories ordered by id plus the total count.
func (r *Repository) FindAll(offset, limit int) ([]entities.Category, int64, error) {
	var total int64
	if err := r.db.Model(&entities.Category{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var categories []entities.Category
	err := r.db.Order("id").Offset(offset).Limit(limit).Find(&categories).Error
	return categories, total, err
}

// FindByName returns categories holding the given name, excluding the
// category with excludeID so that an update against an unchanged name does
// not conflict with itself.
func (r *Repository) FindByName(name string, excludeID uint) ([]entities.Category, error) {
	var categories []entities.Category
	err := r.db.Where("name = ? AND id <> ?", name, excludeID).Find(&categories).Error
	return categories, err
}

// LatestID returns the highest category id. Returns gorm.ErrRecordNotFound
// when the table is empty.
func (r *Repository) LatestID() (uint, error) {
	var id uint
	err := r.db.Model(&entities.Category{}).Select("COALESCE(MAX(id), 0)").Scan(&id).Error
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return id, nil
}

// BooksInCategory resolves the reverse side of the book_categories relation.
func (r *Repository) BooksInCategory(categoryID uint) ([]entities.Book, error) {
	var result []entities.Book
	err := r.db.
		Preload("Authors").
		Preload("Categories").
		Joins("JOIN book_categories ON book_categories.book_id = books.id").
		Where("book_categories.category_id = ?", categoryID).
		Order("books.id").
		Find(&result).Error
	return result, err
}
