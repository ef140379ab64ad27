package services

import (
	"github.com/marhild/booksmanager/internal/entities"
)

// Store interfaces consumed by the entity services. The repositories in
// internal/database implement them; tests may substitute their own.

// AuthorStore is the persistence port for authors.
type AuthorStore interface {
	Create(author *entities.Author) error
	GetByID(id uint) (*entities.Author, error)
	GetAll() ([]entities.Author, error)
	Save(author *entities.Author) error
	DeleteByID(id uint) error
	FindAll(offset, limit int) ([]entities.Author, int64, error)
	FindByFullName(fullName string, excludeID uint) ([]entities.Author, error)
	LatestID() (uint, error)
	BooksByAuthor(authorID uint) ([]entities.Book, error)
}

// BookStore is the persistence port for books and their associations.
type BookStore interface {
	Create(book *entities.Book) error
	GetByID(id uint) (*entities.Book, error)
	GetAll() ([]entities.Book, error)
	SaveWithAssociations(book *entities.Book, authors []entities.Author, categories []entities.Category) error
	DeleteByID(id uint) error
	FindAll(offset, limit int) ([]entities.Book, int64, error)
	FindByTitle(title string, excludeID uint) ([]entities.Book, error)
	LatestID() (uint, error)
	RemoveCategory(bookID, categoryID uint) error
}

// CategoryStore is the persistence port for categories.
type CategoryStore interface {
	Create(category *entities.Category) error
	GetByID(id uint) (*entities.Category, error)
	GetAll() ([]entities.Category, error)
	Save(category *entities.Category) error
	DeleteByID(id uint) error
	FindAll(offset, limit int) ([]entities.Category, int64, error)
	FindByName(name string, excludeID uint) ([]entities.Category, error)
	LatestID() (uint, error)
	BooksInCategory(categoryID uint) ([]entities.Book, error)
}
