package services

import (
	"github.com/marhild/booksmanager/internal/entities"
)

// BookService implements the business rules for books: title uniqueness,
// association replacement on update and the last-category removal guard.
type BookService struct {
	store BookStore
}

func NewBookService(store BookStore) *BookService {
	return &BookService{store: store}
}

// GetAll returns all books with their associations.
func (s *BookService) GetAll() ([]entities.Book, error) {
	return s.store.GetAll()
}

// FindByID returns the book with the given id or ErrNotFound.
func (s *BookService) FindByID(id uint) (*entities.Book, error) {
	book, err := s.store.GetByID(id)
	if err != nil {
		return nil, notFound(err)
	}
	return book, nil
}

// Create saves a new book with its full association set and returns it
// re-read from storage via the latest-entry lookup.
func (s *BookService) Create(draft *entities.Book) (*entities.Book, error) {
	if err := s.store.Create(draft); err != nil {
		return nil, err
	}
	return s.GetLatestEntry()
}

// Update replaces the stored book's scalar fields and both association
// sets with those of draft.
func (s *BookService) Update(id uint, draft *entities.Book) error {
	current, err := s.FindByID(id)
	if err != nil {
		return err
	}
	current.Title = draft.Title
	current.Year = draft.Year
	current.Description = draft.Description
	return s.store.SaveWithAssociations(current, draft.Authors, draft.Categories)
}

// Delete removes the book by id together with its association rows.
func (s *BookService) Delete(id uint) error {
	return s.store.DeleteByID(id)
}

// GetLatestEntry returns the most recently created book, or ErrNotFound
// when there are none.
func (s *BookService) GetLatestEntry() (*entities.Book, error) {
	id, err := s.store.LatestID()
	if err != nil {
		return nil, notFound(err)
	}
	return s.FindByID(id)
}

// TitleIsValid reports whether no other book already holds the title.
// Pass the book's own id as excludeID on update.
func (s *BookService) TitleIsValid(title string, excludeID uint) (bool, error) {
	conflicts, err := s.store.FindByTitle(title, excludeID)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

// FindAll returns one page of books plus the total count.
func (s *BookService) FindAll(offset, limit int) ([]entities.Book, int64, error) {
	return s.store.FindAll(offset, limit)
}

// RemoveFromCategory disassociates book and category. Fails with
// ErrLastCategory when the book has fewer than two categories, with
// ErrNotInCategory when they are not associated, and with ErrNotFound when
// either side does not exist. The whole operation is atomic.
func (s *BookService) RemoveFromCategory(bookID, categoryID uint) error {
	if err := s.store.RemoveCategory(bookID, categoryID); err != nil {
		return notFound(err)
	}
	return nil
}
