package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/marhild/booksmanager/internal/entities"
)

// notFound translates gorm's record-not-found sentinel into ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// AuthorService implements the business rules for authors: the derived
// full name, name uniqueness and the latest-entry re-fetch after create.
type AuthorService struct {
	store AuthorStore
}

func NewAuthorService(store AuthorStore) *AuthorService {
	return &AuthorService{store: store}
}

// GetAll returns all authors.
func (s *AuthorService) GetAll() ([]entities.Author, error) {
	return s.store.GetAll()
}

// FindByID returns the author with the given id or ErrNotFound.
func (s *AuthorService) FindByID(id uint) (*entities.Author, error) {
	author, err := s.store.GetByID(id)
	if err != nil {
		return nil, notFound(err)
	}
	return author, nil
}

// Create saves a new author and returns it re-read from storage via the
// latest-entry lookup, so the caller sees the row exactly as persisted.
func (s *AuthorService) Create(draft *entities.Author) (*entities.Author, error) {
	draft.ComputeFullName()
	if err := s.store.Create(draft); err != nil {
		return nil, err
	}
	return s.GetLatestEntry()
}

// Update copies the mutable fields of draft onto the stored author and
// recomputes the derived full name.
func (s *AuthorService) Update(id uint, draft *entities.Author) error {
	current, err := s.FindByID(id)
	if err != nil {
		return err
	}
	current.FirstName = draft.FirstName
	current.LastName = draft.LastName
	current.Bio = draft.Bio
	current.ComputeFullName()
	return s.store.Save(current)
}

// Delete removes the author by id. No existence check is performed; the
// storage delete cascade-cleans the author's book associations.
func (s *AuthorService) Delete(id uint) error {
	return s.store.DeleteByID(id)
}

// GetLatestEntry returns the most recently created author, or ErrNotFound
// when there are none.
func (s *AuthorService) GetLatestEntry() (*entities.Author, error) {
	id, err := s.store.LatestID()
	if err != nil {
		return nil, notFound(err)
	}
	return s.FindByID(id)
}

// NameIsValid reports whether no other author already holds the full name
// derived from draft. Pass the author's own id as excludeID on update so an
// unchanged name stays valid.
func (s *AuthorService) NameIsValid(draft *entities.Author, excludeID uint) (bool, error) {
	draft.ComputeFullName()
	conflicts, err := s.store.FindByFullName(draft.FullName, excludeID)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

// FindAll returns one page of authors plus the total count.
func (s *AuthorService) FindAll(offset, limit int) ([]entities.Author, int64, error) {
	return s.store.FindAll(offset, limit)
}

// BooksBy returns the books the author contributed to.
func (s *AuthorService) BooksBy(authorID uint) ([]entities.Book, error) {
	return s.store.BooksByAuthor(authorID)
}
