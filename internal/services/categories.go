package services

import (
	"github.com/marhild/booksmanager/internal/entities"
)

// CategoryService implements the business rules for categories: name
// uniqueness and the delete guard for books that would be left without a
// category.
type CategoryService struct {
	store CategoryStore
}

func NewCategoryService(store CategoryStore) *CategoryService {
	return &CategoryService{store: store}
}

// GetAll returns all categories.
func (s *CategoryService) GetAll() ([]entities.Category, error) {
	return s.store.GetAll()
}

// FindByID returns the category with the given id or ErrNotFound.
func (s *CategoryService) FindByID(id uint) (*entities.Category, error) {
	category, err := s.store.GetByID(id)
	if err != nil {
		return nil, notFound(err)
	}
	return category, nil
}

// Create saves a new category and returns it re-read from storage via the
// latest-entry lookup.
func (s *CategoryService) Create(draft *entities.Category) (*entities.Category, error) {
	if err := s.store.Create(draft); err != nil {
		return nil, err
	}
	return s.GetLatestEntry()
}

// Update replaces the stored category's name with the draft's.
func (s *CategoryService) Update(id uint, draft *entities.Category) error {
	current, err := s.FindByID(id)
	if err != nil {
		return err
	}
	current.Name = draft.Name
	return s.store.Save(current)
}

// Delete removes the category by id. Fails with ErrLastCategory while the
// category is some book's only category; otherwise its book associations
// are cascade-cleaned.
func (s *CategoryService) Delete(id uint) error {
	return s.store.DeleteByID(id)
}

// GetLatestEntry returns the most recently created category, or
// ErrNotFound when there are none.
func (s *CategoryService) GetLatestEntry() (*entities.Category, error) {
	id, err := s.store.LatestID()
	if err != nil {
		return nil, notFound(err)
	}
	return s.FindByID(id)
}

// NameIsValid reports whether no other category already holds the name.
// Pass the category's own id as excludeID on update so an unchanged name
// stays valid.
func (s *CategoryService) NameIsValid(name string, excludeID uint) (bool, error) {
	conflicts, err := s.store.FindByName(name, excludeID)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

// FindAll returns one page of categories plus the total count.
func (s *CategoryService) FindAll(offset, limit int) ([]entities.Category, int64, error) {
	return s.store.FindAll(offset, limit)
}

// BooksIn returns the books associated with the category.
func (s *CategoryService) BooksIn(categoryID uint) ([]entities.Book, error) {
	return s.store.BooksInCategory(categoryID)
}
