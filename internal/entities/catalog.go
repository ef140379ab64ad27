package entities

import (
	"time"
)

// Author is a book author. FullName is derived from FirstName and LastName
// on every write and is never accepted from input directly.
//
// Authors carry no live back-reference to their books; the reverse side of
// the author_books relation is resolved by query (see database/authors).
type Author struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"size:100" json:"first_name"`
	LastName  string    `gorm:"size:100" json:"last_name"`
	FullName  string    `gorm:"index;size:201" json:"full_name"`
	Bio       string    `gorm:"type:text" json:"bio,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ComputeFullName recomputes the derived FullName field.
// Must be called whenever FirstName or LastName changes.
func (a *Author) ComputeFullName() {
	a.FullName = a.FirstName + " " + a.LastName
}

// Book owns both many-to-many relations of the catalog.
type Book struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"index;size:512" json:"title"`
	Year        string     `gorm:"column:published;size:10" json:"year"`
	Description string     `gorm:"type:text" json:"description"`
	Authors     []Author   `gorm:"many2many:author_books;" json:"authors,omitempty"`
	Categories  []Category `gorm:"many2many:book_categories;" json:"categories,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Category groups books. Name uniqueness is enforced at the application
// layer, not with a database constraint.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"index;size:100" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
