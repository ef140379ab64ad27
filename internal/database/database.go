package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/marhild/booksmanager/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-migrate all entities (join tables are created by the
	// many2many definitions on Book)
	err = db.AutoMigrate(
		&entities.Author{},
		&entities.Category{},
		&entities.Book{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// DeleteOrphanAssociations removes join-table rows whose endpoints no longer
// exist. Deletes performed through the repositories clean their own join
// rows; this sweep covers databases created before that policy (imports,
// hand-edited files).
func (d *Database) DeleteOrphanAssociations() (int64, error) {
	var total int64

	result := d.DB.Exec(`
		DELETE FROM author_books
		WHERE author_id NOT IN (SELECT id FROM authors)
		OR book_id NOT IN (SELECT id FROM books)
	`)
	if result.Error != nil {
		return total, result.Error
	}
	total += result.RowsAffected

	result = d.DB.Exec(`
		DELETE FROM book_categories
		WHERE category_id NOT IN (SELECT id FROM categories)
		OR book_id NOT IN (SELECT id FROM books)
	`)
	if result.Error != nil {
		return total, result.Error
	}
	total += result.RowsAffected

	return total, nil
}
