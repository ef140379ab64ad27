// Command seed creates a catalog database pre-filled with sample data.
// Usage: go run cmd/seed/main.go [-db path/to/catalog.db]
package main

import (
	"flag"
	"log"
	"os"

	"github.com/marhild/booksmanager/internal/config"
	"github.com/marhild/booksmanager/internal/database"
	"github.com/marhild/booksmanager/internal/database/authors"
	"github.com/marhild/booksmanager/internal/database/books"
	"github.com/marhild/booksmanager/internal/database/categories"
	"github.com/marhild/booksmanager/internal/entities"
	"github.com/marhild/booksmanager/internal/services"
)

type bookSeed struct {
	Title       string
	Year        string
	Description string
	AuthorNames []string
	Categories  []string
}

func main() {
	dbPath := flag.String("db", config.DefaultDatabasePath, "path to the database file")
	flag.Parse()

	log.Printf("Seeding catalog database at %s...", *dbPath)

	// Delete existing database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	authorService := services.NewAuthorService(authors.NewRepository(db.DB))
	bookService := services.NewBookService(books.NewRepository(db.DB))
	categoryService := services.NewCategoryService(categories.NewRepository(db.DB))

	authorsByName := seedAuthors(authorService)
	categoriesByName := seedCategories(categoryService)

	for _, seed := range sampleBooks() {
		draft := entities.Book{
			Title:       seed.Title,
			Year:        seed.Year,
			Description: seed.Description,
		}
		for _, name := range seed.AuthorNames {
			if author, ok := authorsByName[name]; ok {
				draft.Authors = append(draft.Authors, author)
			}
		}
		for _, name := range seed.Categories {
			if category, ok := categoriesByName[name]; ok {
				draft.Categories = append(draft.Categories, category)
			}
		}

		created, err := bookService.Create(&draft)
		if err != nil {
			log.Printf("Failed to save book %s: %v", seed.Title, err)
			continue
		}
		log.Printf("Saved: %s (%s) with %d author(s), %d category(ies)",
			created.Title, created.Year, len(created.Authors), len(created.Categories))
	}

	log.Println("Catalog database seeded successfully!")
}

func seedAuthors(svc *services.AuthorService) map[string]entities.Author {
	drafts := []entities.Author{
		{FirstName: "Mary", LastName: "Shelley", Bio: "English novelist, author of Frankenstein."},
		{FirstName: "Jules", LastName: "Verne", Bio: "French novelist, poet and playwright."},
		{FirstName: "Herbert George", LastName: "Wells", Bio: "English writer, pioneer of science fiction."},
		{FirstName: "Jane", LastName: "Austen", Bio: "English novelist known for her social commentary."},
		{FirstName: "Arthur Conan", LastName: "Doyle", Bio: "British writer, creator of Sherlock Holmes."},
	}

	result := make(map[string]entities.Author)
	for i := range drafts {
		created, err := svc.Create(&drafts[i])
		if err != nil {
			log.Printf("Failed to create author %s %s: %v", drafts[i].FirstName, drafts[i].LastName, err)
			continue
		}
		result[created.FullName] = *created
	}
	return result
}

func seedCategories(svc *services.CategoryService) map[string]entities.Category {
	names := []string{
		"Science Fiction",
		"Gothic",
		"Adventure",
		"Romance",
		"Mystery",
	}

	result := make(map[string]entities.Category)
	for _, name := range names {
		created, err := svc.Create(&entities.Category{Name: name})
		if err != nil {
			log.Printf("Failed to create category %s: %v", name, err)
			continue
		}
		result[created.Name] = *created
	}
	return result
}

func sampleBooks() []bookSeed {
	return []bookSeed{
		{
			Title:       "Frankenstein",
			Year:        "1818",
			Description: "A young scientist creates a sapient creature in an unorthodox experiment.",
			AuthorNames: []string{"Mary Shelley"},
			Categories:  []string{"Gothic", "Science Fiction"},
		},
		{
			Title:       "Twenty Thousand Leagues Under the Seas",
			Year:        "1870",
			Description: "Captain Nemo roams the oceans aboard the submarine Nautilus.",
			AuthorNames: []string{"Jules Verne"},
			Categories:  []string{"Adventure", "Science Fiction"},
		},
		{
			Title:       "The Time Machine",
			Year:        "1895",
			Description: "An inventor travels far into the future of humanity.",
			AuthorNames: []string{"Herbert George Wells"},
			Categories:  []string{"Science Fiction"},
		},
		{
			Title:       "The War of the Worlds",
			Year:        "1898",
			Description: "Martian invaders land in Victorian England.",
			AuthorNames: []string{"Herbert George Wells"},
			Categories:  []string{"Science Fiction"},
		},
		{
			Title:       "Pride and Prejudice",
			Year:        "1813",
			Description: "Elizabeth Bennet navigates manners, upbringing and marriage.",
			AuthorNames: []string{"Jane Austen"},
			Categories:  []string{"Romance"},
		},
		{
			Title:       "The Hound of the Baskervilles",
			Year:        "1902",
			Description: "Sherlock Holmes investigates the legend of a supernatural hound.",
			AuthorNames: []string{"Arthur Conan Doyle"},
			Categories:  []string{"Mystery"},
		},
		{
			Title:       "A Journey to the Centre of the Earth",
			Year:        "1864",
			Description: "A professor and his nephew descend into an Icelandic volcano.",
			AuthorNames: []string{"Jules Verne"},
			Categories:  []string{"Adventure"},
		},
	}
}
