package seed

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrnaufal/perpustakaan/services/library/internal/models"
)

var books = []models.Book{
	{Title: "Belajar Microservices", Author: "Fulan", Category: "Teknologi", Stock: 5},
	{Title: "Tutorial Docker Lengkap", Author: "Fulana", Category: "Teknologi", Stock: 3},
	{Title: "Resep Masakan Padang", Author: "Budi", Category: "Kuliner", Stock: 0},
	{Title: "Algoritma & Struktur Data", Author: "Rina", Category: "Edukasi", Stock: 12},
	{Title: "Dasar-Dasar Python", Author: "Andi", Category: "Teknologi", Stock: 8},
	{Title: "Mastering React JS", Author: "Siti", Category: "Teknologi", Stock: 5},
	{Title: "Keamanan Jaringan", Author: "Joko", Category: "Teknologi", Stock: 4},
	{Title: "Kecerdasan Buatan (AI)", Author: "Eko", Category: "Sains", Stock: 6},
	{Title: "Desain UI/UX Modern", Author: "Dian", Category: "Desain", Stock: 7},
}

// Reset recreates the book and loan tables and seeds the demo catalog.
// Dev utility behind /init-db, not part of the runtime contract.
func Reset(ctx context.Context, db *gorm.DB) error {
	tx := db.WithContext(ctx)

	if err := tx.Migrator().DropTable(&models.Loan{}, &models.Book{}); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	if err := tx.AutoMigrate(&models.Book{}, &models.Loan{}); err != nil {
		return fmt.Errorf("migrate tables: %w", err)
	}

	for i := range books {
		book := books[i]
		if err := tx.Create(&book).Error; err != nil {
			return fmt.Errorf("seed book %q: %w", book.Title, err)
		}
	}

	return nil
}
