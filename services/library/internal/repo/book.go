package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/andrnaufal/perpustakaan/services/library/internal/models"
)

func (r *GormRepo) ListBooks(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *GormRepo) GetBook(ctx context.Context, id uint) (*models.Book, error) {
	book := models.Book{}
	if err := r.DB.WithContext(ctx).First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *GormRepo) CreateBook(ctx context.Context, book *models.Book) error {
	return r.DB.WithContext(ctx).Create(book).Error
}

func (r *GormRepo) UpdateBook(ctx context.Context, id uint, book models.Book) error {
	res := r.DB.WithContext(ctx).Model(&models.Book{}).Where("id = ?", id).Updates(map[string]any{
		"title":    book.Title,
		"author":   book.Author,
		"category": book.Category,
		"stock":    book.Stock,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteBook removes the book together with every loan that references it,
// loans first so the book delete never trips referential integrity.
func (r *GormRepo) DeleteBook(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).Delete(&models.Loan{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Book{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
