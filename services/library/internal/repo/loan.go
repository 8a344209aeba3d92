package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/andrnaufal/perpustakaan/services/library/internal/models"
)

var (
	ErrOutOfStock   = errors.New("out of stock")
	ErrNoActiveLoan = errors.New("no active loan")
)

// Borrow decrements stock and records the loan in one transaction. The
// decrement is a conditional update guarded by stock > 0, so two borrows
// racing on the last copy cannot both succeed: the loser sees zero affected
// rows and the transaction rolls back.
func (r *GormRepo) Borrow(ctx context.Context, bookID, userID uint, userName string) (int, error) {
	remaining := 0

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var book models.Book
		if err := tx.First(&book, bookID).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Book{}).
			Where("id = ? AND stock > 0", bookID).
			Update("stock", gorm.Expr("stock - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOutOfStock
		}

		loan := models.Loan{
			UserID:   userID,
			UserName: userName,
			BookID:   bookID,
		}
		if err := tx.Create(&loan).Error; err != nil {
			return err
		}

		if err := tx.First(&book, bookID).Error; err != nil {
			return err
		}
		remaining = book.Stock
		return nil
	})

	return remaining, err
}

// Return releases the oldest outstanding loan of (user, book) and restores
// the copy to stock, atomically with the loan delete.
func (r *GormRepo) Return(ctx context.Context, bookID, userID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var loan models.Loan
		err := tx.Where("user_id = ? AND book_id = ?", userID, bookID).
			Order("id ASC").
			First(&loan).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoActiveLoan
			}
			return err
		}

		res := tx.Delete(&models.Loan{}, loan.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNoActiveLoan
		}

		return tx.Model(&models.Book{}).
			Where("id = ?", bookID).
			Update("stock", gorm.Expr("stock + 1")).Error
	})
}
