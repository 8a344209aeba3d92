package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/andrnaufal/perpustakaan/pkg/events"
	"github.com/andrnaufal/perpustakaan/pkg/logging"
	"github.com/andrnaufal/perpustakaan/services/library/internal/models"
	"github.com/andrnaufal/perpustakaan/services/library/internal/repo"
)

var (
	ErrValidation   = errors.New("validation")
	ErrBookNotFound = errors.New("book not found")
	ErrOutOfStock   = errors.New("out of stock")
	ErrNoActiveLoan = errors.New("no active loan")
)

type LibraryService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
}

func (s *LibraryService) publish(ctx context.Context, topic string, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, topic, fmt.Sprint(event["bookID"]), event); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "topic", topic, "error", err)
	}
}

func (s *LibraryService) ListBooks(ctx context.Context) ([]models.Book, error) {
	return s.Repo.ListBooks(ctx)
}

func (s *LibraryService) Borrow(ctx context.Context, bookID, userID uint, userName string) (int, error) {
	remaining, err := s.Repo.Borrow(ctx, bookID, userID, userName)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return 0, ErrBookNotFound
		case errors.Is(err, repo.ErrOutOfStock):
			return 0, ErrOutOfStock
		}
		return 0, err
	}

	s.publish(ctx, "loan_events", map[string]any{
		"type":      "book_borrowed",
		"bookID":    bookID,
		"userID":    userID,
		"userName":  userName,
		"remaining": remaining,
	})

	return remaining, nil
}

func (s *LibraryService) Return(ctx context.Context, bookID, userID uint) error {
	if err := s.Repo.Return(ctx, bookID, userID); err != nil {
		if errors.Is(err, repo.ErrNoActiveLoan) {
			return ErrNoActiveLoan
		}
		return err
	}

	s.publish(ctx, "loan_events", map[string]any{
		"type":   "book_returned",
		"bookID": bookID,
		"userID": userID,
	})

	return nil
}

func (s *LibraryService) CreateBook(ctx context.Context, book *models.Book) error {
	if book.Title == "" {
		return fmt.Errorf("title must not be empty: %w", ErrValidation)
	}
	if book.Stock < 0 {
		return fmt.Errorf("stock cannot be negative: %w", ErrValidation)
	}

	if err := s.Repo.CreateBook(ctx, book); err != nil {
		return err
	}

	s.publish(ctx, "book_events", map[string]any{
		"type":   "book_created",
		"bookID": book.ID,
		"title":  book.Title,
	})

	return nil
}

func (s *LibraryService) UpdateBook(ctx context.Context, id uint, book models.Book) error {
	if book.Stock < 0 {
		return fmt.Errorf("stock cannot be negative: %w", ErrValidation)
	}

	if err := s.Repo.UpdateBook(ctx, id, book); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookNotFound
		}
		return err
	}

	s.publish(ctx, "book_events", map[string]any{
		"type":   "book_updated",
		"bookID": id,
	})

	return nil
}

func (s *LibraryService) DeleteBook(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteBook(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookNotFound
		}
		return err
	}

	s.publish(ctx, "book_events", map[string]any{
		"type":   "book_deleted",
		"bookID": id,
	})

	return nil
}
