package models

import "time"

type Book struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Title    string `gorm:"not null"                 json:"title"`
	Author   string `json:"author"`
	Category string `json:"category"`
	Stock    int    `gorm:"not null;default:0"       json:"stock"`
}

// Loan is one outstanding borrowing. UserName is a denormalized snapshot of
// the borrower's name at borrow time.
type Loan struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint      `gorm:"index;not null"           json:"user_id"`
	UserName   string    `json:"user_name"`
	BookID     uint      `gorm:"index;not null"           json:"book_id"`
	BorrowDate time.Time `gorm:"autoCreateTime"           json:"borrow_date"`
}
